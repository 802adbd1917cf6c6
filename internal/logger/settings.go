package logger

import (
	"fmt"

	"github.com/ppacher/confreg/conf"
)

// Section is the configuration section owned by this package.
const Section = "log"

// Log formats accepted by the [log] section.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Settings mirrors the [log] section.
type Settings struct {
	Level  string `option:"level"`
	Format string `option:"format"`
}

// Register declares the [log] section on reg.
func Register(reg *conf.Registry) {
	reg.Register(Section, conf.OptionSpec{
		Name:          "level",
		Description:   "Minimum level of log messages written to stderr.",
		AllowedValues: Levels,
	})
	reg.Register(Section, conf.OptionSpec{
		Name:          "format",
		Description:   "Output format of log messages.",
		AllowedValues: []string{FormatText, FormatJSON},
	})
}

// ConfigFromStore builds a logger configuration from the [log] section
// of store, starting from base. A store without that section yields
// base unchanged.
func ConfigFromStore(store *conf.Store, base *Config) (*Config, error) {
	if base == nil {
		base = DefaultConfig()
	}
	cfg := *base

	if !store.HasSection(Section) {
		return &cfg, nil
	}

	var settings Settings
	if err := store.DecodeSection(Section, &settings); err != nil {
		return nil, fmt.Errorf("failed to decode [%s]: %w", Section, err)
	}

	if settings.Level != "" {
		cfg.Level = LogLevel(settings.Level)
	}

	switch settings.Format {
	case "":
	case FormatJSON:
		cfg.JSON = true
	case FormatText:
		cfg.JSON = false
	default:
		return nil, fmt.Errorf("unsupported log format %q", settings.Format)
	}

	return &cfg, nil
}
