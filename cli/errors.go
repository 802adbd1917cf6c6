package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/ppacher/confreg/conf"
)

var bannerStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FF6B6B")).
	Bold(true)

// PrintError writes err to w prefixed with an ERROR banner.
func PrintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "%s %s\n", bannerStyle.Render("ERROR"), err.Error())
}

// Fatal reports err and terminates the process with conf.ExitFailure.
// Validation errors are reported through loader so the documentation
// of all declared options is included. loader may be nil.
func Fatal(loader *conf.Loader, err error) {
	Report(os.Stderr, loader, err)
	os.Exit(conf.ExitFailure)
}

// Report writes err to w like Fatal does without exiting.
func Report(w io.Writer, loader *conf.Loader, err error) {
	var verr *conf.ValidationError
	if loader != nil && errors.As(err, &verr) {
		if loader.ReportTo(w, err) == nil {
			return
		}
	}
	PrintError(w, err)
}
