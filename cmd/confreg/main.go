package main

import (
	"github.com/ppacher/confreg/cli"
	"github.com/spf13/afero"
)

func main() {
	a := newApp(afero.NewOsFs())
	if err := newRootCmd(a).Execute(); err != nil {
		cli.Fatal(a.loader, err)
	}
}
