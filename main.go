package main

import (
	"github.com/pmkol/linkx/coremain"
	"github.com/pmkol/linkx/mlog"
)

func main() {
	if err := coremain.Run(); err != nil {
		mlog.S().Fatal(err)
	}
}
