// Package main is the entry point for vidswitch.
package main

import (
	"github.com/samber/lo"
	"github.com/vidswitch/vidswitch/cmd"
	"github.com/vidswitch/vidswitch/config"
	"github.com/vidswitch/vidswitch/log"
	"github.com/vidswitch/vidswitch/manifest"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go manifest.CollectGarbage()

	cmd.Execute()
}
