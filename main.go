// Package main is the entry point for pplay.
package main

import (
	"github.com/pplay-cli/pplay/cmd"
	"github.com/pplay-cli/pplay/config"
	"github.com/pplay-cli/pplay/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
