// main is the entry point for the repokit CLI.
package main

import (
	"os"

	"github.com/broadsage/opensource-template/cmd"
	"github.com/broadsage/opensource-template/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Error", err)
	}
	os.Exit(0)
}
