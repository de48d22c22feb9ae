package main

import (
	"os"

	"github.com/asporia/grounder/cmd"
)

func main() {
	if err := cmd.RootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}
