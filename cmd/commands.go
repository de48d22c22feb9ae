// Package cmd wires the grounder's cobra commands, matching the teacher's
// cmd.RootCommand pattern: a bare root command that subcommands register
// themselves onto from each file's init.
package cmd

import (
	"os"
	"path"

	"github.com/spf13/cobra"
)

// RootCommand is the base CLI command that every subcommand is added to.
var RootCommand = &cobra.Command{
	Use:   path.Base(os.Args[0]),
	Short: "ASP-Core-2 grounder",
	Long:  "A standalone grounder for the ASP-Core-2 rule language: dependency analysis, stratification, and semi-naive instantiation.",
}
