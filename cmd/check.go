package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/asporia/grounder/ast"
	"github.com/asporia/grounder/compile"
	"github.com/asporia/grounder/format"
	"github.com/asporia/grounder/internal/config"
)

type checkParams struct {
	infile string
}

// checkProgram implements the fast-fail half of the pipeline: arity
// consistency and per-rule safety analysis, without running the
// instantiator at all. It mirrors the teacher's pattern of exposing
// individual compiler stages (checkSafetyHead/checkSafetyBody/
// checkBuiltins) as something callable in isolation from a full
// compile-and-emit run.
func checkProgram(p *checkParams) error {
	in, err := openInput(p.infile)
	if err != nil {
		return err
	}
	defer in.Close()

	prog, err := format.LoadProgram(in)
	if err != nil {
		return &parseErr{err}
	}

	if err := compile.CheckArities(prog.Rules); err != nil {
		return err
	}

	for i, r := range prog.Rules {
		ruleID := r.Location
		if ruleID == "" {
			ruleID = fmt.Sprintf("rule#%d", i)
		}
		if _, err := ast.CheckSafety(ruleID, r); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	p := &checkParams{}
	checkCommand := &cobra.Command{
		Use:   "check",
		Short: "Check arity consistency and rule safety without grounding",
		Long:  "Run only the arity and safety-analysis stages, reporting the first violation without instantiating any rule.",
		PreRunE: func(c *cobra.Command, _ []string) error {
			return config.ApplyEnv(c)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := checkProgram(p); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return nil
		},
	}
	addInputFlag(checkCommand.Flags(), &p.infile)
	RootCommand.AddCommand(checkCommand)
}
