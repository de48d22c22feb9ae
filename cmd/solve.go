package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/asporia/grounder/format"
	"github.com/asporia/grounder/ground"
	"github.com/asporia/grounder/internal/config"
	"github.com/asporia/grounder/internal/logging"
	"github.com/asporia/grounder/solve"
)

type solveParams struct {
	infile string
}

func runSolve(p *solveParams) error {
	in, err := openInput(p.infile)
	if err != nil {
		return err
	}
	defer in.Close()

	prog, err := format.LoadProgram(in)
	if err != nil {
		return &parseErr{err}
	}

	level, err := logging.GetLevel("warn")
	if err != nil {
		return err
	}
	log := logging.NewRunLogger(level, logging.GetFormatter("text", ""))
	driver := ground.NewDriver(log, ground.NewMetrics(prometheus.NewRegistry()))
	result, err := driver.Ground(context.Background(), prog)
	if err != nil {
		return err
	}

	models, err := solve.Search(result.Rules)
	if err != nil {
		return err
	}

	if len(models) == 0 {
		fmt.Println("UNSATISFIABLE")
		return nil
	}
	for i, m := range models {
		fmt.Printf("Answer %d:\n", i+1)
		for _, a := range m.TrueAtoms() {
			fmt.Println(" ", a)
		}
	}
	return nil
}

func init() {
	p := &solveParams{}
	solveCommand := &cobra.Command{
		Use:   "solve",
		Short: "Ground a program and brute-force search for satisfying models (smoke-test only)",
		Long: "Grounds the program exactly like the 'ground' command, then performs an unoptimized, " +
			"non-minimal exhaustive truth-assignment search over its head atoms. This is strictly a " +
			"convenience for smoke-testing tiny programs against the grounder's output — it is not a " +
			"supported answer-set solver.",
		PreRunE: func(c *cobra.Command, _ []string) error {
			return config.ApplyEnv(c)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := runSolve(p); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return nil
		},
	}
	addInputFlag(solveCommand.Flags(), &p.infile)
	RootCommand.AddCommand(solveCommand)
}
