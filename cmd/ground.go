package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/asporia/grounder/format"
	"github.com/asporia/grounder/ground"
	"github.com/asporia/grounder/internal/config"
	"github.com/asporia/grounder/internal/logging"
	"github.com/asporia/grounder/internal/tracing"
)

type groundParams struct {
	infile      string
	outfile     string
	format      string
	strict      bool
	logLevel    string
	logFormat   string
	metricsAddr string
	trace       bool
}

func runGround(p *groundParams) error {
	level, err := logging.GetLevel(p.logLevel)
	if err != nil {
		return err
	}
	log := logging.NewRunLogger(level, logging.GetFormatter(p.logFormat, ""))

	if p.trace {
		shutdown, err := tracing.Enable(os.Stderr)
		if err != nil {
			return errors.Wrap(err, "enabling tracing")
		}
		defer shutdown(context.Background())
	}

	reg := prometheus.NewRegistry()
	metrics := ground.NewMetrics(reg)
	if p.metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		server := &http.Server{Addr: p.metricsAddr, Handler: mux}
		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.WithError(err).Warn("metrics server stopped")
			}
		}()
		defer server.Close()
	}

	in, err := openInput(p.infile)
	if err != nil {
		return err
	}
	defer in.Close()

	prog, err := format.LoadProgram(in)
	if err != nil {
		return &parseErr{err}
	}

	driver := ground.NewDriver(log, metrics).WithStrict(p.strict)
	result, err := driver.Ground(context.Background(), prog)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(p.outfile)
	if err != nil {
		return err
	}
	defer closeOut()

	return format.Write(out, format.Kind(p.format), result.Rules)
}

// parseErr wraps a loader failure with a "parse error: " prefix. It is a
// separate type from ast.ParseError, and the CLI exits with the same
// non-zero code for it as for every other error.
type parseErr struct{ cause error }

func (e *parseErr) Error() string { return "parse error: " + e.cause.Error() }
func (e *parseErr) Unwrap() error { return e.cause }

func openInput(path string) (*os.File, error) {
	if path == "" {
		return nil, fmt.Errorf("-f/--file is required")
	}
	return os.Open(path)
}

func openOutput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func init() {
	p := &groundParams{}
	groundCommand := &cobra.Command{
		Use:   "ground",
		Short: "Ground an ASP-Core-2 program",
		Long:  "Run the full pipeline: safety check, dependency analysis, stratification, and semi-naive instantiation.",
		PreRunE: func(c *cobra.Command, _ []string) error {
			return config.ApplyEnv(c)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return runGround(p)
		},
	}

	addInputFlag(groundCommand.Flags(), &p.infile)
	addOutputFlag(groundCommand.Flags(), &p.outfile)
	addFormatFlag(groundCommand.Flags(), &p.format)
	addStrictFlag(groundCommand.Flags(), &p.strict)
	addLogFlags(groundCommand.Flags(), &p.logLevel, &p.logFormat)
	addMetricsAddrFlag(groundCommand.Flags(), &p.metricsAddr)
	addTraceFlag(groundCommand.Flags(), &p.trace)
	RootCommand.AddCommand(groundCommand)
}
