package cmd

import (
	"github.com/spf13/pflag"
)

func addInputFlag(fs *pflag.FlagSet, infile *string) {
	fs.StringVarP(infile, "file", "f", "", "input program file (YAML-encoded Program; required)")
}

func addOutputFlag(fs *pflag.FlagSet, outfile *string) {
	fs.StringVarP(outfile, "output", "o", "", "output file (defaults to stdout)")
}

func addFormatFlag(fs *pflag.FlagSet, format *string) {
	fs.StringVar(format, "format", "text", "ground-program rendering: text|yaml")
}

func addStrictFlag(fs *pflag.FlagSet, strict *bool) {
	fs.BoolVar(strict, "strict", false, "abort grounding when instantiating a rule head fails on arithmetic, instead of discarding the affected substitution")
}

func addLogFlags(fs *pflag.FlagSet, level, logFormat *string) {
	fs.StringVar(level, "log-level", "info", "log level: debug|info|warn|error")
	fs.StringVar(logFormat, "log-format", "json", "log format: json|json-pretty|text")
}

func addMetricsAddrFlag(fs *pflag.FlagSet, addr *string) {
	fs.StringVar(addr, "metrics-addr", "", "if set, serve Prometheus metrics on this address while grounding runs")
}

func addTraceFlag(fs *pflag.FlagSet, trace *bool) {
	fs.BoolVar(trace, "trace", false, "install an OpenTelemetry stdout trace exporter instead of the default no-op tracer")
}
