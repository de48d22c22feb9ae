// Package config maps environment variables onto cobra command flags,
// adapted from the teacher's cmd/internal/env package: any flag left at
// its default is overridden by a correspondingly named GROUNDER_<CMD>_*
// (or GROUNDER_* for the root command) environment variable, letting the
// same binary be driven identically from environment variables or plain
// flags. No config file is read.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const globalPrefix = "grounder"

// ApplyEnv overlays environment variables onto any flag of command that
// was not explicitly set on the command line.
func ApplyEnv(command *cobra.Command) error {
	var errs []string
	v := viper.New()
	v.AutomaticEnv()
	if command.Name() == globalPrefix {
		v.SetEnvPrefix(command.Name())
	} else {
		v.SetEnvPrefix(fmt.Sprintf("%s_%s", globalPrefix, command.Name()))
	}

	command.Flags().VisitAll(func(f *pflag.Flag) {
		name := strings.ReplaceAll(f.Name, "-", "_")
		if !f.Changed && v.IsSet(name) {
			if err := command.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(name))); err != nil {
				errs = append(errs, err.Error())
			}
		}
	})

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("error mapping environment variables to command flags: %s", strings.Join(errs, "; "))
}
