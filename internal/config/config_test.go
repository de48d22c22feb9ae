package config

import (
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestApplyEnvOverridesUnsetFlagFromEnv(t *testing.T) {
	cmd := &cobra.Command{Use: "ground"}
	cmd.Flags().String("format", "text", "")

	require.NoError(t, os.Setenv("GROUNDER_GROUND_FORMAT", "yaml"))
	defer os.Unsetenv("GROUNDER_GROUND_FORMAT")

	require.NoError(t, ApplyEnv(cmd))
	value, err := cmd.Flags().GetString("format")
	require.NoError(t, err)
	require.Equal(t, "yaml", value)
}

func TestApplyEnvDoesNotOverrideExplicitlySetFlag(t *testing.T) {
	cmd := &cobra.Command{Use: "ground"}
	cmd.Flags().String("format", "text", "")
	require.NoError(t, cmd.Flags().Set("format", "yaml"))

	require.NoError(t, os.Setenv("GROUNDER_GROUND_FORMAT", "text"))
	defer os.Unsetenv("GROUNDER_GROUND_FORMAT")

	require.NoError(t, ApplyEnv(cmd))
	value, err := cmd.Flags().GetString("format")
	require.NoError(t, err)
	require.Equal(t, "yaml", value)
}

func TestApplyEnvUsesRootPrefixForRootCommand(t *testing.T) {
	cmd := &cobra.Command{Use: "grounder"}
	cmd.Flags().String("strict", "false", "")

	require.NoError(t, os.Setenv("GROUNDER_STRICT", "true"))
	defer os.Unsetenv("GROUNDER_STRICT")

	require.NoError(t, ApplyEnv(cmd))
	value, err := cmd.Flags().GetString("strict")
	require.NoError(t, err)
	require.Equal(t, "true", value)
}
