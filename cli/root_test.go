package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beehive/jxunxo/cli/helpers"
	"github.com/beehive/jxunxo/pkg/config"
	"github.com/beehive/jxunxo/pkg/shorthand"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvConfigFile, filepath.Join(t.TempDir(), "none.yaml"))
	cmd := RootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// parsedRoot returns a root command with persistent flags merged and args
// parsed, as cobra does before running PersistentPreRunE.
func parsedRoot(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := RootCmd()
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestRootCmd_Convert(t *testing.T) {
	t.Run("Should convert positional shorthand", func(t *testing.T) {
		out, err := runRoot(t, "", "color:#ff0000,transition:2")

		require.NoError(t, err)
		assert.Equal(t, "{\"color\": \"#ff0000\", \"transition\": 2}\n", out)
	})

	t.Run("Should not mistake shorthand for a subcommand", func(t *testing.T) {
		out, err := runRoot(t, "", "config:yes", "version:2")

		require.NoError(t, err)
		assert.Equal(t, "{\"config\": true, \"version\": 2}\n", out)
	})

	t.Run("Should join several arguments with commas", func(t *testing.T) {
		out, err := runRoot(t, "", "value:false", "country:no")

		require.NoError(t, err)
		assert.Equal(t, "{\"value\": false, \"country\": false}\n", out)
	})

	t.Run("Should read stdin when no arguments are given", func(t *testing.T) {
		out, err := runRoot(t, "{a:1}\n")

		require.NoError(t, err)
		assert.Equal(t, "{\"a\": 1}\n", out)
	})

	t.Run("Should read from a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "in.txt")
		require.NoError(t, os.WriteFile(path, []byte("name:\"no\"\n"), 0o600))

		out, err := runRoot(t, "", "--file", path)

		require.NoError(t, err)
		assert.Equal(t, "{\"name\": \"no\"}\n", out)
	})

	t.Run("Should print the rewritten text with --explain", func(t *testing.T) {
		out, err := runRoot(t, "", "--explain", "color:#ff0000")

		require.NoError(t, err)
		assert.Equal(t, "{color: \"#ff0000\"}\n", out)
	})

	t.Run("Should pretty print without color when asked", func(t *testing.T) {
		out, err := runRoot(t, "", "--pretty", "--color", "never", "a:1,b:2")

		require.NoError(t, err)
		assert.Equal(t, "{\n    \"a\": 1,\n    \"b\": 2\n}\n", out)
	})

	t.Run("Should honor --indent for pretty output", func(t *testing.T) {
		out, err := runRoot(t, "", "-p", "--color", "never", "--indent", "2", "a:1")

		require.NoError(t, err)
		assert.Equal(t, "{\n  \"a\": 1\n}\n", out)
	})

	t.Run("Should fail on empty stdin", func(t *testing.T) {
		_, err := runRoot(t, "")

		var cliErr *helpers.CliError
		require.ErrorAs(t, err, &cliErr)
		assert.Equal(t, helpers.CodeEmptyInput, cliErr.Code)
		assert.ErrorIs(t, err, shorthand.ErrEmptyInput)
	})

	t.Run("Should fail on malformed shorthand", func(t *testing.T) {
		_, err := runRoot(t, "", "a:[1,2")

		var cliErr *helpers.CliError
		require.ErrorAs(t, err, &cliErr)
		assert.Equal(t, helpers.CodeParse, cliErr.Code)
	})

	t.Run("Should reject an invalid color mode", func(t *testing.T) {
		_, err := runRoot(t, "", "--color", "sometimes", "a:1")

		var cliErr *helpers.CliError
		require.ErrorAs(t, err, &cliErr)
		assert.Equal(t, helpers.CodeConfig, cliErr.Code)
	})
}

func TestSetupGlobalConfig(t *testing.T) {
	t.Run("Should load YAML and inject configuration into context", func(t *testing.T) {
		cfgPath := filepath.Join(t.TempDir(), "jxunxo.yaml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("output:\n  style: dracula\n  indent: 2\n"), 0o600))

		cmd := parsedRoot(t, "--config", cfgPath)

		require.NoError(t, SetupGlobalConfig(cmd))

		cfg := helpers.ConfigFrom(cmd.Context())
		require.NotNil(t, cfg)
		assert.Equal(t, "dracula", cfg.Output.Style)
		assert.Equal(t, 2, cfg.Output.Indent)
	})

	t.Run("Should let flags override the config file", func(t *testing.T) {
		cfgPath := filepath.Join(t.TempDir(), "jxunxo.yaml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("output:\n  style: dracula\n"), 0o600))

		cmd := parsedRoot(t, "--config", cfgPath, "--style", "github")

		require.NoError(t, SetupGlobalConfig(cmd))

		assert.Equal(t, "github", helpers.ConfigFrom(cmd.Context()).Output.Style)
	})

	t.Run("Should let environment override the config file", func(t *testing.T) {
		cfgPath := filepath.Join(t.TempDir(), "jxunxo.yaml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("output:\n  indent: 2\n"), 0o600))
		t.Setenv("JXUNXO_OUTPUT_INDENT", "8")

		cmd := parsedRoot(t, "--config", cfgPath)

		require.NoError(t, SetupGlobalConfig(cmd))

		assert.Equal(t, 8, helpers.ConfigFrom(cmd.Context()).Output.Indent)
	})

	t.Run("Should reject invalid values from the config file", func(t *testing.T) {
		cfgPath := filepath.Join(t.TempDir(), "jxunxo.yaml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("output:\n  highlighter: rainbow\n"), 0o600))

		cmd := parsedRoot(t, "--config", cfgPath)

		err := SetupGlobalConfig(cmd)

		var cliErr *helpers.CliError
		require.ErrorAs(t, err, &cliErr)
		assert.Equal(t, helpers.CodeConfig, cliErr.Code)
	})
}

func TestConfigShow(t *testing.T) {
	t.Run("Should report values with their sources as JSON", func(t *testing.T) {
		out, err := runRoot(t, "", "config", "show", "--format", "json", "--style", "github")
		require.NoError(t, err)

		var entries []configEntry
		require.NoError(t, json.Unmarshal([]byte(out), &entries))
		byKey := make(map[string]configEntry, len(entries))
		for _, e := range entries {
			byKey[e.Key] = e
		}
		require.Contains(t, byKey, "output.style")
		assert.Equal(t, "github", byKey["output.style"].Value)
		assert.Equal(t, config.SourceCLI, byKey["output.style"].Source)
		assert.Equal(t, config.SourceDefault, byKey["log.json"].Source)
	})

	t.Run("Should render a table", func(t *testing.T) {
		out, err := runRoot(t, "", "config", "show")

		require.NoError(t, err)
		assert.Contains(t, out, "KEY")
		assert.Contains(t, out, "output.highlighter")
	})
}

func TestVersionCmd(t *testing.T) {
	t.Run("Should print build info as JSON", func(t *testing.T) {
		out, err := runRoot(t, "", "version", "--json")
		require.NoError(t, err)

		var info map[string]string
		require.NoError(t, json.Unmarshal([]byte(out), &info))
		assert.Contains(t, info, "version")
		assert.Contains(t, info, "commit_hash")
	})
}
