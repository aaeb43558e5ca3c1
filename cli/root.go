package cli

import (
	"context"
	"fmt"

	"github.com/beehive/jxunxo/cli/helpers"
	"github.com/beehive/jxunxo/pkg/config"
	"github.com/beehive/jxunxo/pkg/jsonfmt"
	"github.com/beehive/jxunxo/pkg/logger"
	"github.com/beehive/jxunxo/pkg/shorthand"
	"github.com/beehive/jxunxo/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "jxunxo [shorthand...]",
		Short: "Turn quick key:value shorthand into JSON",
		Long: `jxunxo turns loosely typed shorthand such as color:#ff0000,transition:2
into a JSON object. Values are typed the way YAML guesses them, so 2 is a
number and no is false.`,
		Example: `  jxunxo color:#ff0000,transition:2
  jxunxo --pretty value:false country:no
  echo 'name:"no"' | jxunxo`,
		Version:       version.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return SetupGlobalConfig(cmd)
		},
		RunE: runConvert,
	}

	pf := root.PersistentFlags()
	pf.String("env-file", ".env", "Environment file with JXUNXO_* overrides")
	pf.String("config", "", "YAML config file (default $JXUNXO_CONFIG or ./jxunxo.yaml)")
	pf.String("log-level", "warn", "Log level (debug, info, warn, error, disabled)")
	pf.Bool("log-json", false, "Output logs and errors in JSON format")
	pf.Bool("log-source", false, "Include caller information in logs")
	pf.BoolP("pretty", "p", false, "Indent and colorize the output")
	pf.String("color", "auto", "When to colorize pretty output (auto, always, never)")
	pf.String("highlighter", string(jsonfmt.HighlighterChroma), "Highlighter for pretty output (chroma, pretty, none)")
	pf.String("style", "monokai", "Chroma style name")
	pf.String("formatter", "terminal256", "Chroma terminal formatter")
	pf.Int("indent", 4, "Spaces per level for pretty output")
	pf.Bool("sort-keys", false, "Sort object keys in pretty output")

	f := root.Flags()
	f.StringP("file", "f", "", `Read shorthand from a file ("-" for stdin)`)
	f.Bool("explain", false, "Print the rewritten YAML text instead of JSON")

	root.AddCommand(
		ConfigCmd(),
		VersionCmd(),
	)

	return root
}

// Execute runs the root command and prints any error to stderr. It returns
// the process exit code.
func Execute(ctx context.Context) int {
	root := RootCmd()
	cmd, err := root.ExecuteContextC(ctx)
	if err != nil {
		asJSON := false
		if cfg := helpers.ConfigFrom(cmd.Context()); cfg != nil {
			asJSON = cfg.Log.JSON
		}
		fmt.Fprintln(root.ErrOrStderr(), helpers.FormatError(err, asJSON))
		return 1
	}
	return 0
}

// loadConfig builds the configuration from the env file, config file,
// environment and the flags explicitly set on cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, config.Service, string, error) {
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to get config flag: %w", err)
	}
	if _, err := loadEnvFile(cmd); err != nil {
		return nil, nil, "", helpers.NewCliError(helpers.CodeConfig, "failed to load env file", err.Error()).
			WithCause(err)
	}
	path := config.ResolveConfigPath(configFile)
	flags := make(map[string]any)
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if _, ok := config.FlagPaths[f.Name]; ok {
			flags[f.Name] = f.Value.String()
		}
	})
	service := config.NewService()
	cfg, err := service.Load(cmd.Context(), config.NewYAMLProvider(path), config.NewCLIProvider(flags))
	if err != nil {
		return nil, nil, path, helpers.NewCliError(helpers.CodeConfig, "failed to load configuration", err.Error()).
			WithCause(err)
	}
	return cfg, service, path, nil
}

// SetupGlobalConfig loads configuration, sets up logging and stores both in
// the command context.
func SetupGlobalConfig(cmd *cobra.Command) error {
	// Flags alone decide logging until the full configuration is known.
	level, logJSON, logSource, err := logger.GetLoggerConfig(cmd)
	if err != nil {
		return err
	}
	logger.SetupLogger(level, logJSON, logSource)
	cfg, service, path, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := logger.SetupLogger(cfg.Log.Level, cfg.Log.JSON, cfg.Log.Source)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, helpers.ConfigKey, cfg)
	ctx = logger.ContextWithLogger(ctx, log)
	cmd.SetContext(ctx)
	log.Debug("Configuration loaded",
		"config_file", path,
		"style_source", service.GetSource("output.style"),
		"pretty_source", service.GetSource("output.pretty"),
	)
	return nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := helpers.ConfigFrom(ctx)
	if cfg == nil {
		cfg = config.Default()
	}
	log := logger.FromContext(ctx)

	file, err := cmd.Flags().GetString("file")
	if err != nil {
		return fmt.Errorf("failed to get file flag: %w", err)
	}
	input, err := helpers.ReadInput(ctx, args, file, cmd.InOrStdin())
	if err != nil {
		return err
	}

	normalizer := shorthand.NewNormalizer(shorthand.WithLogger(log))
	explain, err := cmd.Flags().GetBool("explain")
	if err != nil {
		return fmt.Errorf("failed to get explain flag: %w", err)
	}
	if explain {
		text, err := normalizer.Rewrite(input)
		if err != nil {
			return helpers.FromError(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	}

	out, err := normalizer.Normalize(input)
	if err != nil {
		return helpers.FromError(err)
	}
	if cfg.Output.Pretty {
		colorize := helpers.ShouldUseColor(cfg.Output.Color, cmd.OutOrStdout())
		out, err = jsonfmt.Format(out, cfg.FormatOptions(colorize))
		if err != nil {
			return helpers.FromError(err)
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
