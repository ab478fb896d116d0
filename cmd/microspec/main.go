package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ormasoftchile/microspec/pkg/config"
	"github.com/ormasoftchile/microspec/pkg/logger"
)

// Version is set at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

var (
	verbose bool
	log     = logger.Discard()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "microspec",
	Short:        "Behavior-driven specification chains for Go tests",
	Long:         "microspec renders specification narratives and inspects the transcripts chains record.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logger.LevelWarn
		if verbose {
			level = logger.LevelDebug
		}
		log = logger.New(level, cmd.ErrOrStderr())
	},
}

// --- schema ---

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the configuration JSON Schema",
	Args:  cobra.NoArgs,
	RunE:  runSchema,
}

func runSchema(cmd *cobra.Command, args []string) error {
	data, err := config.GenerateJSONSchema()
	if err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}
	var raw json.RawMessage = data
	formatted, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		formatted = data
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(formatted))
	return nil
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration operations",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the configuration resolved from the environment",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromEnvironment()
	if err != nil {
		return err
	}
	log.Debug("resolved configuration", "file", os.Getenv(config.EnvConfig))

	resolved := struct {
		WriteOutput    bool   `yaml:"write_output"`
		Color          bool   `yaml:"color"`
		TracePath      string `yaml:"trace_path"`
		StrictTeardown bool   `yaml:"strict_teardown"`
	}{cfg.OutputEnabled(), cfg.Color, cfg.TracePath, cfg.TeardownStrict()}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(resolved); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [microspec.yaml]",
	Short: "Validate a configuration file against the schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigValidate,
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	path := args[0]
	errs := config.ValidateFile(path)
	if len(errs) > 0 {
		w := cmd.ErrOrStderr()
		fmt.Fprintf(w, "Validation failed: %d error(s)\n\n", len(errs))
		for i, e := range errs {
			fmt.Fprintf(w, "  %d. %s\n", i+1, e.Message)
			if e.Path != "" {
				fmt.Fprintf(w, "     at: %s\n", e.Path)
			}
		}
		return fmt.Errorf("validation failed with %d error(s)", len(errs))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid\n", path)
	return nil
}

// --- version ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "microspec %s (build: %s)\n", version, commit)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostics to stderr")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
