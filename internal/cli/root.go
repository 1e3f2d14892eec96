package cli

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/perfstack/jmstage/internal/config"
)

var (
	cfgFile string
	cfg     *config.Config
	Version = "dev" // Set by goreleaser
)

var rootCmd = &cobra.Command{
	Use:   "jmstage",
	Short: "Stage an isolated JMeter home from a resolved dependency set",
	Long: `jmstage prepares the private directory tree a JMeter run needs:
it classifies every resolved dependency into bin, lib or lib/ext, unpacks
the engine's bundled configuration, and merges your property overrides.

Quick Start:
  jmstage prepare                # Stage the tree from jmstage.lock.yaml
  jmstage plan                   # Show placement decisions without staging
  jmstage props diff             # Show how your overrides change defaults
  jmstage prepare --watch        # Re-stage whenever test files change`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "completion", "version", "guide", "init", "path":
			return nil
		}
		var err error
		cfg, err = config.Load(cfgFile)
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default jmstage.toml, then ~/.config/jmstage/config.toml)")

	rootCmd.AddCommand(
		newPrepareCmd(),
		newPlanCmd(),
		newPropsCmd(),
		newConfigCmd(),
		newGuideCmd(),
		newVersionCmd(),
	)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("jmstage version %s\n", Version)
		},
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefault()
			if err != nil {
				return err
			}
			fmt.Printf("Created %s\n", path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.OutOrStdout(), cfg)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(config.DefaultPath())
		},
	})

	return cmd
}

// showConfig renders the effective configuration (defaults overlaid with
// the loaded file) as TOML.
func showConfig(w io.Writer, cfg *config.Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}
