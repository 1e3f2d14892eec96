package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/perfstack/jmstage/internal/artifact"
	"github.com/perfstack/jmstage/internal/output"
	"github.com/perfstack/jmstage/internal/props"
	"github.com/perfstack/jmstage/internal/stage"
)

func newPropsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "props",
		Short: "Inspect engine property files",
	}
	cmd.AddCommand(newPropsDiffCmd())
	return cmd
}

func newPropsDiffCmd() *cobra.Command {
	var lockfilePath string

	cmd := &cobra.Command{
		Use:   "diff [file...]",
		Short: "Diff merged property files against the bundled defaults",
		Long: `Shows what your overrides and custom property files change relative to
the defaults shipped in the engine's config bundle. With no arguments all
engine property files are diffed.`,
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			in, err := loadStagingInputs(cfg, lockfilePath)
			if err != nil {
				return err
			}
			configJar, err := artifact.Find(in.artifacts, stage.ConfigArtifact)
			if err != nil {
				return err
			}

			defaults, err := props.LoadDefaults(configJar.File)
			if err != nil {
				return err
			}

			files := cmdArgs
			if len(files) == 0 {
				files = props.EngineFiles
			}

			overrides := map[string]map[string]string{
				"jmeter.properties":      cfg.Properties.JMeter,
				"saveservice.properties": cfg.Properties.SaveService,
				"upgrade.properties":     cfg.Properties.Upgrade,
				"user.properties":        cfg.Properties.User,
				"global.properties":      cfg.Properties.Global,
				"system.properties":      cfg.Properties.System,
			}

			f := output.NewFormatter(os.Stdout)
			m := &props.Merger{
				TestFilesDir:    cfg.TestFilesDir,
				ReplaceDefaults: cfg.Properties.ReplaceDefaults,
			}
			for _, name := range files {
				if _, known := overrides[name]; !known {
					return fmt.Errorf("unknown property file %q", name)
				}
				merged, err := m.Build(name, defaults[name], overrides[name])
				if err != nil {
					return err
				}
				before := defaults[name].Format()
				after := merged.Format()
				if before == after {
					continue
				}
				f.Textln("--- %s", name)
				f.Textln("%s", props.FormatDiff(props.Diff(before, after)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&lockfilePath, "lockfile", "", "resolved dependency set (default from config)")
	return cmd
}
