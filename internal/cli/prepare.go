package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/perfstack/jmstage/internal/args"
	"github.com/perfstack/jmstage/internal/artifact"
	"github.com/perfstack/jmstage/internal/config"
	"github.com/perfstack/jmstage/internal/output"
	"github.com/perfstack/jmstage/internal/props"
	"github.com/perfstack/jmstage/internal/stage"
	"github.com/perfstack/jmstage/internal/watcher"
)

// stagingInputs is everything prepare and plan both need: the resolved set
// plus the declaration and tag views over it.
type stagingInputs struct {
	artifacts []artifact.Artifact
	decls     artifact.DeclarationSource
	tags      map[string]bool
}

func loadStagingInputs(cfg *config.Config, lockfilePath string) (*stagingInputs, error) {
	if lockfilePath == "" {
		lockfilePath = cfg.Lockfile
	}
	lf, err := artifact.LoadLockfile(lockfilePath)
	if err != nil {
		return nil, err
	}

	decls := lf.Declarations()
	if len(cfg.Plugins) > 0 {
		decls = artifact.Sources{decls, artifact.DeclaredDependencies(cfg.Plugins)}
	}

	manifests, err := artifact.LoadPluginManifests(cfg.PluginsDir)
	if err != nil {
		return nil, fmt.Errorf("loading plugin manifests: %w", err)
	}

	return &stagingInputs{
		artifacts: lf.Artifacts,
		decls:     decls,
		tags:      artifact.TagSet(manifests, cfg.PluginTags),
	}, nil
}

func newPrepareCmd() *cobra.Command {
	var (
		lockfilePath string
		printArgs    bool
		watch        bool
	)

	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Build and populate the staged JMeter home",
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			if err := runPrepare(cfg, lockfilePath, printArgs); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			f := output.NewFormatter(os.Stdout)
			w, err := watcher.New(cfg.TestFilesDir, 500*time.Millisecond)
			if err != nil {
				return err
			}
			defer w.Close()

			f.Muted("watching %s for changes, ctrl-c to stop", cfg.TestFilesDir)
			w.Run(func() {
				if err := runPrepare(cfg, lockfilePath, printArgs); err != nil {
					f.Warn("re-stage failed: %v", err)
				}
			}, func(err error) {
				f.Warn("watch error: %v", err)
			})
			return nil
		},
	}

	cmd.Flags().StringVar(&lockfilePath, "lockfile", "", "resolved dependency set (default from config)")
	cmd.Flags().BoolVar(&printArgs, "print-args", false, "print the engine argument list per test plan")
	cmd.Flags().BoolVar(&watch, "watch", false, "re-stage when test files change")
	return cmd
}

func runPrepare(cfg *config.Config, lockfilePath string, printArgs bool) error {
	f := output.NewFormatter(os.Stdout)

	in, err := loadStagingInputs(cfg, lockfilePath)
	if err != nil {
		return err
	}

	// Both required artifacts must be present before any tree mutation.
	configJar, err := artifact.Find(in.artifacts, stage.ConfigArtifact)
	if err != nil {
		return err
	}
	if _, err := artifact.Find(in.artifacts, stage.CoreArtifact); err != nil {
		return err
	}

	tree, err := stage.BuildTree(cfg.WorkDir, cfg.Results.Directory)
	if err != nil {
		return err
	}

	placed, err := stage.Populate(in.artifacts, in.decls, in.tags, tree, cfg.Logging.ConfigFilename)
	if err != nil {
		return err
	}

	if err := stageProperties(cfg, tree, configJar.File); err != nil {
		return err
	}

	f.Success("staged %d %s into %s", len(placed), output.Pluralize(len(placed), "artifact", "artifacts"), tree.Work)
	printPlacements(placed)

	if printArgs {
		if err := printArguments(f, cfg, tree); err != nil {
			return err
		}
	}
	return nil
}

// stageProperties merges property overrides over the bundled defaults and
// stages the advanced logging config when one exists.
func stageProperties(cfg *config.Config, tree *stage.Tree, configJarPath string) error {
	jmeterProps := make(map[string]string, len(cfg.Properties.JMeter)+2)
	for k, v := range cfg.Properties.JMeter {
		jmeterProps[k] = v
	}
	if cfg.CSVFormat() {
		jmeterProps["jmeter.save.saveservice.output_format"] = "csv"
	} else {
		jmeterProps["jmeter.save.saveservice.output_format"] = "xml"
	}

	staged, err := props.StageLogConfig(cfg.TestFilesDir, tree.Bin, cfg.Logging.ConfigFilename)
	if err != nil {
		return err
	}
	if staged {
		jmeterProps["log_config"] = cfg.Logging.ConfigFilename
	}

	m := &props.Merger{
		TestFilesDir:    cfg.TestFilesDir,
		ReplaceDefaults: cfg.Properties.ReplaceDefaults,
	}
	return m.Stage(configJarPath, tree.Bin, map[string]map[string]string{
		"jmeter.properties":      jmeterProps,
		"saveservice.properties": cfg.Properties.SaveService,
		"upgrade.properties":     cfg.Properties.Upgrade,
		"user.properties":        cfg.Properties.User,
		"global.properties":      cfg.Properties.Global,
		"system.properties":      cfg.Properties.System,
	})
}

func printPlacements(placed []stage.Placement) {
	t := output.NewTable(os.Stdout, "ARTIFACT", "ROLE", "DEST")
	for _, p := range placed {
		t.AddRow(p.Artifact.Coordinate(), p.Role.String(), p.Dest)
	}
	t.Render()
}

func printArguments(f *output.Formatter, cfg *config.Config, tree *stage.Tree) error {
	plans, err := findTestPlans(cfg.TestFilesDir)
	if err != nil {
		return err
	}
	if len(plans) == 0 {
		f.Warn("no .jmx test plans found in %s", cfg.TestFilesDir)
		f.Wrapped("jmstage builds one argument list per test plan; add .jmx files to the test files directory or point test_files_dir at them in jmstage.toml.")
		return nil
	}
	for _, plan := range plans {
		b := args.Builder{
			JMeterHome:      tree.Work,
			TestFile:        plan,
			ResultsDir:      tree.Results,
			LogsDir:         tree.Logs,
			ResultsCSV:      cfg.CSVFormat(),
			Timestamp:       cfg.Results.Timestamp,
			AppendTimestamp: cfg.Results.AppendTimestamp,
			TimestampLayout: cfg.Results.TimestampLayout,
			RootLogLevel:    cfg.Logging.RootLevel,
			CustomPropsFile: cfg.Properties.CustomFile,
			ProxyHost:       cfg.Proxy.Host,
			ProxyPort:       cfg.Proxy.Port,
			ProxyUsername:   cfg.Proxy.Username,
			ProxyPassword:   cfg.Proxy.Password,
			GlobalProps:     cfg.Properties.Global,
		}
		f.Line()
		f.Textln("%s:", filepath.Base(plan))
		for _, a := range b.Build() {
			f.Textln("  %s", a)
		}
	}
	return nil
}

func findTestPlans(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.jmx"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}
