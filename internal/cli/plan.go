package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/perfstack/jmstage/internal/output"
	"github.com/perfstack/jmstage/internal/stage"
)

func newPlanCmd() *cobra.Command {
	var lockfilePath string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show placement decisions without touching disk",
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			in, err := loadStagingInputs(cfg, lockfilePath)
			if err != nil {
				return err
			}

			f := output.NewFormatter(os.Stdout)
			t := output.NewTable(os.Stdout, "ARTIFACT", "VERSION", "SCOPE", "ROLE")
			skipped := 0
			for _, p := range stage.Plan(in.artifacts, in.decls, in.tags) {
				if p.Role == stage.RoleSkip {
					skipped++
					continue
				}
				t.AddRow(p.Artifact.Coordinate(), p.Artifact.Version, string(p.Artifact.Scope), p.Role.String())
			}
			t.Render()
			if skipped > 0 {
				f.Line()
				f.Muted("%d %s not staged (wrong scope or unrelated to the engine)",
					skipped, output.Pluralize(skipped, "artifact", "artifacts"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&lockfilePath, "lockfile", "", "resolved dependency set (default from config)")
	return cmd
}
