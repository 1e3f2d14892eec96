package cli

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

//go:embed guide.md
var guideMarkdown string

func newGuideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guide",
		Short: "Show the quickstart guide",
		RunE: func(cmd *cobra.Command, args []string) error {
			width := 80
			if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && w < 100 {
				width = w
			}
			r, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(width),
			)
			if err != nil {
				return err
			}
			out, err := r.Render(guideMarkdown)
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}
}
