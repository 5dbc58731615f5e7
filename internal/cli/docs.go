package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"questnotes/internal/docs"
	"questnotes/internal/ui"
)

func newDocsCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show built-in help topics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				topics := docs.Topics()
				return writeOut(cmd, app, respond(map[string]any{"topics": topics}, func() string {
					return ui.Heading(ui.IconScroll, "Topics") + "\n" + joinLines(topics)
				}))
			}

			topic := args[0]
			body, ok := docs.Get(topic)
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown docs topic: %q (run `questnotes docs` to list topics)", topic))
			}
			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}
			return writeOut(cmd, app, respond(map[string]any{"topic": topic, "markdown": body}, func() string {
				return ui.RenderMarkdown(body, 80)
			}))
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown (no envelope)")
	return cmd
}
