package cli

import (
	"github.com/spf13/cobra"

	"questnotes/internal/publish"
	"questnotes/internal/ui"
)

func newPublishCmd(app *App) *cobra.Command {
	var (
		to               string
		questRef         string
		includeCompleted bool
		overwrite        bool
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Write the quest log (or one quest) as markdown files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := openEngine(cmdContext(cmd), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			st := eng.State()
			opt := publish.WriteOptions{IncludeCompleted: includeCompleted, Overwrite: overwrite}

			var res publish.WriteResult
			if questRef != "" {
				q, err := resolveQuest(st, questRef)
				if err != nil {
					return writeErr(cmd, err)
				}
				res, err = publish.WriteQuest(st, q.ID, to, opt)
				if err != nil {
					return writeErr(cmd, err)
				}
			} else if res, err = publish.WriteLog(st, to, opt); err != nil {
				return writeErr(cmd, err)
			}

			return writeOut(cmd, app, respond(res, func() string {
				return ui.Heading(ui.IconScroll, "Published") + "\n" + joinLines(res.Written)
			}))
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Output directory")
	cmd.Flags().StringVar(&questRef, "quest", "", "Publish only this quest")
	cmd.Flags().BoolVar(&includeCompleted, "include-completed", false, "Include completed quests")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing files")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
