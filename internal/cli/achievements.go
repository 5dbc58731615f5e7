package cli

import (
	"github.com/spf13/cobra"

	"questnotes/internal/achievements"
)

func newAchievementsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "achievements",
		Aliases: []string{"ach"},
		Short:   "List achievements and which are unlocked",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := openEngine(cmdContext(cmd), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			list := achievements.Progress(eng.State())
			earned := 0
			for _, a := range list {
				if a.Earned {
					earned++
				}
			}
			r := respond(list, func() string { return renderAchievements(list) })
			r.Meta = map[string]any{"earned": earned, "total": len(list)}
			return writeOut(cmd, app, r)
		},
	}
}
