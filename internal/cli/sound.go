package cli

import (
	"github.com/spf13/cobra"

	"questnotes/internal/game"
	"questnotes/internal/ui"
)

func newSoundCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sound",
		Short: "Toggle sound effects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := openEngine(cmdContext(cmd), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			st, _ := apply(cmd, eng, game.ToggleSound{})
			data := map[string]any{"soundEnabled": st.SoundEnabled}
			return writeOut(cmd, app, respond(data, func() string {
				return ui.LabelValue("Sound", onOff(st.SoundEnabled))
			}))
		},
	}
}
