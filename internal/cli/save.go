package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"questnotes/internal/game"
	"questnotes/internal/store"
	"questnotes/internal/ui"
)

var errNeedsConfirm = errors.New("refusing without --yes")

func newSaveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Backup, restore, and clear the save",
	}
	cmd.AddCommand(newSaveExportCmd(app))
	cmd.AddCommand(newSaveImportCmd(app))
	cmd.AddCommand(newSaveClearCmd(app))
	return cmd
}

func newSaveExportCmd(app *App) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the save envelope to stdout or a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := openGateway(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := gw.Export(cmdContext(cmd))
			if err != nil {
				return writeErr(cmd, err)
			}
			if b == nil {
				return writeErr(cmd, errors.New("no saved game to export"))
			}

			if strings.TrimSpace(outPath) == "" {
				if _, err := cmd.OutOrStdout().Write(b); err != nil {
					return writeErr(cmd, err)
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout())
				return err
			}
			if err := store.WriteFileAtomic(outPath, b, 0o644); err != nil {
				return writeErr(cmd, err)
			}
			data := map[string]any{"path": outPath, "bytes": len(b)}
			return writeOut(cmd, app, respond(data, func() string {
				return ui.Good.Render("Backup written: ") + outPath
			}))
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to this file instead of stdout")
	return cmd
}

func newSaveImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace the save with a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				b   []byte
				err error
			)
			if args[0] == "-" {
				b, err = io.ReadAll(cmd.InOrStdin())
			} else {
				b, err = os.ReadFile(args[0])
			}
			if err != nil {
				return writeErr(cmd, err)
			}

			ctx := cmdContext(cmd)
			gw, err := openGateway(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := gw.Import(ctx, b); err != nil {
				return writeErr(cmd, err)
			}

			st := game.Open(ctx, gw, game.WithLogger(app.log)).State()
			data := map[string]any{
				"quests":   len(st.Quests),
				"dungeons": len(st.Dungeons),
				"level":    st.Character.Level,
			}
			return writeOut(cmd, app, respond(data, func() string {
				return ui.Good.Render("Backup restored: ") +
					fmt.Sprintf("%d quests, %d dungeons, level %d", len(st.Quests), len(st.Dungeons), st.Character.Level)
			}))
		},
	}
}

func newSaveClearCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the save from disk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return writeErr(cmd, errNeedsConfirm)
			}
			gw, err := openGateway(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := gw.Clear(cmdContext(cmd)); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, respond(map[string]any{"cleared": true}, func() string {
				return ui.Warn.Render("Save cleared.")
			}))
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm")
	return cmd
}

func newResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Start a new game (all quests, dungeons, and progress are lost)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return writeErr(cmd, errNeedsConfirm)
			}
			eng, _, err := openEngine(cmdContext(cmd), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			st, _ := apply(cmd, eng, game.ResetGame{})
			return writeOut(cmd, app, respond(newStatusView(st, app.now()), func() string {
				return ui.Warn.Render("A new adventure begins.")
			}))
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm")
	return cmd
}
