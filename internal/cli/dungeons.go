package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"questnotes/internal/game"
	"questnotes/internal/model"
	"questnotes/internal/ui"
	"questnotes/internal/view"
)

func newDungeonsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dungeons",
		Aliases: []string{"dungeon", "d"},
		Short:   "Dungeon (folder) commands",
	}
	cmd.AddCommand(newDungeonsAddCmd(app))
	cmd.AddCommand(newDungeonsListCmd(app))
	cmd.AddCommand(newDungeonsEditCmd(app))
	cmd.AddCommand(newDungeonsDeleteCmd(app))
	cmd.AddCommand(newDungeonsSelectCmd(app))
	return cmd
}

func newDungeonsAddCmd(app *App) *cobra.Command {
	var icon string

	cmd := &cobra.Command{
		Use:   "add <name...>",
		Short: "Create a dungeon",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := openEngine(cmdContext(cmd), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			d, err := game.NewDungeon(strings.Join(args, " "), icon, app.now())
			if err != nil {
				return writeErr(cmd, err)
			}
			_, outcome := apply(cmd, eng, game.AddDungeon{Dungeon: d})
			return writeOut(cmd, app, respond(d, func() string {
				return renderOutcome(ui.Good.Render("Dungeon discovered: ")+strings.TrimSpace(d.Icon+" "+d.Name), outcome)
			}))
		},
	}
	cmd.Flags().StringVar(&icon, "icon", "", "Dungeon icon (default 🏰)")
	return cmd
}

func newDungeonsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List dungeons with open quest counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := openEngine(cmdContext(cmd), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			st := eng.State()
			counts := view.Counts(st)
			r := respond(st.Dungeons, func() string { return renderDungeons(st, counts) })
			r.Meta = map[string]any{
				"counts":   counts,
				"selected": view.SelectionLabel(st, st.SelectedDungeonID),
			}
			return writeOut(cmd, app, r)
		},
	}
}

func newDungeonsEditCmd(app *App) *cobra.Command {
	var name, icon string

	cmd := &cobra.Command{
		Use:   "edit <dungeon>",
		Short: "Rename a dungeon or change its icon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := openEngine(cmdContext(cmd), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			d, err := resolveDungeon(eng.State(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			changed := cmd.Flags().Changed
			if !changed("name") && !changed("icon") {
				return writeErr(cmd, errors.New("nothing to change (pass --name or --icon)"))
			}
			if changed("name") {
				d.Name = strings.TrimSpace(name)
			}
			if changed("icon") {
				d.Icon = strings.TrimSpace(icon)
			}
			if err := model.Validate(d); err != nil {
				return writeErr(cmd, err)
			}
			apply(cmd, eng, game.UpdateDungeon{Dungeon: d})
			return writeOut(cmd, app, respond(d, func() string {
				return ui.Good.Render("Dungeon updated: ") + strings.TrimSpace(d.Icon+" "+d.Name)
			}))
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&icon, "icon", "", "New icon")
	return cmd
}

func newDungeonsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <dungeon>",
		Aliases: []string{"rm"},
		Short:   "Delete a dungeon; its quests move to the wilderness",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := openEngine(cmdContext(cmd), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			before := eng.State()
			d, err := resolveDungeon(before, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			moved := len(view.BySelection(before, model.Ptr(d.ID)))
			apply(cmd, eng, game.DeleteDungeon{ID: d.ID})

			data := map[string]any{"id": d.ID, "deleted": true, "questsMoved": moved}
			return writeOut(cmd, app, respond(data, func() string {
				return ui.Muted.Render("Dungeon collapsed: ") + d.Name + ui.Muted.Render(" (quests moved to the wilderness)")
			}))
		},
	}
}

func newDungeonsSelectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "select <dungeon|wilderness|all>",
		Short: "Choose which dungeon the board and new quests use",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := openEngine(cmdContext(cmd), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			sel, err := resolveSelection(eng.State(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			st, _ := apply(cmd, eng, game.SelectDungeon{Selection: sel})
			label := view.SelectionLabel(st, st.SelectedDungeonID)
			data := map[string]any{"selectedDungeonId": st.SelectedDungeonID, "label": label}
			return writeOut(cmd, app, respond(data, func() string {
				return ui.LabelValue("Viewing", label)
			}))
		},
	}
}
