package cli

import (
	"errors"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"questnotes/internal/game"
	"questnotes/internal/model"
	"questnotes/internal/ui"
)

func newCharacterCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "character",
		Aliases: []string{"char"},
		Short:   "Character commands",
	}
	cmd.AddCommand(newCharacterNameCmd(app))
	cmd.AddCommand(newCharacterCompanionCmd(app))
	cmd.AddCommand(newCharacterXPCmd(app))
	return cmd
}

func newCharacterNameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "name <name...>",
		Short: "Rename the character",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(strings.Join(args, " "))
			c := model.DefaultCharacter()
			c.Name = name
			if err := model.Validate(c); err != nil {
				return writeErr(cmd, err)
			}
			eng, _, err := openEngine(cmdContext(cmd), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			st, _ := apply(cmd, eng, game.SetCharacterName{Name: name})
			return writeOut(cmd, app, respond(st.Character, func() string {
				return ui.LabelValue("Name", st.Character.Name)
			}))
		},
	}
}

func newCharacterCompanionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "companion <cat|dog|dragon|slime>",
		Short: "Choose a companion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := model.ParseCompanion(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			eng, _, err := openEngine(cmdContext(cmd), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			st, _ := apply(cmd, eng, game.SetCompanion{Companion: c})
			return writeOut(cmd, app, respond(st.Character, func() string {
				return ui.LabelValue("Companion", ui.CompanionLabel(st.Character.Companion))
			}))
		},
	}
}

func newCharacterXPCmd(app *App) *cobra.Command {
	var amount int

	cmd := &cobra.Command{
		Use:   "xp [amount]",
		Short: "Grant (or, with a negative amount, remove) experience",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := amount
			switch {
			case len(args) == 1 && cmd.Flags().Changed("amount"):
				return writeErr(cmd, errors.New("pass the amount once, either as an argument or with --amount"))
			case len(args) == 1:
				v, err := strconv.Atoi(strings.TrimSpace(args[0]))
				if err != nil {
					return writeErr(cmd, errors.New("invalid xp amount: "+args[0]))
				}
				n = v
			case !cmd.Flags().Changed("amount"):
				return writeErr(cmd, errors.New("missing xp amount"))
			}

			eng, _, err := openEngine(cmdContext(cmd), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			_, outcome := apply(cmd, eng, game.AddXP{Amount: n})
			return writeOut(cmd, app, respond(outcome, func() string {
				return renderOutcome(ui.Gold.Render("Experience adjusted"), outcome)
			}))
		},
	}
	cmd.Flags().IntVar(&amount, "amount", 0, "XP to add (negative to remove)")
	return cmd
}
