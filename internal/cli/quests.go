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

func newQuestsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "quests",
		Aliases: []string{"quest", "q"},
		Short:   "Quest commands",
	}
	cmd.AddCommand(newQuestsAddCmd(app))
	cmd.AddCommand(newQuestsListCmd(app))
	cmd.AddCommand(newQuestsShowCmd(app))
	cmd.AddCommand(newQuestsEditCmd(app))
	cmd.AddCommand(newQuestsDeleteCmd(app))
	cmd.AddCommand(newQuestsCompleteCmd(app))
	cmd.AddCommand(newQuestsUncompleteCmd(app))
	return cmd
}

type questFlags struct {
	title    string
	content  string
	priority string
	category string
	dungeon  string
}

func (f *questFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Quest title")
	cmd.Flags().StringVar(&f.content, "content", "", "Quest notes (markdown)")
	cmd.Flags().StringVar(&f.priority, "priority", "", "Priority (slime|goblin|dragon, or easy|medium|hard)")
	cmd.Flags().StringVar(&f.category, "category", "", "Category (knight|mage|bard|rogue)")
	cmd.Flags().StringVar(&f.dungeon, "dungeon", "", "Dungeon id or name, or 'wilderness'")
}

func newQuestsAddCmd(app *App) *cobra.Command {
	var f questFlags

	cmd := &cobra.Command{
		Use:   "add [title...]",
		Short: "Add a quest",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := openEngine(cmdContext(cmd), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			st := eng.State()

			title := f.title
			if title == "" {
				title = strings.Join(args, " ")
			}
			d := game.QuestDraft{Title: title, Content: f.content, DungeonID: st.SelectedDungeonID}
			if f.priority != "" {
				if d.Priority, err = model.ParsePriority(f.priority); err != nil {
					return writeErr(cmd, err)
				}
			}
			if f.category != "" {
				if d.Category, err = model.ParseCategory(f.category); err != nil {
					return writeErr(cmd, err)
				}
			}
			if cmd.Flags().Changed("dungeon") {
				if d.DungeonID, err = resolveSelection(st, f.dungeon); err != nil {
					return writeErr(cmd, err)
				}
			}
			if d.DungeonID != nil && *d.DungeonID != model.WildernessID {
				if _, _, ok := st.FindDungeon(*d.DungeonID); !ok {
					d.DungeonID = nil
				}
			}

			q, err := game.NewQuest(d, app.now())
			if err != nil {
				return writeErr(cmd, err)
			}
			st, _ = apply(cmd, eng, game.AddQuest{Quest: q})
			return writeOut(cmd, app, respond(q, func() string {
				return ui.Good.Render("New quest accepted!") + "\n" + renderQuestLine(q) + "\n" + ui.LabelValue("Dungeon", dungeonLabel(st, q.DungeonID))
			}))
		},
	}
	f.register(cmd)
	return cmd
}

func newQuestsListCmd(app *App) *cobra.Command {
	var (
		dungeon    string
		wilderness bool
		all        bool
		status     string
		sortBy     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List quests (defaults to the selected dungeon)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := openEngine(cmdContext(cmd), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			st := eng.State()

			sel := st.SelectedDungeonID
			switch {
			case all:
				sel = nil
			case wilderness:
				sel = model.Ptr(model.WildernessID)
			case dungeon != "":
				if sel, err = resolveSelection(st, dungeon); err != nil {
					return writeErr(cmd, err)
				}
			}
			filter, err := view.ParseStatusFilter(status)
			if err != nil {
				return writeErr(cmd, err)
			}
			order, err := view.ParseSortOrder(sortBy)
			if err != nil {
				return writeErr(cmd, err)
			}

			qs := view.Sort(view.ByStatus(view.BySelection(st, sel), filter), order)
			r := respond(qs, func() string { return renderQuestList(st, view.SelectionLabel(st, sel), qs) })
			r.Meta = map[string]any{
				"selection": view.SelectionLabel(st, sel),
				"status":    filter,
				"sort":      order,
				"count":     len(qs),
			}
			return writeOut(cmd, app, r)
		},
	}

	cmd.Flags().StringVar(&dungeon, "dungeon", "", "Dungeon id or name, 'wilderness', or 'all'")
	cmd.Flags().BoolVar(&wilderness, "wilderness", false, "Only quests outside any dungeon")
	cmd.Flags().BoolVar(&all, "all", false, "Quests from every dungeon")
	cmd.Flags().StringVar(&status, "status", "all", "Status filter (all|active|completed)")
	cmd.Flags().StringVar(&sortBy, "sort", "newest", "Sort order (newest|oldest|priority|category)")
	cmd.MarkFlagsMutuallyExclusive("dungeon", "wilderness", "all")
	return cmd
}

func newQuestsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <quest-id>",
		Short: "Show one quest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := openEngine(cmdContext(cmd), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			st := eng.State()
			q, err := resolveQuest(st, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, respond(q, func() string { return renderQuestDetail(st, q) }))
		},
	}
}

func newQuestsEditCmd(app *App) *cobra.Command {
	var f questFlags

	cmd := &cobra.Command{
		Use:   "edit <quest-id>",
		Short: "Edit a quest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := openEngine(cmdContext(cmd), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			st := eng.State()
			q, err := resolveQuest(st, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}

			changed := cmd.Flags().Changed
			if !changed("title") && !changed("content") && !changed("priority") && !changed("category") && !changed("dungeon") {
				return writeErr(cmd, errors.New("nothing to change (pass --title, --content, --priority, --category or --dungeon)"))
			}
			if changed("title") {
				q.Title = strings.TrimSpace(f.title)
			}
			if changed("content") {
				q.Content = f.content
			}
			if changed("priority") {
				if q.Priority, err = model.ParsePriority(f.priority); err != nil {
					return writeErr(cmd, err)
				}
			}
			if changed("category") {
				if q.Category, err = model.ParseCategory(f.category); err != nil {
					return writeErr(cmd, err)
				}
			}
			if changed("dungeon") {
				switch strings.ToLower(strings.TrimSpace(f.dungeon)) {
				case "", "all", model.WildernessID:
					q.DungeonID = nil
				default:
					d, err := resolveDungeon(st, f.dungeon)
					if err != nil {
						return writeErr(cmd, err)
					}
					q.DungeonID = model.Ptr(d.ID)
				}
			}
			if err := model.Validate(q); err != nil {
				return writeErr(cmd, err)
			}
			q.UpdatedAt = app.now()

			st, _ = apply(cmd, eng, game.UpdateQuest{Quest: q})
			return writeOut(cmd, app, respond(q, func() string { return renderQuestDetail(st, q) }))
		},
	}
	f.register(cmd)
	return cmd
}

func newQuestsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <quest-id>",
		Aliases: []string{"rm"},
		Short:   "Abandon (delete) a quest",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := openEngine(cmdContext(cmd), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			q, err := resolveQuest(eng.State(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			apply(cmd, eng, game.DeleteQuest{ID: q.ID})
			return writeOut(cmd, app, respond(map[string]any{"id": q.ID, "deleted": true}, func() string {
				return ui.Muted.Render("Quest abandoned: ") + q.Title
			}))
		},
	}
}

// questTransition is printed by complete/uncomplete.
type questTransition struct {
	Quest   model.Quest  `json:"quest" yaml:"quest"`
	Outcome game.Outcome `json:"outcome" yaml:"outcome"`
}

func newQuestsCompleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "complete <quest-id>",
		Aliases: []string{"done"},
		Short:   "Complete a quest and claim its XP",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuestTransition(cmd, app, args[0], true)
		},
	}
}

func newQuestsUncompleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "uncomplete <quest-id>",
		Aliases: []string{"reopen"},
		Short:   "Reopen a completed quest (its XP is taken back)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuestTransition(cmd, app, args[0], false)
		},
	}
}

func runQuestTransition(cmd *cobra.Command, app *App, ref string, complete bool) error {
	eng, _, err := openEngine(cmdContext(cmd), app)
	if err != nil {
		return writeErr(cmd, err)
	}
	q, err := resolveQuest(eng.State(), ref)
	if err != nil {
		return writeErr(cmd, err)
	}

	var a game.Action = game.UncompleteQuest{ID: q.ID}
	headline := ui.Warn.Render("Quest reopened: ") + q.Title
	if complete {
		a = game.CompleteQuest{ID: q.ID}
		headline = ui.Good.Render("Quest complete! ") + q.Title
	}
	st, outcome := apply(cmd, eng, a)
	q, _, _ = st.FindQuest(q.ID)

	res := questTransition{Quest: q, Outcome: outcome}
	return writeOut(cmd, app, respond(res, func() string { return renderOutcome(headline, outcome) }))
}
