package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"questnotes/internal/config"
	"questnotes/internal/format"
	"questnotes/internal/game"
	"questnotes/internal/logging"
	"questnotes/internal/model"
	"questnotes/internal/store"
	"questnotes/internal/tui"
)

type App struct {
	Dir        string
	Format     string
	PrettyJSON bool
	LogLevel   string
	LogDev     bool
	StorageKey string

	cfg    config.Config
	cfgErr error
	log    *zap.Logger
	now    func() time.Time
}

func NewRootCmd() *cobra.Command {
	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		cfg, _ = config.LoadFrom(map[string]string{})
	}
	app := &App{cfg: cfg, cfgErr: cfgErr, log: zap.NewNop(), now: time.Now}

	cmd := &cobra.Command{
		Use:          "questnotes",
		Short:        "QuestNotes: notes and tasks as an RPG quest log",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Open the quest board
  questnotes

  # Scriptable commands
  questnotes quests add "Write the report" --priority dragon
  questnotes quests list --status active --sort priority
  questnotes status --format json

  # Direct quest lookup (shortcut for: questnotes quests show <quest-id>)
  questnotes 0b6f2c1e-5d7a-4c1e-9a43-2f1d6c0e8b11
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.HasSubCommands() && len(args) == 0 {
				return runBoard(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if app.cfgErr != nil {
			return writeErr(cmd, app.cfgErr)
		}
		f, err := format.Parse(app.Format)
		if err != nil {
			return writeErr(cmd, err)
		}
		app.Format = f
		l, err := logging.New(app.LogLevel, app.LogDev)
		if err != nil {
			return writeErr(cmd, err)
		}
		app.log = l
		return nil
	}
	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		_ = app.log.Sync()
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", cfg.Dir, "Data directory (default: $QUESTNOTES_HOME or ~/.questnotes)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", cfg.Format, "Output format (json|yaml|text)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().BoolVar(&app.LogDev, "log-dev", cfg.LogDev, "Human-readable logs")
	cmd.PersistentFlags().StringVar(&app.StorageKey, "storage-key", cfg.StorageKey, "Save slot key")

	cmd.AddCommand(newStatusCmd(app))
	cmd.AddCommand(newQuestsCmd(app))
	cmd.AddCommand(newDungeonsCmd(app))
	cmd.AddCommand(newCharacterCmd(app))
	cmd.AddCommand(newAchievementsCmd(app))
	cmd.AddCommand(newSoundCmd(app))
	cmd.AddCommand(newSaveCmd(app))
	cmd.AddCommand(newResetCmd(app))
	cmd.AddCommand(newPublishCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newBoardCmd(app))

	return cmd
}

func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive quest board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd, app)
		},
	}
}

func runBoard(cmd *cobra.Command, app *App) error {
	ctx := cmdContext(cmd)
	eng, _, err := openEngine(ctx, app, game.WithDebouncedSave(300*time.Millisecond))
	if err != nil {
		return writeErr(cmd, err)
	}
	if err := tui.Run(ctx, eng, cmd.OutOrStdout()); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

func dataDir(app *App) (string, error) {
	if d := strings.TrimSpace(app.Dir); d != "" {
		return d, nil
	}
	return app.cfg.DataDir()
}

func openGateway(app *App) (*store.Gateway, error) {
	dir, err := dataDir(app)
	if err != nil {
		return nil, err
	}
	return store.Open(dir, store.WithKey(app.StorageKey), store.WithLogger(app.log)), nil
}

func openEngine(ctx context.Context, app *App, opts ...game.EngineOption) (*game.Engine, *store.Gateway, error) {
	gw, err := openGateway(app)
	if err != nil {
		return nil, nil, err
	}
	opts = append([]game.EngineOption{game.WithLogger(app.log)}, opts...)
	return game.Open(ctx, gw, opts...), gw, nil
}

// apply dispatches a and reports, without failing, a save that did not
// stick.
func apply(cmd *cobra.Command, eng *game.Engine, a game.Action) (model.GameState, game.Outcome) {
	st, out := eng.Dispatch(cmdContext(cmd), a)
	if out.Changed {
		if err := eng.SaveErr(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: progress not saved: %v\n", err)
		}
	}
	return st, out
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
