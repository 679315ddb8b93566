package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	sleepinadapter "sleeptracker/internal/modules/sleep/adapter/in"
	sleepoutadapter "sleeptracker/internal/modules/sleep/adapter/out"
	sleepservice "sleeptracker/internal/modules/sleep/service"
	sleepusecase "sleeptracker/internal/modules/sleep/usecase"
	"sleeptracker/internal/platform/clock"
	"sleeptracker/internal/platform/config"
	uiapp "sleeptracker/internal/ui/app"
	"sleeptracker/internal/ui/format"
)

type App struct {
	Config    config.Config
	Logger    zerolog.Logger
	Formatter *format.Formatter
	SleepCLI  sleepinadapter.CLIHandler
	SleepTUI  sleepinadapter.TUIHandler

	tracker *sleepusecase.Tracker
	store   sleepoutadapter.ClosableNightStore
}

// New wires the store, services and handlers. The tracker starts loading
// tonight and the history right away; Close releases it and the store.
func New(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*App, error) {
	strs, err := format.LoadStrings(cfg.StringsFile)
	if err != nil {
		return nil, err
	}
	formatter := format.NewFormatter(strs, time.Local)

	store, err := sleepoutadapter.NewNightStoreByEngine(cfg.Storage.Engine, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open night store: %w", err)
	}
	logger.Debug().Str("engine", cfg.Storage.Engine).Str("db", cfg.DBPath).Msg("night store ready")

	svc := sleepservice.NewNightService(clock.SystemClock{}, store)
	tracker := sleepusecase.NewTracker(ctx, svc, formatter, logger)
	history := sleepusecase.NewHistoryInteractor(svc)
	journal := sleepusecase.NewJournalInteractor(svc, formatter, sleepoutadapter.NewMarkdownJournal(time.Local), cfg.JournalDir, logger)

	return &App{
		Config:    cfg,
		Logger:    logger,
		Formatter: formatter,
		SleepCLI:  sleepinadapter.NewCLIHandler(tracker, history, history, journal),
		SleepTUI:  sleepinadapter.NewTUIHandler(tracker, history),
		tracker:   tracker,
		store:     store,
	}, nil
}

func (a *App) Close() error {
	a.tracker.Close()
	if err := a.store.Close(); err != nil {
		return fmt.Errorf("close night store: %w", err)
	}
	return nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.SleepTUI, app.SleepCLI, app.Formatter, uiapp.Options{
		ClearedMessage: app.Formatter.Strings().ClearedMessage,
		JournalDir:     app.Config.JournalDir,
	})
	defer model.Close()

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
