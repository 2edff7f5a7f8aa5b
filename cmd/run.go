package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/edupath/internal/app"
	"github.com/abhisek/edupath/internal/logger"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, startOnQuiz bool) error {
	ctx := cmd.Context()

	eng, err := loadEngine()
	if err != nil {
		return err
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	settingsRepo := st.SettingsRepo()
	prefs, err := settingsRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	advisor, status, offline := buildAdvisor(ctx, st.EventRepo())

	log := logger.Get()
	log.Info("launching tui", zap.Bool("start_on_quiz", startOnQuiz), zap.Bool("offline", offline))

	return app.Run(app.Options{
		Engine:       eng,
		Advisor:      advisor,
		Offline:      offline,
		SettingsRepo: settingsRepo,
		Settings:     prefs,
		Status:       status,
		StartOnQuiz:  startOnQuiz,
		Logger:       log,
	})
}
