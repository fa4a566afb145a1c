package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coordinator-insight/backend/internal/config"
	"github.com/coordinator-insight/backend/internal/logging"
	"github.com/coordinator-insight/backend/internal/model/journey"
	"github.com/coordinator-insight/backend/internal/tui"
)

var (
	chatLogFile     string
	chatDark        bool
	chatPerspective string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the profile and mentor chat in the terminal",
	RunE:  runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatLogFile, "log-file", "", "Write logs to this file (the terminal is owned by the UI)")
	chatCmd.Flags().BoolVar(&chatDark, "dark", false, "Start with the dark theme")
	chatCmd.Flags().StringVar(&chatPerspective, "perspective", string(journey.Career), "Initial perspective: career or patient")
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	perspective, err := journey.Parse(chatPerspective)
	if err != nil {
		return fmt.Errorf("--perspective: %w", err)
	}

	logger := zap.NewNop()
	if chatLogFile != "" {
		logger, err = logging.New(logging.Options{
			Level:       cfg.Log.Level,
			Verbose:     verbose,
			OutputPaths: []string{chatLogFile},
		})
		if err != nil {
			return err
		}
	}
	defer func() { _ = logger.Sync() }()

	application, err := newApp(cfg, logger)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	session, err := application.chat.CreateSession(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = application.chat.CloseSession(ctx, session.ID()) }()

	program := tea.NewProgram(
		tui.New(ctx, tui.Options{
			Session: session,
			Persona: application.persona,
			Initial: perspective.Option(),
			Dark:    chatDark,
			Logger:  logger,
		}),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	_, err = program.Run()
	return err
}
