// Command mentor serves the coordinator mentor chat over HTTP or in a terminal.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coordinator-insight/backend/internal/config"
	"github.com/coordinator-insight/backend/internal/model/persona"
	chatService "github.com/coordinator-insight/backend/internal/service/chat"
	"github.com/coordinator-insight/backend/internal/service/mentor"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "mentor",
	Short: "Transplant Coordinator career profile with an AI mentor",
	Long: `mentor hosts the Transplant Coordinator career profile.

"serve" exposes chat sessions and profile content over HTTP, SSE and WebSocket.
"chat" opens the profile and the mentor chat panel in the terminal.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env is optional; the process environment still applies
		_ = godotenv.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(chatCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds the services shared by every front-end.
type app struct {
	personas *persona.MemoryStore
	persona  persona.Persona
	chat     *chatService.Service
}

func newApp(cfg *config.Config, logger *zap.Logger) (*app, error) {
	items := persona.Seed()
	if cfg.Persona.File != "" {
		loaded, err := persona.LoadFile(cfg.Persona.File)
		if err != nil {
			return nil, fmt.Errorf("load persona file: %w", err)
		}
		items = loaded
		logger.Info("loaded personas", zap.String("file", cfg.Persona.File), zap.Int("count", len(items)))
	}
	store := persona.NewMemoryStore(items)
	active := store.Default()

	backend, err := mentor.NewBackend(cfg.Mentor)
	if err != nil {
		return nil, err
	}
	temperature := cfg.Mentor.Temperature
	mentorSvc := mentor.NewService(backend, active, mentor.Options{
		Model:       mentor.ModelFor(cfg.Mentor),
		Temperature: &temperature,
	}, logger)

	policy := chatService.KeepInFlight
	if cfg.Mentor.CancelOnClose {
		policy = chatService.AbandonOnClose
	}

	logger.Info("mentor configured",
		zap.String("provider", string(cfg.Mentor.Provider)),
		zap.String("model", mentor.ModelFor(cfg.Mentor)),
		zap.String("persona", active.ID),
		zap.Bool("cancel_on_close", cfg.Mentor.CancelOnClose),
	)

	return &app{
		personas: store,
		persona:  active,
		chat: chatService.NewService(mentorSvc, active.Welcome,
			chatService.WithCancelPolicy(policy),
			chatService.WithLogger(logger),
		),
	}, nil
}
