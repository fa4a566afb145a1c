package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/coordinator-insight/backend/internal/config"
	chatService "github.com/coordinator-insight/backend/internal/service/chat"
)

func TestNewAppUsesSeedPersona(t *testing.T) {
	cfg := &config.Config{Mentor: config.MentorConfig{Provider: config.ProviderGemini, Temperature: 0.7}}

	application, err := newApp(cfg, zap.NewNop())
	require.NoError(t, err)

	session, err := application.chat.CreateSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, application.persona.Welcome, session.Snapshot().Messages[0].Text)
}

func TestNewAppLoadsPersonaFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "personas.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`personas:
  - id: night-shift
    name: Night Shift Mentor
    welcome: Evening! Ask me about on-call rotations.
`), 0o600))

	cfg := &config.Config{
		Mentor:  config.MentorConfig{Provider: config.ProviderGemini},
		Persona: config.PersonaConfig{File: path},
	}
	application, err := newApp(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "night-shift", application.persona.ID)
}

func TestNewAppRejectsUnknownProvider(t *testing.T) {
	cfg := &config.Config{Mentor: config.MentorConfig{Provider: "openai"}}
	_, err := newApp(cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestNewAppMissingKeyFailsOnlyOnCall(t *testing.T) {
	cfg := &config.Config{Mentor: config.MentorConfig{Provider: config.ProviderGemini, CancelOnClose: true}}
	application, err := newApp(cfg, zap.NewNop())
	require.NoError(t, err)

	session, err := application.chat.CreateSession(context.Background())
	require.NoError(t, err)
	require.NoError(t, session.Submit(context.Background(), "hello"))

	snap := session.Snapshot()
	require.Len(t, snap.Messages, 3)
	assert.Equal(t, chatService.ApologyReply, snap.Messages[2].Text)
	assert.Equal(t, "auth", snap.LastFailure)
}

func TestRunServerStopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	srv := &http.Server{Addr: addr, Handler: http.NotFoundHandler(), ReadHeaderTimeout: time.Second}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- runServer(ctx, srv, zap.NewNop()) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return true
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
