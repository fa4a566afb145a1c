package mentor

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coordinator-insight/backend/internal/config"
	"github.com/coordinator-insight/backend/internal/model/chat"
)

type fakeChatModel struct {
	input       []*schema.Message
	temperature *float32
	reply       string
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.input = input
	f.temperature = model.GetCommonOptions(&model.Options{}, opts...).Temperature
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := f.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func (f *fakeChatModel) BindTools([]*schema.ToolInfo) error { return nil }

func TestArkBackendChainOrdering(t *testing.T) {
	fake := &fakeChatModel{reply: "Cold ischemia time matters."}
	backend := NewArkBackend(func(context.Context) (model.ChatModel, error) { return fake, nil })

	reply, err := backend.Generate(context.Background(), Request{
		SystemInstruction: "mentor persona",
		Temperature:       0.7,
		History: []chat.Turn{
			{Role: chat.RoleAssistant, Content: "Welcome!"},
			{Role: chat.RoleUser, Content: "first"},
		},
		Message: "second",
	})

	require.NoError(t, err)
	assert.Equal(t, "Cold ischemia time matters.", reply)

	require.Len(t, fake.input, 4)
	assert.Equal(t, schema.System, fake.input[0].Role)
	assert.Equal(t, "mentor persona", fake.input[0].Content)
	assert.Equal(t, schema.Assistant, fake.input[1].Role)
	assert.Equal(t, schema.User, fake.input[2].Role)
	assert.Equal(t, "second", fake.input[3].Content)
	require.NotNil(t, fake.temperature)
	assert.InDelta(t, 0.7, *fake.temperature, 1e-6)
}

func TestArkBackendRetriesModelCreation(t *testing.T) {
	calls := 0
	backend := NewArkBackend(func(context.Context) (model.ChatModel, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("ark unavailable")
		}
		return &fakeChatModel{reply: "ok"}, nil
	})

	_, err := backend.Generate(context.Background(), Request{Message: "hi"})
	require.Error(t, err)

	reply, err := backend.Generate(context.Background(), Request{Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
}

func TestNewBackendArkWithoutCredentialsIsAuthFailure(t *testing.T) {
	backend, err := NewBackend(config.MentorConfig{Provider: config.ProviderArk})
	require.NoError(t, err)

	_, err = backend.Generate(context.Background(), Request{Message: "hi"})
	require.ErrorIs(t, err, ErrMissingCredential)
	assert.Equal(t, KindAuth, KindOf(err))
}

func TestModelFor(t *testing.T) {
	assert.Equal(t, DefaultGeminiModel, ModelFor(config.MentorConfig{Provider: config.ProviderGemini}))
	assert.Equal(t, "custom", ModelFor(config.MentorConfig{Model: "custom"}))
	assert.Equal(t, "ep-1", ModelFor(config.MentorConfig{Provider: config.ProviderArk, Ark: config.ArkConfig{Model: "ep-1"}}))
}
