package mentor

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/coordinator-insight/backend/internal/model/chat"
)

// ChatModelFactory builds the underlying eino chat model.
type ChatModelFactory func(ctx context.Context) (model.ChatModel, error)

// ArkBackend runs completion calls through an eino chain on a Volcengine Ark
// chat model. The chain is compiled on first use.
type ArkBackend struct {
	newModel ChatModelFactory

	mu    sync.Mutex
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewArkBackend returns a backend whose chat model is created by factory.
func NewArkBackend(factory ChatModelFactory) *ArkBackend {
	return &ArkBackend{newModel: factory}
}

// Generate runs the system/history/query chain once.
func (b *ArkBackend) Generate(ctx context.Context, req Request) (string, error) {
	chain, err := b.ensureChain(ctx)
	if err != nil {
		return "", err
	}

	input := map[string]any{
		"system":  req.SystemInstruction,
		"history": arkHistory(req.History),
		"query":   req.Message,
	}

	response, err := chain.Invoke(ctx, input,
		compose.WithChatModelOption(model.WithTemperature(req.Temperature)),
	)
	if err != nil {
		return "", fmt.Errorf("failed to run ark chain: %w", err)
	}
	if response == nil {
		return "", fmt.Errorf("ark chain: %w", ErrMalformedResponse)
	}
	return response.Content, nil
}

func (b *ArkBackend) ensureChain(ctx context.Context) (compose.Runnable[map[string]any, *schema.Message], error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.chain != nil {
		return b.chain, nil
	}

	chatModel, err := b.newModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}
	b.chain = runnable
	return runnable, nil
}

func arkHistory(turns []chat.Turn) []*schema.Message {
	history := make([]*schema.Message, 0, len(turns))
	for _, turn := range turns {
		if chat.NormalizeRole(turn.Role) == chat.RoleAssistant {
			history = append(history, schema.AssistantMessage(turn.Content, nil))
			continue
		}
		history = append(history, schema.UserMessage(turn.Content))
	}
	return history
}
