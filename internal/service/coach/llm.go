package coach

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	model "github.com/trainloop/fitcoach/internal/model/session"
)

const systemPrompt = "You are an encouraging personal fitness coach. " +
	"Answer briefly and concretely, prioritize safe technique, and adapt " +
	"advice to the athlete context provided below.\n\n{athleteContext}"

// LLMResponder generates coaching replies through a chat model chain. It
// is the real-model implementation behind the Responder capability; the
// canned responder remains the fallback when no model is configured.
type LLMResponder struct {
	chain     compose.Runnable[map[string]any, *schema.Message]
	streaming bool
}

// NewLLMResponder compiles the prompt/model chain for the supplied chat
// model.
func NewLLMResponder(ctx context.Context, chatModel einomodel.ChatModel, streaming bool) (*LLMResponder, error) {
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(systemPrompt),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("compile coach chain: %w", err)
	}

	return &LLMResponder{chain: runnable, streaming: streaming}, nil
}

// StreamingEnabled indicates whether SSE streaming output is configured.
func (r *LLMResponder) StreamingEnabled() bool {
	return r.streaming
}

// Respond runs the chain and returns the full reply.
func (r *LLMResponder) Respond(ctx context.Context, message string, sessionContext map[string]string, history []model.Entry) (string, error) {
	response, err := r.chain.Invoke(ctx, chainInput(message, sessionContext, history))
	if err != nil {
		return "", fmt.Errorf("run coach chain: %w", err)
	}
	log.Printf("[coach] generated reply length=%d", len(response.Content))
	return response.Content, nil
}

// Stream runs the chain and returns a reader over reply chunks.
func (r *LLMResponder) Stream(ctx context.Context, message string, sessionContext map[string]string, history []model.Entry) (*schema.StreamReader[*schema.Message], error) {
	if !r.streaming {
		return nil, fmt.Errorf("streaming disabled in configuration")
	}
	return r.chain.Stream(ctx, chainInput(message, sessionContext, history))
}

func chainInput(message string, sessionContext map[string]string, history []model.Entry) map[string]any {
	messages := make([]*schema.Message, 0, len(history))
	for _, entry := range history {
		switch entry.Role {
		case model.RoleAssistant:
			messages = append(messages, schema.AssistantMessage(entry.Content, nil))
		default:
			messages = append(messages, schema.UserMessage(entry.Content))
		}
	}

	return map[string]any{
		"athleteContext": formatContext(sessionContext),
		"history":        messages,
		"query":          message,
	}
}

// formatContext renders the opaque session context as stable key: value
// lines so identical contexts produce identical prompts.
func formatContext(sessionContext map[string]string) string {
	if len(sessionContext) == 0 {
		return "No athlete context provided."
	}

	keys := make([]string, 0, len(sessionContext))
	for k := range sessionContext {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\n", k, sessionContext[k])
	}
	return strings.TrimRight(b.String(), "\n")
}
