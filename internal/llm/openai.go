package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/shared"
)

// Complete sends question as the only user message and returns the text of the first choice
func (c *Client) Complete(ctx context.Context, question string) (string, error) {
	res, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(question),
		},
	})
	if err != nil {
		return "", classify(fmt.Errorf("failed to generate completion: %w", err))
	}

	if len(res.Choices) == 0 {
		return "", &CompletionError{Kind: KindMalformed, Err: ErrNoChoices}
	}

	return res.Choices[0].Message.Content, nil
}
