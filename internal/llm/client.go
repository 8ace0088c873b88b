package llm

import (
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Client relays single questions to the OpenAI Chat Completions API
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a new LLM client with API key.
// An empty baseURL keeps the SDK default endpoint.
func NewClient(apiKey, model, baseURL string) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		// one outbound call per question
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(opts...)
	return &Client{
		client: &client,
		model:  model,
	}
}

// Model returns the chat model used for completions
func (c *Client) Model() string {
	return c.model
}
