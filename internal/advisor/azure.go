package advisor

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/ai/azopenai"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
)

// AzureCompleter calls an Azure OpenAI chat deployment.
type AzureCompleter struct {
	client     *azopenai.Client
	deployment string
}

// NewAzureCompleter creates a client for the deployment at endpoint.
func NewAzureCompleter(endpoint, apiKey, deployment string) (*AzureCompleter, error) {
	client, err := azopenai.NewClientWithKeyCredential(endpoint, azcore.NewKeyCredential(apiKey), nil)
	if err != nil {
		return nil, fmt.Errorf("creating Azure OpenAI client: %w", err)
	}
	return &AzureCompleter{client: client, deployment: deployment}, nil
}

// Name returns the deployment name.
func (c *AzureCompleter) Name() string { return "azure/" + c.deployment }

// Complete sends req as a single user message with the system prompt
// prepended.
func (c *AzureCompleter) Complete(ctx context.Context, req Request) (string, error) {
	resp, err := c.client.GetChatCompletions(ctx, c.chatOptions(req), nil)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) > 0 && resp.Choices[0].Message.Content != nil {
		return *resp.Choices[0].Message.Content, nil
	}
	return "", fmt.Errorf("no completion received from Azure OpenAI")
}

func (c *AzureCompleter) chatOptions(req Request) azopenai.ChatCompletionsOptions {
	prompt := req.User
	if req.System != "" {
		prompt = req.System + "\n\n" + req.User
	}
	opts := azopenai.ChatCompletionsOptions{
		DeploymentName: to.Ptr(c.deployment),
		Messages: []azopenai.ChatRequestMessageClassification{
			&azopenai.ChatRequestUserMessage{
				Content: azopenai.NewChatRequestUserMessageContent(prompt),
			},
		},
	}
	if req.JSON {
		opts.ResponseFormat = &azopenai.ChatCompletionsJSONResponseFormat{}
	}
	if req.Temperature > 0 {
		opts.Temperature = to.Ptr(float32(req.Temperature))
	}
	if req.Seed != 0 {
		opts.Seed = to.Ptr(req.Seed)
	}
	return opts
}
