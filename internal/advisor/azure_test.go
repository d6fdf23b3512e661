package advisor

import (
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/ai/azopenai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAzureCompleter_ChatOptions(t *testing.T) {
	c, err := NewAzureCompleter("https://example.openai.azure.com", "key", "gpt4")
	require.NoError(t, err)

	opts := c.chatOptions(Request{System: "sys", User: "usr", JSON: true, Temperature: 0.2, Seed: 7})
	assert.Equal(t, "gpt4", *opts.DeploymentName)
	assert.IsType(t, &azopenai.ChatCompletionsJSONResponseFormat{}, opts.ResponseFormat)
	assert.InDelta(t, 0.2, float64(*opts.Temperature), 1e-6)
	assert.Equal(t, int64(7), *opts.Seed)
	require.Len(t, opts.Messages, 1)

	plain := c.chatOptions(Request{User: "usr"})
	assert.Nil(t, plain.ResponseFormat)
	assert.Nil(t, plain.Temperature)
	assert.Nil(t, plain.Seed)
}
