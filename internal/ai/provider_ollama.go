package ai

import "net/http"

const defaultOllamaModel = "llama3:8b"

// NewOllamaProvider creates a provider for self-hosted Ollama, which exposes
// an OpenAI-compatible API under /v1. No API key is required.
func NewOllamaProvider(baseURL string, opts ...OpenAIOption) *OpenAIProvider {
	opts = append([]OpenAIOption{
		WithBaseURL(baseURL + "/v1"),
		WithProviderName("ollama"),
		WithDefaultModel(defaultOllamaModel),
		WithHTTPClient(http.DefaultClient),
		WithModels([]ModelInfo{
			{ID: defaultOllamaModel, Name: "Llama 3 8B", MaxTokens: 8192, Description: "Self-hosted Llama 3"},
			{ID: "mistral:7b", Name: "Mistral 7B", MaxTokens: 8192, Description: "Self-hosted Mistral"},
		}),
	}, opts...)
	return NewOpenAIProvider("", opts...)
}
