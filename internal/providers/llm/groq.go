package llm

// Groq provider is implemented using OpenAICompatible.
type Groq struct {
	*OpenAICompatible
}

func NewGroq(apiKey, model string) *Groq {
	return &Groq{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:    "https://api.groq.com/openai",
			APIKey:     apiKey,
			Model:      model,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
		}),
	}
}
