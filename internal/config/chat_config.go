package config

type ChatConfig interface {
	GetOpenAIKey() string
	GetOpenAIBaseURL() string
	GetDefaultChatModel() string
}

type Chat struct{}

var _ ChatConfig = Chat{}

func (Chat) GetOpenAIKey() string {
	return GetEnv("API_GPT", "")
}

// GetOpenAIBaseURL overrides the upstream endpoint, used for tests and proxies.
func (Chat) GetOpenAIBaseURL() string {
	return GetEnv("OPENAI_BASE_URL", "")
}

func (Chat) GetDefaultChatModel() string {
	return GetEnv("OPENAI_MODEL", "gpt-3.5-turbo")
}
