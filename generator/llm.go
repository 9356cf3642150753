package generator

import (
	"context"
	"fmt"
)

// LLMClient 抽象大模型客户端，便于替换/Mock。
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings 提供给具体实现的基础配置。
type LLMSettings struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float64
}

// NewLLM 根据 Provider 构造客户端。deepseek 走 OpenAI 兼容接口，需要 BaseURL。
func NewLLM(cfg LLMSettings) (LLMClient, error) {
	switch cfg.Provider {
	case "", "openai":
		return NewOpenAILLMFromConfig(&cfg)
	case "deepseek":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
		return NewOpenAILLMFromConfig(&cfg)
	case "mock":
		return MockLLM{}, nil
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.Provider)
	}
}
