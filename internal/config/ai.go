package config

// AI identifies a completion provider backend.
type AI string

const (
	AIGemini    AI = "gemini"
	AIOpenAI    AI = "openai"
	AIAnthropic AI = "anthropic"
	AIOllama    AI = "ollama"
)

type Model string

const (
	ModelGeminiV25Pro       Model = "gemini-2.5-pro"
	ModelGeminiV25Flash     Model = "gemini-2.5-flash"
	ModelGeminiV25FlashLite Model = "gemini-2.5-flash-lite"

	ModelGPTV4o     Model = "gpt-4o"
	ModelGPTV4oMini Model = "gpt-4o-mini"

	ModelClaudeSonnet Model = "claude-sonnet-4-20250514"
	ModelClaudeHaiku  Model = "claude-3-5-haiku-20241022"

	ModelLlama3 Model = "llama3.1"
	ModelQwen   Model = "qwen2.5-coder"
)

func SupportedAIs() []AI {
	return []AI{
		AIGemini,
		AIOpenAI,
		AIAnthropic,
		AIOllama,
	}
}

func IsSupportedAI(ai AI) bool {
	for _, supported := range SupportedAIs() {
		if ai == supported {
			return true
		}
	}
	return false
}

func ModelsForAI(ai AI) []Model {
	switch ai {
	case AIGemini:
		return []Model{
			ModelGeminiV25Pro,
			ModelGeminiV25Flash,
			ModelGeminiV25FlashLite,
		}
	case AIOpenAI:
		return []Model{
			ModelGPTV4o,
			ModelGPTV4oMini,
		}
	case AIAnthropic:
		return []Model{
			ModelClaudeSonnet,
			ModelClaudeHaiku,
		}
	case AIOllama:
		return []Model{
			ModelLlama3,
			ModelQwen,
		}
	default:
		return []Model{}
	}
}

func DefaultModelForAI(ai AI) Model {
	models := ModelsForAI(ai)
	if len(models) == 0 {
		return ""
	}
	return models[0]
}
