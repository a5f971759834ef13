package gemini

import (
	"strings"
	"testing"
)

func TestGenerationConfig_FixedParameters(t *testing.T) {
	cfg := GenerationConfig()
	if cfg.MaxOutputTokens == nil || *cfg.MaxOutputTokens != 3000 {
		t.Errorf("maxOutputTokens: expected 3000, got %v", cfg.MaxOutputTokens)
	}
	if cfg.TopP == nil || *cfg.TopP != 0.1 {
		t.Errorf("topP: expected 0.1, got %v", cfg.TopP)
	}
	if cfg.TopK == nil || *cfg.TopK != 20 {
		t.Errorf("topK: expected 20, got %v", cfg.TopK)
	}
	if cfg.Temperature == nil || *cfg.Temperature != 0.3 {
		t.Errorf("temperature: expected 0.3, got %v", cfg.Temperature)
	}
}

func TestPrompt_RequestsStructuredSections(t *testing.T) {
	p := Prompt()
	for _, tag := range []string{"<ocr>", "<caption>", "<short_caption>"} {
		if !strings.Contains(p, tag) {
			t.Errorf("prompt missing %s section", tag)
		}
	}
}
