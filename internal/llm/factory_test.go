package llm

import (
	"testing"
)

func TestNewClient_UnsupportedProvider(t *testing.T) {
	if _, err := NewClient("bard", "some-model", ""); err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}

func TestNewClient_OllamaRequiresModel(t *testing.T) {
	if _, err := NewClient("ollama", "", ""); err == nil {
		t.Fatal("expected error when ollama model is missing")
	}
}

func TestNewClient_LMStudioRequiresModel(t *testing.T) {
	if _, err := NewClient("lmstudio", "  ", ""); err == nil {
		t.Fatal("expected error when lm studio model is missing")
	}
}

func TestNewClient_LMStudio(t *testing.T) {
	client, err := NewClient("lm-studio", "qwen2.5", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := client.(*LMStudioClient); !ok {
		t.Fatalf("client = %T, want *LMStudioClient", client)
	}
}
