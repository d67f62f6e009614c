package llm

import (
	"context"
	"testing"
	"time"

	"github.com/maemreyo/canonica/internal/model"
)

func TestNewClientDisabledWithoutProvider(t *testing.T) {
	client, err := NewClient(model.LLMConfig{}, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if client != nil {
		t.Fatal("no provider configured, want nil client")
	}
}

func TestNewClientUnknownProvider(t *testing.T) {
	_, err := NewClient(model.LLMConfig{Provider: "carrier-pigeon", APIKey: "k"}, nil)
	if !model.IsConfigError(err) {
		t.Fatalf("error = %v, want configuration-class", err)
	}
}

func TestNewClientMissingAPIKey(t *testing.T) {
	_, err := NewClient(model.LLMConfig{Provider: "openai"}, nil)
	if !model.IsConfigError(err) {
		t.Fatalf("error = %v, want configuration-class", err)
	}
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(model.LLMConfig{Provider: "OpenAI", APIKey: "test-key"}, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if client.Name() != "openai" {
		t.Errorf("Name() = %q, want normalized provider", client.Name())
	}
	if client.Model() == "" {
		t.Error("Model() empty, want a default model")
	}
}

func TestLimiterAllowsBurst(t *testing.T) {
	limiter := NewLimiter(1, 3)

	for i := 0; i < 3; i++ {
		if !limiter.Allow("openai") {
			t.Fatalf("request %d denied within burst", i)
		}
	}
	if limiter.Allow("openai") {
		t.Error("request beyond burst allowed immediately")
	}
}

func TestLimiterIsPerProvider(t *testing.T) {
	limiter := NewLimiter(1, 1)

	if !limiter.Allow("openai") {
		t.Fatal("first openai request denied")
	}
	if !limiter.Allow("other") {
		t.Error("other provider shares openai's bucket")
	}
}

func TestLimiterZeroRateClamped(t *testing.T) {
	// A zero configured rate must not leave Wait blocked forever after
	// the initial burst
	limiter := NewLimiter(0, 1)
	if !limiter.Allow("openai") {
		t.Fatal("burst request denied")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := limiter.Wait(ctx, "openai"); err != nil {
		t.Errorf("Wait after burst = %v, want refill under the clamped rate", err)
	}
}

func TestSetProviderRateOverrides(t *testing.T) {
	limiter := NewLimiter(1, 1)
	limiter.SetProviderRate("openai", 100, 10)

	for i := 0; i < 10; i++ {
		if !limiter.Allow("openai") {
			t.Fatalf("request %d denied despite raised burst", i)
		}
	}
}

func TestLimiterWaitHonorsContext(t *testing.T) {
	limiter := NewLimiter(0.001, 1)
	if !limiter.Allow("openai") {
		t.Fatal("burst request denied")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx, "openai"); err == nil {
		t.Error("Wait returned nil despite exhausted budget and expired context")
	}
}
