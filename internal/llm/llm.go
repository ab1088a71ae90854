// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm sends chat prompts to a hosted language model and returns the
// raw completion text.
// Implements: prd003-llm (R1-R3);
//
//	docs/ARCHITECTURE.md § Generation.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/prospect-engine/internal/httputil"
	"github.com/pdiddy/prospect-engine/pkg/types"
)

// defaultTemperature keeps analysis output stable across runs.
const defaultTemperature = 0.3

// Client generates one completion for a system/user prompt pair. The
// system prompt may be empty; providers then send the user prompt alone.
type Client interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// New builds the Client for cfg.Provider and wraps it in the shared retry
// policy, so every pipeline stage retries generation the same way (R2.2).
// Supported providers: "openrouter" (default) and "gemini".
func New(cfg types.AIConfig) (Client, error) {
	var backend Client
	switch strings.ToLower(cfg.Provider) {
	case "", "openrouter":
		backend = newOpenRouter(cfg)
	case "gemini":
		backend = newGemini(cfg)
	default:
		return nil, fmt.Errorf("unknown ai provider %q (expected openrouter or gemini)", cfg.Provider)
	}
	return &retryClient{
		backend: backend,
		policy:  httputil.Policy{MaxAttempts: cfg.MaxRetries},
	}, nil
}

// retryClient retries Generate under the engine-wide backoff policy.
type retryClient struct {
	backend Client
	policy  httputil.Policy
}

func (r *retryClient) Generate(ctx context.Context, system, user string) (string, error) {
	var out string
	err := r.policy.Do(ctx, func() error {
		text, err := r.backend.Generate(ctx, system, user)
		if err != nil {
			return err
		}
		out = text
		return nil
	})
	if err != nil {
		return "", err
	}
	return out, nil
}
