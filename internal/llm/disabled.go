package llm

import "context"

// DisabledClient is used when no API key is configured and in tests.
// Every call fails with ErrDisabled so callers exercise their
// rule-based fallbacks.
type DisabledClient struct{}

func NewDisabledClient() *DisabledClient {
	return &DisabledClient{}
}

func (*DisabledClient) Complete(ctx context.Context, prompt string) (string, error) {
	return "", ErrDisabled
}
