package adapter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPrompter(input string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	// -1 is never a terminal, so secrets are read as plain lines
	return NewPrompter(strings.NewReader(input), &out, -1), &out
}

func TestRunSetup(t *testing.T) {
	p, out := newTestPrompter("  my-key \npostgres://db/reviews\n")
	cfg := DefaultConfig()

	require.NoError(t, RunSetup(cfg, p))
	assert.Equal(t, "my-key", cfg.Catalog.APIKey)
	assert.Equal(t, "postgres://db/reviews", cfg.Reviews.DSN)
	assert.Contains(t, out.String(), "API key: ")
}

func TestRunSetup_SkipsDSNWhenConfigured(t *testing.T) {
	p, out := newTestPrompter("my-key\n")
	cfg := DefaultConfig()
	cfg.Reviews.DSN = "postgres://existing"

	require.NoError(t, RunSetup(cfg, p))
	assert.Equal(t, "postgres://existing", cfg.Reviews.DSN)
	assert.NotContains(t, out.String(), "PostgreSQL")
}

func TestRunSetup_EmptyKey(t *testing.T) {
	p, _ := newTestPrompter("\n")
	cfg := DefaultConfig()

	assert.ErrorIs(t, RunSetup(cfg, p), ErrNoAPIKey)
	assert.Empty(t, cfg.Catalog.APIKey)
}

func TestPrompter_LineWithoutTrailingNewline(t *testing.T) {
	p, _ := newTestPrompter("last")
	got, err := p.Line("> ")
	require.NoError(t, err)
	assert.Equal(t, "last", got)

	_, err = p.Line("> ")
	assert.Error(t, err)
}
