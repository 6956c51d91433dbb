package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmkit/internal/llm"
	"crmkit/internal/validation"
)

const leadInput = "Met with the ops director at Northwind Traders. They complain about " +
	"duplicate contacts in their CRM and want a cleanup plan before the Q4 campaign."

func newAssistService(client llm.Client) *AssistService {
	svc := NewAssistService(testConfig(), client, slog.Default())
	svc.now = func() time.Time {
		return time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	}
	return svc
}

func TestAssistService_Lead(t *testing.T) {
	client := &fakeLLM{available: true, response: "## Business Summary\nNorthwind wants dedup."}
	svc := newAssistService(client)

	out, err := svc.Lead(context.Background(), leadInput)
	require.NoError(t, err)

	assert.Contains(t, out, "**DRAFT - REQUIRES HUMAN REVIEW**")
	assert.Contains(t, out, "Northwind wants dedup.")
	assert.Contains(t, out, "_Generated at 2025-06-15 10:30:00 | Session-only data - not stored_")
	assert.NotContains(t, out, "REMINDER:")

	assert.Contains(t, client.lastReq.System, "lead/opportunity information")
	assert.Contains(t, client.lastReq.Prompt, "Northwind Traders")
}

func TestAssistService_Requirements(t *testing.T) {
	client := &fakeLLM{available: true, response: "## User Stories\n\n### Story 1: Dedup"}
	svc := newAssistService(client)

	out, err := svc.Requirements(context.Background(), leadInput)
	require.NoError(t, err)

	assert.Contains(t, out, "### Story 1: Dedup")
	assert.Contains(t, out, "**REMINDER:** This is a draft requiring human review.")
	assert.Contains(t, out, "_Generated at 2025-06-15 10:30:00")

	assert.Contains(t, client.lastReq.System, "execution-ready documentation")
	assert.Contains(t, client.lastReq.Prompt, "CLIENT INPUT:")
}

func TestAssistService_InputValidation(t *testing.T) {
	client := &fakeLLM{available: true, response: "unused"}
	svc := newAssistService(client)

	tests := []struct {
		name  string
		input string
	}{
		{"empty", "   "},
		{"too short", "hire us"},
		{"too long", strings.Repeat("a", 15001)},
		{"gibberish", strings.Repeat("!@#$%^&*()", 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Lead(context.Background(), tt.input)
			require.Error(t, err)

			var inputErr *validation.TextInputError
			assert.ErrorAs(t, err, &inputErr)
			assert.Zero(t, client.calls)
		})
	}
}

func TestAssistService_Unavailable(t *testing.T) {
	svc := newAssistService(llm.Disabled())

	_, err := svc.Lead(context.Background(), leadInput)
	assert.ErrorIs(t, err, llm.ErrUnavailable)

	_, err = svc.Requirements(context.Background(), leadInput)
	assert.ErrorIs(t, err, llm.ErrUnavailable)
}

func TestAssistService_GenerationFailure(t *testing.T) {
	client := &fakeLLM{available: true, err: errors.New("backend down")}
	svc := newAssistService(client)

	_, err := svc.Lead(context.Background(), leadInput)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend down")
}
