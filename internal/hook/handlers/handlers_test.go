package handlers

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keynote-mcp/internal/hook"
)

func TestToolConfirmHandler_Allows(t *testing.T) {
	var out bytes.Buffer
	h := NewToolConfirmHandlerWithIO(strings.NewReader("y\n"), &out)

	data := hook.Before("delete_slide", "c1", `{"slide_number":2}`)
	fb, err := h.Handle(context.Background(), data)
	require.NoError(t, err)
	assert.True(t, fb.Allow)
	assert.Contains(t, out.String(), "delete_slide")
	assert.Contains(t, out.String(), `{"slide_number":2}`)
}

func TestToolConfirmHandler_DeniesByDefault(t *testing.T) {
	var out bytes.Buffer
	h := NewToolConfirmHandlerWithIO(strings.NewReader("\n"), &out)

	fb, err := h.Handle(context.Background(), hook.Before("close_presentation", "c", "{}"))
	require.NoError(t, err)
	assert.False(t, fb.Allow)
}

func TestToolConfirmHandler_NoInput(t *testing.T) {
	h := NewToolConfirmHandlerWithIO(strings.NewReader(""), &bytes.Buffer{})

	fb, err := h.Handle(context.Background(), hook.Before("x", "c", "{}"))
	require.NoError(t, err)
	assert.False(t, fb.Allow)
	assert.Equal(t, "No input received", fb.Message)
}

func TestToolConfirmHandler_OnlyListedTools(t *testing.T) {
	var out bytes.Buffer
	h := NewToolConfirmHandlerWithIO(strings.NewReader(""), &out, "delete_slide")

	fb, err := h.Handle(context.Background(), hook.Before("get_slide_count", "c", "{}"))
	require.NoError(t, err)
	assert.True(t, fb.Allow)
	assert.Empty(t, out.String())
}

func TestToolConfirmHandler_AnswersAcrossCalls(t *testing.T) {
	h := NewToolConfirmHandlerWithIO(strings.NewReader("yes\nno\n"), &bytes.Buffer{})

	fb, _ := h.Handle(context.Background(), hook.Before("a", "c", "{}"))
	assert.True(t, fb.Allow)
	fb, _ = h.Handle(context.Background(), hook.Before("b", "c", "{}"))
	assert.False(t, fb.Allow)
}

func TestToolDenyHandler(t *testing.T) {
	h := NewToolDenyHandler("close_presentation")

	fb, err := h.Handle(context.Background(), hook.Before("close_presentation", "c", "{}"))
	require.NoError(t, err)
	assert.False(t, fb.Allow)
	assert.Contains(t, fb.Message, "disabled by configuration")

	fb, _ = h.Handle(context.Background(), hook.Before("add_slide", "c", "{}"))
	assert.True(t, fb.Allow)

	assert.Greater(t, h.Priority(), NewToolConfirmHandler().Priority())
}

func TestToolConfirmHandler_Always(t *testing.T) {
	var out bytes.Buffer
	h := NewToolConfirmHandlerWithIO(strings.NewReader("a\n"), &out)

	fb, _ := h.Handle(context.Background(), hook.Before("delete_slide", "c1", `{"slide_number":2}`))
	assert.True(t, fb.Allow)

	// no input left, so a second prompt would deny
	fb, _ = h.Handle(context.Background(), hook.Before("delete_slide", "c2", `{"slide_number":3}`))
	assert.True(t, fb.Allow)
	assert.Equal(t, 1, strings.Count(out.String(), "Allow?"))

	fb, _ = h.Handle(context.Background(), hook.Before("add_slide", "c3", "{}"))
	assert.False(t, fb.Allow)
}
