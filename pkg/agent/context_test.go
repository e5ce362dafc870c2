// NovaCal - Personal calendar assistant
// License: MIT
//
// Copyright (c) 2026 NovaCal contributors

package agent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silviochristian/novacal/pkg/memory"
)

func fixedClock() time.Time {
	return time.Date(2026, 9, 2, 14, 30, 0, 0, time.UTC)
}

func TestSystemPromptGroundsCurrentTime(t *testing.T) {
	cb := NewContextBuilder(fixedClock)
	prompt := cb.BuildSystemPrompt()

	assert.Contains(t, prompt, "CURRENT SYSTEM TIME: Wednesday, 2 September 2026 14:30:00 UTC")
}

func TestSystemPromptStatesCoreRules(t *testing.T) {
	cb := NewContextBuilder(fixedClock)
	prompt := cb.BuildSystemPrompt()

	assert.Contains(t, prompt, "'primary'")
	assert.Contains(t, prompt, "BANNED TOOLS")
	assert.Contains(t, prompt, "'search_events'")
	assert.Contains(t, prompt, "'get_events'")
	assert.Contains(t, prompt, "find_by_keyword")
	assert.Contains(t, prompt, "find_by_range")
	assert.Contains(t, prompt, "Swap Method")
}

func TestBuildMessagesOrdering(t *testing.T) {
	cb := NewContextBuilder(fixedClock)
	window := []memory.Turn{
		{Role: "user", Content: "add lunch tomorrow"},
		{Role: "assistant", Content: "Done, lunch at noon."},
	}

	messages := cb.BuildMessages(window, "actually make it 13:00")

	require.Len(t, messages, 4)
	assert.Equal(t, "system", messages[0].Role)
	assert.Equal(t, "user", messages[1].Role)
	assert.Equal(t, "add lunch tomorrow", messages[1].Content)
	assert.Equal(t, "assistant", messages[2].Role)
	assert.Equal(t, "user", messages[3].Role)
	assert.Equal(t, "actually make it 13:00", messages[3].Content)
}

func TestHandleCommand(t *testing.T) {
	for _, cmd := range []string{"/start", "/info", "/howtouse"} {
		reply, handled := handleCommand(cmd)
		assert.True(t, handled, cmd)
		assert.NotEmpty(t, reply, cmd)
	}

	_, handled := handleCommand("/unknown")
	assert.False(t, handled)
	_, handled = handleCommand("plain message")
	assert.False(t, handled)
}
