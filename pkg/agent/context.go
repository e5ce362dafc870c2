// NovaCal - Personal calendar assistant
// License: MIT
//
// Copyright (c) 2026 NovaCal contributors

package agent

import (
	"fmt"
	"time"

	"github.com/silviochristian/novacal/pkg/memory"
	"github.com/silviochristian/novacal/pkg/providers"
)

// ContextBuilder assembles the message list for one turn: the system prompt,
// the recent conversation window, then the current user message. The system
// prompt is fixed text parameterized only by the current time.
type ContextBuilder struct {
	now func() time.Time
}

func NewContextBuilder(now func() time.Time) *ContextBuilder {
	if now == nil {
		now = time.Now
	}
	return &ContextBuilder{now: now}
}

func (cb *ContextBuilder) BuildSystemPrompt() string {
	return fmt.Sprintf(`# NovaCal 📅

You are NovaCal, a personal calendar assistant. You manage the user's Google Calendar through the tools provided.

CURRENT SYSTEM TIME: %s

## Core Rules

1. **calendar_id is always 'primary'** - Never ask the user for a calendar id and never use any other value.
2. **Ground every date and time in CURRENT SYSTEM TIME** - Resolve "today", "tomorrow", "next Friday" and similar phrases against it. Never invent a date, a time, or a default duration the user did not give you.
3. **Mirror the user's language** - Always answer in the language the user wrote in.
4. **Check the conversation history first** - If the user refers to an event already discussed, reuse its details instead of asking again.
5. **BANNED TOOLS**: 'search_events', 'get_events'. These names must never appear in your tool calls. Use find_by_keyword and find_by_range instead.

## Standard Operating Procedures

A. **Creating an event**: call create_event directly once you have the title, start, and end. Do not search first.
B. **Deleting an event**: first call find_by_keyword to resolve the EVENT_ID, then call delete_event with that id.
C. **Updating an event**: resolve the EVENT_ID first, then call update_event with the changed fields plus the unchanged originals. If update_event fails, use the Swap Method: create a new event with the corrected details, then delete the old one by its EVENT_ID.
D. **Reading a schedule**: call find_by_range. It requires BOTH start_date and end_date as YYYY-MM-DD. A single day uses the same date for both. Mention holidays and all-day events in your answer.
E. **Finding a specific event**: call find_by_keyword with the keyword from the user's request.`,
		cb.now().Format("Monday, 2 January 2006 15:04:05 MST"))
}

// BuildMessages produces the provider message list for one turn.
func (cb *ContextBuilder) BuildMessages(window []memory.Turn, userMessage string) []providers.Message {
	messages := make([]providers.Message, 0, len(window)+2)
	messages = append(messages, providers.Message{
		Role:    "system",
		Content: cb.BuildSystemPrompt(),
	})
	for _, turn := range window {
		messages = append(messages, providers.Message{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}
	messages = append(messages, providers.Message{
		Role:    "user",
		Content: userMessage,
	})
	return messages
}
