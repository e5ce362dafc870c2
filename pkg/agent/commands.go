// NovaCal - Personal calendar assistant
// License: MIT
//
// Copyright (c) 2026 NovaCal contributors

package agent

import "strings"

const startText = `Hi! I'm NovaCal 📅, your personal calendar assistant.

Tell me what to do in plain language:
- "Schedule lunch with Sarah tomorrow at noon"
- "What's on my calendar next week?"
- "Move my dentist appointment to Friday"

Send /howtouse for more examples or /info for details about this bot.`

const infoText = `NovaCal 📅
A private calendar assistant connected to your Google Calendar.

- Understands natural language in any language you write
- Creates, updates, deletes, and lists events on your primary calendar
- Shows public holidays and all-day events in schedule overviews
- Remembers the last few messages of your conversation

This bot serves a single owner. Messages from anyone else are rejected.`

const howToUseText = `How to use NovaCal:

1. Create: "Team sync on Thursday 10:00-11:00"
2. Read: "What do I have from Monday to Wednesday?"
3. Update: "Push the team sync to 14:00"
4. Delete: "Cancel my dentist appointment"

Tips:
- Give both a start and an end date when asking for a schedule overview.
- Refer to events by name; I'll look up the right one.
- I resolve "today" and "tomorrow" from the server clock.`

// handleCommand answers the fixed bot commands without touching the model or
// the conversation history. Unknown slash commands fall through to the model.
func handleCommand(content string) (string, bool) {
	switch strings.TrimSpace(content) {
	case "/start":
		return startText, true
	case "/info":
		return infoText, true
	case "/howtouse":
		return howToUseText, true
	default:
		return "", false
	}
}
