// NovaCal - Personal calendar assistant
// License: MIT
//
// Copyright (c) 2026 NovaCal contributors

package agent

import "strings"

// User-facing messages for the known failure classes. The raw error never
// reaches the chat; it is logged with the sender identity instead.
const (
	msgQuotaExceeded = "Sorry, the daily AI quota has been used up. 🙏 Please try again tomorrow."
	msgBadAPIKey     = "There is a configuration problem with the AI service (invalid API key). Please contact the administrator."
	msgCalendarSync  = "I couldn't reach your Google Calendar. Please check the calendar connection and try again."
	msgGenericError  = "Sorry, something went wrong while processing your message. Please try again."
)

// classifyTurnError maps a turn failure to one of the user-facing messages
// by substring matching on the raw error. Quota checks run first so a quota
// error mentioning the key is still reported as a quota problem.
func classifyTurnError(err error) string {
	if err == nil {
		return ""
	}
	raw := strings.ToLower(err.Error())

	switch {
	case strings.Contains(raw, "quota"),
		strings.Contains(raw, "429"),
		strings.Contains(raw, "exhausted"):
		return msgQuotaExceeded
	case strings.Contains(raw, "api_key"),
		strings.Contains(raw, "api key"),
		strings.Contains(raw, "key invalid"),
		strings.Contains(raw, "403"):
		return msgBadAPIKey
	case strings.Contains(raw, "unauthorized"),
		strings.Contains(raw, "invalid_grant"),
		strings.Contains(raw, "calendar_id"):
		return msgCalendarSync
	default:
		return msgGenericError
	}
}
