// NovaCal - Personal calendar assistant
// License: MIT
//
// Copyright (c) 2026 NovaCal contributors

package gcal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// EventTime is the Google Calendar start/end shape. Exactly one of DateTime
// (timed event, RFC 3339) or Date (all-day event, YYYY-MM-DD) is set;
// consumers must probe DateTime first and fall back to Date.
type EventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

// Value returns whichever representation the entry carries.
func (t *EventTime) Value() string {
	if t == nil {
		return ""
	}
	if t.DateTime != "" {
		return t.DateTime
	}
	return t.Date
}

// AllDay reports whether the entry is date-only.
func (t *EventTime) AllDay() bool {
	return t != nil && t.DateTime == "" && t.Date != ""
}

// Event is a calendar event record. IDs are opaque strings owned by the
// backend.
type Event struct {
	ID          string     `json:"id,omitempty"`
	Summary     string     `json:"summary,omitempty"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location,omitempty"`
	Start       *EventTime `json:"start,omitempty"`
	End         *EventTime `json:"end,omitempty"`
	Status      string     `json:"status,omitempty"`
}

type eventsResponse struct {
	Items []Event `json:"items"`
}

// ListParams narrows an event listing. Zero-value fields are omitted from
// the query. TimeMin and TimeMax are RFC 3339 timestamps; callers build them
// with an explicit offset so day boundaries are unambiguous.
type ListParams struct {
	TimeMin    string
	TimeMax    string
	Query      string // free-text search
	MaxResults int
}

// ListEvents fetches events from one calendar, recurring events expanded and
// ordered by start time.
func (c *Client) ListEvents(ctx context.Context, calendarID string, params ListParams) ([]Event, error) {
	q := url.Values{}
	q.Set("singleEvents", "true")
	q.Set("orderBy", "startTime")
	if params.TimeMin != "" {
		q.Set("timeMin", params.TimeMin)
	}
	if params.TimeMax != "" {
		q.Set("timeMax", params.TimeMax)
	}
	if params.Query != "" {
		q.Set("q", params.Query)
	}
	if params.MaxResults > 0 {
		q.Set("maxResults", fmt.Sprintf("%d", params.MaxResults))
	}

	path := fmt.Sprintf("/calendars/%s/events?%s", url.PathEscape(calendarID), q.Encode())
	data, err := c.request(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}

	var resp eventsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse events response: %w", err)
	}
	return resp.Items, nil
}

// GetEvent fetches a single event by its opaque identifier.
func (c *Client) GetEvent(ctx context.Context, calendarID, eventID string) (*Event, error) {
	path := fmt.Sprintf("/calendars/%s/events/%s", url.PathEscape(calendarID), url.PathEscape(eventID))
	data, err := c.request(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}

	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("parse event: %w", err)
	}
	return &event, nil
}

// InsertEvent creates a new event on the calendar.
func (c *Client) InsertEvent(ctx context.Context, calendarID string, event Event) (*Event, error) {
	path := fmt.Sprintf("/calendars/%s/events", url.PathEscape(calendarID))
	data, err := c.request(ctx, "POST", path, event)
	if err != nil {
		return nil, err
	}

	var created Event
	if err := json.Unmarshal(data, &created); err != nil {
		return nil, fmt.Errorf("parse created event: %w", err)
	}
	return &created, nil
}

// PatchEvent updates the given fields of an existing event, leaving omitted
// fields untouched.
func (c *Client) PatchEvent(ctx context.Context, calendarID, eventID string, event Event) (*Event, error) {
	path := fmt.Sprintf("/calendars/%s/events/%s", url.PathEscape(calendarID), url.PathEscape(eventID))
	data, err := c.request(ctx, "PATCH", path, event)
	if err != nil {
		return nil, err
	}

	var updated Event
	if err := json.Unmarshal(data, &updated); err != nil {
		return nil, fmt.Errorf("parse updated event: %w", err)
	}
	return &updated, nil
}

// DeleteEvent removes an event by its opaque identifier.
func (c *Client) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	path := fmt.Sprintf("/calendars/%s/events/%s", url.PathEscape(calendarID), url.PathEscape(eventID))
	_, err := c.request(ctx, "DELETE", path, nil)
	return err
}
