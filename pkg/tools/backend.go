// NovaCal - Personal calendar assistant
// License: MIT
//
// Copyright (c) 2026 NovaCal contributors

package tools

import (
	"context"

	"github.com/silviochristian/novacal/pkg/gcal"
)

// Backend is the calendar capability set the tools run against. gcal.Client
// satisfies it; tests substitute fakes.
type Backend interface {
	ListEvents(ctx context.Context, calendarID string, params gcal.ListParams) ([]gcal.Event, error)
	GetEvent(ctx context.Context, calendarID, eventID string) (*gcal.Event, error)
	InsertEvent(ctx context.Context, calendarID string, event gcal.Event) (*gcal.Event, error)
	PatchEvent(ctx context.Context, calendarID, eventID string, event gcal.Event) (*gcal.Event, error)
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
}
