// NovaCal - Personal calendar assistant
// License: MIT
//
// Copyright (c) 2026 NovaCal contributors

package digest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silviochristian/novacal/pkg/bus"
	"github.com/silviochristian/novacal/pkg/config"
	"github.com/silviochristian/novacal/pkg/gcal"
)

type stubBackend struct {
	events []gcal.Event
}

func (b *stubBackend) ListEvents(_ context.Context, calendarID string, _ gcal.ListParams) ([]gcal.Event, error) {
	if calendarID == "primary" {
		return b.events, nil
	}
	return nil, nil
}

func (b *stubBackend) GetEvent(_ context.Context, _, _ string) (*gcal.Event, error) {
	return nil, nil
}

func (b *stubBackend) InsertEvent(_ context.Context, _ string, e gcal.Event) (*gcal.Event, error) {
	return &e, nil
}

func (b *stubBackend) PatchEvent(_ context.Context, _ string, _ string, e gcal.Event) (*gcal.Event, error) {
	return &e, nil
}

func (b *stubBackend) DeleteEvent(_ context.Context, _ string, _ string) error {
	return nil
}

func newScheduler(backend *stubBackend) *Scheduler {
	cfg := config.DefaultConfig()
	cfg.Agent.OwnerID = "owner42"
	s := NewScheduler(cfg, bus.NewMessageBus(), backend)
	s.now = func() time.Time {
		return time.Date(2026, 9, 2, 0, 30, 0, 0, time.UTC)
	}
	return s
}

func TestDigestWithEvents(t *testing.T) {
	s := newScheduler(&stubBackend{events: []gcal.Event{{
		ID:      "e1",
		Summary: "Standup",
		Start:   &gcal.EventTime{DateTime: "2026-09-02T09:00:00+07:00"},
		End:     &gcal.EventTime{DateTime: "2026-09-02T09:15:00+07:00"},
	}}})

	digest := s.BuildDigest(context.Background())

	assert.Contains(t, digest, "2026-09-02")
	assert.Contains(t, digest, "Standup")
	assert.Contains(t, digest, "09:00 - 09:15")
}

func TestDigestEmptyDay(t *testing.T) {
	s := newScheduler(&stubBackend{})

	digest := s.BuildDigest(context.Background())

	assert.Contains(t, digest, "clear today")
}

func TestTodayFollowsConfiguredOffset(t *testing.T) {
	s := newScheduler(&stubBackend{})
	// 2026-09-01 23:30 UTC is already 2026-09-02 in +07:00.
	s.now = func() time.Time {
		return time.Date(2026, 9, 1, 23, 30, 0, 0, time.UTC)
	}

	assert.Equal(t, "2026-09-02", s.today())
}

func TestDigestFollowsOwnerTransport(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Agent.OwnerID = "owner42"
	cfg.Channels.Discord.Token = "d-token"

	msgBus := bus.NewMessageBus()
	defer msgBus.Close()

	s := NewScheduler(cfg, msgBus, &stubBackend{})
	s.now = func() time.Time {
		return time.Date(2026, 9, 2, 0, 30, 0, 0, time.UTC)
	}
	s.deliver(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	msg, ok := msgBus.SubscribeOutbound(ctx)
	require.True(t, ok)
	assert.Equal(t, "discord", msg.Channel)
	assert.Equal(t, "owner42", msg.ChatID)
	assert.Contains(t, msg.Content, "Good morning")
}

func TestExplicitOwnerChannelWins(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Agent.OwnerID = "owner42"
	cfg.Agent.OwnerChannel = "telegram"
	cfg.Channels.Discord.Token = "d-token"

	s := NewScheduler(cfg, bus.NewMessageBus(), &stubBackend{})
	assert.Equal(t, "telegram", s.channel)
}

func TestOffsetLocationFallsBackToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, offsetLocation("bogus"))
	assert.Equal(t, time.UTC, offsetLocation(""))
}
