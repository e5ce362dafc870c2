// NovaCal - Personal calendar assistant
// License: MIT
//
// Copyright (c) 2026 NovaCal contributors

// Package digest pushes a daily agenda overview to the owner without the
// owner having to ask for it.
package digest

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/adhocore/gronx"

	"github.com/silviochristian/novacal/pkg/bus"
	"github.com/silviochristian/novacal/pkg/config"
	"github.com/silviochristian/novacal/pkg/logger"
	"github.com/silviochristian/novacal/pkg/tools"
)

type Scheduler struct {
	bus       *bus.MessageBus
	rangeTool *tools.FindByRangeTool
	cron      string
	channel   string
	ownerID   string
	utcOffset string
	now       func() time.Time
}

func NewScheduler(cfg *config.Config, msgBus *bus.MessageBus, backend tools.Backend) *Scheduler {
	return &Scheduler{
		bus:       msgBus,
		rangeTool: tools.NewFindByRangeTool(backend, cfg.Calendar.HolidayCalendarID, cfg.Calendar.UTCOffset),
		cron:      cfg.Digest.Cron,
		channel:   cfg.OwnerRoute(),
		ownerID:   cfg.Agent.OwnerID,
		utcOffset: cfg.Calendar.UTCOffset,
		now:       time.Now,
	}
}

// Run ticks once a minute and fires when the cron expression is due.
// It blocks until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	logger.InfoCF("digest", "Digest scheduler started", map[string]any{
		"cron": s.cron,
	})

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	gron := gronx.New()
	for {
		select {
		case <-ctx.Done():
			logger.InfoC("digest", "Digest scheduler stopped")
			return
		case <-ticker.C:
			due, err := gron.IsDue(s.cron, s.now().Truncate(time.Minute))
			if err != nil {
				logger.ErrorCF("digest", "Invalid cron expression", map[string]any{
					"cron":  s.cron,
					"error": err.Error(),
				})
				return
			}
			if due {
				s.deliver(ctx)
			}
		}
	}
}

func (s *Scheduler) deliver(ctx context.Context) {
	content := s.BuildDigest(ctx)
	s.bus.PublishOutbound(bus.OutboundMessage{
		Channel: s.channel,
		ChatID:  s.ownerID,
		Content: content,
	})
	logger.InfoC("digest", "Daily digest delivered")
}

// BuildDigest renders today's agenda, holidays included. Day boundaries
// follow the configured UTC offset, not the server timezone.
func (s *Scheduler) BuildDigest(ctx context.Context) string {
	today := s.today()

	result := s.rangeTool.Execute(ctx, map[string]interface{}{
		"start_date": today,
		"end_date":   today,
	})
	if result.IsError {
		return fmt.Sprintf("Good morning! ☀️ I couldn't load today's agenda: %s", result.ForLLM)
	}
	if strings.HasPrefix(result.ForLLM, "No events scheduled") {
		return "Good morning! ☀️ Your calendar is clear today."
	}
	return fmt.Sprintf("Good morning! ☀️ Here's your agenda for %s:\n\n%s", today, result.ForLLM)
}

func (s *Scheduler) today() string {
	loc := offsetLocation(s.utcOffset)
	return s.now().In(loc).Format("2006-01-02")
}

// offsetLocation converts an "+07:00" style offset into a fixed zone,
// falling back to UTC when the offset does not parse.
func offsetLocation(offset string) *time.Location {
	if len(offset) != 6 || (offset[0] != '+' && offset[0] != '-') {
		return time.UTC
	}
	hours, err1 := strconv.Atoi(offset[1:3])
	minutes, err2 := strconv.Atoi(offset[4:6])
	if err1 != nil || err2 != nil {
		return time.UTC
	}
	seconds := hours*3600 + minutes*60
	if offset[0] == '-' {
		seconds = -seconds
	}
	return time.FixedZone("UTC"+offset, seconds)
}
