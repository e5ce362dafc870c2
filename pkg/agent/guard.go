// NovaCal - Personal calendar assistant
// License: MIT
//
// Copyright (c) 2026 NovaCal contributors

package agent

import (
	"fmt"

	"github.com/silviochristian/novacal/pkg/bus"
	"github.com/silviochristian/novacal/pkg/logger"
)

// AccessGuard restricts the assistant to its single configured owner. Every
// inbound message is checked before any model or calendar call happens.
// Owner notifications travel over ownerChannel, not over whatever transport
// the triggering message arrived on.
type AccessGuard struct {
	ownerID      string
	ownerChannel string
}

func NewAccessGuard(ownerID, ownerChannel string) *AccessGuard {
	return &AccessGuard{ownerID: ownerID, ownerChannel: ownerChannel}
}

func (g *AccessGuard) Allowed(senderID string) bool {
	return senderID != "" && senderID == g.ownerID
}

func (g *AccessGuard) OwnerID() string {
	return g.ownerID
}

const deniedReply = "Sorry, this is a private assistant. You are not authorized to use this bot."

// Deny sends the two denial notifications: a refusal to the sender and an
// alert to the owner. Both are best effort and independent, so a full
// outbound queue on one side never blocks the other.
func (g *AccessGuard) Deny(msgBus *bus.MessageBus, msg bus.InboundMessage) {
	logger.WarnCF("guard", "Unauthorized access attempt", map[string]any{
		"channel":      msg.Channel,
		"sender_id":    msg.SenderID,
		"display_name": msg.DisplayName,
		"content":      logger.Truncate(msg.Content, 200),
	})

	msgBus.PublishOutbound(bus.OutboundMessage{
		Channel: msg.Channel,
		ChatID:  msg.ChatID,
		Content: deniedReply,
	})

	name := msg.DisplayName
	if name == "" {
		name = "unknown"
	}
	g.AlertOwner(msgBus, fmt.Sprintf(
		"🚨 Unauthorized access attempt\nUser: %s (ID: %s)\nMessage: %s",
		name, msg.SenderID, msg.Content))
}

// AlertOwner best-effort delivers an operational notice to the owner over the
// owner's transport. Failures are the transport's problem, never the caller's.
func (g *AccessGuard) AlertOwner(msgBus *bus.MessageBus, content string) {
	msgBus.PublishOutbound(bus.OutboundMessage{
		Channel: g.ownerChannel,
		ChatID:  g.ownerID,
		Content: content,
	})
}
