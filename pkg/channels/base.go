// NovaCal - Personal calendar assistant
// License: MIT
//
// Copyright (c) 2026 NovaCal contributors

package channels

import (
	"context"

	"github.com/silviochristian/novacal/pkg/bus"
)

type Channel interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Send(ctx context.Context, msg bus.OutboundMessage) error
	IsRunning() bool
}

// BaseChannel holds what every transport shares. Authorization is not a
// transport concern; every message is forwarded and the agent's access guard
// decides.
type BaseChannel struct {
	bus     *bus.MessageBus
	name    string
	running bool
}

func NewBaseChannel(name string, bus *bus.MessageBus) *BaseChannel {
	return &BaseChannel{
		bus:  bus,
		name: name,
	}
}

func (c *BaseChannel) Name() string {
	return c.name
}

func (c *BaseChannel) IsRunning() bool {
	return c.running
}

func (c *BaseChannel) HandleMessage(senderID, displayName, chatID, content string) {
	c.bus.PublishInbound(bus.InboundMessage{
		Channel:     c.name,
		SenderID:    senderID,
		DisplayName: displayName,
		ChatID:      chatID,
		Content:     content,
	})
}

func (c *BaseChannel) setRunning(running bool) {
	c.running = running
}
