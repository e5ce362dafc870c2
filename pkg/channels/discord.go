// NovaCal - Personal calendar assistant
// License: MIT
//
// Copyright (c) 2026 NovaCal contributors

package channels

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/silviochristian/novacal/pkg/bus"
	"github.com/silviochristian/novacal/pkg/config"
	"github.com/silviochristian/novacal/pkg/logger"
)

const (
	discordSendTimeout  = 10 * time.Second
	discordMessageLimit = 1500 // hard limit is 2000, leave room for split slack
)

// DiscordChannel is the secondary transport. DM the bot and the same single
// owner guard applies as on Telegram.
type DiscordChannel struct {
	*BaseChannel
	session *discordgo.Session
	config  config.DiscordConfig
}

func NewDiscordChannel(cfg config.DiscordConfig, bus *bus.MessageBus) (*DiscordChannel, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	return &DiscordChannel{
		BaseChannel: NewBaseChannel("discord", bus),
		session:     session,
		config:      cfg,
	}, nil
}

func (c *DiscordChannel) Start(ctx context.Context) error {
	logger.InfoC("discord", "Starting Discord bot")

	c.session.AddHandler(c.handleMessage)

	if err := c.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}

	c.setRunning(true)
	return nil
}

func (c *DiscordChannel) Stop(ctx context.Context) error {
	logger.InfoC("discord", "Stopping Discord bot")
	c.setRunning(false)

	if err := c.session.Close(); err != nil {
		return fmt.Errorf("failed to close discord session: %w", err)
	}
	return nil
}

func (c *DiscordChannel) Send(ctx context.Context, msg bus.OutboundMessage) error {
	if !c.IsRunning() {
		return fmt.Errorf("discord bot not running")
	}
	if msg.ChatID == "" {
		return fmt.Errorf("channel ID is empty")
	}
	if msg.Content == "" {
		return nil
	}

	for _, chunk := range splitOnBoundary(msg.Content, discordMessageLimit) {
		if err := c.sendChunk(ctx, msg.ChatID, chunk); err != nil {
			return err
		}
	}
	return nil
}

func (c *DiscordChannel) sendChunk(ctx context.Context, channelID, content string) error {
	sendCtx, cancel := context.WithTimeout(ctx, discordSendTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := c.session.ChannelMessageSend(channelID, content)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send discord message: %w", err)
		}
		return nil
	case <-sendCtx.Done():
		return fmt.Errorf("send message timeout: %w", sendCtx.Err())
	}
}

// splitOnBoundary breaks content at the last newline or space before the
// limit, falling back to a hard split.
func splitOnBoundary(content string, limit int) []string {
	var chunks []string
	for len(content) > limit {
		end := strings.LastIndexByte(content[:limit], '\n')
		if end <= 0 {
			end = strings.LastIndexByte(content[:limit], ' ')
		}
		if end <= 0 {
			end = limit
		}
		chunks = append(chunks, content[:end])
		content = strings.TrimSpace(content[end:])
	}
	if content != "" {
		chunks = append(chunks, content)
	}
	return chunks
}

func (c *DiscordChannel) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m == nil || m.Author == nil {
		return
	}
	if m.Author.ID == s.State.User.ID {
		return
	}
	if m.Content == "" {
		return
	}

	logger.DebugCF("discord", "Received message", map[string]any{
		"sender_id": m.Author.ID,
		"preview":   logger.Truncate(m.Content, 50),
	})

	if err := c.session.ChannelTyping(m.ChannelID); err != nil {
		logger.DebugCF("discord", "Failed to send typing indicator", map[string]any{
			"error": err.Error(),
		})
	}

	c.HandleMessage(m.Author.ID, m.Author.Username, m.ChannelID, m.Content)
}
