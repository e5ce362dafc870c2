// NovaCal - Personal calendar assistant
// License: MIT
//
// Copyright (c) 2026 NovaCal contributors

package channels

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/silviochristian/novacal/pkg/bus"
	"github.com/silviochristian/novacal/pkg/config"
	"github.com/silviochristian/novacal/pkg/logger"
)

const telegramPollTimeout = 30 // seconds, long polling

type TelegramChannel struct {
	*BaseChannel
	bot    *tgbotapi.BotAPI
	config config.TelegramConfig
	done   chan struct{}
}

func NewTelegramChannel(cfg config.TelegramConfig, bus *bus.MessageBus) (*TelegramChannel, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &TelegramChannel{
		BaseChannel: NewBaseChannel("telegram", bus),
		bot:         bot,
		config:      cfg,
		done:        make(chan struct{}),
	}, nil
}

func (c *TelegramChannel) Start(ctx context.Context) error {
	logger.InfoCF("telegram", "Starting Telegram bot", map[string]any{
		"username": c.bot.Self.UserName,
	})

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = telegramPollTimeout
	updates := c.bot.GetUpdatesChan(updateConfig)

	c.setRunning(true)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-c.done:
				return
			case update, ok := <-updates:
				if !ok {
					return
				}
				c.handleUpdate(update)
			}
		}
	}()

	return nil
}

func (c *TelegramChannel) Stop(ctx context.Context) error {
	logger.InfoC("telegram", "Stopping Telegram bot")
	c.setRunning(false)
	close(c.done)
	c.bot.StopReceivingUpdates()
	return nil
}

// Send delivers one outbound message, chunked so every Telegram API call
// stays under the hard message size limit. A failed chunk aborts the rest so
// the remainder is not delivered without its beginning.
func (c *TelegramChannel) Send(ctx context.Context, msg bus.OutboundMessage) error {
	if !c.IsRunning() {
		return fmt.Errorf("telegram bot not running")
	}

	chatID, err := strconv.ParseInt(msg.ChatID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid telegram chat id %q: %w", msg.ChatID, err)
	}
	if msg.Content == "" {
		return nil
	}

	for _, chunk := range splitIntoChunks(msg.Content, telegramMessageLimit) {
		out := tgbotapi.NewMessage(chatID, chunk)
		out.ParseMode = tgbotapi.ModeMarkdown
		if _, err := c.bot.Send(out); err != nil {
			// Markdown parse failures are common with model output; retry plain.
			out.ParseMode = ""
			if _, plainErr := c.bot.Send(out); plainErr != nil {
				return fmt.Errorf("failed to send telegram message: %w", plainErr)
			}
		}
	}

	return nil
}

func (c *TelegramChannel) handleUpdate(update tgbotapi.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	if update.Message.From.IsBot {
		return
	}

	content := update.Message.Text
	if content == "" {
		content = update.Message.Caption
	}
	if content == "" {
		return
	}

	senderID := strconv.FormatInt(update.Message.From.ID, 10)
	chatID := strconv.FormatInt(update.Message.Chat.ID, 10)
	displayName := telegramDisplayName(update.Message.From)

	logger.DebugCF("telegram", "Received message", map[string]any{
		"sender_id": senderID,
		"chat_id":   chatID,
		"preview":   logger.Truncate(content, 50),
	})

	c.sendTyping(update.Message.Chat.ID)
	c.HandleMessage(senderID, displayName, chatID, content)
}

func (c *TelegramChannel) sendTyping(chatID int64) {
	action := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)
	if _, err := c.bot.Request(action); err != nil {
		logger.DebugCF("telegram", "Failed to send typing action", map[string]any{
			"error": err.Error(),
		})
	}
}

func telegramDisplayName(user *tgbotapi.User) string {
	name := strings.TrimSpace(user.FirstName + " " + user.LastName)
	if name == "" {
		name = user.UserName
	}
	return name
}
