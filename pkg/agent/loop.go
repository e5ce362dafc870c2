// NovaCal - Personal calendar assistant
// License: MIT
//
// Copyright (c) 2026 NovaCal contributors

package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/silviochristian/novacal/pkg/bus"
	"github.com/silviochristian/novacal/pkg/config"
	"github.com/silviochristian/novacal/pkg/logger"
	"github.com/silviochristian/novacal/pkg/memory"
	"github.com/silviochristian/novacal/pkg/providers"
	"github.com/silviochristian/novacal/pkg/tools"
)

const defaultResponse = "I've finished processing but have no answer to give. Please try rephrasing."

// AgentLoop consumes inbound chat messages, runs the tool-calling model loop
// for each one, and publishes the reply. One loop serves all transports.
type AgentLoop struct {
	bus            *bus.MessageBus
	provider       providers.LLMProvider
	store          *memory.Store
	backend        tools.Backend
	guard          *AccessGuard
	contextBuilder *ContextBuilder

	model             string
	temperature       float64
	maxTokens         int
	maxIterations     int
	holidayCalendarID string
	utcOffset         string

	running atomic.Bool
}

func NewAgentLoop(cfg *config.Config, msgBus *bus.MessageBus, provider providers.LLMProvider, store *memory.Store, backend tools.Backend) *AgentLoop {
	return &AgentLoop{
		bus:               msgBus,
		provider:          provider,
		store:             store,
		backend:           backend,
		guard:             NewAccessGuard(cfg.Agent.OwnerID, cfg.OwnerRoute()),
		contextBuilder:    NewContextBuilder(time.Now),
		model:             cfg.Agent.Model,
		temperature:       cfg.Agent.Temperature,
		maxTokens:         cfg.Agent.MaxTokens,
		maxIterations:     cfg.Agent.MaxToolIterations,
		holidayCalendarID: cfg.Calendar.HolidayCalendarID,
		utcOffset:         cfg.Calendar.UTCOffset,
	}
}

func (al *AgentLoop) Run(ctx context.Context) error {
	al.running.Store(true)

	for al.running.Load() {
		select {
		case <-ctx.Done():
			return nil
		default:
			msg, ok := al.bus.ConsumeInbound(ctx)
			if !ok {
				continue
			}

			response := al.processMessage(ctx, msg)
			if response != "" {
				al.bus.PublishOutbound(bus.OutboundMessage{
					Channel: msg.Channel,
					ChatID:  msg.ChatID,
					Content: response,
				})
			}
		}
	}

	return nil
}

func (al *AgentLoop) Stop() {
	al.running.Store(false)
}

// ProcessDirect runs one turn synchronously, bypassing the bus. Used by the
// interactive chat command.
func (al *AgentLoop) ProcessDirect(ctx context.Context, content string) string {
	return al.processMessage(ctx, bus.InboundMessage{
		Channel:  "cli",
		SenderID: al.guard.OwnerID(),
		ChatID:   "direct",
		Content:  content,
	})
}

func (al *AgentLoop) processMessage(ctx context.Context, msg bus.InboundMessage) (response string) {
	// Last-resort safety net: nothing escaping the turn path may take the
	// daemon down. The raw failure goes to the log and to the owner; the
	// sender gets the generic message.
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorCF("agent", "Unhandled turn failure", map[string]any{
				"channel":   msg.Channel,
				"sender_id": msg.SenderID,
				"panic":     fmt.Sprint(r),
			})
			al.guard.AlertOwner(al.bus, fmt.Sprintf("⚠️ Unhandled error while processing a message:\n%v", r))
			response = msgGenericError
		}
	}()

	if !al.guard.Allowed(msg.SenderID) {
		al.guard.Deny(al.bus, msg)
		return ""
	}

	if reply, handled := handleCommand(msg.Content); handled {
		return reply
	}

	turnID := "turn-" + uuid.NewString()
	logger.InfoCF("agent", fmt.Sprintf("Processing message from %s:%s: %s",
		msg.Channel, msg.SenderID, logger.Truncate(msg.Content, 80)),
		map[string]any{
			"turn_id": turnID,
			"chat_id": msg.ChatID,
		})

	response, err := al.runTurn(ctx, msg, turnID)
	if err != nil {
		logger.ErrorCF("agent", "Turn failed", map[string]any{
			"turn_id":   turnID,
			"sender_id": msg.SenderID,
			"error":     err.Error(),
		})
		return classifyTurnError(err)
	}
	return response
}

// runTurn executes the full model loop for one user message: window load,
// per-turn catalog build, up to maxIterations tool rounds, then history
// persistence. Only the user message and the final assistant reply are
// persisted; intermediate tool traffic stays in the turn.
func (al *AgentLoop) runTurn(ctx context.Context, msg bus.InboundMessage, turnID string) (string, error) {
	sessionKey := msg.SenderID

	if err := al.store.EnsureSession(ctx, sessionKey, msg.Channel); err != nil {
		return "", fmt.Errorf("ensure session: %w", err)
	}
	window, err := al.store.Window(ctx, sessionKey)
	if err != nil {
		return "", fmt.Errorf("load history window: %w", err)
	}

	registry := tools.BuildCatalog(al.backend, al.holidayCalendarID, al.utcOffset)
	toolDefs := registry.ToProviderDefs()
	messages := al.contextBuilder.BuildMessages(window, msg.Content)

	callOpts := map[string]interface{}{
		"max_tokens":  al.maxTokens,
		"temperature": al.temperature,
	}

	var finalContent string
	iteration := 0
	for iteration < al.maxIterations {
		iteration++

		response, err := al.provider.Chat(ctx, messages, toolDefs, al.model, callOpts)
		if err != nil {
			return "", fmt.Errorf("LLM call failed: %w", err)
		}

		if len(response.ToolCalls) == 0 {
			finalContent = strings.TrimSpace(response.Content)
			break
		}

		toolNames := make([]string, 0, len(response.ToolCalls))
		for _, tc := range response.ToolCalls {
			toolNames = append(toolNames, tc.Name)
		}
		logger.InfoCF("agent", "Model requested tool calls", map[string]any{
			"turn_id":   turnID,
			"iteration": iteration,
			"tools":     toolNames,
		})

		assistantMsg := providers.Message{
			Role:    "assistant",
			Content: response.Content,
		}
		for _, tc := range response.ToolCalls {
			argumentsJSON, _ := json.Marshal(tc.Arguments)
			assistantMsg.ToolCalls = append(assistantMsg.ToolCalls, providers.ToolCall{
				ID:   tc.ID,
				Type: "function",
				Function: &providers.FunctionCall{
					Name:      tc.Name,
					Arguments: string(argumentsJSON),
				},
			})
		}
		messages = append(messages, assistantMsg)

		for _, tc := range response.ToolCalls {
			result := registry.Execute(ctx, tc.Name, tc.Arguments)
			contentForLLM := result.ForLLM
			if contentForLLM == "" && result.Err != nil {
				contentForLLM = result.Err.Error()
			}
			messages = append(messages, providers.Message{
				Role:       "tool",
				Content:    contentForLLM,
				ToolCallID: tc.ID,
			})
		}
	}

	if finalContent == "" {
		finalContent = defaultResponse
	}

	if err := al.store.AppendTurn(ctx, sessionKey, memory.Turn{Role: "user", Content: msg.Content}); err != nil {
		logger.ErrorCF("agent", "Failed to persist user turn", map[string]any{
			"turn_id": turnID,
			"error":   err.Error(),
		})
	}
	if err := al.store.AppendTurn(ctx, sessionKey, memory.Turn{Role: "assistant", Content: finalContent}); err != nil {
		logger.ErrorCF("agent", "Failed to persist assistant turn", map[string]any{
			"turn_id": turnID,
			"error":   err.Error(),
		})
	}

	logger.InfoCF("agent", fmt.Sprintf("Response: %s", logger.Truncate(finalContent, 120)),
		map[string]any{
			"turn_id":    turnID,
			"iterations": iteration,
		})

	return finalContent, nil
}
