// NovaCal - Personal calendar assistant
// License: MIT
//
// Copyright (c) 2026 NovaCal contributors

package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/silviochristian/novacal/pkg/logger"
	"github.com/silviochristian/novacal/pkg/providers"
)

// ToolRegistry is an ordered set of tools for one turn. It is a cheap
// per-turn value, rebuilt for every incoming message, so there is no shared
// mutable catalog state between turns.
type ToolRegistry struct {
	order []string
	tools map[string]Tool
}

func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{
		tools: make(map[string]Tool),
	}
}

func (r *ToolRegistry) Register(tool Tool) {
	if _, exists := r.tools[tool.Name()]; !exists {
		r.order = append(r.order, tool.Name())
	}
	r.tools[tool.Name()] = tool
}

func (r *ToolRegistry) Get(name string) (Tool, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

// Execute runs a named tool. An unknown name or a tool failure comes back as
// an error result for the model, never as a Go error to the caller.
func (r *ToolRegistry) Execute(ctx context.Context, name string, args map[string]interface{}) *ToolResult {
	tool, ok := r.Get(name)
	if !ok {
		logger.ErrorCF("tool", "Tool not found", map[string]any{"tool": name})
		return ErrorResult(fmt.Sprintf("tool %q not found", name)).WithError(fmt.Errorf("tool not found"))
	}

	start := time.Now()
	result := tool.Execute(ctx, args)
	duration := time.Since(start)
	if result == nil {
		err := fmt.Errorf("tool %q returned nil result", name)
		return ErrorResult(err.Error()).WithError(err)
	}

	if result.IsError {
		logger.ErrorCF("tool", "Tool execution failed", map[string]any{
			"tool":        name,
			"duration_ms": duration.Milliseconds(),
			"error":       result.ForLLM,
		})
	} else {
		logger.InfoCF("tool", "Tool execution completed", map[string]any{
			"tool":          name,
			"duration_ms":   duration.Milliseconds(),
			"result_length": len(result.ForLLM),
		})
	}

	return result
}

// ToProviderDefs converts the catalog to the format the LLM API expects,
// preserving registration order.
func (r *ToolRegistry) ToProviderDefs() []providers.ToolDefinition {
	definitions := make([]providers.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		tool := r.tools[name]
		definitions = append(definitions, providers.ToolDefinition{
			Type: "function",
			Function: providers.ToolFunctionDefinition{
				Name:        tool.Name(),
				Description: tool.Description(),
				Parameters:  tool.Parameters(),
			},
		})
	}
	return definitions
}

// List returns all registered tool names in registration order.
func (r *ToolRegistry) List() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

func (r *ToolRegistry) Count() int {
	return len(r.tools)
}
