// NovaCal - Personal calendar assistant
// License: MIT
//
// Copyright (c) 2026 NovaCal contributors

package tools

import (
	"context"
	"fmt"
)

// Tool is the interface every calendar operation exposed to the reasoning
// engine implements.
type Tool interface {
	Name() string
	Description() string
	Parameters() map[string]interface{}
	Execute(ctx context.Context, args map[string]interface{}) *ToolResult
}

// ToolResult is what a tool execution hands back to the agent loop. Failures
// are data: ForLLM carries a descriptive error string so the model can reason
// about the failure instead of the turn crashing.
type ToolResult struct {
	ForLLM  string
	IsError bool
	Err     error
}

func TextResult(text string) *ToolResult {
	return &ToolResult{ForLLM: text}
}

func ErrorResult(text string) *ToolResult {
	return &ToolResult{ForLLM: text, IsError: true}
}

func (r *ToolResult) WithError(err error) *ToolResult {
	r.Err = err
	return r
}

// argString extracts a trimmed string argument, tolerating absent keys.
func argString(args map[string]interface{}, key string) string {
	if args == nil {
		return ""
	}
	v, ok := args[key]
	if !ok || v == nil {
		return ""
	}
	switch vv := v.(type) {
	case string:
		return vv
	default:
		return fmt.Sprintf("%v", vv)
	}
}

func argBool(args map[string]interface{}, key string) bool {
	if args == nil {
		return false
	}
	v, ok := args[key].(bool)
	return ok && v
}
