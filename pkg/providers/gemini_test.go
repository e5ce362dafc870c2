// NovaCal - Personal calendar assistant
// License: MIT
//
// Copyright (c) 2026 NovaCal contributors

package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatParsesToolCalls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gemini-2.5-flash", req["model"])
		assert.Equal(t, "auto", req["tool_choice"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"choices": [{
				"message": {
					"content": null,
					"tool_calls": [{
						"id": "call_1",
						"type": "function",
						"function": {"name": "find_by_keyword", "arguments": "{\"keyword\": \"Team Sync\"}"}
					}]
				},
				"finish_reason": "tool_calls"
			}]
		}`))
	}))
	defer server.Close()

	p, err := NewGeminiProvider(server.URL, "test-key", "gemini-2.5-flash", "")
	require.NoError(t, err)

	resp, err := p.Chat(context.Background(),
		[]Message{{Role: "user", Content: "cancel team sync"}},
		[]ToolDefinition{{Type: "function", Function: ToolFunctionDefinition{Name: "find_by_keyword"}}},
		"", nil)
	require.NoError(t, err)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "find_by_keyword", resp.ToolCalls[0].Name)
	assert.Equal(t, "Team Sync", resp.ToolCalls[0].Arguments["keyword"])
}

func TestChatToleratesMalformedArguments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"choices": [{
				"message": {
					"content": "",
					"tool_calls": [{
						"id": "call_1",
						"type": "function",
						"function": {"name": "create_event", "arguments": "{not json"}
					}]
				},
				"finish_reason": "tool_calls"
			}]
		}`))
	}))
	defer server.Close()

	p, err := NewGeminiProvider(server.URL, "test-key", "gemini-2.5-flash", "")
	require.NoError(t, err)

	resp, err := p.Chat(context.Background(), []Message{{Role: "user", Content: "x"}}, nil, "", nil)
	require.NoError(t, err)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "{not json", resp.ToolCalls[0].Arguments["raw"])
}

func TestFlattenMessageContent(t *testing.T) {
	assert.Equal(t, "plain", flattenMessageContent("plain"))
	assert.Equal(t, "", flattenMessageContent(nil))

	mixed := []interface{}{
		map[string]interface{}{"type": "text", "text": "first "},
		map[string]interface{}{"type": "annotation", "data": 42},
		map[string]interface{}{"type": "text", "text": "second"},
	}
	assert.Equal(t, "first second", flattenMessageContent(mixed))

	// Bare strings inside a fragment list count as text too.
	withBare := []interface{}{
		"lead ",
		map[string]interface{}{"type": "text", "text": "tail"},
	}
	assert.Equal(t, "lead tail", flattenMessageContent(withBare))
}

func TestChatSurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "quota exhausted for model"}}`))
	}))
	defer server.Close()

	p, err := NewGeminiProvider(server.URL, "test-key", "gemini-2.5-flash", "")
	require.NoError(t, err)

	_, err = p.Chat(context.Background(), []Message{{Role: "user", Content: "x"}}, nil, "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exhausted")
	assert.Contains(t, err.Error(), "status=429")
}
