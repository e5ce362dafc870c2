// NovaCal - Personal calendar assistant
// License: MIT
//
// Copyright (c) 2026 NovaCal contributors

package tools

import "strings"

// bannedKeywords gates the native read operations out of the catalog. Any
// native tool whose name contains one of these (case-insensitive) is dropped;
// the curated find_by_keyword and find_by_range tools replace them.
var bannedKeywords = []string{"search", "get"}

func isBanned(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range bannedKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// BuildCatalog assembles the per-turn tool registry: every native backend
// operation that survives the banned-keyword gate, then the two curated read
// tools. The catalog is rebuilt for each turn, so a registry is cheap and
// never shared across goroutines.
func BuildCatalog(backend Backend, holidayCalendarID, utcOffset string) *ToolRegistry {
	natives := []Tool{
		NewCreateEventTool(backend),
		NewUpdateEventTool(backend),
		NewDeleteEventTool(backend),
		NewSearchEventsTool(backend),
		NewGetEventsTool(backend),
	}

	registry := NewToolRegistry()
	for _, tool := range natives {
		if isBanned(tool.Name()) {
			continue
		}
		registry.Register(tool)
	}
	registry.Register(NewFindByKeywordTool(backend))
	registry.Register(NewFindByRangeTool(backend, holidayCalendarID, utcOffset))
	return registry
}
