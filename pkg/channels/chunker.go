// NovaCal - Personal calendar assistant
// License: MIT
//
// Copyright (c) 2026 NovaCal contributors

package channels

import "strings"

// telegramMessageLimit is the chunk budget per message. Telegram rejects
// messages above 4096 bytes; 4000 leaves headroom for markup expansion.
const telegramMessageLimit = 4000

// splitIntoChunks breaks content into segments of at most limit bytes.
// Paragraphs (blank-line separated) are packed greedily and never split
// across segments, except a single paragraph larger than the limit, which
// is hard-split at the limit.
func splitIntoChunks(content string, limit int) []string {
	if len(content) <= limit {
		return []string{content}
	}

	var chunks []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
	}

	for _, paragraph := range strings.Split(content, "\n\n") {
		for len(paragraph) > limit {
			flush()
			chunks = append(chunks, paragraph[:limit])
			paragraph = paragraph[limit:]
		}
		if paragraph == "" {
			continue
		}

		needed := len(paragraph)
		if current.Len() > 0 {
			needed += 2
		}
		if current.Len()+needed > limit {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(paragraph)
	}
	flush()

	return chunks
}
