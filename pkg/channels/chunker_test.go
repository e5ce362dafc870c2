// NovaCal - Personal calendar assistant
// License: MIT
//
// Copyright (c) 2026 NovaCal contributors

package channels

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortContentIsSingleChunk(t *testing.T) {
	chunks := splitIntoChunks("hello", telegramMessageLimit)
	assert.Equal(t, []string{"hello"}, chunks)
}

func TestParagraphsNeverSplitAcrossChunks(t *testing.T) {
	a := strings.Repeat("a", 60)
	b := strings.Repeat("b", 60)
	c := strings.Repeat("c", 60)
	content := a + "\n\n" + b + "\n\n" + c

	chunks := splitIntoChunks(content, 130)

	require.Len(t, chunks, 2)
	assert.Equal(t, a+"\n\n"+b, chunks[0])
	assert.Equal(t, c, chunks[1])
}

func TestEveryChunkWithinLimit(t *testing.T) {
	var paragraphs []string
	for i := 0; i < 40; i++ {
		paragraphs = append(paragraphs, strings.Repeat("x", 350))
	}
	content := strings.Join(paragraphs, "\n\n")

	for _, chunk := range splitIntoChunks(content, telegramMessageLimit) {
		assert.LessOrEqual(t, len(chunk), telegramMessageLimit)
	}
}

func TestOversizedParagraphIsHardSplit(t *testing.T) {
	content := strings.Repeat("y", telegramMessageLimit+500)

	chunks := splitIntoChunks(content, telegramMessageLimit)

	require.Len(t, chunks, 2)
	assert.Len(t, chunks[0], telegramMessageLimit)
	assert.Len(t, chunks[1], 500)
	assert.Equal(t, content, strings.Join(chunks, ""))
}

func TestChunksReassembleToOriginal(t *testing.T) {
	a := strings.Repeat("a", 100)
	b := strings.Repeat("b", 100)
	content := a + "\n\n" + b

	chunks := splitIntoChunks(content, 120)

	assert.Equal(t, content, strings.Join(chunks, "\n\n"))
}

func TestDiscordBoundarySplit(t *testing.T) {
	content := strings.Repeat("word ", 100) + "\n" + strings.Repeat("tail ", 100)

	chunks := splitOnBoundary(content, 200)

	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 200)
		assert.NotEmpty(t, chunk)
	}
}
