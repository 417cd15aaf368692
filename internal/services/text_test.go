package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	input := "  John Doe  \n\n\n  Backend Engineer \n\n Jakarta  "
	assert.Equal(t, "John Doe\nBackend Engineer\nJakarta", CleanText(input))
	assert.Equal(t, "", CleanText("  \n \n  "))
}

func TestChunkText_KeepsShortParagraphsTogether(t *testing.T) {
	text := "First paragraph.\n\nSecond paragraph."
	chunks := ChunkText(text, 1000)

	assert.Equal(t, []string{"First paragraph.\n\nSecond paragraph."}, chunks)
}

func TestChunkText_SplitsAtParagraphBoundary(t *testing.T) {
	para1 := strings.Repeat("a", 30)
	para2 := strings.Repeat("b", 30)
	chunks := ChunkText(para1+"\n\n"+para2, 40)

	assert.Equal(t, []string{para1, para2}, chunks)
}

func TestChunkText_RespectsMaxSize(t *testing.T) {
	// One long paragraph falls back to sentence splitting.
	text := strings.Repeat("This is a sentence. ", 50)
	for _, chunk := range ChunkText(text, 100) {
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), 100)
	}
}

func TestPrepareResumeText_ShortTextPassesThrough(t *testing.T) {
	assert.Equal(t, "short resume", PrepareResumeText("  short resume  ", 1000))
}

func TestPrepareResumeText_CapsAtLimit(t *testing.T) {
	text := strings.Repeat("Relevant experience sentence. ", 200)
	got := PrepareResumeText(text, 500)

	assert.LessOrEqual(t, utf8.RuneCountInString(got), 500)
	assert.NotEmpty(t, got)
}
