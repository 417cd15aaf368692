package services

import (
	"strings"
	"unicode/utf8"
)

// CleanText trims and collapses the whitespace noise PDF extraction leaves
// behind.
func CleanText(text string) string {
	text = strings.TrimSpace(text)

	lines := strings.Split(text, "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}

// ChunkText splits text into chunks of at most maxChunkSize runes, breaking
// on paragraph boundaries where possible and on sentences otherwise.
func ChunkText(text string, maxChunkSize int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}

	paragraphs := strings.Split(text, "\n\n")

	var chunks []string
	var currentChunk strings.Builder

	flush := func() {
		if currentChunk.Len() > 0 {
			chunks = append(chunks, currentChunk.String())
			currentChunk.Reset()
		}
	}

	for _, para := range paragraphs {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if utf8.RuneCountInString(para) > maxChunkSize {
			// Paragraph itself is too long, split by sentences
			for _, sentence := range splitIntoSentences(para) {
				if currentChunk.Len()+len(sentence)+1 > maxChunkSize {
					flush()
				}
				if currentChunk.Len() > 0 {
					currentChunk.WriteString(" ")
				}
				currentChunk.WriteString(sentence)
			}
			continue
		}

		if currentChunk.Len()+len(para)+2 > maxChunkSize {
			flush()
		}
		if currentChunk.Len() > 0 {
			currentChunk.WriteString("\n\n")
		}
		currentChunk.WriteString(para)
	}

	flush()

	return chunks
}

// PrepareResumeText cleans extracted resume text and caps it to limit runes
// so the extraction prompt stays within the model's input budget. The cut
// lands on a chunk boundary, not mid-sentence.
func PrepareResumeText(text string, limit int) string {
	text = CleanText(text)
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}

	var kept []string
	used := 0
	for _, chunk := range ChunkText(text, limit/4) {
		size := utf8.RuneCountInString(chunk)
		if used+size > limit {
			break
		}
		kept = append(kept, chunk)
		used += size
	}

	if len(kept) == 0 {
		return string([]rune(text)[:limit])
	}

	return strings.Join(kept, "\n\n")
}

func splitIntoSentences(text string) []string {
	// Simple sentence splitter
	sentences := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	var result []string
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s != "" {
			result = append(result, s)
		}
	}
	return result
}
