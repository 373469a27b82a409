package bot

import (
	"strings"
	"unicode/utf8"

	"github.com/inventabot/inventabot/internal/inventory"
)

// continuationHeader prefixes every record-aligned chunk after the first,
// so a reader knows the product list continues from the previous message.
const continuationHeader = "=== CONTINUACIÓN INVENTARIO ===\n\n"

// Split breaks an answer into chunks of at most limit characters.
//
// The strategy is layered: answers containing rendered product records
// are split on record boundaries so no product is cut in half; plain text
// is split on line boundaries; a line longer than the limit is split on
// word boundaries; a word longer than the limit is hard-truncated with
// the overflow carried into the next chunk.
//
// Apart from the injected continuation headers, chunks are contiguous
// slices of the answer: concatenating them reproduces it exactly.
func Split(answer string, limit int) []string {
	if len(answer) <= limit {
		return []string{answer}
	}
	if strings.Contains(answer, inventory.RecordMarker) {
		return splitRecords(answer, limit)
	}
	return splitLines(answer, limit)
}

// splitRecords accumulates whole product records into chunks. When the
// next record does not fit, the current chunk is closed and a new one
// opens with the continuation header. An over-limit heading before the
// first record is split as plain text; a record that alone exceeds the
// limit is hard-truncated, overflow carried forward raw.
func splitRecords(answer string, limit int) []string {
	parts := strings.Split(answer, inventory.RecordMarker)

	var chunks []string
	current := parts[0] // heading before the first record
	if len(current) > limit {
		headChunks := splitLines(current, limit)
		chunks = append(chunks, headChunks[:len(headChunks)-1]...)
		current = headChunks[len(headChunks)-1]
	}

	for _, p := range parts[1:] {
		rec := inventory.RecordMarker + p

		if current != "" && len(current)+len(rec) > limit {
			chunks = append(chunks, current)
			rec = continuationHeader + rec
			current = ""
		}
		for len(rec) > limit {
			cut := runeCut(rec, limit)
			chunks = append(chunks, rec[:cut])
			rec = rec[cut:]
		}
		current += rec
	}

	if current != "" {
		chunks = append(chunks, current)
	}
	return chunks
}

// runeCut returns the largest cut position not past limit that falls on
// a rune boundary, so hard truncation never splits a multi-byte
// character across two chunks.
func runeCut(s string, limit int) int {
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	if cut == 0 {
		return limit
	}
	return cut
}

// splitLines accumulates lines into chunks, falling back to words and
// finally to raw truncation. Separators stay attached to their line or
// word so no character of the answer is lost.
func splitLines(answer string, limit int) []string {
	var chunks []string
	var current string

	for _, line := range strings.SplitAfter(answer, "\n") {
		if len(line) > limit {
			if current != "" {
				chunks = append(chunks, current)
				current = ""
			}
			for _, word := range strings.SplitAfter(line, " ") {
				if len(current)+len(word) > limit {
					if current != "" {
						chunks = append(chunks, current)
						current = ""
					}
					for len(word) > limit {
						cut := runeCut(word, limit)
						chunks = append(chunks, word[:cut])
						word = word[cut:]
					}
				}
				current += word
			}
			continue
		}

		if len(current)+len(line) > limit {
			chunks = append(chunks, current)
			current = ""
		}
		current += line
	}

	if current != "" {
		chunks = append(chunks, current)
	}
	return chunks
}
