package notify

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"partsalert/internal/model"
)

// TestMessage is the body of a --test notification.
const TestMessage = "This is a test notification to confirm the role mention is working."

// FormatMessage formats matches as one message body: title, reason and link
// per match, blocks separated by a blank line, prefixed with the role mention.
func FormatMessage(matches []model.Match, roleMention string) string {
	blocks := make([]string, 0, len(matches))
	for _, m := range matches {
		blocks = append(blocks, m.Title+"\n"+m.Reason+"\n"+m.Link)
	}
	return withMention(strings.Join(blocks, "\n\n"), roleMention)
}

// FormatTest returns the body of a test notification.
func FormatTest(roleMention string) string {
	return withMention(TestMessage, roleMention)
}

// WriteDryRun prints matches with explicit labels instead of sending them.
func WriteDryRun(w io.Writer, matches []model.Match) {
	if len(matches) == 0 {
		fmt.Fprintln(w, "DRY RUN: No deals found matching filters.")
		return
	}
	fmt.Fprintf(w, "DRY RUN: Found %d matching deals (no notifications sent):\n", len(matches))
	for i, m := range matches {
		fmt.Fprintf(w, "\n%d. %s\n", i+1, m.Title)
		fmt.Fprintf(w, "   Reason: %s\n", m.Reason)
		fmt.Fprintf(w, "   Link: %s\n", m.Link)
	}
}

func withMention(body, roleMention string) string {
	if roleMention == "" {
		return body
	}
	return roleMention + "\n\n" + body
}

// SplitMessage cuts body into parts of at most limit bytes, breaking between
// blank-line separated blocks where possible.
func SplitMessage(body string, limit int) []string {
	if limit <= 0 || len(body) <= limit {
		return []string{body}
	}

	var parts []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			parts = append(parts, cur.String())
			cur.Reset()
		}
	}

	for _, block := range strings.Split(body, "\n\n") {
		for len(block) > limit {
			flush()
			cut := runeBoundary(block, limit)
			parts = append(parts, block[:cut])
			block = block[cut:]
		}
		if cur.Len() > 0 && cur.Len()+2+len(block) > limit {
			flush()
		}
		if cur.Len() > 0 {
			cur.WriteString("\n\n")
		}
		cur.WriteString(block)
	}
	flush()
	return parts
}

// runeBoundary returns the largest index <= n that does not split a UTF-8
// rune, and never less than the first rune.
func runeBoundary(s string, n int) int {
	for n > 0 && n < len(s) && !utf8.RuneStart(s[n]) {
		n--
	}
	if n == 0 {
		_, size := utf8.DecodeRuneInString(s)
		return size
	}
	return n
}
