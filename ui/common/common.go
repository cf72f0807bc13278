// Package common provides shared rendering helpers used across the
// storefront UI components.
package common

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/miosa/storefront/style"
)

// ---------------------------------------------------------------------------
// Text truncation / padding
// ---------------------------------------------------------------------------

// Truncate shortens s to maxLen display columns, appending "…" if truncated.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	if maxLen == 1 {
		return "…"
	}
	var sb strings.Builder
	w := 0
	for _, r := range s {
		rw := lipgloss.Width(string(r))
		if w+rw > maxLen-1 {
			break
		}
		sb.WriteRune(r)
		w += rw
	}
	return sb.String() + "…"
}

// PadRight pads s on the right with spaces until the rendered display width
// equals width. Returns s unchanged if it already meets or exceeds width.
func PadRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// PadCenter centers s within width, padding both sides with spaces.
func PadCenter(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	total := width - w
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// Divider returns a horizontal rule of the given width rendered in the border color.
func Divider(width int) string {
	if width <= 0 {
		return ""
	}
	return style.Separator.Render(strings.Repeat("─", width))
}

// Fit cuts or pads a single styled line to exactly width columns. Unlike
// Block it cuts without an ellipsis, for renderers that pad their output.
func Fit(line string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(line) > width {
		line = ansi.Truncate(line, width, "")
	}
	return PadRight(line, width)
}

// WrapLines word-wraps text to width columns and returns at most maxLines
// lines; the last kept line gets an ellipsis when text was cut.
func WrapLines(text string, width, maxLines int) []string {
	if width <= 0 || maxLines <= 0 {
		return nil
	}
	lines := strings.Split(WrapText(text, width), "\n")
	for i, l := range lines {
		lines[i] = Truncate(l, width)
	}
	if len(lines) <= maxLines {
		return lines
	}
	lines = lines[:maxLines]
	last := lines[maxLines-1]
	if lipgloss.Width(last) < width {
		lines[maxLines-1] = last + "…"
	} else {
		lines[maxLines-1] = Truncate(last+"…", width)
	}
	return lines
}

// WrapText hard-wraps text so that no rendered line exceeds width columns.
// Existing newlines are preserved; long words are not split.
func WrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	var out strings.Builder
	paragraphs := strings.Split(text, "\n")
	for i, para := range paragraphs {
		if i > 0 {
			out.WriteByte('\n')
		}
		words := strings.Fields(para)
		if len(words) == 0 {
			continue
		}
		lineLen := 0
		for j, word := range words {
			wLen := lipgloss.Width(word)
			if j == 0 {
				out.WriteString(word)
				lineLen = wLen
				continue
			}
			if lineLen+1+wLen > width {
				out.WriteByte('\n')
				out.WriteString(word)
				lineLen = wLen
			} else {
				out.WriteByte(' ')
				out.WriteString(word)
				lineLen += 1 + wLen
			}
		}
	}
	return out.String()
}

// Block forces s into exactly width x height cells: lines are truncated or
// padded, missing lines are blank, extra lines are dropped. Styled input is
// cut without breaking escape sequences.
func Block(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	out := make([]string, height)
	for i := range out {
		l := ""
		if i < len(lines) {
			l = lines[i]
			if lipgloss.Width(l) > width {
				l = ansi.Truncate(l, width, "…")
			}
		}
		out[i] = PadRight(l, width)
	}
	return strings.Join(out, "\n")
}
