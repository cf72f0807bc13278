package common

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/miosa/storefront/style"
)

type rendererKey struct {
	width int
	dark  bool
}

var (
	renderersMu sync.Mutex
	renderers   = map[rendererKey]*glamour.TermRenderer{}
)

// RenderMarkdown renders md word-wrapped to width with the glamour style that
// matches the current theme. It falls back to plain wrapped text on error.
func RenderMarkdown(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	if width < 1 {
		width = 1
	}
	r, err := renderer(width)
	if err != nil {
		return WrapText(md, width)
	}
	out, err := r.Render(md)
	if err != nil {
		return WrapText(md, width)
	}
	// glamour pads with blank lines; the category header wants the text only.
	return strings.Trim(out, "\n")
}

func renderer(width int) (*glamour.TermRenderer, error) {
	k := rendererKey{width: width, dark: style.IsDark()}
	renderersMu.Lock()
	defer renderersMu.Unlock()
	if r, ok := renderers[k]; ok {
		return r, nil
	}
	glamourStyle := "light"
	if k.dark {
		glamourStyle = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(glamourStyle),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	renderers[k] = r
	return r, nil
}
