package cmd

import (
	"fmt"
	"io"

	glamour "github.com/charmbracelet/glamour"
)

// printMarkdown renders md for the terminal, falling back to the raw
// markdown when glamour cannot render it
func printMarkdown(out io.Writer, md string) {
	rendered, err := renderMarkdown(md)
	if err != nil {
		fmt.Fprint(out, md)
		return
	}
	fmt.Fprint(out, rendered)
}

func renderMarkdown(markdown string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(0),
	)
	if err != nil {
		return "", err
	}

	return r.Render(markdown)
}
