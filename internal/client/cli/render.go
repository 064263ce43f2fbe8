package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/dustin/go-humanize"

	"github.com/hikariatama/sharder/internal/client/models"
)

// Terminal highlighting settings for code content.
const (
	terminalFormatter = "terminal256"
	terminalStyle     = "monokai"
)

func renderContent(w io.Writer, name string, c *models.Content) {
	size := humanize.Bytes(uint64(len(c.Data)))

	switch c.Mode {
	case models.ModeCode:
		if err := quick.Highlight(w, c.Text, c.Language, terminalFormatter, terminalStyle); err != nil {
			fmt.Fprint(w, c.Text)
		}
		endLine(w, c.Text)
	case models.ModePlain:
		fmt.Fprint(w, c.Text)
		endLine(w, c.Text)
	case models.ModeMedia:
		fmt.Fprintf(w, "%s is %s media (%s); run 'save' to view it.\n", name, c.MIME, size)
	default:
		label := c.MIME
		if label == "" {
			label = "unknown"
		}
		fmt.Fprintf(w, "%s (%s, %s) has no preview; run 'save' to download it.\n", name, label, size)
	}
}

func endLine(w io.Writer, text string) {
	if text != "" && !strings.HasSuffix(text, "\n") {
		fmt.Fprintln(w)
	}
}
