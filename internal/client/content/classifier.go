// Package content classifies decrypted bytes for presentation: media the
// viewer can render, text with or without syntax highlighting, or content
// that can only be saved.
package content

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gabriel-vasile/mimetype"

	"github.com/hikariatama/sharder/internal/client/models"
	"github.com/hikariatama/sharder/internal/common"
)

const (
	genericBinary = "application/octet-stream"
	genericText   = "text/plain"
	plainLexer    = "plaintext"
)

// Classifier is stateless apart from its highlighting configuration and is
// safe for concurrent use.
type Classifier struct {
	formatter *html.Formatter
	style     *chroma.Style
}

func NewClassifier() *Classifier {
	return &Classifier{
		formatter: html.New(html.WithClasses(true), html.PreventSurroundingPre(true)),
		style:     styles.Fallback,
	}
}

// Classify decides how data is presented. Signature sniffing wins over the
// filename; the extension is consulted only when sniffing is inconclusive.
func (c *Classifier) Classify(data []byte, filename string) (*models.Content, error) {
	label := detect(data, filename)

	switch {
	case label == "" || isTextual(label):
		return c.text(data, filename, label)
	case isMedia(label):
		return &models.Content{Mode: models.ModeMedia, MIME: label, Data: data}, nil
	default:
		return &models.Content{Mode: models.ModeUnsupported, MIME: label, Data: data}, nil
	}
}

// detect returns the media type without parameters, or "" when neither the
// signature nor the extension resolves one.
func detect(data []byte, filename string) string {
	if len(data) > 0 {
		sniffed := baseType(mimetype.Detect(data).String())
		if sniffed != genericBinary && sniffed != genericText {
			return sniffed
		}
	}
	if ext := filepath.Ext(filename); ext != "" {
		return baseType(mime.TypeByExtension(strings.ToLower(ext)))
	}
	return ""
}

func baseType(v string) string {
	if v == "" {
		return ""
	}
	if mt, _, err := mime.ParseMediaType(v); err == nil {
		return mt
	}
	return strings.TrimSpace(strings.SplitN(v, ";", 2)[0])
}

func isTextual(mt string) bool {
	return strings.HasPrefix(mt, "text/") || mt == "application/json"
}

func isMedia(mt string) bool {
	for _, p := range []string{"image/", "video/", "audio/"} {
		if strings.HasPrefix(mt, p) {
			return true
		}
	}
	return mt == "application/pdf"
}

func (c *Classifier) text(data []byte, filename, label string) (*models.Content, error) {
	text := strings.ToValidUTF8(string(data), "\uFFFD")

	lexer := lexers.Match(filepath.Base(filename))
	if lexer == nil || lexer.Config().Name == plainLexer {
		return &models.Content{Mode: models.ModePlain, MIME: label, Text: text, Data: data}, nil
	}

	markup, err := c.highlight(lexer, text)
	if err != nil {
		return nil, fmt.Errorf("%w: highlight %s: %w", common.ErrDecode, filename, err)
	}
	return &models.Content{
		Mode:     models.ModeCode,
		MIME:     label,
		Text:     text,
		Markup:   markup,
		Language: lexer.Config().Name,
		Data:     data,
	}, nil
}

func (c *Classifier) highlight(lexer chroma.Lexer, text string) (string, error) {
	it, err := chroma.Coalesce(lexer).Tokenise(nil, text)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := c.formatter.Format(&sb, c.style, it); err != nil {
		return "", err
	}
	return strings.ReplaceAll(sb.String(), "\n", "<br />"), nil
}
