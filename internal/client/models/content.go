package models

// Mode selects how decrypted content is presented.
type Mode string

const (
	// ModePlain is UTF-8 text without highlighting.
	ModePlain Mode = "text/plain"
	// ModeCode is text with pre-rendered highlighting markup.
	ModeCode Mode = "code"
	// ModeMedia is image, audio, video or PDF bytes rendered by the viewer.
	ModeMedia Mode = "media"
	// ModeUnsupported is content the client cannot preview.
	ModeUnsupported Mode = "unsupported"
)

// Content is classified, decrypted file content.
type Content struct {
	Mode Mode

	// MIME is the detected or looked-up media type; empty when unresolved.
	MIME string

	// Text holds the decoded text for ModePlain and ModeCode.
	Text string

	// Markup holds highlighted HTML for ModeCode.
	Markup string

	// Language names the highlighter lexer for ModeCode.
	Language string

	// Data holds the decrypted bytes in every mode.
	Data []byte
}

// IsText reports whether the content has a textual rendering.
func (c *Content) IsText() bool {
	return c.Mode == ModePlain || c.Mode == ModeCode
}
