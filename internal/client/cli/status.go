package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/hikariatama/sharder/internal/client/services"
)

// getStatus renders the prompt annotation: the session owner, transfers in
// flight and the storage health.
func (a *App) getStatus() string {
	var parts []string

	a.mu.Lock()
	if a.userName != "" {
		parts = append(parts, a.userName)
	}
	a.mu.Unlock()

	if a.pipeline.Uploading() {
		parts = append(parts, "uploading")
	}
	switch v := a.pipeline.View(); v.Phase {
	case services.PhaseLoading, services.PhaseDecrypting:
		parts = append(parts, string(v.Phase))
	}
	if a.shards.Degraded() {
		parts = append(parts, color.RedString("degraded"))
	}

	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(%s) ", strings.Join(parts, " "))
}
