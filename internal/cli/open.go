package cli

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"

	"folio-cli/internal/palette"

	"go.uber.org/zap"
)

func openPath(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("empty path")
	}
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path).Run()
	case "windows":
		return exec.Command("cmd", "/c", "start", "", path).Run()
	default:
		return exec.Command("xdg-open", path).Run()
	}
}

func zapAction(a palette.Action) []zap.Field {
	return []zap.Field{
		zap.String("title", a.Title),
		zap.String("destination", a.Destination),
		zap.Bool("external", a.External),
	}
}
