package tui

import (
	"errors"
	"io"
	"os/exec"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type urlOpenDoneMsg struct {
	url string
	err error
}

// openURLCommand builds the OS command that opens u in the default browser.
// The browser is a separate process with no stdio tied to the TUI, so the
// page it opens has no handle back to this session.
func openURLCommand(u string) *exec.Cmd {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", u)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", u)
	default:
		cmd = exec.Command("xdg-open", u)
	}
	cmd.Stdin = nil
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return cmd
}

// openURL is replaced in tests.
var openURL = func(u string) tea.Cmd {
	u = strings.TrimSpace(u)
	if u == "" {
		return func() tea.Msg { return urlOpenDoneMsg{err: errors.New("empty url")} }
	}
	return func() tea.Msg {
		cmd := openURLCommand(u)
		if err := cmd.Start(); err != nil {
			return urlOpenDoneMsg{url: u, err: err}
		}
		return urlOpenDoneMsg{url: u, err: cmd.Wait()}
	}
}
