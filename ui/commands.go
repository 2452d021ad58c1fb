package ui

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/qyinm/bustui/browse"
	"github.com/qyinm/bustui/types"
)

// Message types for async operations. Each carries the request it answers,
// so the controllers can drop results of a superseded session.

type pageMsg struct {
	result browse.PageResult
}

type detailMsg struct {
	result browse.DetailResult
}

type magnetMsg struct {
	result browse.MagnetResult
}

type clipboardMsg struct {
	text string
	err  error
}

type openURLMsg struct {
	url    string
	copied bool
	err    error
}

// fetchPage returns a tea.Cmd that fetches one list page asynchronously
func fetchPage(source types.MovieSource, req browse.PageRequest) tea.Cmd {
	return func() tea.Msg {
		return pageMsg{result: req.Do(context.Background(), source)}
	}
}

// fetchDetail returns a tea.Cmd that fetches a movie detail asynchronously
func fetchDetail(source types.MovieSource, req browse.DetailRequest) tea.Cmd {
	return func() tea.Msg {
		return detailMsg{result: req.Do(context.Background(), source)}
	}
}

// fetchMagnets returns a tea.Cmd that fetches the magnets unlocked by a detail
func fetchMagnets(source types.MovieSource, req browse.MagnetRequest) tea.Cmd {
	return func() tea.Msg {
		return magnetMsg{result: req.Do(context.Background(), source)}
	}
}

func copyToClipboard(copyFn func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		if copyFn == nil {
			return clipboardMsg{text: text, err: fmt.Errorf("clipboard not available")}
		}
		return clipboardMsg{text: text, err: copyFn(text)}
	}
}

// openURL tries the browser first and falls back to the clipboard.
func openURL(url string, openFn, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if openFn != nil {
			if err := openFn(url); err == nil {
				return openURLMsg{url: url}
			}
		}
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return openURLMsg{url: url, copied: true}
			}
		}
		return openURLMsg{url: url, err: fmt.Errorf("could not open URL or copy to clipboard")}
	}
}

func openInBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
