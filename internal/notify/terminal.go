package notify

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/pkg/browser"
)

// Terminal is the line-oriented Notifier used by the CLI.
type Terminal struct {
	In  io.Reader
	Out io.Writer
}

func NewTerminal() *Terminal {
	return &Terminal{In: os.Stdin, Out: os.Stdout}
}

func (t *Terminal) Info(msg string, actions ...Action) (Action, error) {
	return t.choose(msg, actions)
}

func (t *Terminal) Warn(msg string) {
	fmt.Fprintln(t.Out, "warning: "+msg)
}

func (t *Terminal) Error(msg string, actions ...Action) (Action, error) {
	fmt.Fprintln(t.Out, "error: "+msg)
	return t.choose("", actions)
}

func (t *Terminal) PickMany(title string, items []Item) ([]Item, error) {
	if len(items) == 0 {
		return nil, nil
	}
	fmt.Fprintln(t.Out, title)
	for i, item := range items {
		fmt.Fprintf(t.Out, "  %d) %s\n", i+1, item.Label)
	}
	fmt.Fprint(t.Out, "select (comma-separated numbers, empty for none): ")
	line, err := t.readLine()
	if err != nil {
		return nil, err
	}
	picked := []Item{}
	for _, field := range strings.Split(line, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil || n < 1 || n > len(items) {
			continue
		}
		picked = append(picked, items[n-1])
	}
	return picked, nil
}

func (t *Terminal) Progress(ctx context.Context, title string, fn func(context.Context) error) error {
	fmt.Fprintln(t.Out, title+" (ctrl-c to cancel)")
	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	return fn(runCtx)
}

func (t *Terminal) WriteClipboard(text string) error {
	return clipboard.WriteAll(text)
}

func (t *Terminal) OpenExternal(url string) error {
	return browser.OpenURL(url)
}

func (t *Terminal) ShowExtensionInstall(id string) error {
	fmt.Fprintf(t.Out, "install the %s extension from your editor's marketplace, e.g.:\n", id)
	fmt.Fprintf(t.Out, "  code --install-extension %s\n", id)
	return nil
}

func (t *Terminal) choose(msg string, actions []Action) (Action, error) {
	if msg != "" {
		fmt.Fprintln(t.Out, msg)
	}
	if len(actions) == 0 {
		return Dismissed, nil
	}
	for i, a := range actions {
		fmt.Fprintf(t.Out, "  %d) %s\n", i+1, a)
	}
	fmt.Fprint(t.Out, "choice (empty to dismiss): ")
	line, err := t.readLine()
	if err != nil {
		return Dismissed, err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return Dismissed, nil
	}
	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(actions) {
		return Dismissed, nil
	}
	return actions[n-1], nil
}

func (t *Terminal) readLine() (string, error) {
	reader := bufio.NewReader(t.In)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return "", nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
