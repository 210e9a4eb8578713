package notify

import "context"

// Action is one button a message surface offers. An empty Action
// means the message was dismissed.
type Action string

const Dismissed Action = ""

// Item is one entry in a multi-select surface.
type Item struct {
	ID    string
	Label string
}

// Notifier is the user-interaction surface consumed by the core. All
// methods are fire-and-forget from the core's perspective except
// where the return value drives the next step.
type Notifier interface {
	Info(msg string, actions ...Action) (Action, error)
	Warn(msg string)
	Error(msg string, actions ...Action) (Action, error)
	PickMany(title string, items []Item) ([]Item, error)
	// Progress runs fn under a user-cancellable context derived from
	// ctx. User cancellation surfaces as fn observing ctx.Err().
	Progress(ctx context.Context, title string, fn func(context.Context) error) error
	WriteClipboard(text string) error
	OpenExternal(url string) error
	// ShowExtensionInstall surfaces a marketplace identifier in the
	// host's extension installation surface.
	ShowExtensionInstall(id string) error
}
