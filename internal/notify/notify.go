// Package notify turns app events into short user-facing messages and,
// when enabled, desktop notifications.
package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

type Kind int

const (
	KindInfo Kind = iota
	KindError
)

// Message is one toast: a title and a one-line description.
type Message struct {
	Kind        Kind
	Title       string
	Description string
}

// Notifier forwards messages to the desktop when enabled.
type Notifier struct {
	Desktop bool
	// send is swapped out in tests
	send func(title, message string) error
}

func New(desktop bool) *Notifier {
	return &Notifier{Desktop: desktop, send: desktopNotify}
}

func desktopNotify(title, message string) error {
	return beeep.Notify(title, message, "")
}

// Publish forwards m to the desktop if enabled. The in-app toast is the
// caller's business; this never fails loudly.
func (n *Notifier) Publish(m Message) error {
	if n == nil || !n.Desktop {
		return nil
	}
	send := n.send
	if send == nil {
		send = desktopNotify
	}
	return send("noted: "+m.Title, m.Description)
}

func Copied() Message {
	return Message{Kind: KindInfo, Title: "Copied!", Description: "Line copied to the clipboard."}
}

func CopyFailed(err error) Message {
	return Message{Kind: KindError, Title: "Copy failed", Description: err.Error()}
}

func SaveFailed(err error) Message {
	return Message{Kind: KindError, Title: "Not saved", Description: err.Error()}
}

func Reloaded() Message {
	return Message{Kind: KindInfo, Title: "Reloaded", Description: "Notes changed outside this window."}
}

func ThemeChanged(name string) Message {
	return Message{Kind: KindInfo, Title: "Theme", Description: fmt.Sprintf("Switched to %s.", name)}
}

func NoteRemoved(title string) Message {
	return Message{Kind: KindInfo, Title: "Note removed", Description: fmt.Sprintf("%q was deleted.", title)}
}
