package webui

import "time"

// Event carries the data of a UI event delivered to a handler.
// Only the fields relevant to the event type are set.
type Event struct {
	Key    string  // keydown: key name, e.g. "ArrowLeft"
	TouchX float64 // touchstart/touchend: horizontal screen coordinate
}

// Element is the minimal view of a page node the controllers need.
type Element interface {
	// Attr returns the attribute value, or "" when absent.
	Attr(name string) string
	SetAttr(name, value string)
	// Text returns the element's visible text only, markup excluded.
	Text() string
	SetText(s string)
	// HTML returns the element's raw inner markup.
	HTML() string
	AddClass(name string)
	RemoveClass(name string)
	SetStyle(prop, value string)
	// Find returns the first matching descendant, or nil when none exists.
	Find(selector string) Element
	Append(child Element)
	On(event string, handler func(Event))
}

// Document is the injectable boundary to the hosting page.
type Document interface {
	// Root returns the document element carrying page-level metadata.
	Root() Element
	Select(selector string) []Element
	Create(tag string) Element
	Body() Element
	// OnKeyDown registers a global key listener, independent of focus.
	OnKeyDown(handler func(key string))
}

// File is a user-chosen file handed to an upload.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// FilePicker opens the platform file-selection dialog.
type FilePicker interface {
	// Pick prompts for a file restricted to accept (a MIME pattern) and
	// invokes onChoose with the selection. A cancelled dialog invokes nothing.
	Pick(accept string, onChoose func(File))
	// Reset clears the current selection so the same file can be picked again.
	Reset()
}

// TimerFunc schedules fn to run after d. Injected so tests control time.
type TimerFunc func(d time.Duration, fn func())

func afterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}
