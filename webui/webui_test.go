package webui

import (
	"time"
)

// fake DOM / transport implementations driving the controllers in tests.

type fakeElement struct {
	tag      string
	attrs    map[string]string
	text     string
	html     string
	classes  map[string]bool
	styles   map[string]string
	children []*fakeElement
	handlers map[string][]func(Event)
}

var _ Element = (*fakeElement)(nil)

func newFakeElement(tag string) *fakeElement {
	return &fakeElement{
		tag:      tag,
		attrs:    make(map[string]string),
		classes:  make(map[string]bool),
		styles:   make(map[string]string),
		handlers: make(map[string][]func(Event)),
	}
}

func (el *fakeElement) Attr(name string) string        { return el.attrs[name] }
func (el *fakeElement) SetAttr(name, value string)     { el.attrs[name] = value }
func (el *fakeElement) Text() string                   { return el.text }
func (el *fakeElement) SetText(s string)               { el.text = s }
func (el *fakeElement) HTML() string                   { return el.html }
func (el *fakeElement) AddClass(name string)           { el.classes[name] = true }
func (el *fakeElement) RemoveClass(name string)        { delete(el.classes, name) }
func (el *fakeElement) SetStyle(prop, value string)    { el.styles[prop] = value }
func (el *fakeElement) Append(child Element)           { el.children = append(el.children, child.(*fakeElement)) }
func (el *fakeElement) On(event string, h func(Event)) { el.handlers[event] = append(el.handlers[event], h) }

func (el *fakeElement) Find(selector string) Element {
	for _, child := range el.children {
		if child.tag == selector {
			return child
		}
	}
	return nil
}

func (el *fakeElement) fire(event string, ev Event) {
	for _, h := range el.handlers[event] {
		h(ev)
	}
}

func (el *fakeElement) handlerCount() int {
	var n int
	for _, hs := range el.handlers {
		n += len(hs)
	}
	return n
}

type fakeDocument struct {
	root        *fakeElement
	body        *fakeElement
	selectable  map[string][]*fakeElement
	keyHandlers []func(string)
	created     []*fakeElement
}

var _ Document = (*fakeDocument)(nil)

func newFakeDocument() *fakeDocument {
	return &fakeDocument{
		root:       newFakeElement("html"),
		body:       newFakeElement("body"),
		selectable: make(map[string][]*fakeElement),
	}
}

func (doc *fakeDocument) add(selector string, els ...*fakeElement) {
	doc.selectable[selector] = append(doc.selectable[selector], els...)
}

func (doc *fakeDocument) Root() Element { return doc.root }
func (doc *fakeDocument) Body() Element { return doc.body }

func (doc *fakeDocument) Select(selector string) []Element {
	els := make([]Element, 0, len(doc.selectable[selector]))
	for _, el := range doc.selectable[selector] {
		els = append(els, el)
	}
	return els
}

func (doc *fakeDocument) Create(tag string) Element {
	el := newFakeElement(tag)
	doc.created = append(doc.created, el)
	return el
}

func (doc *fakeDocument) OnKeyDown(h func(string)) {
	doc.keyHandlers = append(doc.keyHandlers, h)
}

func (doc *fakeDocument) pressKey(key string) {
	for _, h := range doc.keyHandlers {
		h(key)
	}
}

type jsonCall struct {
	path    string
	payload map[string]string
	done    func(error)
}

type fileCall struct {
	path  string
	field string
	file  File
	done  func(UploadResult, error)
}

// fakeTransport records calls without resolving them; tests invoke the
// recorded done callbacks in any order to simulate response races.
type fakeTransport struct {
	jsonCalls []jsonCall
	fileCalls []fileCall
}

var _ Transport = (*fakeTransport)(nil)

func (t *fakeTransport) PostJSON(path string, payload interface{}, done func(error)) {
	t.jsonCalls = append(t.jsonCalls, jsonCall{path: path, payload: payload.(map[string]string), done: done})
}

func (t *fakeTransport) PostFile(path, field string, file File, done func(UploadResult, error)) {
	t.fileCalls = append(t.fileCalls, fileCall{path: path, field: field, file: file, done: done})
}

type fakePicker struct {
	accept   string
	onChoose func(File)
	resets   int
}

var _ FilePicker = (*fakePicker)(nil)

func (p *fakePicker) Pick(accept string, onChoose func(File)) {
	p.accept = accept
	p.onChoose = onChoose
}

func (p *fakePicker) Reset() { p.resets++ }

func (p *fakePicker) choose(f File) {
	if p.onChoose != nil {
		p.onChoose(f)
	}
}

// fakeTimer collects scheduled callbacks so tests decide when time passes.
type fakeTimer struct {
	scheduled []func()
}

func (ft *fakeTimer) after(_ time.Duration, fn func()) {
	ft.scheduled = append(ft.scheduled, fn)
}

func (ft *fakeTimer) runAll() {
	for _, fn := range ft.scheduled {
		fn()
	}
	ft.scheduled = nil
}

type testLogger struct {
	debugs []string
	errs   []string
}

func (l *testLogger) Debug(msg string, _ ...interface{}) { l.debugs = append(l.debugs, msg) }
func (l *testLogger) Info(string, ...interface{})        {}
func (l *testLogger) Warn(string, ...interface{})        {}
func (l *testLogger) Error(msg string, _ ...interface{}) { l.errs = append(l.errs, msg) }
func (l *testLogger) Fatal(string, ...interface{})       {}
