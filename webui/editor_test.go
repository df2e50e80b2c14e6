package webui

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type editorFixture struct {
	doc       *fakeDocument
	transport *fakeTransport
	picker    *fakePicker
	timer     *fakeTimer
	logger    *testLogger
}

func newEditorFixture(admin bool) *editorFixture {
	doc := newFakeDocument()
	if admin {
		doc.root.SetAttr(adminFlagAttr, "1")
	}
	return &editorFixture{
		doc:       doc,
		transport: &fakeTransport{},
		picker:    &fakePicker{},
		timer:     &fakeTimer{},
		logger:    &testLogger{},
	}
}

func (f *editorFixture) newEditor() *Editor {
	return NewEditor(EditorOptions{
		Doc:       f.doc,
		Transport: f.transport,
		Picker:    f.picker,
		Logger:    f.logger,
		After:     f.timer.after,
		Now:       func() time.Time { return time.Unix(1700000000, 0) },
	})
}

func (f *editorFixture) addEditable(kind, id, field string) *fakeElement {
	el := newFakeElement("div")
	if kind != "" {
		el.SetAttr("data-entity", kind)
	}
	if id != "" {
		el.SetAttr("data-id", id)
	}
	if field != "" {
		el.SetAttr("data-field", field)
	}
	f.doc.add("[data-editable]", el)
	return el
}

func (f *editorFixture) addEditableImage(kind, id string) *fakeElement {
	el := newFakeElement("div")
	el.SetAttr("data-entity", kind)
	el.SetAttr("data-id", id)
	f.doc.add("[data-editable-image]", el)
	return el
}

func (f *editorFixture) noticeEl(t *testing.T) *fakeElement {
	t.Helper()
	if len(f.doc.created) == 0 {
		t.Fatal("notice element was not created")
	}
	return f.doc.created[0]
}

func TestEditor_inactiveForAnonymousVisitors(t *testing.T) {
	f := newEditorFixture(false)
	region := f.addEditable("page", "1", "")

	ed := f.newEditor()

	assert.Nil(t, ed)
	assert.Empty(t, f.doc.created, "no DOM may be created for non-admin viewers")
	assert.Zero(t, region.handlerCount())
	assert.NotEqual(t, "true", region.Attr("contenteditable"))
}

func TestEditor_titleBlurSendsTrimmedText(t *testing.T) {
	f := newEditorFixture(true)
	region := f.addEditable("page", "1", "title")
	region.text = "  Hello <b>x</b>  "
	region.html = "  <span>Hello <b>x</b></span>  "
	f.newEditor()

	assert.Equal(t, "true", region.Attr("contenteditable"))

	region.fire("blur", Event{})

	if assert.Len(t, f.transport.jsonCalls, 1) {
		call := f.transport.jsonCalls[0]
		assert.Equal(t, "/admin/api/page/1/content", call.path)
		assert.Equal(t, map[string]string{"title": "Hello <b>x</b>"}, call.payload)
	}
}

func TestEditor_defaultFieldSendsMarkup(t *testing.T) {
	f := newEditorFixture(true)
	region := f.addEditable("course", "42", "")
	region.text = "plain"
	region.html = "  <p>rich</p>  "
	f.newEditor()

	region.fire("blur", Event{})

	if assert.Len(t, f.transport.jsonCalls, 1) {
		call := f.transport.jsonCalls[0]
		assert.Equal(t, "/admin/api/course/42/content", call.path)
		assert.Equal(t, map[string]string{"content": "<p>rich</p>"}, call.payload)
	}
}

func TestEditor_missingIDNeverSaves(t *testing.T) {
	f := newEditorFixture(true)
	region := f.addEditable("page", "", "")
	region.html = "changed content"
	f.newEditor()

	region.fire("blur", Event{})
	region.fire("blur", Event{})

	assert.Empty(t, f.transport.jsonCalls)
	assert.NotEmpty(t, f.logger.debugs, "the skipped save must be visible to developers")
}

func TestEditor_saveOutcomeNotices(t *testing.T) {
	f := newEditorFixture(true)
	region := f.addEditable("page", "1", "")
	region.html = "<p>edited</p>"
	f.newEditor()
	noticeEl := f.noticeEl(t)

	region.fire("blur", Event{})
	f.transport.jsonCalls[0].done(nil)

	assert.Equal(t, "Gespeichert", noticeEl.text)
	assert.Equal(t, successColor, noticeEl.styles["background"])
	assert.Equal(t, "block", noticeEl.styles["display"])

	region.fire("blur", Event{})
	f.transport.jsonCalls[1].done(errors.New("boom"))

	assert.Equal(t, "Speichern fehlgeschlagen", noticeEl.text)
	assert.Equal(t, failureColor, noticeEl.styles["background"])
	assert.Equal(t, "<p>edited</p>", region.html, "failed saves must not revert the edit")
	assert.NotEmpty(t, f.logger.errs)

	f.timer.runAll()
	assert.Equal(t, "none", noticeEl.styles["display"], "notices fade out after the delay")
}

func TestEditor_overlappingSavesRace(t *testing.T) {
	f := newEditorFixture(true)
	region := f.addEditable("page", "1", "")
	region.html = "v1"
	f.newEditor()
	noticeEl := f.noticeEl(t)

	region.fire("blur", Event{})
	region.html = "v2"
	region.fire("blur", Event{})

	// both requests go out independently, neither is suppressed or queued
	if !assert.Len(t, f.transport.jsonCalls, 2) {
		return
	}
	assert.Equal(t, map[string]string{"content": "v1"}, f.transport.jsonCalls[0].payload)
	assert.Equal(t, map[string]string{"content": "v2"}, f.transport.jsonCalls[1].payload)

	// responses arrive out of order; the last one to arrive wins the notice
	f.transport.jsonCalls[1].done(nil)
	f.transport.jsonCalls[0].done(errors.New("late failure"))
	assert.Equal(t, "Speichern fehlgeschlagen", noticeEl.text)
}

func TestEditor_imageUpload(t *testing.T) {
	f := newEditorFixture(true)
	region := f.addEditableImage("art-category", "7")
	f.newEditor()

	region.fire("click", Event{})
	assert.Equal(t, "image/*", f.picker.accept)

	f.picker.choose(File{Name: "y.png", ContentType: "image/png", Data: []byte("png-bytes")})

	if !assert.Len(t, f.transport.fileCalls, 1) {
		return
	}
	call := f.transport.fileCalls[0]
	assert.Equal(t, "/admin/api/art-category/7/image", call.path)
	assert.Equal(t, "image", call.field)
	assert.Equal(t, "y.png", call.file.Name)

	call.done(UploadResult{Success: true, ImagePath: "x/y.png", Title: "Malerei"}, nil)

	img := region.Find("img")
	if assert.NotNil(t, img, "an img element is created when the slot is empty") {
		assert.Equal(t, "/uploads/x/y.png?t=1700000000", img.Attr("src"))
		assert.Equal(t, "Malerei", img.Attr("alt"))
	}
	assert.Equal(t, 1, f.picker.resets)
}

func TestEditor_imageUploadFailureLeavesImage(t *testing.T) {
	f := newEditorFixture(true)
	region := f.addEditableImage("course", "3")
	existing := newFakeElement("img")
	existing.SetAttr("src", "/uploads/courses/old.jpg")
	region.children = append(region.children, existing)
	f.newEditor()
	noticeEl := f.noticeEl(t)

	region.fire("click", Event{})
	f.picker.choose(File{Name: "new.jpg"})

	// application-level failure with a server-supplied message
	f.transport.fileCalls[0].done(UploadResult{Success: false, Message: "Kein Bild hochgeladen"}, nil)
	assert.Equal(t, "Kein Bild hochgeladen", noticeEl.text)
	assert.Equal(t, "/uploads/courses/old.jpg", existing.Attr("src"))
	assert.Equal(t, 1, f.picker.resets)

	// transport failure falls back to the generic message
	region.fire("click", Event{})
	f.picker.choose(File{Name: "new.jpg"})
	f.transport.fileCalls[1].done(UploadResult{}, errors.New("conn reset"))
	assert.Equal(t, "Bild-Upload fehlgeschlagen", noticeEl.text)
	assert.Equal(t, "/uploads/courses/old.jpg", existing.Attr("src"))
	assert.Equal(t, 2, f.picker.resets)
}

func TestEditor_fallbackAltText(t *testing.T) {
	f := newEditorFixture(true)
	region := f.addEditableImage("page", "1")
	f.newEditor()

	region.fire("click", Event{})
	f.picker.choose(File{Name: "p.png"})
	f.transport.fileCalls[0].done(UploadResult{Success: true, ImagePath: "pages/p.png"}, nil)

	img := region.Find("img")
	if assert.NotNil(t, img) {
		assert.Equal(t, fallbackAlt, img.Attr("alt"))
	}
}
