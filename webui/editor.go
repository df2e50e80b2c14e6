package webui

import (
	"fmt"
	"time"

	"github.com/bgugger/atelier/core"
)

const (
	adminFlagAttr = "data-admin"
	defaultField  = "content"
	imageField    = "image"
	uploadsBase   = "/uploads/"
	fallbackAlt   = "Bild"
)

// EditorOptions carries the Editor's injected collaborators.
type EditorOptions struct {
	Doc       Document
	Transport Transport
	Picker    FilePicker
	Logger    core.Logger
	After     TimerFunc        // nil: time.AfterFunc
	Now       func() time.Time // nil: time.Now
}

// Editor turns designated page regions into live-editable fields and image
// slots and synchronizes edits to the admin content API. Saves are
// optimistic: the edited DOM is never rolled back on failure, the outcome is
// only reported through the shared notice surface.
type Editor struct {
	doc       Document
	transport Transport
	picker    FilePicker
	logger    core.Logger
	now       func() time.Time
	notice    *notice
}

// NewEditor wires inline editing into the page, once per page load, and only
// when the server rendered the admin flag. For any other viewer it attaches
// no behavior, creates no DOM and returns nil.
func NewEditor(opts EditorOptions) *Editor {
	if opts.Doc.Root().Attr(adminFlagAttr) != "1" {
		return nil
	}
	if opts.Logger == nil {
		opts.Logger = nopLogger{}
	}
	if opts.After == nil {
		opts.After = afterFunc
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	ed := &Editor{
		doc:       opts.Doc,
		transport: opts.Transport,
		picker:    opts.Picker,
		logger:    opts.Logger,
		now:       opts.Now,
		notice:    newNotice(opts.Doc, opts.After),
	}
	ed.attach()
	return ed
}

func (ed *Editor) attach() {
	for _, el := range ed.doc.Select("[data-editable]") {
		el := el
		el.SetAttr("contenteditable", "true")
		el.On("blur", func(Event) { ed.saveText(el) })
	}
	for _, el := range ed.doc.Select("[data-editable-image]") {
		el := el
		el.On("click", func(Event) { ed.uploadImage(el) })
	}
}

// saveText reads the region's current value and posts it to the content
// endpoint. Plain fields (title, subtitle) read visible text, anything else
// reads raw markup; both are trimmed.
func (ed *Editor) saveText(el Element) {
	kind, id := el.Attr("data-entity"), el.Attr("data-id")
	field := el.Attr("data-field")
	if field == "" {
		field = defaultField
	}

	endpoint, ok := ContentEndpoint(kind, id)
	if !ok {
		// Misconfigured template: invisible to the user, visible to us.
		ed.logger.Debug(fmt.Sprintf("editable region without entity metadata (kind=%q, id=%q): save skipped", kind, id))
		return
	}

	var value string
	switch field {
	case "title", "subtitle":
		value = core.CleanString(el.Text())
	default:
		value = core.CleanString(el.HTML())
	}

	ed.transport.PostJSON(endpoint, map[string]string{field: value}, func(err error) {
		if err != nil {
			ed.logger.Error(fmt.Sprintf("saving %s/%s field %s: %v", kind, id, field, err), err)
			ed.notice.failure("Speichern fehlgeschlagen")
			return
		}
		ed.notice.success("Gespeichert")
	})
}

// uploadImage opens the file dialog for the image slot and posts the chosen
// file. On success the slot's img element (created when absent) points at
// the new upload with a cache-busting timestamp.
func (ed *Editor) uploadImage(region Element) {
	kind, id := region.Attr("data-entity"), region.Attr("data-id")
	endpoint, ok := ImageEndpoint(kind, id)
	if !ok {
		ed.logger.Debug(fmt.Sprintf("editable image without entity metadata (kind=%q, id=%q): upload skipped", kind, id))
		return
	}

	ed.picker.Pick("image/*", func(file File) {
		ed.transport.PostFile(endpoint, imageField, file, func(res UploadResult, err error) {
			defer ed.picker.Reset()

			if err != nil {
				ed.logger.Error(fmt.Sprintf("uploading image for %s/%s: %v", kind, id, err), err)
				ed.notice.failure("Bild-Upload fehlgeschlagen")
				return
			}
			if !res.Success {
				msg := res.Message
				if msg == "" {
					msg = "Bild-Upload fehlgeschlagen"
				}
				ed.notice.failure(msg)
				return
			}

			img := region.Find("img")
			if img == nil {
				img = ed.doc.Create("img")
				region.Append(img)
			}
			img.SetAttr("src", fmt.Sprintf("%s%s?t=%d", uploadsBase, res.ImagePath, ed.now().Unix()))
			alt := res.Title
			if alt == "" {
				alt = fallbackAlt
			}
			img.SetAttr("alt", alt)
			ed.notice.success("Bild gespeichert")
		})
	})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}
