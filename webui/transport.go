package webui

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"

	"github.com/pkg/errors"
)

// UploadResult is the server's answer to an image upload.
type UploadResult struct {
	Success   bool   `json:"success"`
	ImagePath string `json:"image_path"`
	Title     string `json:"title"`
	Message   string `json:"message"`
}

// Transport performs the editor's server calls. Implementations must not
// block the caller; done runs when the response arrives. Requests are never
// cancelled or sequenced: overlapping calls race and the last response wins.
type Transport interface {
	PostJSON(path string, payload interface{}, done func(error))
	PostFile(path, field string, file File, done func(UploadResult, error))
}

type httpTransport struct {
	base   string
	client *http.Client
}

var _ Transport = (*httpTransport)(nil)

// NewHTTPTransport returns a Transport POSTing to base+path with client.
// A nil client falls back to http.DefaultClient.
func NewHTTPTransport(base string, client *http.Client) Transport {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpTransport{base: base, client: client}
}

func (t *httpTransport) PostJSON(path string, payload interface{}, done func(error)) {
	go func() {
		body, err := json.Marshal(payload)
		if err != nil {
			done(errors.Wrap(err, "marshaling payload"))
			return
		}
		res, err := t.client.Post(t.base+path, "application/json", bytes.NewReader(body))
		if err != nil {
			done(errors.Wrap(err, "posting content update"))
			return
		}
		defer func() { _ = res.Body.Close() }()
		if res.StatusCode < 200 || res.StatusCode > 299 {
			done(errors.Errorf("content update failed: status %d", res.StatusCode))
			return
		}
		done(nil)
	}()
}

func (t *httpTransport) PostFile(path, field string, file File, done func(UploadResult, error)) {
	go func() {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		fw, err := w.CreateFormFile(field, file.Name)
		if err != nil {
			done(UploadResult{}, errors.Wrap(err, "creating form file"))
			return
		}
		if _, err = fw.Write(file.Data); err != nil {
			done(UploadResult{}, errors.Wrap(err, "writing form file"))
			return
		}
		if err = w.Close(); err != nil {
			done(UploadResult{}, errors.Wrap(err, "closing multipart body"))
			return
		}

		res, err := t.client.Post(t.base+path, w.FormDataContentType(), &buf)
		if err != nil {
			done(UploadResult{}, errors.Wrap(err, "posting upload"))
			return
		}
		defer func() { _ = res.Body.Close() }()

		// Application-level failures still come back as a decodable body;
		// only an undecodable response is a transport error.
		var result UploadResult
		if err = json.NewDecoder(res.Body).Decode(&result); err != nil {
			done(UploadResult{}, errors.Errorf("upload failed: status %d", res.StatusCode))
			return
		}
		done(result, nil)
	}()
}
