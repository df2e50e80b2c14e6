package core

import (
	"bytes"
	"fmt"
	htmltmpl "html/template"
	"io/fs"
	"net/mail"
	"path"
	"strings"
	"sync"
	texttmpl "text/template"
)

var (
	templates   = make(tmplCache)
	tmplInit    sync.Once
	templatesFS fs.FS
)

type (
	tmplCacheEntry map[string]interface{}    // {ext: *Template}
	tmplCache      map[string]tmplCacheEntry // {name: tmplCacheEntry}

	Attachment struct {
		Content     *bytes.Buffer
		ContentType string
		Filename    string
	}

	EmailMessage struct {
		To          []mail.Address
		Cc          []mail.Address
		Bcc         []mail.Address
		ReplyTo     string
		Subject     string
		BodyStr     string // simple text/plain, non-templated content
		Attachments []Attachment

		// templated contents
		TemplateName string // without ext
		TemplateData interface{}
		TextContent  string
		HTMLContent  string
	}

	// ContextData wraps template data with app-level context.
	ContextData struct {
		FrontendBaseURL string
		AppName         string
		Data            interface{}
	}

	// EmailService is any service that can send emails.
	EmailService interface {
		// SendMessages sends messages concurrently
		SendMessages(messages ...*EmailMessage)
	}
)

// ParseEmailTemplates walks tmplFS and caches every "<name>.txt" / "<name>.html"
// pair found under "templates". Must be called once at app startup.
func ParseEmailTemplates(tmplFS fs.FS, logger Logger) {
	tmplInit.Do(func() {
		templatesFS = tmplFS
		entries, err := fs.ReadDir(tmplFS, "templates")
		if err != nil {
			logger.Error(fmt.Sprintf("reading email templates: %v", err), err)
			return
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			fname := entry.Name()
			ext := path.Ext(fname)
			name := strings.TrimSuffix(fname, ext)
			if _, ok := templates[name]; !ok {
				templates[name] = make(tmplCacheEntry, 2)
			}
			fpath := path.Join("templates", fname)
			switch ext {
			case ".txt":
				tmpl, err := texttmpl.ParseFS(tmplFS, fpath)
				if err != nil {
					logger.Error(fmt.Sprintf("parsing %s: %v", fpath, err), err)
					continue
				}
				templates[name][ext] = tmpl
			case ".html":
				tmpl, err := htmltmpl.ParseFS(tmplFS, fpath)
				if err != nil {
					logger.Error(fmt.Sprintf("parsing %s: %v", fpath, err), err)
					continue
				}
				templates[name][ext] = tmpl
			}
		}
	})
}

func (m *EmailMessage) getTemplate(ext string) (interface{}, bool) {
	cache, ok := templates[m.TemplateName]
	if !ok {
		return nil, ok
	}
	tmpl, ok := cache[ext]
	return tmpl, ok
}

// Render fills TextContent and HTMLContent from BodyStr or the cached templates.
func (m *EmailMessage) Render(conf *Config) error {
	data := ContextData{
		FrontendBaseURL: conf.FrontendBaseURL,
		AppName:         conf.AppName,
		Data:            m.TemplateData,
	}

	if m.BodyStr != "" {
		m.TextContent = m.BodyStr
		return nil
	}

	if tmpl, ok := m.getTemplate(".txt"); ok {
		var buf bytes.Buffer
		if err := tmpl.(*texttmpl.Template).Execute(&buf, data); err != nil {
			return err
		}
		m.TextContent = buf.String()
	}
	if tmpl, ok := m.getTemplate(".html"); ok {
		var buf bytes.Buffer
		if err := tmpl.(*htmltmpl.Template).Execute(&buf, data); err != nil {
			return err
		}
		m.HTMLContent = buf.String()
	}
	return nil
}

func (m *EmailMessage) HasRecipients() bool {
	return len(m.To)+len(m.Cc)+len(m.Bcc) > 0
}

func (m *EmailMessage) HasContent() bool {
	return m.BodyStr != "" || m.TextContent != "" || m.HTMLContent != "" || m.TemplateName != ""
}

func (m *EmailMessage) HasAttachments() bool {
	return len(m.Attachments) > 0
}
