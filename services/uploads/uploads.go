// Package uploadsvc stores admin-uploaded images on disk and hands back the
// relative paths served under /uploads/.
package uploadsvc

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"github.com/bgugger/atelier/core"
)

var (
	ErrBadExtension = errors.New("file type not allowed")

	unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
)

type (
	// Store saves uploaded files under a subfolder of the upload root.
	Store interface {
		// Save writes r to "<subfolder>/<unique name>" and returns that
		// relative path. The original filename only contributes its
		// sanitized base name and extension.
		Save(subfolder, filename string, r io.Reader) (string, error)
	}

	diskStore struct {
		root        string
		allowedExts map[string]bool
	}
)

var _ Store = (*diskStore)(nil)

func NewDiskStore(conf *core.Config) Store {
	exts := make(map[string]bool, len(conf.Uploads.AllowedExts))
	for _, ext := range conf.Uploads.AllowedExts {
		exts[strings.ToLower(ext)] = true
	}
	return &diskStore{root: conf.Uploads.Dir, allowedExts: exts}
}

func (s *diskStore) Save(subfolder, filename string, r io.Reader) (string, error) {
	name, err := s.secureName(filename)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(s.root, subfolder)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return "", pkgerrors.Wrap(err, "creating upload dir")
	}

	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", pkgerrors.Wrap(err, "creating upload file")
	}
	defer func() { _ = f.Close() }()

	if _, err = io.Copy(f, r); err != nil {
		return "", pkgerrors.Wrap(err, "writing upload file")
	}
	return subfolder + "/" + name, nil
}

// secureName validates the extension and prefixes the sanitized base name
// with a uuid so repeated uploads of the same file never collide.
func (s *diskStore) secureName(filename string) (string, error) {
	base := filepath.Base(filename)
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(base), "."))
	if !s.allowedExts[ext] {
		return "", ErrBadExtension
	}
	name := unsafeChars.ReplaceAllString(strings.TrimSuffix(base, filepath.Ext(base)), "_")
	if name == "" || name == "_" {
		name = "upload"
	}
	return uuid.New().String() + "_" + name + "." + ext, nil
}
