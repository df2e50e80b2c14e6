package uploadsvc

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bgugger/atelier/core"
)

func newTestStore(t *testing.T) (Store, string) {
	t.Helper()
	dir, err := ioutil.TempDir("", "uploads")
	if err != nil {
		t.Fatalf("TempDir(): %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	conf := &core.Config{}
	conf.Uploads.Dir = dir
	conf.Uploads.AllowedExts = []string{"png", "jpg", "jpeg", "gif"}
	return NewDiskStore(conf), dir
}

func TestDiskStore_Save(t *testing.T) {
	store, dir := newTestStore(t)

	relPath, err := store.Save("pages", "Mein Bild.PNG", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("Save(): %v", err)
	}
	if !strings.HasPrefix(relPath, "pages/") {
		t.Errorf("Save() = %q; want pages/ prefix", relPath)
	}
	if !strings.HasSuffix(relPath, ".png") {
		t.Errorf("Save() = %q; want .png suffix", relPath)
	}
	if strings.ContainsAny(relPath, " ") {
		t.Errorf("Save() = %q; spaces must be sanitized", relPath)
	}

	data, err := ioutil.ReadFile(filepath.Join(dir, filepath.FromSlash(relPath)))
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("saved content = %q", data)
	}
}

func TestDiskStore_SaveUniqueNames(t *testing.T) {
	store, _ := newTestStore(t)

	p1, err := store.Save("art", "x.jpg", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("Save(): %v", err)
	}
	p2, err := store.Save("art", "x.jpg", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("Save(): %v", err)
	}
	if p1 == p2 {
		t.Errorf("repeated uploads of the same filename must not collide: %q", p1)
	}
}

func TestDiskStore_SaveRejectsBadExtension(t *testing.T) {
	store, _ := newTestStore(t)

	for _, filename := range []string{"evil.exe", "noext", "script.js"} {
		if _, err := store.Save("pages", filename, strings.NewReader("x")); err != ErrBadExtension {
			t.Errorf("Save(%q) err = %v; want ErrBadExtension", filename, err)
		}
	}
}
