package webui

import "testing"

func TestContentEndpoint(t *testing.T) {
	tests := []struct {
		name   string
		kind   string
		id     string
		want   string
		wantOK bool
	}{
		{"page", "page", "1", "/admin/api/page/1/content", true},
		{"course", "course", "42", "/admin/api/course/42/content", true},
		{"art category", "art-category", "7", "/admin/api/art-category/7/content", true},
		{"unknown kind", "gallery", "1", "", false},
		{"missing kind", "", "1", "", false},
		{"missing id", "page", "", "", false},
		{"non-numeric id", "page", "abc", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ContentEndpoint(tt.kind, tt.id)
			if ok != tt.wantOK {
				t.Fatalf("ContentEndpoint() ok = %v; want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ContentEndpoint() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestImageEndpoint(t *testing.T) {
	if got, ok := ImageEndpoint("art-category", "7"); !ok || got != "/admin/api/art-category/7/image" {
		t.Errorf("ImageEndpoint() = %q, %v", got, ok)
	}
	if _, ok := ImageEndpoint("course", ""); ok {
		t.Error("ImageEndpoint() resolved an endpoint without an id")
	}
}
