package webui

import "strconv"

// Entity kinds the admin content API accepts. They mirror core/content.Kind;
// the strings are duplicated here because this layer ships to the page and
// must not depend on server packages.
const (
	entityPage        = "page"
	entityCourse      = "course"
	entityArtCategory = "art-category"
)

// ContentEndpoint resolves the text-update endpoint for an editable region.
// The second return is false when kind or id do not identify an entity,
// in which case the operation must be a no-op.
func ContentEndpoint(kind, id string) (string, bool) {
	return endpoint(kind, id, "content")
}

// ImageEndpoint resolves the image-upload endpoint for an editable region.
func ImageEndpoint(kind, id string) (string, bool) {
	return endpoint(kind, id, "image")
}

func endpoint(kind, id, op string) (string, bool) {
	switch kind {
	case entityPage, entityCourse, entityArtCategory:
	default:
		return "", false
	}
	if _, err := strconv.Atoi(id); err != nil {
		return "", false
	}
	return "/admin/api/" + kind + "/" + id + "/" + op, true
}
