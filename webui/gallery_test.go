package webui

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func galleryDoc(n int) (*fakeDocument, []*fakeElement) {
	doc := newFakeDocument()
	images := make([]*fakeElement, n)
	for i := range images {
		images[i] = newFakeElement("img")
		doc.add(".gallery-image", images[i])
	}
	return doc, images
}

func activeIndex(t *testing.T, images []*fakeElement) int {
	t.Helper()
	idx := -1
	for i, img := range images {
		if img.classes[activeClass] {
			if idx != -1 {
				t.Fatalf("more than one active image: %d and %d", idx, i)
			}
			idx = i
		}
	}
	return idx
}

func TestGallery_emptySequenceIsNoop(t *testing.T) {
	doc := newFakeDocument()
	prev := newFakeElement("button")
	doc.add(".gallery-prev", prev)

	g := NewGallery(doc)

	assert.Nil(t, g)
	assert.Zero(t, prev.handlerCount(), "no listeners may be attached for an empty gallery")
	assert.Empty(t, doc.keyHandlers)
}

func TestGallery_initialState(t *testing.T) {
	doc, images := galleryDoc(3)
	current := newFakeElement("span")
	total := newFakeElement("span")
	doc.add(".gallery-counter-current", current)
	doc.add(".gallery-counter-total", total)

	g := NewGallery(doc)

	assert.Equal(t, 0, g.Current())
	assert.Equal(t, 0, activeIndex(t, images))
	assert.Equal(t, "1", current.text)
	assert.Equal(t, "3", total.text)
}

func TestGallery_wrapAround(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		t.Run(strconv.Itoa(n)+" images", func(t *testing.T) {
			doc, images := galleryDoc(n)
			g := NewGallery(doc)

			for i := 0; i < n; i++ {
				g.Advance()
			}
			assert.Equal(t, 0, g.Current(), "N advances must return to start")

			for i := 0; i < n; i++ {
				g.Retreat()
			}
			assert.Equal(t, 0, g.Current(), "N retreats must return to start")
			assert.Equal(t, 0, activeIndex(t, images))
		})
	}
}

func TestGallery_controls(t *testing.T) {
	doc, images := galleryDoc(3)
	prev := newFakeElement("button")
	next := newFakeElement("button")
	doc.add(".gallery-prev", prev)
	doc.add(".gallery-next", next)
	current := newFakeElement("span")
	doc.add(".gallery-counter-current", current)

	g := NewGallery(doc)

	next.fire("click", Event{})
	assert.Equal(t, 1, g.Current())
	assert.Equal(t, 1, activeIndex(t, images))
	assert.Equal(t, "2", current.text)

	prev.fire("click", Event{})
	prev.fire("click", Event{})
	assert.Equal(t, 2, g.Current(), "retreating from 0 wraps to the last index")
	assert.Equal(t, "3", current.text)
}

func TestGallery_keyboard(t *testing.T) {
	doc, _ := galleryDoc(4)
	g := NewGallery(doc)

	doc.pressKey("ArrowRight")
	doc.pressKey("ArrowRight")
	assert.Equal(t, 2, g.Current())

	doc.pressKey("ArrowLeft")
	assert.Equal(t, 1, g.Current())

	doc.pressKey("Enter") // unrelated keys are ignored
	assert.Equal(t, 1, g.Current())
}

func TestGallery_swipe(t *testing.T) {
	tests := []struct {
		name         string
		startX, endX float64
		want         int
	}{
		{"below threshold is a tap", 100, 140, 0},
		{"just below threshold", 100, 149.9, 0},
		{"leftward swipe advances", 200, 150, 1},
		{"rightward swipe retreats", 100, 150, 2}, // wraps from 0 to last
		{"exactly at threshold counts", 100, 50, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, _ := galleryDoc(3)
			surface := newFakeElement("div")
			doc.add(".gallery-touch", surface)
			g := NewGallery(doc)

			surface.fire("touchstart", Event{TouchX: tt.startX})
			surface.fire("touchend", Event{TouchX: tt.endX})

			assert.Equal(t, tt.want, g.Current())
		})
	}
}
