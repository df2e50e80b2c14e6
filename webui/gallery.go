package webui

import (
	"math"
	"strconv"
)

// swipeThreshold is the minimum horizontal displacement, in logical pixels,
// for a touch gesture to count as a swipe rather than a tap.
const swipeThreshold = 50

const activeClass = "active"

// Gallery navigates a fixed, server-rendered sequence of images. Exactly one
// image is active at a time; advancing past the end and retreating past the
// start wrap around. The sequence itself is never mutated and the index
// resets with every page load.
type Gallery struct {
	images  []Element
	counter Element
	current int
	startX  float64
}

// NewGallery wires prev/next controls, global arrow keys and touch swipes
// over the page's gallery images. Pages without gallery images get no
// listeners and a nil navigator.
func NewGallery(doc Document) *Gallery {
	images := doc.Select(".gallery-image")
	if len(images) == 0 {
		return nil
	}

	g := &Gallery{images: images}
	if counters := doc.Select(".gallery-counter-current"); len(counters) > 0 {
		g.counter = counters[0]
	}
	// total reflects the fixed sequence length, set once
	for _, total := range doc.Select(".gallery-counter-total") {
		total.SetText(strconv.Itoa(len(images)))
	}

	for _, el := range doc.Select(".gallery-prev") {
		el.On("click", func(Event) { g.Retreat() })
	}
	for _, el := range doc.Select(".gallery-next") {
		el.On("click", func(Event) { g.Advance() })
	}
	doc.OnKeyDown(func(key string) {
		switch key {
		case "ArrowLeft":
			g.Retreat()
		case "ArrowRight":
			g.Advance()
		}
	})
	for _, surface := range doc.Select(".gallery-touch") {
		surface.On("touchstart", func(ev Event) { g.startX = ev.TouchX })
		surface.On("touchend", func(ev Event) { g.swipe(ev.TouchX) })
	}

	g.show(0)
	return g
}

// Current returns the 0-based index of the active image.
func (g *Gallery) Current() int {
	return g.current
}

func (g *Gallery) Advance() {
	g.show((g.current + 1) % len(g.images))
}

func (g *Gallery) Retreat() {
	g.show((g.current - 1 + len(g.images)) % len(g.images))
}

func (g *Gallery) show(i int) {
	g.images[g.current].RemoveClass(activeClass)
	g.current = i
	g.images[i].AddClass(activeClass)
	if g.counter != nil {
		g.counter.SetText(strconv.Itoa(i + 1))
	}
}

// swipe interprets a finished touch gesture. Content follows the finger,
// so a rightward swipe reveals the previous image.
func (g *Gallery) swipe(endX float64) {
	delta := endX - g.startX
	if math.Abs(delta) < swipeThreshold {
		return
	}
	if delta > 0 {
		g.Retreat()
	} else {
		g.Advance()
	}
}
