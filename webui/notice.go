package webui

import "time"

// noticeFadeDelay is how long a notice stays visible before fading out.
const noticeFadeDelay = 2 * time.Second

const (
	successColor = "#2e7d32"
	failureColor = "#c62828"
)

// notice is the single shared surface used to report save outcomes.
// Every show is a full overwrite of text, color and visibility, so
// overlapping notices simply replace each other.
type notice struct {
	el    Element
	after TimerFunc
}

func newNotice(doc Document, after TimerFunc) *notice {
	el := doc.Create("div")
	el.SetStyle("position", "fixed")
	el.SetStyle("top", "16px")
	el.SetStyle("right", "16px")
	el.SetStyle("display", "none")
	doc.Body().Append(el)
	return &notice{el: el, after: after}
}

func (n *notice) success(msg string) {
	n.show(msg, successColor)
}

func (n *notice) failure(msg string) {
	n.show(msg, failureColor)
}

func (n *notice) show(msg, color string) {
	n.el.SetText(msg)
	n.el.SetStyle("background", color)
	n.el.SetStyle("display", "block")
	n.after(noticeFadeDelay, func() {
		n.el.SetStyle("display", "none")
	})
}
