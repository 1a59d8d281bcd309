package term

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/asyncui/internal/dom"
)

// Paint redraws the document. Each element with bounds shows its value
// attribute, or else the text of its direct text children, clipped to its
// bounds. The focused element is drawn in reverse video. Paint must run on
// the loop goroutine.
func (h *Host) Paint() {
	h.screen.Clear()

	h.doc.Walk(func(n dom.Node, _ int) bool {
		el, ok := n.(*dom.Element)
		if !ok {
			return true
		}
		r := el.Bounds()
		if r.Empty() || el.Tag() == dom.RootTag {
			return true
		}

		style := tcell.StyleDefault
		if el == h.focus {
			style = style.Reverse(true)
			fill(h.screen, r, style)
		}
		drawText(h.screen, r, ownText(el), style)
		return true
	})

	h.screen.Show()
}

// ownText is the text an element displays itself.
func ownText(el *dom.Element) string {
	if v, ok := el.Attr(ValueAttr); ok {
		return v
	}
	var b strings.Builder
	for _, c := range el.Children() {
		if t, ok := c.(*dom.Text); ok {
			b.WriteString(t.Data())
		}
	}
	return b.String()
}

func fill(s tcell.Screen, r dom.Rect, style tcell.Style) {
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			s.SetContent(x, y, ' ', nil, style)
		}
	}
}

// drawText writes text line by line inside r, clipping what does not fit.
func drawText(s tcell.Screen, r dom.Rect, text string, style tcell.Style) {
	for i, line := range strings.Split(text, "\n") {
		if i >= r.Height {
			return
		}
		x := r.X
		for _, ch := range line {
			if x >= r.X+r.Width {
				break
			}
			s.SetContent(x, r.Y+i, ch, nil, style)
			x++
		}
	}
}
