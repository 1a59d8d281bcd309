package dom

import (
	"testing"
)

func TestHitTest(t *testing.T) {
	d := NewDocument()
	d.Root().SetBounds(Rect{Width: 80, Height: 24})
	panel := d.CreateElement("div")
	panel.SetBounds(Rect{X: 0, Y: 0, Width: 40, Height: 10})
	button := d.CreateElement("button")
	button.SetBounds(Rect{X: 2, Y: 2, Width: 10, Height: 1})
	overlay := d.CreateElement("div")
	overlay.SetBounds(Rect{X: 5, Y: 2, Width: 3, Height: 1})
	_ = d.Root().AppendChild(panel)
	_ = panel.AppendChild(button)
	_ = panel.AppendChild(overlay)

	tests := []struct {
		name string
		x, y int
		want *Element
	}{
		{"button", 3, 2, button},
		{"later sibling on top", 6, 2, overlay},
		{"panel", 20, 5, panel},
		{"root", 60, 20, d.Root()},
		{"outside", 100, 100, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.HitTest(tt.x, tt.y); got != tt.want {
				t.Errorf("HitTest(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHitTest_IgnoresUnattached(t *testing.T) {
	d := NewDocument()
	el := d.CreateElement("button")
	el.SetBounds(Rect{Width: 5, Height: 1})
	if got := d.HitTest(1, 0); got != nil {
		t.Errorf("unattached element should not be hit, got %v", got)
	}
}

func TestElementByID(t *testing.T) {
	d := NewDocument()
	el := d.CreateElement("span")
	el.SetID("status")
	_ = d.Root().AppendChild(el)

	if got := d.ElementByID("status"); got != el {
		t.Errorf("expected element, got %v", got)
	}
	if got := d.ElementByID("missing"); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestWalkAndTextContent(t *testing.T) {
	d := NewDocument()
	p := d.CreateElement("p")
	_ = d.Root().AppendChild(p)
	_ = p.AppendChild(d.CreateText("hello "))
	_ = p.AppendChild(d.CreateText("world"))

	if got := TextContent(d.Root()); got != "hello world" {
		t.Errorf("expected %q, got %q", "hello world", got)
	}

	var depths []int
	d.Walk(func(n Node, depth int) bool {
		depths = append(depths, depth)
		if txt, ok := n.(*Text); ok {
			txt.SetData(txt.Data())
		}
		return true
	})
	if len(depths) != 4 || depths[0] != 0 || depths[1] != 1 || depths[3] != 2 {
		t.Errorf("unexpected walk depths %v", depths)
	}

	visited := 0
	d.Walk(func(Node, int) bool {
		visited++
		return false
	})
	if visited != 1 {
		t.Errorf("expected walk to stop after first node, visited %d", visited)
	}
}

func TestMount(t *testing.T) {
	d := NewDocument()
	first := d.CreateElement("first")
	_ = d.Root().AppendChild(first)
	m := NewMount(d.Root(), 0)
	txt := d.CreateText("x")

	if err := m.Attach(txt); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	if children := d.Root().Children(); children[0] != txt {
		t.Errorf("expected text inserted at index 0, got %v", children)
	}
	if m.Parent() != d.Root() {
		t.Error("unexpected mount parent")
	}

	if err := m.Detach(txt); err != nil {
		t.Fatalf("Detach failed: %v", err)
	}
	if txt.IsConnected() {
		t.Error("expected text detached")
	}
	if err := m.Detach(txt); err != nil {
		t.Errorf("detaching an unattached node should be a no-op, got %v", err)
	}
	if err := m.Detach(nil); err == nil {
		t.Error("expected error for nil node")
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 1, Y: 1, Width: 2, Height: 2}
	if !r.Contains(1, 1) || !r.Contains(2, 2) {
		t.Error("expected inside points to be contained")
	}
	if r.Contains(3, 1) || r.Contains(0, 1) {
		t.Error("expected outside points not to be contained")
	}
	if (Rect{}).Contains(0, 0) {
		t.Error("empty rect contains nothing")
	}
}
