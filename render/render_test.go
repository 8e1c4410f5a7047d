package render

import "testing"

func TestAppendChildReparents(t *testing.T) {
	a := NewElement("div")
	b := NewElement("div")
	child := NewElement("span")

	a.AppendChild(child)
	if child.Parent != a || len(a.Children) != 1 {
		t.Fatalf("child not attached to a")
	}

	b.AppendChild(child)
	if child.Parent != b {
		t.Error("child.Parent should be b after second append")
	}
	if len(a.Children) != 0 {
		t.Errorf("a still has %d children, want 0", len(a.Children))
	}
	if len(b.Children) != 1 {
		t.Errorf("b has %d children, want 1", len(b.Children))
	}
}

func TestPrependChild(t *testing.T) {
	parent := NewElement("ul")
	first := NewElement("li")
	second := NewElement("li")
	parent.AppendChild(first)
	parent.PrependChild(second)
	if parent.Children[0] != second || parent.Children[1] != first {
		t.Error("prepended child should come first")
	}
}

func TestRemoveChild(t *testing.T) {
	parent := NewElement("div")
	child := NewElement("span")
	other := NewElement("span")
	parent.AppendChild(child)

	parent.RemoveChild(other) // not a child; no-op
	if len(parent.Children) != 1 {
		t.Fatalf("children = %d after removing a non-child, want 1", len(parent.Children))
	}

	parent.RemoveChild(child)
	if len(parent.Children) != 0 || child.Parent != nil {
		t.Error("child should be fully detached")
	}
}

func TestSetAttrPreservesOrderAndReplaces(t *testing.T) {
	el := NewElement("div")
	el.SetAttr("a", "1")
	el.SetAttr("b", "2")
	el.SetAttr("a", "3")

	attrs := el.Attrs()
	if len(attrs) != 2 {
		t.Fatalf("len(attrs) = %d, want 2", len(attrs))
	}
	if attrs[0].Name != "a" || attrs[0].Value != "3" {
		t.Errorf("attrs[0] = %+v, want a=3 in original position", attrs[0])
	}
	if v, ok := el.Attr("b"); !ok || v != "2" {
		t.Errorf("Attr(b) = %q (%v)", v, ok)
	}
	if _, ok := el.Attr("missing"); ok {
		t.Error("Attr(missing) reported present")
	}
}

func TestFindByID(t *testing.T) {
	root := NewRoot()
	mid := NewElement("div")
	leaf := NewElement("span")
	leaf.ID = "target"
	root.AppendChild(mid)
	mid.AppendChild(leaf)

	if got := root.FindByID("target"); got != leaf {
		t.Errorf("FindByID = %v, want the leaf", got)
	}
	if got := root.FindByID("nope"); got != nil {
		t.Errorf("FindByID(nope) = %v, want nil", got)
	}
}

func TestDispatch(t *testing.T) {
	t.Run("fires matching listeners in order", func(t *testing.T) {
		el := NewElement("button")
		var calls []string
		el.AddListener(Listener{Type: "click", Handler: func(*Element) { calls = append(calls, "one") }})
		el.AddListener(Listener{Type: "hover", Handler: func(*Element) { calls = append(calls, "skip") }})
		el.AddListener(Listener{Type: "click", Handler: func(*Element) { calls = append(calls, "two") }})

		if !el.Dispatch("click") {
			t.Fatal("Dispatch returned false")
		}
		if len(calls) != 2 || calls[0] != "one" || calls[1] != "two" {
			t.Errorf("calls = %v", calls)
		}
	})

	t.Run("no match returns false", func(t *testing.T) {
		el := NewElement("button")
		el.AddListener(Listener{Type: "click", Handler: func(*Element) {}})
		if el.Dispatch("keydown") {
			t.Error("Dispatch of an unbound type returned true")
		}
	})

	t.Run("once listeners fire a single time", func(t *testing.T) {
		el := NewElement("button")
		count := 0
		el.AddListener(Listener{Type: "click", Handler: func(*Element) { count++ }, Once: true})

		el.Dispatch("click")
		el.Dispatch("click")
		if count != 1 {
			t.Errorf("handler ran %d times, want 1", count)
		}
		if len(el.Listeners()) != 0 {
			t.Errorf("listeners remaining = %d, want 0", len(el.Listeners()))
		}
	})

	t.Run("nil handler is never attached", func(t *testing.T) {
		el := NewElement("button")
		el.AddListener(Listener{Type: "click"})
		if el.IsInteractive || len(el.Listeners()) != 0 {
			t.Error("listener with nil handler should be rejected")
		}
	})
}

func TestContainsPoint(t *testing.T) {
	el := NewElement("div")
	el.RenderX, el.RenderY = 10, 20
	el.RenderW, el.RenderH = 100, 50

	cases := []struct {
		x, y float32
		want bool
	}{
		{10, 20, true},   // top-left corner is inside
		{109, 69, true},  // just inside bottom-right
		{110, 69, false}, // right edge is exclusive
		{109, 70, false}, // bottom edge is exclusive
		{9, 20, false},
		{50, 40, true},
	}
	for _, tc := range cases {
		if got := el.ContainsPoint(tc.x, tc.y); got != tc.want {
			t.Errorf("ContainsPoint(%v, %v) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestHasClass(t *testing.T) {
	el := NewElement("li")
	el.Classes = []string{"menu-item", "has-children"}
	if !el.HasClass("menu-item") || el.HasClass("other") {
		t.Errorf("HasClass gave wrong answers for %v", el.Classes)
	}
}
