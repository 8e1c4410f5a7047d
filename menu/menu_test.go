package menu

import (
	"testing"

	"github.com/menukit/menukit/render"
)

func showAt(t *testing.T, m *Menu, x, y float32) *render.Element {
	t.Helper()
	if err := m.ShowAt(x, y); err != nil {
		t.Fatalf("ShowAt failed: %v", err)
	}
	c := m.Container()
	if c == nil {
		t.Fatal("Container() = nil after ShowAt")
	}
	return c
}

func TestShowAtBuildsFloatingContainer(t *testing.T) {
	m := New([]Item{
		{ID: "open", Label: "Open"},
		{ID: "rename", Label: "Rename"},
	})
	c := showAt(t, m, 120, 80)

	if c.Tag != "ul" || !c.HasClass("context-menu") {
		t.Errorf("container = %s, want ul.context-menu", c)
	}
	if !c.Floating || c.PosX != 120 || c.PosY != 80 {
		t.Errorf("container not floated at (120, 80): Floating=%v pos=(%v, %v)", c.Floating, c.PosX, c.PosY)
	}
	if len(c.Children) != 2 {
		t.Fatalf("container has %d items, want 2", len(c.Children))
	}
	if got := c.Children[0]; got.ID != "open" || got.Text != "Open" || !got.HasClass("menu-item") {
		t.Errorf("first item = %s text %q", got, got.Text)
	}
	if !m.IsOpen() {
		t.Error("IsOpen() = false after ShowAt")
	}
}

func TestItemClickRunsCallbackAndCloses(t *testing.T) {
	ran := false
	m := New([]Item{{ID: "open", Label: "Open", OnClick: func() { ran = true }}})
	c := showAt(t, m, 0, 0)

	item := c.FindByID("open")
	if item == nil {
		t.Fatal("item not found")
	}
	if !item.IsInteractive {
		t.Fatal("enabled item should carry a click listener")
	}
	if !item.Dispatch("click") {
		t.Fatal("Dispatch fired nothing")
	}
	if !ran {
		t.Error("OnClick did not run")
	}
	if m.IsOpen() {
		t.Error("menu should close on item click")
	}
	if c.Parent != nil {
		t.Error("container should be detached from its parent")
	}
}

func TestDisabledItemHasNoListener(t *testing.T) {
	m := New([]Item{{ID: "delete", Label: "Delete", Disabled: true}})
	c := showAt(t, m, 0, 0)

	item := c.FindByID("delete")
	if item == nil {
		t.Fatal("item not found")
	}
	if item.IsInteractive {
		t.Error("disabled item must not be interactive")
	}
	if _, ok := item.Attr("disabled"); !ok {
		t.Error("disabled item should carry the disabled attribute")
	}
}

func TestSubmenuToggle(t *testing.T) {
	opened := 0
	m := New([]Item{
		{ID: "export", Label: "Export", OnOpen: func() { opened++ },
			Children: []Item{
				{ID: "export-png", Label: "As PNG"},
				{ID: "export-svg", Label: "As SVG"},
			}},
	})
	c := showAt(t, m, 0, 0)

	item := c.FindByID("export")
	if item == nil {
		t.Fatal("parent item not found")
	}
	if !item.HasClass("has-children") {
		t.Errorf("parent item classes = %v, want has-children", item.Classes)
	}

	var submenu *render.Element
	for _, child := range item.Children {
		if child.Tag == "ul" {
			submenu = child
		}
	}
	if submenu == nil {
		t.Fatal("parent item has no nested ul")
	}
	if hidden, ok := submenu.Attr("hidden"); !ok || hidden == "false" {
		t.Errorf("submenu hidden attr = %q (%v), want initially hidden", hidden, ok)
	}
	if len(submenu.Children) != 2 {
		t.Fatalf("submenu has %d items, want 2", len(submenu.Children))
	}

	// Give the item a layout box so the submenu floats beside it.
	item.RenderX, item.RenderY = 10, 40
	item.RenderW, item.RenderH = 220, 26

	item.Dispatch("click")
	if hidden, _ := submenu.Attr("hidden"); hidden != "false" {
		t.Errorf("after open: hidden = %q, want false", hidden)
	}
	if !submenu.IsVisible || !submenu.Floating {
		t.Error("opened submenu should be visible and floating")
	}
	if submenu.PosX != 230 || submenu.PosY != 40 {
		t.Errorf("submenu floated at (%v, %v), want (230, 40)", submenu.PosX, submenu.PosY)
	}
	if opened != 1 {
		t.Errorf("OnOpen ran %d times, want 1", opened)
	}
	if m.IsOpen() == false {
		t.Error("opening a submenu must not close the menu")
	}

	item.Dispatch("click")
	if hidden, _ := submenu.Attr("hidden"); hidden != "true" {
		t.Errorf("after toggle: hidden = %q, want true", hidden)
	}
	if submenu.IsVisible {
		t.Error("toggled submenu should be hidden again")
	}
	if opened != 1 {
		t.Errorf("OnOpen ran %d times after toggle close, want still 1", opened)
	}
}

func TestLabelParensSurvive(t *testing.T) {
	m := New([]Item{{ID: "paste", Label: "Paste (plain)"}})
	c := showAt(t, m, 0, 0)
	item := c.FindByID("paste")
	if item == nil {
		t.Fatal("item not found")
	}
	if item.Text != "Paste (plain)" {
		t.Errorf("label = %q, want %q", item.Text, "Paste (plain)")
	}
}

func TestShowAtReplacesOpenMenu(t *testing.T) {
	m := New([]Item{{ID: "a", Label: "A"}})
	first := showAt(t, m, 0, 0)
	second := showAt(t, m, 50, 60)

	if first == second {
		t.Fatal("ShowAt should rebuild the container")
	}
	if first.Parent != nil {
		t.Error("previous container should be detached")
	}
	parent := second.Parent
	if parent == nil {
		t.Fatal("new container has no parent")
	}
	count := 0
	for _, child := range parent.Children {
		if child.HasClass("context-menu") {
			count++
		}
	}
	if count != 1 {
		t.Errorf("parent holds %d menus, want 1", count)
	}
}

func TestGeneratedIDs(t *testing.T) {
	m := New([]Item{{Label: "First"}, {Label: "Second"}})
	c := showAt(t, m, 0, 0)
	if len(c.Children) != 2 {
		t.Fatalf("container has %d items, want 2", len(c.Children))
	}
	a, b := c.Children[0].ID, c.Children[1].ID
	if a == "" || b == "" || a == b {
		t.Errorf("generated ids = %q, %q; want distinct non-empty", a, b)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	m := New([]Item{{ID: "a", Label: "A"}})
	showAt(t, m, 0, 0)
	m.Close()
	m.Close()
	if m.IsOpen() || m.Container() != nil {
		t.Error("menu should stay closed")
	}
}

func TestSetItemsTakesEffectOnNextOpen(t *testing.T) {
	m := New([]Item{{ID: "a", Label: "A"}})
	showAt(t, m, 0, 0)
	m.SetItems([]Item{{ID: "b", Label: "B"}, {ID: "c", Label: "C"}})
	c := showAt(t, m, 0, 0)
	if len(c.Children) != 2 || c.Children[0].ID != "b" {
		t.Errorf("reopened menu children = %v", c.Children)
	}
}

func TestDetachWithoutAttach(t *testing.T) {
	m := New(nil)
	m.Detach() // nothing subscribed; must not panic
	if m.IsOpen() {
		t.Error("IsOpen() = true on a fresh menu")
	}
}
