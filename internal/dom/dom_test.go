package dom

import (
	"reflect"
	"testing"
)

func TestClassListAddRemove(t *testing.T) {
	c := NewClassList("a", "b", "a", "")
	if got := c.Names(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("expected [a b], got %v", got)
	}

	if c.Add("b") {
		t.Error("adding an existing class should not report a change")
	}
	if !c.Add("c", "b") {
		t.Error("adding a new class should report a change")
	}
	if c.String() != "a b c" {
		t.Errorf("expected 'a b c', got %q", c.String())
	}

	if !c.Remove("a", "z") {
		t.Error("removing a present class should report a change")
	}
	if c.Remove("z") {
		t.Error("removing a missing class should not report a change")
	}
	if c.String() != "b c" {
		t.Errorf("expected 'b c', got %q", c.String())
	}
}

func TestClassListToggle(t *testing.T) {
	c := NewClassList()
	if !c.Toggle("x") || !c.Contains("x") {
		t.Error("toggle should add a missing class")
	}
	if c.Toggle("x") || c.Contains("x") {
		t.Error("toggle should remove a present class")
	}
}

func TestElement(t *testing.T) {
	e := NewElement("contactAlert", "hidden", "p-4")
	if !e.Hidden() {
		t.Error("expected hidden element")
	}
	e.Classes.Remove("hidden")
	if e.Hidden() {
		t.Error("expected visible element")
	}
	e.SetText("hi")
	if e.Text() != "hi" {
		t.Errorf("expected text 'hi', got %q", e.Text())
	}
}
