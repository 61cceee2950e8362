// Package dom models the small slice of a document element the handlers
// touch: an id, an ordered class list and text content. Handlers receive
// elements explicitly instead of looking them up globally.
package dom

import (
	"slices"
	"strings"
)

// ClassList is an ordered set of class names.
type ClassList struct {
	names []string
}

func NewClassList(names ...string) *ClassList {
	c := &ClassList{}
	c.Add(names...)
	return c
}

// Add appends names not already present and reports whether anything changed.
func (c *ClassList) Add(names ...string) bool {
	changed := false
	for _, n := range names {
		if n == "" || c.Contains(n) {
			continue
		}
		c.names = append(c.names, n)
		changed = true
	}
	return changed
}

// Remove deletes names and reports whether anything changed.
func (c *ClassList) Remove(names ...string) bool {
	changed := false
	for _, n := range names {
		if i := slices.Index(c.names, n); i >= 0 {
			c.names = slices.Delete(c.names, i, i+1)
			changed = true
		}
	}
	return changed
}

// Toggle adds name when absent and removes it otherwise. It returns whether
// name is present afterwards.
func (c *ClassList) Toggle(name string) bool {
	if c.Remove(name) {
		return false
	}
	c.Add(name)
	return true
}

func (c *ClassList) Contains(name string) bool {
	return slices.Contains(c.names, name)
}

func (c *ClassList) Names() []string {
	return slices.Clone(c.names)
}

func (c *ClassList) Len() int { return len(c.names) }

// String is the class attribute value.
func (c *ClassList) String() string {
	return strings.Join(c.names, " ")
}

// Element is a document element handle.
type Element struct {
	ID      string
	Classes *ClassList
	text    string
}

func NewElement(id string, classes ...string) *Element {
	return &Element{ID: id, Classes: NewClassList(classes...)}
}

func (e *Element) SetText(s string) { e.text = s }
func (e *Element) Text() string     { return e.text }

// Hidden reports whether the element carries the "hidden" class.
func (e *Element) Hidden() bool { return e.Classes.Contains("hidden") }
