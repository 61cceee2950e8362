// Package nav switches a navigation bar between its transparent and solid
// presentation as the page scrolls.
package nav

import "github.com/san-kum/glyphfall/internal/dom"

const DefaultThreshold = 100

var (
	SolidClasses       = []string{"bg-main", "shadow"}
	TransparentClasses = []string{"bg-transparent"}
)

// Toggler applies the class set for the current scroll position.
type Toggler struct {
	el        *dom.Element
	threshold float64
}

// New returns a toggler for el. A non-positive threshold uses DefaultThreshold.
func New(el *dom.Element, threshold float64) *Toggler {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Toggler{el: el, threshold: threshold}
}

// OnScroll handles a scroll to vertical offset y. At or past the threshold the
// bar is solid, above it transparent. It reports whether the classes changed,
// which only happens when y crosses the threshold.
func (t *Toggler) OnScroll(y float64) bool {
	var added, removed bool
	if y >= t.threshold {
		added = t.el.Classes.Add(SolidClasses...)
		removed = t.el.Classes.Remove(TransparentClasses...)
	} else {
		added = t.el.Classes.Add(TransparentClasses...)
		removed = t.el.Classes.Remove(SolidClasses...)
	}
	return added || removed
}

// Solid reports whether the bar currently has the solid classes.
func (t *Toggler) Solid() bool {
	for _, c := range SolidClasses {
		if !t.el.Classes.Contains(c) {
			return false
		}
	}
	return true
}

func (t *Toggler) Threshold() float64 { return t.threshold }

func (t *Toggler) Element() *dom.Element { return t.el }
