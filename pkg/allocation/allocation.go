package allocation

import (
	"fmt"
	"math"

	"github.com/churrasco-tools/churrasco/pkg/meat"
)

const (
	// Full is the total every balanced allocation sums to.
	Full = 100.0
	// DefaultTolerance is how far from Full a total may drift and still
	// count as balanced.
	DefaultTolerance = 0.1
)

// Entry is the share of one category and whether it is locked.
type Entry struct {
	Share  float64 `json:"share" yaml:"share"`
	Locked bool    `json:"locked" yaml:"locked"`
}

// Item pairs a category with its entry.
type Item struct {
	Category meat.Category `json:"category" yaml:"category"`
	Entry    `yaml:",inline"`
}

// Allocation maps every known category to an Entry and remembers which
// categories are selected, in display order.
type Allocation struct {
	known    []meat.Category
	selected []meat.Category
	entries  map[meat.Category]Entry
}

// Initialize builds a fresh allocation. Selected categories take their
// default weight (0 when absent or negative) and are then rescaled to sum to
// 100. If the weights sum to 0 every share stays 0. Categories that are not
// selected always get a zero, unlocked entry.
func Initialize(known, selected []meat.Category, defaults map[meat.Category]float64) Allocation {
	a := Allocation{
		entries: make(map[meat.Category]Entry, len(known)),
	}
	for _, c := range known {
		if _, ok := a.entries[c]; ok {
			continue
		}
		a.known = append(a.known, c)
		a.entries[c] = Entry{}
	}
	for _, c := range selected {
		if _, ok := a.entries[c]; !ok {
			a.known = append(a.known, c)
			a.entries[c] = Entry{}
		}
		if a.isSelected(c) {
			continue
		}
		a.selected = append(a.selected, c)
	}

	sum := 0.0
	for _, c := range a.selected {
		w := defaults[c]
		if w < 0 || math.IsNaN(w) {
			w = 0
		}
		a.entries[c] = Entry{Share: w}
		sum += w
	}
	if sum <= 0 {
		for _, c := range a.selected {
			a.entries[c] = Entry{}
		}
		return a
	}
	for _, c := range a.selected {
		a.entries[c] = Entry{Share: a.entries[c].Share * Full / sum}
	}
	return a
}

// SetValue sets the share of target to v, clamped to [0, 100], and lets the
// other unlocked selected categories absorb the difference. A locked target
// is left alone and the receiver is returned as is.
//
// When no other unlocked category exists the value is simply set and the
// total may no longer be 100.
func (a Allocation) SetValue(target meat.Category, v float64) Allocation {
	a.mustBeSelected(target)

	v = clamp(v)
	if a.entries[target].Locked {
		return a
	}

	others := a.unlockedExcept(target)
	remainder := Full - a.lockedSum() - v

	next := a.clone()
	next.entries[target] = Entry{Share: v}
	if len(others) == 0 {
		return next
	}
	next.redistribute(others, remainder)
	return next
}

// ToggleLock flips the lock of target. Locking also hands the remainder
// (100 minus every locked share) to the unlocked categories, so a balanced
// allocation stays balanced. Unlocking only changes the flag.
//
// Toggling twice restores the flag but not necessarily the shares.
func (a Allocation) ToggleLock(target meat.Category) Allocation {
	a.mustBeSelected(target)

	next := a.clone()
	e := next.entries[target]
	e.Locked = !e.Locked
	next.entries[target] = e
	if !e.Locked {
		return next
	}

	others := next.unlockedExcept(target)
	if len(others) == 0 {
		return next
	}
	next.redistribute(others, Full-next.lockedSum())
	return next
}

// Normalize rescales every selected share so they sum to exactly 100. It
// clears the floating point drift that builds up over many edits. Locked
// shares are rescaled too. An allocation whose total is 0 is returned
// unchanged.
//
// The engine never calls Normalize on its own.
func (a Allocation) Normalize() Allocation {
	total := a.Total()
	if total <= 0 {
		return a
	}
	next := a.clone()
	for _, c := range next.selected {
		e := next.entries[c]
		e.Share = e.Share * Full / total
		next.entries[c] = e
	}
	return next
}

// Share returns the share of c.
func (a Allocation) Share(c meat.Category) float64 {
	return a.Entry(c).Share
}

// Locked reports whether c is locked.
func (a Allocation) Locked(c meat.Category) bool {
	return a.Entry(c).Locked
}

// Entry returns the entry of c.
func (a Allocation) Entry(c meat.Category) Entry {
	e, ok := a.entries[c]
	if !ok {
		panic(fmt.Sprintf("allocation: unknown category %q", c))
	}
	return e
}

// IsSelected reports whether c is one of the selected categories.
func (a Allocation) IsSelected(c meat.Category) bool {
	return a.isSelected(c)
}

// Known returns every category the allocation covers.
func (a Allocation) Known() []meat.Category {
	return append([]meat.Category(nil), a.known...)
}

// Selected returns the selected categories in display order.
func (a Allocation) Selected() []meat.Category {
	return append([]meat.Category(nil), a.selected...)
}

// Items returns the selected categories with their entries, in display order.
func (a Allocation) Items() []Item {
	items := make([]Item, 0, len(a.selected))
	for _, c := range a.selected {
		items = append(items, Item{Category: c, Entry: a.entries[c]})
	}
	return items
}

// Shares returns a copy of the share of every known category.
func (a Allocation) Shares() map[meat.Category]float64 {
	out := make(map[meat.Category]float64, len(a.entries))
	for c, e := range a.entries {
		out[c] = e.Share
	}
	return out
}

// Total returns the sum of the selected shares.
func (a Allocation) Total() float64 {
	total := 0.0
	for _, c := range a.selected {
		total += a.entries[c].Share
	}
	return total
}

// Balanced reports whether Total is within tolerance of 100.
func (a Allocation) Balanced(tolerance float64) bool {
	return math.Abs(a.Total()-Full) <= tolerance
}

func (a Allocation) lockedSum() float64 {
	sum := 0.0
	for _, c := range a.selected {
		if e := a.entries[c]; e.Locked {
			sum += e.Share
		}
	}
	return sum
}

func (a Allocation) unlockedExcept(target meat.Category) []meat.Category {
	var out []meat.Category
	for _, c := range a.selected {
		if c == target || a.entries[c].Locked {
			continue
		}
		out = append(out, c)
	}
	return out
}

// redistribute splits remainder over targets in proportion to their current
// shares, or equally when those shares sum to 0. The targets must still
// carry their pre-edit shares.
func (a Allocation) redistribute(targets []meat.Category, remainder float64) {
	sum := 0.0
	for _, c := range targets {
		sum += a.entries[c].Share
	}
	shares := make([]float64, len(targets))
	for i, c := range targets {
		proportion := 1 / float64(len(targets))
		if sum > 0 {
			proportion = a.entries[c].Share / sum
		}
		shares[i] = proportion * remainder
	}
	for i, c := range targets {
		a.entries[c] = Entry{Share: shares[i]}
	}
}

func (a Allocation) clone() Allocation {
	entries := make(map[meat.Category]Entry, len(a.entries))
	for c, e := range a.entries {
		entries[c] = e
	}
	return Allocation{
		known:    a.known,
		selected: a.selected,
		entries:  entries,
	}
}

func (a Allocation) isSelected(c meat.Category) bool {
	for _, s := range a.selected {
		if s == c {
			return true
		}
	}
	return false
}

func (a Allocation) mustBeSelected(c meat.Category) {
	if _, ok := a.entries[c]; !ok {
		panic(fmt.Sprintf("allocation: unknown category %q", c))
	}
	if !a.isSelected(c) {
		panic(fmt.Sprintf("allocation: category %q is not selected", c))
	}
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(Full, math.Max(0, v))
}
