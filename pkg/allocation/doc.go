// Package allocation distributes percentage shares across the selected meat
// categories of a barbecue plan.
//
// An Allocation is a value: every operation returns a new Allocation and
// leaves its receiver untouched, so a caller can keep the previous state
// around or compare before and after an edit. The engine keeps locked
// shares fixed and lets the unlocked ones absorb every edit in proportion
// to their current weight, falling back to an equal split when they are all
// zero. It never rounds and never forces the grand total back to 100; the
// caller validates the total before moving on.
//
// Operations on a category the allocation does not know about, and
// mutations of a category that is not selected, are contract violations
// and panic.
package allocation
