// Package wizard holds the state of one barbecue planning session and walks
// it through four linear steps:
//
//   - StepGuests: guest count, appetite level and meat selection
//   - StepPrices: price per kilo of every selected meat
//   - StepShares: percentage of each meat, with locks
//   - StepResult: the cost and weight summary
//
// A Session coerces raw user input before it reaches the allocation engine
// and refuses to advance past a step whose data is incomplete. It is owned
// by a single caller and is not safe for concurrent use.
package wizard
