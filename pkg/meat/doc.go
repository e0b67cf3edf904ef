// Package meat defines the closed catalog of meat categories a barbecue can
// be planned with. It contains:
//
//   - Category: the stable key of a meat kind
//   - display names used by the CLI and the exported reports
//   - the default weights used to seed a fresh allocation
//
// The catalog is shared by the allocation engine, the projection and the
// wizard so that every layer agrees on the same keys and order.
package meat
