// Package checker implements the concurrent availability-check engine.
//
// The checker performs a single pass over an ordered list of target URLs,
// probing each one with a bounded worker pool, a per-attempt timeout, and a
// bounded retry policy. Every submitted target produces exactly one final
// [Outcome], collected into a [Report] in input order regardless of which
// workers finished first.
//
// The main components are:
//
//   - [Client]: HTTP probe with per-attempt timeout and error categorization
//   - [Runner]: retry policy wrapping a [Prober], one [Outcome] per target
//   - [Checker]: worker-pool dispatcher tying the pieces together
//   - [Collector]: index-addressed result slots, read only after the join
//
// Configuration is passed explicitly via [Config]; the package keeps no
// ambient state and opens no listeners.
package checker
