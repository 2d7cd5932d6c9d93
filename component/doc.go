// Package component defines lifecycle-managed parts of the meetnotes
// service and a registry that starts them in order, stops them in reverse
// and aggregates their health.
//
// # Interfaces
//
//   - Component: lifecycle (Start/Stop) and health reporting
//   - Describable: one-line description logged at start-up
//   - RouteProvider: HTTP routes logged at start-up
//
// External engines are not started by meetnotes; NewProbe turns anything
// with Name and IsAvailable into a Component whose health reflects
// reachability.
package component
