// Package manager owns the active set of prediction models and swaps it
// atomically on reload. It is structured into small files by concern:
//
//   - manager.go: Manager type, constructor, Current/Ready and the reload paths.
//   - config.go: Config, StartupPolicy and package defaults.
//   - types.go: ModelSet snapshots and load reports.
//   - errors.go: PartialModelSetError and helpers.
//   - events.go, eventpub_memory.go: lifecycle events.
//   - status_report.go: Status and its API projection.
//   - metrics.go: Prometheus collectors.
//
// Readers call Current and get an immutable *ModelSet with a single atomic
// load; they never block on a reload. Reloads build the new set off to the
// side and publish it with one pointer store, or not at all.
package manager
