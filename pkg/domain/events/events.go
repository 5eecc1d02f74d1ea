// Package events defines the domain events published by the reconciliation
// engine as a disbursement moves through its lifecycle. Events are
// notifications for the surrounding application (reporting, dashboards); the
// engine itself never depends on a subscriber being present.
package events

// Event is the contract every domain event satisfies.
type Event interface {
	Type() string
}
