// Package disbursement defines the core domain model for on-chain payroll
// disbursements: a Disbursement is one broadcast payment intent (direct or
// batch), and a Leg is one recipient's resolved share of it.
//
// The Disbursement status is a monotonic state machine. Transitions only ever
// move forward; once a terminal status is reached no further transition is
// accepted. Legs are derived data and may only be attached to a confirmed
// disbursement.
package disbursement

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// Kind distinguishes a single-recipient payment from an aggregate batch call.
type Kind string

const (
	// KindDirect is a payment to exactly one recipient.
	KindDirect Kind = "direct"
	// KindBatch is a single on-chain call paying N recipients.
	KindBatch Kind = "batch"
)

// Status is the lifecycle state of a Disbursement.
type Status string

const (
	// StatusBroadcast is the initial state, set by the caller after the
	// signing flow has broadcast the transaction.
	StatusBroadcast Status = "broadcast"
	// StatusPolling is entered for the duration of the confirmation poll.
	StatusPolling Status = "polling"
	// StatusConfirmed means the chain reported terminal success.
	StatusConfirmed Status = "confirmed"
	// StatusExpanded means per-recipient legs have been derived.
	StatusExpanded Status = "expanded"
	// StatusNotified means a notification was attempted for every leg.
	StatusNotified Status = "notified"
	// StatusFailed means the chain explicitly rejected the transaction.
	StatusFailed Status = "failed"
	// StatusTimedOut means the poll budget ran out before a terminal
	// answer. Not terminal: a later external trigger may poll again.
	StatusTimedOut Status = "timed_out"
)

// Terminal reports whether no further transition is allowed from s.
func (s Status) Terminal() bool {
	return s == StatusNotified || s == StatusFailed
}

// NotificationState tracks the per-leg notification side effect. It moves
// from NotificationNotSent to exactly one of the other states and never
// reverts.
type NotificationState string

const (
	NotificationNotSent NotificationState = "not_sent"
	NotificationSent    NotificationState = "sent"
	// NotificationSkipped means the recipient has no contact on file.
	NotificationSkipped NotificationState = "skipped_no_contact"
	NotificationFailed  NotificationState = "failed"
)

// allowed is the forward-only transition table.
var allowed = map[Status][]Status{
	StatusBroadcast: {StatusPolling},
	StatusPolling:   {StatusConfirmed, StatusFailed, StatusTimedOut},
	StatusConfirmed: {StatusExpanded},
	StatusExpanded:  {StatusNotified},
	// A timed-out disbursement is re-driven by a later scheduler tick.
	StatusTimedOut: {StatusPolling},
}

// Leg is one recipient's share of a Disbursement. Leg identity is derived
// from (parent transaction id, recipient address) and is stable across
// re-expansion.
type Leg struct {
	ID               uuid.UUID
	ParentTxID       string
	RecipientAddress string
	// Amount is in base units, taken from the on-chain transfer event,
	// never from the caller's pre-broadcast intent.
	Amount int64
	// DisplayName is resolved lazily and never written back to the
	// identity store.
	DisplayName  string
	Notification NotificationState
	// Degraded marks the leg-count-mismatch fallback: a confirmed batch
	// yielded no decodable transfer events and this single leg stands in
	// for the whole aggregate.
	Degraded bool
}

// legNamespace is the fixed UUIDv5 namespace for leg identifiers.
var legNamespace = uuid.MustParse("8f3c7a44-9d2e-4b1a-9a6b-2f1c5d8e0b3a")

// LegID derives the deterministic identifier for a leg. The parent id is
// length-prefixed before hashing so that a recipient address containing any
// delimiter byte cannot collide with another (parent, recipient) pair.
func LegID(parentTxID, recipientAddress string) uuid.UUID {
	buf := binary.AppendUvarint(nil, uint64(len(parentTxID)))
	buf = append(buf, parentTxID...)
	buf = append(buf, recipientAddress...)
	return uuid.NewSHA1(legNamespace, buf)
}

// NewLeg builds a leg for the given parent and recipient with the
// notification side effect not yet attempted.
func NewLeg(parentTxID, recipientAddress string, amount int64) Leg {
	return Leg{
		ID:               LegID(parentTxID, recipientAddress),
		ParentTxID:       parentTxID,
		RecipientAddress: recipientAddress,
		Amount:           amount,
		Notification:     NotificationNotSent,
	}
}

// Disbursement is one broadcast intent to move value from the business
// wallet. It is created when the orchestrator is invoked with a freshly
// broadcast transaction id and is retained as an audit record.
type Disbursement struct {
	// TxID is the opaque identifier assigned at broadcast time.
	TxID string
	Kind Kind
	// DeclaredTotal is what the caller believes was sent, in base units.
	// It is a pre-confirmation estimate; only amounts observed on chain
	// are authoritative.
	DeclaredTotal int64
	// PeriodRef correlates a batch to a pay period. Batch only.
	PeriodRef string
	// RecipientAddress is set for direct disbursements, where intent and
	// transfer are 1:1 by construction.
	RecipientAddress string

	status Status
	legs   []Leg
}

// Builder assembles a Disbursement, validating invariants at Build time.
type Builder struct {
	d Disbursement
}

// New starts building a disbursement for the given broadcast transaction id.
func New(txID string) *Builder {
	return &Builder{d: Disbursement{TxID: txID, status: StatusBroadcast}}
}

// WithKind sets the disbursement kind.
func (b *Builder) WithKind(k Kind) *Builder {
	b.d.Kind = k
	return b
}

// WithDeclaredTotal sets the caller's pre-broadcast estimate in base units.
func (b *Builder) WithDeclaredTotal(total int64) *Builder {
	b.d.DeclaredTotal = total
	return b
}

// WithPeriodRef sets the pay-period correlation reference.
func (b *Builder) WithPeriodRef(ref string) *Builder {
	b.d.PeriodRef = ref
	return b
}

// WithRecipient sets the single recipient of a direct disbursement.
func (b *Builder) WithRecipient(address string) *Builder {
	b.d.RecipientAddress = address
	return b
}

// Build validates and returns the disbursement.
func (b *Builder) Build() (*Disbursement, error) {
	if b.d.TxID == "" {
		return nil, ErrEmptyTxID
	}
	switch b.d.Kind {
	case KindDirect:
		if b.d.RecipientAddress == "" {
			return nil, ErrMissingRecipient
		}
	case KindBatch:
	default:
		return nil, ErrInvalidKind
	}
	if b.d.DeclaredTotal <= 0 {
		return nil, ErrNonPositiveTotal
	}
	d := b.d
	return &d, nil
}

// Status returns the current lifecycle state.
func (d *Disbursement) Status() Status {
	return d.status
}

// Legs returns the attached legs, nil before expansion.
func (d *Disbursement) Legs() []Leg {
	return d.legs
}

// Transition advances the state machine. It returns ErrInvalidTransition
// when the move is not in the forward table, so ordering is enforced by the
// domain type rather than by incidental call order.
func (d *Disbursement) Transition(to Status) error {
	for _, next := range allowed[d.status] {
		if next == to {
			d.status = to
			return nil
		}
	}
	return &InvalidTransitionError{From: d.status, To: to}
}

// AttachLegs records the derived legs on a confirmed disbursement and
// advances it to expanded. Legs must never be attached in any other state.
func (d *Disbursement) AttachLegs(legs []Leg) error {
	if d.status != StatusConfirmed {
		return &InvalidTransitionError{From: d.status, To: StatusExpanded}
	}
	d.legs = legs
	d.status = StatusExpanded
	return nil
}

// ObservedTotal sums the attached leg amounts. For an expanded batch this is
// the on-chain observed transferred total, the authoritative figure for
// conservation checks.
func (d *Disbursement) ObservedTotal() int64 {
	var total int64
	for _, leg := range d.legs {
		total += leg.Amount
	}
	return total
}
