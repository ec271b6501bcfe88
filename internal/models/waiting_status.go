package models

import "fmt"

// WaitingStatus is the lifecycle state of a waiting-list entry.
type WaitingStatus string

// Waiting entry status values
const (
	StatusWaiting  WaitingStatus = "waiting"
	StatusNotified WaitingStatus = "notified"
	StatusSeated   WaitingStatus = "seated"
	StatusNoShow   WaitingStatus = "no_show"
)

// ParseWaitingStatus validates a raw status string.
func ParseWaitingStatus(raw string) (WaitingStatus, error) {
	switch WaitingStatus(raw) {
	case StatusWaiting, StatusNotified, StatusSeated, StatusNoShow:
		return WaitingStatus(raw), nil
	}
	return "", fmt.Errorf("unknown waiting status: %q", raw)
}

// IsTerminal reports whether the status admits no further transitions.
// seated and no_show are terminal; rows stay around for statistics only.
func (s WaitingStatus) IsTerminal() bool {
	switch s {
	case StatusSeated, StatusNoShow:
		return true
	case StatusWaiting, StatusNotified:
		return false
	}
	return false
}

// CanTransitionTo reports whether the transition s -> target is allowed.
// Allowed: waiting -> notified/seated/no_show (seated and no_show directly are
// the staff override), notified -> seated/no_show. Same-status transitions are
// allowed and treated as idempotent by the caller. Terminal states reject
// everything else.
func (s WaitingStatus) CanTransitionTo(target WaitingStatus) bool {
	if s == target {
		return true
	}
	switch s {
	case StatusWaiting:
		return target == StatusNotified || target == StatusSeated || target == StatusNoShow
	case StatusNotified:
		return target == StatusSeated || target == StatusNoShow
	case StatusSeated, StatusNoShow:
		return false
	}
	return false
}

// WaitingPriority is a display/sort hint on a waiting entry. It does not
// influence queue ordering or wait-time estimation.
type WaitingPriority string

// Waiting entry priority values
const (
	PriorityLow    WaitingPriority = "low"
	PriorityMedium WaitingPriority = "medium"
	PriorityHigh   WaitingPriority = "high"
)

// ParseWaitingPriority validates a raw priority string. Empty input defaults to low.
func ParseWaitingPriority(raw string) (WaitingPriority, error) {
	if raw == "" {
		return PriorityLow, nil
	}
	switch WaitingPriority(raw) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return WaitingPriority(raw), nil
	}
	return "", fmt.Errorf("unknown waiting priority: %q", raw)
}
