package models

import "time"

// PendingAction is an interactive state of the administrator's own record:
// the next message from the admin is consumed as structured input. At most
// one action can be pending at a time.
type PendingAction int

const (
	PendingNone PendingAction = iota
	PendingBroadcast
	PendingBlock
	PendingUnblock
)

// Category is a report type selected from the user menu. The next free-text
// or media message is forwarded to the category's destination chat.
type Category string

const (
	CategoryNone     Category = ""
	CategoryHooligan Category = "hooligan"
	CategoryIdea     Category = "idea"
	CategoryProblem  Category = "problem"
)

// UserRecord holds the moderation and session state of a single user.
// Records are created lazily on first contact and never deleted; blocks are
// reversible states, not removals.
type UserRecord struct {
	Name           string
	LastMessage    *time.Time
	Warnings       int
	TempBlock      *time.Time
	PermanentBlock bool
	Pending        PendingAction
	Category       Category
	MessagesCount  int
}

// TempBlocked reports whether the temporary block is still active. The
// timestamp is not auto-cleared once expired; only an explicit unblock
// resets it.
func (r *UserRecord) TempBlocked(now time.Time) bool {
	return r.TempBlock != nil && now.Before(*r.TempBlock)
}

// Blocked reports whether the user is blocked in any way at the given time.
func (r *UserRecord) Blocked(now time.Time) bool {
	return r.PermanentBlock || r.TempBlocked(now)
}
