package models

import "time"

// Snapshot is the full point-in-time serialization of the user store. The
// JSON layout is the on-disk contract and must stay stable across versions:
// older snapshots remain loadable.
type Snapshot struct {
	RegisteredUsers []int64                 `json:"registered_users"`
	Users           map[string]SnapshotUser `json:"users"`
}

// SnapshotUser mirrors UserRecord in the snapshot schema. The pending action
// is flattened into three booleans for compatibility with existing data
// files.
type SnapshotUser struct {
	Name              string     `json:"name"`
	LastMessage       *time.Time `json:"last_message"`
	Warnings          int        `json:"warnings"`
	TempBlock         *time.Time `json:"temp_block"`
	PermanentBlock    bool       `json:"permanent_block"`
	AwaitingBroadcast bool       `json:"awaiting_broadcast_message"`
	AwaitingBlock     bool       `json:"awaiting_block_user"`
	AwaitingUnblock   bool       `json:"awaiting_unblock"`
	Category          *string    `json:"category"`
	MessagesCount     int        `json:"messages_count"`
}

// NewSnapshotUser converts a live record into its snapshot form. All
// pointer fields are copied, so the result does not alias the record.
func NewSnapshotUser(r *UserRecord) SnapshotUser {
	su := SnapshotUser{
		Name:           r.Name,
		LastMessage:    cloneTime(r.LastMessage),
		Warnings:       r.Warnings,
		TempBlock:      cloneTime(r.TempBlock),
		PermanentBlock: r.PermanentBlock,
		MessagesCount:  r.MessagesCount,
	}
	switch r.Pending {
	case PendingBroadcast:
		su.AwaitingBroadcast = true
	case PendingBlock:
		su.AwaitingBlock = true
	case PendingUnblock:
		su.AwaitingUnblock = true
	}
	if r.Category != CategoryNone {
		c := string(r.Category)
		su.Category = &c
	}
	return su
}

// Record converts a snapshot entry back into a live record.
func (su SnapshotUser) Record() *UserRecord {
	r := &UserRecord{
		Name:           su.Name,
		LastMessage:    cloneTime(su.LastMessage),
		Warnings:       su.Warnings,
		TempBlock:      cloneTime(su.TempBlock),
		PermanentBlock: su.PermanentBlock,
		MessagesCount:  su.MessagesCount,
	}
	switch {
	case su.AwaitingBroadcast:
		r.Pending = PendingBroadcast
	case su.AwaitingBlock:
		r.Pending = PendingBlock
	case su.AwaitingUnblock:
		r.Pending = PendingUnblock
	}
	if su.Category != nil {
		r.Category = Category(*su.Category)
	}
	return r
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
