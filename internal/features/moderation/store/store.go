// Package store owns the in-memory moderation state: one UserRecord per
// known user plus the registry of every user ID ever seen. The update
// pipeline is the single writer; the autosave worker reads consistent
// snapshots under the store lock.
package store

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"school-report-bot/internal/features/moderation/models"
)

type Store struct {
	mu         sync.Mutex
	users      map[int64]*models.UserRecord
	registered map[int64]struct{}
}

func New() *Store {
	return &Store{
		users:      make(map[int64]*models.UserRecord),
		registered: make(map[int64]struct{}),
	}
}

// GetOrCreate returns the record for id, creating it with defaults and
// registering the id if absent. A stored name is never overwritten by the
// hint. The returned pointer is live: only the pipeline goroutine may
// write through it, and then only via Mutate.
func (s *Store) GetOrCreate(id int64, nameHint string) *models.UserRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOrCreate(id, nameHint)
}

func (s *Store) getOrCreate(id int64, nameHint string) *models.UserRecord {
	if u, ok := s.users[id]; ok {
		s.registered[id] = struct{}{}
		return u
	}
	name := nameHint
	if name == "" {
		name = fmt.Sprintf("User%d", id)
	}
	u := &models.UserRecord{Name: name}
	s.users[id] = u
	s.registered[id] = struct{}{}
	log.Info().Int64("user_id", id).Str("name", name).Msg("initialized user")
	return u
}

// Mutate applies fn to the record for id under the store lock, creating the
// record if absent. Every write to a record must go through Mutate so that
// Snapshot never observes a record mid-update.
func (s *Store) Mutate(id int64, nameHint string, fn func(u *models.UserRecord)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.getOrCreate(id, nameHint))
}

// RegisteredIDs returns all known user IDs in ascending order.
func (s *Store) RegisteredIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, len(s.registered))
	for id := range s.registered {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Snapshot returns a deep point-in-time copy of the store in the snapshot
// schema. The copy is taken in one critical section.
func (s *Store) Snapshot() *models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := &models.Snapshot{
		RegisteredUsers: make([]int64, 0, len(s.registered)),
		Users:           make(map[string]models.SnapshotUser, len(s.users)),
	}
	for id := range s.registered {
		snap.RegisteredUsers = append(snap.RegisteredUsers, id)
	}
	sort.Slice(snap.RegisteredUsers, func(i, j int) bool {
		return snap.RegisteredUsers[i] < snap.RegisteredUsers[j]
	})
	for id, u := range s.users {
		snap.Users[strconv.FormatInt(id, 10)] = models.NewSnapshotUser(u)
	}
	return snap
}

// Load replaces the in-memory state with the snapshot contents. Used once
// at startup, before the pipeline starts. Entries with unparsable IDs are
// skipped.
func (s *Store) Load(snap *models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make(map[int64]*models.UserRecord, len(snap.Users))
	s.registered = make(map[int64]struct{}, len(snap.RegisteredUsers))

	for _, id := range snap.RegisteredUsers {
		s.registered[id] = struct{}{}
	}
	for idStr, su := range snap.Users {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			log.Warn().Str("user_id", idStr).Msg("skipping snapshot entry with bad id")
			continue
		}
		r := su.Record()
		if r.Name == "" {
			r.Name = fmt.Sprintf("User%d", id)
		}
		s.users[id] = r
		s.registered[id] = struct{}{}
	}
}

// TopUser is one row of the activity leaderboard.
type TopUser struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Messages int    `json:"messages"`
}

// Stats is the aggregate view served to the admin and the ops endpoint.
type Stats struct {
	Total   int       `json:"total"`
	Blocked int       `json:"blocked"`
	Top     []TopUser `json:"top"`
}

// Stats computes registered-user and block counts plus the top-5 senders.
func (s *Store) Stats(now time.Time) Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{Total: len(s.registered)}
	for id, u := range s.users {
		if u.Blocked(now) {
			st.Blocked++
		}
		st.Top = append(st.Top, TopUser{ID: id, Name: u.Name, Messages: u.MessagesCount})
	}
	sort.Slice(st.Top, func(i, j int) bool {
		if st.Top[i].Messages != st.Top[j].Messages {
			return st.Top[i].Messages > st.Top[j].Messages
		}
		return st.Top[i].ID < st.Top[j].ID
	})
	if len(st.Top) > 5 {
		st.Top = st.Top[:5]
	}
	return st
}
