package interests

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Store persists a user's selected interest ids.
type Store interface {
	LoadInterests(ctx context.Context, userID string) ([]string, error)
	SaveInterests(ctx context.Context, userID string, ids []string) error
}

// Selection is the set of interests a user has ticked. Every toggle is
// written through to the store immediately.
type Selection struct {
	store  Store
	userID string

	mu    sync.Mutex
	order []string
	set   map[string]struct{}
}

// LoadSelection reads the saved selection of userID.
func LoadSelection(ctx context.Context, store Store, userID string) (*Selection, error) {
	if userID == "" {
		return nil, errors.New("load selection: empty user id")
	}
	ids, err := store.LoadInterests(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load selection: %w", err)
	}

	s := &Selection{store: store, userID: userID, set: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		if _, dup := s.set[id]; dup {
			continue
		}
		s.set[id] = struct{}{}
		s.order = append(s.order, id)
	}
	return s, nil
}

func (s *Selection) UserID() string { return s.userID }

func (s *Selection) Has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.set[id]
	return ok
}

func (s *Selection) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// IDs returns the selected ids in the order they were ticked.
func (s *Selection) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.order)
}

// Toggle flips id and persists the result. It reports whether id is
// selected afterwards. On a store failure the in-memory set is rolled back.
func (s *Selection) Toggle(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prevOrder := slices.Clone(s.order)

	_, selected := s.set[id]
	if selected {
		delete(s.set, id)
		s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
	} else {
		s.set[id] = struct{}{}
		s.order = append(s.order, id)
	}

	if err := s.store.SaveInterests(ctx, s.userID, slices.Clone(s.order)); err != nil {
		s.order = prevOrder
		if selected {
			s.set[id] = struct{}{}
		} else {
			delete(s.set, id)
		}
		return selected, fmt.Errorf("save selection: %w", err)
	}
	return !selected, nil
}
