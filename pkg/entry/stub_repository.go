package entry

import (
	"context"
	"sort"
)

type StubRepository struct {
	nextId int
	data   map[int]TimeEntry
}

func NewStubRepository() *StubRepository {
	return &StubRepository{nextId: 0, data: map[int]TimeEntry{}}
}

func (s *StubRepository) Store(ctx context.Context, entry TimeEntry) (int, error) {
	s.nextId++
	entry.ID = s.nextId
	s.data[entry.ID] = entry
	return entry.ID, nil
}

func (s *StubRepository) GetAll(ctx context.Context, filter Filter) ([]TimeEntry, error) {
	entries := make([]TimeEntry, 0, len(s.data))
	for _, entry := range s.data {
		if filter.ProjectID != 0 && entry.ProjectID != filter.ProjectID {
			continue
		}
		if !filter.From.IsZero() && entry.OccurredOn.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && entry.OccurredOn.After(filter.To) {
			continue
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].OccurredOn.Equal(entries[j].OccurredOn) {
			return entries[i].OccurredOn.After(entries[j].OccurredOn)
		}
		return entries[i].ID > entries[j].ID
	})
	return entries, nil
}

func (s *StubRepository) GetByID(ctx context.Context, id int) (TimeEntry, error) {
	entry, ok := s.data[id]
	if !ok {
		return TimeEntry{}, ErrEntryNotFound
	}
	return entry, nil
}

func (s *StubRepository) Update(ctx context.Context, entry TimeEntry) (bool, error) {
	if _, ok := s.data[entry.ID]; !ok {
		return false, nil
	}
	s.data[entry.ID] = entry
	return true, nil
}

func (s *StubRepository) Delete(ctx context.Context, id int) (bool, error) {
	if _, ok := s.data[id]; !ok {
		return false, nil
	}
	delete(s.data, id)
	return true, nil
}

func (s *StubRepository) Cleanup() {
	s.data = map[int]TimeEntry{}
}
