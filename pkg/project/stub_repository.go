package project

import (
	"context"
	"sort"
	"time"
)

type StubRepository struct {
	nextId int
	data   map[int]Project
}

func NewStubRepository() *StubRepository {
	return &StubRepository{nextId: 0, data: map[int]Project{}}
}

func (s *StubRepository) Store(ctx context.Context, project Project) (int, error) {
	s.nextId++
	project.ID = s.nextId
	s.data[project.ID] = project
	return project.ID, nil
}

func (s *StubRepository) GetAll(ctx context.Context, includeArchived bool) ([]Project, error) {
	projects := make([]Project, 0, len(s.data))
	for _, project := range s.data {
		if project.Archived && !includeArchived {
			continue
		}
		projects = append(projects, project)
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].Name < projects[j].Name })
	return projects, nil
}

func (s *StubRepository) GetByID(ctx context.Context, id int) (Project, error) {
	project, ok := s.data[id]
	if !ok {
		return Project{}, ErrProjectNotFound
	}
	return project, nil
}

func (s *StubRepository) Update(ctx context.Context, project Project) (bool, error) {
	existing, ok := s.data[project.ID]
	if !ok {
		return false, nil
	}
	project.PhaseBudgets = existing.PhaseBudgets
	project.Archived = existing.Archived
	project.ArchivedAt = existing.ArchivedAt
	s.data[project.ID] = project
	return true, nil
}

func (s *StubRepository) SetPhaseBudgets(ctx context.Context, id int, budgets map[string]int64) (bool, error) {
	project, ok := s.data[id]
	if !ok {
		return false, nil
	}
	project.PhaseBudgets = budgets
	s.data[id] = project
	return true, nil
}

func (s *StubRepository) SetArchived(ctx context.Context, id int, archived bool, archivedAt time.Time) (bool, error) {
	project, ok := s.data[id]
	if !ok {
		return false, nil
	}
	project.Archived = archived
	if archived {
		project.ArchivedAt = archivedAt
	} else {
		project.ArchivedAt = time.Time{}
	}
	s.data[id] = project
	return true, nil
}

func (s *StubRepository) Cleanup() {
	s.data = map[int]Project{}
}
