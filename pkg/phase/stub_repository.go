package phase

import (
	"context"
	"errors"
)

type StubRepository struct {
	phases  []Phase
	failing bool
}

func NewStubRepository(phases []Phase) *StubRepository {
	return &StubRepository{phases: phases}
}

func (s *StubRepository) GetAll(ctx context.Context) ([]Phase, error) {
	if s.failing {
		return nil, errors.New("stub repository failure")
	}
	return s.phases, nil
}

func (s *StubRepository) SetFailing(failing bool) {
	s.failing = failing
}
