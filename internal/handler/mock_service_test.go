package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/GrandChallenge_Go/internal/domain"
	"github.com/osse101/GrandChallenge_Go/internal/tournament"
)

// MockTournamentService mocks tournament.Service
type MockTournamentService struct {
	mock.Mock
}

func (m *MockTournamentService) Create(ctx context.Context, name string) (*domain.Tournament, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tournament), args.Error(1)
}

func (m *MockTournamentService) List(ctx context.Context) ([]domain.Tournament, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tournament), args.Error(1)
}

func (m *MockTournamentService) Get(ctx context.Context, id uuid.UUID) (*domain.Tournament, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tournament), args.Error(1)
}

func (m *MockTournamentService) Start(ctx context.Context, id uuid.UUID, participants []string) (*domain.Round, error) {
	args := m.Called(ctx, id, participants)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Round), args.Error(1)
}

func (m *MockTournamentService) AdvanceRound(ctx context.Context, id uuid.UUID) (*domain.Round, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Round), args.Error(1)
}

func (m *MockTournamentService) CloseRound(ctx context.Context, id uuid.UUID) (*domain.Round, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Round), args.Error(1)
}

func (m *MockTournamentService) RecordResult(ctx context.Context, id, challengeID uuid.UUID, winner string) (*domain.Challenge, error) {
	args := m.Called(ctx, id, challengeID, winner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Challenge), args.Error(1)
}

func (m *MockTournamentService) Reset(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTournamentService) IsFinished(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTournamentService) GetCurrentRound(ctx context.Context, id uuid.UUID) (*domain.Round, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Round), args.Error(1)
}

func (m *MockTournamentService) GetRounds(ctx context.Context, id uuid.UUID) ([]domain.Round, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Round), args.Error(1)
}

func (m *MockTournamentService) Dashboard(ctx context.Context, id uuid.UUID) (*tournament.Dashboard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tournament.Dashboard), args.Error(1)
}
