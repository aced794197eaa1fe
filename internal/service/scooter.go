package service

import (
	"context"

	"scooter-sharing-backend/internal/domain"
	"scooter-sharing-backend/internal/repository"
)

type scooterService struct {
	scooterRepo repository.ScooterRepository
}

func NewScooterService(scooterRepo repository.ScooterRepository) ScooterService {
	return &scooterService{scooterRepo: scooterRepo}
}

func (s *scooterService) ListScooters(ctx context.Context) ([]domain.Scooter, error) {
	return s.scooterRepo.List(ctx)
}

func (s *scooterService) GetScooter(ctx context.Context, id int32) (*domain.Scooter, error) {
	return s.scooterRepo.GetByID(ctx, id)
}

func (s *scooterService) CreateScooter(ctx context.Context, id, batteryLevel int32) (*domain.Scooter, error) {
	scooter := &domain.Scooter{
		ID:           id,
		Status:       domain.ScooterStatusAvailable,
		BatteryLevel: batteryLevel,
	}
	if err := s.scooterRepo.Create(ctx, scooter); err != nil {
		return nil, err
	}
	return scooter, nil
}
