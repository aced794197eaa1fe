package service

import (
	"context"
	"fmt"
	"strings"

	"scooter-sharing-backend/internal/domain"
	"scooter-sharing-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type tariffService struct {
	tariffRepo repository.TariffRepository
}

func NewTariffService(tariffRepo repository.TariffRepository) TariffService {
	return &tariffService{tariffRepo: tariffRepo}
}

func (s *tariffService) ListTariffs(ctx context.Context) ([]domain.Tariff, error) {
	return s.tariffRepo.List(ctx)
}

func (s *tariffService) CreateTariff(ctx context.Context, name string, perMinute decimal.Decimal) (*domain.Tariff, error) {
	if !perMinute.IsPositive() {
		return nil, fmt.Errorf("%w: per-minute rate must be positive", domain.ErrInvalidInput)
	}
	if !perMinute.Equal(perMinute.Round(2)) {
		return nil, fmt.Errorf("%w: per-minute rate has more than two decimal places", domain.ErrInvalidInput)
	}
	name = strings.TrimSpace(name)
	if len(name) > domain.MaxTariffNameLength {
		return nil, fmt.Errorf("%w: tariff name longer than %d characters", domain.ErrInvalidInput, domain.MaxTariffNameLength)
	}
	tariff := &domain.Tariff{
		Name:      name,
		PerMinute: perMinute,
	}
	if err := s.tariffRepo.Create(ctx, tariff); err != nil {
		return nil, err
	}
	return tariff, nil
}
