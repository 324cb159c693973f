package service

import (
	"kodbot/internal/domain"
	"kodbot/internal/repository"

	"go.uber.org/zap"
)

// StatsService handles usage counters
type StatsService struct {
	statsRepo repository.StatsRepository
	logger    *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(statsRepo repository.StatsRepository, logger *zap.Logger) *StatsService {
	return &StatsService{
		statsRepo: statsRepo,
		logger:    logger,
	}
}

// RecordDelivery counts one successful delivery of code
func (s *StatsService) RecordDelivery(code string) error {
	count, err := s.statsRepo.Increment(code)
	if err != nil {
		s.logger.Error("Failed to increment usage counter", zap.String("code", code), zap.Error(err))
		return err
	}

	s.logger.Debug("Delivery recorded", zap.String("code", code), zap.Int("count", count))
	return nil
}

// Count returns the number of deliveries of code
func (s *StatsService) Count(code string) (int, error) {
	return s.statsRepo.GetCount(code)
}

// Top returns the most delivered codes
func (s *StatsService) Top(limit int) ([]domain.UsageStat, error) {
	if limit < 1 {
		limit = 10
	}
	return s.statsRepo.TopCodes(limit)
}
