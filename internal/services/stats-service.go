package services

import (
	"context"
	"errors"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/repositories"
	"gearguard/pkg/apperrors"
	"gearguard/pkg/constants"

	"go.uber.org/zap"
)

const dashboardCacheKey = "stats:dashboard"

type StatsServiceInterface interface {
	GetDashboard(ctx context.Context) (*dto.DashboardSummaryDTO, error)
	GetEquipmentStats(ctx context.Context, groupBy string) ([]dto.CountByGroupDTO, error)
	GetRequestStats(ctx context.Context, groupBy string) ([]dto.CountByGroupDTO, error)
	GetRequestTrend(ctx context.Context, months int) ([]dto.RequestTrendPointDTO, error)
	GetCostSummary(ctx context.Context) (*dto.CostSummaryDTO, error)
	GetSLACompliance(ctx context.Context) (*dto.SLAComplianceDTO, error)
	GetTeamPerformance(ctx context.Context) ([]dto.TeamPerformanceDTO, error)
}

type StatsService struct {
	statsRepo  repositories.StatsRepositoryInterface
	budgetRepo repositories.BudgetRepositoryInterface
	cache      repositories.CacheRepositoryInterface
	cacheTTL   time.Duration
	logger     *zap.Logger
}

func NewStatsService(
	statsRepo repositories.StatsRepositoryInterface,
	budgetRepo repositories.BudgetRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	cacheTTL time.Duration,
	logger *zap.Logger,
) StatsServiceInterface {
	return &StatsService{
		statsRepo:  statsRepo,
		budgetRepo: budgetRepo,
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// GetDashboard aggregates the landing-page counters. The summary is cached
// briefly; a cache failure falls through to the database.
func (s *StatsService) GetDashboard(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	var cached dto.DashboardSummaryDTO
	if err := s.cache.Get(ctx, dashboardCacheKey, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.logger.Warn("dashboard cache read failed", zap.Error(err))
	}

	summary := dto.DashboardSummaryDTO{}
	var err error

	if summary.EquipmentByStatus, err = s.statsRepo.CountEquipmentBy(ctx, "status"); err != nil {
		return nil, err
	}
	if summary.RequestsByStatus, err = s.statsRepo.CountRequestsBy(ctx, "status"); err != nil {
		return nil, err
	}
	if summary.OpenRequests, err = s.statsRepo.CountOpenRequests(ctx); err != nil {
		return nil, err
	}
	if summary.CriticalRequests, err = s.statsRepo.CountCriticalOpenRequests(ctx); err != nil {
		return nil, err
	}
	if summary.LowStockParts, err = s.statsRepo.CountLowStockParts(ctx); err != nil {
		return nil, err
	}
	if summary.ExceededBudgets, err = s.budgetRepo.CountByStatus(ctx, constants.BudgetStatusExceeded); err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, dashboardCacheKey, &summary, s.cacheTTL); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.Error(err))
	}
	return &summary, nil
}

var equipmentGroupColumns = map[string]string{
	"status":     "status",
	"category":   "category",
	"department": "department",
}

var requestGroupColumns = map[string]string{
	"status":       "status",
	"priority":     "priority",
	"request_type": "request_type",
}

func (s *StatsService) GetEquipmentStats(ctx context.Context, groupBy string) ([]dto.CountByGroupDTO, error) {
	column, ok := equipmentGroupColumns[groupBy]
	if !ok {
		return nil, apperrors.NewInvalidInputError("cannot group equipment by %q", groupBy)
	}
	return s.statsRepo.CountEquipmentBy(ctx, column)
}

func (s *StatsService) GetRequestStats(ctx context.Context, groupBy string) ([]dto.CountByGroupDTO, error) {
	column, ok := requestGroupColumns[groupBy]
	if !ok {
		return nil, apperrors.NewInvalidInputError("cannot group requests by %q", groupBy)
	}
	return s.statsRepo.CountRequestsBy(ctx, column)
}

func (s *StatsService) GetRequestTrend(ctx context.Context, months int) ([]dto.RequestTrendPointDTO, error) {
	if months <= 0 || months > 36 {
		months = 12
	}
	return s.statsRepo.GetRequestTrend(ctx, months)
}

func (s *StatsService) GetCostSummary(ctx context.Context) (*dto.CostSummaryDTO, error) {
	return s.statsRepo.GetCostSummary(ctx)
}

func (s *StatsService) GetSLACompliance(ctx context.Context) (*dto.SLAComplianceDTO, error) {
	return s.statsRepo.GetSLACompliance(ctx)
}

func (s *StatsService) GetTeamPerformance(ctx context.Context) ([]dto.TeamPerformanceDTO, error) {
	return s.statsRepo.GetTeamPerformance(ctx)
}
