package service

import (
	"context"
	"fmt"
	"time"

	"github.com/relief-next/internal/authz"
	"github.com/relief-next/internal/cache"
	"github.com/relief-next/internal/config"
	"github.com/relief-next/internal/logger"
	"github.com/relief-next/internal/repository"

	"github.com/shopspring/decimal"
)

const statsOverviewCacheKey = "stats:overview"

// SupplyTypeStat 按物资类型的预约统计
type SupplyTypeStat struct {
	SupplyType        string `json:"supply_type"`
	ReservationLines  int64  `json:"reservation_lines"`
	RequestedQuantity int64  `json:"requested_quantity"`
}

// StatsOverview 平台总览统计
type StatsOverview struct {
	StationsTotal         int64            `json:"stations_total"`
	StationsActive        int64            `json:"stations_active"`
	SupplyTypesTotal      int64            `json:"supply_types_total"`
	SupplyTypesAvailable  int64            `json:"supply_types_available"`
	RequestedQuantity     int64            `json:"requested_quantity"`
	ConfirmedQuantity     int64            `json:"confirmed_quantity"`
	FulfillmentRate       string           `json:"fulfillment_rate"`
	ReservationsByStatus  map[string]int64 `json:"reservations_by_status"`
	StationsByManagerRole map[string]int64 `json:"stations_by_manager_role"`
	ReservedBySupplyType  []SupplyTypeStat `json:"reserved_by_supply_type"`
	GeneratedAt           time.Time        `json:"generated_at"`
}

// StatsService 平台统计服务
type StatsService struct {
	statsRepo repository.StatsRepository
	cfg       *config.ReservationConfig
}

// NewStatsService 创建统计服务
func NewStatsService(statsRepo repository.StatsRepository, cfg *config.ReservationConfig) *StatsService {
	return &StatsService{statsRepo: statsRepo, cfg: cfg}
}

// GetOverview 获取总览统计，仅管理员可用
// 结果在 Redis 短期缓存；缓存读写失败只记日志，回退实时聚合。
func (s *StatsService) GetOverview(ctx context.Context, role string) (*StatsOverview, error) {
	if !authz.IsAdmin(role) {
		return nil, ErrNotAuthorized
	}

	var cached StatsOverview
	hit, err := cache.GetJSON(ctx, statsOverviewCacheKey, &cached)
	if err != nil {
		logger.Warnw("stats_cache_get_failed", "error", err)
	}
	if hit {
		return &cached, nil
	}

	overview, err := s.buildOverview()
	if err != nil {
		return nil, err
	}

	ttl := 60 * time.Second
	if s.cfg != nil && s.cfg.StatsCacheTTLSeconds > 0 {
		ttl = time.Duration(s.cfg.StatsCacheTTLSeconds) * time.Second
	}
	if err := cache.SetJSON(ctx, statsOverviewCacheKey, overview, ttl); err != nil {
		logger.Warnw("stats_cache_set_failed", "error", err)
	}
	return overview, nil
}

func (s *StatsService) buildOverview() (*StatsOverview, error) {
	row, err := s.statsRepo.GetOverview()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStatsFetchFailed, err)
	}

	statusRows, err := s.statsRepo.CountReservationsByStatus()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStatsFetchFailed, err)
	}
	byStatus := make(map[string]int64, len(statusRows))
	for _, r := range statusRows {
		byStatus[r.Status] = r.Count
	}

	roleRows, err := s.statsRepo.CountStationsByManagerRole()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStatsFetchFailed, err)
	}
	byRole := make(map[string]int64, len(roleRows))
	for _, r := range roleRows {
		byRole[r.Role] = r.Count
	}

	typeRows, err := s.statsRepo.CountReservedBySupplyType()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStatsFetchFailed, err)
	}
	byType := make([]SupplyTypeStat, 0, len(typeRows))
	for _, r := range typeRows {
		byType = append(byType, SupplyTypeStat{
			SupplyType:        r.SupplyType,
			ReservationLines:  r.Count,
			RequestedQuantity: r.Quantity,
		})
	}

	return &StatsOverview{
		StationsTotal:         row.StationsTotal,
		StationsActive:        row.StationsActive,
		SupplyTypesTotal:      row.SupplyTypesTotal,
		SupplyTypesAvailable:  row.SupplyTypesAvailable,
		RequestedQuantity:     row.RequestedQuantity,
		ConfirmedQuantity:     row.ConfirmedQuantity,
		FulfillmentRate:       fulfillmentRate(row.RequestedQuantity, row.ConfirmedQuantity),
		ReservationsByStatus:  byStatus,
		StationsByManagerRole: byRole,
		ReservedBySupplyType:  byType,
		GeneratedAt:           time.Now(),
	}, nil
}

// fulfillmentRate 确认量 / 请求量，四位小数；无请求量时记 0
func fulfillmentRate(requested, confirmed int64) string {
	if requested <= 0 {
		return decimal.Zero.StringFixed(4)
	}
	rate := decimal.NewFromInt(confirmed).
		Div(decimal.NewFromInt(requested)).
		Round(4)
	return rate.StringFixed(4)
}
