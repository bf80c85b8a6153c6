package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"rentas-backend/internal/domain"
	"rentas-backend/internal/repository"
)

const cacheTTL = 2 * time.Minute

type Stats struct {
	Total        int64   `json:"total"`
	Pending      int64   `json:"pending"`
	Sent         int64   `json:"sent"`
	Delivered    int64   `json:"delivered"`
	Failed       int64   `json:"failed"`
	DeliveryRate float64 `json:"delivery_rate"`

	SentThisMonth     int `json:"sent_this_month"`
	NotificationLimit int `json:"notification_limit"`

	Recent []domain.Notification `json:"recent"`
	Daily  []domain.DailyCount   `json:"daily"`
}

type Service interface {
	GetStats(ctx context.Context, orgID uuid.UUID) (*Stats, error)
	List(ctx context.Context, orgID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
}

type service struct {
	notifRepo repository.NotificationRepository
	orgRepo   repository.OrganizationRepository
	redis     *redis.Client
}

func NewService(notifRepo repository.NotificationRepository, orgRepo repository.OrganizationRepository, redisClient *redis.Client) Service {
	return &service{
		notifRepo: notifRepo,
		orgRepo:   orgRepo,
		redis:     redisClient,
	}
}

// CalculateDeliveryRate returns delivered/total as a percentage rounded to
// two decimals, 0 when there is nothing to measure.
func CalculateDeliveryRate(delivered, total int64) float64 {
	if total == 0 {
		return 0
	}
	rate := float64(delivered) / float64(total) * 100
	return math.Round(rate*100) / 100
}

func (s *service) GetStats(ctx context.Context, orgID uuid.UUID) (*Stats, error) {
	cacheKey := fmt.Sprintf("notifications:stats:%s", orgID)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var stats Stats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	counts, err := s.notifRepo.CountByStatus(ctx, orgID)
	if err != nil {
		return nil, err
	}

	profile, err := s.orgRepo.GetProfile(ctx, orgID)
	if err != nil {
		return nil, err
	}

	recent, err := s.notifRepo.ListRecent(ctx, orgID, 10)
	if err != nil {
		return nil, err
	}

	daily, err := s.notifRepo.DailyCounts(ctx, orgID, time.Now().UTC().AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	var total int64
	for _, c := range counts {
		total += c
	}

	stats := &Stats{
		Total:             total,
		Pending:           counts[domain.StatusPending],
		Sent:              counts[domain.StatusSent],
		Delivered:         counts[domain.StatusDelivered],
		Failed:            counts[domain.StatusFailed],
		DeliveryRate:      CalculateDeliveryRate(counts[domain.StatusDelivered], total),
		SentThisMonth:     profile.NotificationsSentThisMonth,
		NotificationLimit: profile.NotificationLimit,
		Recent:            recent,
		Daily:             daily,
	}

	if s.redis != nil {
		if encoded, err := json.Marshal(stats); err == nil {
			s.redis.Set(ctx, cacheKey, encoded, cacheTTL)
		}
	}

	return stats, nil
}

func (s *service) List(ctx context.Context, orgID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	notifications, total, err := s.notifRepo.ListByOrganization(ctx, orgID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}
	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}
