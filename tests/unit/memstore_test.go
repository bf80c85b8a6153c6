package unit_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"rentas-backend/internal/domain"
	"rentas-backend/internal/repository"
)

// memStore is an in-memory stand-in for the notification and organization
// repositories with the same guard semantics as the SQL implementations:
// status-guarded updates, atomic quota consumption, month-guarded resets.
// Scenario tests run the real services on top of it.
type memStore struct {
	mu            sync.Mutex
	notifications map[uuid.UUID]*domain.Notification
	profiles      map[uuid.UUID]*domain.OrgNotificationProfile
}

var (
	_ repository.NotificationRepository = (*memStore)(nil)
	_ repository.OrganizationRepository = (*memStore)(nil)
)

func newMemStore() *memStore {
	return &memStore{
		notifications: make(map[uuid.UUID]*domain.Notification),
		profiles:      make(map[uuid.UUID]*domain.OrgNotificationProfile),
	}
}

func (s *memStore) addProfile(p *domain.OrgNotificationProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.profiles[p.OrganizationID] = &cp
}

func (s *memStore) addNotification(n *domain.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *n
	s.notifications[n.ID] = &cp
}

func (s *memStore) get(id uuid.UUID) domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.notifications[id]
}

func (s *memStore) all() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		out = append(out, *n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *memStore) countByStatusLocked(orgID uuid.UUID) map[domain.NotificationStatus]int64 {
	counts := make(map[domain.NotificationStatus]int64)
	for _, n := range s.notifications {
		if n.OrganizationID == orgID {
			counts[n.Status]++
		}
	}
	return counts
}

// NotificationRepository

func (s *memStore) Create(ctx context.Context, n *domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	cp := *n
	s.notifications[n.ID] = &cp
	return nil
}

func (s *memStore) CreateConsumingQuota(ctx context.Context, n *domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[n.OrganizationID]
	if !ok {
		return domain.ErrOrganizationNotFound
	}
	if p.NotificationLimit != domain.UnlimitedQuota && p.NotificationsSentThisMonth >= p.NotificationLimit {
		return domain.ErrQuotaExceeded
	}
	p.NotificationsSentThisMonth++
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	cp := *n
	s.notifications[n.ID] = &cp
	return nil
}

func (s *memStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok {
		return nil, domain.ErrNotificationNotFound
	}
	cp := *n
	return &cp, nil
}

func (s *memStore) GetByProviderMessageID(ctx context.Context, providerMessageID string) (*domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notifications {
		if n.ProviderMessageID != nil && *n.ProviderMessageID == providerMessageID {
			cp := *n
			return &cp, nil
		}
	}
	return nil, domain.ErrNotificationNotFound
}

func (s *memStore) MarkSent(ctx context.Context, id uuid.UUID, providerMessageID string, sentAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok || n.Status.IsTerminal() {
		return false, nil
	}
	n.Status = domain.StatusSent
	if n.ProviderMessageID == nil {
		pmid := providerMessageID
		n.ProviderMessageID = &pmid
	}
	if n.SentAt == nil {
		at := sentAt
		n.SentAt = &at
	}
	return true, nil
}

func (s *memStore) ConfirmSent(ctx context.Context, id uuid.UUID, sentAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok || n.Status != domain.StatusPending {
		return false, nil
	}
	n.Status = domain.StatusSent
	if n.SentAt == nil {
		at := sentAt
		n.SentAt = &at
	}
	return true, nil
}

func (s *memStore) MarkDelivered(ctx context.Context, id uuid.UUID, deliveredAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok || n.Status.IsTerminal() {
		return false, nil
	}
	n.Status = domain.StatusDelivered
	at := deliveredAt
	n.DeliveredAt = &at
	return true, nil
}

func (s *memStore) MarkFailed(ctx context.Context, id uuid.UUID, errorMessage string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok || n.Status.IsTerminal() {
		return false, nil
	}
	n.Status = domain.StatusFailed
	msg := errorMessage
	n.ErrorMessage = &msg
	return true, nil
}

func (s *memStore) MarkRetry(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok || n.Status.IsTerminal() {
		return false, nil
	}
	n.RetryCount++
	t := at
	n.LastRetryAt = &t
	return true, nil
}

func (s *memStore) RecordError(ctx context.Context, id uuid.UUID, errorMessage string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok || n.Status.IsTerminal() {
		return false, nil
	}
	msg := errorMessage
	n.ErrorMessage = &msg
	return true, nil
}

func (s *memStore) ListStale(ctx context.Context, olderThan time.Time) ([]domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Notification
	for _, n := range s.notifications {
		if n.Status.IsTerminal() {
			continue
		}
		last := n.CreatedAt
		if n.LastRetryAt != nil {
			last = *n.LastRetryAt
		}
		if last.Before(olderThan) {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *memStore) ExistsForPayment(ctx context.Context, paymentID uuid.UUID, notifType domain.NotificationType, since time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notifications {
		if n.PaymentID != nil && *n.PaymentID == paymentID && n.Type == notifType && !n.CreatedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) ExistsForContract(ctx context.Context, contractID uuid.UUID, notifType domain.NotificationType, since time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notifications {
		if n.ContractID != nil && *n.ContractID == contractID && n.Type == notifType && !n.CreatedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) ListByOrganization(ctx context.Context, orgID uuid.UUID, params domain.PaginationParams) ([]domain.Notification, int64, error) {
	all := s.all()
	var out []domain.Notification
	for _, n := range all {
		if n.OrganizationID == orgID {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}

func (s *memStore) ListRecent(ctx context.Context, orgID uuid.UUID, limit int) ([]domain.Notification, error) {
	all := s.all()
	var out []domain.Notification
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		if all[i].OrganizationID == orgID {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func (s *memStore) CountByStatus(ctx context.Context, orgID uuid.UUID) (map[domain.NotificationStatus]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countByStatusLocked(orgID), nil
}

func (s *memStore) DailyCounts(ctx context.Context, orgID uuid.UUID, since time.Time) ([]domain.DailyCount, error) {
	return nil, nil
}

// OrganizationRepository

func (s *memStore) GetProfile(ctx context.Context, orgID uuid.UUID) (*domain.OrgNotificationProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[orgID]
	if !ok {
		return nil, domain.ErrOrganizationNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *memStore) ListNotificationEnabled(ctx context.Context) ([]domain.OrgNotificationProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.OrgNotificationProfile
	for _, p := range s.profiles {
		if p.NotificationEnabled {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *memStore) UpdateSettings(ctx context.Context, orgID uuid.UUID, enabled bool, channel domain.NotificationChannel, adminNotifications bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[orgID]
	if !ok {
		return domain.ErrOrganizationNotFound
	}
	p.NotificationEnabled = enabled
	p.NotificationChannel = channel
	p.AdminNotifications = adminNotifications
	return nil
}

func (s *memStore) ResetMonthlyCounter(ctx context.Context, orgID uuid.UUID, today time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[orgID]
	if !ok {
		return false, nil
	}
	if p.LastNotificationReset != nil &&
		p.LastNotificationReset.Year() == today.Year() &&
		p.LastNotificationReset.Month() == today.Month() {
		return false, nil
	}
	p.NotificationsSentThisMonth = 0
	t := today
	p.LastNotificationReset = &t
	return true, nil
}
