package webhook

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"rentas-backend/internal/domain"
	"rentas-backend/internal/repository"
)

// Event is the canonical shape every vendor callback is reduced to at the
// HTTP boundary. The reconciliation core never sees vendor field names.
type Event struct {
	ProviderMessageID string
	RawStatus         string
}

// Service translates provider delivery callbacks into canonical status
// transitions. A callback for an unknown provider message id is logged and
// dropped; the endpoint must still answer success so the vendor does not
// retry-storm us.
type Service interface {
	Reconcile(ctx context.Context, ev Event) error
}

type service struct {
	notifRepo repository.NotificationRepository
	log       *zap.Logger
}

func NewService(notifRepo repository.NotificationRepository, log *zap.Logger) Service {
	return &service{notifRepo: notifRepo, log: log}
}

// CanonicalStatus maps a vendor status word to the internal vocabulary.
// Unrecognized codes map to SENT: failing a message on an unknown vendor
// code could mask real deliveries.
func CanonicalStatus(raw string) domain.NotificationStatus {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "DELIVERED", "DELIVERY_CONFIRMED", "SUCCESS", "READ":
		return domain.StatusDelivered
	case "FAILED", "UNDELIVERED", "FAILURE":
		return domain.StatusFailed
	case "SENT", "QUEUED", "ACCEPTED", "SENDING":
		return domain.StatusSent
	default:
		return domain.StatusSent
	}
}

func (s *service) Reconcile(ctx context.Context, ev Event) error {
	if ev.ProviderMessageID == "" {
		s.log.Warn("webhook callback without provider message id", zap.String("raw_status", ev.RawStatus))
		return nil
	}

	n, err := s.notifRepo.GetByProviderMessageID(ctx, ev.ProviderMessageID)
	if errors.Is(err, domain.ErrNotificationNotFound) {
		s.log.Warn("webhook callback for unknown provider message id",
			zap.String("provider_message_id", ev.ProviderMessageID),
			zap.String("raw_status", ev.RawStatus))
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup by provider message id: %w", err)
	}

	now := time.Now().UTC()
	switch CanonicalStatus(ev.RawStatus) {
	case domain.StatusDelivered:
		updated, err := s.notifRepo.MarkDelivered(ctx, n.ID, now)
		if err != nil {
			return err
		}
		if updated {
			s.log.Info("notification delivered",
				zap.String("notification_id", n.ID.String()),
				zap.String("provider_message_id", ev.ProviderMessageID))
		}
	case domain.StatusFailed:
		msg := fmt.Sprintf("provider reported failure: %s", ev.RawStatus)
		updated, err := s.notifRepo.MarkFailed(ctx, n.ID, msg)
		if err != nil {
			return err
		}
		if updated {
			s.log.Info("notification failed per provider callback",
				zap.String("notification_id", n.ID.String()),
				zap.String("raw_status", ev.RawStatus))
		}
	default:
		// Acceptance-only statuses: promote PENDING rows, leave the rest.
		if _, err := s.notifRepo.ConfirmSent(ctx, n.ID, now); err != nil {
			return err
		}
	}

	return nil
}
