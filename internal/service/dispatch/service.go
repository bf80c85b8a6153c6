package dispatch

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rentas-backend/internal/domain"
	"rentas-backend/internal/provider"
	"rentas-backend/internal/repository"
	"rentas-backend/internal/service/quota"
)

// SendRequest describes one message to dispatch. The caller resolves the
// organization profile; the effective channel is only honored when the
// organization is configured for BOTH channels.
type SendRequest struct {
	Org            *domain.OrgNotificationProfile
	RecipientType  domain.RecipientType
	RecipientID    *uuid.UUID
	RecipientPhone string
	Type           domain.NotificationType
	Title          string
	Message        string
	Channel        domain.NotificationChannel
	ContractID     *uuid.UUID
	PaymentID      *uuid.UUID
	CreatedBy      *uuid.UUID
}

// Service is the single place that turns a send request into a persisted,
// attempted notification. Quota consumption and the PENDING row are one
// committed unit of work; the provider call happens outside it, and the
// SENT/FAILED transition is a second independent unit. A crash in between
// leaves a PENDING row for the retry sweep.
type Service interface {
	Send(ctx context.Context, req SendRequest) (*domain.Notification, error)
	SendTest(ctx context.Context, orgID uuid.UUID, phone string, channel domain.NotificationChannel, message string, createdBy *uuid.UUID) (*domain.Notification, error)
	// Resend re-invokes only the provider-send step for an existing row.
	// Quota is not re-consumed; the attempt was already counted.
	Resend(ctx context.Context, n *domain.Notification) error
}

type service struct {
	notifRepo repository.NotificationRepository
	orgRepo   repository.OrganizationRepository
	quotaSvc  quota.Service
	providers *provider.Registry
	log       *zap.Logger
}

func NewService(
	notifRepo repository.NotificationRepository,
	orgRepo repository.OrganizationRepository,
	quotaSvc quota.Service,
	providers *provider.Registry,
	log *zap.Logger,
) Service {
	return &service{
		notifRepo: notifRepo,
		orgRepo:   orgRepo,
		quotaSvc:  quotaSvc,
		providers: providers,
		log:       log,
	}
}

func (s *service) Send(ctx context.Context, req SendRequest) (*domain.Notification, error) {
	org := req.Org
	if !org.NotificationEnabled {
		// Configuration no-op, not a failure worth auditing.
		return nil, domain.ErrNotificationsDisabled
	}

	channel, err := resolveChannel(org.NotificationChannel, req.Channel)
	if err != nil {
		return nil, err
	}

	n := &domain.Notification{
		ID:             uuid.New(),
		OrganizationID: org.OrganizationID,
		RecipientType:  req.RecipientType,
		RecipientID:    req.RecipientID,
		RecipientPhone: req.RecipientPhone,
		Type:           req.Type,
		Title:          req.Title,
		Message:        req.Message,
		Channel:        channel,
		Status:         domain.StatusPending,
		ContractID:     req.ContractID,
		PaymentID:      req.PaymentID,
		CreatedBy:      req.CreatedBy,
	}

	if err := s.quotaSvc.ConsumeAndCreate(ctx, org, n); err != nil {
		if errors.Is(err, domain.ErrQuotaExceeded) {
			// The attempt is still audited.
			n.Status = domain.StatusFailed
			msg := "quota exceeded"
			n.ErrorMessage = &msg
			if createErr := s.notifRepo.Create(ctx, n); createErr != nil {
				s.log.Error("failed to audit quota-exceeded attempt",
					zap.String("organization_id", org.OrganizationID.String()),
					zap.Error(createErr))
			}
			return n, err
		}
		return nil, err
	}

	if err := s.deliver(ctx, n); err != nil {
		return n, err
	}
	return n, nil
}

func (s *service) SendTest(ctx context.Context, orgID uuid.UUID, phone string, channel domain.NotificationChannel, message string, createdBy *uuid.UUID) (*domain.Notification, error) {
	org, err := s.orgRepo.GetProfile(ctx, orgID)
	if err != nil {
		return nil, err
	}

	if message == "" {
		message = "Mensaje de prueba del sistema de notificaciones."
	}

	return s.Send(ctx, SendRequest{
		Org:            org,
		RecipientType:  domain.RecipientUser,
		RecipientPhone: phone,
		Type:           domain.NotifTest,
		Title:          "Notificación de prueba",
		Message:        message,
		Channel:        channel,
		CreatedBy:      createdBy,
	})
}

func (s *service) Resend(ctx context.Context, n *domain.Notification) error {
	pmid, err := s.sendViaProvider(ctx, n)
	if err != nil {
		// Keep the row non-terminal; the next sweep decides whether
		// retries remain.
		if _, recErr := s.notifRepo.RecordError(ctx, n.ID, err.Error()); recErr != nil {
			s.log.Error("failed to record retry error",
				zap.String("notification_id", n.ID.String()),
				zap.Error(recErr))
		}
		return err
	}

	now := time.Now().UTC()
	if _, err := s.notifRepo.MarkSent(ctx, n.ID, pmid, now); err != nil {
		return err
	}
	n.Status = domain.StatusSent
	if n.ProviderMessageID == nil {
		n.ProviderMessageID = &pmid
	}
	if n.SentAt == nil {
		n.SentAt = &now
	}
	return nil
}

// deliver performs the provider call and commits the outcome as its own
// unit of work.
func (s *service) deliver(ctx context.Context, n *domain.Notification) error {
	pmid, err := s.sendViaProvider(ctx, n)
	if err != nil {
		if _, failErr := s.notifRepo.MarkFailed(ctx, n.ID, err.Error()); failErr != nil {
			s.log.Error("failed to persist send failure",
				zap.String("notification_id", n.ID.String()),
				zap.Error(failErr))
		}
		n.Status = domain.StatusFailed
		msg := err.Error()
		n.ErrorMessage = &msg
		return err
	}

	now := time.Now().UTC()
	if _, err := s.notifRepo.MarkSent(ctx, n.ID, pmid, now); err != nil {
		s.log.Error("failed to persist send success",
			zap.String("notification_id", n.ID.String()),
			zap.Error(err))
		return err
	}
	n.Status = domain.StatusSent
	n.ProviderMessageID = &pmid
	n.SentAt = &now

	s.log.Info("notification sent",
		zap.String("notification_id", n.ID.String()),
		zap.String("channel", string(n.Channel)),
		zap.String("provider_message_id", pmid))
	return nil
}

func (s *service) sendViaProvider(ctx context.Context, n *domain.Notification) (string, error) {
	p, err := s.providers.ForChannel(n.Channel)
	if err != nil {
		return "", err
	}

	switch n.Channel {
	case domain.ChannelWhatsApp:
		return p.SendWhatsApp(ctx, n.RecipientPhone, n.Message)
	default:
		return p.SendSMS(ctx, n.RecipientPhone, n.Message)
	}
}

func resolveChannel(orgChannel, requested domain.NotificationChannel) (domain.NotificationChannel, error) {
	if orgChannel == domain.ChannelBoth {
		if requested == "" {
			return domain.ChannelSMS, nil
		}
		if !requested.ValidForSend() {
			return "", domain.ErrUnsupportedChannel
		}
		return requested, nil
	}
	if !orgChannel.ValidForSend() {
		return "", domain.ErrUnsupportedChannel
	}
	return orgChannel, nil
}
