package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rentas-backend/internal/domain"
	"rentas-backend/internal/repository"
	"rentas-backend/internal/service/dispatch"
	"rentas-backend/internal/service/email"
	"rentas-backend/internal/service/quota"
)

// Service runs the daily reminder scan: monthly quota resets, payment due
// and overdue reminders, contract expiry reminders, and the optional admin
// digest. The scan is re-entrant; running it twice in one day produces the
// same notification rows, enforced by the per-period existence check rather
// than by the scheduler.
type Service interface {
	Run(ctx context.Context) error
	RunAsOf(ctx context.Context, today time.Time) error
}

type service struct {
	orgRepo     repository.OrganizationRepository
	billingRepo repository.BillingRepository
	notifRepo   repository.NotificationRepository
	quotaSvc    quota.Service
	dispatchSvc dispatch.Service
	emailSvc    email.Service
	horizonDays int
	log         *zap.Logger
}

func NewService(
	orgRepo repository.OrganizationRepository,
	billingRepo repository.BillingRepository,
	notifRepo repository.NotificationRepository,
	quotaSvc quota.Service,
	dispatchSvc dispatch.Service,
	emailSvc email.Service,
	horizonDays int,
	log *zap.Logger,
) Service {
	if horizonDays <= 0 {
		horizonDays = 30
	}
	return &service{
		orgRepo:     orgRepo,
		billingRepo: billingRepo,
		notifRepo:   notifRepo,
		quotaSvc:    quotaSvc,
		dispatchSvc: dispatchSvc,
		emailSvc:    emailSvc,
		horizonDays: horizonDays,
		log:         log,
	}
}

func (s *service) Run(ctx context.Context) error {
	return s.RunAsOf(ctx, time.Now().UTC())
}

func (s *service) RunAsOf(ctx context.Context, today time.Time) error {
	orgs, err := s.orgRepo.ListNotificationEnabled(ctx)
	if err != nil {
		// Total store outage: abort, the next scheduled tick retries.
		return fmt.Errorf("list organizations: %w", err)
	}

	s.log.Info("reminder scan started", zap.Int("organizations", len(orgs)))

	for i := range orgs {
		org := &orgs[i]
		if err := s.processOrganization(ctx, org, today); err != nil {
			s.log.Error("reminder scan failed for organization",
				zap.String("organization_id", org.OrganizationID.String()),
				zap.Error(err))
		}
	}

	s.log.Info("reminder scan finished")
	return nil
}

type digestCounters struct {
	payments int
	overdue  int
	expiry   int
	failures int
	lines    []string
}

func (s *service) processOrganization(ctx context.Context, org *domain.OrgNotificationProfile, today time.Time) error {
	if err := s.quotaSvc.ResetIfDue(ctx, org, today); err != nil {
		return fmt.Errorf("quota reset: %w", err)
	}

	periodStart := startOfMonth(today)
	var digest digestCounters

	s.scanDuePayments(ctx, org, today, periodStart, &digest)
	s.scanOverduePayments(ctx, org, today, periodStart, &digest)
	s.scanExpiringContracts(ctx, org, today, periodStart, &digest)

	if org.AdminNotifications && org.AdminEmail != "" && len(digest.lines) > 0 {
		data := email.DigestData{
			OrgName:          org.Name,
			Date:             today.Format("02/01/2006"),
			PaymentReminders: digest.payments,
			OverdueReminders: digest.overdue,
			ExpiryReminders:  digest.expiry,
			Failures:         digest.failures,
			Lines:            digest.lines,
		}
		if err := s.emailSvc.SendReminderDigest(ctx, org.AdminEmail, data); err != nil {
			s.log.Error("failed to send admin digest",
				zap.String("organization_id", org.OrganizationID.String()),
				zap.Error(err))
		}
	}

	return nil
}

func (s *service) scanDuePayments(ctx context.Context, org *domain.OrgNotificationProfile, today, periodStart time.Time, digest *digestCounters) {
	payments, err := s.billingRepo.ListPaymentsDueOn(ctx, org.OrganizationID, today)
	if err != nil {
		s.log.Error("failed to list payments due",
			zap.String("organization_id", org.OrganizationID.String()),
			zap.Error(err))
		return
	}

	for i := range payments {
		p := payments[i]
		exists, err := s.notifRepo.ExistsForPayment(ctx, p.PaymentID, domain.NotifPaymentReminder, periodStart)
		if err != nil || exists {
			continue
		}

		title := "Recordatorio de pago"
		message := fmt.Sprintf("Hola %s, te recordamos que tu pago de renta por $%.2f vence hoy.", p.TenantName, p.Amount)
		s.dispatchReminder(ctx, org, reminderEvent{
			recipientID: p.TenantID,
			phone:       p.TenantPhone,
			notifType:   domain.NotifPaymentReminder,
			title:       title,
			message:     message,
			contractID:  &p.ContractID,
			paymentID:   &p.PaymentID,
		}, digest)
		digest.payments++
		digest.lines = append(digest.lines, fmt.Sprintf("Pago por vencer: %s ($%.2f)", p.TenantName, p.Amount))
	}
}

func (s *service) scanOverduePayments(ctx context.Context, org *domain.OrgNotificationProfile, today, periodStart time.Time, digest *digestCounters) {
	payments, err := s.billingRepo.ListOverduePayments(ctx, org.OrganizationID, today)
	if err != nil {
		s.log.Error("failed to list overdue payments",
			zap.String("organization_id", org.OrganizationID.String()),
			zap.Error(err))
		return
	}

	for i := range payments {
		p := payments[i]
		exists, err := s.notifRepo.ExistsForPayment(ctx, p.PaymentID, domain.NotifPaymentReminder, periodStart)
		if err != nil || exists {
			continue
		}

		title := "Pago vencido"
		message := fmt.Sprintf("Hola %s, tienes un pago de renta por $%.2f vencido desde el %s. Por favor regularízalo a la brevedad.",
			p.TenantName, p.Amount, p.DueDate.Format("02/01/2006"))
		s.dispatchReminder(ctx, org, reminderEvent{
			recipientID: p.TenantID,
			phone:       p.TenantPhone,
			notifType:   domain.NotifPaymentReminder,
			title:       title,
			message:     message,
			contractID:  &p.ContractID,
			paymentID:   &p.PaymentID,
		}, digest)
		digest.overdue++
		digest.lines = append(digest.lines, fmt.Sprintf("Pago vencido: %s ($%.2f, venció %s)", p.TenantName, p.Amount, p.DueDate.Format("02/01/2006")))
	}
}

func (s *service) scanExpiringContracts(ctx context.Context, org *domain.OrgNotificationProfile, today, periodStart time.Time, digest *digestCounters) {
	to := today.AddDate(0, 0, s.horizonDays)
	contracts, err := s.billingRepo.ListExpiringContracts(ctx, org.OrganizationID, today, to)
	if err != nil {
		s.log.Error("failed to list expiring contracts",
			zap.String("organization_id", org.OrganizationID.String()),
			zap.Error(err))
		return
	}

	for i := range contracts {
		c := contracts[i]
		exists, err := s.notifRepo.ExistsForContract(ctx, c.ContractID, domain.NotifContractExpiry, periodStart)
		if err != nil || exists {
			continue
		}

		title := "Contrato por vencer"
		message := fmt.Sprintf("Hola %s, tu contrato de %s vence el %s. Contacta a tu administrador para renovarlo.",
			c.TenantName, c.PropertyName, c.EndDate.Format("02/01/2006"))
		s.dispatchReminder(ctx, org, reminderEvent{
			recipientID: c.TenantID,
			phone:       c.TenantPhone,
			notifType:   domain.NotifContractExpiry,
			title:       title,
			message:     message,
			contractID:  &c.ContractID,
		}, digest)
		digest.expiry++
		digest.lines = append(digest.lines, fmt.Sprintf("Contrato por vencer: %s (%s)", c.TenantName, c.EndDate.Format("02/01/2006")))
	}
}

type reminderEvent struct {
	recipientID uuid.UUID
	phone       string
	notifType   domain.NotificationType
	title       string
	message     string
	contractID  *uuid.UUID
	paymentID   *uuid.UUID
}

// dispatchReminder isolates per-event failures: one bad phone number or an
// exhausted quota must not abort the rest of the batch.
func (s *service) dispatchReminder(ctx context.Context, org *domain.OrgNotificationProfile, ev reminderEvent, digest *digestCounters) {
	recipientID := ev.recipientID
	_, err := s.dispatchSvc.Send(ctx, dispatch.SendRequest{
		Org:            org,
		RecipientType:  domain.RecipientTenant,
		RecipientID:    &recipientID,
		RecipientPhone: ev.phone,
		Type:           ev.notifType,
		Title:          ev.title,
		Message:        ev.message,
		ContractID:     ev.contractID,
		PaymentID:      ev.paymentID,
	})
	if err != nil {
		digest.failures++
		s.log.Warn("reminder dispatch failed",
			zap.String("organization_id", org.OrganizationID.String()),
			zap.String("type", string(ev.notifType)),
			zap.Error(err))
	}
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
