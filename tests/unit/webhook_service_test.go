package unit_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"rentas-backend/internal/domain"
	"rentas-backend/internal/service/webhook"
)

func TestCanonicalStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want domain.NotificationStatus
	}{
		{"delivered", domain.StatusDelivered},
		{"DELIVERED", domain.StatusDelivered},
		{"DELIVERY_CONFIRMED", domain.StatusDelivered},
		{"success", domain.StatusDelivered},
		{"read", domain.StatusDelivered},
		{"failed", domain.StatusFailed},
		{"undelivered", domain.StatusFailed},
		{"FAILURE", domain.StatusFailed},
		{"sent", domain.StatusSent},
		{"queued", domain.StatusSent},
		{"accepted", domain.StatusSent},
		{"sending", domain.StatusSent},
		{"  Delivered  ", domain.StatusDelivered},
		{"something_new_from_the_vendor", domain.StatusSent},
		{"", domain.StatusSent},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, webhook.CanonicalStatus(tc.raw), "raw=%q", tc.raw)
	}
}

func sentNotification(store *memStore, pmid string) *domain.Notification {
	now := time.Now().UTC().Add(-time.Hour)
	n := &domain.Notification{
		ID:                uuid.New(),
		OrganizationID:    uuid.New(),
		Status:            domain.StatusSent,
		ProviderMessageID: &pmid,
		SentAt:            &now,
		CreatedAt:         now,
	}
	store.addNotification(n)
	return n
}

func TestWebhookService_Reconcile(t *testing.T) {
	ctx := context.Background()

	t.Run("Delivered", func(t *testing.T) {
		store := newMemStore()
		svc := webhook.NewService(store, zap.NewNop())
		n := sentNotification(store, "SM100")

		err := svc.Reconcile(ctx, webhook.Event{ProviderMessageID: "SM100", RawStatus: "delivered"})

		assert.NoError(t, err)
		stored := store.get(n.ID)
		assert.Equal(t, domain.StatusDelivered, stored.Status)
		assert.NotNil(t, stored.DeliveredAt)
	})

	t.Run("Delivered twice is a no-op", func(t *testing.T) {
		store := newMemStore()
		svc := webhook.NewService(store, zap.NewNop())
		n := sentNotification(store, "SM101")

		assert.NoError(t, svc.Reconcile(ctx, webhook.Event{ProviderMessageID: "SM101", RawStatus: "delivered"}))
		first := store.get(n.ID)

		assert.NoError(t, svc.Reconcile(ctx, webhook.Event{ProviderMessageID: "SM101", RawStatus: "delivered"}))
		second := store.get(n.ID)

		assert.Equal(t, domain.StatusDelivered, second.Status)
		assert.Equal(t, *first.DeliveredAt, *second.DeliveredAt)
	})

	t.Run("Provider failure", func(t *testing.T) {
		store := newMemStore()
		svc := webhook.NewService(store, zap.NewNop())
		n := sentNotification(store, "SM102")

		err := svc.Reconcile(ctx, webhook.Event{ProviderMessageID: "SM102", RawStatus: "undelivered"})

		assert.NoError(t, err)
		stored := store.get(n.ID)
		assert.Equal(t, domain.StatusFailed, stored.Status)
		assert.Equal(t, "provider reported failure: undelivered", *stored.ErrorMessage)
	})

	t.Run("Failure after delivered is ignored", func(t *testing.T) {
		store := newMemStore()
		svc := webhook.NewService(store, zap.NewNop())
		n := sentNotification(store, "SM103")

		assert.NoError(t, svc.Reconcile(ctx, webhook.Event{ProviderMessageID: "SM103", RawStatus: "delivered"}))
		assert.NoError(t, svc.Reconcile(ctx, webhook.Event{ProviderMessageID: "SM103", RawStatus: "failed"}))

		assert.Equal(t, domain.StatusDelivered, store.get(n.ID).Status)
	})

	t.Run("Acceptance status promotes pending only", func(t *testing.T) {
		store := newMemStore()
		svc := webhook.NewService(store, zap.NewNop())

		pmid := "SM104"
		n := &domain.Notification{
			ID:                uuid.New(),
			OrganizationID:    uuid.New(),
			Status:            domain.StatusPending,
			ProviderMessageID: &pmid,
			CreatedAt:         time.Now().UTC(),
		}
		store.addNotification(n)

		assert.NoError(t, svc.Reconcile(ctx, webhook.Event{ProviderMessageID: "SM104", RawStatus: "queued"}))

		stored := store.get(n.ID)
		assert.Equal(t, domain.StatusSent, stored.Status)
		assert.NotNil(t, stored.SentAt)
	})

	t.Run("Unknown provider message id is dropped", func(t *testing.T) {
		store := newMemStore()
		svc := webhook.NewService(store, zap.NewNop())

		err := svc.Reconcile(ctx, webhook.Event{ProviderMessageID: "SM-UNKNOWN", RawStatus: "delivered"})

		assert.NoError(t, err)
		assert.Empty(t, store.all())
	})

	t.Run("Empty provider message id is dropped", func(t *testing.T) {
		store := newMemStore()
		svc := webhook.NewService(store, zap.NewNop())

		assert.NoError(t, svc.Reconcile(ctx, webhook.Event{RawStatus: "delivered"}))
	})

	t.Run("Callbacks never touch retry count", func(t *testing.T) {
		store := newMemStore()
		svc := webhook.NewService(store, zap.NewNop())
		n := sentNotification(store, "SM105")

		assert.NoError(t, svc.Reconcile(ctx, webhook.Event{ProviderMessageID: "SM105", RawStatus: "sent"}))
		assert.NoError(t, svc.Reconcile(ctx, webhook.Event{ProviderMessageID: "SM105", RawStatus: "delivered"}))

		assert.Equal(t, 0, store.get(n.ID).RetryCount)
	})
}
