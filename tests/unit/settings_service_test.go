package unit_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"rentas-backend/internal/domain"
	"rentas-backend/internal/service/settings"
)

func TestSettingsService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid update", func(t *testing.T) {
		store := newMemStore()
		svc := settings.NewService(store)

		profile := newProfile(100)
		store.addProfile(profile)

		got, err := svc.Update(ctx, profile.OrganizationID, settings.UpdateInput{
			NotificationEnabled: false,
			NotificationChannel: domain.ChannelWhatsApp,
			AdminNotifications:  true,
		})

		assert.NoError(t, err)
		assert.False(t, got.NotificationEnabled)
		assert.Equal(t, domain.ChannelWhatsApp, got.NotificationChannel)
		assert.True(t, got.AdminNotifications)
	})

	t.Run("Invalid channel rejected", func(t *testing.T) {
		store := newMemStore()
		svc := settings.NewService(store)

		profile := newProfile(100)
		store.addProfile(profile)

		got, err := svc.Update(ctx, profile.OrganizationID, settings.UpdateInput{
			NotificationEnabled: true,
			NotificationChannel: "CARRIER_PIGEON",
		})

		assert.Error(t, err)
		assert.Nil(t, got)

		unchanged, _ := svc.Get(ctx, profile.OrganizationID)
		assert.Equal(t, domain.ChannelSMS, unchanged.NotificationChannel)
	})

	t.Run("Counter and limit untouched", func(t *testing.T) {
		store := newMemStore()
		svc := settings.NewService(store)

		profile := newProfile(100)
		profile.NotificationsSentThisMonth = 42
		store.addProfile(profile)

		got, err := svc.Update(ctx, profile.OrganizationID, settings.UpdateInput{
			NotificationEnabled: true,
			NotificationChannel: domain.ChannelBoth,
		})

		assert.NoError(t, err)
		assert.Equal(t, 42, got.NotificationsSentThisMonth)
		assert.Equal(t, 100, got.NotificationLimit)
	})

	t.Run("Unknown organization", func(t *testing.T) {
		svc := settings.NewService(newMemStore())

		_, err := svc.Update(ctx, uuid.New(), settings.UpdateInput{NotificationChannel: domain.ChannelSMS})
		assert.ErrorIs(t, err, domain.ErrOrganizationNotFound)
	})
}
