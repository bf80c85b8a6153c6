package domain

import "errors"

var (
	// ErrNotificationsDisabled means the organization opted out. No
	// notification row is created for it.
	ErrNotificationsDisabled = errors.New("notifications are disabled for this organization")

	// ErrQuotaExceeded means the monthly budget is exhausted. The attempt
	// is still audited as a FAILED row.
	ErrQuotaExceeded = errors.New("monthly notification quota exceeded")

	// ErrUnsupportedChannel means the selected provider cannot send on the
	// requested channel.
	ErrUnsupportedChannel = errors.New("channel not supported by provider")

	// ErrProviderUnavailable means the provider has no credentials
	// configured. Send operations fail without attempting network I/O.
	ErrProviderUnavailable = errors.New("provider is not configured")

	ErrNotificationNotFound = errors.New("notification not found")
	ErrOrganizationNotFound = errors.New("organization not found")
)
