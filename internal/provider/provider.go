package provider

import "context"

// Provider is the narrow contract every messaging vendor is wrapped behind.
// Implementations must not perform network I/O when unconfigured; send
// operations return domain.ErrProviderUnavailable instead.
type Provider interface {
	// Name is a stable identifier used for logging and selection.
	Name() string
	IsConfigured() bool
	SupportsWhatsApp() bool
	SendSMS(ctx context.Context, phone, message string) (string, error)
	SendWhatsApp(ctx context.Context, phone, message string) (string, error)
}
