package provider

import (
	"rentas-backend/internal/domain"
)

// Registry fixes the channel-to-provider mapping once at wiring time. The
// dispatch service resolves through it instead of choosing per message.
type Registry struct {
	sms      Provider
	whatsapp Provider
}

func NewRegistry(sms, whatsapp Provider) *Registry {
	return &Registry{sms: sms, whatsapp: whatsapp}
}

func (r *Registry) ForChannel(channel domain.NotificationChannel) (Provider, error) {
	switch channel {
	case domain.ChannelSMS:
		if r.sms == nil {
			return nil, domain.ErrProviderUnavailable
		}
		return r.sms, nil
	case domain.ChannelWhatsApp:
		if r.whatsapp == nil {
			return nil, domain.ErrProviderUnavailable
		}
		if !r.whatsapp.SupportsWhatsApp() {
			return nil, domain.ErrUnsupportedChannel
		}
		return r.whatsapp, nil
	default:
		// EMAIL is declared on the notification model but not wired to
		// any provider.
		return nil, domain.ErrUnsupportedChannel
	}
}
