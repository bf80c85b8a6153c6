package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"rentas-backend/internal/domain"
)

func TestTwilioProvider_Unconfigured(t *testing.T) {
	p := NewTwilioProvider("", "", "+15005550006", "+15005550007")

	assert.False(t, p.IsConfigured())
	assert.True(t, p.SupportsWhatsApp())

	_, err := p.SendSMS(context.Background(), "+5215512345678", "hola")
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)

	_, err = p.SendWhatsApp(context.Background(), "+5215512345678", "hola")
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
}

func TestTwilioProvider_MissingSenderIdentity(t *testing.T) {
	p := NewTwilioProvider("AC123", "token", "", "")

	assert.False(t, p.IsConfigured())

	_, err := p.SendWhatsApp(context.Background(), "+5215512345678", "hola")
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
}

func TestSNSProvider_Unconfigured(t *testing.T) {
	p, err := NewSNSProvider(context.Background(), "", "")
	assert.NoError(t, err)
	assert.False(t, p.IsConfigured())

	_, err = p.SendSMS(context.Background(), "+5215512345678", "hola")
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
}

func TestSNSProvider_WhatsAppUnsupported(t *testing.T) {
	p, err := NewSNSProvider(context.Background(), "", "")
	assert.NoError(t, err)
	assert.False(t, p.SupportsWhatsApp())

	_, err = p.SendWhatsApp(context.Background(), "+5215512345678", "hola")
	assert.ErrorIs(t, err, domain.ErrUnsupportedChannel)
}

func TestRegistry_ForChannel(t *testing.T) {
	smsOnly, _ := NewSNSProvider(context.Background(), "", "")
	both := NewTwilioProvider("", "", "+15005550006", "+15005550007")

	reg := NewRegistry(smsOnly, both)

	p, err := reg.ForChannel(domain.ChannelSMS)
	assert.NoError(t, err)
	assert.Equal(t, "sns", p.Name())

	p, err = reg.ForChannel(domain.ChannelWhatsApp)
	assert.NoError(t, err)
	assert.Equal(t, "twilio", p.Name())

	_, err = reg.ForChannel(domain.ChannelEmail)
	assert.ErrorIs(t, err, domain.ErrUnsupportedChannel)
}

func TestRegistry_WhatsAppThroughSMSOnlyProvider(t *testing.T) {
	smsOnly, _ := NewSNSProvider(context.Background(), "", "")

	reg := NewRegistry(smsOnly, smsOnly)

	_, err := reg.ForChannel(domain.ChannelWhatsApp)
	assert.ErrorIs(t, err, domain.ErrUnsupportedChannel)
}
