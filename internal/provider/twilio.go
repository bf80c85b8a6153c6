package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"rentas-backend/internal/domain"
)

// TwilioProvider sends over both channels using two distinct sender
// identities: a plain number for SMS and a whatsapp:-prefixed one for
// WhatsApp.
type TwilioProvider struct {
	client       *twilio.RestClient
	smsFrom      string
	whatsappFrom string
}

func NewTwilioProvider(accountSID, authToken, smsFrom, whatsappFrom string) *TwilioProvider {
	p := &TwilioProvider{
		smsFrom:      smsFrom,
		whatsappFrom: strings.TrimPrefix(whatsappFrom, "whatsapp:"),
	}
	if accountSID == "" || authToken == "" {
		return p
	}
	p.client = twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return p
}

func (p *TwilioProvider) Name() string {
	return "twilio"
}

func (p *TwilioProvider) IsConfigured() bool {
	return p.client != nil && p.smsFrom != ""
}

func (p *TwilioProvider) SupportsWhatsApp() bool {
	return true
}

func (p *TwilioProvider) SendSMS(ctx context.Context, phone, message string) (string, error) {
	if !p.IsConfigured() {
		return "", domain.ErrProviderUnavailable
	}
	return p.send(phone, p.smsFrom, message)
}

func (p *TwilioProvider) SendWhatsApp(ctx context.Context, phone, message string) (string, error) {
	if p.client == nil || p.whatsappFrom == "" {
		return "", domain.ErrProviderUnavailable
	}
	return p.send("whatsapp:"+phone, "whatsapp:"+p.whatsappFrom, message)
}

func (p *TwilioProvider) send(to, from, body string) (string, error) {
	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(body)

	resp, err := p.client.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("twilio send: %w", err)
	}
	if resp.Sid == nil || *resp.Sid == "" {
		return "", fmt.Errorf("twilio send: response missing message sid")
	}
	return *resp.Sid, nil
}
