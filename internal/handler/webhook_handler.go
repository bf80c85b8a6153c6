package handler

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"rentas-backend/internal/service/webhook"
)

// WebhookHandler owns the inbound delivery-status endpoints, one per
// provider family. Each parses its vendor's native payload into the
// canonical event right at the boundary, and every endpoint answers success
// regardless of whether the callback matched anything: a non-2xx response
// only earns us a vendor-side retry storm.
type WebhookHandler struct {
	webhookSvc webhook.Service
	log        *zap.Logger
}

func NewWebhookHandler(webhookSvc webhook.Service, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{webhookSvc: webhookSvc, log: log}
}

// Twilio posts application/x-www-form-urlencoded status callbacks.
func (h *WebhookHandler) Twilio(c *fiber.Ctx) error {
	ev := webhook.Event{
		ProviderMessageID: c.FormValue("MessageSid"),
		RawStatus:         c.FormValue("MessageStatus"),
	}

	if err := h.webhookSvc.Reconcile(c.Context(), ev); err != nil {
		h.log.Error("twilio webhook reconciliation failed", zap.Error(err))
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

type snsCallback struct {
	Notification struct {
		MessageID string `json:"messageId"`
	} `json:"notification"`
	Status string `json:"status"`
}

// SNS posts JSON delivery receipts.
func (h *WebhookHandler) SNS(c *fiber.Ctx) error {
	var payload snsCallback
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		h.log.Warn("unparseable sns webhook payload", zap.Error(err))
		return c.JSON(fiber.Map{"status": "ok"})
	}

	ev := webhook.Event{
		ProviderMessageID: payload.Notification.MessageID,
		RawStatus:         payload.Status,
	}

	if err := h.webhookSvc.Reconcile(c.Context(), ev); err != nil {
		h.log.Error("sns webhook reconciliation failed", zap.Error(err))
	}

	return c.JSON(fiber.Map{"status": "ok"})
}
