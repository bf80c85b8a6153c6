package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"rentas-backend/internal/domain"
	"rentas-backend/internal/middleware"
	"rentas-backend/internal/service/dispatch"
	"rentas-backend/internal/service/settings"
	"rentas-backend/internal/service/stats"
)

type NotificationHandler struct {
	settingsSvc settings.Service
	statsSvc    stats.Service
	dispatchSvc dispatch.Service
}

func NewNotificationHandler(settingsSvc settings.Service, statsSvc stats.Service, dispatchSvc dispatch.Service) *NotificationHandler {
	return &NotificationHandler{
		settingsSvc: settingsSvc,
		statsSvc:    statsSvc,
		dispatchSvc: dispatchSvc,
	}
}

func (h *NotificationHandler) GetSettings(c *fiber.Ctx) error {
	orgID := middleware.GetOrganizationID(c)

	profile, err := h.settingsSvc.Get(c.Context(), orgID)
	if err != nil {
		if errors.Is(err, domain.ErrOrganizationNotFound) {
			return middleware.NotFound("Organization not found")
		}
		return err
	}
	return c.JSON(profile)
}

func (h *NotificationHandler) UpdateSettings(c *fiber.Ctx) error {
	orgID := middleware.GetOrganizationID(c)

	var input settings.UpdateInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	profile, err := h.settingsSvc.Update(c.Context(), orgID, input)
	if err != nil {
		if errors.Is(err, domain.ErrOrganizationNotFound) {
			return middleware.NotFound("Organization not found")
		}
		return middleware.BadRequest(err.Error())
	}
	return c.JSON(profile)
}

func (h *NotificationHandler) GetStats(c *fiber.Ctx) error {
	orgID := middleware.GetOrganizationID(c)

	result, err := h.statsSvc.GetStats(c.Context(), orgID)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	orgID := middleware.GetOrganizationID(c)

	var params domain.PaginationParams
	if err := c.QueryParser(&params); err != nil {
		return middleware.BadRequest("Invalid pagination parameters")
	}
	params.Validate()

	result, err := h.statsSvc.List(c.Context(), orgID, params)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

type testNotificationRequest struct {
	Phone   string                     `json:"phone"`
	Channel domain.NotificationChannel `json:"channel"`
	Message string                     `json:"message"`
}

// SendTest goes through the identical dispatch path as the reminder scan:
// quota is consumed and the attempt is audited.
func (h *NotificationHandler) SendTest(c *fiber.Ctx) error {
	orgID := middleware.GetOrganizationID(c)

	var req testNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if req.Phone == "" {
		return middleware.BadRequest("phone is required")
	}

	n, err := h.dispatchSvc.SendTest(c.Context(), orgID, req.Phone, req.Channel, req.Message, middleware.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotificationsDisabled):
			return middleware.Conflict("Notifications are disabled for this organization")
		case errors.Is(err, domain.ErrQuotaExceeded):
			return middleware.TooManyRequests("Monthly notification quota exceeded")
		case errors.Is(err, domain.ErrUnsupportedChannel):
			return middleware.BadRequest("Requested channel is not supported")
		case errors.Is(err, domain.ErrProviderUnavailable):
			return middleware.BadGateway("Messaging provider is not configured")
		case errors.Is(err, domain.ErrOrganizationNotFound):
			return middleware.NotFound("Organization not found")
		default:
			return middleware.BadGateway("Provider rejected the message: " + err.Error())
		}
	}

	return c.Status(fiber.StatusCreated).JSON(n)
}
