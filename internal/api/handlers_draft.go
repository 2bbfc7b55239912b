package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/moments/internal/models"
	"github.com/terraincognita07/moments/internal/services"
)

func (handler *Handler) GetDraft(c *fiber.Ctx) error {
	drafts := handler.sessionDrafts(currentSessionID(c))

	draft, hasDraft := drafts.LoadDraft()
	savedID, hasSavedID := drafts.LoadSavedMomentID()
	if !hasDraft && !hasSavedID {
		return apiError(c, fiber.StatusNotFound, services.FailureNoDraft)
	}

	body := fiber.Map{"draft": nil, "confirmation": nil, "savedMomentId": nil}
	if hasDraft {
		body["draft"] = draft
	}
	if confirmation, ok := drafts.LoadConfirmation(); ok {
		body["confirmation"] = confirmation
	}
	if hasSavedID {
		body["savedMomentId"] = savedID
	}
	return c.JSON(body)
}

func (handler *Handler) SaveDraft(c *fiber.Ctx) error {
	input := draftInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, services.FailureInvalidInput)
	}
	if strings.TrimSpace(input.PhotoDataURL) == "" || strings.TrimSpace(input.PhotoType) == "" {
		return apiError(c, fiber.StatusBadRequest, services.FailureInvalidInput)
	}

	drafts := handler.sessionDrafts(currentSessionID(c))
	// A new capture replaces whatever was in flight.
	if err := drafts.Clear(); err != nil {
		return handler.storeError(c, err)
	}
	draft := models.MomentDraft{
		PhotoDataURL: input.PhotoDataURL,
		PhotoType:    input.PhotoType,
		Timestamp:    input.Timestamp,
	}
	if err := drafts.SaveDraft(draft); err != nil {
		return handler.storeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"draft": draft})
}

func (handler *Handler) DiscardDraft(c *fiber.Ctx) error {
	if err := handler.captureFlow.Retake(handler.sessionDrafts(currentSessionID(c))); err != nil {
		return handler.storeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) ConfirmDraft(c *fiber.Ctx) error {
	confirmation := models.MomentConfirmation{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&confirmation); err != nil {
			return apiError(c, fiber.StatusBadRequest, services.FailureInvalidInput)
		}
	}

	moment, err := handler.captureFlow.Confirm(handler.sessionDrafts(currentSessionID(c)), confirmation)
	if err != nil {
		return handler.storeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(moment)
}

func (handler *Handler) CompleteFeelingCheck(c *fiber.Ctx) error {
	input := feelingInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, services.FailureInvalidInput)
	}

	moment, err := handler.captureFlow.CompleteFeelingCheck(
		handler.sessionDrafts(currentSessionID(c)),
		models.Feeling(input.Feeling),
	)
	if err != nil {
		return handler.storeError(c, err)
	}
	return c.JSON(moment)
}
