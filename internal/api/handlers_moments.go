package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/moments/internal/models"
	"github.com/terraincognita07/moments/internal/services"
)

func (handler *Handler) ListMoments(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"moments": handler.photoMoments.GetAllSorted()})
}

func (handler *Handler) MostRecentMoment(c *fiber.Ctx) error {
	moment, ok := handler.photoMoments.GetMostRecent()
	if !ok {
		return c.JSON(fiber.Map{"moment": nil})
	}
	return c.JSON(fiber.Map{"moment": moment})
}

func (handler *Handler) GetMoment(c *fiber.Ctx) error {
	id, ok := parseMomentID(c)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, services.FailureInvalidInput)
	}
	moment, found := handler.photoMoments.GetByID(id)
	if !found {
		return apiError(c, fiber.StatusNotFound, services.FailureNotFound)
	}

	view := MomentView{Moment: moment}
	if previousID, ok := handler.photoMoments.GetPreviousID(id); ok {
		view.PreviousID = &previousID
	}
	if nextID, ok := handler.photoMoments.GetNextID(id); ok {
		view.NextID = &nextID
	}
	return c.JSON(view)
}

func (handler *Handler) CreateMoment(c *fiber.Ctx) error {
	photo := models.PhotoMoment{}
	if err := c.BodyParser(&photo); err != nil {
		return apiError(c, fiber.StatusBadRequest, services.FailureInvalidInput)
	}
	if err := handler.photoMoments.Save(photo); err != nil {
		return handler.storeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(photo)
}

func (handler *Handler) UpdateMoment(c *fiber.Ctx) error {
	id, ok := parseMomentID(c)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, services.FailureInvalidInput)
	}
	patch := models.PhotoMomentPatch{}
	if err := c.BodyParser(&patch); err != nil || patch.IsEmpty() {
		return apiError(c, fiber.StatusBadRequest, services.FailureInvalidInput)
	}

	updated, err := handler.photoMoments.Update(id, patch)
	if err != nil {
		return handler.storeError(c, err)
	}
	return c.JSON(updated)
}

func (handler *Handler) DeleteMoment(c *fiber.Ctx) error {
	id, ok := parseMomentID(c)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, services.FailureInvalidInput)
	}
	deleted, err := handler.photoMoments.Delete(id)
	if err != nil {
		return handler.storeError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}
