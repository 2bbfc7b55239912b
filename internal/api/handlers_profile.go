package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/moments/internal/models"
	"github.com/terraincognita07/moments/internal/services"
)

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	profile, err := handler.profiles.Load()
	if err != nil {
		return handler.storeError(c, err)
	}
	return c.JSON(profile)
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	profile := models.UserProfile{}
	if err := c.BodyParser(&profile); err != nil {
		return apiError(c, fiber.StatusBadRequest, services.FailureInvalidInput)
	}
	saved, err := handler.profiles.Save(profile)
	if err != nil {
		return handler.storeError(c, err)
	}
	return c.JSON(saved)
}
