package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/moments/internal/models"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) ListFeelings(c *fiber.Ctx) error {
	language := currentLanguage(c)
	options := models.FeelingOptions()
	views := make([]FeelingView, 0, len(options))
	for _, option := range options {
		views = append(views, FeelingView{
			Value: string(option.Value),
			Label: handler.i18n.FeelingLabel(language, string(option.Value)),
			Emoji: option.Emoji,
		})
	}
	return c.JSON(fiber.Map{"feelings": views})
}
