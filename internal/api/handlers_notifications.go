package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/moments/internal/models"
)

func (handler *Handler) ListNotifications(c *fiber.Ctx) error {
	language := currentLanguage(c)
	notifications := handler.notifications.SortedByRecency()
	for i := range notifications {
		notifications[i] = handler.localizeNotification(language, notifications[i])
	}
	return c.JSON(fiber.Map{
		"notifications": notifications,
		"unreadCount":   handler.notifications.UnreadCount(),
	})
}

func (handler *Handler) MarkNotificationRead(c *fiber.Ctx) error {
	if err := handler.notifications.MarkRead(c.Params("id")); err != nil {
		return handler.storeError(c, err)
	}
	return c.JSON(fiber.Map{"unreadCount": handler.notifications.UnreadCount()})
}

func (handler *Handler) MarkAllNotificationsRead(c *fiber.Ctx) error {
	if err := handler.notifications.MarkAllRead(); err != nil {
		return handler.storeError(c, err)
	}
	return c.JSON(fiber.Map{"unreadCount": 0})
}

// VisitVault records the first vault visit. notification is null on every
// later visit.
func (handler *Handler) VisitVault(c *fiber.Ctx) error {
	created, err := handler.notifications.Add(models.NotificationFirstVaultVisit)
	if err != nil {
		return handler.storeError(c, err)
	}
	if created == nil {
		return c.JSON(fiber.Map{"notification": nil})
	}
	localized := handler.localizeNotification(currentLanguage(c), *created)
	return c.JSON(fiber.Map{"notification": localized})
}

func (handler *Handler) localizeNotification(language string, notification models.LocalNotification) models.LocalNotification {
	notification.Message = handler.i18n.NotificationMessage(language, string(notification.Type), notification.Message)
	return notification
}
