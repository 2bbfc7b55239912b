package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/moments/internal/i18n"
)

const (
	sessionCookieName  = "moments_session"
	languageCookieName = "moments_lang"
	contextSessionKey  = "session_id"
	contextLanguageKey = "current_language"
	contextMessagesKey = "current_messages"
)

func currentSessionID(c *fiber.Ctx) string {
	sessionID, _ := c.Locals(contextSessionKey).(string)
	return sessionID
}

func currentLanguage(c *fiber.Ctx) string {
	language, ok := c.Locals(contextLanguageKey).(string)
	if !ok || language == "" {
		return i18n.LangEN
	}
	return language
}
