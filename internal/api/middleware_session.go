package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionCookiePurpose = "session"

// SessionMiddleware binds every request to a session id carried in a sealed
// JWT cookie. Requests without a valid cookie start a fresh session.
func (handler *Handler) SessionMiddleware(c *fiber.Ctx) error {
	sessionID, err := handler.sessionFromCookie(c.Cookies(sessionCookieName))
	if err != nil {
		if !handler.sessionLimiter.allow(requestLimiterKey(c), time.Now(), sessionIssueLimit, sessionIssueWindow) {
			return apiError(c, fiber.StatusTooManyRequests, "too-many-sessions")
		}
		sessionID = uuid.NewString()
		if err := handler.setSessionCookie(c, sessionID); err != nil {
			handler.logger.Error().Err(err).Msg("issue session cookie failed")
			return apiError(c, fiber.StatusInternalServerError, "unknown")
		}
	}

	c.Locals(contextSessionKey, sessionID)
	return c.Next()
}

func (handler *Handler) sessionFromCookie(rawCookie string) (string, error) {
	if rawCookie == "" {
		return "", errors.New("missing session cookie")
	}
	tokenValue, err := handler.cookieCodec.open(sessionCookiePurpose, rawCookie)
	if err != nil {
		return "", err
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(string(tokenValue), claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.signingKey, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
		return "", errors.New("token expired")
	}

	sessionID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return "", fmt.Errorf("invalid session subject: %w", err)
	}
	return sessionID.String(), nil
}

func (handler *Handler) setSessionCookie(c *fiber.Ctx, sessionID string) error {
	token, err := handler.buildSessionToken(sessionID, handler.sessionTTL)
	if err != nil {
		return err
	}
	sealed, err := handler.cookieCodec.seal(sessionCookiePurpose, []byte(token))
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    sealed,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(handler.sessionTTL),
	})
	return nil
}

func (handler *Handler) buildSessionToken(sessionID string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	now := time.Now()

	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(handler.signingKey)
}
