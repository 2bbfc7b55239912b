package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/moments/internal/config"
	"github.com/terraincognita07/moments/internal/events"
)

func NewHandler(options Options) (*Handler, error) {
	if options.Durable == nil {
		return nil, errors.New("durable store is required")
	}
	if options.Sessions == nil {
		return nil, errors.New("session registry is required")
	}
	if options.I18n == nil {
		return nil, errors.New("i18n manager is required")
	}
	secret, err := config.ResolveSecretKey(options.SecretKey)
	if err != nil {
		return nil, err
	}
	if options.SessionTTL <= 0 {
		options.SessionTTL = defaultSessionTTL
	}
	if options.Location == nil {
		options.Location = time.UTC
	}
	if options.Hub == nil {
		options.Hub = events.NewHub()
	}

	signingKey, err := deriveKey([]byte(secret), sessionSigningKeyInfo)
	if err != nil {
		return nil, err
	}
	codec, err := newSecureCookieCodec([]byte(secret))
	if err != nil {
		return nil, err
	}

	handler := &Handler{
		signingKey:     signingKey,
		cookieCodec:    codec,
		cookieSecure:   options.CookieSecure,
		sessionTTL:     options.SessionTTL,
		location:       options.Location,
		i18n:           options.I18n,
		logger:         options.Logger.With().Str("component", "api").Logger(),
		durable:        options.Durable,
		hub:            options.Hub,
		sessions:       options.Sessions,
		sessionLimiter: newAttemptLimiter(),
		streamsDone:    make(chan struct{}),
	}
	return handler.withDependencies(), nil
}

// Close ends every open event stream so the server can shut down.
func (handler *Handler) Close() {
	handler.closeOnce.Do(func() {
		close(handler.streamsDone)
	})
}
