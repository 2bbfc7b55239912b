package api

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/terraincognita07/moments/internal/events"
	"github.com/terraincognita07/moments/internal/i18n"
	"github.com/terraincognita07/moments/internal/kv"
	"github.com/terraincognita07/moments/internal/models"
	"github.com/terraincognita07/moments/internal/services"
)

type Handler struct {
	signingKey   []byte
	cookieCodec  *secureCookieCodec
	cookieSecure bool
	sessionTTL   time.Duration
	location     *time.Location
	i18n         *i18n.Manager
	logger       zerolog.Logger

	durable  kv.Store
	hub      *events.Hub
	sessions *kv.Sessions

	sessionLimiter *attemptLimiter

	plannedMoments *services.PlannedMomentStore
	photoMoments   *services.PhotoMomentStore
	notifications  *services.LocalNotificationStore
	profiles       *services.ProfileStore
	captureFlow    *services.CaptureFlow

	streamsDone chan struct{}
	closeOnce   sync.Once
}

// Options wires a Handler to its storage. Durable is shared by every client;
// Sessions hands out one volatile namespace per session cookie. Location sets
// which calendar day is today and defaults to UTC.
type Options struct {
	Durable      kv.Store
	Hub          *events.Hub
	Sessions     *kv.Sessions
	SecretKey    string
	CookieSecure bool
	SessionTTL   time.Duration
	Location     *time.Location
	I18n         *i18n.Manager
	Logger       zerolog.Logger
}

type FeelingView struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Emoji string `json:"emoji"`
}

type MomentView struct {
	Moment     models.PhotoMoment `json:"moment"`
	PreviousID *int64             `json:"previousId"`
	NextID     *int64             `json:"nextId"`
}

const defaultSessionTTL = 30 * 24 * time.Hour

type sessionClaims struct {
	jwt.RegisteredClaims
}
