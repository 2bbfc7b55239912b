package api

import (
	"github.com/terraincognita07/moments/internal/services"
)

func (handler *Handler) withDependencies() *Handler {
	handler.notifications = services.NewLocalNotificationStore(
		handler.durable,
		handler.hub.Topic(services.LocalNotificationsKey),
		handler.logger,
	)
	handler.plannedMoments = services.NewPlannedMomentStore(
		handler.durable,
		handler.hub.Topic(services.PlannedMomentsKey),
		handler.notifications,
		handler.logger,
	)
	handler.photoMoments = services.NewPhotoMomentStore(
		handler.durable,
		handler.hub.Topic(services.PhotoMomentsKey),
		handler.notifications,
		handler.logger,
	)
	handler.profiles = services.NewProfileStore(
		handler.durable,
		handler.hub.Topic(services.ProfileKey),
		handler.notifications,
		handler.logger,
	)
	handler.captureFlow = services.NewCaptureFlow(handler.photoMoments, handler.notifications, handler.logger)
	return handler
}

// sessionDrafts returns the draft pipeline bound to the caller's session
// namespace.
func (handler *Handler) sessionDrafts(sessionID string) *services.DraftStore {
	return services.NewDraftStore(handler.sessions.Store(sessionID), handler.logger)
}
