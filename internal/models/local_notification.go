package models

type NotificationType string

const (
	NotificationFirstPlannedMoment NotificationType = "first-planned-moment"
	NotificationFirstPhotoMoment   NotificationType = "first-photo-moment"
	NotificationFirstProfileSave   NotificationType = "first-profile-save"
	NotificationFirstFeelingCheck  NotificationType = "first-feeling-check"
	NotificationFirstVaultVisit    NotificationType = "first-vault-visit"
)

type LocalNotification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	CreatedAt int64            `json:"createdAt"`
	Read      bool             `json:"read"`
}

var notificationMessages = map[NotificationType]string{
	NotificationFirstPlannedMoment: "🎉 Amazing! You just planned your first moment. This is where memories begin!",
	NotificationFirstPhotoMoment:   "📸 Yay! Your first moment is captured. You're building something beautiful!",
	NotificationFirstProfileSave:   "✨ Welcome aboard! Your profile is all set. Time to create some magic!",
	NotificationFirstFeelingCheck:  "💭 Love it! You shared how you felt. Every emotion matters!",
	NotificationFirstVaultVisit:    "🗂️ Hey there! This is your vault—where all your precious moments live!",
}

func NotificationTypes() []NotificationType {
	return []NotificationType{
		NotificationFirstPlannedMoment,
		NotificationFirstPhotoMoment,
		NotificationFirstProfileSave,
		NotificationFirstFeelingCheck,
		NotificationFirstVaultVisit,
	}
}

// NotificationMessage returns the static text for a notification type.
func NotificationMessage(notificationType NotificationType) (string, bool) {
	message, ok := notificationMessages[notificationType]
	return message, ok
}
