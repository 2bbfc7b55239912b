package models

const (
	WithWhoFamily  = "Family"
	WithWhoFriends = "Friends"
	WithWhoPartner = "Partner"
	WithWhoSolo    = "Solo"
	WithWhoCustom  = "Custom"
)

// PlannedMoment is a future-dated intention. At most one exists per Date.
type PlannedMoment struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Title     string `json:"title,omitempty"`
	WithWho   string `json:"withWho,omitempty"`
	Color     string `json:"color"`
	CreatedAt int64  `json:"createdAt"`
}

// PlannedMomentInput is a PlannedMoment before the store assigns ID,
// CreatedAt and Color.
type PlannedMomentInput struct {
	Date    string `json:"date"`
	Time    string `json:"time"`
	Title   string `json:"title,omitempty"`
	WithWho string `json:"withWho,omitempty"`
}

func WithWhoOptions() []string {
	return []string{WithWhoFamily, WithWhoFriends, WithWhoPartner, WithWhoSolo, WithWhoCustom}
}

func IsWithWho(value string) bool {
	for _, option := range WithWhoOptions() {
		if option == value {
			return true
		}
	}
	return false
}
