package models

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type UserProfile struct {
	ProfilePicture string       `json:"profilePicture,omitempty"`
	DisplayName    string       `json:"displayName,omitempty"`
	Location       string       `json:"location,omitempty"`
	InviteCode     string       `json:"inviteCode"`
	Coordinates    *Coordinates `json:"coordinates,omitempty"`
}
