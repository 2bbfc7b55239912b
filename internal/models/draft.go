package models

// MomentDraft is the in-flight capture kept in the session namespace until
// the moment is confirmed.
type MomentDraft struct {
	PhotoDataURL string `json:"photoDataUrl"`
	PhotoType    string `json:"photoType"`
	Timestamp    int64  `json:"timestamp"`
}

type MomentConfirmation struct {
	Who        string `json:"who,omitempty"`
	Reflection string `json:"reflection,omitempty"`
}
