package models

// PhotoMoment is a captured memory. ID is supplied by the caller (capture
// time in milliseconds) and Timestamp defines vault order.
type PhotoMoment struct {
	ID         int64   `json:"id"`
	Data       string  `json:"data"`
	Timestamp  int64   `json:"timestamp"`
	Type       string  `json:"type"`
	Who        string  `json:"who,omitempty"`
	Reflection string  `json:"reflection,omitempty"`
	Feeling    Feeling `json:"feeling,omitempty"`
}

// PhotoMomentPatch is a shallow update; nil fields are left untouched.
type PhotoMomentPatch struct {
	Data       *string  `json:"data,omitempty"`
	Timestamp  *int64   `json:"timestamp,omitempty"`
	Type       *string  `json:"type,omitempty"`
	Who        *string  `json:"who,omitempty"`
	Reflection *string  `json:"reflection,omitempty"`
	Feeling    *Feeling `json:"feeling,omitempty"`
}

func (patch PhotoMomentPatch) ApplyTo(moment PhotoMoment) PhotoMoment {
	if patch.Data != nil {
		moment.Data = *patch.Data
	}
	if patch.Timestamp != nil {
		moment.Timestamp = *patch.Timestamp
	}
	if patch.Type != nil {
		moment.Type = *patch.Type
	}
	if patch.Who != nil {
		moment.Who = *patch.Who
	}
	if patch.Reflection != nil {
		moment.Reflection = *patch.Reflection
	}
	if patch.Feeling != nil {
		moment.Feeling = *patch.Feeling
	}
	return moment
}

func (patch PhotoMomentPatch) IsEmpty() bool {
	return patch.Data == nil && patch.Timestamp == nil && patch.Type == nil &&
		patch.Who == nil && patch.Reflection == nil && patch.Feeling == nil
}
