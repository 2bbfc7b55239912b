package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/terraincognita07/moments/internal/models"
)

// CaptureFlow moves a session draft through confirmation and the feeling
// check into the photo vault.
type CaptureFlow struct {
	photos   *PhotoMomentStore
	notifier Notifier
	logger   zerolog.Logger
	now      func() time.Time
}

func NewCaptureFlow(photos *PhotoMomentStore, notifier Notifier, logger zerolog.Logger) *CaptureFlow {
	return &CaptureFlow{
		photos:   photos,
		notifier: notifier,
		logger:   logger.With().Str("component", "capture_flow").Logger(),
		now:      time.Now,
	}
}

// Confirm saves the session draft as a photo moment annotated with
// confirmation and remembers its id for the feeling check. Confirming the same
// draft again returns the saved moment unchanged.
func (flow *CaptureFlow) Confirm(drafts *DraftStore, confirmation models.MomentConfirmation) (models.PhotoMoment, error) {
	draft, ok := drafts.LoadDraft()
	if !ok || strings.TrimSpace(draft.PhotoDataURL) == "" {
		return models.PhotoMoment{}, ErrNoDraft
	}

	// A repeated confirm of the same draft returns the moment it already saved.
	if savedID, ok := drafts.LoadSavedMomentID(); ok {
		if existing, found := flow.photos.GetByID(savedID); found {
			return existing, nil
		}
	}

	confirmation.Who = strings.TrimSpace(confirmation.Who)
	confirmation.Reflection = strings.TrimSpace(confirmation.Reflection)
	if err := drafts.SaveConfirmation(confirmation); err != nil {
		return models.PhotoMoment{}, err
	}

	timestamp := draft.Timestamp
	if timestamp == 0 {
		timestamp = flow.now().UnixMilli()
	}
	photo := models.PhotoMoment{
		ID:         flow.nextPhotoID(),
		Data:       draft.PhotoDataURL,
		Timestamp:  timestamp,
		Type:       draft.PhotoType,
		Who:        confirmation.Who,
		Reflection: confirmation.Reflection,
	}
	if err := flow.photos.Save(photo); err != nil {
		return models.PhotoMoment{}, err
	}
	if err := drafts.SaveSavedMomentID(photo.ID); err != nil {
		flow.logger.Warn().Err(err).Int64("id", photo.ID).Msg("saved moment id not recorded")
	}
	return photo, nil
}

// CompleteFeelingCheck attaches feeling to the moment saved by Confirm and
// clears the session draft.
func (flow *CaptureFlow) CompleteFeelingCheck(drafts *DraftStore, feeling models.Feeling) (models.PhotoMoment, error) {
	id, ok := drafts.LoadSavedMomentID()
	if !ok {
		return models.PhotoMoment{}, ErrNoDraft
	}
	parsed, ok := models.ParseFeeling(string(feeling))
	if !ok {
		return models.PhotoMoment{}, fmt.Errorf("%w: unknown feeling %q", ErrInvalidInput, feeling)
	}

	updated, err := flow.photos.Update(id, models.PhotoMomentPatch{Feeling: &parsed})
	if err != nil {
		return models.PhotoMoment{}, err
	}
	if err := drafts.Clear(); err != nil {
		flow.logger.Warn().Err(err).Msg("clear draft failed")
	}
	notifyOnce(flow.notifier, models.NotificationFirstFeelingCheck, flow.logger)
	return updated, nil
}

func (flow *CaptureFlow) Retake(drafts *DraftStore) error {
	return drafts.Clear()
}

func (flow *CaptureFlow) nextPhotoID() int64 {
	id := flow.now().UnixMilli()
	for _, existing := range flow.photos.LoadAll() {
		if existing.ID >= id {
			id = existing.ID + 1
		}
	}
	return id
}
