package services

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/terraincognita07/moments/internal/kv"
	"github.com/terraincognita07/moments/internal/models"
)

const (
	DraftKey         = "moment_draft"
	ConfirmationKey  = "moment_confirmation"
	SavedMomentIDKey = "saved_moment_id"
)

// DraftStore keeps one in-flight capture in a session-scoped namespace.
type DraftStore struct {
	store  kv.Store
	logger zerolog.Logger
}

func NewDraftStore(store kv.Store, logger zerolog.Logger) *DraftStore {
	return &DraftStore{
		store:  store,
		logger: logger.With().Str("store", "drafts").Logger(),
	}
}

func (drafts *DraftStore) SaveDraft(draft models.MomentDraft) error {
	return persistJSON(drafts.store, DraftKey, draft)
}

func (drafts *DraftStore) LoadDraft() (models.MomentDraft, bool) {
	draft := models.MomentDraft{}
	found, err := kv.GetJSON(drafts.store, DraftKey, &draft)
	if err != nil {
		drafts.logger.Warn().Err(err).Msg("unreadable draft ignored")
		return models.MomentDraft{}, false
	}
	return draft, found
}

func (drafts *DraftStore) SaveConfirmation(confirmation models.MomentConfirmation) error {
	return persistJSON(drafts.store, ConfirmationKey, confirmation)
}

func (drafts *DraftStore) LoadConfirmation() (models.MomentConfirmation, bool) {
	confirmation := models.MomentConfirmation{}
	found, err := kv.GetJSON(drafts.store, ConfirmationKey, &confirmation)
	if err != nil {
		drafts.logger.Warn().Err(err).Msg("unreadable confirmation ignored")
		return models.MomentConfirmation{}, false
	}
	return confirmation, found
}

func (drafts *DraftStore) SaveSavedMomentID(id int64) error {
	if err := drafts.store.Set(SavedMomentIDKey, strconv.FormatInt(id, 10)); err != nil {
		return persistFailure(err)
	}
	return nil
}

func (drafts *DraftStore) LoadSavedMomentID() (int64, bool) {
	raw, found, err := drafts.store.Get(SavedMomentIDKey)
	if err != nil || !found {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		drafts.logger.Warn().Err(err).Str("value", raw).Msg("unreadable saved moment id ignored")
		return 0, false
	}
	return id, true
}

// Clear removes the draft, its confirmation and the saved id together.
func (drafts *DraftStore) Clear() error {
	for _, key := range []string{DraftKey, ConfirmationKey, SavedMomentIDKey} {
		if err := drafts.store.Remove(key); err != nil {
			return persistFailure(err)
		}
	}
	return nil
}
