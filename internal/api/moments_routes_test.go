package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/terraincognita07/moments/internal/models"
	"github.com/terraincognita07/moments/internal/services"
)

func photoPayload(id int64, timestamp int64) models.PhotoMoment {
	return models.PhotoMoment{
		ID:        id,
		Data:      fmt.Sprintf("data:image/jpeg;base64,%d", id),
		Timestamp: timestamp,
		Type:      "image/jpeg",
		Who:       "Family",
	}
}

func TestMomentRoutesCapacityAndNavigation(t *testing.T) {
	app, _ := newTestApp(t)
	client := newTestClient(t, app)

	for i := int64(1); i <= services.MaxPhotoMoments; i++ {
		client.expectStatus(http.MethodPost, "/api/moments", photoPayload(i, i*100), http.StatusCreated)
	}
	payload := client.expectStatus(http.MethodPost, "/api/moments", photoPayload(11, 1100), http.StatusInsufficientStorage)
	if kind := readAPIError(t, payload); kind != services.FailureStorageFull {
		t.Fatalf("expected storage-full, got %q", kind)
	}

	payload = client.expectStatus(http.MethodPost, "/api/moments", photoPayload(0, 1), http.StatusBadRequest)
	if kind := readAPIError(t, payload); kind != services.FailureInvalidInput {
		t.Fatalf("expected invalid-input, got %q", kind)
	}

	view := struct {
		Moment     models.PhotoMoment `json:"moment"`
		PreviousID *int64             `json:"previousId"`
		NextID     *int64             `json:"nextId"`
	}{}
	decodeJSON(t, client.expectStatus(http.MethodGet, "/api/moments/5", nil, http.StatusOK), &view)
	if view.PreviousID == nil || *view.PreviousID != 4 {
		t.Fatalf("expected previous id 4, got %v", view.PreviousID)
	}
	if view.NextID == nil || *view.NextID != 6 {
		t.Fatalf("expected next id 6, got %v", view.NextID)
	}

	decodeJSON(t, client.expectStatus(http.MethodGet, "/api/moments/10", nil, http.StatusOK), &view)
	if view.NextID != nil {
		t.Fatalf("expected newest moment to have no next id, got %d", *view.NextID)
	}

	recent := struct {
		Moment *models.PhotoMoment `json:"moment"`
	}{}
	decodeJSON(t, client.expectStatus(http.MethodGet, "/api/moments/recent", nil, http.StatusOK), &recent)
	if recent.Moment == nil || recent.Moment.ID != 10 {
		t.Fatalf("expected most recent moment 10, got %+v", recent.Moment)
	}

	client.expectStatus(http.MethodGet, "/api/moments/abc", nil, http.StatusBadRequest)
	client.expectStatus(http.MethodGet, "/api/moments/999", nil, http.StatusNotFound)
}

func TestMomentRoutesPatchKeepsOtherFields(t *testing.T) {
	app, _ := newTestApp(t)
	client := newTestClient(t, app)
	client.expectStatus(http.MethodPost, "/api/moments", photoPayload(42, 100), http.StatusCreated)

	updated := models.PhotoMoment{}
	decodeJSON(t, client.expectStatus(http.MethodPatch, "/api/moments/42", map[string]string{"feeling": "Good"}, http.StatusOK), &updated)
	if updated.Feeling != models.FeelingGood || updated.Who != "Family" {
		t.Fatalf("expected feeling Good and who Family, got %+v", updated)
	}

	client.expectStatus(http.MethodPatch, "/api/moments/42", map[string]string{}, http.StatusBadRequest)
	payload := client.expectStatus(http.MethodPatch, "/api/moments/7", map[string]string{"who": "Solo"}, http.StatusNotFound)
	if kind := readAPIError(t, payload); kind != services.FailureNotFound {
		t.Fatalf("expected not-found, got %q", kind)
	}

	deleted := struct {
		Deleted bool `json:"deleted"`
	}{}
	decodeJSON(t, client.expectStatus(http.MethodDelete, "/api/moments/42", nil, http.StatusOK), &deleted)
	if !deleted.Deleted {
		t.Fatal("expected delete to report true")
	}
}

func TestMomentRoutesNormalizeFeelingAndRejectItOnCreate(t *testing.T) {
	app, _ := newTestApp(t)
	client := newTestClient(t, app)

	withFeeling := photoPayload(7, 100)
	withFeeling.Feeling = models.Feeling("GOOD")
	payload := client.expectStatus(http.MethodPost, "/api/moments", withFeeling, http.StatusBadRequest)
	if kind := readAPIError(t, payload); kind != services.FailureInvalidInput {
		t.Fatalf("expected invalid-input, got %q", kind)
	}

	client.expectStatus(http.MethodPost, "/api/moments", photoPayload(7, 100), http.StatusCreated)
	client.expectStatus(http.MethodPatch, "/api/moments/7", map[string]string{"feeling": "good"}, http.StatusOK)

	view := MomentView{}
	decodeJSON(t, client.expectStatus(http.MethodGet, "/api/moments/7", nil, http.StatusOK), &view)
	if view.Moment.Feeling != models.FeelingGood {
		t.Fatalf("expected stored feeling %q, got %q", models.FeelingGood, view.Moment.Feeling)
	}
}

func TestMomentRoutesMapQuotaToStorageFull(t *testing.T) {
	app, _ := newTestAppWithQuota(t, 64)
	client := newTestClient(t, app)

	payload := client.expectStatus(http.MethodPost, "/api/moments", photoPayload(1, 100), http.StatusInsufficientStorage)
	if kind := readAPIError(t, payload); kind != services.FailureStorageFull {
		t.Fatalf("expected storage-full, got %q", kind)
	}
}
