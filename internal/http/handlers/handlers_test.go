package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"busdepot/internal/domain"
	"busdepot/internal/domain/models"
	"busdepot/internal/repositories"
	"busdepot/internal/services"
	"busdepot/web"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore accepts nothing and finds nothing, like a dropped connection.
type failingStore struct {
	*repositories.MemoryStore
}

var errDown = errors.New("connection refused")

func (failingStore) CreateBus(context.Context, models.Bus) (models.Bus, error) {
	return models.Bus{}, domain.InternalError{Op: "insert bus", Err: errDown}
}

func (failingStore) CreateTrip(context.Context, models.Trip) (models.Trip, error) {
	return models.Trip{}, domain.InternalError{Op: "insert trip", Err: errDown}
}

func (failingStore) FindBus(context.Context, string) (models.Bus, error) {
	return models.Bus{}, domain.InternalError{Op: "find bus", Err: errDown}
}

func (failingStore) Ping(context.Context) error { return errDown }

func newTestEngine(t *testing.T, store repositories.RecordStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	UseFormFieldNames()

	views, err := web.Templates()
	require.NoError(t, err)

	records := services.NewRecordService(store, domain.MatchLegacy, time.Second)
	h := New(records, services.NewReceiptService("test-secret"), services.NewDocsService(records))

	r := gin.New()
	r.SetHTMLTemplate(views)
	r.POST("/submit-registration", h.SubmitBus)
	r.POST("/submit", h.SubmitDriver)
	r.POST("/submit-trip", h.SubmitTrip)
	r.POST("/get-bus-details", h.GetBusDetails)
	r.GET("/thanku", h.ThankYou)
	r.GET("/bus-details/:busId/card.pdf", h.BusCard)
	r.GET("/store-check", h.StoreCheck)
	return r
}

func postForm(r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestSubmitBusRedirectsWithReceipt(t *testing.T) {
	r := newTestEngine(t, repositories.NewMemoryStore())

	w := postForm(r, "/submit-registration", url.Values{"busId": {"B7"}, "noOfSeats": {"40"}})
	require.Equal(t, http.StatusFound, w.Code)

	loc := w.Header().Get("Location")
	assert.True(t, strings.HasPrefix(loc, "/thanku?receipt="), loc)

	page := get(r, loc)
	assert.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "Bus B7 registered.")
}

func TestThankYouIgnoresBadReceipt(t *testing.T) {
	r := newTestEngine(t, repositories.NewMemoryStore())

	w := get(r, "/thanku?receipt=not-a-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Your registration has been saved.")
	assert.NotContains(t, w.Body.String(), "registered.")
}

func TestSubmitBusRejectsMissingKey(t *testing.T) {
	store := repositories.NewMemoryStore()
	r := newTestEngine(t, store)

	w := postForm(r, "/submit-registration", url.Values{"depo": {"D1"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "busId: is required")

	buses, _, _ := store.Counts()
	assert.Zero(t, buses)
}

func TestSubmitDriverRejectsNonNumeric(t *testing.T) {
	store := repositories.NewMemoryStore()
	r := newTestEngine(t, store)

	w := postForm(r, "/submit", url.Values{"drivername": {"Ann"}, "Age": {"forty"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not a whole number")

	_, drivers, _ := store.Counts()
	assert.Zero(t, drivers)
}

func TestSubmitTripRendersSavedTrip(t *testing.T) {
	r := newTestEngine(t, repositories.NewMemoryStore())

	w := postForm(r, "/submit-trip", url.Values{
		"tripno": {"12"}, "date": {"2026-10-01"}, "busno": {"7"},
		"to": {"Pune"}, "fro": {"Mumbai"}, "noofseats": {"30"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<td>2026-10-01</td>")
	assert.Contains(t, w.Body.String(), "<td>Pune</td>")
}

func TestStoreFailures(t *testing.T) {
	r := newTestEngine(t, failingStore{repositories.NewMemoryStore()})

	w := postForm(r, "/submit-registration", url.Values{"busId": {"B1"}})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Error saving bus registration", w.Body.String())

	w = postForm(r, "/submit-trip", url.Values{"tripno": {"1"}})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Error saving trip registration", w.Body.String())

	w = postForm(r, "/get-bus-details", url.Values{"busId": {"B1"}})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Error retrieving bus details")
	assert.Contains(t, w.Body.String(), `action="/get-bus-details"`)

	w = get(r, "/bus-details/B1/card.pdf")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = get(r, "/store-check")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "store unreachable")
}

func TestBusCardPDF(t *testing.T) {
	r := newTestEngine(t, repositories.NewMemoryStore())

	w := get(r, "/bus-details/B1/card.pdf")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Bus not found", w.Body.String())

	require.Equal(t, http.StatusFound, postForm(r, "/submit-registration", url.Values{"busId": {"B1"}}).Code)

	w = get(r, "/bus-details/B1/card.pdf")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="BUS_B1.pdf"`)
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

func TestBindingErrorFallback(t *testing.T) {
	verr := bindingError(errors.New("EOF"))
	assert.Equal(t, "invalid form data", verr.Error())
	assert.True(t, domain.IsValidation(verr))
}

func TestSubmitTripAcceptsTripNumberZero(t *testing.T) {
	store := repositories.NewMemoryStore()
	r := newTestEngine(t, store)

	w := postForm(r, "/submit-trip", url.Values{"tripno": {"0"}, "to": {"Pune"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<th>Trip No</th><td>0</td>")

	_, _, trips := store.Counts()
	assert.Equal(t, 1, trips)
}

func TestSubmitTripRequiresTripNumber(t *testing.T) {
	store := repositories.NewMemoryStore()
	r := newTestEngine(t, store)

	for _, form := range []url.Values{
		{"to": {"Pune"}},
		{"tripno": {" "}, "to": {"Pune"}},
	} {
		w := postForm(r, "/submit-trip", form)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "tripno: is required")
	}

	w := postForm(r, "/submit-trip", url.Values{"tripno": {"-3"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "tripno: must be at least 0")

	_, _, trips := store.Counts()
	assert.Zero(t, trips)
}
