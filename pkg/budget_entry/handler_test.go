package budget_entry

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/mattnotmatthew/budget-tracker-sub002/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) (*mux.Router, func()) {
	service, _, teardown := setup(t)
	clock := &utils.MockClock{FixedNow: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)}
	handler := NewHandler(service, clock)
	r := mux.NewRouter()
	r.HandleFunc("/api/entry", handler.ListEntries).Methods("GET")
	r.HandleFunc("/api/entry", handler.SaveEntry).Methods("PUT")
	r.HandleFunc("/api/entry/{entryId}", handler.DeleteEntry).Methods("DELETE")
	return r, teardown
}

func saveEntry(t *testing.T, r *mux.Router, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/api/entry", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_SaveAndList(t *testing.T) {
	r, teardown := setupRouter(t)
	defer teardown()

	// given
	w := saveEntry(t, r, `{"categoryId":"base-pay","year":2024,"month":3,"budgetAmount":1000,"actualAmount":0}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = saveEntry(t, r, `{"categoryId":"hosting","year":2024,"month":1,"budgetAmount":50,"reforecastAmount":null}`)
	require.Equal(t, http.StatusOK, w.Code)

	// when
	req := httptest.NewRequest(http.MethodGet, "/api/entry", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// then
	require.Equal(t, http.StatusOK, w.Code)
	var entries []EntryDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "hosting", entries[0].CategoryId)
	assert.Nil(t, entries[0].ActualAmount)
	assert.Nil(t, entries[0].ReforecastAmount)
	assert.Equal(t, "base-pay", entries[1].CategoryId)
	require.NotNil(t, entries[1].ActualAmount)
	assert.Equal(t, 0.0, *entries[1].ActualAmount)
	assert.Equal(t, 1, entries[1].Quarter)
}

func TestHandler_SaveInvalid(t *testing.T) {
	r, teardown := setupRouter(t)
	defer teardown()

	w := saveEntry(t, r, `{"categoryId":"base-pay","year":2024,"month":14,"budgetAmount":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid budget entry")

	w = saveEntry(t, r, `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Delete(t *testing.T) {
	r, teardown := setupRouter(t)
	defer teardown()
	w := saveEntry(t, r, `{"categoryId":"base-pay","year":2024,"month":3,"budgetAmount":1000}`)
	require.Equal(t, http.StatusOK, w.Code)
	var stored EntryDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&stored))

	req := httptest.NewRequest(http.MethodDelete, "/api/entry/"+stored.Id, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/entry/"+stored.Id, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
