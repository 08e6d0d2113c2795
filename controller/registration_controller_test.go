// controller/registration_controller_test.go
package controller_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusforge/aegis/controller"
	"github.com/campusforge/aegis/finance"
	"github.com/campusforge/aegis/logging"
	"github.com/campusforge/aegis/model"
	"github.com/campusforge/aegis/test/mock"
	"github.com/campusforge/aegis/util"
)

func setupRegistrationRouter(store *mock.FinanceStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logging.InitTestLogger()

	synchronizer := finance.NewRegistrationSynchronizer(store, semesterFee, util.NewEventBus())
	r := gin.New()
	controller.NewRegistrationController(synchronizer, store).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestGetRegistrationEndpoint(t *testing.T) {
	store := mock.NewFinanceStore()
	store.AddRegistration(model.RegistrationRecord{StudentID: "stu-1", SemesterID: "2026-fall", IsPaid: true})
	r := setupRegistrationRouter(store)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/registrations/stu-1/2026-fall", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got model.RegistrationRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.True(t, got.IsPaid)
	assert.False(t, got.IsRegistered)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/v1/registrations/stu-9/2026-fall", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConfirmRegistrationEndpoint(t *testing.T) {
	t.Run("Confirmed", func(t *testing.T) {
		store := mock.NewFinanceStore()
		store.AddRegistration(model.RegistrationRecord{StudentID: "stu-1", SemesterID: "2026-fall", IsPaid: true})
		r := setupRegistrationRouter(store)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/registrations/stu-1/2026-fall/confirm", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, store.Registrations["stu-1/2026-fall"].IsRegistered)
	})

	t.Run("LockedWithoutPayment", func(t *testing.T) {
		store := mock.NewFinanceStore()
		store.AddRegistration(model.RegistrationRecord{StudentID: "stu-1", SemesterID: "2026-fall"})
		r := setupRegistrationRouter(store)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/registrations/stu-1/2026-fall/confirm", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusLocked, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, true, body["locked"])
		assert.False(t, store.Registrations["stu-1/2026-fall"].IsRegistered)
	})

	t.Run("UnknownRecord", func(t *testing.T) {
		store := mock.NewFinanceStore()
		r := setupRegistrationRouter(store)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/registrations/stu-9/2026-fall/confirm", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
