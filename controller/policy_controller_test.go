// controller/policy_controller_test.go
package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testify_mock "github.com/stretchr/testify/mock"

	"github.com/campusforge/aegis/controller"
	aegis_errors "github.com/campusforge/aegis/errors"
	"github.com/campusforge/aegis/logging"
	"github.com/campusforge/aegis/model"
	"github.com/campusforge/aegis/test/mock"
)

func setupPolicyRouter(policyService *mock.MockPolicyService, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logging.InitTestLogger()

	r := gin.New()
	if userID != "" {
		r.Use(func(c *gin.Context) {
			c.Set("userID", userID)
			c.Next()
		})
	}
	controller.NewPolicyController(policyService).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func policyBody(t *testing.T, p model.Policy) *bytes.Buffer {
	t.Helper()
	data, err := json.Marshal(p)
	require.NoError(t, err)
	return bytes.NewBuffer(data)
}

func TestCreatePolicyEndpoint(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		policyService := new(mock.MockPolicyService)
		created := &model.Policy{ID: "pol-1", Subject: "teacher", Action: "view_grades", Resource: "grades", Allow: true}
		policyService.On("CreatePolicy", testify_mock.Anything, testify_mock.Anything, "admin-1").Return(created, nil)

		r := setupPolicyRouter(policyService, "admin-1")
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/policies", policyBody(t, model.Policy{
			Subject: "teacher", Action: "view_grades", Resource: "grades", Allow: true,
		}))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		var got model.Policy
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "pol-1", got.ID)
		policyService.AssertExpectations(t)
	})

	t.Run("InvalidBody", func(t *testing.T) {
		policyService := new(mock.MockPolicyService)
		r := setupPolicyRouter(policyService, "admin-1")
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/policies", bytes.NewBufferString("{not json"))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		policyService.AssertNotCalled(t, "CreatePolicy")
	})

	t.Run("MissingIdentity", func(t *testing.T) {
		policyService := new(mock.MockPolicyService)
		r := setupPolicyRouter(policyService, "")
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/policies", policyBody(t, model.Policy{
			Subject: "teacher", Action: "view_grades", Resource: "grades",
		}))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Conflict", func(t *testing.T) {
		policyService := new(mock.MockPolicyService)
		policyService.On("CreatePolicy", testify_mock.Anything, testify_mock.Anything, "admin-1").
			Return(nil, aegis_errors.ErrPolicyConflict)

		r := setupPolicyRouter(policyService, "admin-1")
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/policies", policyBody(t, model.Policy{
			Subject: "teacher", Action: "view_grades", Resource: "grades",
		}))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestGetPolicyEndpoint(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		policyService := new(mock.MockPolicyService)
		policyService.On("GetPolicy", testify_mock.Anything, "pol-1").
			Return(&model.Policy{ID: "pol-1", Subject: "teacher"}, nil)

		r := setupPolicyRouter(policyService, "admin-1")
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/policies/pol-1", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		policyService := new(mock.MockPolicyService)
		policyService.On("GetPolicy", testify_mock.Anything, "missing").
			Return(nil, aegis_errors.ErrPolicyNotFound)

		r := setupPolicyRouter(policyService, "admin-1")
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/policies/missing", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeletePolicyEndpoint(t *testing.T) {
	policyService := new(mock.MockPolicyService)
	policyService.On("DeletePolicy", testify_mock.Anything, "pol-1", "admin-1").Return(nil)

	r := setupPolicyRouter(policyService, "admin-1")
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/api/v1/policies/pol-1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	policyService.AssertExpectations(t)
}

func TestListPoliciesEndpoint(t *testing.T) {
	t.Run("DefaultPagination", func(t *testing.T) {
		policyService := new(mock.MockPolicyService)
		policyService.On("ListPolicies", testify_mock.Anything, testify_mock.Anything, testify_mock.Anything).
			Return([]*model.Policy{{ID: "pol-1"}, {ID: "pol-2"}}, nil)

		r := setupPolicyRouter(policyService, "admin-1")
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/policies", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var got []*model.Policy
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Len(t, got, 2)
	})

	t.Run("BadPagination", func(t *testing.T) {
		policyService := new(mock.MockPolicyService)
		r := setupPolicyRouter(policyService, "admin-1")
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/policies?limit=abc", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		policyService.AssertNotCalled(t, "ListPolicies")
	})
}

func TestSearchPoliciesEndpoint(t *testing.T) {
	policyService := new(mock.MockPolicyService)
	policyService.On("SearchPolicies", testify_mock.Anything, testify_mock.Anything).
		Return([]*model.Policy{{ID: "pol-1"}}, nil)

	r := setupPolicyRouter(policyService, "admin-1")
	w := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"subject": "teacher"}`)
	req, _ := http.NewRequest("POST", "/api/v1/policies/search", body)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
