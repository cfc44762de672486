package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekarpova/resumecraft/internal/common"
	"github.com/ekarpova/resumecraft/internal/resume"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second)
}

func TestLogin_StoresTokenPair(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "user@example.com", body["email"])

		json.NewEncoder(w).Encode(map[string]string{
			"accessToken":  "access-1",
			"refreshToken": "refresh-1",
		})
	}))

	err := c.Login(context.Background(), "user@example.com", "password")
	require.NoError(t, err)
	assert.True(t, c.IsAuthenticated())
	assert.Equal(t, "access-1", c.accessToken)
	assert.Equal(t, "refresh-1", c.refreshToken)
}

func TestLogin_Unauthorized(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "unauthorized"})
	}))

	err := c.Login(context.Background(), "user@example.com", "wrong")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.False(t, c.IsAuthenticated())
}

func TestDo_ValidationErrorsDecoded(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Validation failed",
			"errors": []map[string]string{
				{"field": "companyName", "message": "companyName is required"},
			},
		})
	}))

	_, err := c.AddWorkExperience(context.Background(), "r1", &resume.WorkExperience{})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrorValidation)

	var verr *resume.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "companyName", verr.Fields[0].Field)
}

func TestDo_NotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Resume not found"})
	}))

	_, err := c.GetResume(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDo_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	c := NewClient(srv.URL, time.Second)

	_, err := c.ListResumes(context.Background())
	assert.ErrorIs(t, err, common.ErrorTransport)
}

func TestDo_RefreshesExpiredTokenOnce(t *testing.T) {
	var refreshCalls, listCalls int

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/refresh":
			refreshCalls++
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "refresh-old", body["refreshToken"])
			json.NewEncoder(w).Encode(map[string]string{
				"accessToken":  "access-new",
				"refreshToken": "refresh-new",
			})
		case "/api/resume":
			listCalls++
			if r.Header.Get("Authorization") != "Bearer access-new" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"message": common.ErrTokenExpired.Error()})
				return
			}
			json.NewEncoder(w).Encode(map[string]any{"resumes": []resume.Summary{{ID: "r1", Title: "CV"}}})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	c.accessToken = "access-old"
	c.refreshToken = "refresh-old"

	list, err := c.ListResumes(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "r1", list[0].ID)
	assert.Equal(t, 1, refreshCalls)
	assert.Equal(t, 2, listCalls)
	assert.Equal(t, "refresh-new", c.refreshToken)
}

func TestDo_RefreshFailureClearsSession(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/refresh":
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "refresh token expired"})
		default:
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": common.ErrTokenExpired.Error()})
		}
	}))
	c.accessToken = "access-old"
	c.refreshToken = "refresh-old"

	_, err := c.ListResumes(context.Background())
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.False(t, c.IsAuthenticated())
	assert.Empty(t, c.refreshToken)
}

func TestCreateResume_ReturnsID(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/resume", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{
			"message":  "Resume created successfully",
			"resumeId": "new-id",
		})
	}))

	id, err := c.CreateResume(context.Background(), "My CV", resume.TemplateModern)
	require.NoError(t, err)
	assert.Equal(t, "new-id", id)
}

func TestSavePersonalInfo_SendsPayload(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/resume/r1/personal-info", r.URL.Path)

		var p resume.PersonalInfo
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		assert.Equal(t, "Jane", p.FirstName)

		json.NewEncoder(w).Encode(map[string]string{"message": "Personal information saved successfully"})
	}))

	err := c.SavePersonalInfo(context.Background(), "r1", &resume.PersonalInfo{
		FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
	})
	require.NoError(t, err)
}

func TestDeleteAccount_ClearsTokens(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"message": "Account deleted successfully"})
	}))
	c.accessToken = "a"
	c.refreshToken = "r"

	require.NoError(t, c.DeleteAccount(context.Background(), "password"))
	assert.False(t, c.IsAuthenticated())
}

func TestMapStatus_Conflict(t *testing.T) {
	err := mapStatus(http.StatusConflict, errorEnvelope{Message: "Email already registered"})
	assert.True(t, errors.Is(err, common.ErrorEmailTaken))
}
