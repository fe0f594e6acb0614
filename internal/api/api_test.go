package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "listing-frontdesk/internal/common/errors"
	httpclient "listing-frontdesk/internal/common/http"
	"listing-frontdesk/internal/common/logger"
	"listing-frontdesk/internal/form"
	"listing-frontdesk/internal/schema"
	"listing-frontdesk/internal/session"
	"listing-frontdesk/internal/uploader"
)

func testClient() *httpclient.Client {
	return httpclient.NewClient(5 * time.Second)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestDropdownClient_States(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/locations/states", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]interface{}{
			"data": []string{"Karnataka", "Maharashtra"},
		})
	}))
	defer server.Close()

	c := NewDropdownClient(Config{BaseURL: server.URL}, testClient(), logger.NewNoOpLogger())
	states, err := c.States(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Karnataka", "Maharashtra"}, states)
}

func TestDropdownClient_Localities(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/locations/localities", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Karnataka", req["state"])
		assert.Equal(t, "Bengaluru", req["city"])
		assert.Equal(t, "Indira", req["search"])

		writeJSON(t, w, http.StatusOK, map[string]interface{}{
			"data": []string{"Indiranagar"},
		})
	}))
	defer server.Close()

	c := NewDropdownClient(Config{BaseURL: server.URL}, testClient(), logger.NewNoOpLogger())
	localities, err := c.Localities(context.Background(), "Karnataka", "Bengaluru", "Indira")
	require.NoError(t, err)
	assert.Equal(t, []string{"Indiranagar"}, localities)
}

func TestDropdownClient_UpstreamDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusServiceUnavailable, map[string]string{"message": "maintenance"})
	}))
	defer server.Close()

	c := NewDropdownClient(Config{BaseURL: server.URL}, testClient(), logger.NewNoOpLogger())
	_, err := c.States(context.Background())
	require.Error(t, err)

	stdErr, ok := err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeUpstreamUnavailable, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestAuthClient_SendOTP_RejectsBadMobile(t *testing.T) {
	c := NewAuthClient(Config{BaseURL: "http://unused"}, testClient(), logger.NewNoOpLogger())

	for _, mobile := range []string{"12345", "not-a-number", ""} {
		err := c.SendOTP(context.Background(), mobile)
		require.Error(t, err)

		stdErr, ok := err.(*apperrors.StandardError)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeInvalidMobileNumber, stdErr.Code)
		assert.Equal(t, http.StatusBadRequest, apperrors.HTTPStatus(stdErr.Code))
	}
}

func TestAuthClient_VerifyOTP_RejectsMalformedInput(t *testing.T) {
	// No server: format checks must fail before any upstream call.
	c := NewAuthClient(Config{BaseURL: "http://unused"}, testClient(), logger.NewNoOpLogger())

	_, err := c.VerifyOTP(context.Background(), "12345", "1234")
	require.Error(t, err)
	stdErr, ok := err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeInvalidMobileNumber, stdErr.Code)

	_, err = c.VerifyOTP(context.Background(), "9876543210", "12")
	require.Error(t, err)
	stdErr, ok = err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeInvalidOTP, stdErr.Code)
}

func TestAuthClient_VerifyOTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req["otp"] != "1234" {
			writeJSON(t, w, http.StatusBadRequest, map[string]string{"message": "Invalid OTP"})
			return
		}
		writeJSON(t, w, http.StatusOK, map[string]interface{}{
			"data": map[string]string{"_id": "user-7", "fullName": "Asha Rao", "userType": "owner"},
		})
	}))
	defer server.Close()

	c := NewAuthClient(Config{BaseURL: server.URL}, testClient(), logger.NewNoOpLogger())

	user, err := c.VerifyOTP(context.Background(), "9876543210", "1234")
	require.NoError(t, err)
	assert.Equal(t, session.User{ID: "user-7", FullName: "Asha Rao", Type: "owner"}, user)

	_, err = c.VerifyOTP(context.Background(), "9876543210", "0000")
	require.Error(t, err)
	stdErr, ok := err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeOTPVerifyFailed, stdErr.Code)
}

func TestAuthClient_GuestSignup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/temp/signup", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Guest User", req["fullName"])
		assert.Equal(t, "0000000000", req["mobileNumber"])
		assert.Contains(t, req["email"], "@temp.com")

		writeJSON(t, w, http.StatusOK, map[string]interface{}{
			"data": map[string]string{"_id": "guest-1", "fullName": "Guest User", "userType": "guest"},
		})
	}))
	defer server.Close()

	c := NewAuthClient(Config{BaseURL: server.URL}, testClient(), logger.NewNoOpLogger())
	user, err := c.GuestSignup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "guest-1", user.ID)
}

func TestMediaClient_UploadImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "front.jpg", header.Filename)

		writeJSON(t, w, http.StatusOK, map[string]interface{}{
			"data": map[string]interface{}{
				"imageKey":       "key-front",
				"url":            "https://cdn.example.com/key-front",
				"classification": "exterior",
				"confidence":     0.91,
			},
		})
	}))
	defer server.Close()

	c := NewMediaClient(Config{BaseURL: server.URL}, testClient(), logger.NewNoOpLogger())
	result, err := c.UploadImage(context.Background(), "front.jpg", "image/jpeg", []byte("jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "key-front", result.Key)
	assert.Equal(t, "exterior", result.Classification)
}

func TestMediaClient_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusTooManyRequests, map[string]string{"message": "slow down"})
	}))
	defer server.Close()

	c := NewMediaClient(Config{BaseURL: server.URL}, testClient(), logger.NewNoOpLogger())
	_, err := c.UploadImage(context.Background(), "a.jpg", "image/jpeg", []byte("x"))
	require.Error(t, err)

	stdErr, ok := err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeRateLimited, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestMediaClient_PayloadLimitEnum(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusRequestEntityTooLarge, map[string]interface{}{
			"error":    "PAYLOAD_TOO_LARGE",
			"maxBytes": 10485760,
		})
	}))
	defer server.Close()

	c := NewMediaClient(Config{BaseURL: server.URL}, testClient(), logger.NewNoOpLogger())
	_, err := c.UploadImage(context.Background(), "a.jpg", "image/jpeg", []byte("x"))
	require.Error(t, err)

	stdErr, ok := err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodePayloadTooLarge, stdErr.Code)
	assert.EqualValues(t, 10485760, stdErr.Metadata["maxBytes"])
}

func submittablePayload(t *testing.T) *form.Payload {
	t.Helper()
	c := form.NewController(
		session.Authenticated(session.User{ID: "user-1", FullName: "Asha Rao", Type: "owner"}),
		logger.NewNoOpLogger())
	require.NoError(t, c.SetCategory(schema.CategoryCommercial))
	require.NoError(t, c.SetSubCategory(schema.SubCategoryLands))
	require.NoError(t, c.SetField(schema.FieldLandArea, "2.5"))
	require.NoError(t, c.SetField(schema.FieldLandType, "agricultural"))
	require.NoError(t, c.SetField(schema.FieldApproachRoad, "Yes"))
	require.NoError(t, c.SetField(schema.FieldPropertyPrice, "200000"))
	require.NoError(t, c.SetField(schema.FieldAddressState, "Karnataka"))
	require.NoError(t, c.SetField(schema.FieldAddressCity, "Bengaluru"))
	require.NoError(t, c.SetField(schema.FieldAddressLocality, "Indiranagar"))
	c.AddImages([]uploader.Image{{ID: "img-1", Status: uploader.StatusUploaded, RemoteKey: "key-1"}})

	payload, err := form.Serialize(c.Draft())
	require.NoError(t, err)
	return payload
}

func TestListingClient_SubmitProperty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/temp/properties", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "user-1", r.FormValue("userId"))
		assert.Equal(t, "Lands", r.FormValue("subCategory"))
		assert.Equal(t, []string{"key-1"}, r.MultipartForm.Value["imageKeys"])

		writeJSON(t, w, http.StatusCreated, map[string]interface{}{
			"data": map[string]string{"propertyId": "prop-9"},
		})
	}))
	defer server.Close()

	c := NewListingClient(Config{BaseURL: server.URL}, testClient(), testClient(), logger.NewNoOpLogger())
	id, err := c.SubmitProperty(context.Background(), submittablePayload(t))
	require.NoError(t, err)
	assert.Equal(t, "prop-9", id)
}

func TestListingClient_GetProperty_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]string{"message": "no such property"})
	}))
	defer server.Close()

	c := NewListingClient(Config{BaseURL: server.URL}, testClient(), testClient(), logger.NewNoOpLogger())
	_, err := c.GetProperty(context.Background(), "missing")
	require.Error(t, err)

	stdErr, ok := err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeResourceNotFound, stdErr.Code)
}

func TestListingClient_ListTempProperties_Filters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Lands", r.URL.Query().Get("subCategory"))
		writeJSON(t, w, http.StatusOK, map[string]interface{}{
			"data": []map[string]interface{}{{"propertyId": "prop-1", "subCategory": "Lands"}},
		})
	}))
	defer server.Close()

	c := NewListingClient(Config{BaseURL: server.URL}, testClient(), testClient(), logger.NewNoOpLogger())
	props, err := c.ListTempProperties(context.Background(), map[string]string{"subCategory": "Lands"})
	require.NoError(t, err)
	require.Len(t, props, 1)
	assert.Equal(t, "prop-1", props[0]["propertyId"])
}

func TestListingClient_DeleteTempUser(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodDelete, r.Method)
		writeJSON(t, w, http.StatusOK, map[string]string{"message": "deleted"})
	}))
	defer server.Close()

	c := NewListingClient(Config{BaseURL: server.URL}, testClient(), testClient(), logger.NewNoOpLogger())
	require.NoError(t, c.DeleteTempUser(context.Background(), "user-3"))
	assert.Equal(t, "/api/v1/temp/users/user-3", gotPath)
}

func TestMapFailure_DefaultMessage(t *testing.T) {
	err := mapFailure("properties", http.StatusBadRequest, []byte(`{}`))
	stdErr, ok := err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeBadUpstreamResponse, stdErr.Code)
	assert.Equal(t, "Something went wrong, please try again", stdErr.Message)
}
