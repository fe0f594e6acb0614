package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	apperrors "listing-frontdesk/internal/common/errors"
	"listing-frontdesk/internal/common/metrics"
	"listing-frontdesk/internal/form"
	"listing-frontdesk/internal/schema"
	"listing-frontdesk/internal/session"
	"listing-frontdesk/internal/uploader"
)

const maxSubmissionBytes = 64 << 20

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("Failed to write response", map[string]interface{}{"error": err.Error()})
	}
}

// --- Schema ---

type schemaResponse struct {
	Category      schema.Category    `json:"category"`
	SubCategory   schema.SubCategory `json:"subCategory"`
	SaleType      schema.SaleType    `json:"saleType"`
	SaleTypes     []schema.SaleType  `json:"saleTypes"`
	Fields        []schema.FieldSpec `json:"fields"`
	AmenityGroups []schema.FieldName `json:"amenityGroups"`
}

// handleSchema returns the form layout for one sub-category and sale type:
// which fields are required, how they render, and which sale types apply.
func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	subCategory := schema.SubCategory(mux.Vars(r)["subCategory"])

	category, err := schema.CategoryOf(subCategory)
	if err != nil {
		s.errHandler.HandleRequestError(w, r, err)
		return
	}

	saleTypes, err := schema.AllowedSaleTypes(subCategory)
	if err != nil {
		s.errHandler.HandleRequestError(w, r, err)
		return
	}

	saleType := schema.SaleType(r.URL.Query().Get("saleType"))
	if saleType == "" {
		saleType = schema.SaleTypeSell
	}

	required, err := schema.RequiredFields(subCategory, saleType)
	if err != nil {
		s.errHandler.HandleRequestError(w, r, err)
		return
	}

	fields := make([]schema.FieldSpec, 0, len(required))
	for _, name := range required {
		if spec, ok := schema.Spec(name); ok {
			fields = append(fields, spec)
		}
	}

	amenityGroups, err := schema.AmenityGroups(subCategory)
	if err != nil {
		s.errHandler.HandleRequestError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, schemaResponse{
		Category:      category,
		SubCategory:   subCategory,
		SaleType:      saleType,
		SaleTypes:     saleTypes,
		Fields:        fields,
		AmenityGroups: amenityGroups,
	})
}

// --- Locations ---

type listBody struct {
	Data []string `json:"data"`
}

func (s *Server) handleStates(w http.ResponseWriter, r *http.Request) {
	states, err := s.deps.Locations.States(r.Context())
	if err != nil {
		s.errHandler.HandleRequestError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, listBody{Data: states})
}

func (s *Server) handleCities(w http.ResponseWriter, r *http.Request) {
	var req struct {
		State string `json:"state"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errHandler.HandleRequestError(w, r, err)
		return
	}

	cities, err := s.deps.Locations.Cities(r.Context(), req.State)
	if err != nil {
		s.errHandler.HandleRequestError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, listBody{Data: cities})
}

func (s *Server) handleLocalities(w http.ResponseWriter, r *http.Request) {
	var req struct {
		State  string `json:"state"`
		City   string `json:"city"`
		Search string `json:"search"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errHandler.HandleRequestError(w, r, err)
		return
	}

	localities, err := s.deps.Locations.Localities(r.Context(), req.State, req.City, req.Search)
	if err != nil {
		s.errHandler.HandleRequestError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, listBody{Data: localities})
}

// --- Auth ---

func (s *Server) handleSendOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MobileNumber string `json:"mobileNumber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errHandler.HandleRequestError(w, r, err)
		return
	}

	if err := s.deps.Auth.SendOTP(r.Context(), req.MobileNumber); err != nil {
		s.errHandler.HandleRequestError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "OTP sent"})
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  session.User `json:"user"`
}

func (s *Server) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MobileNumber string `json:"mobileNumber"`
		OTP          string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errHandler.HandleRequestError(w, r, err)
		return
	}

	user, err := s.deps.Auth.VerifyOTP(r.Context(), req.MobileNumber, req.OTP)
	if err != nil {
		s.errHandler.HandleRequestError(w, r, err)
		return
	}

	token, err := s.deps.Sessions.Issue(session.Authenticated(user))
	if err != nil {
		s.errHandler.HandleRequestError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sessionResponse{Token: token, User: user})
}

// handleGuestSession provisions a temporary upstream account and issues a
// guest session for it, so an anonymous visitor can post a listing.
func (s *Server) handleGuestSession(w http.ResponseWriter, r *http.Request) {
	user, err := s.deps.Auth.GuestSignup(r.Context())
	if err != nil {
		s.errHandler.HandleRequestError(w, r, err)
		return
	}

	token, err := s.deps.Sessions.Issue(session.Guest(user))
	if err != nil {
		s.errHandler.HandleRequestError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sessionResponse{Token: token, User: user})
}

// --- Properties ---

type submitResponse struct {
	PropertyID string `json:"propertyId"`
	// Token is set when the caller had no session and a guest one was created
	Token string `json:"token,omitempty"`
}

// handleSubmitProperty accepts the filled form as multipart data, rebuilds
// the draft, uploads attached images, validates and forwards the submission.
// Callers without a session get a guest account provisioned on the fly.
func (s *Server) handleSubmitProperty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFromContext(ctx)

	var issuedToken string
	if sess.Kind == session.KindAbsent {
		user, err := s.deps.Auth.GuestSignup(ctx)
		if err != nil {
			s.errHandler.HandleRequestError(w, r, err)
			return
		}
		sess = session.Guest(user)

		token, err := s.deps.Sessions.Issue(sess)
		if err != nil {
			s.errHandler.HandleRequestError(w, r, err)
			return
		}
		issuedToken = token
	}

	if err := r.ParseMultipartForm(maxSubmissionBytes); err != nil {
		s.errHandler.HandleRequestError(w, r,
			apperrors.NewPayloadLimitError(apperrors.ErrCodePayloadTooLarge, nil))
		return
	}

	ctrl := form.NewController(sess, s.log)
	if err := s.applyFormValues(ctrl, r); err != nil {
		s.errHandler.HandleRequestError(w, r, err)
		return
	}
	if err := s.attachImages(ctx, ctrl, r); err != nil {
		s.errHandler.HandleRequestError(w, r, err)
		return
	}

	subCategory := string(ctrl.Draft().SubCategory)
	propertyID, err := ctrl.Submit(ctx, s.deps.Listings)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues(subCategory, "failure").Inc()
		if stdErr, ok := err.(*apperrors.StandardError); ok {
			metrics.ValidationFailures.WithLabelValues(string(stdErr.Code)).Inc()
		}
		s.errHandler.HandleRequestError(w, r, err)
		return
	}

	metrics.SubmissionsTotal.WithLabelValues(subCategory, "success").Inc()
	s.writeJSON(w, http.StatusCreated, submitResponse{PropertyID: propertyID, Token: issuedToken})
}

// applyFormValues replays the submitted form values through the controller
// so every coercion and dependency rule applies server side too.
func (s *Server) applyFormValues(ctrl *form.Controller, r *http.Request) error {
	if v := r.FormValue("category"); v != "" {
		if err := ctrl.SetCategory(schema.Category(v)); err != nil {
			return err
		}
	}
	if v := r.FormValue("subCategory"); v != "" {
		if err := ctrl.SetSubCategory(schema.SubCategory(v)); err != nil {
			return err
		}
	}
	if v := r.FormValue("isSale"); v != "" {
		if err := ctrl.SetSaleType(schema.SaleType(v)); err != nil {
			return err
		}
	}

	for _, name := range schema.RegisteredFields() {
		values, ok := r.MultipartForm.Value[string(name)]
		if !ok || len(values) == 0 {
			continue
		}

		switch {
		case schema.KindOf(name) == schema.KindMultiSelect:
			for _, label := range decodeSetValues(values) {
				if err := ctrl.ToggleSetMember(name, label, true); err != nil {
					return err
				}
			}
		case name == schema.FieldFurnishing:
			if err := ctrl.SetFurnishing(values[0]); err != nil {
				return err
			}
		default:
			if err := ctrl.SetField(name, values[0]); err != nil {
				return err
			}
		}
	}
	return nil
}

// decodeSetValues accepts a set either as repeated form fields or as one
// JSON-encoded string array, the format the draft serializer emits.
func decodeSetValues(values []string) []string {
	if len(values) == 1 && len(values[0]) > 0 && values[0][0] == '[' {
		var labels []string
		if err := json.Unmarshal([]byte(values[0]), &labels); err == nil {
			return labels
		}
	}
	return values
}

// attachImages uploads the attached files and carries over any already
// uploaded image keys from a previous attempt.
func (s *Server) attachImages(ctx context.Context, ctrl *form.Controller, r *http.Request) error {
	for _, key := range r.MultipartForm.Value["imageKeys"] {
		ctrl.AddImages([]uploader.Image{{Status: uploader.StatusUploaded, RemoteKey: key}})
	}

	headers := r.MultipartForm.File["images"]
	if len(headers) == 0 {
		return nil
	}

	files := make([]uploader.File, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			return apperrors.NewUploadFailedError(header.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return apperrors.NewUploadFailedError(header.Filename, err)
		}
		files = append(files, uploader.File{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	images, err := s.deps.Uploader.UploadBatch(ctx, files, len(ctrl.Draft().Images))
	if err != nil {
		return err
	}

	var firstFailure error
	uploaded := make([]uploader.Image, 0, len(images))
	for _, img := range images {
		if img.Uploaded() {
			uploaded = append(uploaded, img)
		} else if firstFailure == nil {
			firstFailure = img.Err
		}
	}

	ctrl.AddImages(uploaded)
	if len(uploaded) == 0 && firstFailure != nil {
		return firstFailure
	}
	return nil
}

func (s *Server) handleGetProperty(w http.ResponseWriter, r *http.Request) {
	propertyID := mux.Vars(r)["propertyId"]

	property, err := s.deps.Listings.GetProperty(r.Context(), propertyID)
	if err != nil {
		s.errHandler.HandleRequestError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"data": property})
}

// --- Admin ---

func (s *Server) handleAdminListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.deps.Listings.ListTempUsers(r.Context())
	if err != nil {
		s.errHandler.HandleRequestError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"data": users})
}

func (s *Server) handleAdminListProperties(w http.ResponseWriter, r *http.Request) {
	filters := map[string]string{}
	for _, key := range []string{"subCategory", "userId"} {
		if v := r.URL.Query().Get(key); v != "" {
			filters[key] = v
		}
	}

	properties, err := s.deps.Listings.ListTempProperties(r.Context(), filters)
	if err != nil {
		s.errHandler.HandleRequestError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"data": properties})
}

func (s *Server) handleAdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Listings.DeleteTempUser(r.Context(), mux.Vars(r)["userId"]); err != nil {
		s.errHandler.HandleRequestError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

func (s *Server) handleAdminDeleteProperty(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Listings.DeleteTempProperty(r.Context(), mux.Vars(r)["propertyId"]); err != nil {
		s.errHandler.HandleRequestError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

// --- Health ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
