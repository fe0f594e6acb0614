package form

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync/atomic"

	apperrors "listing-frontdesk/internal/common/errors"
	"listing-frontdesk/internal/common/logger"
	"listing-frontdesk/internal/schema"
	"listing-frontdesk/internal/session"
	"listing-frontdesk/internal/uploader"
)

// Submitter forwards a serialized draft to the property submission endpoint.
type Submitter interface {
	SubmitProperty(ctx context.Context, payload *Payload) (string, error)
}

// Controller owns one PropertyDraft and applies input-driven mutations.
// It is not safe for concurrent use except for the Submit gate.
type Controller struct {
	draft       *Draft
	sess        session.State
	log         logger.Logger
	fieldErrors map[schema.FieldName]ValidationError
	busy        atomic.Bool
}

// NewController creates a controller over an empty draft. The session state
// is injected explicitly; absent sessions leave userId empty until the
// caller provisions a guest account.
func NewController(sess session.State, log logger.Logger) *Controller {
	draft := NewDraft()
	draft.UserID = sess.UserID()
	return &Controller{
		draft:       draft,
		sess:        sess,
		log:         log,
		fieldErrors: make(map[schema.FieldName]ValidationError),
	}
}

// Draft exposes the current draft for validation and serialization.
func (c *Controller) Draft() *Draft {
	return c.draft
}

// SetUser attaches a user id after guest provisioning or login.
func (c *Controller) SetUser(sess session.State) {
	c.sess = sess
	c.draft.UserID = sess.UserID()
}

// SetField coerces raw input by field kind and applies it. Numeric fields
// parse to number-or-unset, boolean fields to true/false, everything else is
// kept as a string. Empty input unsets the field. Any outstanding validation
// error against the field is cleared.
func (c *Controller) SetField(name schema.FieldName, raw string) error {
	kind := schema.KindOf(name)
	if kind == schema.KindMultiSelect {
		return fmt.Errorf("field %s is set-valued, use ToggleSetMember", name)
	}

	switch kind {
	case schema.KindNumber:
		if raw == "" {
			delete(c.draft.values, name)
			break
		}
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			// Unparseable numeric input coerces to unset
			delete(c.draft.values, name)
			break
		}
		c.draft.values[name] = n

	case schema.KindBoolean:
		c.draft.values[name] = raw == "true"

	default:
		if raw == "" {
			delete(c.draft.values, name)
			break
		}
		c.draft.values[name] = raw
	}

	delete(c.fieldErrors, name)
	return nil
}

// SetCategory switches the top-level category and resets the sub-category to
// the new category's default.
func (c *Controller) SetCategory(category schema.Category) error {
	defaultSub, err := schema.DefaultSubCategory(category)
	if err != nil {
		return err
	}
	c.draft.Category = category
	c.draft.SubCategory = defaultSub
	c.resetSaleTypeIfDisallowed()
	return nil
}

// SetSubCategory selects a sub-category belonging to the current category.
func (c *Controller) SetSubCategory(subCategory schema.SubCategory) error {
	category, err := schema.CategoryOf(subCategory)
	if err != nil {
		return err
	}
	if category != c.draft.Category {
		return apperrors.NewUnknownCategoryError(
			fmt.Sprintf("%s does not belong to %s", subCategory, c.draft.Category))
	}
	c.draft.SubCategory = subCategory
	c.resetSaleTypeIfDisallowed()
	return nil
}

// SetSaleType selects a transaction type allowed for the sub-category.
func (c *Controller) SetSaleType(saleType schema.SaleType) error {
	allowed, err := schema.AllowedSaleTypes(c.draft.SubCategory)
	if err != nil {
		return err
	}
	for _, t := range allowed {
		if t == saleType {
			c.draft.SaleType = saleType
			return nil
		}
	}
	return fmt.Errorf("sale type %s is not offered for %s", saleType, c.draft.SubCategory)
}

func (c *Controller) resetSaleTypeIfDisallowed() {
	allowed, err := schema.AllowedSaleTypes(c.draft.SubCategory)
	if err != nil {
		return
	}
	for _, t := range allowed {
		if t == c.draft.SaleType {
			return
		}
	}
	c.draft.SaleType = allowed[0]
}

// SetFurnishing applies the furnishing choice. "Unfurnished" clears the
// furnishing amenity set, a furnished-only attribute.
func (c *Controller) SetFurnishing(value string) error {
	if err := c.SetField(schema.FieldFurnishing, value); err != nil {
		return err
	}
	if value == "Unfurnished" {
		delete(c.draft.sets, schema.FieldFurnishingAmenities)
	}
	return nil
}

// ToggleSetMember adds or removes a label from a set-valued field.
func (c *Controller) ToggleSetMember(name schema.FieldName, label string, included bool) error {
	if schema.KindOf(name) != schema.KindMultiSelect {
		return fmt.Errorf("field %s is not set-valued", name)
	}

	members := c.draft.sets[name]
	idx := -1
	for i, m := range members {
		if m == label {
			idx = i
			break
		}
	}

	if included && idx < 0 {
		c.draft.sets[name] = append(members, label)
	}
	if !included && idx >= 0 {
		c.draft.sets[name] = append(members[:idx], members[idx+1:]...)
	}

	delete(c.fieldErrors, name)
	return nil
}

// AddImages appends finalized images from the upload collaborator.
func (c *Controller) AddImages(images []uploader.Image) {
	c.draft.Images = append(c.draft.Images, images...)
}

// RemoveImage drops an image slot by id.
func (c *Controller) RemoveImage(id string) {
	images := c.draft.Images
	for i := range images {
		if images[i].ID == id {
			c.draft.Images = append(images[:i], images[i+1:]...)
			return
		}
	}
}

// Hydrate maps a previously persisted property object into the draft, for
// edit mode. Absent optional fields stay unset rather than defaulting to
// zero, so validation cannot mistake zero for provided.
func (c *Controller) Hydrate(remote map[string]interface{}) error {
	if id, ok := remote["propertyId"].(string); ok {
		c.draft.PropertyID = id
	}
	if id, ok := remote["userId"].(string); ok && id != "" {
		c.draft.UserID = id
	}

	if v, ok := remote["category"].(string); ok {
		c.draft.Category = schema.Category(v)
	}
	if v, ok := remote["subCategory"].(string); ok {
		sub := schema.SubCategory(v)
		if !schema.IsKnownSubCategory(sub) {
			return apperrors.NewUnknownCategoryError(v)
		}
		c.draft.SubCategory = sub
	}
	if v, ok := remote["isSale"].(string); ok {
		c.draft.SaleType = schema.SaleType(v)
	}

	for _, name := range schema.RegisteredFields() {
		raw, ok := remote[string(name)]
		if !ok || raw == nil {
			continue
		}
		c.hydrateField(name, raw)
	}

	if keys, ok := remote["imageKeys"].([]interface{}); ok {
		for _, k := range keys {
			if key, ok := k.(string); ok {
				c.draft.Images = append(c.draft.Images, uploader.Image{
					Status:    uploader.StatusUploaded,
					RemoteKey: key,
				})
			}
		}
	}

	return nil
}

func (c *Controller) hydrateField(name schema.FieldName, raw interface{}) {
	switch schema.KindOf(name) {
	case schema.KindNumber:
		switch v := raw.(type) {
		case float64:
			c.draft.values[name] = v
		case string:
			if v == "" {
				return
			}
			if n, err := strconv.ParseFloat(v, 64); err == nil {
				c.draft.values[name] = n
			}
		}

	case schema.KindBoolean:
		switch v := raw.(type) {
		case bool:
			c.draft.values[name] = v
		case string:
			if v == "true" || v == "false" {
				c.draft.values[name] = v == "true"
			}
		}

	case schema.KindMultiSelect:
		switch v := raw.(type) {
		case []interface{}:
			for _, item := range v {
				if s, ok := item.(string); ok {
					c.draft.sets[name] = append(c.draft.sets[name], s)
				}
			}
		case string:
			// Persisted drafts carry sets as JSON-encoded arrays
			var labels []string
			if err := json.Unmarshal([]byte(v), &labels); err == nil {
				c.draft.sets[name] = append(c.draft.sets[name], labels...)
			}
		}

	default:
		if v, ok := raw.(string); ok && v != "" {
			c.draft.values[name] = v
		}
	}
}

// Reset discards the draft after a successful submission, keeping the user.
func (c *Controller) Reset() {
	userID := c.draft.UserID
	c.draft = NewDraft()
	c.draft.UserID = userID
	c.fieldErrors = make(map[schema.FieldName]ValidationError)
}

// FieldError returns the outstanding validation error for a field, if any.
func (c *Controller) FieldError(name schema.FieldName) (ValidationError, bool) {
	ve, ok := c.fieldErrors[name]
	return ve, ok
}

// Submit validates, serializes and forwards the draft. A second call while a
// submission is in flight is rejected without touching the draft. On success
// the draft is reset and the created property id returned.
func (c *Controller) Submit(ctx context.Context, submitter Submitter) (string, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return "", apperrors.NewSubmitInFlightError()
	}
	defer c.busy.Store(false)

	result := Validate(c.draft)
	if !result.Valid() {
		for _, ve := range result.Errors {
			c.fieldErrors[ve.Field] = ve
		}
		return "", result.Headline()
	}

	payload, err := Serialize(c.draft)
	if err != nil {
		return "", err
	}

	propertyID, err := submitter.SubmitProperty(ctx, payload)
	if err != nil {
		// The draft is preserved unchanged so the user can retry
		return "", err
	}

	c.log.Info("Property submitted", map[string]interface{}{
		"propertyId":  propertyID,
		"subCategory": string(c.draft.SubCategory),
	})
	c.Reset()
	return propertyID, nil
}
