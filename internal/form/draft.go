// Package form implements the schema-driven property upload engine: the
// mutable draft, its controller, the validator, and the wire serializer.
package form

import (
	"listing-frontdesk/internal/schema"
	"listing-frontdesk/internal/uploader"
)

// Draft is the mutable property record being edited. Scalar attributes live
// in a typed value map so that absence is distinguishable from a zero value:
// an unset number must not validate as provided.
type Draft struct {
	UserID     string
	PropertyID string // set in edit mode

	Category    schema.Category
	SubCategory schema.SubCategory
	SaleType    schema.SaleType

	// values holds scalar fields keyed by name. Value types follow the field
	// kind: string for text/select/radio, float64 for number, bool for boolean.
	values map[schema.FieldName]interface{}

	// sets holds set-valued fields in insertion order.
	sets map[schema.FieldName][]string

	Images []uploader.Image
}

// NewDraft creates an empty draft with the default classification.
func NewDraft() *Draft {
	return &Draft{
		Category:    schema.CategoryResidential,
		SubCategory: schema.SubCategoryFlats,
		SaleType:    schema.SaleTypeSell,
		values:      make(map[schema.FieldName]interface{}),
		sets:        make(map[schema.FieldName][]string),
	}
}

// Value returns a scalar field value and whether it is set.
func (d *Draft) Value(name schema.FieldName) (interface{}, bool) {
	v, ok := d.values[name]
	return v, ok
}

// String returns a text/select field value, empty if unset.
func (d *Draft) String(name schema.FieldName) string {
	if v, ok := d.values[name]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Number returns a numeric field value and whether it is set.
func (d *Draft) Number(name schema.FieldName) (float64, bool) {
	if v, ok := d.values[name]; ok {
		if n, ok := v.(float64); ok {
			return n, true
		}
	}
	return 0, false
}

// Bool returns a boolean field value and whether it is set.
func (d *Draft) Bool(name schema.FieldName) (bool, bool) {
	if v, ok := d.values[name]; ok {
		if b, ok := v.(bool); ok {
			return b, true
		}
	}
	return false, false
}

// SetMembers returns the labels of a set-valued field in insertion order.
func (d *Draft) SetMembers(name schema.FieldName) []string {
	members := d.sets[name]
	out := make([]string, len(members))
	copy(out, members)
	return out
}

// FieldIsEmpty reports whether a field counts as missing for validation:
// unset, empty string, or an empty set. A set boolean false or a zero number
// is present, not missing.
func (d *Draft) FieldIsEmpty(name schema.FieldName) bool {
	if schema.KindOf(name) == schema.KindMultiSelect {
		return len(d.sets[name]) == 0
	}

	v, ok := d.values[name]
	if !ok {
		return true
	}
	if s, isStr := v.(string); isStr && s == "" {
		return true
	}
	return false
}

// UploadedImageKeys returns the remote keys of successfully uploaded images.
func (d *Draft) UploadedImageKeys() []string {
	return uploader.UploadedKeys(d.Images)
}
