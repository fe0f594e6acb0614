package form

import (
	"time"

	apperrors "listing-frontdesk/internal/common/errors"
	"listing-frontdesk/internal/schema"
)

// ValidationError describes one failed check against a draft field.
type ValidationError struct {
	Field   schema.FieldName    `json:"field"`
	Code    apperrors.ErrorCode `json:"code"`
	Message string              `json:"message"`
}

// Result carries every validation failure in schema order. All failures are
// accumulated for per-field highlighting; Headline surfaces the first.
type Result struct {
	Errors []ValidationError
}

// Valid reports whether the draft may be submitted.
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}

// Fields lists the failing field names in schema order.
func (r *Result) Fields() []schema.FieldName {
	out := make([]schema.FieldName, 0, len(r.Errors))
	for _, ve := range r.Errors {
		if ve.Field != "" {
			out = append(out, ve.Field)
		}
	}
	return out
}

// Headline returns the first failure as the user-facing error, nil when valid.
func (r *Result) Headline() error {
	if len(r.Errors) == 0 {
		return nil
	}
	first := r.Errors[0]
	meta := map[string]interface{}{
		"failingFields": r.Fields(),
	}
	if first.Field != "" {
		meta["field"] = string(first.Field)
	}
	return &apperrors.StandardError{
		Code:      first.Code,
		Message:   first.Message,
		Retryable: false,
		Metadata:  meta,
		Timestamp: time.Now().UTC(),
	}
}

// failure flattens a constructed StandardError into a per-field record, so
// validation and the error taxonomy share one source of codes and wording.
func failure(field schema.FieldName, err *apperrors.StandardError) ValidationError {
	return ValidationError{Field: field, Code: err.Code, Message: err.Message}
}

// Validate walks the required-field set for the draft's sub-category and
// transaction type, then applies the price floor and image presence checks.
func Validate(d *Draft) *Result {
	result := &Result{}

	required, err := schema.RequiredFields(d.SubCategory, d.SaleType)
	if err != nil {
		result.Errors = append(result.Errors,
			failure("", apperrors.NewUnknownCategoryError(string(d.SubCategory))))
		return result
	}

	for _, field := range required {
		if d.FieldIsEmpty(field) {
			result.Errors = append(result.Errors,
				failure(field, apperrors.NewMissingFieldError(string(field), schema.LabelOf(field))))
		}
	}

	if price, ok := d.Number(schema.FieldPropertyPrice); ok && price < schema.MinPropertyPrice {
		result.Errors = append(result.Errors,
			failure(schema.FieldPropertyPrice, apperrors.NewPriceTooLowError(price, schema.MinPropertyPrice)))
	}

	if len(d.UploadedImageKeys()) == 0 {
		result.Errors = append(result.Errors, failure("", apperrors.NewNoImagesError()))
	}

	return result
}
