package form

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strconv"

	"github.com/xeipuuv/gojsonschema"

	apperrors "listing-frontdesk/internal/common/errors"
	"listing-frontdesk/internal/schema"
)

// KV is one scalar multipart field in wire order.
type KV struct {
	Key   string
	Value string
}

// FilePart is a raw file attached to the multipart body, for images that
// were never uploaded out of band.
type FilePart struct {
	FieldName   string
	FileName    string
	ContentType string
	Data        []byte
}

// Payload is the serialized form of a valid draft.
type Payload struct {
	Values    []KV
	ImageKeys []string
	Files     []FilePart
}

// Get returns the first value for a key, for tests and logging.
func (p *Payload) Get(key string) (string, bool) {
	for _, kv := range p.Values {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Multipart renders the payload as a multipart/form-data body.
func (p *Payload) Multipart() (contentType string, body []byte, err error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, kv := range p.Values {
		if err := w.WriteField(kv.Key, kv.Value); err != nil {
			return "", nil, fmt.Errorf("failed to write field %s: %w", kv.Key, err)
		}
	}
	for _, key := range p.ImageKeys {
		if err := w.WriteField("imageKeys", key); err != nil {
			return "", nil, fmt.Errorf("failed to write image key: %w", err)
		}
	}
	for _, f := range p.Files {
		part, err := w.CreateFormFile(f.FieldName, f.FileName)
		if err != nil {
			return "", nil, fmt.Errorf("failed to create file part: %w", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return "", nil, fmt.Errorf("failed to write file part: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return "", nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}
	return w.FormDataContentType(), buf.Bytes(), nil
}

// Serialize builds the wire payload for a draft: scalars stringified
// (numbers to decimal strings, booleans to "true"/"false"), set-valued
// fields JSON-encoded as string arrays, and successfully uploaded images
// contributing their remote keys. The draft is expected to have passed
// Validate; a type mismatch here indicates a coercion bug and is reported
// as a serialization failure, not a user error.
func Serialize(d *Draft) (*Payload, error) {
	wire := map[string]interface{}{
		"userId":      d.UserID,
		"category":    string(d.Category),
		"subCategory": string(d.SubCategory),
		"isSale":      string(d.SaleType),
	}
	if d.PropertyID != "" {
		wire["propertyId"] = d.PropertyID
	}
	for _, name := range schema.RegisteredFields() {
		if schema.KindOf(name) == schema.KindMultiSelect {
			if members := d.sets[name]; len(members) > 0 {
				wire[string(name)] = members
			}
			continue
		}
		if v, ok := d.values[name]; ok {
			wire[string(name)] = v
		}
	}

	if err := checkWireTypes(wire); err != nil {
		return nil, err
	}

	payload := &Payload{}
	appendScalar := func(key string, v interface{}) error {
		switch val := v.(type) {
		case string:
			payload.Values = append(payload.Values, KV{Key: key, Value: val})
		case float64:
			payload.Values = append(payload.Values, KV{Key: key, Value: strconv.FormatFloat(val, 'f', -1, 64)})
		case bool:
			payload.Values = append(payload.Values, KV{Key: key, Value: strconv.FormatBool(val)})
		default:
			return apperrors.NewSerializationFailedError(
				fmt.Sprintf("field %s has unexpected type %T", key, v))
		}
		return nil
	}

	for _, key := range []string{"userId", "propertyId", "category", "subCategory", "isSale"} {
		if v, ok := wire[key]; ok {
			if err := appendScalar(key, v); err != nil {
				return nil, err
			}
		}
	}
	for _, name := range schema.RegisteredFields() {
		v, ok := wire[string(name)]
		if !ok {
			continue
		}
		if members, isSet := v.([]string); isSet {
			encoded, err := json.Marshal(members)
			if err != nil {
				return nil, apperrors.NewSerializationFailedError(err.Error())
			}
			payload.Values = append(payload.Values, KV{Key: string(name), Value: string(encoded)})
			continue
		}
		if err := appendScalar(string(name), v); err != nil {
			return nil, err
		}
	}

	payload.ImageKeys = d.UploadedImageKeys()
	return payload, nil
}

// checkWireTypes validates the pre-stringified wire map against a JSON
// schema generated from the field registry. This is a defensive check for
// coercion bugs; it should never fire on user input.
func checkWireTypes(wire map[string]interface{}) error {
	properties := map[string]interface{}{
		"userId":      map[string]interface{}{"type": "string"},
		"propertyId":  map[string]interface{}{"type": "string"},
		"category":    map[string]interface{}{"type": "string"},
		"subCategory": map[string]interface{}{"type": "string"},
		"isSale":      map[string]interface{}{"type": "string"},
	}
	for _, name := range schema.RegisteredFields() {
		switch schema.KindOf(name) {
		case schema.KindNumber:
			properties[string(name)] = map[string]interface{}{"type": "number"}
		case schema.KindBoolean:
			properties[string(name)] = map[string]interface{}{"type": "boolean"}
		case schema.KindMultiSelect:
			properties[string(name)] = map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "string"},
			}
		default:
			properties[string(name)] = map[string]interface{}{"type": "string"}
		}
	}

	schemaDoc := map[string]interface{}{
		"type":                 "object",
		"properties":           properties,
		"required":             []string{"userId", "category", "subCategory", "isSale"},
		"additionalProperties": false,
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(schemaDoc),
		gojsonschema.NewGoLoader(wire),
	)
	if err != nil {
		return apperrors.NewSerializationFailedError(err.Error())
	}
	if !result.Valid() {
		details := ""
		for _, desc := range result.Errors() {
			if details != "" {
				details += "; "
			}
			details += desc.String()
		}
		return apperrors.NewSerializationFailedError(details)
	}
	return nil
}
