package form

import (
	"bytes"
	"encoding/json"
	"mime"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-frontdesk/internal/common/logger"
	"listing-frontdesk/internal/schema"
	"listing-frontdesk/internal/session"
	"listing-frontdesk/internal/uploader"
)

func TestSerialize_Lands(t *testing.T) {
	c := createValidLandsController(t)

	payload, err := Serialize(c.Draft())
	require.NoError(t, err)

	area, ok := payload.Get("landArea")
	require.True(t, ok)
	assert.Equal(t, "2.5", area)

	landType, ok := payload.Get("landType")
	require.True(t, ok)
	assert.Equal(t, "agricultural", landType)

	price, ok := payload.Get("propertyPrice")
	require.True(t, ok)
	assert.Equal(t, "200000", price)

	userID, ok := payload.Get("userId")
	require.True(t, ok)
	assert.Equal(t, "user-1", userID)

	assert.Equal(t, []string{"key-1"}, payload.ImageKeys)
}

func TestSerialize_BooleansAndSets(t *testing.T) {
	c := createValidLandsController(t)
	require.NoError(t, c.SetField(schema.FieldFencing, "true"))
	require.NoError(t, c.SetField(schema.FieldReraApproved, "false"))
	require.NoError(t, c.ToggleSetMember(schema.FieldAmenities, "Borewell", true))
	require.NoError(t, c.ToggleSetMember(schema.FieldAmenities, "Fencing", true))

	payload, err := Serialize(c.Draft())
	require.NoError(t, err)

	fencing, _ := payload.Get("fencing")
	assert.Equal(t, "true", fencing)

	rera, _ := payload.Get("reraApproved")
	assert.Equal(t, "false", rera)

	// Set-valued fields are JSON-encoded string arrays
	amenities, ok := payload.Get("amenities")
	require.True(t, ok)
	var labels []string
	require.NoError(t, json.Unmarshal([]byte(amenities), &labels))
	assert.Equal(t, []string{"Borewell", "Fencing"}, labels)
}

func TestSerialize_UnsetFieldsOmitted(t *testing.T) {
	c := createValidLandsController(t)

	payload, err := Serialize(c.Draft())
	require.NoError(t, err)

	_, ok := payload.Get("carpetArea")
	assert.False(t, ok)
	_, ok = payload.Get("furnishingAmenities")
	assert.False(t, ok)
}

func TestSerialize_TypeMismatchIsFatal(t *testing.T) {
	c := createValidLandsController(t)
	// Bypass coercion to simulate a controller bug
	c.Draft().values[schema.FieldLandArea] = "not-a-number"

	_, err := Serialize(c.Draft())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SERIALIZATION_FAILED")
}

func TestPayload_Multipart(t *testing.T) {
	c := createValidLandsController(t)
	c.AddImages([]uploader.Image{uploadedImage("key-2")})

	payload, err := Serialize(c.Draft())
	require.NoError(t, err)
	payload.Files = append(payload.Files, FilePart{
		FieldName:   "images",
		FileName:    "front.jpg",
		ContentType: "image/jpeg",
		Data:        []byte("jpeg-bytes"),
	})

	contentType, body, err := payload.Multipart()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(contentType, "multipart/form-data"))

	_, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)

	reader := multipart.NewReader(bytes.NewReader(body), params["boundary"])
	form, err := reader.ReadForm(1 << 20)
	require.NoError(t, err)

	assert.Equal(t, []string{"2.5"}, form.Value["landArea"])
	assert.Equal(t, []string{"agricultural"}, form.Value["landType"])
	assert.ElementsMatch(t, []string{"key-1", "key-2"}, form.Value["imageKeys"])
	require.Len(t, form.File["images"], 1)
	assert.Equal(t, "front.jpg", form.File["images"][0].Filename)
}

func TestRoundTrip_HydrateAfterSerialize(t *testing.T) {
	c := createValidLandsController(t)
	require.NoError(t, c.ToggleSetMember(schema.FieldAmenities, "Borewell", true))

	payload, err := Serialize(c.Draft())
	require.NoError(t, err)

	// Simulate the upstream echoing the stored property back
	remote := map[string]interface{}{"propertyId": "prop-7"}
	for _, kv := range payload.Values {
		remote[kv.Key] = kv.Value
	}
	keys := make([]interface{}, 0, len(payload.ImageKeys))
	for _, k := range payload.ImageKeys {
		keys = append(keys, k)
	}
	remote["imageKeys"] = keys

	fresh := NewController(session.Absent(), logger.NewNoOpLogger())
	require.NoError(t, fresh.Hydrate(remote))

	again, err := Serialize(fresh.Draft())
	require.NoError(t, err)

	// Every field present in both directions survives unchanged
	for _, kv := range payload.Values {
		got, ok := again.Get(kv.Key)
		require.True(t, ok, "field %s lost in round trip", kv.Key)
		assert.Equal(t, kv.Value, got, "field %s changed in round trip", kv.Key)
	}
	assert.Equal(t, payload.ImageKeys, again.ImageKeys)
}
