package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "listing-frontdesk/internal/common/errors"
	"listing-frontdesk/internal/common/logger"
	"listing-frontdesk/internal/schema"
	"listing-frontdesk/internal/session"
	"listing-frontdesk/internal/uploader"
)

func testUser() session.State {
	return session.Authenticated(session.User{ID: "user-1", FullName: "Asha Rao", Type: "owner"})
}

func uploadedImage(key string) uploader.Image {
	return uploader.Image{ID: "img-" + key, Status: uploader.StatusUploaded, RemoteKey: key}
}

func setAddress(t *testing.T, c *Controller) {
	t.Helper()
	require.NoError(t, c.SetField(schema.FieldAddressState, "Karnataka"))
	require.NoError(t, c.SetField(schema.FieldAddressCity, "Bengaluru"))
	require.NoError(t, c.SetField(schema.FieldAddressLocality, "Indiranagar"))
}

// createValidLandsController fills every required Lands field.
func createValidLandsController(t *testing.T) *Controller {
	t.Helper()
	c := NewController(testUser(), logger.NewNoOpLogger())
	require.NoError(t, c.SetCategory(schema.CategoryCommercial))
	require.NoError(t, c.SetSubCategory(schema.SubCategoryLands))
	require.NoError(t, c.SetField(schema.FieldLandArea, "2.5"))
	require.NoError(t, c.SetField(schema.FieldLandType, "agricultural"))
	require.NoError(t, c.SetField(schema.FieldApproachRoad, "Yes"))
	require.NoError(t, c.SetField(schema.FieldPropertyPrice, "200000"))
	setAddress(t, c)
	c.AddImages([]uploader.Image{uploadedImage("key-1")})
	return c
}

// createValidHostelsRentController fills every required (Hostels, Rent) field
// except attachedWashroom, which the caller sets.
func createValidHostelsRentController(t *testing.T) *Controller {
	t.Helper()
	c := NewController(testUser(), logger.NewNoOpLogger())
	require.NoError(t, c.SetCategory(schema.CategoryCommercial))
	require.NoError(t, c.SetSubCategory(schema.SubCategoryHostels))
	require.NoError(t, c.SetSaleType(schema.SaleTypeRent))
	require.NoError(t, c.SetField(schema.FieldPropertyName, "Sunrise Hostel"))
	require.NoError(t, c.SetField(schema.FieldPropertyPrice, "8000"))
	require.NoError(t, c.SetField(schema.FieldTotalRooms, "20"))
	require.NoError(t, c.SetField(schema.FieldTotalFloors, "3"))
	require.NoError(t, c.SetField(schema.FieldRoomType, "Double"))
	require.NoError(t, c.SetField(schema.FieldGenderPreference, "Any"))
	require.NoError(t, c.SetField(schema.FieldMealsIncluded, "true"))
	require.NoError(t, c.SetField(schema.FieldLiftAvailable, "false"))
	require.NoError(t, c.SetFurnishing("Semi Furnished"))
	require.NoError(t, c.SetField(schema.FieldAgeOfProperty, "1-5 years"))
	setAddress(t, c)
	c.AddImages([]uploader.Image{uploadedImage("key-1")})
	return c
}

func TestValidate_FlatsPriceTooLow(t *testing.T) {
	c := NewController(testUser(), logger.NewNoOpLogger())
	require.NoError(t, c.SetField(schema.FieldProjectName, "Green Acres"))
	require.NoError(t, c.SetField(schema.FieldPropertyPrice, "500"))
	require.NoError(t, c.SetField(schema.FieldTotalBathrooms, "2"))
	require.NoError(t, c.SetField(schema.FieldTotalFloors, "10"))
	require.NoError(t, c.SetField(schema.FieldYourFloor, "4"))
	require.NoError(t, c.SetField(schema.FieldCarpetArea, "950"))
	require.NoError(t, c.SetField(schema.FieldBuildupArea, "1100"))
	require.NoError(t, c.ToggleSetMember(schema.FieldAmenities, "Lift", true))
	require.NoError(t, c.SetField(schema.FieldConstructionStatus, "Ready to Move"))
	require.NoError(t, c.SetFurnishing("Semi Furnished"))
	require.NoError(t, c.SetField(schema.FieldBHKs, "2 BHK"))
	require.NoError(t, c.SetField(schema.FieldPropertyFacing, "East"))
	require.NoError(t, c.SetField(schema.FieldAgeOfProperty, "1-5 years"))
	require.NoError(t, c.SetField(schema.FieldIsIndependent, "false"))
	setAddress(t, c)
	c.AddImages([]uploader.Image{uploadedImage("key-1")})

	result := Validate(c.Draft())
	require.False(t, result.Valid())
	require.Len(t, result.Errors, 1)
	assert.Equal(t, apperrors.ErrCodePriceTooLow, result.Errors[0].Code)

	headline := result.Headline()
	stdErr, ok := headline.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodePriceTooLow, stdErr.Code)
}

func TestValidate_LandsComplete(t *testing.T) {
	c := createValidLandsController(t)

	result := Validate(c.Draft())
	assert.True(t, result.Valid())
	assert.NoError(t, result.Headline())
}

func TestValidate_HostelsRentAttachedWashroomMissing(t *testing.T) {
	c := createValidHostelsRentController(t)

	result := Validate(c.Draft())
	require.False(t, result.Valid())
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, schema.FieldAttachedWashroom, result.Errors[0].Field)
	assert.Equal(t, apperrors.ErrCodeMissingRequiredField, result.Errors[0].Code)

	// Filling it makes the draft valid
	require.NoError(t, c.SetField(schema.FieldAttachedWashroom, "true"))
	assert.True(t, Validate(c.Draft()).Valid())
}

func TestValidate_AccumulatesAllFailures(t *testing.T) {
	c := NewController(testUser(), logger.NewNoOpLogger())
	require.NoError(t, c.SetCategory(schema.CategoryCommercial))
	require.NoError(t, c.SetSubCategory(schema.SubCategoryLands))
	// Only one of four Lands fields filled, no address, no images
	require.NoError(t, c.SetField(schema.FieldLandArea, "2.5"))

	result := Validate(c.Draft())
	require.False(t, result.Valid())

	fields := result.Fields()
	assert.Contains(t, fields, schema.FieldLandType)
	assert.Contains(t, fields, schema.FieldApproachRoad)
	assert.Contains(t, fields, schema.FieldPropertyPrice)
	assert.Contains(t, fields, schema.FieldAddressState)
	assert.Contains(t, fields, schema.FieldAddressCity)
	assert.Contains(t, fields, schema.FieldAddressLocality)
	assert.NotContains(t, fields, schema.FieldLandArea)

	// Headline is the first missing field in schema order
	stdErr := result.Headline().(*apperrors.StandardError)
	assert.Equal(t, apperrors.ErrCodeMissingRequiredField, stdErr.Code)
	assert.Equal(t, "landType", stdErr.Metadata["field"])
}

func TestValidate_NoUploadedImages(t *testing.T) {
	c := createValidLandsController(t)
	c.Draft().Images = []uploader.Image{
		{ID: "img-1", Status: uploader.StatusFailed},
		{ID: "img-2", Status: uploader.StatusUploading},
	}

	result := Validate(c.Draft())
	require.False(t, result.Valid())
	require.Len(t, result.Errors, 1)
	assert.Equal(t, apperrors.ErrCodeNoImages, result.Errors[0].Code)
}

func TestValidate_UnknownSubCategory(t *testing.T) {
	d := NewDraft()
	d.SubCategory = "Castles"

	result := Validate(d)
	require.False(t, result.Valid())
	assert.Equal(t, apperrors.ErrCodeUnknownCategory, result.Errors[0].Code)
}

func TestValidate_MessagesComeFromSharedConstructors(t *testing.T) {
	// Per-field wording must stay in lockstep with the error package, so the
	// browser sees the same text whether an error comes from Validate or from
	// a handler building the StandardError directly.
	c := NewController(testUser(), logger.NewNoOpLogger())
	require.NoError(t, c.SetCategory(schema.CategoryCommercial))
	require.NoError(t, c.SetSubCategory(schema.SubCategoryLands))
	require.NoError(t, c.SetField(schema.FieldPropertyPrice, "500"))

	result := Validate(c.Draft())
	require.False(t, result.Valid())

	byField := map[schema.FieldName]string{}
	byCode := map[apperrors.ErrorCode]string{}
	for _, ve := range result.Errors {
		byField[ve.Field] = ve.Message
		byCode[ve.Code] = ve.Message
	}
	assert.Equal(t,
		apperrors.NewMissingFieldError("landArea", schema.LabelOf(schema.FieldLandArea)).Message,
		byField[schema.FieldLandArea])
	assert.Equal(t,
		apperrors.NewPriceTooLowError(500, schema.MinPropertyPrice).Message,
		byCode[apperrors.ErrCodePriceTooLow])
	assert.Equal(t,
		apperrors.NewNoImagesError().Message,
		byCode[apperrors.ErrCodeNoImages])
}

func TestValidate_ZeroIsProvided(t *testing.T) {
	// A numeric zero or boolean false is a provided value, not a missing one.
	c := createValidHostelsRentController(t)
	require.NoError(t, c.SetField(schema.FieldAttachedWashroom, "false"))

	result := Validate(c.Draft())
	assert.True(t, result.Valid())
}
