// Package schema is the single source of truth for property categories,
// per-category required fields, and field rendering metadata.
package schema

import "sort"

// FieldKind tells consumers how a field is captured and coerced.
type FieldKind string

const (
	KindText        FieldKind = "text"
	KindNumber      FieldKind = "number"
	KindSelect      FieldKind = "select"
	KindMultiSelect FieldKind = "multiselect"
	KindRadio       FieldKind = "radio"
	KindBoolean     FieldKind = "boolean"
)

// FieldName identifies a draft attribute. Names match the upstream wire format.
type FieldName string

const (
	FieldProjectName   FieldName = "projectName"
	FieldPropertyName  FieldName = "propertyName"
	FieldTitle         FieldName = "title"
	FieldDescription   FieldName = "description"
	FieldPropertyPrice FieldName = "propertyPrice"

	FieldTotalBathrooms FieldName = "totalBathrooms"
	FieldTotalRooms     FieldName = "totalRooms"
	FieldCarpetArea     FieldName = "carpetArea"
	FieldBuildupArea    FieldName = "buildupArea"
	FieldLength         FieldName = "length"
	FieldWidth          FieldName = "width"
	FieldHeight         FieldName = "height"
	FieldTotalArea      FieldName = "totalArea"
	FieldPlotArea       FieldName = "plotArea"
	FieldLandArea       FieldName = "landArea"
	FieldDistOuterRing  FieldName = "distFromOutRRoad"
	FieldTotalFloors    FieldName = "totalfloors"
	FieldYourFloor      FieldName = "yourfloor"

	FieldBHKs               FieldName = "bhks"
	FieldFurnishing         FieldName = "furnishing"
	FieldConstructionStatus FieldName = "constructionStatus"
	FieldPropertyFacing     FieldName = "propertyFacing"
	FieldAgeOfProperty      FieldName = "ageOfTheProperty"
	FieldLandType           FieldName = "landType"
	FieldApproachRoad       FieldName = "approachRoad"
	FieldWashroom           FieldName = "washroom"
	FieldParking            FieldName = "parking"
	FieldCarParking         FieldName = "carParking"
	FieldRoomType           FieldName = "roomType"
	FieldGenderPreference   FieldName = "genderPreference"

	FieldReraApproved     FieldName = "reraApproved"
	FieldIsIndependent    FieldName = "isIndependent"
	FieldWorkingWithAgent FieldName = "workingWithAgent"
	FieldMealsIncluded    FieldName = "mealsIncluded"
	FieldLiftAvailable    FieldName = "liftAvailable"
	FieldAttachedWashroom FieldName = "attachedWashroom"
	FieldFencing          FieldName = "fencing"

	FieldAmenities           FieldName = "amenities"
	FieldFurnishingAmenities FieldName = "furnishingAmenities"
	FieldViewFromProperty    FieldName = "viewFromProperty"

	FieldAddressState    FieldName = "addressState"
	FieldAddressCity     FieldName = "addressCity"
	FieldAddressLocality FieldName = "addressLocality"
)

// FieldSpec describes one form field: how it renders, how raw input is
// coerced, and any value constraints.
type FieldSpec struct {
	Name    FieldName `json:"name"`
	Label   string    `json:"label"`
	Kind    FieldKind `json:"kind"`
	Options []string  `json:"options,omitempty"`
	Min     *float64  `json:"min,omitempty"`
}

func minOf(v float64) *float64 { return &v }

// MinPropertyPrice is the lowest accepted listing price.
const MinPropertyPrice = 1000.0

// fieldRegistry holds the full catalogue of known form fields.
var fieldRegistry = map[FieldName]FieldSpec{
	FieldProjectName:   {Name: FieldProjectName, Label: "project name", Kind: KindText},
	FieldPropertyName:  {Name: FieldPropertyName, Label: "property name", Kind: KindText},
	FieldTitle:         {Name: FieldTitle, Label: "property title", Kind: KindText},
	FieldDescription:   {Name: FieldDescription, Label: "description", Kind: KindText},
	FieldPropertyPrice: {Name: FieldPropertyPrice, Label: "property price", Kind: KindNumber, Min: minOf(MinPropertyPrice)},

	FieldTotalBathrooms: {Name: FieldTotalBathrooms, Label: "number of bathrooms", Kind: KindNumber},
	FieldTotalRooms:     {Name: FieldTotalRooms, Label: "number of rooms", Kind: KindNumber},
	FieldCarpetArea:     {Name: FieldCarpetArea, Label: "carpet area", Kind: KindNumber},
	FieldBuildupArea:    {Name: FieldBuildupArea, Label: "buildup area", Kind: KindNumber},
	FieldLength:         {Name: FieldLength, Label: "length", Kind: KindNumber},
	FieldWidth:          {Name: FieldWidth, Label: "width", Kind: KindNumber},
	FieldHeight:         {Name: FieldHeight, Label: "height", Kind: KindNumber},
	FieldTotalArea:      {Name: FieldTotalArea, Label: "total area", Kind: KindNumber},
	FieldPlotArea:       {Name: FieldPlotArea, Label: "plot area", Kind: KindNumber},
	FieldLandArea:       {Name: FieldLandArea, Label: "land area", Kind: KindNumber},
	FieldDistOuterRing:  {Name: FieldDistOuterRing, Label: "distance from outer ring road", Kind: KindNumber},
	FieldTotalFloors:    {Name: FieldTotalFloors, Label: "total floors", Kind: KindNumber},
	FieldYourFloor:      {Name: FieldYourFloor, Label: "your floor", Kind: KindNumber},

	FieldBHKs: {Name: FieldBHKs, Label: "BHK configuration", Kind: KindSelect,
		Options: []string{"1 BHK", "2 BHK", "3 BHK", "4 BHK", "5+ BHK"}},
	FieldFurnishing: {Name: FieldFurnishing, Label: "furnishing", Kind: KindSelect,
		Options: []string{"Unfurnished", "Semi Furnished", "Fully Furnished"}},
	FieldConstructionStatus: {Name: FieldConstructionStatus, Label: "construction status", Kind: KindSelect,
		Options: []string{"Ready to Move", "Under Construction"}},
	FieldPropertyFacing: {Name: FieldPropertyFacing, Label: "property facing", Kind: KindSelect,
		Options: []string{"North", "South", "East", "West", "North-East", "North-West", "South-East", "South-West"}},
	FieldAgeOfProperty: {Name: FieldAgeOfProperty, Label: "age of the property", Kind: KindSelect,
		Options: []string{"0-1 years", "1-5 years", "5-10 years", "10+ years"}},
	FieldLandType: {Name: FieldLandType, Label: "land type", Kind: KindSelect,
		Options: []string{"agricultural", "commercial", "residential", "industrial"}},
	FieldApproachRoad: {Name: FieldApproachRoad, Label: "approach road", Kind: KindRadio,
		Options: []string{"Yes", "No"}},
	FieldWashroom: {Name: FieldWashroom, Label: "number of washrooms", Kind: KindNumber},
	FieldParking: {Name: FieldParking, Label: "parking", Kind: KindSelect,
		Options: []string{"Public", "Reserved", "None"}},
	FieldCarParking: {Name: FieldCarParking, Label: "car parking", Kind: KindSelect,
		Options: []string{"Open", "Covered", "None"}},
	FieldRoomType: {Name: FieldRoomType, Label: "room type", Kind: KindSelect,
		Options: []string{"Single", "Double", "Triple", "Dormitory"}},
	FieldGenderPreference: {Name: FieldGenderPreference, Label: "gender preference", Kind: KindSelect,
		Options: []string{"Male", "Female", "Any"}},

	FieldReraApproved:     {Name: FieldReraApproved, Label: "RERA approval", Kind: KindBoolean},
	FieldIsIndependent:    {Name: FieldIsIndependent, Label: "independent property flag", Kind: KindBoolean},
	FieldWorkingWithAgent: {Name: FieldWorkingWithAgent, Label: "working with agent flag", Kind: KindBoolean},
	FieldMealsIncluded:    {Name: FieldMealsIncluded, Label: "meals included", Kind: KindBoolean},
	FieldLiftAvailable:    {Name: FieldLiftAvailable, Label: "lift availability", Kind: KindBoolean},
	FieldAttachedWashroom: {Name: FieldAttachedWashroom, Label: "attached washroom", Kind: KindBoolean},
	FieldFencing:          {Name: FieldFencing, Label: "fencing", Kind: KindBoolean},

	FieldAmenities:           {Name: FieldAmenities, Label: "amenities", Kind: KindMultiSelect},
	FieldFurnishingAmenities: {Name: FieldFurnishingAmenities, Label: "furnishing amenities", Kind: KindMultiSelect},
	FieldViewFromProperty:    {Name: FieldViewFromProperty, Label: "view from property", Kind: KindMultiSelect},

	FieldAddressState:    {Name: FieldAddressState, Label: "state", Kind: KindSelect},
	FieldAddressCity:     {Name: FieldAddressCity, Label: "city", Kind: KindSelect},
	FieldAddressLocality: {Name: FieldAddressLocality, Label: "locality", Kind: KindSelect},
}

// RegisteredFields returns every catalogued field name in sorted order.
func RegisteredFields() []FieldName {
	out := make([]FieldName, 0, len(fieldRegistry))
	for name := range fieldRegistry {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Spec returns the registry entry for a field name.
func Spec(name FieldName) (FieldSpec, bool) {
	spec, ok := fieldRegistry[name]
	return spec, ok
}

// KindOf returns the field kind, defaulting to text for unregistered names.
func KindOf(name FieldName) FieldKind {
	if spec, ok := fieldRegistry[name]; ok {
		return spec.Kind
	}
	return KindText
}

// LabelOf returns the human label used in validation messages.
func LabelOf(name FieldName) string {
	if spec, ok := fieldRegistry[name]; ok {
		return spec.Label
	}
	return string(name)
}
