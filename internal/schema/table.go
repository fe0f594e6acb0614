package schema

import (
	apperrors "listing-frontdesk/internal/common/errors"
)

// Category is the top-level property classification.
type Category string

const (
	CategoryResidential Category = "Residential"
	CategoryCommercial  Category = "Commercial"
)

// SubCategory is one of the ten supported property types.
type SubCategory string

const (
	SubCategoryFlats         SubCategory = "Flats"
	SubCategoryBuilderFloors SubCategory = "Builder Floors"
	SubCategoryHouseVillas   SubCategory = "House Villas"
	SubCategoryPlots         SubCategory = "Plots"
	SubCategoryFarmhouses    SubCategory = "Farmhouses"
	SubCategoryHotels        SubCategory = "Hotels"
	SubCategoryLands         SubCategory = "Lands"
	SubCategoryOfficeSpaces  SubCategory = "Office Spaces"
	SubCategoryHostels       SubCategory = "Hostels"
	SubCategoryShops         SubCategory = "Shops Showrooms"
)

// SaleType is the transaction type of a listing.
type SaleType string

const (
	SaleTypeSell  SaleType = "Sell"
	SaleTypeRent  SaleType = "Rent"
	SaleTypeLease SaleType = "Lease"
)

// subCategoriesByCategory lists sub-categories in display order. The first
// member is the default selected when the category changes.
var subCategoriesByCategory = map[Category][]SubCategory{
	CategoryResidential: {
		SubCategoryFlats,
		SubCategoryBuilderFloors,
		SubCategoryHouseVillas,
		SubCategoryPlots,
		SubCategoryFarmhouses,
	},
	CategoryCommercial: {
		SubCategoryHotels,
		SubCategoryLands,
		SubCategoryOfficeSpaces,
		SubCategoryHostels,
		SubCategoryShops,
	},
}

// baseRequiredFields maps each sub-category to its required fields in schema
// order. Address fields are appended by RequiredFields, not listed here.
var baseRequiredFields = map[SubCategory][]FieldName{
	SubCategoryFlats: {
		FieldProjectName,
		FieldPropertyPrice,
		FieldTotalBathrooms,
		FieldTotalFloors,
		FieldYourFloor,
		FieldCarpetArea,
		FieldBuildupArea,
		FieldAmenities,
		FieldConstructionStatus,
		FieldFurnishing,
		FieldBHKs,
		FieldPropertyFacing,
		FieldAgeOfProperty,
		FieldIsIndependent,
	},
	SubCategoryBuilderFloors: {
		FieldProjectName,
		FieldPropertyPrice,
		FieldTotalFloors,
		FieldYourFloor,
		FieldAmenities,
		FieldReraApproved,
		FieldAgeOfProperty,
		FieldPropertyFacing,
		FieldConstructionStatus,
		FieldFurnishing,
		FieldBHKs,
	},
	SubCategoryHouseVillas: {
		FieldPropertyPrice,
		FieldCarpetArea,
		FieldBuildupArea,
		FieldBHKs,
		FieldPropertyFacing,
		FieldFurnishing,
		FieldConstructionStatus,
		FieldAgeOfProperty,
		FieldAmenities,
	},
	SubCategoryPlots: {
		FieldPropertyPrice,
		FieldLength,
		FieldWidth,
		FieldPropertyFacing,
		FieldReraApproved,
	},
	SubCategoryFarmhouses: {
		FieldTotalBathrooms,
		FieldLength,
		FieldWidth,
		FieldBHKs,
		FieldFurnishing,
		FieldPropertyFacing,
		FieldAgeOfProperty,
		FieldReraApproved,
		FieldViewFromProperty,
		FieldAmenities,
	},
	SubCategoryHotels: {
		FieldPropertyName,
		FieldPropertyPrice,
		FieldTotalRooms,
		FieldPropertyFacing,
		FieldFurnishing,
		FieldAmenities,
		FieldConstructionStatus,
		FieldAgeOfProperty,
		FieldViewFromProperty,
	},
	SubCategoryLands: {
		FieldLandArea,
		FieldLandType,
		FieldApproachRoad,
		FieldPropertyPrice,
	},
	SubCategoryOfficeSpaces: {
		FieldProjectName,
		FieldPropertyPrice,
		FieldCarpetArea,
		FieldBuildupArea,
		FieldTotalFloors,
		FieldYourFloor,
		FieldFurnishing,
		FieldAmenities,
		FieldConstructionStatus,
		FieldPropertyFacing,
		FieldWashroom,
		FieldReraApproved,
		FieldAgeOfProperty,
	},
	SubCategoryHostels: {
		FieldPropertyName,
		FieldPropertyPrice,
		FieldTotalRooms,
		FieldTotalFloors,
		FieldRoomType,
		FieldGenderPreference,
		FieldMealsIncluded,
		FieldLiftAvailable,
		FieldFurnishing,
		FieldAgeOfProperty,
	},
	SubCategoryShops: {
		FieldPropertyPrice,
		FieldLength,
		FieldWidth,
		FieldTotalFloors,
		FieldYourFloor,
		FieldFurnishing,
		FieldConstructionStatus,
		FieldPropertyFacing,
		FieldAgeOfProperty,
		FieldParking,
		FieldReraApproved,
		FieldWashroom,
	},
}

// saleTypeRequiredFields holds the per-transaction-type additions.
var saleTypeRequiredFields = map[SubCategory]map[SaleType][]FieldName{
	SubCategoryHostels: {
		SaleTypeRent: {FieldAttachedWashroom},
	},
}

// addressFields are required for every sub-category.
var addressFields = []FieldName{
	FieldAddressState,
	FieldAddressCity,
	FieldAddressLocality,
}

// rentableSubCategories are living spaces that may be listed for rent;
// everything else offers lease as the non-sale option. Hostels are both a
// living space and a commercial asset, so they offer all three.
var rentableSubCategories = map[SubCategory]bool{
	SubCategoryFlats:         true,
	SubCategoryBuilderFloors: true,
	SubCategoryHouseVillas:   true,
	SubCategoryFarmhouses:    true,
	SubCategoryHostels:       true,
}

var leasableSubCategories = map[SubCategory]bool{
	SubCategoryPlots:        true,
	SubCategoryHotels:       true,
	SubCategoryLands:        true,
	SubCategoryOfficeSpaces: true,
	SubCategoryHostels:      true,
	SubCategoryShops:        true,
}

// amenityGroupsBySubCategory maps sub-categories to applicable set-valued
// attribute groups.
var amenityGroupsBySubCategory = map[SubCategory][]FieldName{
	SubCategoryFlats:         {FieldAmenities, FieldFurnishingAmenities},
	SubCategoryBuilderFloors: {FieldAmenities, FieldFurnishingAmenities},
	SubCategoryHouseVillas:   {FieldAmenities, FieldFurnishingAmenities},
	SubCategoryPlots:         {},
	SubCategoryFarmhouses:    {FieldAmenities, FieldFurnishingAmenities, FieldViewFromProperty},
	SubCategoryHotels:        {FieldAmenities, FieldFurnishingAmenities, FieldViewFromProperty},
	SubCategoryLands:         {},
	SubCategoryOfficeSpaces:  {FieldAmenities, FieldFurnishingAmenities},
	SubCategoryHostels:       {FieldAmenities, FieldFurnishingAmenities},
	SubCategoryShops:         {FieldAmenities, FieldFurnishingAmenities},
}

// Categories returns the two top-level categories in display order.
func Categories() []Category {
	return []Category{CategoryResidential, CategoryCommercial}
}

// SubCategoriesFor returns the sub-categories of a category in display order.
func SubCategoriesFor(category Category) []SubCategory {
	subs := subCategoriesByCategory[category]
	out := make([]SubCategory, len(subs))
	copy(out, subs)
	return out
}

// DefaultSubCategory returns the sub-category selected when the category
// changes: the first member of its list.
func DefaultSubCategory(category Category) (SubCategory, error) {
	subs, ok := subCategoriesByCategory[category]
	if !ok || len(subs) == 0 {
		return "", apperrors.NewUnknownCategoryError(string(category))
	}
	return subs[0], nil
}

// CategoryOf returns the category a sub-category belongs to.
func CategoryOf(subCategory SubCategory) (Category, error) {
	for category, subs := range subCategoriesByCategory {
		for _, sub := range subs {
			if sub == subCategory {
				return category, nil
			}
		}
	}
	return "", apperrors.NewUnknownCategoryError(string(subCategory))
}

// RequiredFields returns the required fields for a sub-category and
// transaction type, in schema order, address fields last. The result is a
// fresh slice the caller may mutate.
func RequiredFields(subCategory SubCategory, saleType SaleType) ([]FieldName, error) {
	base, ok := baseRequiredFields[subCategory]
	if !ok {
		return nil, apperrors.NewUnknownCategoryError(string(subCategory))
	}

	out := make([]FieldName, 0, len(base)+3+1)
	out = append(out, base...)
	if extras, ok := saleTypeRequiredFields[subCategory]; ok {
		out = append(out, extras[saleType]...)
	}
	out = append(out, addressFields...)
	return out, nil
}

// AmenityGroups returns the set-valued attribute groups applicable to a
// sub-category.
func AmenityGroups(subCategory SubCategory) ([]FieldName, error) {
	groups, ok := amenityGroupsBySubCategory[subCategory]
	if !ok {
		return nil, apperrors.NewUnknownCategoryError(string(subCategory))
	}
	out := make([]FieldName, len(groups))
	copy(out, groups)
	return out, nil
}

// AllowedSaleTypes returns the transaction types offered for a sub-category.
// Sell is always available; living spaces offer Rent, commercial assets
// offer Lease.
func AllowedSaleTypes(subCategory SubCategory) ([]SaleType, error) {
	if _, ok := baseRequiredFields[subCategory]; !ok {
		return nil, apperrors.NewUnknownCategoryError(string(subCategory))
	}
	out := []SaleType{SaleTypeSell}
	if rentableSubCategories[subCategory] {
		out = append(out, SaleTypeRent)
	}
	if leasableSubCategories[subCategory] {
		out = append(out, SaleTypeLease)
	}
	return out, nil
}

// IsKnownSubCategory reports whether the sub-category is in the table.
func IsKnownSubCategory(subCategory SubCategory) bool {
	_, ok := baseRequiredFields[subCategory]
	return ok
}
