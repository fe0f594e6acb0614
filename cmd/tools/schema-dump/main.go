// cmd/tools/schema-dump/main.go
//
// Prints the full category/field schema as JSON, for keeping the UI team and
// upstream API owners aligned on the canonical field set.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"listing-frontdesk/internal/schema"
)

type subCategoryDump struct {
	Category      schema.Category                        `json:"category"`
	SaleTypes     []schema.SaleType                      `json:"saleTypes"`
	AmenityGroups []schema.FieldName                     `json:"amenityGroups"`
	Required      map[schema.SaleType][]schema.FieldName `json:"requiredFields"`
}

func main() {
	dump := map[schema.SubCategory]subCategoryDump{}

	for _, category := range schema.Categories() {
		for _, sub := range schema.SubCategoriesFor(category) {
			saleTypes, err := schema.AllowedSaleTypes(sub)
			if err != nil {
				fmt.Fprintf(os.Stderr, "sale types for %s: %v\n", sub, err)
				os.Exit(1)
			}
			amenityGroups, err := schema.AmenityGroups(sub)
			if err != nil {
				fmt.Fprintf(os.Stderr, "amenity groups for %s: %v\n", sub, err)
				os.Exit(1)
			}

			required := map[schema.SaleType][]schema.FieldName{}
			for _, saleType := range saleTypes {
				fields, err := schema.RequiredFields(sub, saleType)
				if err != nil {
					fmt.Fprintf(os.Stderr, "required fields for %s/%s: %v\n", sub, saleType, err)
					os.Exit(1)
				}
				required[saleType] = fields
			}

			dump[sub] = subCategoryDump{
				Category:      category,
				SaleTypes:     saleTypes,
				AmenityGroups: amenityGroups,
				Required:      required,
			}
		}
	}

	out := map[string]interface{}{
		"subCategories": dump,
		"fields":        fieldCatalogue(),
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "encode schema: %v\n", err)
		os.Exit(1)
	}
}

func fieldCatalogue() map[schema.FieldName]schema.FieldSpec {
	catalogue := map[schema.FieldName]schema.FieldSpec{}
	for _, name := range schema.RegisteredFields() {
		if spec, ok := schema.Spec(name); ok {
			catalogue[name] = spec
		}
	}
	return catalogue
}
