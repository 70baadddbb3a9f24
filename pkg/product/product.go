// Package product describes packaged food products and the contract of
// product databases such as Open Food Facts.
package product

import (
	"context"
	"strings"
)

// Product is a packaged food product.
type Product struct {
	// Barcode is the EAN/UPC code of the product.
	Barcode string `json:"barcode"`
	// Name is the product name, it can be empty.
	Name string `json:"product_name"`
	// IngredientsText is the label ingredient list as free text.
	IngredientsText string `json:"ingredients_text"`
}

// Fetcher finds products by barcode.
type Fetcher interface {
	// Product returns a product for the barcode. If the product does not
	// exist it returns nil and no error.
	Product(ctx context.Context, barcode string) (*Product, error)
}

// ingredient and name fields of an Open Food Facts product in the order
// of preference.
var (
	ingredientFields = []string{
		"ingredients_text_en",
		"ingredients_text",
		"ingredients_text_with_allergens_en",
	}
	nameFields = []string{"product_name_en", "product_name"}
)

// FromOFF converts the 'product' object of Open Food Facts API response.
// English fields are preferred, empty values fall through to the next
// field.
func FromOFF(barcode string, data map[string]any) *Product {
	return &Product{
		Barcode:         barcode,
		Name:            firstString(data, nameFields),
		IngredientsText: firstString(data, ingredientFields),
	}
}

// NormBarcode removes spaces and dashes people add to barcodes. It returns
// an empty string if the result is not a sequence of digits.
func NormBarcode(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ' || r == '-':
		default:
			return ""
		}
	}
	return sb.String()
}

func firstString(data map[string]any, keys []string) string {
	for _, k := range keys {
		s, ok := data[k].(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}
