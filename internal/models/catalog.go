package models

import "github.com/shopspring/decimal"

// AttributePair is one (fieldCode, fieldValue) coordinate of a variant,
// e.g. ("global.colour", "red").
type AttributePair struct {
	FieldCode  string `json:"fieldCode"`
	FieldValue string `json:"fieldValue"`
}

// VariantAttributeOption lists the selectable values of one attribute
// across a product family.
type VariantAttributeOption struct {
	FieldCode   string       `json:"fieldCode"`
	FieldName   string       `json:"fieldName"`
	FieldValues []FieldValue `json:"fieldValues"`
}

type FieldValue struct {
	FieldValue   string `json:"fieldValue"`
	DisplayValue string `json:"displayValue,omitempty"`
}

// VariantProduct is a concrete purchasable SKU of a product family.
type VariantProduct struct {
	StockCode            string          `json:"stockCode"`
	ProductID            string          `json:"productId"`
	Slug                 string          `json:"slug"`
	CurrentStock         int             `json:"currentStock"`
	IsPreOrderEnabled    bool            `json:"isPreOrderEnabled"`
	SellWithoutInventory bool            `json:"sellWithoutInventory"`
	VariantAttributes    []AttributePair `json:"variantAttributes"`
}

// Money is an amount with and without tax.
type Money struct {
	WithTax    decimal.Decimal `json:"withTax"`
	WithoutTax decimal.Decimal `json:"withoutTax"`
}

type FormattedMoney struct {
	WithTax    string `json:"withTax"`
	WithoutTax string `json:"withoutTax"`
}

// Price carries raw amounts and their display strings.
type Price struct {
	Raw       Money          `json:"raw"`
	Formatted FormattedMoney `json:"formatted"`
}

type PreOrder struct {
	Enabled bool   `json:"isEnabled"`
	Message string `json:"shortMessage,omitempty"`
}

type Image struct {
	URL      string `json:"image"`
	Priority int    `json:"priority,omitempty"`
}

// Attribute is a display/value pair shown on the product detail view.
type Attribute struct {
	Display string `json:"display"`
	Value   string `json:"value"`
}

// Product is a product family as the catalog returns it.
type Product struct {
	RecordID                 string                   `json:"recordId,omitempty"`
	ID                       string                   `json:"id"`
	Slug                     string                   `json:"slug"`
	Name                     string                   `json:"name"`
	Brand                    string                   `json:"brand,omitempty"`
	Price                    Price                    `json:"price"`
	CurrentStock             int                      `json:"currentStock"`
	PreOrder                 PreOrder                 `json:"preOrder"`
	Images                   []Image                  `json:"images,omitempty"`
	Attributes               []Attribute              `json:"attributes,omitempty"`
	VariantProductsAttribute []VariantAttributeOption `json:"variantProductsAttribute,omitempty"`
	VariantProducts          []VariantProduct         `json:"variantProducts,omitempty"`
}

// Category is a catalog category; ID is what the search endpoint takes.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	Link string `json:"link,omitempty"`
}
