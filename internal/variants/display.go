package variants

import (
	"fmt"

	"github.com/TeknoZest/damenschstorefront/internal/models"
)

// DisplayKind is how an attribute selector is rendered. The set is closed.
type DisplayKind int

const (
	DisplayNone DisplayKind = iota
	DisplayDropdown
	DisplayInlineList
)

func (k DisplayKind) String() string {
	switch k {
	case DisplayDropdown:
		return "dropdown"
	case DisplayInlineList:
		return "inlineList"
	case DisplayNone:
		return "none"
	default:
		return fmt.Sprintf("DisplayKind(%d)", int(k))
	}
}

func (k DisplayKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *DisplayKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "dropdown":
		*k = DisplayDropdown
	case "inlineList":
		*k = DisplayInlineList
	case "none":
		*k = DisplayNone
	default:
		return fmt.Errorf("unknown display kind %q", text)
	}
	return nil
}

// DisplayKindFor picks the widget for an attribute field code.
func DisplayKindFor(fieldCode string) DisplayKind {
	switch fieldCode {
	case "clothing.size":
		return DisplayDropdown
	case "global.colour":
		return DisplayInlineList
	default:
		return DisplayNone
	}
}

// ValueOption is one selectable value of a Selector, with its stock and
// the path of the variant it leads to.
type ValueOption struct {
	Value     string        `json:"value"`
	Label     string        `json:"label"`
	Selected  bool          `json:"selected"`
	Available bool          `json:"available"`
	Path      string        `json:"path,omitempty"`
	Stock     StockSnapshot `json:"stock"`
}

// Selector is everything a client needs to render one attribute picker.
type Selector struct {
	FieldCode string        `json:"fieldCode"`
	Label     string        `json:"label"`
	Kind      DisplayKind   `json:"kind"`
	Current   string        `json:"current,omitempty"`
	Values    []ValueOption `json:"values"`
}

// BuildSelectors builds the pickers for product as seen from currentSlug.
// Attributes without a display kind are left out.
func BuildSelectors(product models.Product, currentSlug string) []Selector {
	current := ResolveCurrentAttributesFromSlug(product.VariantProducts, currentSlug)

	selectors := make([]Selector, 0, len(product.VariantProductsAttribute))
	for _, option := range product.VariantProductsAttribute {
		kind := DisplayKindFor(option.FieldCode)
		switch kind {
		case DisplayNone:
			continue
		case DisplayDropdown, DisplayInlineList:
			selectors = append(selectors, buildSelector(product, option, kind, current[option.FieldCode]))
		}
	}
	return selectors
}

func buildSelector(product models.Product, option models.VariantAttributeOption, kind DisplayKind, current string) Selector {
	values := make([]ValueOption, 0, len(option.FieldValues))
	for _, fv := range option.FieldValues {
		label := fv.DisplayValue
		if label == "" {
			label = fv.FieldValue
		}

		stock := GetStockForAttribute(product.VariantProducts, option.FieldCode, fv.FieldValue)
		value := ValueOption{
			Value:     fv.FieldValue,
			Label:     label,
			Selected:  fv.FieldValue == current,
			Available: stock.Purchasable(),
			Stock:     stock,
		}
		if variant, ok := ResolveVariant(product, models.AttributePair{FieldCode: option.FieldCode, FieldValue: fv.FieldValue}); ok {
			value.Path = VariantPath(variant.Slug)
		}
		values = append(values, value)
	}

	return Selector{
		FieldCode: option.FieldCode,
		Label:     option.FieldName,
		Kind:      kind,
		Current:   current,
		Values:    values,
	}
}
