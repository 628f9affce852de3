package variants

import (
	"testing"

	"github.com/TeknoZest/damenschstorefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func colour(value string) models.AttributePair {
	return models.AttributePair{FieldCode: "global.colour", FieldValue: value}
}

func size(value string) models.AttributePair {
	return models.AttributePair{FieldCode: "clothing.size", FieldValue: value}
}

func createTestProduct() models.Product {
	return models.Product{
		ID:   "p-1",
		Slug: "products/tee",
		Name: "Tee",
		VariantProductsAttribute: []models.VariantAttributeOption{
			{FieldCode: "global.colour", FieldName: "Colour", FieldValues: []models.FieldValue{{FieldValue: "red"}, {FieldValue: "blue"}, {FieldValue: "green"}}},
			{FieldCode: "clothing.size", FieldName: "Size", FieldValues: []models.FieldValue{{FieldValue: "S"}, {FieldValue: "M", DisplayValue: "Medium"}}},
			{FieldCode: "global.material", FieldName: "Material", FieldValues: []models.FieldValue{{FieldValue: "cotton"}}},
		},
		VariantProducts: []models.VariantProduct{
			{StockCode: "TEE-RED-S", ProductID: "v-1", Slug: "products/tee-red-s", CurrentStock: 4, VariantAttributes: []models.AttributePair{colour("red"), size("S")}},
			{StockCode: "TEE-RED-M", ProductID: "v-2", Slug: "products/tee-red-m", CurrentStock: 0, IsPreOrderEnabled: true, VariantAttributes: []models.AttributePair{colour("red"), size("M")}},
			{StockCode: "TEE-BLUE-M", ProductID: "v-3", Slug: "products/tee-blue-m", CurrentStock: 7, VariantAttributes: []models.AttributePair{colour("blue"), size("M")}},
		},
	}
}

func TestResolveVariant_PicksMatchingSlug(t *testing.T) {
	product := models.Product{
		VariantProducts: []models.VariantProduct{
			{Slug: "a", VariantAttributes: []models.AttributePair{colour("red")}},
			{Slug: "b", VariantAttributes: []models.AttributePair{colour("blue")}},
		},
	}

	variant, ok := ResolveVariant(product, colour("blue"))

	require.True(t, ok)
	assert.Equal(t, "b", variant.Slug)
}

func TestResolveVariant_FirstMatchInListOrder(t *testing.T) {
	product := createTestProduct()

	variant, ok := ResolveVariant(product, colour("red"))

	require.True(t, ok)
	assert.Equal(t, "products/tee-red-s", variant.Slug)
}

func TestResolveVariant_NotFoundDoesNotMutate(t *testing.T) {
	product := createTestProduct()
	before := createTestProduct()

	_, ok := ResolveVariant(product, colour("purple"))

	assert.False(t, ok)
	assert.Equal(t, before, product)
}

func TestResolveVariant_FieldValueIsCaseSensitive(t *testing.T) {
	product := createTestProduct()

	_, ok := ResolveVariant(product, colour("RED"))

	assert.False(t, ok)
}

func TestResolveVariant_ResultDoesNotAliasInput(t *testing.T) {
	product := createTestProduct()

	variant, ok := ResolveVariant(product, colour("blue"))
	require.True(t, ok)
	variant.VariantAttributes[0].FieldValue = "changed"

	assert.Equal(t, "blue", product.VariantProducts[2].VariantAttributes[0].FieldValue)
}

func TestResolveCurrentAttributesFromSlug(t *testing.T) {
	product := createTestProduct()

	current := ResolveCurrentAttributesFromSlug(product.VariantProducts, "products/tee-red-m")

	assert.Equal(t, map[string]string{"global.colour": "red", "clothing.size": "M"}, current)
}

func TestResolveCurrentAttributesFromSlug_ParentSlug(t *testing.T) {
	product := createTestProduct()

	current := ResolveCurrentAttributesFromSlug(product.VariantProducts, "products/tee")

	assert.NotNil(t, current)
	assert.Empty(t, current)
}

func TestGetStockForAttribute_LastMatchWins(t *testing.T) {
	variants := []models.VariantProduct{
		{ProductID: "first", StockCode: "A", CurrentStock: 3, VariantAttributes: []models.AttributePair{colour("red")}},
		{ProductID: "second", StockCode: "B", CurrentStock: 9, SellWithoutInventory: true, VariantAttributes: []models.AttributePair{colour("red")}},
	}

	snapshot := GetStockForAttribute(variants, "global.colour", "red")

	assert.Equal(t, StockSnapshot{Stock: 9, ProductID: "second", SellWithoutInventory: true, StockCode: "B"}, snapshot)
}

func TestGetStockForAttribute_FieldCodeIsCaseInsensitive(t *testing.T) {
	product := createTestProduct()

	snapshot := GetStockForAttribute(product.VariantProducts, "Global.Colour", "blue")

	assert.Equal(t, 7, snapshot.Stock)
	assert.Equal(t, "TEE-BLUE-M", snapshot.StockCode)
}

func TestGetStockForAttribute_NoMatch(t *testing.T) {
	product := createTestProduct()

	testCases := []struct {
		name       string
		fieldCode  string
		fieldValue string
	}{
		{"unknown value", "global.colour", "purple"},
		{"value differs in case", "global.colour", "Blue"},
		{"unknown code", "global.pattern", "red"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			snapshot := GetStockForAttribute(product.VariantProducts, tc.fieldCode, tc.fieldValue)
			assert.Equal(t, StockSnapshot{}, snapshot)
			assert.False(t, snapshot.Purchasable())
		})
	}
}

func TestVariantPathAndProductSlug(t *testing.T) {
	assert.Equal(t, "/products/tee-red-s", VariantPath("products/tee-red-s"))
	assert.Equal(t, "/products/tee", VariantPath("/products/tee"))
	assert.Equal(t, "", VariantPath(""))

	assert.Equal(t, "products/tee", ProductSlug("tee"))
	assert.Equal(t, "products/tee", ProductSlug("products/tee"))
	assert.Equal(t, "products/tee", ProductSlug("/tee/"))
}
