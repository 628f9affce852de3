package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/TeknoZest/damenschstorefront/internal/models"
)

func sampleListing() models.ListingResult {
	return models.ListingResult{
		Total:       1,
		CurrentPage: 1,
		Filters: []models.FilterSection{{
			Name:  "Brand",
			Key:   "brand",
			Items: []models.FilterItem{{Label: "Nike", Value: "Nike", IsSelected: true}},
		}},
		Items: []models.Product{{
			ID:   "p1",
			Slug: "tee",
			Name: "Tee",
			Price: models.Price{Raw: models.Money{
				WithTax:    decimal.RequireFromString("19.99"),
				WithoutTax: decimal.RequireFromString("16.66"),
			}},
		}},
	}
}

func repositories(t *testing.T) map[string]SnapshotRepository {
	t.Helper()
	sqliteRepo, err := NewSQLiteSnapshotRepository(filepath.Join(t.TempDir(), "snapshots.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { sqliteRepo.Close() })

	return map[string]SnapshotRepository{
		"sqlite":    sqliteRepo,
		"in-memory": NewInMemorySnapshotRepository(),
	}
}

func TestSnapshotRepository_Listing(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := repo.FindListing(ctx, "women/tops", "p=1")
			assert.ErrorIs(t, err, ErrSnapshotNotFound)

			require.NoError(t, repo.SaveListing(ctx, "women/tops", "p=1", models.ListingResult{Total: 9}))
			require.NoError(t, repo.SaveListing(ctx, "women/tops", "p=1", sampleListing()))

			snapshot, err := repo.FindListing(ctx, "women/tops", "p=1")
			require.NoError(t, err)
			assert.Equal(t, 1, snapshot.Result.Total)
			assert.Equal(t, "Nike", snapshot.Result.Filters[0].Items[0].Value)
			assert.True(t, snapshot.Result.Items[0].Price.Raw.WithTax.Equal(decimal.RequireFromString("19.99")))
			assert.False(t, snapshot.SavedAt.IsZero())

			_, err = repo.FindListing(ctx, "women/tops", "p=2")
			assert.ErrorIs(t, err, ErrSnapshotNotFound)
		})
	}
}

func TestSnapshotRepository_Product(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			product := models.Product{ID: "p1", Slug: "products/tee", Name: "Tee", VariantProducts: []models.VariantProduct{{Slug: "products/tee-red", CurrentStock: 3}}}

			require.NoError(t, repo.SaveProduct(ctx, "products/tee", product))

			snapshot, err := repo.FindProduct(ctx, "products/tee")
			require.NoError(t, err)
			assert.Equal(t, product.VariantProducts, snapshot.Product.VariantProducts)

			require.NoError(t, repo.SaveProduct(ctx, "products/tee", models.Product{ID: "p1", Name: "Tee v2"}))
			snapshot, err = repo.FindProduct(ctx, "products/tee")
			require.NoError(t, err)
			assert.Equal(t, "Tee v2", snapshot.Product.Name)

			require.NoError(t, repo.DeleteProduct(ctx, "products/tee"))
			_, err = repo.FindProduct(ctx, "products/tee")
			assert.ErrorIs(t, err, ErrSnapshotNotFound)
		})
	}
}
