package ecommerce

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jens252/billbee-bricklink/internal/domain/integration"
)

func lotJSON(id int, no, itemType string, quantity int) string {
	return fmt.Sprintf(`{"inventory_id":%d,"item":{"no":%q,"name":"Lot %d","type":%q},"color_id":11,"quantity":%d,"unit_price":"20.00","sale_rate":10}`,
		id, no, id, itemType, quantity)
}

const falconCatalogJSON = `{"no":"75192-1","type":"SET","image_url":"//img.bricklink.com/75192-1.png","weight":"13500","dim_x":"59","dim_y":"48","dim_z":"19","description":"UCS"}`

// ---------------------------------------------------------------------------
// Products
// ---------------------------------------------------------------------------

func TestProductRepository_GetProducts(t *testing.T) {
	store := newFakeStore().
		on("inventories", "["+lotJSON(1, "75192-1", "SET", 2)+","+lotJSON(2, "sw0001a", "MINIFIG", 1)+","+lotJSON(3, "3001", "PART", 50)+"]").
		on("items/SET/75192-1", falconCatalogJSON).
		on("items/PART/3001", `{"no":"3001","type":"PART","weight":"2.3"}`)
	settings := Settings{ImportStockroom: true, ImportTypes: []string{"SET", "MINIFIG", "PART"}}
	repo := NewProductRepository(store, settings, nil)

	t.Run("first page with catalog data", func(t *testing.T) {
		result, err := repo.GetProducts(context.Background(), 1, 2)
		require.NoError(t, err)
		assert.Equal(t, 3, result.TotalCount)
		require.Len(t, result.Items, 2)

		falcon := result.Items[0]
		assert.Equal(t, "1", falcon.ID)
		assert.Equal(t, "75192", falcon.SKU)
		assert.Equal(t, "UCS", falcon.Description)
		assertDecimal(t, "18", falcon.Price)
		require.NotNil(t, falcon.WeightInKg)
		assertDecimal(t, "13.5", *falcon.WeightInKg)
		require.Len(t, falcon.Images, 1)
		assert.Equal(t, "https://img.bricklink.com/75192-1.png", falcon.Images[0].URL)

		// no catalog entry for the minifig
		minifig := result.Items[1]
		assert.Equal(t, "Msw0001a", minifig.SKU)
		assert.Nil(t, minifig.WeightInKg)
		assert.Empty(t, minifig.Images)

		assert.Equal(t, map[string]string{"status": "Y,S", "item_type": "SET,MINIFIG,PART"}, store.queries["inventories"])
	})

	t.Run("second page", func(t *testing.T) {
		result, err := repo.GetProducts(context.Background(), 2, 2)
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "P0113001", result.Items[0].SKU)
		assertDecimal(t, "50", result.Items[0].Quantity)
	})

	t.Run("past the last page", func(t *testing.T) {
		result, err := repo.GetProducts(context.Background(), 3, 2)
		require.NoError(t, err)
		assert.Equal(t, 3, result.TotalCount)
		assert.Empty(t, result.Items)
	})
}

func TestProductRepository_GetProducts_Errors(t *testing.T) {
	t.Run("list fails", func(t *testing.T) {
		store := newFakeStore().fail("inventories", serverError("inventories"))
		_, err := NewProductRepository(store, Settings{}, nil).GetProducts(context.Background(), 1, 10)
		assert.ErrorIs(t, err, integration.ErrOperationFailed)
	})

	t.Run("unconvertible lot", func(t *testing.T) {
		store := newFakeStore().on("inventories", `[{"inventory_id":1,"item":{"no":"3001","type":"PART"},"quantity":1}]`)
		_, err := NewProductRepository(store, Settings{}, nil).GetProducts(context.Background(), 1, 10)
		assert.ErrorIs(t, err, integration.ErrOperationFailed)
		assert.ErrorIs(t, err, ErrSKUMissingColor)
	})

	t.Run("invalid sale rate", func(t *testing.T) {
		store := newFakeStore().on("inventories", `[{"inventory_id":1,"item":{"no":"1","type":"SET"},"sale_rate":150}]`)
		_, err := NewProductRepository(store, Settings{}, nil).GetProducts(context.Background(), 1, 10)
		assert.ErrorIs(t, err, integration.ErrOperationFailed)
	})
}

func TestProductRepository_GetProduct(t *testing.T) {
	store := newFakeStore().
		on("inventories/1", lotJSON(1, "75192-1", "SET", 2)).
		fail("items/SET/75192-1", serverError("items/SET/75192-1")).
		fail("inventories/9", serverError("inventories/9"))
	repo := NewProductRepository(store, Settings{}, nil)

	t.Run("catalog failure degrades", func(t *testing.T) {
		p, err := repo.GetProduct(context.Background(), "1")
		require.NoError(t, err)
		assert.Equal(t, "75192", p.SKU)
		assert.Equal(t, Manufacturer, p.Manufacturer)
		assert.Nil(t, p.WeightInKg)
	})

	t.Run("unknown lot", func(t *testing.T) {
		_, err := repo.GetProduct(context.Background(), "2")
		assert.ErrorIs(t, err, integration.ErrProductNotFound)
		assert.ErrorContains(t, err, retainHint)
	})

	t.Run("store unavailable", func(t *testing.T) {
		_, err := repo.GetProduct(context.Background(), "9")
		assert.ErrorIs(t, err, integration.ErrOperationFailed)
	})

	t.Run("empty id", func(t *testing.T) {
		_, err := repo.GetProduct(context.Background(), "")
		assert.ErrorIs(t, err, integration.ErrInvalidArgument)
	})
}

// ---------------------------------------------------------------------------
// Shipping profiles
// ---------------------------------------------------------------------------

func TestShippingProfileRepository_GetShippingProfiles(t *testing.T) {
	t.Run("available methods only", func(t *testing.T) {
		store := newFakeStore().on("settings/shipping_methods", `[
			{"method_id": 1, "name": "DHL Paket", "is_available": true},
			{"method_id": 2, "name": "Retired", "is_available": false},
			{"method_id": 3, "name": "Pickup", "is_available": true}
		]`)
		profiles, err := NewShippingProfileRepository(store, nil).GetShippingProfiles(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []integration.ShippingProfile{
			{ID: "1", Name: "DHL Paket"},
			{ID: "3", Name: "Pickup"},
		}, profiles)
	})

	t.Run("none available", func(t *testing.T) {
		store := newFakeStore().on("settings/shipping_methods", `[]`)
		profiles, err := NewShippingProfileRepository(store, nil).GetShippingProfiles(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, profiles)
		assert.Empty(t, profiles)
	})

	t.Run("store unavailable", func(t *testing.T) {
		store := newFakeStore().fail("settings/shipping_methods", serverError("settings/shipping_methods"))
		_, err := NewShippingProfileRepository(store, nil).GetShippingProfiles(context.Background())
		assert.ErrorIs(t, err, integration.ErrOperationFailed)
	})
}
