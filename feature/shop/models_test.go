package shop_test

import (
	"testing"

	"shop-transformer/core/matching"
	"shop-transformer/feature/shop"

	"github.com/stretchr/testify/assert"
)

func TestShopModels(t *testing.T) {
	t.Run("TableNames", func(t *testing.T) {
		assert.Equal(t, "Customer", shop.Customer{}.TableName())
		assert.Equal(t, "Unit", shop.Unit{}.TableName())
		assert.Equal(t, "Address", shop.Address{}.TableName())
		assert.Equal(t, "Note", shop.Note{}.TableName())
		assert.Equal(t, "ServiceHistory", shop.ServiceHistory{}.TableName())
		assert.Equal(t, "ServiceHistoryPart", shop.PartLine{}.TableName())
	})

	t.Run("UnitDescriptor", func(t *testing.T) {
		u := shop.Unit{
			UnitID:   12,
			Make:     "Ford",
			Model:    "F-150",
			Year:     2022,
			SubModel: "XLT",
			VIN:      "1FTEW1EP5NKD12345",
		}
		assert.Equal(t, matching.VehicleDescriptor{
			Make:     "Ford",
			Model:    "F-150",
			Year:     2022,
			Submodel: "XLT",
			VIN:      "1FTEW1EP5NKD12345",
		}, u.Descriptor())
	})

	t.Run("PartLineDescriptor", func(t *testing.T) {
		p := shop.PartLine{
			Title:            "Oil Filter",
			Description:      "spin-on oil filter",
			PartNumber:       "OF-2042",
			VendorPartNumber: "WIX-51348",
		}
		assert.Equal(t, matching.PartDescriptor{
			Title:        "Oil Filter",
			Description:  "spin-on oil filter",
			ShopNumber:   "OF-2042",
			VendorNumber: "WIX-51348",
		}, p.Descriptor())
	})
}
