package order

import (
	"testing"

	"storefront-client/internal/address"
	"storefront-client/internal/cart"
	"storefront-client/internal/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLines() []cart.Line {
	return []cart.Line{
		{ID: "l1", Product: product.Product{ID: "A", Name: "Kettle", Price: 250, FinalPrice: 200, Category: "kitchen"}, Quantity: 2},
		{ID: "l2", Product: product.Product{ID: "B", Name: "Mug", Price: 100, FinalPrice: 100}, Quantity: 1},
	}
}

func TestBuildSubmission(t *testing.T) {
	addr := address.Address{Street: "1 Main", City: "Accra", PostalCode: "GA1"}

	t.Run("Standard", func(t *testing.T) {
		sub, err := BuildSubmission(SubmissionInput{
			BuyerID:        "42",
			Lines:          testLines(),
			Address:        addr,
			DeliveryMethod: DeliveryStandard,
			PaymentMethod:  "card",
			Phone:          " +233 20  123 4567 ",
			Notes:          "  ring twice ",
			DiscountCode:   "SPRING10",
		})

		require.NoError(t, err)
		assert.Equal(t, 500.0, sub.Subtotal)
		assert.Equal(t, 80.0, sub.ShippingCost)
		assert.Equal(t, 580.0, sub.Total)
		assert.Equal(t, "1 Main, Accra, GA1", sub.ShippingAddress)
		assert.Equal(t, "+233201234567", sub.Phone)
		assert.Equal(t, "ring twice", sub.Notes)
		assert.Equal(t, "SPRING10", sub.DiscountCode)
		assert.Equal(t, []Item{
			{ProductID: "A", Quantity: 2, UnitPrice: 200, Name: "Kettle", Category: "kitchen"},
			{ProductID: "B", Quantity: 1, UnitPrice: 100, Name: "Mug"},
		}, sub.Items)
	})

	t.Run("Pickup", func(t *testing.T) {
		sub, err := BuildSubmission(SubmissionInput{
			Lines:          testLines(),
			Address:        addr,
			DeliveryMethod: DeliveryPickup,
		})

		require.NoError(t, err)
		assert.Equal(t, 500.0, sub.Total)
		assert.Equal(t, address.PickupSentinel, sub.ShippingAddress)
	})

	t.Run("NoItems", func(t *testing.T) {
		_, err := BuildSubmission(SubmissionInput{DeliveryMethod: DeliveryPickup})
		assert.ErrorIs(t, err, ErrNoItems)
	})

	t.Run("UnknownDelivery", func(t *testing.T) {
		_, err := BuildSubmission(SubmissionInput{Lines: testLines(), DeliveryMethod: "teleport"})
		assert.ErrorIs(t, err, ErrUnknownDeliveryMethod)
	})
}
