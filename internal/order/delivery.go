package order

// DeliveryMethod is an entry of the static delivery catalog.
type DeliveryMethod struct {
	ID          string
	Name        string
	Description string
	FlatPrice   float64
	Estimate    string
	// Priority orders dispatch; 0 is the default tier.
	Priority int
}

const (
	DeliveryPickup   = "pickup"
	DeliveryStandard = "standard"
	DeliveryExpress  = "express"
)

var deliveryMethods = []DeliveryMethod{
	{
		ID:          DeliveryPickup,
		Name:        "Store pickup",
		Description: "Collect from the seller's store",
		FlatPrice:   0,
		Estimate:    "Same day",
	},
	{
		ID:          DeliveryStandard,
		Name:        "Standard delivery",
		Description: "Courier drop-off at your address",
		FlatPrice:   80,
		Estimate:    "3-5 days",
	},
	{
		ID:          DeliveryExpress,
		Name:        "Express delivery",
		Description: "Priority dispatch to your address",
		FlatPrice:   150,
		Estimate:    "Within hours",
		Priority:    1,
	},
}

// DeliveryMethods returns the catalog in display order.
func DeliveryMethods() []DeliveryMethod {
	return append([]DeliveryMethod(nil), deliveryMethods...)
}

func FindDeliveryMethod(id string) (DeliveryMethod, bool) {
	for _, m := range deliveryMethods {
		if m.ID == id {
			return m, true
		}
	}
	return DeliveryMethod{}, false
}

func IsPickup(methodID string) bool {
	return methodID == DeliveryPickup
}

type Totals struct {
	Subtotal     float64
	ShippingCost float64
	Total        float64
}

// ComputeTotals adds the method's flat price to subtotal. An unknown or empty
// method ships for 0. Values are not rounded here.
func ComputeTotals(subtotal float64, methodID string) Totals {
	var shipping float64
	if m, ok := FindDeliveryMethod(methodID); ok {
		shipping = m.FlatPrice
	}
	return Totals{
		Subtotal:     subtotal,
		ShippingCost: shipping,
		Total:        subtotal + shipping,
	}
}
