package order

import (
	"strings"

	"storefront-client/internal/address"
	"storefront-client/internal/cart"
	"storefront-client/internal/utils"
)

type SubmissionInput struct {
	BuyerID        string
	Lines          []cart.Line
	Address        address.Address
	DeliveryMethod string
	PaymentMethod  string
	Phone          string
	Notes          string
	DiscountCode   string
}

// BuildSubmission prices lines with the selected delivery method. It does
// not validate contact fields; checkout does that first.
func BuildSubmission(in SubmissionInput) (Submission, error) {
	if len(in.Lines) == 0 {
		return Submission{}, ErrNoItems
	}
	if _, ok := FindDeliveryMethod(in.DeliveryMethod); !ok {
		return Submission{}, ErrUnknownDeliveryMethod
	}

	items := make([]Item, 0, len(in.Lines))
	for _, l := range in.Lines {
		items = append(items, Item{
			ProductID: l.Product.ID,
			Quantity:  l.Quantity,
			UnitPrice: l.Product.FinalPrice,
			Name:      l.Product.Name,
			Category:  l.Product.Category,
		})
	}

	totals := ComputeTotals(cart.SumLines(in.Lines), in.DeliveryMethod)

	return Submission{
		BuyerID:         in.BuyerID,
		Items:           items,
		ShippingAddress: address.ShippingLine(in.Address, IsPickup(in.DeliveryMethod)),
		DeliveryMethod:  in.DeliveryMethod,
		Subtotal:        totals.Subtotal,
		ShippingCost:    totals.ShippingCost,
		Total:           totals.Total,
		PaymentMethod:   in.PaymentMethod,
		Phone:           utils.NormalizePhone(in.Phone),
		Notes:           strings.TrimSpace(in.Notes),
		DiscountCode:    in.DiscountCode,
	}, nil
}
