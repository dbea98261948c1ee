package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"storefront-client/internal/cart"
	"storefront-client/internal/order"
	"storefront-client/internal/payment"
	"storefront-client/internal/product"
	"storefront-client/internal/user"
	"storefront-client/internal/utils"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func printUser(w io.Writer, u *user.User) {
	fmt.Fprintf(w, "%s <%s>\n", u.DisplayName(), u.Email)
	if u.Role != "" {
		fmt.Fprintf(w, "role: %s\n", u.Role)
	}
	if u.Phone != "" {
		fmt.Fprintf(w, "phone: %s\n", u.Phone)
	}
}

func printProducts(w io.Writer, products []product.Product) error {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products found.")
		return nil
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tSTOCK\tCATEGORY")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", p.ID, p.Name, utils.FormatPrice(p.FinalPrice), p.Stock, p.CategoryName)
	}
	return tw.Flush()
}

func printLines(w io.Writer, lines []cart.Line) error {
	if len(lines) == 0 {
		fmt.Fprintln(w, "Your cart is empty.")
		return nil
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "LINE\tPRODUCT\tQTY\tUNIT\tTOTAL")
	for _, l := range lines {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			l.ID, l.Product.Name, l.Quantity,
			utils.FormatPrice(l.Product.FinalPrice), utils.FormatPrice(l.Total()))
	}
	fmt.Fprintf(tw, "\t\t%d\t\t%s\n", cart.CountItems(lines), utils.FormatPrice(cart.SumLines(lines)))
	return tw.Flush()
}

func printTotals(w io.Writer, t order.Totals) {
	fmt.Fprintf(w, "Subtotal: %s\n", utils.FormatPrice(t.Subtotal))
	fmt.Fprintf(w, "Shipping: %s\n", utils.FormatPrice(t.ShippingCost))
	fmt.Fprintf(w, "Total:    %s\n", utils.FormatPrice(t.Total))
}

func printOrder(w io.Writer, o *order.Order) error {
	fmt.Fprintf(w, "Order %s (%s)\n", o.ID, o.Status)
	tw := newTable(w)
	for _, it := range o.Items {
		fmt.Fprintf(tw, "  %s\tx%d\t%s\n", it.Name, it.Quantity, utils.FormatPrice(it.UnitPrice))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	printTotals(w, order.Totals{Subtotal: o.Subtotal, ShippingCost: o.ShippingCost, Total: o.Total})
	if o.ShippingAddress != "" {
		fmt.Fprintf(w, "Ship to:  %s\n", o.ShippingAddress)
	}
	return nil
}

// printPaymentSteps shows what the buyer does next for the chosen method.
func printPaymentSteps(w io.Writer, o *order.Order) {
	method := o.PaymentMethod
	if m, ok := payment.Lookup(method); ok {
		fmt.Fprintf(w, "Payment: %s\n", m.Label)
	}
	steps := payment.InjectVariables(payment.GetInstructions(method), payment.InstructionVars{
		"amount":   utils.FormatPrice(o.Total),
		"order_id": string(o.ID),
		"phone":    o.Phone,
	})
	for i, step := range steps {
		fmt.Fprintf(w, "  %d. %s\n", i+1, step)
	}
}
