package main

import (
	"fmt"
	"strings"

	"storefront-client/internal/cart"
	"storefront-client/internal/checkout"
	"storefront-client/internal/order"
	"storefront-client/internal/payment"
	"storefront-client/internal/utils"

	"github.com/spf13/cobra"
)

func newCheckoutCmd(c *cli) *cobra.Command {
	var (
		form        checkout.Form
		buyNow      bool
		listMethods bool
	)

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the cart or the quick-buy selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if listMethods {
				return printCheckoutMethods(c)
			}

			ctx := cmd.Context()
			src := cart.SourceCart
			if buyNow {
				src = cart.SourceQuickBuy
			}

			flow := c.app.newFlow(src)
			summary, err := flow.Begin(ctx, strings.ToLower(strings.TrimSpace(form.DeliveryMethod)))
			if err != nil {
				return err
			}
			if err := printLines(c.out, summary.Lines); err != nil {
				return err
			}

			placed, err := flow.Submit(ctx, form)
			if err != nil {
				return err
			}

			fmt.Fprintln(c.out, "Order placed.")
			if err := printOrder(c.out, placed); err != nil {
				return err
			}
			printPaymentSteps(c.out, placed)
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVar(&buyNow, "buy-now", false, "check out the quick-buy selection instead of the cart")
	f.BoolVar(&listMethods, "methods", false, "list delivery and payment methods")
	f.StringVar(&form.DeliveryMethod, "delivery", "", "delivery method id")
	f.StringVar(&form.Address, "address", "", "street address")
	f.StringVar(&form.City, "city", "", "city")
	f.StringVar(&form.PostalCode, "postal-code", "", "postal code")
	f.StringVar(&form.Phone, "phone", "", "contact phone")
	f.StringVar(&form.PaymentMethod, "payment", payment.MethodCashOnDelivery, "payment method id")
	f.StringVar(&form.Notes, "notes", "", "notes for the seller")
	return cmd
}

func printCheckoutMethods(c *cli) error {
	tw := newTable(c.out)
	fmt.Fprintln(tw, "DELIVERY\tNAME\tDESCRIPTION\tPRICE\tESTIMATE")
	for _, m := range order.DeliveryMethods() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", m.ID, m.Name, m.Description, utils.FormatPrice(m.FlatPrice), m.Estimate)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "PAYMENT\tNAME\t\t\t")
	for _, m := range payment.Methods() {
		fmt.Fprintf(tw, "%s\t%s\t\t\t\n", m.ID, m.Label)
	}
	return tw.Flush()
}

func newOrdersCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Review placed orders",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List your orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			orders, err := c.app.orders.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(orders) == 0 {
				fmt.Fprintln(c.out, "No orders yet.")
				return nil
			}
			tw := newTable(c.out)
			fmt.Fprintln(tw, "ID\tSTATUS\tTOTAL\tPLACED")
			for _, o := range orders {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", o.ID, o.Status, utils.FormatPrice(o.Total), o.CreatedAt.Format("2006-01-02"))
			}
			return tw.Flush()
		},
	}

	get := &cobra.Command{
		Use:   "get <order-id>",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := c.app.orders.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printOrder(c.out, o)
		},
	}

	last := &cobra.Command{
		Use:   "last",
		Short: "Show the order confirmed most recently on this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o, err := c.app.orders.Last(cmd.Context())
			if err != nil {
				return err
			}
			if err := printOrder(c.out, o); err != nil {
				return err
			}
			printPaymentSteps(c.out, o)
			return nil
		},
	}

	cmd.AddCommand(list, get, last)
	return cmd
}
