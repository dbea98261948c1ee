package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"storefront-client/internal/cart"
	"storefront-client/internal/product"
	"storefront-client/internal/utils"

	"github.com/spf13/cobra"
)

var errUnavailable = errors.New("this product is no longer available")

// purchasable loads the product and clamps qty to its stock.
func (c *cli) purchasable(ctx context.Context, productID string, qty int) (*product.Product, int, error) {
	p, err := c.app.products.Get(ctx, productID)
	if err != nil {
		return nil, 0, err
	}
	if p.Status == product.StatusInactive {
		return nil, 0, errUnavailable
	}
	return p, cart.ClampQuantity(qty, p.Stock), nil
}

func newCartCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the shopping cart",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show cart lines and subtotal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			lines, err := c.app.carts.Lines(ctx)
			if err != nil {
				return err
			}
			if err := printLines(c.out, lines); err != nil {
				return err
			}
			code, err := c.app.carts.DiscountCode(ctx)
			if err != nil {
				return err
			}
			if code != "" {
				fmt.Fprintf(c.out, "Discount code: %s\n", code)
			}
			return nil
		},
	}

	var qty int
	add := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, n, err := c.purchasable(ctx, args[0], qty)
			if err != nil {
				return err
			}
			line, err := c.app.carts.Add(ctx, *p, n)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "%s added to cart (%d in cart).\n", p.Name, line.Quantity)
			return nil
		},
	}
	add.Flags().IntVar(&qty, "qty", 1, "quantity")

	update := &cobra.Command{
		Use:   "update <line-id> <quantity>",
		Short: "Set the quantity of a cart line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity %q is not a number", args[1])
			}
			if n < 1 {
				return cart.ErrInvalidQuantity
			}
			lines, err := c.app.carts.Lines(ctx)
			if err != nil {
				return err
			}
			for _, l := range lines {
				if l.ID == args[0] {
					n = cart.ClampQuantity(n, l.Product.Stock)
					break
				}
			}
			if err := c.app.carts.UpdateQuantity(ctx, args[0], n); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Quantity set to %d.\n", n)
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove <line-id>",
		Short: "Remove a line from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.carts.Remove(cmd.Context(), args[0])
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.carts.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Cart cleared.")
			return nil
		},
	}

	var dropCode bool
	discount := &cobra.Command{
		Use:   "discount [code]",
		Short: "Record a discount code for the next cart order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if dropCode {
				return c.app.carts.ClearDiscountCode(ctx)
			}
			if len(args) == 0 {
				return cart.ErrEmptyDiscountCode
			}
			if err := c.app.carts.ApplyDiscountCode(ctx, args[0]); err != nil {
				return err
			}
			code, err := c.app.carts.DiscountCode(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Discount code %s will be sent with your order.\n", code)
			return nil
		},
	}
	discount.Flags().BoolVar(&dropCode, "remove", false, "forget the recorded code")

	cmd.AddCommand(show, add, update, remove, clearCmd, discount)
	return cmd
}

func newBuyNowCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buy-now",
		Short: "Buy a single product without touching the cart",
	}

	var qty int
	start := &cobra.Command{
		Use:   "start <product-id>",
		Short: "Select a product for immediate checkout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, n, err := c.purchasable(ctx, args[0], qty)
			if err != nil {
				return err
			}
			if err := c.app.carts.StartQuickBuy(ctx, *p, n); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Ready to buy %d x %s. Run `storefront checkout --buy-now`.\n", n, p.Name)
			return nil
		},
	}
	start.Flags().IntVar(&qty, "qty", 1, "quantity")

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the current quick-buy selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sel, err := c.app.carts.QuickBuy(cmd.Context())
			if err != nil {
				return err
			}
			if sel == nil {
				fmt.Fprintln(c.out, "No quick-buy selection.")
				return nil
			}
			l := sel.Line()
			fmt.Fprintf(c.out, "%d x %s = %s\n", l.Quantity, l.Product.Name, utils.FormatPrice(l.Total()))
			return nil
		},
	}

	cancel := &cobra.Command{
		Use:   "cancel",
		Short: "Drop the quick-buy selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.carts.ClearQuickBuy(cmd.Context())
		},
	}

	cmd.AddCommand(start, show, cancel)
	return cmd
}
