package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-client/internal/product"
	"storefront-client/internal/review"
	"storefront-client/internal/search"
	"storefront-client/internal/utils"

	"github.com/spf13/cobra"
)

var errSearchTimeout = errors.New("search timed out")

func newProductsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product"},
		Short:   "Browse the catalog",
	}

	var opts product.ListOptions
	list := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if opts.Category != "" {
				cat, err := c.app.categories.Resolve(ctx, opts.Category)
				if err != nil {
					return err
				}
				opts.Category = cat.ID
			}
			products, err := c.app.products.List(ctx, opts)
			if err != nil {
				return err
			}
			return printProducts(c.out, products)
		},
	}
	list.Flags().StringVar(&opts.Category, "category", "", "category id, slug or name")
	list.Flags().StringVar(&opts.Search, "search", "", "free text filter")
	list.Flags().StringVar(&opts.Status, "status", "", "product status, e.g. active")

	get := &cobra.Command{
		Use:   "get <product-id>",
		Short: "Show one product with its rating",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := c.app.products.Get(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "%s (%s)\n", p.Name, p.ID)
			fmt.Fprintf(c.out, "Price: %s", utils.FormatPrice(p.FinalPrice))
			if p.FinalPrice != p.Price {
				fmt.Fprintf(c.out, " (was %s)", utils.FormatPrice(p.Price))
			}
			fmt.Fprintln(c.out)
			if p.InStock() {
				fmt.Fprintf(c.out, "In stock: %d\n", p.Stock)
			} else {
				fmt.Fprintln(c.out, "Out of stock")
			}
			if d := utils.PtrString(p.Description); d != "" {
				fmt.Fprintln(c.out, d)
			}

			reviews, err := c.app.reviews.List(ctx, p.ID)
			if err != nil {
				// The product page still renders without reviews.
				fmt.Fprintln(c.out, "Reviews unavailable.")
				return nil
			}
			s := review.Summarize(reviews)
			fmt.Fprintf(c.out, "Rating: %.1f from %d reviews\n", s.Average, s.Count)
			return nil
		},
	}

	var interactive bool
	searchCmd := &cobra.Command{
		Use:   "search [term]",
		Short: "Search products; with --interactive each stdin line is a keystroke",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				return c.searchInteractive(cmd)
			}
			term := ""
			if len(args) == 1 {
				term = args[0]
			}
			products, err := c.app.products.Search(cmd.Context(), term)
			if err != nil {
				return err
			}
			return printProducts(c.out, products)
		},
	}
	searchCmd.Flags().BoolVar(&interactive, "interactive", false, "search as you type from stdin")

	cmd.AddCommand(list, get, searchCmd)
	return cmd
}

// searchInteractive feeds each input line to a debounced Searcher and prints
// the results that are still current when they arrive.
func (c *cli) searchInteractive(cmd *cobra.Command) error {
	ctx := cmd.Context()
	results := make(chan search.Result, 8)
	s := search.NewSearcher(c.app.products, c.app.cfg.SearchDebounce, func(r search.Result) {
		results <- r
	})
	defer s.Stop()

	show := func(r search.Result) error {
		if r.Err != nil {
			return r.Err
		}
		fmt.Fprintf(c.out, "Results for %q:\n", r.Term)
		return printProducts(c.out, r.Products)
	}

	var last uint64
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		last = s.Query(ctx, scanner.Text())
		select {
		case r := <-results:
			if err := show(r); err != nil {
				return err
			}
		default:
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if last == 0 {
		return nil
	}

	return c.awaitSearch(ctx, results, last, show)
}

func (c *cli) awaitSearch(ctx context.Context, results <-chan search.Result, seq uint64, show func(search.Result) error) error {
	timeout := time.NewTimer(c.app.cfg.SearchDebounce + c.app.cfg.APITimeout)
	defer timeout.Stop()

	for {
		select {
		case r := <-results:
			if err := show(r); err != nil {
				return err
			}
			if r.Seq == seq {
				return nil
			}
		case <-timeout.C:
			return errSearchTimeout
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func newCategoriesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List product categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cats, err := c.app.categories.GetCategories(cmd.Context())
			if err != nil {
				return err
			}
			tw := newTable(c.out)
			fmt.Fprintln(tw, "ID\tNAME\tSLUG")
			for _, cat := range cats {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", cat.ID, cat.Name, cat.Slug)
				for _, sub := range cat.Subcategories {
					fmt.Fprintf(tw, "%s\t  %s\t\n", sub.ID, sub.Name)
				}
			}
			return tw.Flush()
		},
	}
}
