package main

import (
	"fmt"

	"storefront-client/internal/notification"
	"storefront-client/internal/review"
	"storefront-client/internal/utils"

	"github.com/spf13/cobra"
)

func newWishlistCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wishlist",
		Short: "Manage saved products",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := c.app.wishlist.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(c.out, "Your wishlist is empty.")
				return nil
			}
			tw := newTable(c.out)
			fmt.Fprintln(tw, "PRODUCT\tNAME\tPRICE")
			for _, it := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", it.Product.ID, it.Product.Name, utils.FormatPrice(it.Product.FinalPrice))
			}
			return tw.Flush()
		},
	}

	add := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Save a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.wishlist.Add(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Saved to wishlist.")
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Forget a saved product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.wishlist.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Removed from wishlist.")
			return nil
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle <product-id>",
		Short: "Save or forget a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			saved, err := c.app.wishlist.Toggle(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if saved {
				fmt.Fprintln(c.out, "Saved to wishlist.")
			} else {
				fmt.Fprintln(c.out, "Removed from wishlist.")
			}
			return nil
		},
	}

	cmd.AddCommand(list, add, remove, toggle)
	return cmd
}

func newReviewsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "Read and write product reviews",
	}

	list := &cobra.Command{
		Use:   "list <product-id>",
		Short: "List reviews, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reviews, err := c.app.reviews.List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			s := review.Summarize(reviews)
			fmt.Fprintf(c.out, "%d reviews, average %.1f\n", s.Count, s.Average)
			for _, r := range reviews {
				fmt.Fprintf(c.out, "[%s] %d/5 %s: %s (%d likes)\n", r.ID, r.Rating, r.UserName, r.Comment, r.Likes)
			}
			return nil
		},
	}

	var in review.CreateInput
	add := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Review a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.app.reviews.Create(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Review %s posted.\n", r.ID)
			return nil
		},
	}
	add.Flags().IntVar(&in.Rating, "rating", 0, "rating from 1 to 5")
	add.Flags().StringVar(&in.Comment, "comment", "", "review text")

	like := &cobra.Command{
		Use:   "like <review-id>",
		Short: "Like a review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := c.app.reviews.Like(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Liked (%d likes).\n", n)
			return nil
		},
	}

	cmd.AddCommand(list, add, like)
	return cmd
}

func newNotificationsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Device registration and the notification inbox",
	}

	var platform string
	register := &cobra.Command{
		Use:   "register <device-token>",
		Short: "Register this device for push notifications",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.notifications.RegisterDevice(cmd.Context(), args[0], platform); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Device registered.")
			return nil
		},
	}
	register.Flags().StringVar(&platform, "platform", notification.PlatformWeb, "web, android or ios")

	list := &cobra.Command{
		Use:   "list",
		Short: "List notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			inbox, err := c.app.notifications.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "%d unread\n", notification.Unread(inbox))
			for _, n := range inbox {
				mark := " "
				if !n.Read {
					mark = "*"
				}
				fmt.Fprintf(c.out, "%s %s  %s: %s\n", mark, n.ID, n.Title, n.Body)
			}
			return nil
		},
	}

	read := &cobra.Command{
		Use:   "read <notification-id>",
		Short: "Mark a notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.notifications.MarkRead(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(register, list, read)
	return cmd
}
