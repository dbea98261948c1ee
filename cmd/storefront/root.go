package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"storefront-client/internal/api"
	"storefront-client/internal/cart"
	"storefront-client/internal/checkout"
	"storefront-client/internal/config"
	"storefront-client/internal/logger"

	"github.com/google/uuid"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

type cli struct {
	out         io.Writer
	envFiles    []string
	showMetrics bool
	app         *app
}

// run executes one CLI invocation and always releases the store it opened.
func run(ctx context.Context, out io.Writer, args []string) error {
	c := &cli{out: out}
	root := c.rootCmd()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	return multierr.Append(err, c.close())
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Shop the storefront from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(c.envFiles...)
			if err != nil {
				return err
			}
			logger.Init(cfg.AppEnv)

			ctx := logger.WithRequestID(cmd.Context(), uuid.NewString())
			cmd.SetContext(ctx)

			notify := cart.NotifierFunc(func(_ context.Context, msg string) {
				fmt.Fprintln(c.out, msg)
			})
			c.app, err = newApp(ctx, cfg, notify)
			return err
		},
	}
	root.SetOut(c.out)

	root.PersistentFlags().StringSliceVar(&c.envFiles, "env-file", nil, "dotenv files to load before the environment")
	root.PersistentFlags().BoolVar(&c.showMetrics, "metrics", false, "print gateway metrics after the command")

	root.AddCommand(
		newLoginCmd(c),
		newRegisterCmd(c),
		newGoogleLoginCmd(c),
		newLogoutCmd(c),
		newWhoamiCmd(c),
		newProfileCmd(c),
		newPasswordCmd(c),
		newProductsCmd(c),
		newCategoriesCmd(c),
		newCartCmd(c),
		newBuyNowCmd(c),
		newCheckoutCmd(c),
		newOrdersCmd(c),
		newWishlistCmd(c),
		newReviewsCmd(c),
		newNotificationsCmd(c),
		newSellCmd(c),
	)
	return root
}

func (c *cli) close() error {
	if c.app == nil {
		return nil
	}
	var err error
	if c.showMetrics {
		err = multierr.Append(err, c.printMetrics())
	}
	err = multierr.Append(err, c.app.Close())
	c.app = nil
	return err
}

func (c *cli) printMetrics() error {
	families, err := c.app.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(c.out, mf); err != nil {
			return err
		}
	}
	return nil
}

// errorMessage renders err for the terminal. Backend and checkout failures
// get buyer-facing text; anything else prints as is.
func errorMessage(err error) string {
	var verr *checkout.ValidationError
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return checkout.UserMessage(err) + " Run `storefront login` to sign in."
	case errors.As(err, &verr),
		errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrSubmitInFlight),
		errors.Is(err, checkout.ErrAlreadyConfirmed):
		return checkout.UserMessage(err)
	}
	if _, ok := api.AsError(err); ok {
		return checkout.UserMessage(err)
	}
	return err.Error()
}
