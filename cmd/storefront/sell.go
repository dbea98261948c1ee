package main

import (
	"fmt"
	"os"

	"storefront-client/internal/seller"

	"github.com/spf13/cobra"
)

func newSellCmd(c *cli) *cobra.Command {
	var (
		app       seller.Application
		logoPath  string
		documents []string
	)

	cmd := &cobra.Command{
		Use:   "sell",
		Short: "Apply to sell on the storefront",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if logoPath != "" {
				logo, err := readAttachment(logoPath)
				if err != nil {
					return err
				}
				app.Logo = logo
			}
			for _, path := range documents {
				doc, err := readAttachment(path)
				if err != nil {
					return err
				}
				app.Documents = append(app.Documents, *doc)
			}

			sub, err := c.app.sellers.Submit(cmd.Context(), app)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Application %s received (%s).\n", sub.ID, sub.Status)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&app.StoreName, "store-name", "", "store name")
	f.StringVar(&app.OwnerName, "owner-name", "", "owner full name")
	f.StringVar(&app.Email, "email", "", "contact email")
	f.StringVar(&app.Phone, "phone", "", "contact phone")
	f.StringVar(&app.Category, "category", "", "main product category")
	f.StringVar(&app.Description, "description", "", "what the store sells")
	f.StringVar(&app.Website, "website", "", "store website")
	f.StringVar(&logoPath, "logo", "", "logo image file")
	f.StringSliceVar(&documents, "document", nil, "supporting document file, repeatable")
	return cmd
}

func readAttachment(path string) (*seller.File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &seller.File{Name: path, Content: content}, nil
}
