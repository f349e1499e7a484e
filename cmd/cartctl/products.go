package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jaideep-27/shophub/internal/models"
	"github.com/jaideep-27/shophub/internal/service"
)

func newProductsCmd(a *app) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List catalog products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := service.NewProductService(a.repo).ListProducts(cmd.Context(), category)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(products) == 0 {
				fmt.Fprintln(out, warnStyle.Render("no products found"))
				return nil
			}

			heading := "Products"
			if category != "" {
				heading = fmt.Sprintf("Products in %q", category)
			}
			fmt.Fprintln(out, titleStyle.Render(heading))
			for _, p := range products {
				fmt.Fprintln(out, productLine(p))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Only list products in this category")
	return cmd
}

func newCategoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories [term]",
		Short: "List categories, optionally filtered by a search term",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var term string
			if len(args) == 1 {
				term = args[0]
			}

			categories, err := service.NewProductService(a.repo).SearchCategories(cmd.Context(), term)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render("Categories"))
			for _, c := range categories {
				fmt.Fprintln(out, "  "+c)
			}
			return nil
		},
	}
}

func productLine(p models.Product) string {
	return fmt.Sprintf("  %s  %-48s %s  %s",
		labelStyle.Render(fmt.Sprintf("%4s", p.ID)),
		truncate(p.Title, 48),
		priceStyle.Render(fmt.Sprintf("%9s", p.Price.StringFixed(2))),
		labelStyle.Render(p.Category),
	)
}

func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-1]) + "…"
}
