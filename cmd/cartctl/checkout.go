package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jaideep-27/shophub/internal/models"
	"github.com/jaideep-27/shophub/internal/service"
	"github.com/jaideep-27/shophub/internal/session"
)

func newCheckoutCmd(a *app) *cobra.Command {
	var removals []string

	cmd := &cobra.Command{
		Use:   "checkout <productId>...",
		Short: "Add products to a cart and print the order summary",
		Long: `checkout adds each product id to a fresh cart in the order given, one unit
per occurrence, then removes one unit for every --remove id and prints the
resulting line items and order summary.`,
		Example: `  cartctl checkout 1 6 6
  cartctl checkout 12 12 3 --remove 3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store := session.NewStore(a.cfg.Pricing, 0, a.log)
			carts := service.NewCartService(a.repo, store, a.log)
			sessionID := carts.StartSession()
			defer func() { _ = carts.EndSession(sessionID) }()

			for _, id := range args {
				if _, err := carts.AddItem(ctx, sessionID, id); err != nil {
					return err
				}
			}
			for _, id := range removals {
				if _, err := carts.RemoveItem(ctx, sessionID, id); err != nil {
					return err
				}
			}

			view, err := carts.GetCart(ctx, sessionID)
			if err != nil {
				return err
			}

			renderCart(cmd.OutOrStdout(), view)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&removals, "remove", nil, "Product ids to remove one unit of after adding")
	return cmd
}

func renderCart(w io.Writer, view *models.CartView) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Cart (%d items)", view.ItemCount)))

	if len(view.Items) == 0 {
		fmt.Fprintln(w, labelStyle.Render("  cart is empty"))
	}
	for _, item := range view.Items {
		fmt.Fprintf(w, "  %s  %-40s %3d × %8s  %s\n",
			labelStyle.Render(fmt.Sprintf("%4s", item.Product.ID)),
			truncate(item.Product.Title, 40),
			item.Quantity,
			item.Product.Price.StringFixed(2),
			priceStyle.Render(fmt.Sprintf("%9s", item.Total().StringFixed(2))),
		)
	}

	s := view.Summary
	shipping := s.Shipping.StringFixed(2)
	if s.FreeShipping() {
		shipping = freeStyle.Render("FREE")
	}

	rows := []string{
		summaryRow("Subtotal", s.Subtotal.StringFixed(2)),
		summaryRow("Shipping", shipping),
		summaryRow("Tax", s.Tax.StringFixed(2)),
		totalStyle.Render(fmt.Sprintf("%-10s %9s", "Total", s.Total.StringFixed(2))),
	}
	fmt.Fprintln(w, boxStyle.Render(strings.Join(rows, "\n")))
}

func summaryRow(label, value string) string {
	return fmt.Sprintf("%s %9s", labelStyle.Render(fmt.Sprintf("%-10s", label)), value)
}
