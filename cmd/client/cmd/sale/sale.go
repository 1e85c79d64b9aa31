package sale

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"shopkeeper/cmd/client/cmd/output"
	"shopkeeper/cmd/client/cmd/types"
	"shopkeeper/internal/app/client/sales"
	"shopkeeper/internal/domain/pos"
)

var SaleCmd = &cobra.Command{
	Use:   "sale",
	Short: "Продажи",
}

var (
	itemFlags   []string
	paymentFlag string
	customerRef string
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Оформить продажу",
	Example: `  shopkeeper sale new --item "Rice 5kg:2" --item soap:1 --payment cash
  shopkeeper sale new --item "Rice 5kg:1" --payment credit --customer 0241234567`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}
		sess := app.Session()
		svc := app.Sales()

		var cart []pos.CartItem
		for _, raw := range itemFlags {
			ref, qty, err := parseItem(raw)
			if err != nil {
				return err
			}
			p, err := svc.FindProduct(sess, ref)
			if err != nil {
				return err
			}
			cart = append(cart, pos.CartItem{
				ProductID: p.ID,
				Name:      p.Name,
				Price:     p.SellingPrice,
				Quantity:  qty,
			})
		}

		co := sales.Checkout{Items: cart, PaymentType: pos.PaymentType(paymentFlag)}
		if customerRef != "" {
			c, err := svc.FindCustomer(sess, customerRef)
			if err != nil {
				return err
			}
			co.Customer = &c
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		receipt, err := svc.CompleteSale(ctx, sess, co)
		if err != nil {
			var invErr *sales.InventoryError
			if errors.As(err, &invErr) {
				output.Fail("Продажа отклонена, склад не изменен:")
				for _, p := range invErr.Problems {
					output.Line("  - %s", p)
				}
				return fmt.Errorf("недостаточно товара")
			}
			return err
		}

		if output.JSON {
			return output.PrintJSON(receipt)
		}
		printReceipt(receipt)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "История продаж",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		list, err := app.Sales().ListSales(app.Session())
		if err != nil {
			return err
		}

		if output.JSON {
			return output.PrintJSON(list)
		}
		if len(list) == 0 {
			output.Dim("Продаж пока нет")
			return nil
		}
		for _, s := range list {
			output.Line("%s  %-20s %-12s %10s  %s",
				s.Timestamp.Format("2006-01-02 15:04"), s.ID, s.PaymentType, s.Total.StringFixed(2), output.SyncMark(s.Synced))
		}
		return nil
	},
}

// parseItem разбирает "товар:количество". Без количества берется одна штука
func parseItem(raw string) (string, int, error) {
	i := strings.LastIndex(raw, ":")
	if i < 0 {
		ref := strings.TrimSpace(raw)
		if ref == "" {
			return "", 0, fmt.Errorf("пустая позиция")
		}
		return ref, 1, nil
	}

	ref := strings.TrimSpace(raw[:i])
	qty, err := strconv.Atoi(strings.TrimSpace(raw[i+1:]))
	if err != nil {
		return "", 0, fmt.Errorf("неверное количество в %q: %w", raw, err)
	}
	if ref == "" {
		return "", 0, fmt.Errorf("не указан товар в %q", raw)
	}
	return ref, qty, nil
}

func printReceipt(r sales.Receipt) {
	output.Header("Чек " + r.Sale.ID)
	for _, it := range r.Sale.Items {
		output.Line("%-30s %4d x %10s = %10s", it.Name, it.Quantity, it.Price.StringFixed(2), it.Subtotal().StringFixed(2))
	}
	output.Line("Итого: %s (%s)", r.Sale.Total.StringFixed(2), r.Sale.PaymentType)

	if r.Synced {
		output.Success("%s", r.Message)
	} else {
		output.Warn("%s", r.Message)
	}
}

func init() {
	newCmd.Flags().StringArrayVarP(&itemFlags, "item", "i", nil, "позиция в формате товар:количество (можно повторять)")
	newCmd.Flags().StringVarP(&paymentFlag, "payment", "p", string(pos.PaymentCash), "оплата: cash, mobile-money, credit")
	newCmd.Flags().StringVarP(&customerRef, "customer", "c", "", "покупатель (id или телефон), обязателен для credit")
	_ = newCmd.MarkFlagRequired("item")

	SaleCmd.AddCommand(newCmd, listCmd)
}
