package product

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"shopkeeper/cmd/client/cmd/output"
	"shopkeeper/cmd/client/cmd/types"
	"shopkeeper/internal/app/client/sales"
)

var ProductCmd = &cobra.Command{
	Use:   "product",
	Short: "Товары на складе",
}

var (
	addName     string
	addQuantity int
	addPrice    string
	addCost     string
	addUnit     string
	addCategory string
	addSKU      string
	addExpiry   string

	updateQuantity int
	updatePrice    string
)

var addCmd = &cobra.Command{
	Use:     "add",
	Short:   "Добавить товар",
	Example: `  shopkeeper product add --name "Rice 5kg" --qty 20 --price 12.50 --cost 9.80 --unit bag`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		np := sales.NewProduct{
			Name:     addName,
			Quantity: addQuantity,
			UnitType: addUnit,
			Category: addCategory,
			SKU:      addSKU,
		}
		if np.SellingPrice, err = decimal.NewFromString(addPrice); err != nil {
			return fmt.Errorf("неверная цена %q: %w", addPrice, err)
		}
		if addCost != "" {
			cost, err := decimal.NewFromString(addCost)
			if err != nil {
				return fmt.Errorf("неверная себестоимость %q: %w", addCost, err)
			}
			np.CostPrice = &cost
		}
		if addExpiry != "" {
			expiry, err := time.Parse(time.DateOnly, addExpiry)
			if err != nil {
				return fmt.Errorf("дата годности в формате ГГГГ-ММ-ДД: %w", err)
			}
			np.ExpiryDate = &expiry
		}

		p, err := app.Sales().AddProduct(app.Session(), np)
		if err != nil {
			return err
		}

		if output.JSON {
			return output.PrintJSON(p)
		}
		output.Success("Товар %q добавлен (id %s)", p.Name, p.ID)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Список товаров",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		products, err := app.Sales().ListProducts(app.Session())
		if err != nil {
			return err
		}

		if output.JSON {
			return output.PrintJSON(products)
		}
		if len(products) == 0 {
			output.Dim("Склад пуст")
			return nil
		}
		for _, p := range products {
			output.Line("%-20s %-30s %6d x %10s  %s", p.ID, p.Name, p.Quantity, p.SellingPrice.StringFixed(2), output.SyncMark(p.Synced))
		}
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <id|name>",
	Short: "Изменить остаток и цену товара",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}
		sess := app.Session()

		p, err := app.Sales().FindProduct(sess, args[0])
		if err != nil {
			return err
		}

		quantity := p.Quantity
		if cmd.Flags().Changed("qty") {
			quantity = updateQuantity
		}

		var price *decimal.Decimal
		if updatePrice != "" {
			d, err := decimal.NewFromString(updatePrice)
			if err != nil {
				return fmt.Errorf("неверная цена %q: %w", updatePrice, err)
			}
			price = &d
		}

		updated, err := app.Sales().UpdateProduct(sess, p.ID, quantity, price)
		if err != nil {
			return err
		}

		output.Success("%s: остаток %d, цена %s", updated.Name, updated.Quantity, updated.SellingPrice.StringFixed(2))
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id|name>",
	Short: "Удалить товар со склада",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}
		sess := app.Session()

		p, err := app.Sales().FindProduct(sess, args[0])
		if err != nil {
			return err
		}
		if err := app.Sales().DeleteProduct(sess, p.ID); err != nil {
			return err
		}

		output.Success("Товар %q удален", p.Name)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addName, "name", "n", "", "название")
	addCmd.Flags().IntVarP(&addQuantity, "qty", "q", 0, "количество")
	addCmd.Flags().StringVarP(&addPrice, "price", "p", "", "цена продажи")
	addCmd.Flags().StringVar(&addCost, "cost", "", "себестоимость")
	addCmd.Flags().StringVar(&addUnit, "unit", "", "единица измерения")
	addCmd.Flags().StringVar(&addCategory, "category", "", "категория")
	addCmd.Flags().StringVar(&addSKU, "sku", "", "артикул")
	addCmd.Flags().StringVar(&addExpiry, "expiry", "", "годен до (ГГГГ-ММ-ДД)")
	_ = addCmd.MarkFlagRequired("name")
	_ = addCmd.MarkFlagRequired("price")

	updateCmd.Flags().IntVarP(&updateQuantity, "qty", "q", 0, "новый остаток")
	updateCmd.Flags().StringVarP(&updatePrice, "price", "p", "", "новая цена")

	ProductCmd.AddCommand(addCmd, listCmd, updateCmd, deleteCmd)
}
