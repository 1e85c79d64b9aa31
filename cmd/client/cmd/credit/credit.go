package credit

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"shopkeeper/cmd/client/cmd/output"
	"shopkeeper/cmd/client/cmd/types"
)

var CreditCmd = &cobra.Command{
	Use:   "credit",
	Short: "Кредит покупателей",
}

var payNotes string

var payCmd = &cobra.Command{
	Use:     "pay <customer id|phone> <amount>",
	Short:   "Записать погашение долга",
	Example: `  shopkeeper credit pay 0241234567 20.00 --notes "cash at counter"`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}
		sess := app.Session()

		amount, err := decimal.NewFromString(args[1])
		if err != nil {
			return fmt.Errorf("неверная сумма %q: %w", args[1], err)
		}

		c, err := app.Sales().FindCustomer(sess, args[0])
		if err != nil {
			return err
		}

		txn, err := app.Sales().RecordPayment(sess, c.ID, amount, payNotes)
		if err != nil {
			return err
		}
		balance, err := app.Sales().CustomerBalance(sess, c.ID)
		if err != nil {
			return err
		}

		if output.JSON {
			return output.PrintJSON(map[string]any{"transaction": txn, "balance": balance})
		}
		output.Success("%s внес %s, остаток долга %s", c.Name, txn.Amount.StringFixed(2), balance.StringFixed(2))
		return nil
	},
}

func init() {
	payCmd.Flags().StringVar(&payNotes, "notes", "", "комментарий")

	CreditCmd.AddCommand(payCmd)
}
