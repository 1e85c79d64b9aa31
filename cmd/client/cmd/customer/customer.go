package customer

import (
	"github.com/spf13/cobra"

	"shopkeeper/cmd/client/cmd/output"
	"shopkeeper/cmd/client/cmd/types"
	"shopkeeper/internal/app/client/sales"
)

var CustomerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Покупатели и их долги",
}

var newCustomer sales.NewCustomer

var addCmd = &cobra.Command{
	Use:     "add",
	Short:   "Добавить покупателя",
	Example: `  shopkeeper customer add --name "Ama Mensah" --phone 0241234567 --location Kumasi`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		c, err := app.Sales().AddCustomer(app.Session(), newCustomer)
		if err != nil {
			return err
		}

		if output.JSON {
			return output.PrintJSON(c)
		}
		output.Success("Покупатель %s добавлен (id %s, тел. %s)", c.Name, c.ID, c.Phone)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Список покупателей",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		customers, err := app.Sales().ListCustomers(app.Session())
		if err != nil {
			return err
		}

		if output.JSON {
			return output.PrintJSON(customers)
		}
		if len(customers) == 0 {
			output.Dim("Покупателей пока нет")
			return nil
		}
		for _, c := range customers {
			output.Line("%-20s %-25s %-16s %s", c.ID, c.Name, c.Phone, output.SyncMark(c.Synced))
		}
		return nil
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance <id|phone>",
	Short: "Долг покупателя и история операций",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}
		sess := app.Session()

		c, err := app.Sales().FindCustomer(sess, args[0])
		if err != nil {
			return err
		}
		balance, err := app.Sales().CustomerBalance(sess, c.ID)
		if err != nil {
			return err
		}
		txns, err := app.Sales().ListCreditTransactions(sess, c.ID)
		if err != nil {
			return err
		}

		if output.JSON {
			return output.PrintJSON(map[string]any{
				"customer":     c,
				"balance":      balance,
				"transactions": txns,
			})
		}

		output.Header(c.Name)
		for _, t := range txns {
			output.Line("%s  %-8s %10s  %s", t.Date.Format("2006-01-02 15:04"), t.Type, t.Amount.StringFixed(2), t.Notes)
		}
		output.Line("Долг: %s", balance.StringFixed(2))
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&newCustomer.Name, "name", "n", "", "имя")
	addCmd.Flags().StringVarP(&newCustomer.Phone, "phone", "p", "", "телефон")
	addCmd.Flags().StringVar(&newCustomer.Location, "location", "", "адрес")
	addCmd.Flags().StringVar(&newCustomer.Notes, "notes", "", "заметки")
	_ = addCmd.MarkFlagRequired("name")
	_ = addCmd.MarkFlagRequired("phone")

	CustomerCmd.AddCommand(addCmd, listCmd, balanceCmd)
}
