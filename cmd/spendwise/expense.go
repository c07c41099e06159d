package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"spendwise/internal/analytics"
	"spendwise/internal/cli"
	"spendwise/internal/core"
)

var expenseCmd = &cobra.Command{
	Use:     "expense",
	Aliases: []string{"expenses"},
	Short:   "Add, edit, delete and list expenses",
}

// entryFlags are the fields of an expense entry form.
type entryFlags struct {
	date     string
	amount   string
	category string
	method   string
	notes    string
}

func (f *entryFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.date, "date", "d", "", "Date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVarP(&f.amount, "amount", "a", "", "Amount, e.g. 12.50")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "Category (default: the latest expense's)")
	cmd.Flags().StringVarP(&f.method, "method", "m", "", "Payment method (default: the latest expense's)")
	cmd.Flags().StringVarP(&f.notes, "notes", "n", "", "Free text notes")
}

// apply overwrites the fields of e whose flags were set.
func (f *entryFlags) apply(cmd *cobra.Command, e *core.Expense) error {
	flags := cmd.Flags()
	if flags.Changed("date") {
		d, err := core.ParseDate(f.date)
		if err != nil {
			return err
		}
		e.Date = d
	}
	if flags.Changed("amount") {
		m, err := core.ParseEntryAmount(f.amount)
		if err != nil {
			return err
		}
		e.Amount = m
	}
	if flags.Changed("category") {
		e.Category = f.category
	}
	if flags.Changed("method") {
		e.PaymentMethod = f.method
	}
	if flags.Changed("notes") {
		e.Notes = f.notes
	}
	return nil
}

var addFlags entryFlags

var expenseAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an expense",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !cmd.Flags().Changed("amount") {
			return fmt.Errorf("--amount is required")
		}
		ctx := ctxOf(cmd)
		svc := app.backend.Expenses

		// Entry defaults: today, and the category and method of the latest expense.
		e := core.Expense{Date: today()}
		taxonomy := svc.Taxonomy()
		if len(taxonomy.Categories) > 0 {
			e.Category = taxonomy.Categories[0]
		}
		if len(taxonomy.PaymentMethods) > 0 {
			e.PaymentMethod = taxonomy.PaymentMethods[0]
		}
		latest, ok, err := svc.Latest(ctx)
		if err != nil {
			return err
		}
		if ok {
			e.Category, e.PaymentMethod = latest.Category, latest.PaymentMethod
		}

		if err := addFlags.apply(cmd, &e); err != nil {
			return err
		}
		id, err := svc.Add(ctx, e)
		if err != nil {
			return err
		}
		e.ID = id
		fmt.Fprintf(cmd.OutOrStdout(), "Added expense %d: %s %s (%s, %s)\n",
			id, e.Date, cli.FormatMoney(e.Amount), e.Category, e.PaymentMethod)
		return nil
	},
}

var updateFlags entryFlags

var expenseUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Change fields of an expense",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ctx := ctxOf(cmd)
		e, err := app.backend.Expenses.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := updateFlags.apply(cmd, &e); err != nil {
			return err
		}
		if err := app.backend.Expenses.Update(ctx, id, e); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated expense %d\n", id)
		return nil
	},
}

var expenseDeleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm"},
	Short:   "Delete an expense",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := app.backend.Expenses.Delete(ctxOf(cmd), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted expense %d\n", id)
		return nil
	},
}

var expenseGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show one expense",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		e, err := app.backend.Expenses.Get(ctxOf(cmd), id)
		if err != nil {
			return err
		}
		printExpenses(cmd.OutOrStdout(), "", []core.Expense{e})
		return nil
	},
}

var expenseLatestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Show the most recent expense",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, ok, err := app.backend.Expenses.Latest(ctxOf(cmd))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderMuted("  No expenses recorded."))
			return nil
		}
		printExpenses(cmd.OutOrStdout(), "", []core.Expense{e})
		return nil
	},
}

var (
	listFilters filterFlags
	listSort    string
	listLimit   int
)

var expenseListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List expenses matching filters",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		f, err := listFilters.filter()
		if err != nil {
			return err
		}
		order, err := analytics.ParseOrder(listSort)
		if err != nil {
			return err
		}
		expenses, err := app.backend.Expenses.Query(ctxOf(cmd), f, order)
		if err != nil {
			return err
		}
		total := analytics.Total(expenses)
		if listLimit > 0 && len(expenses) > listLimit {
			expenses = expenses[:listLimit]
		}
		if len(expenses) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderMuted("  No expenses match."))
			return nil
		}
		printExpenses(cmd.OutOrStdout(), fmt.Sprintf("Total %s, sorted %s", cli.FormatMoney(total), order), expenses)
		return nil
	},
}

func init() {
	addFlags.bind(expenseAddCmd)
	updateFlags.bind(expenseUpdateCmd)
	listFilters.bind(expenseListCmd)
	expenseListCmd.Flags().StringVarP(&listSort, "sort", "s", "date-desc", "Order: date-desc, date-asc, amount-desc, amount-asc")
	expenseListCmd.Flags().IntVar(&listLimit, "limit", 0, "Show at most this many rows (0 = all)")

	expenseCmd.AddCommand(expenseAddCmd, expenseUpdateCmd, expenseDeleteCmd, expenseGetCmd, expenseLatestCmd, expenseListCmd)
	rootCmd.AddCommand(expenseCmd)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, &core.ValidationError{Field: "id", Reason: fmt.Sprintf("invalid expense id %q", s)}
	}
	return id, nil
}

func printExpenses(w io.Writer, title string, expenses []core.Expense) {
	rows := make([][]string, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10),
			e.Date.String(),
			e.Category,
			e.PaymentMethod,
			cli.FormatMoney(e.Amount),
			e.Notes,
		})
	}
	fmt.Fprint(w, cli.RenderTable(cli.Table{
		Title:   title,
		Headers: []string{"ID", "Date", "Category", "Method", "Amount", "Notes"},
		Rows:    rows,
		Left:    []int{1, 2, 3, 5},
	}))
}
