package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"spendwise/internal/budget"
	"spendwise/internal/cli"
	"spendwise/internal/core"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Plan monthly budgets and savings goals",
}

var (
	setBudgetAmount string
	setBudgetGoal   string
)

var budgetSetCmd = &cobra.Command{
	Use:   "set [MONTH]",
	Short: "Set the budget and savings goal of a month (YYYY-MM, default current)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := ctxOf(cmd)
		month, err := monthArg(args)
		if err != nil {
			return err
		}

		// Unset flags keep the stored value, or start from the suggestion.
		suggestion, err := app.backend.Budgets.Suggest(ctx, month)
		if err != nil {
			return err
		}
		plan := core.BudgetPlan{Month: month, Budget: suggestion.DefaultBudget, SavingsGoal: suggestion.DefaultGoal}
		if cmd.Flags().Changed("amount") {
			cents, err := core.ParseDecimalToCents(setBudgetAmount)
			if errors.Is(err, core.ErrNegativeAmount) {
				return core.ErrNegativeBudget
			}
			if err != nil {
				return fmt.Errorf("--amount: %w", err)
			}
			plan.Budget = core.Money{Cents: cents}
		}
		if cmd.Flags().Changed("goal") {
			cents, err := core.ParseDecimalToCents(setBudgetGoal)
			if errors.Is(err, core.ErrNegativeAmount) {
				return core.ErrNegativeGoal
			}
			if err != nil {
				return fmt.Errorf("--goal: %w", err)
			}
			plan.SavingsGoal = core.Money{Cents: cents}
		}

		if err := app.backend.Budgets.SetBudget(ctx, plan); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Budget for %s: %s, savings goal %s\n",
			month, cli.FormatMoney(plan.Budget), cli.FormatMoney(plan.SavingsGoal))
		return nil
	},
}

var budgetShowCmd = &cobra.Command{
	Use:   "show [MONTH]",
	Short: "Show one month's plan, or every plan when no month is given",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := ctxOf(cmd)
		var plans []core.BudgetPlan
		if len(args) == 1 {
			month, err := core.ParseMonth(args[0])
			if err != nil {
				return err
			}
			plan, ok, err := app.backend.Budgets.GetBudget(ctx, month)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), cli.RenderMuted("  No budget set for "+month.String()+"."))
				return nil
			}
			plans = append(plans, plan)
		} else {
			var err error
			if plans, err = app.backend.Budgets.ListBudgets(ctx); err != nil {
				return err
			}
		}

		rows := make([][]string, 0, len(plans))
		for _, p := range plans {
			rows = append(rows, []string{p.Month.String(), cli.FormatMoney(p.Budget), cli.FormatMoney(p.SavingsGoal)})
		}
		fmt.Fprint(cmd.OutOrStdout(), cli.RenderTable(cli.Table{
			Title:   "Budgets",
			Headers: []string{"Month", "Budget", "Savings goal"},
			Rows:    rows,
		}))
		return nil
	},
}

var budgetProgressCmd = &cobra.Command{
	Use:   "progress [MONTH]",
	Short: "Spend against the budget, with the alert when the threshold is reached",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := ctxOf(cmd)
		month, err := monthArg(args)
		if err != nil {
			return err
		}
		p, err := app.backend.Budgets.Progress(ctx, month)
		if err != nil {
			return err
		}
		alert, _, err := app.backend.Budgets.Alert(ctx, p)
		if err != nil {
			return err
		}
		threshold, err := app.backend.Budgets.AlertThreshold(ctx)
		if err != nil {
			return err
		}
		printProgress(cmd.OutOrStdout(), p, threshold, alert)
		return nil
	},
}

var budgetSuggestCmd = &cobra.Command{
	Use:   "suggest [MONTH]",
	Short: "Suggested budget, ceiling and savings goal for a month",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		month, err := monthArg(args)
		if err != nil {
			return err
		}
		s, err := app.backend.Budgets.Suggest(ctxOf(cmd), month)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), cli.RenderTable(cli.Table{
			Title:   "Planning " + month.String(),
			Headers: []string{"", "Amount"},
			Rows: [][]string{
				{"Spent so far", cli.FormatMoney(s.Spent)},
				{"Suggested budget", cli.FormatMoney(s.Budget)},
				{"Ceiling", cli.FormatMoney(s.Ceiling)},
				{"Suggested goal", cli.FormatMoney(s.Goal)},
				{"---"},
				{"Default budget", cli.FormatMoney(s.DefaultBudget)},
				{"Default goal", cli.FormatMoney(s.DefaultGoal)},
			},
		}))
		return nil
	},
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Read and write settings such as alert_threshold",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Print a setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := ctxOf(cmd)
		key := args[0]
		if key == budget.AlertThresholdKey {
			v, err := app.backend.Budgets.AlertThreshold(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %g\n", key, v)
			return nil
		}
		v, ok, err := app.backend.Budgets.LookupSetting(ctx, key)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("setting %q is not set", key)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, v)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Store a setting; alert_threshold must be a ratio between 0 and 1",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.backend.Budgets.SaveSetting(ctxOf(cmd), args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	budgetSetCmd.Flags().StringVar(&setBudgetAmount, "amount", "", "Monthly budget")
	budgetSetCmd.Flags().StringVar(&setBudgetGoal, "goal", "", "Savings goal")

	budgetCmd.AddCommand(budgetSetCmd, budgetShowCmd, budgetProgressCmd, budgetSuggestCmd)
	settingsCmd.AddCommand(settingsGetCmd, settingsSetCmd)
	rootCmd.AddCommand(budgetCmd, settingsCmd)
}

func printProgress(w io.Writer, p budget.Progress, threshold float64, alert string) {
	if p.Budget.Cents <= 0 {
		fmt.Fprintf(w, "  Spent          %s (no budget set for %s)\n", cli.FormatMoney(p.Spent), p.Month)
		return
	}
	fmt.Fprintf(w, "  Budget         %s\n", cli.FormatMoney(p.Budget))
	fmt.Fprintf(w, "  Spent          %s\n", cli.FormatMoney(p.Spent))
	fmt.Fprintf(w, "  Remaining      %s\n", cli.FormatMoney(p.Remaining))
	fmt.Fprintf(w, "  Used           %s\n", cli.RenderBudgetBar(p.UsedRatio(), threshold, 30))
	if alert != "" {
		fmt.Fprintln(w, cli.RenderAlert(alert))
	}
}
