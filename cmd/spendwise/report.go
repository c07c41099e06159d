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

var (
	summaryFilters   filterFlags
	summaryDimension string
	summaryReindex   bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Sum, mean and count per category or payment method",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dim, err := analytics.ParseDimension(summaryDimension)
		if err != nil {
			return err
		}
		expenses, err := queryFiltered(cmd, &summaryFilters)
		if err != nil {
			return err
		}
		summary := analytics.GroupSummary(expenses, dim)
		rows := analytics.Rows(summary)
		if summaryReindex {
			rows = analytics.Reindex(summary, dim.Values(app.backend.Expenses.Taxonomy()))
		}
		printGroups(cmd.OutOrStdout(), "By "+string(dim), rows)
		return nil
	},
}

var (
	trendFilters filterFlags
	trendBucket  string
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Spending per day, week or month",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		bucket, err := analytics.ParseBucket(trendBucket)
		if err != nil {
			return err
		}
		expenses, err := queryFiltered(cmd, &trendFilters)
		if err != nil {
			return err
		}
		printTrend(cmd.OutOrStdout(), bucket, analytics.Trend(expenses, bucket))
		return nil
	},
}

var distributionFilters filterFlags

var distributionCmd = &cobra.Command{
	Use:   "distribution",
	Short: "Share of total spending per category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		expenses, err := queryFiltered(cmd, &distributionFilters)
		if err != nil {
			return err
		}
		shares := analytics.Distribution(expenses)
		if len(shares) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderMuted("  No expenses match."))
			return nil
		}
		rows := make([][]string, 0, len(shares))
		for _, s := range shares {
			rows = append(rows, []string{s.Category, cli.FormatMoney(s.Total), cli.FormatShare(s.Percent)})
		}
		fmt.Fprint(cmd.OutOrStdout(), cli.RenderTable(cli.Table{
			Title:   "Distribution",
			Headers: []string{"Category", "Total", "Share"},
			Rows:    rows,
		}))
		return nil
	},
}

var (
	dashboardMonth     string
	dashboardRange     string
	dashboardDimension string
	dashboardBucket    string
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Month overview: budget progress, highlights and recent expenses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := ctxOf(cmd)
		month, err := monthArg([]string{dashboardMonth})
		if err != nil {
			return err
		}
		d, err := app.backend.Dashboard.Month(ctx, month)
		if err != nil {
			return err
		}
		threshold, err := app.backend.Budgets.AlertThreshold(ctx)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w)
		fmt.Fprintln(w, cli.RenderTitle("SPENDWISE  "+month.String()))
		fmt.Fprintln(w)
		printProgress(w, d.Progress, threshold, d.Alert)
		if d.SavingsGoal.Cents > 0 {
			fmt.Fprintf(w, "  Savings goal   %s\n", cli.FormatMoney(d.SavingsGoal))
		}
		fmt.Fprintf(w, "  Transactions   %d\n", d.Highlights.Count)
		fmt.Fprintf(w, "  Avg daily      %s\n", cli.FormatMean(d.Highlights.AvgDaily))
		if d.Highlights.TopCategory != "" {
			fmt.Fprintf(w, "  Top category   %s (%s)\n", d.Highlights.TopCategory, cli.FormatMoney(d.Highlights.TopAmount))
		}
		fmt.Fprintln(w)
		if len(d.Recent) > 0 {
			printExpenses(w, "Recent", d.Recent)
			printGroups(w, "Categories", d.Categories)
		}

		if dashboardRange == "" {
			return nil
		}
		dim, err := analytics.ParseDimension(dashboardDimension)
		if err != nil {
			return err
		}
		bucket, err := analytics.ParseBucket(dashboardBucket)
		if err != nil {
			return err
		}
		charts, err := app.backend.Dashboard.Charts(ctx, analytics.RangePreset(dashboardRange), dim, bucket, today())
		if err != nil {
			return err
		}
		printGroups(w, fmt.Sprintf("By %s, %s", charts.Dimension, dashboardRange), charts.Breakdown)
		printTrend(w, charts.Bucket, charts.Trend)
		return nil
	},
}

func init() {
	summaryFilters.bind(summaryCmd)
	summaryCmd.Flags().StringVar(&summaryDimension, "dimension", "category", "Group by: category or payment_method")
	summaryCmd.Flags().BoolVar(&summaryReindex, "all", false, "Include every category or method, even without spend")

	trendFilters.bind(trendCmd)
	trendCmd.Flags().StringVarP(&trendBucket, "bucket", "b", "daily", "Bucket width: daily, weekly, monthly")

	distributionFilters.bind(distributionCmd)

	dashboardCmd.Flags().StringVar(&dashboardMonth, "month", "", "Month (YYYY-MM, default current)")
	dashboardCmd.Flags().StringVar(&dashboardRange, "range", "", "Also chart a range: current-month, last-30-days, year-to-date, all-time")
	dashboardCmd.Flags().StringVar(&dashboardDimension, "dimension", "category", "Chart breakdown: category or payment_method")
	dashboardCmd.Flags().StringVarP(&dashboardBucket, "bucket", "b", "daily", "Chart trend bucket: daily, weekly, monthly")

	rootCmd.AddCommand(summaryCmd, trendCmd, distributionCmd, dashboardCmd)
}

func queryFiltered(cmd *cobra.Command, flags *filterFlags) ([]core.Expense, error) {
	f, err := flags.filter()
	if err != nil {
		return nil, err
	}
	return app.backend.Expenses.Query(ctxOf(cmd), f, analytics.OldestFirst)
}

func printGroups(w io.Writer, title string, groups []analytics.GroupRow) {
	if len(groups) == 0 {
		fmt.Fprintln(w, cli.RenderMuted("  No expenses match."))
		return
	}
	rows := make([][]string, 0, len(groups))
	var total core.Money
	count := 0
	for _, g := range groups {
		total = total.Add(g.Sum)
		count += g.Count
		rows = append(rows, []string{g.Value, cli.FormatMoney(g.Sum), cli.FormatMean(g.Mean), strconv.Itoa(g.Count)})
	}
	rows = append(rows, []string{"---"}, []string{"Total", cli.FormatMoney(total), "", strconv.Itoa(count)})
	fmt.Fprint(w, cli.RenderTable(cli.Table{
		Title:   title,
		Headers: []string{"Value", "Sum", "Mean", "Count"},
		Rows:    rows,
	}))
}

func printTrend(w io.Writer, bucket analytics.Bucket, points []analytics.TrendPoint) {
	if len(points) == 0 {
		fmt.Fprintln(w, cli.RenderMuted("  No expenses match."))
		return
	}
	rows := make([][]string, 0, len(points))
	values := make([]float64, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{bucket.Label(p.Start), cli.FormatMoney(p.Sum)})
		values = append(values, p.Sum.Float64())
	}
	fmt.Fprint(w, cli.RenderTable(cli.Table{
		Title:   "Trend (" + bucket.String() + ")  " + cli.RenderSparkline(values),
		Headers: []string{"Period", "Spent"},
		Rows:    rows,
	}))
}
