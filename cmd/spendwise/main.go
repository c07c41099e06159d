// Command spendwise records expenses, plans monthly budgets and reports on
// spending from the terminal, and serves the same operations over HTTP.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
