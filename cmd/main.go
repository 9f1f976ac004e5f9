package main

import (
	"os"
)

func main() {
	rootCmd := buildRootCommand()
	rootCmd.AddCommand(buildHistoryCommand())
	rootCmd.AddCommand(buildDoctorCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
