package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "patterncounter",
	Short: "Count pattern occurrences over a corpus of itemset sequences",
	Long: `patterncounter counts occurrences of user-defined patterns in a
corpus of sequences of groups. Patterns describe element presence,
insertion/removal events, positional constraints, logical
combinations, temporal ordering and contiguous slice windows.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
