package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/JoaoFelipe/patterncounter"
)

var selectFlags = struct {
	file *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "select <index>...",
		Short:   "Print the requested corpus lines, prefixed by their index",
		Example: `  patterncounter select 0 2 -f corpus.txt`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runSelect,
	}
	selectFlags.file = cmd.Flags().StringP("file", "f", "", "corpus file path (default stdin)")
	rootCmd.AddCommand(cmd)
}

func runSelect(cmd *cobra.Command, args []string) error {
	indices := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return fmt.Errorf("invalid index %q: %w", a, err)
		}
		indices[i] = n
	}

	src, err := openSource(*selectFlags.file)
	if err != nil {
		return fmt.Errorf("cannot open corpus: %w", err)
	}
	defer src.Close()

	driver, err := patterncounter.LoadCorpus(src)
	if err != nil {
		return fmt.Errorf("cannot read corpus: %w", err)
	}

	lines, err := driver.Select(indices)
	if err != nil {
		return err
	}
	for _, line := range lines {
		fmt.Println(line)
	}
	return nil
}
