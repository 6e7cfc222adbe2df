package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JoaoFelipe/patterncounter"
	"github.com/JoaoFelipe/patterncounter/variable"
)

const (
	outputFormatText = "text"
	outputFormatJSON = "json"
)

var countFlags = struct {
	file   *string
	vars   *[]string
	format *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "count <pattern>...",
		Short:   "Count pattern occurrences over a corpus",
		Example: `  patterncounter count "A B" "A & B" -f corpus.txt`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runCount,
	}
	countFlags.file = cmd.Flags().StringP("file", "f", "", "corpus file path (default stdin)")
	countFlags.vars = cmd.Flags().StringArrayP("var", "v", nil, "variable declaration: NAME, NAME~A,B,C or NAME:A,B,C")
	countFlags.format = cmd.Flags().StringP("format", "", outputFormatText, "output format: one of text|json")
	rootCmd.AddCommand(cmd)
}

func runCount(cmd *cobra.Command, args []string) error {
	if *countFlags.format != outputFormatText && *countFlags.format != outputFormatJSON {
		return fmt.Errorf("invalid output format: %v", *countFlags.format)
	}

	src, err := openSource(*countFlags.file)
	if err != nil {
		return fmt.Errorf("cannot open corpus: %w", err)
	}
	defer src.Close()

	driver, err := patterncounter.LoadCorpus(src)
	if err != nil {
		return fmt.Errorf("cannot read corpus: %w", err)
	}

	var declared []variable.Variable
	for _, decl := range *countFlags.vars {
		v, err := variable.ParseDecl(decl)
		if err != nil {
			return fmt.Errorf("invalid variable declaration %q: %w", decl, err)
		}
		declared = append(declared, v)
	}

	report, errs := driver.CountAll(args, declared)
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "%v\n", e)
	}

	if *countFlags.format == outputFormatJSON {
		return printJSON(report)
	}
	printText(report)
	return nil
}

func printJSON(report patterncounter.Report) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func printText(report patterncounter.Report) {
	for _, p := range report.Patterns {
		fmt.Printf("pattern %q: support=%s matches=%v\n", p.Pattern, p.Support, p.Matches)
		for _, b := range p.Bindings {
			fmt.Printf("  binding %v: matches=%v\n", b.Binding, b.Matches)
		}
	}
	if report.JointDefined {
		fmt.Printf("joint=%s\n", report.Joint)
	}
	for _, pair := range report.Pairs {
		fmt.Printf("pair(%d,%d): joint=%s", pair.I, pair.J, pair.Joint)
		if pair.ConfidenceDefined {
			fmt.Printf(" conf=%s", pair.Confidence)
		}
		if pair.LiftDefined {
			fmt.Printf(" lift=%s", pair.Lift)
		}
		fmt.Println()
	}
}
