package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newVerifyCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "verify <file>",
		Short: "Check a transaction file for malformed rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(args[0], format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "generic", "input format")

	return cmd
}

func runVerify(input, format string) error {
	records, err := parseFile(input, format)
	if err != nil {
		return err
	}

	bad := 0
	for _, rec := range records {
		if rec.Err != nil {
			bad++
			fmt.Fprintf(os.Stderr, "line %d: %v\n", rec.Line, rec.Err)
		}
	}

	if bad > 0 {
		return fmt.Errorf("%d of %d rows malformed", bad, len(records))
	}
	fmt.Printf("%s: %d rows OK\n", filepath.Base(input), len(records))
	return nil
}
