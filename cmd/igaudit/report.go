package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// writeReport marshals the report as indented JSON and writes it to the
// --output file when set, stdout otherwise.
func writeReport(report interface{}) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	data = append(data, '\n')

	if outputFile == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return fmt.Errorf("write report to %s: %w", outputFile, err)
	}
	return nil
}
