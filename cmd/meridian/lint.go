package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"meridian-hq/meridian/pkg/config"
)

var lintFlags struct {
	file   string
	kind   string
	format string
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate configuration files",
	Long: `Validate Meridian configuration files for syntax and semantic errors.

The lint command decodes the file, applies defaults, and runs full
validation: pattern names and regexes, routing rule structure, condition
types and operators, audit settings.

Examples:
  # Lint a full configuration
  meridian lint --file meridian.json

  # Lint a standalone redaction section
  meridian lint --file scrub.json --kind redaction

  # JSON output for CI
  meridian lint --file meridian.yaml --format json`,
	RunE: lintConfig,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "", "configuration file to validate")
	lintCmd.Flags().StringVar(&lintFlags.kind, "kind", "full", "document kind: full, redaction, routing")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
}

// lintResult is the machine-readable lint outcome for one file.
type lintResult struct {
	File   string   `json:"file"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

func lintConfig(cmd *cobra.Command, args []string) error {
	if lintFlags.file == "" {
		return fmt.Errorf("--file must be specified")
	}

	var err error
	switch lintFlags.kind {
	case "full":
		_, err = config.Load(lintFlags.file)
	case "redaction":
		_, err = config.LoadRedaction(lintFlags.file)
	case "routing":
		_, err = config.LoadRouting(lintFlags.file)
	default:
		return fmt.Errorf("unknown kind %q (expected full, redaction or routing)", lintFlags.kind)
	}

	result := lintResult{File: lintFlags.file, Valid: err == nil}
	if err != nil {
		var verr config.ValidationError
		if errors.As(err, &verr) {
			for _, fe := range verr.Errors {
				result.Errors = append(result.Errors, fe.Error())
			}
		} else {
			result.Errors = append(result.Errors, err.Error())
		}
	}

	if lintFlags.format == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			return err
		}
	} else {
		fmt.Printf("Validating %s...\n", result.File)
		if result.Valid {
			fmt.Println("✓ Configuration valid")
		} else {
			for _, msg := range result.Errors {
				fmt.Printf("✗ Error: %s\n", msg)
			}
		}
	}

	if !result.Valid {
		return fmt.Errorf("validation failed")
	}
	return nil
}
