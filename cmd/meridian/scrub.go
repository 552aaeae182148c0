package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"meridian-hq/meridian/pkg/config"
	"meridian-hq/meridian/pkg/redact"
)

var scrubFlags struct {
	file       string
	configFile string
	showStats  bool
}

var scrubCmd = &cobra.Command{
	Use:   "scrub",
	Short: "Redact PII from a body",
	Long: `Run the redaction pipeline over a body read from a file or stdin and
write the masked output to stdout.

Without --scrub-config the default pattern set is used (credit card, SSN,
email). With a configuration file the scan runs exactly as the filter would
run it, including custom patterns.

Examples:
  # Scrub stdin with the default patterns
  cat response.json | meridian scrub

  # Scrub a file with a redaction configuration
  meridian scrub --file body.json --scrub-config scrub.json

  # Print match statistics to stderr
  meridian scrub --file body.json --stats`,
	RunE: scrubBody,
}

func init() {
	rootCmd.AddCommand(scrubCmd)

	scrubCmd.Flags().StringVarP(&scrubFlags.file, "file", "f", "", "input file (default: stdin)")
	scrubCmd.Flags().StringVar(&scrubFlags.configFile, "scrub-config", "", "redaction configuration file")
	scrubCmd.Flags().BoolVar(&scrubFlags.showStats, "stats", false, "print match statistics to stderr")
}

func scrubBody(cmd *cobra.Command, args []string) error {
	engine, err := buildScrubEngine(cmd)
	if err != nil {
		return err
	}

	var input []byte
	if scrubFlags.file != "" {
		input, err = os.ReadFile(scrubFlags.file)
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
	} else {
		input, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	}

	result := engine.Redact(input)
	if _, err := os.Stdout.Write(result.Content); err != nil {
		return err
	}

	if scrubFlags.showStats {
		stats := struct {
			Redacted        bool     `json:"redacted"`
			MatchCount      int      `json:"match_count"`
			MatchedPatterns []string `json:"matched_patterns,omitempty"`
		}{result.Redacted, result.MatchCount, result.MatchedPatterns}

		encoder := json.NewEncoder(os.Stderr)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(stats); err != nil {
			return err
		}
	}
	return nil
}

func buildScrubEngine(cmd *cobra.Command) (*redact.Engine, error) {
	tableCfg := redact.DefaultTableConfig()
	maxBody := 0

	switch {
	case scrubFlags.configFile != "":
		rc, err := config.LoadRedaction(scrubFlags.configFile)
		if err != nil {
			return nil, err
		}
		tableCfg = rc.TableConfig()
		maxBody = rc.MaxBodySizeBytes

	case gitURL != "":
		src, err := newConfigSource()
		if err != nil {
			return nil, err
		}
		data, err := src.Fetch(commandContext(cmd))
		if err != nil {
			return nil, err
		}
		rc, err := config.ParseRedaction(data, src.Format())
		if err != nil {
			return nil, err
		}
		tableCfg = rc.TableConfig()
		maxBody = rc.MaxBodySizeBytes
	}

	table, err := redact.NewTable(tableCfg)
	if err != nil {
		return nil, err
	}
	return redact.NewEngine(redact.EngineConfig{
		Table:       table,
		MaxBodySize: maxBody,
	}), nil
}
