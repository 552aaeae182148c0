package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"meridian-hq/meridian/pkg/config"
	"meridian-hq/meridian/pkg/routing"
)

var routeFlags struct {
	configFile string
	path       string
	query      string
	headers    []string
	cookies    []string
}

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Evaluate a routing decision",
	Long: `Evaluate the routing rule set against a synthetic request and print the
resulting decision as JSON.

Request attributes are supplied with flags. Cookies are folded into the
Cookie header exactly as the filter sees them at the edge.

Examples:
  # Decide the target for a path
  meridian route --route-config meridian.json --path /api/items

  # Simulate a cookie and a header
  meridian route --route-config meridian.json --path /api/items \
    --cookie "beta=true" --header "User-Agent: legacy-client/1.0"

  # Query parameters
  meridian route --route-config meridian.json --path /search --query "debug=1"`,
	RunE: routeDecide,
}

func init() {
	rootCmd.AddCommand(routeCmd)

	routeCmd.Flags().StringVar(&routeFlags.configFile, "route-config", "", "configuration file with routing rules (default: --config)")
	routeCmd.Flags().StringVar(&routeFlags.path, "path", "/", "request path")
	routeCmd.Flags().StringVar(&routeFlags.query, "query", "", "raw query string")
	routeCmd.Flags().StringArrayVar(&routeFlags.headers, "header", nil, "request header as \"Name: value\" (repeatable)")
	routeCmd.Flags().StringArrayVar(&routeFlags.cookies, "cookie", nil, "request cookie as \"name=value\" (repeatable)")
}

func routeDecide(cmd *cobra.Command, args []string) error {
	rc, err := loadRoutingConfig(cmd)
	if err != nil {
		return err
	}

	rules, err := routing.NewRuleSet(rc.DefaultTarget, rc.Rules)
	if err != nil {
		return err
	}
	engine := routing.NewEngine(rules, nil)

	headers := make(map[string]string, len(routeFlags.headers)+1)
	for _, h := range routeFlags.headers {
		name, value, ok := strings.Cut(h, ":")
		if !ok {
			return fmt.Errorf("malformed header %q (expected \"Name: value\")", h)
		}
		headers[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	if len(routeFlags.cookies) > 0 {
		headers["Cookie"] = strings.Join(routeFlags.cookies, "; ")
	}

	attrs := routing.NewRequestAttributes(headers, routeFlags.path, routeFlags.query)
	decision := engine.Decide(attrs)

	out := struct {
		Target        string            `json:"target"`
		MatchedRule   string            `json:"matched_rule,omitempty"`
		AddHeaders    map[string]string `json:"add_headers,omitempty"`
		RemoveHeaders []string          `json:"remove_headers,omitempty"`
	}{decision.Target, decision.MatchedRule, decision.AddHeaders, decision.RemoveHeaders}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// loadRoutingConfig resolves the rule set: an explicit --route-config file
// wins, otherwise the global source flags decide between git and the local
// --config file.
func loadRoutingConfig(cmd *cobra.Command) (*config.RoutingConfig, error) {
	if routeFlags.configFile != "" {
		return loadRoutingSection(routeFlags.configFile)
	}

	src, err := newConfigSource()
	if err != nil {
		return nil, err
	}
	data, err := src.Fetch(commandContext(cmd))
	if err != nil {
		return nil, err
	}
	if cfg, err := config.Parse(data, src.Format()); err == nil {
		return &cfg.Routing, nil
	}
	return config.ParseRouting(data, src.Format())
}

// loadRoutingSection accepts either a full configuration or a standalone
// routing document, trying the full form first.
func loadRoutingSection(path string) (*config.RoutingConfig, error) {
	if cfg, err := config.Load(path); err == nil {
		return &cfg.Routing, nil
	}
	return config.LoadRouting(path)
}
