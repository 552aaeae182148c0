package main

import (
	"io"
	"os"
	"strings"
	"testing"
)

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// everything written.
func captureStdout(t *testing.T, fn func() error) string {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	old := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = old }()

	runErr := fn()
	w.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if runErr != nil {
		t.Fatalf("command returned error: %v", runErr)
	}
	return string(out)
}

func TestRouteCookieMatch(t *testing.T) {
	routeFlags.configFile = writeTempConfig(t, "meridian.json", validFullConfig)
	routeFlags.path = "/api/items"
	routeFlags.query = ""
	routeFlags.headers = nil
	routeFlags.cookies = []string{"beta=true"}

	out := captureStdout(t, func() error { return routeDecide(nil, nil) })

	if !strings.Contains(out, `"target": "v2"`) {
		t.Errorf("expected v2 target in output, got:\n%s", out)
	}
	if !strings.Contains(out, `"matched_rule": "beta-testers"`) {
		t.Errorf("expected matched rule in output, got:\n%s", out)
	}
}

func TestRouteDefaultTarget(t *testing.T) {
	routeFlags.configFile = writeTempConfig(t, "meridian.json", validFullConfig)
	routeFlags.path = "/api/items"
	routeFlags.query = ""
	routeFlags.headers = nil
	routeFlags.cookies = nil

	out := captureStdout(t, func() error { return routeDecide(nil, nil) })

	if !strings.Contains(out, `"target": "v1"`) {
		t.Errorf("expected default v1 target in output, got:\n%s", out)
	}
	if strings.Contains(out, "matched_rule") {
		t.Errorf("default decision should omit matched_rule, got:\n%s", out)
	}
}

func TestRouteMalformedHeader(t *testing.T) {
	routeFlags.configFile = writeTempConfig(t, "meridian.json", validFullConfig)
	routeFlags.path = "/"
	routeFlags.query = ""
	routeFlags.headers = []string{"no-colon-here"}
	routeFlags.cookies = nil

	if err := routeDecide(nil, nil); err == nil {
		t.Error("routeDecide() with malformed header should return error")
	}
}
