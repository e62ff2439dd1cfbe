package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestResolveUIMode(t *testing.T) {
	cases := []struct {
		name     string
		mode     string
		verbose  bool
		isTTY    bool
		wantLive bool
		wantWarn string
		wantErr  string
	}{
		{name: "auto on a terminal draws the table", mode: "auto", isTTY: true, wantLive: true},
		{name: "auto when piped prints lines", mode: "auto"},
		{name: "empty mode behaves like auto", mode: "", isTTY: true, wantLive: true},
		{name: "mode is case insensitive", mode: " LIVE ", isTTY: true, wantLive: true},
		{name: "plain ignores the terminal", mode: "plain", isTTY: true},
		{name: "verbose forces plain lines", mode: "live", verbose: true, isTTY: true},
		{name: "live on a terminal", mode: "live", isTTY: true, wantLive: true},
		{name: "live when piped falls back", mode: "live", wantWarn: "not a TTY"},
		{name: "unknown mode", mode: "fancy", isTTY: true, wantErr: "invalid --ui value \"fancy\""},
	}

	original := isTerminal
	t.Cleanup(func() { isTerminal = original })

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			isTerminal = func(_ io.Writer) bool { return tc.isTTY }
			decision, err := resolveUIMode(tc.mode, tc.verbose, nil)
			if tc.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if decision.useLive != tc.wantLive {
				t.Fatalf("expected useLive=%v, got %v", tc.wantLive, decision.useLive)
			}
			if tc.wantWarn == "" && decision.warning != "" {
				t.Fatalf("did not expect warning, got %q", decision.warning)
			}
			if !strings.Contains(decision.warning, tc.wantWarn) {
				t.Fatalf("expected warning containing %q, got %q", tc.wantWarn, decision.warning)
			}
		})
	}
}

func TestDefaultIsTerminalRejectsBuffers(t *testing.T) {
	if defaultIsTerminal(nil) {
		t.Fatalf("nil writer is not a terminal")
	}
	if defaultIsTerminal(&bytes.Buffer{}) {
		t.Fatalf("buffer is not a terminal")
	}
}
