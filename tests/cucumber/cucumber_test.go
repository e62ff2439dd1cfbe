//go:build cucumber
// +build cucumber

package cucumber

import (
	"io"
	"os"
	"testing"

	"github.com/cucumber/godog"
)

// TestLulogFeatures runs the @smoke scenarios, or the tag expression in
// LULOG_FEATURE_TAGS. Progress output is shown with -v.
func TestLulogFeatures(t *testing.T) {
	tags := os.Getenv("LULOG_FEATURE_TAGS")
	if tags == "" {
		tags = "@smoke"
	}
	var output io.Writer = io.Discard
	if testing.Verbose() {
		output = os.Stdout
	}

	suite := godog.TestSuite{
		Name:                "lulog-features",
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "progress",
			Paths:    []string{"features"},
			Tags:     tags,
			Output:   output,
			TestingT: t,
			Strict:   true,
		},
	}
	if status := suite.Run(); status != 0 {
		t.Fatalf("lulog features failed with status %d", status)
	}
}
