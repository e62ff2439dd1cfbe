//go:build cucumber
// +build cucumber

package cucumber

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/cucumber/godog"
)

// featureState is one scenario's fixture repo and the last lulog result.
type featureState struct {
	repoDir     string
	configPath  string
	previousWD  string
	savedEnv    map[string]*string
	lastCommand string
	stdout      bytes.Buffer
	stderr      bytes.Buffer
	exitCode    int
	initialized bool
}

// quietEnv keeps zap output out of the asserted stderr.
var quietEnv = map[string]string{
	"LOG_LEVEL":  "error",
	"LOG_FORMAT": "console",
}

// InitializeScenario wires cucumber steps to the feature state.
func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &featureState{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		state.reset()
		for key, value := range quietEnv {
			if err := state.setEnv(key, value); err != nil {
				return ctx, err
			}
		}
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		state.cleanup()
		return ctx, nil
	})

	ctx.Step(`^a git repository with a valid lulog configuration$`, state.aGitRepositoryWithValidConfig)
	ctx.Step(`^the config is invalid$`, state.theConfigIsInvalid)
	ctx.Step(`^the (cpu|gpu) dump of step "([^"]+)" field "([^"]+)" holds "([^"]*)"$`, state.theDumpHolds)
	ctx.Step(`^I run "([^"]+)"$`, state.iRunCommand)
	ctx.Step(`^the output lists these commands:$`, state.theOutputListsCommands)
	ctx.Step(`^the exit code is zero$`, state.theExitCodeIsZero)
	ctx.Step(`^the exit code is non-zero$`, state.theExitCodeIsNonZero)
	ctx.Step(`^the error message points to the invalid field$`, state.theErrorMessagePointsToInvalidField)
	ctx.Step(`^the output contains "([^"]+)"$`, state.theOutputContains)
	ctx.Step(`^the file "([^"]+)" contains "([^"]+)"$`, state.theFileContains)
}

func (s *featureState) reset() {
	*s = featureState{savedEnv: map[string]*string{}}
}

// cleanup leaves the fixture repo, restores the environment and deletes the repo.
func (s *featureState) cleanup() {
	if s.previousWD != "" {
		_ = os.Chdir(s.previousWD)
	}
	for key, value := range s.savedEnv {
		if value != nil {
			_ = os.Setenv(key, *value)
		} else {
			_ = os.Unsetenv(key)
		}
	}
	if s.repoDir != "" {
		_ = os.RemoveAll(s.repoDir)
	}
}

// setEnv sets key for the scenario, saving the first value seen so cleanup
// can restore it.
func (s *featureState) setEnv(key, value string) error {
	if _, saved := s.savedEnv[key]; !saved {
		var previous *string
		if current, ok := os.LookupEnv(key); ok {
			previous = &current
		}
		s.savedEnv[key] = previous
	}
	if err := os.Setenv(key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
