package e2e

import (
	"github.com/cucumber/godog"

	"flims/e2e/steps/common"
	"flims/e2e/steps/flims"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Generic requests and response assertions
	common.RegisterSteps(ctx, tc)

	// Flim collection steps
	flims.RegisterSteps(ctx, tc)
}
