package bdd

import (
	"os"
	"testing"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/cozyhearth-go/test/bdd/steps"
	"github.com/andrescamacho/cozyhearth-go/test/helpers"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/domain", "features/application"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func InitializeScenario(sc *godog.ScenarioContext) {
	// Domain layer scenarios
	steps.InitializeClockScenario(sc)
	steps.InitializeLedgerScenario(sc)
	steps.InitializeCraftingScenario(sc)
	steps.InitializeInteractionScenario(sc)

	// Application layer scenarios
	steps.InitializeSaveGameScenario(sc)
}

func TestMain(m *testing.M) {
	// Save game scenarios share one in-memory database
	if err := helpers.InitializeSharedTestDB(); err != nil {
		panic("Failed to initialize shared test database: " + err.Error())
	}

	code := m.Run()
	_ = helpers.CloseSharedTestDB()
	os.Exit(code)
}
