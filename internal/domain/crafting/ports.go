package crafting

import "github.com/andrescamacho/cozyhearth-go/internal/domain/resource"

// ResourceStore is the ledger surface the scheduler debits and credits through
type ResourceStore interface {
	HasEnoughResources(req resource.Requirements) bool
	ConsumeResources(req resource.Requirements) error
	CreditResources(out resource.Requirements) error
}
