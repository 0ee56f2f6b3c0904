package resource

import (
	"math"

	"github.com/andrescamacho/cozyhearth-go/internal/domain/events"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/shared"
)

// Well-known keys
var (
	Gold = Key{Category: CategoryCurrency, Type: "gold"}

	Flour = Key{Category: CategoryIngredients, Type: "flour"}
	Water = Key{Category: CategoryIngredients, Type: "water"}
	Bread = Key{Category: CategoryIngredients, Type: "bread"}

	Wood      = Key{Category: CategoryMaterials, Type: "wood"}
	Furniture = Key{Category: CategoryMaterials, Type: "furniture"}

	Seeds       = Key{Category: CategoryGarden, Type: "seeds"}
	GardenWater = Key{Category: CategoryGarden, Type: "water"}
	Fertilizer  = Key{Category: CategoryGarden, Type: "fertilizer"}
)

var defaultTypes = map[Category][]string{
	CategoryIngredients: {
		"flour", "sugar", "salt", "eggs", "milk", "butter",
		"apples", "berries",
		"potatoes", "carrots",
		"chicken", "beef", "fish",
		"glowberries", "dreamleaf", "moonwater",
		"water", "bread",
	},
	CategoryMaterials: {
		"wood", "stone", "cloth", "metal", "glass",
		"stardust", "enchantedwood", "crystals",
		"furniture",
	},
	CategoryGarden: {
		"seeds.vegetable", "seeds.fruit", "seeds.herb", "seeds.flower", "seeds.magical",
		"water", "fertilizer",
	},
}

var defaultLimits = map[Key]float64{
	Gold:                               math.Inf(1),
	CategoryScope(CategoryIngredients): 50,
	CategoryScope(CategoryMaterials):   30,
	Seeds:                              20,
	GardenWater:                        100,
	Fertilizer:                         50,
}

var defaultPrices = map[string]float64{
	"ingredients.flour":       2,
	"ingredients.sugar":       1,
	"ingredients.salt":        1,
	"ingredients.eggs":        3,
	"ingredients.milk":        2,
	"ingredients.butter":      2,
	"ingredients.apples":      1,
	"ingredients.berries":     2,
	"ingredients.potatoes":    1,
	"ingredients.carrots":     1,
	"ingredients.chicken":     5,
	"ingredients.beef":        8,
	"ingredients.fish":        4,
	"ingredients.glowberries": 15,
	"ingredients.dreamleaf":   20,
	"ingredients.moonwater":   25,
	"ingredients.water":       1,

	"materials.wood":          3,
	"materials.stone":         4,
	"materials.cloth":         5,
	"materials.metal":         8,
	"materials.glass":         10,
	"materials.stardust":      30,
	"materials.enchantedwood": 25,
	"materials.crystals":      20,

	"garden.seeds.vegetable": 2,
	"garden.seeds.fruit":     3,
	"garden.seeds.herb":      4,
	"garden.seeds.flower":    2,
	"garden.seeds.magical":   15,
	"garden.fertilizer":      5,
}

var startingStock = map[string]float64{
	"currency.gold":          100,
	"ingredients.flour":      10,
	"ingredients.sugar":      5,
	"ingredients.salt":       5,
	"ingredients.eggs":       6,
	"ingredients.milk":       2,
	"ingredients.butter":     3,
	"materials.wood":         15,
	"materials.stone":        10,
	"materials.cloth":        5,
	"garden.seeds.vegetable": 5,
	"garden.seeds.fruit":     3,
	"garden.seeds.herb":      2,
	"garden.water":           50,
	"garden.fertilizer":      10,
}

// RegisterDefaults installs the standard resource catalog, limits, rates and
// market prices on an empty ledger.
func RegisterDefaults(l *Ledger) error {
	for key, limit := range defaultLimits {
		if err := l.SetResourceLimit(key, limit); err != nil {
			return err
		}
	}

	for _, category := range Categories {
		for _, typ := range defaultTypes[category] {
			key := Key{Category: category, Type: typ}
			if l.Has(key) {
				continue
			}
			if err := l.AddResourceType(key, 0); err != nil {
				return err
			}
		}
	}

	if err := l.SetGenerationRate(GardenWater, 10); err != nil {
		return err
	}
	if err := l.SetConsumptionRate(CategoryScope(CategoryIngredients), 0.1); err != nil {
		return err
	}

	for path, price := range defaultPrices {
		if err := l.SetMarketPrice(MustParseKey(path), price); err != nil {
			return err
		}
	}
	return nil
}

// ApplyStartingStock loads the stock a new game begins with
func ApplyStartingStock(l *Ledger) {
	state := make(State)
	for path, amount := range startingStock {
		key := MustParseKey(path)
		if state[key.Category] == nil {
			state[key.Category] = make(map[string]float64)
		}
		state[key.Category][key.Type] = amount
	}
	l.LoadState(state)
}

// NewDefaultLedger creates a ledger with the standard catalog and the
// new-game starting stock.
func NewDefaultLedger(publisher events.Publisher, logger shared.Logger) (*Ledger, error) {
	l := NewLedger(publisher, logger)
	if err := RegisterDefaults(l); err != nil {
		return nil, err
	}
	ApplyStartingStock(l)
	return l, nil
}
