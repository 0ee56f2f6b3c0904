package crafting

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/cozyhearth-go/internal/domain/resource"
)

// Recipe converts inputs into outputs over a fixed crafting time,
// optionally gated on a skill level.
type Recipe struct {
	ID                  string                `validate:"required"`
	Name                string                `validate:"required"`
	Inputs              resource.Requirements `validate:"dive,gte=0"`
	Outputs             resource.Requirements `validate:"required,min=1,dive,gt=0"`
	CraftingTimeMinutes float64               `validate:"gt=0"`
	RequiredSkill       string
	SkillLevel          int `validate:"required_with=RequiredSkill,gte=0"`
}

// HasSkillRequirement reports whether the recipe is gated on a skill
func (r Recipe) HasSkillRequirement() bool {
	return r.RequiredSkill != "" && r.SkillLevel > 0
}

// ScaledInputs returns the inputs for quantity crafts
func (r Recipe) ScaledInputs(quantity int) resource.Requirements {
	return r.Inputs.Scale(float64(quantity))
}

// ScaledOutputs returns the outputs for quantity crafts
func (r Recipe) ScaledOutputs(quantity int) resource.Requirements {
	return r.Outputs.Scale(float64(quantity))
}

// DurationSeconds is the real-time budget for quantity crafts
func (r Recipe) DurationSeconds(quantity int) float64 {
	return r.CraftingTimeMinutes * 60 * float64(quantity)
}

func (r Recipe) clone() Recipe {
	c := r
	c.Inputs = r.Inputs.Clone()
	c.Outputs = r.Outputs.Clone()
	return c
}

// Skills maps a skill name to the actor's level; missing skills are level 0
type Skills map[string]int

func (s Skills) Level(name string) int {
	return s[name]
}

// Catalog holds recipes keyed by id in registration order.
// Registered recipes cannot be modified.
type Catalog struct {
	recipes  map[string]Recipe
	order    []string
	validate *validator.Validate
}

func NewCatalog() *Catalog {
	return &Catalog{
		recipes:  make(map[string]Recipe),
		validate: validator.New(),
	}
}

// Register validates and adds a recipe
func (c *Catalog) Register(r Recipe) error {
	if err := c.validate.Struct(r); err != nil {
		return formatValidationError(r.ID, err)
	}
	for _, req := range []resource.Requirements{r.Inputs, r.Outputs} {
		for key := range req {
			if !key.Category.IsValid() || key.IsScope() {
				return fmt.Errorf("recipe %s: invalid resource %s", r.ID, key)
			}
		}
	}
	if _, exists := c.recipes[r.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRecipe, r.ID)
	}

	c.recipes[r.ID] = r.clone()
	c.order = append(c.order, r.ID)
	return nil
}

// Get returns a copy of the recipe with the given id
func (c *Catalog) Get(id string) (Recipe, bool) {
	r, ok := c.recipes[id]
	if !ok {
		return Recipe{}, false
	}
	return r.clone(), true
}

// All returns copies of every recipe in registration order
func (c *Catalog) All() []Recipe {
	out := make([]Recipe, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.recipes[id].clone())
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.order)
}

func formatValidationError(id string, err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("recipe %s: %w", id, err)
	}
	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		messages = append(messages, fmt.Sprintf("field '%s' failed validation: %s", e.Field(), e.Tag()))
	}
	return fmt.Errorf("invalid recipe %q: %s", id, strings.Join(messages, "; "))
}

// DefaultRecipes returns the recipes a new inn knows
func DefaultRecipes() []Recipe {
	return []Recipe{
		{
			ID:   "bread",
			Name: "Bread",
			Inputs: resource.Requirements{
				resource.Flour: 2,
				resource.Water: 1,
			},
			Outputs: resource.Requirements{
				resource.Bread: 1,
			},
			CraftingTimeMinutes: 30,
			RequiredSkill:       "cooking",
			SkillLevel:          1,
		},
		{
			ID:   "basicFurniture",
			Name: "Basic Furniture",
			Inputs: resource.Requirements{
				resource.Wood: 5,
			},
			Outputs: resource.Requirements{
				resource.Furniture: 1,
			},
			CraftingTimeMinutes: 60,
			RequiredSkill:       "crafting",
			SkillLevel:          1,
		},
	}
}

// NewDefaultCatalog creates a catalog holding DefaultRecipes
func NewDefaultCatalog() (*Catalog, error) {
	c := NewCatalog()
	for _, r := range DefaultRecipes() {
		if err := c.Register(r); err != nil {
			return nil, err
		}
	}
	return c, nil
}
