package resource

import (
	"fmt"
	"sort"
	"strings"
)

// Category is the top-level grouping of a resource
type Category string

const (
	CategoryCurrency    Category = "currency"
	CategoryIngredients Category = "ingredients"
	CategoryMaterials   Category = "materials"
	CategoryGarden      Category = "garden"
)

// Categories lists every valid category in display order
var Categories = []Category{
	CategoryCurrency,
	CategoryIngredients,
	CategoryMaterials,
	CategoryGarden,
}

// IsValid reports whether c is one of the known categories
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory resolves a category name
func ParseCategory(name string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(name)))
	if !c.IsValid() {
		return "", fmt.Errorf("unknown resource category: %q", name)
	}
	return c, nil
}

// Key identifies a ledger entry. Grouped resources carry their group in a
// dotted type, e.g. {garden, "seeds.vegetable"}.
//
// A Key with an empty Type, or with a Type naming a group, is a scope used
// for default limits and rates rather than an entry.
type Key struct {
	Category Category
	Type     string
}

// NewKey builds a key from a category and type
func NewKey(category Category, typ string) Key {
	return Key{Category: category, Type: typ}
}

// CategoryScope is the key under which category-wide defaults live
func CategoryScope(category Category) Key {
	return Key{Category: category}
}

// ParseKey parses "category.type[.subtype]" into a Key
func ParseKey(path string) (Key, error) {
	category, typ, found := strings.Cut(strings.TrimSpace(path), ".")
	if !found || typ == "" {
		return Key{}, fmt.Errorf("invalid resource path %q: expected category.type", path)
	}
	c, err := ParseCategory(category)
	if err != nil {
		return Key{}, err
	}
	return Key{Category: c, Type: typ}, nil
}

// MustParseKey is ParseKey for static tables; it panics on error
func MustParseKey(path string) Key {
	k, err := ParseKey(path)
	if err != nil {
		panic(err)
	}
	return k
}

func (k Key) String() string {
	if k.Type == "" {
		return string(k.Category)
	}
	return string(k.Category) + "." + k.Type
}

// IsScope reports whether k names a whole category
func (k Key) IsScope() bool {
	return k.Type == ""
}

// Parent returns the enclosing scope: the group for a grouped type, the
// category for a top-level type, and false for a category scope.
func (k Key) Parent() (Key, bool) {
	if k.Type == "" {
		return Key{}, false
	}
	if i := strings.LastIndex(k.Type, "."); i >= 0 {
		return Key{Category: k.Category, Type: k.Type[:i]}, true
	}
	return Key{Category: k.Category}, true
}

// Requirements maps resource keys to quantities.
// It is the input and output shape of recipes and multi-resource debits.
type Requirements map[Key]float64

// Scale returns a copy with every quantity multiplied by factor
func (r Requirements) Scale(factor float64) Requirements {
	out := make(Requirements, len(r))
	for k, v := range r {
		out[k] = v * factor
	}
	return out
}

// Keys returns the keys in a stable order
func (r Requirements) Keys() []Key {
	keys := make([]Key, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sortKeys(keys)
	return keys
}

// Clone returns an independent copy
func (r Requirements) Clone() Requirements {
	return r.Scale(1)
}

func (r Requirements) String() string {
	parts := make([]string, 0, len(r))
	for _, k := range r.Keys() {
		parts = append(parts, fmt.Sprintf("%s=%g", k, r[k]))
	}
	return strings.Join(parts, ", ")
}

func sortKeys(keys []Key) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Category != keys[j].Category {
			return keys[i].Category < keys[j].Category
		}
		return keys[i].Type < keys[j].Type
	})
}
