package resource_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/cozyhearth-go/internal/domain/resource"
)

func TestParseKey(t *testing.T) {
	key, err := resource.ParseKey("garden.seeds.vegetable")
	require.NoError(t, err)
	assert.Equal(t, resource.CategoryGarden, key.Category)
	assert.Equal(t, "seeds.vegetable", key.Type)
	assert.Equal(t, "garden.seeds.vegetable", key.String())

	_, err = resource.ParseKey("garden")
	assert.Error(t, err)

	_, err = resource.ParseKey("potions.mana")
	assert.Error(t, err)
}

func TestKey_ParentChain(t *testing.T) {
	key := resource.MustParseKey("garden.seeds.herb")

	group, ok := key.Parent()
	require.True(t, ok)
	assert.Equal(t, resource.Seeds, group)

	category, ok := group.Parent()
	require.True(t, ok)
	assert.Equal(t, resource.CategoryScope(resource.CategoryGarden), category)
	assert.True(t, category.IsScope())

	_, ok = category.Parent()
	assert.False(t, ok)
}

func TestRequirements_ScaleAndKeys(t *testing.T) {
	req := resource.Requirements{
		resource.Water: 1,
		resource.Flour: 2,
	}

	scaled := req.Scale(3)

	assert.Equal(t, 6.0, scaled[resource.Flour])
	assert.Equal(t, 3.0, scaled[resource.Water])
	assert.Equal(t, 2.0, req[resource.Flour])
	assert.Equal(t, []resource.Key{resource.Flour, resource.Water}, req.Keys())
	assert.Equal(t, "ingredients.flour=2, ingredients.water=1", req.String())
}
