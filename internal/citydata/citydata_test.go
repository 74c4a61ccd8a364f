package citydata

import (
	"testing"

	"github.com/alexivanou/geofare/internal/model"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCities(t *testing.T) {
	cities := Cities()
	require.NotEmpty(t, cities)

	validate := validator.New()
	require.NoError(t, validate.Struct(model.CityList{Cities: cities}))

	var names []string
	for _, c := range cities {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "Mumbai")
	assert.NotEmpty(t, model.FilterPopular(cities))
	assert.NotEmpty(t, Version())
}

func TestCities_ReturnsCopy(t *testing.T) {
	first := Cities()
	require.NotNil(t, first[0].Timezone)
	require.NotNil(t, first[0].IsActive)
	wantTZ := *first[0].Timezone

	first[0].Name = "Changed"
	*first[0].Timezone = "Changed/Zone"
	*first[0].IsActive = false

	second := Cities()
	assert.NotEqual(t, "Changed", second[0].Name)
	assert.Equal(t, wantTZ, *second[0].Timezone)
	assert.True(t, *second[0].IsActive)
}

func TestCabTypes(t *testing.T) {
	cabTypes := CabTypes()
	require.NotEmpty(t, cabTypes)

	validate := validator.New()
	seen := make(map[string]bool)
	for _, ct := range cabTypes {
		assert.NoError(t, validate.Struct(ct))
		assert.False(t, seen[ct.ID], "duplicate cab type %s", ct.ID)
		seen[ct.ID] = true
	}
	assert.True(t, seen["sedan"])
}
