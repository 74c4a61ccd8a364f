// Package citydata embeds the versioned city and cab-type dataset.
//
// The same asset seeds the backend database and serves as the client's
// fallback when the city directory cannot be reached.
package citydata

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/alexivanou/geofare/internal/model"
)

//go:embed cities.json
var citiesJSON []byte

//go:embed cab_types.json
var cabTypesJSON []byte

type cityFile struct {
	Version string       `json:"version"`
	Cities  []model.City `json:"cities"`
}

type cabTypeFile struct {
	Version  string          `json:"version"`
	CabTypes []model.CabType `json:"cab_types"`
}

var (
	loadOnce sync.Once
	cities   cityFile
	cabTypes cabTypeFile
	loadErr  error
)

func load() {
	if err := json.Unmarshal(citiesJSON, &cities); err != nil {
		loadErr = fmt.Errorf("failed to parse embedded cities: %w", err)
		return
	}
	if err := json.Unmarshal(cabTypesJSON, &cabTypes); err != nil {
		loadErr = fmt.Errorf("failed to parse embedded cab types: %w", err)
	}
}

func mustLoad() {
	loadOnce.Do(load)
	if loadErr != nil {
		panic(loadErr)
	}
}

// Version returns the dataset version
func Version() string {
	mustLoad()
	return cities.Version
}

// Cities returns a copy of the embedded city list
func Cities() []model.City {
	mustLoad()
	return model.CloneCities(cities.Cities)
}

// CabTypes returns a copy of the embedded cab types
func CabTypes() []model.CabType {
	mustLoad()
	out := make([]model.CabType, len(cabTypes.CabTypes))
	copy(out, cabTypes.CabTypes)
	return out
}
