package seeder

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alexivanou/geofare/internal/citydata"
	"github.com/alexivanou/geofare/internal/model"
	"github.com/go-playground/validator/v10"
)

// Dataset is a set of cities and cab types to load into storage
type Dataset struct {
	Version  string          `json:"version"`
	Cities   []model.City    `json:"cities"`
	CabTypes []model.CabType `json:"cab_types"`
}

// Parser reads and validates datasets
type Parser struct {
	validate *validator.Validate
}

// NewParser creates a new parser instance
func NewParser() *Parser {
	return &Parser{validate: validator.New()}
}

// Embedded returns the dataset compiled into the binary
func (p *Parser) Embedded() (*Dataset, error) {
	ds := &Dataset{
		Version:  citydata.Version(),
		Cities:   citydata.Cities(),
		CabTypes: citydata.CabTypes(),
	}
	if err := p.check(ds); err != nil {
		return nil, fmt.Errorf("embedded dataset: %w", err)
	}
	return ds, nil
}

// ParseFile reads a JSON dataset from disk.
// Cab types default to the embedded ones when the file has none.
func (p *Parser) ParseFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(ds.CabTypes) == 0 {
		ds.CabTypes = citydata.CabTypes()
	}

	if err := p.check(&ds); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &ds, nil
}

func (p *Parser) check(ds *Dataset) error {
	if len(ds.Cities) == 0 {
		return fmt.Errorf("dataset has no cities")
	}
	if err := p.validate.Struct(model.CityList{Cities: ds.Cities}); err != nil {
		return fmt.Errorf("invalid cities: %w", err)
	}

	seen := make(map[string]bool, len(ds.CabTypes))
	for _, ct := range ds.CabTypes {
		if err := p.validate.Struct(ct); err != nil {
			return fmt.Errorf("invalid cab type %q: %w", ct.ID, err)
		}
		if seen[ct.ID] {
			return fmt.Errorf("duplicate cab type %q", ct.ID)
		}
		seen[ct.ID] = true
	}
	return nil
}
