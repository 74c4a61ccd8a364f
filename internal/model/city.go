package model

// City represents a serviceable location
type City struct {
	ID        string  `json:"id" db:"id" validate:"required"`
	Name      string  `json:"name" db:"name" validate:"required"`
	State     string  `json:"state" db:"state"`
	Country   string  `json:"country" db:"country"`
	Latitude  float64 `json:"latitude" db:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" db:"longitude" validate:"gte=-180,lte=180"`
	IsPopular bool    `json:"is_popular" db:"is_popular"`
	IsActive  *bool   `json:"is_active,omitempty" db:"is_active"`
	Timezone  *string `json:"timezone,omitempty" db:"timezone"`
}

// Clone returns a copy that shares no memory with c
func (c City) Clone() City {
	if c.IsActive != nil {
		v := *c.IsActive
		c.IsActive = &v
	}
	if c.Timezone != nil {
		v := *c.Timezone
		c.Timezone = &v
	}
	return c
}

// CloneCities deep-copies a city slice
func CloneCities(cities []City) []City {
	if cities == nil {
		return nil
	}
	out := make([]City, len(cities))
	for i, c := range cities {
		out[i] = c.Clone()
	}
	return out
}

// CityList is a validated set of cities with unique identifiers
type CityList struct {
	Cities []City `validate:"unique=ID,dive"`
}

// CityListResponse is the body of GET /api/v1/cities/.
// Cities is a pointer so that a missing field can be told apart from an empty list.
type CityListResponse struct {
	Cities *[]City `json:"cities"`
}

// FilterPopular returns deep copies of the popular cities, preserving order
func FilterPopular(cities []City) []City {
	popular := make([]City, 0, len(cities))
	for _, c := range cities {
		if c.IsPopular {
			popular = append(popular, c.Clone())
		}
	}
	return popular
}
