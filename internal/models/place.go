package models

// Place represents a point of interest returned by a nearby search.
// Optional fields are pointers so that absent values are omitted entirely
// when an entry is persisted, never written as null markers.
type Place struct {
	ID          string   `json:"place_id" db:"place_id"`
	Name        string   `json:"name" db:"name"`
	Lat         float64  `json:"lat" db:"lat"`
	Lng         float64  `json:"lng" db:"lng"`
	Rating      *float64 `json:"rating,omitempty" db:"rating"`
	RatingCount *int     `json:"user_ratings_total,omitempty" db:"user_ratings_total"`
	Types       []string `json:"types,omitempty" db:"types"`
}

// PrimaryType returns the first category tag, or "" when none were returned.
func (p *Place) PrimaryType() string {
	if len(p.Types) == 0 {
		return ""
	}
	return p.Types[0]
}
