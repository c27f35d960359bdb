package country

import "time"

// Country is the reference entity every account and content item belongs to.
//
// Area figures are stored twice: the display string as authored ("3.31 million
// ha") and the numeric value used for aggregation on the public dashboard.
type Country struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Latitude          float64   `json:"latitude"`
	Longitude         float64   `json:"longitude"`
	LandArea          string    `json:"landArea"`
	LandAreaNum       float64   `json:"landAreaNum"`
	ForestArea        string    `json:"forestArea"`
	ForestAreaNum     float64   `json:"forestAreaNum"`
	MangroveArea      string    `json:"mangroveArea"`
	MangroveAreaNum   float64   `json:"mangroveAreaNum"`
	Challenges        string    `json:"challenges"`
	Recommendation    string    `json:"recommendation"`
	ProgramActivities string    `json:"programActivities"`
	Policy            string    `json:"policy"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// Field names used by validation and update payloads.
const (
	FieldName = "name"
)
