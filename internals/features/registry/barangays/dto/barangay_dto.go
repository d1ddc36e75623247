package dto

type BarangayRequest struct {
	Name                   *string  `json:"name"`
	Municipality           *string  `json:"municipality"`
	Province               *string  `json:"province"`
	Region                 *string  `json:"region"`
	Latitude               *float64 `json:"latitude"`
	Longitude              *float64 `json:"longitude"`
	Population             *int     `json:"population"`
	TotalHouseholds        *int     `json:"total_households"`
	AgriculturalHouseholds *int     `json:"agricultural_households"`
}
