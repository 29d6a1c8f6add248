package domain

// TreeInfo mirrors a row of the TREE_INFO table: a tree species/record that
// can be browsed and planted.
type TreeInfo struct {
	ID             any     `json:"id,omitempty"`
	Name           string  `json:"name,omitempty"`
	Species        string  `json:"species,omitempty"`
	Height         float64 `json:"height,omitempty"`
	Diameter       float64 `json:"diameter,omitempty"`
	Age            int     `json:"age,omitempty"`
	HealthStatus   string  `json:"health_status,omitempty"`
	Location       string  `json:"location,omitempty"`
	PlantedDate    string  `json:"planted_date,omitempty"`
	LastInspection string  `json:"last_inspection,omitempty"`
	Notes          string  `json:"notes,omitempty"`
	Description    string  `json:"description,omitempty"`
}

// TreeSearch carries the supported search criteria. Text fields match with
// a contains filter, Age matches exactly.
type TreeSearch struct {
	Name         string `json:"name,omitempty" form:"name"`
	Species      string `json:"species,omitempty" form:"species"`
	HealthStatus string `json:"health_status,omitempty" form:"health_status"`
	Location     string `json:"location,omitempty" form:"location"`
	Age          int    `json:"age,omitempty" form:"age"`
}
