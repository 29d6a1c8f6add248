package domain

// PlantedTree mirrors a row of the Planted_Trees table. Its relations to
// user, location and tree info are backend link fields, attached through
// dedicated link calls rather than columns.
type PlantedTree struct {
	ID        any    `json:"id,omitempty"`
	Message   string `json:"message,omitempty"`
	Amount    int    `json:"amount,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}
