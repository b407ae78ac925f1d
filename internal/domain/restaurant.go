package domain

// Restaurant holds the booking hours of one venue.
// Unavailable and Popular are wall-clock times; they are normalized through the slot formatter before lookup.
type Restaurant struct {
	ID           string   `yaml:"id" json:"id"`
	Name         string   `yaml:"name" json:"name"`
	Open         string   `yaml:"open" json:"open"`
	Close        string   `yaml:"close" json:"close"`
	IncrementMin int      `yaml:"increment_min" json:"increment_min,omitempty"`
	Unavailable  []string `yaml:"unavailable" json:"unavailable,omitempty"`
	Popular      []string `yaml:"popular" json:"popular,omitempty"`
}
