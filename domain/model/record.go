package model

// Dimensions holds the optional size cells of a record, verbatim.
// An empty string means the dimension is absent.
type Dimensions struct {
	Length string
	Width  string
	Height string
}

// IsZero reports whether no dimension is present.
func (d Dimensions) IsZero() bool {
	return d.Length == "" && d.Width == "" && d.Height == ""
}

// Record is one projected, display-ready inventory item.
// Optional fields are empty strings when absent.
type Record struct {
	// Name is the raw name cell, not trimmed.
	Name string
	// Quantity is the raw quantity cell; never parsed as a number.
	Quantity string
	// Producer is the canonical producer name.
	Producer string
	// Material is the raw material cell.
	Material string
	// Dimensions are the raw size cells.
	Dimensions Dimensions
}

// HasProducer reports whether the record carries a producer.
func (r Record) HasProducer() bool {
	return r.Producer != ""
}

// HasMaterial reports whether the record carries a material.
func (r Record) HasMaterial() bool {
	return r.Material != ""
}
