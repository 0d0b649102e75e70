package config

// BusinessUnit represents one organizational unit of the register catalog
type BusinessUnit struct {
	Name string
}

// CatalogRisk represents one named risk of the register catalog, with the
// control type its mitigating control is expected to have.
type CatalogRisk struct {
	Name        string
	ControlType string
}

// Catalog holds the register catalog: the business units and named risks a
// register is drawn from. It drives synthetic generation and, when present,
// label validation on import.
type Catalog struct {
	Units []BusinessUnit
	Risks []CatalogRisk
}

// HasUnit reports whether the catalog names the business unit
func (c *Catalog) HasUnit(name string) bool {
	for _, u := range c.Units {
		if u.Name == name {
			return true
		}
	}
	return false
}

// HasRisk reports whether the catalog names the risk
func (c *Catalog) HasRisk(name string) bool {
	for _, r := range c.Risks {
		if r.Name == name {
			return true
		}
	}
	return false
}
