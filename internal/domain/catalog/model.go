package catalog

// Product is a sellable entry of the catalog.
type Product struct {
	Name string `json:"name"`
}

// Catalog maps plan names (the classifier carried by invoice items) to
// products. Candidate tax codes are configured per product.
type Catalog struct {
	// Plans maps a plan name to its product.
	Plans map[string]Product `json:"plans"`
}

// ProductForPlan returns the product a plan belongs to.
func (c *Catalog) ProductForPlan(planName string) (Product, bool) {
	p, ok := c.Plans[planName]
	return p, ok
}
