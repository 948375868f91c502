package defaults

import "fmt"

// Pricer is the dependency whose defaults and history the tests configure.
type Pricer interface {
	Price(sku string) (float64, error)
	Currency() string
	Discounts(sku string) []float64
}

// Quote prices sku with its best discount applied.
func Quote(p Pricer, sku string) (string, error) {
	price, err := p.Price(sku)
	if err != nil {
		return "", fmt.Errorf("pricing %s: %w", sku, err)
	}

	best := 0.0
	for _, d := range p.Discounts(sku) {
		best = max(best, d)
	}

	return fmt.Sprintf("%.2f %s", price*(1-best), p.Currency()), nil
}
