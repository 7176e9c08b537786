package pricing

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultPrice applies to any county without an explicit entry, in cents.
const DefaultPrice int64 = 32500

var marylandCounties = []string{
	"Allegany County",
	"Anne Arundel County",
	"Baltimore City",
	"Baltimore County",
	"Calvert County",
	"Caroline County",
	"Carroll County",
	"Cecil County",
	"Charles County",
	"Dorchester County",
	"Frederick County",
	"Garrett County",
	"Harford County",
	"Howard County",
	"Kent County",
	"Montgomery County",
	"Prince George's County",
	"Queen Anne's County",
	"Somerset County",
	"St. Mary's County",
	"Talbot County",
	"Washington County",
	"Wicomico County",
	"Worcester County",
}

var basePrices = map[string]int64{
	"Baltimore City":         35000,
	"Baltimore County":       35000,
	"Prince George's County": 35000,
	"Montgomery County":      35000,
	"Anne Arundel County":    35000,
	"Howard County":          35000,
}

// Table maps county names to processing fees in cents.
type Table struct {
	mu           sync.RWMutex
	prices       map[string]int64
	defaultPrice int64
}

// NewTable returns the built-in Maryland fee table.
func NewTable() *Table {
	t := &Table{prices: make(map[string]int64, len(basePrices)), defaultPrice: DefaultPrice}
	for county, cents := range basePrices {
		t.prices[normalize(county)] = cents
	}
	return t
}

// Overlay is the YAML shape accepted by LoadOverlay.
type Overlay struct {
	Default  *int64           `yaml:"default"`
	Counties map[string]int64 `yaml:"counties"`
}

// LoadOverlay applies a YAML file of county overrides on top of the table.
func (t *Table) LoadOverlay(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read pricing overlay: %w", err)
	}
	var o Overlay
	if err := yaml.Unmarshal(raw, &o); err != nil {
		return fmt.Errorf("parse pricing overlay: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if o.Default != nil {
		if *o.Default < 0 {
			return fmt.Errorf("pricing overlay: negative default")
		}
		t.defaultPrice = *o.Default
	}
	for county, cents := range o.Counties {
		if cents < 0 {
			return fmt.Errorf("pricing overlay: negative price for %q", county)
		}
		t.prices[normalize(county)] = cents
	}
	return nil
}

// PriceForCounty returns the fee for county in cents, falling back to the
// default for unlisted counties.
func (t *Table) PriceForCounty(county string) int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	key := normalize(county)
	if p, ok := t.prices[key]; ok {
		return p
	}
	if !strings.HasSuffix(key, " county") {
		if p, ok := t.prices[key+" county"]; ok {
			return p
		}
	}
	return t.defaultPrice
}

// Default returns the fallback price in cents.
func (t *Table) Default() int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.defaultPrice
}

var (
	defaultTable *Table
	tableOnce    sync.Once
)

// Global returns the process-wide table.
func Global() *Table {
	tableOnce.Do(func() {
		defaultTable = NewTable()
	})
	return defaultTable
}

// PriceForCounty looks up county in the process-wide table.
func PriceForCounty(county string) int64 {
	return Global().PriceForCounty(county)
}

// MarylandCounties lists the 24 Maryland jurisdictions.
func MarylandCounties() []string {
	out := make([]string, len(marylandCounties))
	copy(out, marylandCounties)
	return out
}

// IsMarylandCounty reports whether name is one of the jurisdictions, using
// the same matching as PriceForCounty.
func IsMarylandCounty(name string) bool {
	key := normalize(name)
	for _, c := range marylandCounties {
		n := normalize(c)
		if n == key || n == key+" county" {
			return true
		}
	}
	return false
}

func normalize(county string) string {
	return strings.Join(strings.Fields(strings.ToLower(county)), " ")
}
