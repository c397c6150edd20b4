// Package stocks provides the stock catalog and quote lookup functionality.
package stocks

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rsrinivasan18/sarasai/internal/domain"
)

// Catalog is an in-memory stock table loaded from a CSV file.
// Expected columns: symbol, name, current_price, market_cap, pe_ratio,
// day_high, day_low, volume, currency, exchange.
type Catalog struct {
	entries map[string]domain.Quote
	symbols []string // Insertion order, for stable listings
}

// LoadCatalog reads the stock catalog CSV from disk.
func LoadCatalog(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("catalog %s is empty", path)
	}

	// Map header names to column indices so column order doesn't matter
	header := records[0]
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{"symbol", "name", "current_price", "currency", "exchange"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("catalog %s missing required column %q", path, required)
		}
	}

	catalog := &Catalog{entries: make(map[string]domain.Quote, len(records)-1)}

	for _, row := range records[1:] {
		get := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		symbol := strings.ToUpper(get("symbol"))
		if symbol == "" {
			continue
		}

		quote := domain.Quote{
			Symbol:       symbol,
			Name:         get("name"),
			CurrentPrice: parseFloat(get("current_price")),
			MarketCap:    parseFloat(get("market_cap")),
			PERatio:      parseOptionalFloat(get("pe_ratio")),
			DayHigh:      parseFloat(get("day_high")),
			DayLow:       parseFloat(get("day_low")),
			Volume:       int64(parseFloat(get("volume"))),
			Currency:     get("currency"),
			Exchange:     get("exchange"),
			DataSource:   "catalog",
		}

		if _, exists := catalog.entries[symbol]; !exists {
			catalog.symbols = append(catalog.symbols, symbol)
		}
		catalog.entries[symbol] = quote
	}

	if len(catalog.entries) == 0 {
		return nil, fmt.Errorf("catalog %s has no valid rows", path)
	}

	return catalog, nil
}

// Get returns the catalog quote for a symbol (case-insensitive).
func (c *Catalog) Get(symbol string) (domain.Quote, bool) {
	quote, ok := c.entries[strings.ToUpper(symbol)]
	if ok {
		quote.Timestamp = time.Now().UTC()
	}
	return quote, ok
}

// Symbols returns all catalog symbols in file order.
func (c *Catalog) Symbols() []string {
	out := make([]string, len(c.symbols))
	copy(out, c.symbols)
	return out
}

// List returns all catalog quotes in file order.
func (c *Catalog) List() []domain.Quote {
	out := make([]domain.Quote, 0, len(c.symbols))
	for _, symbol := range c.symbols {
		out = append(out, c.entries[symbol])
	}
	return out
}

// Count returns the number of catalog entries.
func (c *Catalog) Count() int {
	return len(c.entries)
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func parseOptionalFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
