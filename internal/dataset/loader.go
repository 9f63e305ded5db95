package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/charmap"

	"github.com/apparel-insights/inventory-sim/internal/config"
)

// Column aliases seen across brand export files.
var (
	dateColumns  = []string{"Invoice Date", "invoice_date", "InvoiceDate"}
	unitsColumns = []string{"Units Sold", "units_sold", "UnitsSold", "Quantity", "Qty"}
)

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"01/02/2006",
	"2006-01-02 15:04:05",
}

// Load reads every configured brand file and returns the combined Store.
// Loading never fails: brands whose file is missing or unreadable are
// skipped, and if nothing loads at all the Store falls back to synthetic
// sample data.
func Load(cfg config.BrandsConfig) *Store {
	paths := map[string]string{
		"ADIDAS": cfg.AdidasPath,
		"NIKE":   cfg.NikePath,
		"PUMA":   cfg.PumaPath,
		"H&M":    cfg.HMPath,
	}

	var all []Record
	for _, brand := range SupportedBrands {
		path := paths[brand]
		if path == "" {
			log.Warn().Str("brand", brand).Msg("no sales file configured")
			continue
		}

		recs, err := loadBrandFile(path, brand)
		if err != nil {
			log.Error().Err(err).Str("brand", brand).Str("path", path).Msg("failed to load sales file")
			continue
		}

		log.Info().Str("brand", brand).Str("path", path).Int("rows", len(recs)).Msg("loaded sales file")
		all = append(all, recs...)
	}

	if len(all) == 0 {
		log.Warn().Msg("no historical data loaded, using synthetic sample data")
		return NewStore(SampleRecords(), true)
	}

	return NewStore(all, false)
}

// loadBrandFile parses one brand CSV. The brand column is forced from the
// file assignment, never trusted from the row.
func loadBrandFile(path, brand string) ([]Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	// Export tools emit either UTF-8 or a Windows codepage. Anything that
	// is not valid UTF-8 gets decoded as cp1252, which also covers latin-1
	// for the characters these files contain.
	if !utf8.Valid(raw) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		raw = decoded
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	colMap := make(map[string]int, len(header))
	for i, col := range header {
		colMap[strings.TrimSpace(col)] = i
	}

	dateIdx := findColumn(colMap, dateColumns)
	unitsIdx := findColumn(colMap, unitsColumns)
	if unitsIdx < 0 {
		return nil, fmt.Errorf("no units column in %s", path)
	}

	var (
		records []Record
		skipped int
	)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Mirror of on_bad_lines="skip": malformed rows are dropped.
			skipped++
			continue
		}

		getValue := func(idx int) string {
			if idx >= 0 && idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}

		rec := Record{
			Brand:        brand,
			UnitsSold:    cleanNumeric(getValue(unitsIdx)),
			PricePerUnit: cleanNumeric(getValue(columnIndex(colMap, "Price per Unit"))),
			TotalSales:   cleanNumeric(getValue(columnIndex(colMap, "Total Sales"))),
			Product:      getValue(columnIndex(colMap, "Product")),
		}

		if dateIdx >= 0 {
			date, ok := parseDate(getValue(dateIdx))
			if !ok {
				skipped++
				continue
			}
			rec.Date = date
		} else {
			skipped++
			continue
		}

		records = append(records, rec)
	}

	if skipped > 0 {
		log.Warn().Str("brand", brand).Int("skipped", skipped).Msg("dropped unparseable rows")
	}

	return records, nil
}

func findColumn(colMap map[string]int, names []string) int {
	for _, name := range names {
		if idx, ok := colMap[name]; ok {
			return idx
		}
	}
	return -1
}

func columnIndex(colMap map[string]int, name string) int {
	if idx, ok := colMap[name]; ok {
		return idx
	}
	return -1
}

// cleanNumeric strips currency formatting and turns blanks and sentinel
// strings into 0, matching how the export files are cleaned upstream.
func cleanNumeric(s string) float64 {
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "nan", "none", "null":
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// parseDate tries day-first layouts before month-first ones, matching the
// regional format of the source files.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NormalizeBrand maps brand spelling variants onto the canonical names.
func NormalizeBrand(name string) string {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "ADIDAS":
		return "ADIDAS"
	case "NIKE":
		return "NIKE"
	case "PUMA":
		return "PUMA"
	case "H&M", "HM", "H_M":
		return "H&M"
	}
	return strings.TrimSpace(name)
}
