package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/okian/launchdash/internal/domain/model"
)

// Dataset column headers.
const (
	ColFlightNumber   = "Flight Number"
	ColLaunchSite     = "Launch Site"
	ColClass          = "class"
	ColPayloadMass    = "Payload Mass (kg)"
	ColBoosterVersion = "Booster Version"
	ColBoosterCat     = "Booster Version Category"
)

var requiredColumns = []string{ColLaunchSite, ColPayloadMass, ColClass, ColBoosterCat}

// header maps column names to their index; optional columns map to -1 when absent.
type header struct {
	site, payload, class, category int
	flight, booster                int
}

func parseHeader(row []string) (header, error) {
	idx := make(map[string]int, len(row))
	for i, name := range row {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if name == "" {
			// unnamed index column written by dataframe exports
			continue
		}
		idx[name] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return header{}, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}
	lookup := func(col string) int {
		if i, ok := idx[col]; ok {
			return i
		}
		return -1
	}
	return header{
		site:     idx[ColLaunchSite],
		payload:  idx[ColPayloadMass],
		class:    idx[ColClass],
		category: idx[ColBoosterCat],
		flight:   lookup(ColFlightNumber),
		booster:  lookup(ColBoosterVersion),
	}, nil
}

// parseRows converts raw rows (header first) into launch records.
func parseRows(rows [][]string) ([]model.LaunchRecord, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: missing header row", ErrEmpty)
	}
	h, err := parseHeader(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]model.LaunchRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		line := i + 2
		rec, err := h.record(row)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrParse, line, err)
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, ErrEmpty
	}
	return records, nil
}

func (h header) record(row []string) (model.LaunchRecord, error) {
	cell := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	site := cell(h.site)
	if site == "" {
		return model.LaunchRecord{}, fmt.Errorf("empty %q", ColLaunchSite)
	}
	payload, err := parseNumber(cell(h.payload), ColPayloadMass)
	if err != nil {
		return model.LaunchRecord{}, err
	}
	class, err := parseNumber(cell(h.class), ColClass)
	if err != nil {
		return model.LaunchRecord{}, err
	}
	if class != model.OutcomeFailure && class != model.OutcomeSuccess {
		return model.LaunchRecord{}, fmt.Errorf("%q must be 0 or 1, got %v", ColClass, class)
	}

	rec := model.LaunchRecord{
		Site:                   site,
		Class:                  int(class),
		PayloadMassKG:          payload,
		BoosterVersion:         cell(h.booster),
		BoosterVersionCategory: cell(h.category),
	}
	if s := cell(h.flight); s != "" {
		n, err := parseNumber(s, ColFlightNumber)
		if err != nil {
			return model.LaunchRecord{}, err
		}
		rec.FlightNumber = int(n)
	}
	return rec, nil
}

func parseNumber(s, col string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty %q", col)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid %q value %q", col, s)
	}
	return v, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
