package training

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"finplan/internal/model"
)

// goldRow is one line of gold_data.csv.
type goldRow struct {
	Date  string  `csv:"date"`
	Price float64 `csv:"price"`
}

// propertyRow is one line of property_data.csv. Tier is optional.
type propertyRow struct {
	Area     float64 `csv:"area"`
	Bedrooms float64 `csv:"bedrooms"`
	Location string  `csv:"location"`
	Price    float64 `csv:"price"`
	Tier     string  `csv:"tier"`
}

var dateLayouts = []string{"2006-01-02", "2006-01", "2006/01/02", "02-01-2006", "01/02/2006", time.RFC3339}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

func readCSV(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return ErrTrainingData(path, err)
	}
	defer f.Close()
	if err := gocsv.Unmarshal(f, out); err != nil {
		return ErrTrainingData(path, err)
	}
	return nil
}

// readGold loads gold_data.csv as price points.
func readGold(path string) ([]model.PricePoint, error) {
	var rows []*goldRow
	if err := readCSV(path, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrTrainingData(path, errors.New("no rows"))
	}
	out := make([]model.PricePoint, 0, len(rows))
	for i, r := range rows {
		d, err := parseDate(r.Date)
		if err != nil {
			return nil, ErrTrainingData(path, fmt.Errorf("row %d: %w", i+2, err))
		}
		if !finite(r.Price) || r.Price <= 0 {
			return nil, ErrTrainingData(path, fmt.Errorf("row %d: price must be positive", i+2))
		}
		out = append(out, model.PricePoint{Date: d, Price: r.Price})
	}
	return out, nil
}

// readProperty loads property_data.csv. Rows keep their tier label when the
// file has one.
func readProperty(path string) ([]model.PropertySample, error) {
	var rows []*propertyRow
	if err := readCSV(path, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrTrainingData(path, errors.New("no rows"))
	}
	out := make([]model.PropertySample, 0, len(rows))
	for i, r := range rows {
		if !finite(r.Area) || !finite(r.Price) || !finite(r.Bedrooms) || r.Area <= 0 || r.Price <= 0 || r.Bedrooms < 0 {
			return nil, ErrTrainingData(path, fmt.Errorf("row %d: area and price must be positive, bedrooms non-negative", i+2))
		}
		if strings.TrimSpace(r.Location) == "" {
			return nil, ErrTrainingData(path, fmt.Errorf("row %d: location is empty", i+2))
		}
		out = append(out, model.PropertySample{
			Features: model.PropertyFeatures{Area: r.Area, Bedrooms: r.Bedrooms, Location: strings.TrimSpace(r.Location)},
			Price:    r.Price,
			Tier:     strings.ToLower(strings.TrimSpace(r.Tier)),
		})
	}
	return out, nil
}

// finite rejects NaN and infinities, which CSV parsing accepts as numbers.
func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
