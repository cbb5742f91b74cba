package gpx

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const (
	metersPerKilometer = 1000.0
	metersPerMile      = 1609.0
)

// Distance is an immutable length, stored in meters.
//
// All other views (kilometers, miles, formatted strings) are derived from the
// meters value on demand. A Distance is safe for concurrent use.
//
// Use Equal rather than == to compare two distances: Equal compares the bit
// patterns, so a NaN distance equals itself.
type Distance struct {
	meters float64
}

// NewDistance returns a Distance of the given meters. Negative and
// non-finite values are kept as-is.
func NewDistance(meters float64) Distance {
	return Distance{meters: meters}
}

// Meters returns the distance in meters, exactly as stored.
func (d Distance) Meters() float64 {
	return d.meters
}

// Kilometers returns the distance in kilometers.
func (d Distance) Kilometers() float64 {
	return d.meters / metersPerKilometer
}

// Miles returns the distance in miles.
func (d Distance) Miles() float64 {
	return d.meters / metersPerMile
}

// FormattedKilometers returns the kilometers rounded to at most two
// decimals, e.g. "1.46 km".
func (d Distance) FormattedKilometers() string {
	return formatTwoDecimals(d.Kilometers()) + " km"
}

// FormattedMiles returns the miles rounded to at most two decimals,
// e.g. "0.91 mi".
func (d Distance) FormattedMiles() string {
	return formatTwoDecimals(d.Miles()) + " mi"
}

// Add returns the sum of both distances.
func (d Distance) Add(other Distance) Distance {
	return Distance{meters: d.meters + other.meters}
}

// Equal reports whether both distances hold the same meters bit pattern.
func (d Distance) Equal(other Distance) bool {
	return d.Key() == other.Key()
}

// Key returns a hashable identity for the distance, consistent with Equal.
func (d Distance) Key() uint64 {
	return math.Float64bits(d.meters)
}

func (d Distance) String() string {
	return strconv.FormatFloat(d.meters, 'f', -1, 64)
}

// MarshalJSON encodes the distance as its bare meters value.
func (d Distance) MarshalJSON() ([]byte, error) {
	if math.IsNaN(d.meters) || math.IsInf(d.meters, 0) {
		return nil, fmt.Errorf("gpx: cannot encode distance %s as JSON", d)
	}
	return json.Marshal(d.meters)
}

// UnmarshalJSON decodes a bare meters value. A JSON null leaves d unchanged.
func (d *Distance) UnmarshalJSON(data []byte) error {
	var meters *float64
	if err := json.Unmarshal(data, &meters); err != nil {
		return fmt.Errorf("gpx: decode distance: %w", err)
	}
	if meters != nil {
		d.meters = *meters
	}
	return nil
}

// MarshalYAML encodes the distance as its bare meters value.
func (d Distance) MarshalYAML() (interface{}, error) {
	return d.meters, nil
}

// UnmarshalYAML decodes a scalar meters value.
func (d *Distance) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("gpx: distance must be a scalar, line %d", node.Line)
	}
	var meters float64
	if err := node.Decode(&meters); err != nil {
		return fmt.Errorf("gpx: decode distance: %w", err)
	}
	d.meters = meters
	return nil
}

// formatTwoDecimals rounds half away from zero to two decimals and drops
// trailing zeros.
func formatTwoDecimals(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return decimal.NewFromFloat(v).Round(2).String()
}
