// Package cable holds the cable reference catalog: cable constructions,
// the standard gauge sequence, base ampacity per installation method and
// per-gauge conductor impedance. The catalog is built once from the
// curated dataset in tables.go and is read-only afterwards.
package cable

import "errors"

// ErrNotTabulated reports a (cable, gauge, method) combination missing
// from the reference tables.
var ErrNotTabulated = errors.New("cable: combination not tabulated")

// CableType describes one cable construction from the reference dataset.
type CableType struct {
	Code         string
	Name         string
	Standard     string
	RatedVoltage string

	ampacity   map[string]map[float64]float64 // method -> gauge -> A
	resistance map[float64]float64            // gauge -> ohm/km
	reactance  map[float64]float64            // gauge -> ohm/km
}

// Impedance is the per-metre conductor impedance of a tabulated gauge.
type Impedance struct {
	Resistance float64 // ohm/m
	Reactance  float64 // ohm/m
}

// ImpedanceResult carries the impedance query outcome. Err is set when
// the combination is untabulated; callers branch on Err, never panic.
type ImpedanceResult struct {
	Impedance Impedance
	Err       error
}

// Catalog is the cable reference catalog. One instance serves the whole
// process; every query is a pure read.
type Catalog struct {
	cables map[string]CableType
	gauges []float64
}

// New builds the catalog from the compiled-in reference tables.
func New() *Catalog {
	return &Catalog{
		cables: buildCables(),
		gauges: standardGauges,
	}
}

// Cable looks up a cable construction by code. The boolean reports
// presence; an unknown code is not an error.
func (c *Catalog) Cable(code string) (CableType, bool) {
	cab, ok := c.cables[code]
	return cab, ok
}

// Cables returns the catalog codes in no particular order.
func (c *Catalog) Cables() []string {
	codes := make([]string, 0, len(c.cables))
	for code := range c.cables {
		codes = append(codes, code)
	}
	return codes
}

// StandardGauges returns a fresh copy of the standard conductor gauge
// sequence in mm², ascending.
func (c *Catalog) StandardGauges() []float64 {
	out := make([]float64, len(c.gauges))
	copy(out, c.gauges)
	return out
}

// IsStandardGauge reports membership in the standard gauge sequence.
func (c *Catalog) IsStandardGauge(v float64) bool {
	for _, g := range c.gauges {
		if g == v {
			return true
		}
	}
	return false
}

// BaseAmpacity returns the tabulated ampacity for the combination, in
// amps at the reference ambient. There is no cross-gauge interpolation:
// any untabulated combination reports absence.
func (c *Catalog) BaseAmpacity(cableCode string, gauge float64, method string) (float64, bool) {
	cab, ok := c.cables[cableCode]
	if !ok {
		return 0, false
	}
	byGauge, ok := cab.ampacity[method]
	if !ok {
		return 0, false
	}
	a, ok := byGauge[gauge]
	return a, ok
}

// Resistance returns the conductor resistance in ohm per metre. The
// reference tables store ohm per km.
func (c *Catalog) Resistance(cableCode string, gauge float64) (float64, bool) {
	cab, ok := c.cables[cableCode]
	if !ok {
		return 0, false
	}
	r, ok := cab.resistance[gauge]
	if !ok {
		return 0, false
	}
	return r / 1000.0, true
}

// Reactance returns the conductor reactance in ohm per metre.
func (c *Catalog) Reactance(cableCode string, gauge float64) (float64, bool) {
	cab, ok := c.cables[cableCode]
	if !ok {
		return 0, false
	}
	x, ok := cab.reactance[gauge]
	if !ok {
		return 0, false
	}
	return x / 1000.0, true
}

// ImpedancePerMetre bundles resistance and reactance for a gauge. The
// result carries an error instead of raising for untabulated input.
func (c *Catalog) ImpedancePerMetre(cableCode string, gauge float64) ImpedanceResult {
	r, ok := c.Resistance(cableCode, gauge)
	if !ok {
		return ImpedanceResult{Err: ErrNotTabulated}
	}
	x, ok := c.Reactance(cableCode, gauge)
	if !ok {
		return ImpedanceResult{Err: ErrNotTabulated}
	}
	return ImpedanceResult{Impedance: Impedance{Resistance: r, Reactance: x}}
}
