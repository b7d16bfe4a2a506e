// Package derating sizes cables for non-reference conditions: ambient
// temperature correction, circuit grouping and minimum-gauge selection.
// All factors come from the sparse tables in tables.go; the engine only
// interpolates and clamps, it never extrapolates.
package derating

import (
	"errors"
	"sort"

	"github.com/voltkraft/lvc_core/internal/pkg/catalog/cable"
)

// ErrBaseAmpacity reports that the underlying ampacity lookup failed, so
// no derated value can be produced.
var ErrBaseAmpacity = errors.New("derating: base ampacity not tabulated")

// Engine applies derating factors on top of the cable catalog.
type Engine struct {
	catalog  *cable.Catalog
	tempTab  map[string]map[float64]float64 // method -> ambient -> factor
	groupTab map[int]float64
	refTemp  map[string]float64 // method -> reference ambient
}

// AmpacityResult is the outcome of a derated ampacity query. When Err is
// set the factors and the derated value are meaningless.
type AmpacityResult struct {
	BaseAmpacity        float64
	TemperatureDerating float64
	GroupingDerating    float64
	DeratedAmpacity     float64
	Err                 error
}

// New returns an engine over the given cable catalog.
func New(c *cable.Catalog) *Engine {
	return &Engine{
		catalog:  c,
		tempTab:  buildTemperatureTable(),
		groupTab: buildGroupingTable(),
		refTemp:  buildReferenceAmbients(),
	}
}

// TemperatureDerating returns the ambient temperature correction factor
// for an installation method. The factor is exactly 1.0 at the method's
// reference ambient. Between tabulated points the tightest bracketing
// pair is interpolated linearly; outside the table the nearest endpoint
// is reused unchanged.
func (e *Engine) TemperatureDerating(method string, ambient float64) float64 {
	if ref, ok := e.refTemp[method]; ok && ambient == ref {
		return 1.0
	}

	tab, ok := e.tempTab[method]
	if !ok {
		tab = e.tempTab[defaultMethod]
	}
	if f, ok := tab[ambient]; ok {
		return f
	}

	temps := make([]float64, 0, len(tab))
	for t := range tab {
		temps = append(temps, t)
	}
	sort.Float64s(temps)

	if ambient <= temps[0] {
		return tab[temps[0]]
	}
	if ambient >= temps[len(temps)-1] {
		return tab[temps[len(temps)-1]]
	}

	// tightest bracketing pair
	i := sort.SearchFloat64s(temps, ambient)
	lo, hi := temps[i-1], temps[i]
	frac := (ambient - lo) / (hi - lo)
	return tab[lo] + frac*(tab[hi]-tab[lo])
}

// GroupingDerating returns the correction factor for n grouped circuits.
// A single circuit is always 1.0. Sizes between tabulated keys reuse the
// next-lower key's factor; sizes above the largest key reuse the largest
// key's factor.
func (e *Engine) GroupingDerating(n int) float64 {
	if n <= 1 {
		return 1.0
	}
	if f, ok := e.groupTab[n]; ok {
		return f
	}

	sizes := make([]int, 0, len(e.groupTab))
	for s := range e.groupTab {
		sizes = append(sizes, s)
	}
	sort.Ints(sizes)

	if n > sizes[len(sizes)-1] {
		return e.groupTab[sizes[len(sizes)-1]]
	}

	// next-lower tabulated size, not interpolation
	floor := sizes[0]
	for _, s := range sizes {
		if s > n {
			break
		}
		floor = s
	}
	return e.groupTab[floor]
}

// DeratedAmpacity combines the base ampacity with the temperature and
// grouping corrections. A failed base lookup yields an error result.
func (e *Engine) DeratedAmpacity(cableCode string, gauge float64, method string, ambient float64, group int) AmpacityResult {
	base, ok := e.catalog.BaseAmpacity(cableCode, gauge, method)
	if !ok {
		return AmpacityResult{Err: ErrBaseAmpacity}
	}
	tf := e.TemperatureDerating(method, ambient)
	gf := e.GroupingDerating(group)
	return AmpacityResult{
		BaseAmpacity:        base,
		TemperatureDerating: tf,
		GroupingDerating:    gf,
		DeratedAmpacity:     base * tf * gf,
	}
}

// FindMinimumGauge returns the smallest standard gauge whose derated
// ampacity carries the design current under the given conditions. The
// boolean is false when no tabulated gauge qualifies.
func (e *Engine) FindMinimumGauge(cableCode string, designCurrent float64, method string, ambient float64, group int) (float64, bool) {
	for _, g := range e.catalog.StandardGauges() {
		res := e.DeratedAmpacity(cableCode, g, method, ambient, group)
		if res.Err != nil {
			continue
		}
		if res.DeratedAmpacity >= designCurrent {
			return g, true
		}
	}
	return 0, false
}
