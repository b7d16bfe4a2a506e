// Package coordination checks selectivity between an upstream and a
// downstream protective device: whether a fault the downstream device
// clears also passes through the upstream device without tripping it.
package coordination

import (
	"errors"

	"github.com/voltkraft/lvc_core/internal/pkg/catalog/protection"
	"github.com/voltkraft/lvc_core/internal/pkg/standards"
)

var (
	// ErrUnknownDevice reports an upstream or downstream code the
	// registry cannot resolve.
	ErrUnknownDevice = errors.New("coordination: unknown device code")

	// ErrNoRating reports a device without an overcurrent rating.
	ErrNoRating = errors.New("coordination: device has no current rating")
)

// Analyzer evaluates selectivity against the protection registry.
type Analyzer struct {
	catalog *protection.Catalog
}

// New returns an analyzer over the given protection catalog.
func New(c *protection.Catalog) *Analyzer {
	return &Analyzer{catalog: c}
}

// SelectivityResult is the outcome of a two-device coordination check.
// Reason explains a negative verdict.
type SelectivityResult struct {
	Selective bool
	Ratio     float64
	Reason    string
	Err       error
}

// IsSelective reports whether the upstream device stays closed for
// faults the downstream device clears. The check is a rating-ratio
// heuristic, not a full curve-intersection test: the upstream rating
// must exceed the downstream rating by the engine-wide selectivity
// ratio threshold. Equal ratings are never selective. A B-characteristic
// upstream over a C or D downstream is flagged regardless of ratio,
// since the downstream magnetic band reaches past the upstream one.
func (a *Analyzer) IsSelective(upstreamCode, downstreamCode string) SelectivityResult {
	up, ok := a.catalog.Device(upstreamCode)
	if !ok {
		return SelectivityResult{Err: ErrUnknownDevice}
	}
	down, ok := a.catalog.Device(downstreamCode)
	if !ok {
		return SelectivityResult{Err: ErrUnknownDevice}
	}
	if up.Rating == 0 || down.Rating == 0 {
		return SelectivityResult{Err: ErrNoRating}
	}

	ratio := up.Rating / down.Rating

	if up.Characteristic == "B" && (down.Characteristic == "C" || down.Characteristic == "D") {
		return SelectivityResult{
			Ratio:  ratio,
			Reason: "downstream magnetic trip band exceeds the upstream instantaneous threshold",
		}
	}
	if up.Rating <= down.Rating {
		return SelectivityResult{
			Ratio:  ratio,
			Reason: "upstream rating does not exceed downstream rating",
		}
	}
	if ratio < standards.SelectivityRatioThreshold {
		return SelectivityResult{
			Ratio:  ratio,
			Reason: "rating ratio below selectivity threshold",
		}
	}
	return SelectivityResult{Selective: true, Ratio: ratio}
}
