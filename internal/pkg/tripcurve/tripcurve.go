// Package tripcurve analyzes protective device trip behavior: the
// minimum current guaranteeing a trip, the curve region a fault current
// lands in, and the let-through energy passed before interruption.
package tripcurve

import (
	"errors"

	"github.com/voltkraft/lvc_core/internal/pkg/catalog/protection"
)

// Trip curve regions.
const (
	RegionInstantaneous = "instantaneous"
	RegionMagnetic      = "magnetic"
	RegionThermal       = "thermal"
	RegionNoTrip        = "no_trip"
)

// instantaneousTripTime is the reported break time inside the
// instantaneous region. A reporting constant, not a curve fit; the
// dataset carries no time-current points below the magnetic band.
const instantaneousTripTime = 0.01

// thermalTripFactor is the conventional tripping current multiple for
// the thermal element.
const thermalTripFactor = 1.13

var (
	// ErrUnknownDevice reports a device code the registry cannot resolve.
	ErrUnknownDevice = errors.New("tripcurve: unknown device code")

	// ErrNoRating reports a device without an overcurrent rating; RCDs
	// have no trip curve to analyze.
	ErrNoRating = errors.New("tripcurve: device has no current rating")

	// ErrUnknownRegion reports an unrecognized curve region name.
	ErrUnknownRegion = errors.New("tripcurve: unknown curve region")

	// ErrNoLetThroughData reports that neither an I²t table row nor a
	// fault duration is available.
	ErrNoLetThroughData = errors.New("tripcurve: no let-through data for rating and no duration supplied")

	// ErrNotMCB reports a let-through query for a device family the I²t
	// table does not model.
	ErrNotMCB = errors.New("tripcurve: let-through energy is modelled for MCBs only")
)

// Analyzer evaluates trip behavior against the protection registry.
type Analyzer struct {
	catalog *protection.Catalog
}

// New returns an analyzer over the given protection catalog.
func New(c *protection.Catalog) *Analyzer {
	return &Analyzer{catalog: c}
}

// FaultCurrentResult is the minimum fault current for a curve region.
type FaultCurrentResult struct {
	Current float64
	Region  string
	Err     error
}

// TripTimeResult classifies a fault current on a device's trip curve.
// Time is only meaningful in the instantaneous region.
type TripTimeResult struct {
	Region string
	Time   float64
	Err    error
}

// LetThroughResult carries either a tabulated I²t band (Source "table")
// or a duration-derived energy (Source "calculated"), in A²s.
type LetThroughResult struct {
	EnergyMin float64
	EnergyMax float64
	Energy    float64
	Source    string
	Err       error
}

// MinimumFaultCurrent returns the smallest fault current that trips the
// device in the given region: the bottom of the magnetic band for
// "instantaneous", the conventional 1.13×rated for "thermal".
func (a *Analyzer) MinimumFaultCurrent(deviceCode, region string) FaultCurrentResult {
	dev, ok := a.catalog.Device(deviceCode)
	if !ok {
		return FaultCurrentResult{Err: ErrUnknownDevice}
	}
	if dev.Rating == 0 {
		return FaultCurrentResult{Err: ErrNoRating}
	}

	switch region {
	case RegionInstantaneous:
		band := a.catalog.TripPointFactor(deviceCode)
		return FaultCurrentResult{
			Current: dev.Rating * band.TripPointMin,
			Region:  RegionInstantaneous,
		}
	case RegionThermal:
		return FaultCurrentResult{
			Current: dev.Rating * thermalTripFactor,
			Region:  RegionThermal,
		}
	}
	return FaultCurrentResult{Err: ErrUnknownRegion}
}

// TripTime classifies a fault current into a curve region. Boundaries
// close on the trip side: a fault exactly at rated×tripPointMax is
// instantaneous, exactly at rated×tripPointMin is magnetic. When
// ratedCurrent is zero the device's registered rating is used.
func (a *Analyzer) TripTime(deviceCode string, faultCurrent, ratedCurrent float64) TripTimeResult {
	dev, ok := a.catalog.Device(deviceCode)
	if !ok {
		return TripTimeResult{Err: ErrUnknownDevice}
	}
	if ratedCurrent <= 0 {
		ratedCurrent = dev.Rating
	}
	if ratedCurrent <= 0 {
		return TripTimeResult{Err: ErrNoRating}
	}

	band := a.catalog.TripPointFactor(deviceCode)
	switch {
	case faultCurrent >= ratedCurrent*band.TripPointMax:
		return TripTimeResult{Region: RegionInstantaneous, Time: instantaneousTripTime}
	case faultCurrent >= ratedCurrent*band.TripPointMin:
		return TripTimeResult{Region: RegionMagnetic}
	}
	return TripTimeResult{Region: RegionNoTrip}
}

// LetThroughEnergy reports the energy the device passes before
// interrupting a fault. A tabulated I²t band always wins, even when a
// duration is supplied; the I²t·duration product is only computed for
// ratings without a table row. A duration of zero means "not supplied".
func (a *Analyzer) LetThroughEnergy(deviceCode string, faultCurrent, duration float64) LetThroughResult {
	dev, ok := a.catalog.Device(deviceCode)
	if !ok {
		return LetThroughResult{Err: ErrUnknownDevice}
	}
	if dev.Family != protection.MCB {
		return LetThroughResult{Err: ErrNotMCB}
	}

	if band, ok := a.catalog.LetThrough(int(dev.Rating)); ok {
		return LetThroughResult{
			EnergyMin: band.Min,
			EnergyMax: band.Max,
			Source:    "table",
		}
	}
	if duration > 0 {
		return LetThroughResult{
			Energy: faultCurrent * faultCurrent * duration,
			Source: "calculated",
		}
	}
	return LetThroughResult{Err: ErrNoLetThroughData}
}
