package derating

import (
	"errors"
	"math"
)

// ErrImpedance reports that the cable catalog has no conductor data for
// the requested gauge, so no voltage drop can be computed.
var ErrImpedance = errors.New("derating: conductor impedance not tabulated")

// ErrPhases reports an unsupported phase count; only single phase (1)
// and three phase (3) circuits are modelled.
var ErrPhases = errors.New("derating: phases must be 1 or 3")

// VoltageDropResult carries the absolute drop in volts and the drop as a
// percentage of nominal voltage.
type VoltageDropResult struct {
	Drop        float64
	DropPercent float64
	Err         error
}

// VoltageDrop computes the steady-state voltage drop over a run of
// cable. Single phase uses the out-and-back conductor path (factor 2),
// three phase the line-to-line factor √3:
//
//	drop = k · I · L · (R·cosφ + X·sinφ)
//
// Length is in metres, current in amps, voltage the nominal circuit
// voltage, powerFactor cosφ of the load.
func (e *Engine) VoltageDrop(cableCode string, gauge, length, current float64, phases int, voltage, powerFactor float64) VoltageDropResult {
	imp := e.catalog.ImpedancePerMetre(cableCode, gauge)
	if imp.Err != nil {
		return VoltageDropResult{Err: ErrImpedance}
	}

	var k float64
	switch phases {
	case 1:
		k = 2.0
	case 3:
		k = math.Sqrt(3)
	default:
		return VoltageDropResult{Err: ErrPhases}
	}

	sinPhi := math.Sqrt(1 - powerFactor*powerFactor)
	perMetre := imp.Impedance.Resistance*powerFactor + imp.Impedance.Reactance*sinPhi
	drop := k * current * length * perMetre

	return VoltageDropResult{
		Drop:        drop,
		DropPercent: drop / voltage * 100.0,
	}
}
