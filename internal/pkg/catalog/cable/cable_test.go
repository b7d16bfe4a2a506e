package cable

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestBaseAmpacityPinnedValue(t *testing.T) {
	c := New()
	a, ok := c.BaseAmpacity("NYY", 16, "method_3")
	assert.Assert(t, ok)
	assert.Equal(t, a, 61.0)
}

func TestBaseAmpacityMonotonic(t *testing.T) {
	c := New()
	methods := []string{"method_1", "method_2", "method_3"}
	for _, code := range c.Cables() {
		for _, method := range methods {
			prev := 0.0
			for _, g := range c.StandardGauges() {
				a, ok := c.BaseAmpacity(code, g, method)
				if !ok {
					continue
				}
				assert.Assert(t, a > 0, "%s %v %s ampacity not positive", code, g, method)
				assert.Assert(t, a >= prev, "%s %s ampacity decreases at %v mm²", code, method, g)
				prev = a
			}
		}
	}
}

func TestBaseAmpacityUntabulated(t *testing.T) {
	c := New()

	_, ok := c.BaseAmpacity("H07V-K", 16, "method_3")
	assert.Assert(t, !ok, "H07V-K is not tabulated for clipped direct")

	_, ok = c.BaseAmpacity("NYY", 17, "method_1")
	assert.Assert(t, !ok)

	_, ok = c.BaseAmpacity("NOPE", 16, "method_1")
	assert.Assert(t, !ok)
}

func TestCableLookup(t *testing.T) {
	c := New()

	cab, ok := c.Cable("NYM")
	assert.Assert(t, ok)
	assert.Equal(t, cab.RatedVoltage, "300/500 V")

	_, ok = c.Cable("NYCWY")
	assert.Assert(t, !ok)
}

func TestResistancePerMetre(t *testing.T) {
	c := New()
	r, ok := c.Resistance("NYM", 1.5)
	assert.Assert(t, ok)
	assert.Equal(t, r, 12.1/1000.0, "tables store ohm/km, queries answer ohm/m")
}

func TestImpedancePerMetre(t *testing.T) {
	c := New()

	res := c.ImpedancePerMetre("NYY", 2.5)
	assert.NilError(t, res.Err)
	assert.Equal(t, res.Impedance.Resistance, 7.41/1000.0)
	assert.Equal(t, res.Impedance.Reactance, 0.110/1000.0)

	res = c.ImpedancePerMetre("NYY", 3)
	assert.Assert(t, res.Err != nil)
}

func TestStandardGaugesCopy(t *testing.T) {
	c := New()
	gauges := c.StandardGauges()
	assert.Equal(t, gauges[0], 1.5)

	gauges[0] = 999
	assert.Equal(t, c.StandardGauges()[0], 1.5, "mutating a returned slice must not leak into the catalog")
}

func TestIsStandardGauge(t *testing.T) {
	c := New()
	assert.Assert(t, c.IsStandardGauge(2.5))
	assert.Assert(t, c.IsStandardGauge(240))
	assert.Assert(t, !c.IsStandardGauge(3))
}
