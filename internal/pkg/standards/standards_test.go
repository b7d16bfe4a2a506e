package standards

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestValidIndustrialVoltages(t *testing.T) {
	r := New()

	single := r.ValidIndustrialVoltages("single")
	assert.Equal(t, len(single), 1)
	assert.Equal(t, single[0], 230.0)

	three := r.ValidIndustrialVoltages("three")
	assert.Equal(t, len(three), 2)

	all := r.ValidIndustrialVoltages("")
	assert.Equal(t, len(all), 3)

	assert.Equal(t, len(r.ValidIndustrialVoltages("split")), 0)
}

func TestVoltageListCopies(t *testing.T) {
	r := New()
	v := r.ValidIndustrialVoltages("single")
	v[0] = 115
	assert.Equal(t, r.ValidIndustrialVoltages("single")[0], 230.0, "mutating a returned slice must not leak into the reference")
}

func TestIsValidVoltage(t *testing.T) {
	r := New()
	assert.Assert(t, r.IsValidVoltage(230))
	assert.Assert(t, r.IsValidVoltage(400))
	assert.Assert(t, r.IsValidVoltage(690))
	assert.Assert(t, !r.IsValidVoltage(240))
}

func TestNearestValidVoltage(t *testing.T) {
	r := New()
	assert.Equal(t, r.NearestValidVoltage(235), 230.0)
	assert.Equal(t, r.NearestValidVoltage(300), 230.0)
	assert.Equal(t, r.NearestValidVoltage(390), 400.0)
	assert.Equal(t, r.NearestValidVoltage(560), 690.0)
}

func TestFrequencies(t *testing.T) {
	r := New()
	assert.Equal(t, len(r.ValidFrequencies()), 2)
	assert.Assert(t, r.IsValidFrequency(50))
	assert.Assert(t, r.IsValidFrequency(60))
	assert.Assert(t, !r.IsValidFrequency(400))
}

func TestMaxVoltageDrop(t *testing.T) {
	r := New()
	assert.Equal(t, r.MaxVoltageDrop("lighting"), 3.0)
	assert.Equal(t, r.MaxVoltageDrop("motor"), 5.0)
	// unrecognized load types use the general limit
	assert.Equal(t, r.MaxVoltageDrop("arc_furnace"), 5.0)
	assert.Equal(t, r.MaxVoltageDrop(""), 5.0)
}

func TestLoadTypeLookup(t *testing.T) {
	r := New()

	lt, ok := r.LoadType("lighting")
	assert.Assert(t, ok)
	assert.Equal(t, lt.MaxVoltageDrop, 3.0)
	assert.Equal(t, lt.TypicalPowerFactor, 0.90)

	_, ok = r.LoadType("arc_furnace")
	assert.Assert(t, !ok)
}

func TestInstallationMethodLookup(t *testing.T) {
	r := New()

	m, ok := r.InstallationMethod("method_3")
	assert.Assert(t, ok)
	assert.Equal(t, m.ReferenceAmbient, 30.0)

	_, ok = r.InstallationMethod("method_9")
	assert.Assert(t, !ok)
}

func TestMaxDisconnectTime(t *testing.T) {
	r := New()

	assert.Equal(t, r.MaxDisconnectTime(230, false), 0.4)
	assert.Equal(t, r.MaxDisconnectTime(230, true), 5.0)
	assert.Equal(t, r.MaxDisconnectTime(400, false), 0.2)
	assert.Equal(t, r.MaxDisconnectTime(690, false), 0.2)
	assert.Equal(t, r.MaxDisconnectTime(690, true), 5.0)
	// outside the tabulated voltages final circuits default to 0.4 s
	assert.Equal(t, r.MaxDisconnectTime(120, false), 0.4)
}

func TestStandardProtectionSizes(t *testing.T) {
	r := New()

	mcb := r.StandardProtectionSizes("MCB")
	assert.Equal(t, mcb[0], 6)
	assert.Equal(t, mcb[len(mcb)-1], 125)

	fuse := r.StandardProtectionSizes("fuse")
	assert.Equal(t, fuse[0], 2)
	assert.Equal(t, fuse[len(fuse)-1], 250)

	// unrecognized families use the MCB sequence
	assert.Equal(t, len(r.StandardProtectionSizes("breaker")), len(mcb))

	mcb[0] = 1
	assert.Equal(t, r.StandardProtectionSizes("MCB")[0], 6, "mutating a returned slice must not leak into the reference")
}

func TestNextStandardSize(t *testing.T) {
	r := New()

	s, ok := r.NextStandardSize("MCB", 17)
	assert.Assert(t, ok)
	assert.Equal(t, s, 20)

	s, ok = r.NextStandardSize("MCB", 63)
	assert.Assert(t, ok)
	assert.Equal(t, s, 63)

	s, ok = r.NextStandardSize("fuse", 30)
	assert.Assert(t, ok)
	assert.Equal(t, s, 32)

	_, ok = r.NextStandardSize("MCB", 126)
	assert.Assert(t, !ok)

	_, ok = r.NextStandardSize("fuse", 260)
	assert.Assert(t, !ok)
}

func TestCalculateMaxLoopImpedance(t *testing.T) {
	r := New()
	assert.Equal(t, r.CalculateMaxLoopImpedance(400, 80), 6.25)
	assert.Equal(t, r.CalculateMaxLoopImpedance(230, 48), 230.0/(48*0.8))
}

func TestSeverityTaxonomy(t *testing.T) {
	r := New()

	s, ok := r.SeverityLevel("CRITICAL")
	assert.Assert(t, ok)
	assert.Equal(t, s.Weight, 3)
	assert.Assert(t, s.Color != "")

	levels := r.SeverityLevels()
	assert.Equal(t, len(levels), 3)
	for i := 1; i < len(levels); i++ {
		assert.Assert(t, levels[i].Weight > levels[i-1].Weight)
	}

	levels[0].Code = "MUTATED"
	assert.Equal(t, r.SeverityLevels()[0].Code, "INFO")

	_, ok = r.SeverityLevel("FATAL")
	assert.Assert(t, !ok)
}

func TestCategoryTaxonomy(t *testing.T) {
	r := New()

	c, ok := r.Category("COORDINATION")
	assert.Assert(t, ok)
	assert.Equal(t, c.Name, "Device coordination")

	assert.Equal(t, len(r.Categories()), 5)

	_, ok = r.Category("PLUMBING")
	assert.Assert(t, !ok)
}

func TestCoordinationConstants(t *testing.T) {
	assert.Equal(t, SelectivityRatioThreshold, 1.6)
	assert.Equal(t, SafetyFactor, 0.8)
}
