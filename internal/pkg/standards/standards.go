// Package standards is the reference-standard lookup layer: valid
// voltages and frequencies, voltage-drop and disconnection-time limits,
// standard protection size sequences, the severity and non-conformity
// taxonomies, and the engine-wide coordination constants.
package standards

import "math"

// Engine-wide coordination constants. Every component computing
// selectivity or loop impedance uses these, never a local copy.
const (
	// SelectivityRatioThreshold is the minimum upstream/downstream
	// rating ratio for selectivity between two devices.
	SelectivityRatioThreshold = 1.6

	// SafetyFactor margins the available fault current when bounding
	// the earth fault loop impedance.
	SafetyFactor = 0.8
)

// LoadType describes a load category and its design limits.
type LoadType struct {
	Name               string
	MaxVoltageDrop     float64 // percent
	TypicalPowerFactor float64
}

// InstallationMethod describes a cable installation method.
type InstallationMethod struct {
	ReferenceAmbient float64 // °C
	Description      string
}

// SeverityLevel is one entry of the finding severity taxonomy.
type SeverityLevel struct {
	Code   string
	Name   string
	Weight int
	Color  string
}

// Category is one entry of the non-conformity category taxonomy.
type Category struct {
	Code string
	Name string
}

// Reference is the standards lookup table set, built once at startup.
type Reference struct {
	singlePhase  []float64
	threePhase   []float64
	frequencies  []float64
	loadTypes    map[string]LoadType
	methods      map[string]InstallationMethod
	mcbSizes     []int
	fuseSizes    []int
	severities   []SeverityLevel
	categories   []Category
	severityIdx  map[string]SeverityLevel
	categoryIdx  map[string]Category
}

// New builds the reference from the compiled-in tables.
func New() *Reference {
	r := &Reference{
		singlePhase: []float64{230},
		threePhase:  []float64{400, 690},
		frequencies: []float64{50, 60},
		loadTypes:   buildLoadTypes(),
		methods:     buildInstallationMethods(),
		mcbSizes:    mcbSizes,
		fuseSizes:   fuseSizes,
		severities:  buildSeverities(),
		categories:  buildCategories(),
	}
	r.severityIdx = make(map[string]SeverityLevel, len(r.severities))
	for _, s := range r.severities {
		r.severityIdx[s.Code] = s
	}
	r.categoryIdx = make(map[string]Category, len(r.categories))
	for _, c := range r.categories {
		r.categoryIdx[c.Code] = c
	}
	return r
}

// ValidIndustrialVoltages returns the nominal voltages for a phase type:
// "single" or "three". The empty string returns the full set; an
// unrecognized phase type returns nothing.
func (r *Reference) ValidIndustrialVoltages(phaseType string) []float64 {
	switch phaseType {
	case "single":
		return copyFloats(r.singlePhase)
	case "three":
		return copyFloats(r.threePhase)
	case "":
		out := copyFloats(r.singlePhase)
		return append(out, r.threePhase...)
	}
	return nil
}

// IsValidVoltage reports exact membership in the nominal voltage set.
func (r *Reference) IsValidVoltage(v float64) bool {
	for _, valid := range r.ValidIndustrialVoltages("") {
		if valid == v {
			return true
		}
	}
	return false
}

// NearestValidVoltage returns the nominal voltage closest in absolute
// distance to the given value.
func (r *Reference) NearestValidVoltage(v float64) float64 {
	all := r.ValidIndustrialVoltages("")
	nearest := all[0]
	for _, candidate := range all[1:] {
		if math.Abs(candidate-v) < math.Abs(nearest-v) {
			nearest = candidate
		}
	}
	return nearest
}

// ValidFrequencies returns a fresh copy of the supported mains
// frequencies in Hz.
func (r *Reference) ValidFrequencies() []float64 {
	return copyFloats(r.frequencies)
}

// IsValidFrequency reports membership in the supported frequency set.
func (r *Reference) IsValidFrequency(f float64) bool {
	for _, valid := range r.frequencies {
		if valid == f {
			return true
		}
	}
	return false
}

// MaxVoltageDrop returns the permitted voltage drop in percent for a
// load type. Lighting circuits are limited to 3%; every other value,
// recognized or not, uses the general 5% limit.
func (r *Reference) MaxVoltageDrop(loadType string) float64 {
	if loadType == "lighting" {
		return 3.0
	}
	return 5.0
}

// LoadType looks up a load category by code.
func (r *Reference) LoadType(code string) (LoadType, bool) {
	lt, ok := r.loadTypes[code]
	return lt, ok
}

// InstallationMethod looks up an installation method by code.
func (r *Reference) InstallationMethod(code string) (InstallationMethod, bool) {
	m, ok := r.methods[code]
	return m, ok
}

// MaxDisconnectTime returns the maximum disconnection time in seconds
// for an earth fault. Distribution circuits allow 5 s regardless of
// voltage. Final circuits allow 0.4 s at 230 V and 0.2 s at 400 V and
// above; anything else defaults to 0.4 s.
func (r *Reference) MaxDisconnectTime(voltage float64, isDistribution bool) float64 {
	if isDistribution {
		return 5.0
	}
	if voltage >= 400 {
		return 0.2
	}
	return 0.4
}

// StandardProtectionSizes returns a fresh copy of the ascending size
// sequence for a device family: "MCB" or "fuse". Unrecognized families
// use the MCB sequence.
func (r *Reference) StandardProtectionSizes(family string) []int {
	var src []int
	if family == "fuse" {
		src = r.fuseSizes
	} else {
		src = r.mcbSizes
	}
	out := make([]int, len(src))
	copy(out, src)
	return out
}

// NextStandardSize returns the smallest standard size of the family
// carrying the given current; a tabulated current returns itself. The
// boolean is false above the family's largest size.
func (r *Reference) NextStandardSize(family string, current float64) (int, bool) {
	for _, s := range r.StandardProtectionSizes(family) {
		if float64(s) >= current {
			return s, true
		}
	}
	return 0, false
}

// CalculateMaxLoopImpedance bounds the earth fault loop impedance that
// still guarantees the protective device trips: the fault current at
// nominal voltage, margined by the safety factor, must reach the trip
// current.
func (r *Reference) CalculateMaxLoopImpedance(voltage, tripCurrent float64) float64 {
	return voltage / (tripCurrent * SafetyFactor)
}

// SeverityLevel looks up a severity taxonomy entry by code.
func (r *Reference) SeverityLevel(code string) (SeverityLevel, bool) {
	s, ok := r.severityIdx[code]
	return s, ok
}

// SeverityLevels returns a fresh copy of the severity taxonomy in
// ascending weight order.
func (r *Reference) SeverityLevels() []SeverityLevel {
	out := make([]SeverityLevel, len(r.severities))
	copy(out, r.severities)
	return out
}

// Category looks up a non-conformity category by code.
func (r *Reference) Category(code string) (Category, bool) {
	c, ok := r.categoryIdx[code]
	return c, ok
}

// Categories returns a fresh copy of the non-conformity taxonomy.
func (r *Reference) Categories() []Category {
	out := make([]Category, len(r.categories))
	copy(out, r.categories)
	return out
}

func copyFloats(src []float64) []float64 {
	out := make([]float64, len(src))
	copy(out, src)
	return out
}
