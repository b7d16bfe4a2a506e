package cable

// Curated reference dataset. Ampacities are amps for three loaded
// conductors at 30°C ambient, per installation method:
//
//	method_1  embedded in a thermally insulating wall
//	method_2  in conduit or trunking on a wall
//	method_3  clipped direct to a surface
//
// Values follow the DIN VDE 0298-4 shape but are a curated dataset, not
// certified manufacturer data.

var standardGauges = []float64{1.5, 2.5, 4, 6, 10, 16, 25, 35, 50, 70, 95, 120, 150, 185, 240}

// conductor resistance, ohm/km, copper at 20°C
var resistancePerKm = []float64{12.1, 7.41, 4.61, 3.08, 1.83, 1.15, 0.727, 0.524, 0.387, 0.268, 0.193, 0.153, 0.124, 0.0991, 0.0754}

// conductor reactance, ohm/km
var reactancePerKm = []float64{0.115, 0.110, 0.107, 0.104, 0.100, 0.098, 0.096, 0.095, 0.094, 0.093, 0.092, 0.091, 0.090, 0.089, 0.089}

var nymAmpacity = map[string][]float64{
	"method_1": {13, 18, 24, 31, 42, 56, 73, 89, 108, 136, 164, 188, 216, 245, 286},
	"method_2": {15.5, 21, 28, 36, 50, 66, 84, 104, 125, 160, 194, 225, 260, 297, 350},
	"method_3": {17.5, 24, 32, 41, 57, 76, 96, 119, 144, 184, 223, 259, 299, 341, 403},
}

var nyyAmpacity = map[string][]float64{
	"method_1": {15, 20, 26, 33, 40, 49, 63, 78, 94, 119, 144, 166, 190, 216, 253},
	"method_2": {17, 23, 30, 38, 46, 56, 72, 89, 108, 137, 166, 191, 219, 249, 291},
	"method_3": {18.5, 25, 33, 42, 50, 61, 79, 97, 118, 150, 181, 209, 240, 273, 320},
}

// H07V-K is conduit wiring; it is not tabulated for clipped-direct
// installation, which exercises the absent-combination path.
var h07vkAmpacity = map[string][]float64{
	"method_1": {13, 17.5, 23, 29, 39, 52, 68, 83, 99, 125, 150, 172, 196, 223, 261},
	"method_2": {15.5, 21, 28, 36, 50, 66, 84, 104, 123, 155, 188, 216, 248, 282, 330},
}

func gaugeMap(values []float64) map[float64]float64 {
	m := make(map[float64]float64, len(standardGauges))
	for i, g := range standardGauges {
		m[g] = values[i]
	}
	return m
}

func ampacityMap(byMethod map[string][]float64) map[string]map[float64]float64 {
	m := make(map[string]map[float64]float64, len(byMethod))
	for method, values := range byMethod {
		m[method] = gaugeMap(values)
	}
	return m
}

func buildCables() map[string]CableType {
	return map[string]CableType{
		"NYM": {
			Code:         "NYM",
			Name:         "NYM-J installation cable",
			Standard:     "DIN VDE 0250-204",
			RatedVoltage: "300/500 V",
			ampacity:     ampacityMap(nymAmpacity),
			resistance:   gaugeMap(resistancePerKm),
			reactance:    gaugeMap(reactancePerKm),
		},
		"NYY": {
			Code:         "NYY",
			Name:         "NYY-J power cable",
			Standard:     "DIN VDE 0276-603",
			RatedVoltage: "0.6/1 kV",
			ampacity:     ampacityMap(nyyAmpacity),
			resistance:   gaugeMap(resistancePerKm),
			reactance:    gaugeMap(reactancePerKm),
		},
		"H07V-K": {
			Code:         "H07V-K",
			Name:         "H07V-K conduit wire",
			Standard:     "DIN VDE 0281-3",
			RatedVoltage: "450/750 V",
			ampacity:     ampacityMap(h07vkAmpacity),
			resistance:   gaugeMap(resistancePerKm),
			reactance:    gaugeMap(reactancePerKm),
		},
	}
}
