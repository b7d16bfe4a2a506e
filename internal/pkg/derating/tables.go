package derating

// Sparse derating tables for PVC insulated conductors (70°C conductor
// temperature, 30°C reference ambient). All three installation methods
// currently share the same correction curve; the table stays keyed per
// method so a method-specific curve can be added without an API change.

const defaultMethod = "method_1"

var temperatureFactors = map[float64]float64{
	10: 1.22,
	15: 1.17,
	20: 1.12,
	25: 1.06,
	30: 1.00,
	35: 0.94,
	40: 0.87,
	45: 0.79,
	50: 0.71,
	55: 0.61,
	60: 0.50,
}

var groupingFactors = map[int]float64{
	1:  1.00,
	2:  0.80,
	3:  0.70,
	4:  0.65,
	5:  0.60,
	6:  0.57,
	7:  0.54,
	8:  0.52,
	9:  0.50,
	12: 0.45,
	16: 0.41,
	20: 0.38,
}

func buildTemperatureTable() map[string]map[float64]float64 {
	methods := []string{"method_1", "method_2", "method_3"}
	tab := make(map[string]map[float64]float64, len(methods))
	for _, m := range methods {
		byTemp := make(map[float64]float64, len(temperatureFactors))
		for t, f := range temperatureFactors {
			byTemp[t] = f
		}
		tab[m] = byTemp
	}
	return tab
}

func buildGroupingTable() map[int]float64 {
	tab := make(map[int]float64, len(groupingFactors))
	for n, f := range groupingFactors {
		tab[n] = f
	}
	return tab
}

func buildReferenceAmbients() map[string]float64 {
	return map[string]float64{
		"method_1": 30,
		"method_2": 30,
		"method_3": 30,
	}
}
