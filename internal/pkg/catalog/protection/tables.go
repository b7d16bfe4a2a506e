package protection

// Curated protective device dataset. Trip bands follow DIN EN 60898-1;
// the I²t bands are representative values for 6 kA prospective fault
// current, not certified manufacturer data.

// I2t is a tabulated let-through energy band in A²s.
type I2t struct {
	Min float64
	Max float64
}

var standardRatings = []int{6, 10, 13, 16, 20, 25, 32, 40, 50, 63, 80, 100, 125}

var rcdSensitivities = []int{10, 30, 100, 300, 500}

func buildCharacteristics() map[string]Characteristic {
	return map[string]Characteristic{
		"B": {TripPointMin: 3, TripPointMax: 5},
		"C": {TripPointMin: 5, TripPointMax: 10},
		"D": {TripPointMin: 10, TripPointMax: 20},
	}
}

// General (non-selective) RCDs break within 300 ms at rated residual
// current regardless of waveform type.
func buildRCDTypes() map[string]RCDType {
	return map[string]RCDType{
		"AC": {ResponseTimeMs: 300},
		"A":  {ResponseTimeMs: 300},
		"F":  {ResponseTimeMs: 300},
	}
}

// Ratings above 63 A carry no I²t row; let-through for those is only
// available via a supplied fault duration.
func buildLetThroughTable() map[int]I2t {
	return map[int]I2t{
		6:  {Min: 4000, Max: 12000},
		10: {Min: 6000, Max: 18000},
		13: {Min: 7500, Max: 22000},
		16: {Min: 9000, Max: 27000},
		20: {Min: 11000, Max: 33000},
		25: {Min: 14000, Max: 42000},
		32: {Min: 18000, Max: 55000},
		40: {Min: 24000, Max: 70000},
		50: {Min: 30000, Max: 90000},
		63: {Min: 40000, Max: 120000},
	}
}

// mcbExists reports whether the registry carries an MCB with the given
// characteristic and rating. B and C span the whole rating sequence; D
// devices exist from 10 A to 63 A.
func (c *Catalog) mcbExists(letter string, rating int) bool {
	if !containsInt(c.ratings, rating) {
		return false
	}
	switch letter {
	case "B", "C":
		return true
	case "D":
		return rating >= 10 && rating <= 63
	}
	return false
}

// rcboExists reports registry membership for RCBOs: characteristics B
// and C, ratings 6 A to 40 A, 30 mA sensitivity.
func (c *Catalog) rcboExists(letter string, rating, sensitivity int) bool {
	if letter != "B" && letter != "C" {
		return false
	}
	if !containsInt(c.ratings, rating) || rating > 40 {
		return false
	}
	return sensitivity == 30
}
