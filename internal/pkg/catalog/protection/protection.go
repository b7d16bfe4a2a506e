// Package protection holds the protective device registry: miniature
// circuit breakers, residual current devices and combined RCBOs, their
// trip characteristic bands, the standard rating sequence and the I²t
// let-through table. Devices are addressed by composite codes such as
// "MCB-C-16", "RCD-AC-30" or "RCBO-C-16-30".
package protection

import (
	"fmt"
	"strconv"
	"strings"
)

// Family is the protective device family.
type Family string

// Device families in the registry.
const (
	MCB  Family = "MCB"
	RCD  Family = "RCD"
	RCBO Family = "RCBO"
)

// Characteristic is an MCB trip-curve band. The magnetic trip point lies
// between TripPointMin and TripPointMax times the rated current.
type Characteristic struct {
	TripPointMin float64
	TripPointMax float64
}

// RCDType describes a residual current device type by its maximum
// response time at rated residual current.
type RCDType struct {
	ResponseTimeMs float64
}

// Device is a parsed protective device record.
type Device struct {
	Code           string
	Family         Family
	Characteristic string  // B, C or D; empty for RCD
	RCDType        string  // AC, A or F; empty for MCB
	Rating         float64 // A; zero for RCD
	Sensitivity    float64 // mA; zero for MCB
}

// Catalog is the protective device registry.
type Catalog struct {
	characteristics map[string]Characteristic
	rcdTypes        map[string]RCDType
	ratings         []int
	letThrough      map[int]I2t
}

// New builds the registry from the compiled-in reference tables.
func New() *Catalog {
	return &Catalog{
		characteristics: buildCharacteristics(),
		rcdTypes:        buildRCDTypes(),
		ratings:         standardRatings,
		letThrough:      buildLetThroughTable(),
	}
}

// Characteristic looks up an MCB trip-curve band by letter.
func (c *Catalog) Characteristic(letter string) (Characteristic, bool) {
	ch, ok := c.characteristics[letter]
	return ch, ok
}

// RCDType looks up a residual current device type by letter.
func (c *Catalog) RCDType(letter string) (RCDType, bool) {
	t, ok := c.rcdTypes[letter]
	return t, ok
}

// StandardCurrentRatings returns a fresh copy of the ascending standard
// rating sequence in amps.
func (c *Catalog) StandardCurrentRatings() []int {
	out := make([]int, len(c.ratings))
	copy(out, c.ratings)
	return out
}

// Device parses a composite device code and reports whether it names a
// device present in the registry. Unparseable and unknown codes report
// absence, never an error.
func (c *Catalog) Device(code string) (Device, bool) {
	parts := strings.Split(code, "-")
	if len(parts) < 2 {
		return Device{}, false
	}

	switch Family(parts[0]) {
	case MCB:
		return c.parseMCB(code, parts)
	case RCD:
		return c.parseRCD(code, parts)
	case RCBO:
		return c.parseRCBO(code, parts)
	}
	return Device{}, false
}

func (c *Catalog) parseMCB(code string, parts []string) (Device, bool) {
	if len(parts) != 3 {
		return Device{}, false
	}
	letter := parts[1]
	if _, ok := c.characteristics[letter]; !ok {
		return Device{}, false
	}
	rating, err := strconv.Atoi(parts[2])
	if err != nil || !c.mcbExists(letter, rating) {
		return Device{}, false
	}
	return Device{
		Code:           code,
		Family:         MCB,
		Characteristic: letter,
		Rating:         float64(rating),
	}, true
}

func (c *Catalog) parseRCD(code string, parts []string) (Device, bool) {
	if len(parts) != 3 {
		return Device{}, false
	}
	letter := parts[1]
	if _, ok := c.rcdTypes[letter]; !ok {
		return Device{}, false
	}
	sens, err := strconv.Atoi(parts[2])
	if err != nil || !containsInt(rcdSensitivities, sens) {
		return Device{}, false
	}
	return Device{
		Code:        code,
		Family:      RCD,
		RCDType:     letter,
		Sensitivity: float64(sens),
	}, true
}

func (c *Catalog) parseRCBO(code string, parts []string) (Device, bool) {
	if len(parts) != 4 {
		return Device{}, false
	}
	letter := parts[1]
	if _, ok := c.characteristics[letter]; !ok {
		return Device{}, false
	}
	rating, err := strconv.Atoi(parts[2])
	if err != nil {
		return Device{}, false
	}
	sens, err := strconv.Atoi(parts[3])
	if err != nil || !c.rcboExists(letter, rating, sens) {
		return Device{}, false
	}
	return Device{
		Code:           code,
		Family:         RCBO,
		Characteristic: letter,
		RCDType:        "A",
		Rating:         float64(rating),
		Sensitivity:    float64(sens),
	}, true
}

// TripPointFactor resolves a full device code or a bare characteristic
// letter to its trip band. Inputs that resolve as neither fall back to
// characteristic B.
func (c *Catalog) TripPointFactor(codeOrLetter string) Characteristic {
	if dev, ok := c.Device(codeOrLetter); ok && dev.Characteristic != "" {
		return c.characteristics[dev.Characteristic]
	}
	if ch, ok := c.characteristics[codeOrLetter]; ok {
		return ch
	}
	return c.characteristics["B"]
}

// FindMinimumDevice returns the code of the smallest registered MCB with
// the given characteristic whose rating carries the required current.
func (c *Catalog) FindMinimumDevice(letter string, requiredCurrent float64) (string, bool) {
	if _, ok := c.characteristics[letter]; !ok {
		return "", false
	}
	for _, r := range c.ratings {
		if float64(r) >= requiredCurrent && c.mcbExists(letter, r) {
			return fmt.Sprintf("MCB-%s-%d", letter, r), true
		}
	}
	return "", false
}

// NextStandardSize returns the smallest standard rating carrying the
// given current; a tabulated current returns itself. The boolean is
// false above the largest rating.
func (c *Catalog) NextStandardSize(current float64) (int, bool) {
	for _, r := range c.ratings {
		if float64(r) >= current {
			return r, true
		}
	}
	return 0, false
}

// LetThrough returns the tabulated I²t band for an MCB rating.
func (c *Catalog) LetThrough(rating int) (I2t, bool) {
	e, ok := c.letThrough[rating]
	return e, ok
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
