// Package instrument is the gateway to an installation test instrument
// (loop tester) polled over Modbus TCP. Each poll reads the measured
// earth fault loop impedance, checks it against the maximum the
// configured protective device allows, and publishes the measurement on
// the message fabric.
package instrument

import (
	"encoding/json"
	"errors"
	"io/ioutil"
	"log"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/voltkraft/lvc_core/internal/pkg/catalog/protection"
	"github.com/voltkraft/lvc_core/internal/pkg/instrument/modbuscomm"
	"github.com/voltkraft/lvc_core/internal/pkg/msg"
	"github.com/voltkraft/lvc_core/internal/pkg/standards"
)

// ErrUnknownDevice reports a configured protective device code the
// registry cannot resolve.
var ErrUnknownDevice = errors.New("instrument: unknown protective device code")

// Register names the gateway interprets.
const (
	RegLoopImpedance        = "loop_impedance"
	RegInsulationResistance = "insulation_resistance"
	RegRCDTripTime          = "rcd_trip_time"
)

// Measurement is one evaluated instrument reading.
type Measurement struct {
	LoopImpedance        float64   `json:"loopImpedance"`        // ohm
	MaxLoopImpedance     float64   `json:"maxLoopImpedance"`     // ohm
	InsulationResistance float64   `json:"insulationResistance"` // Mohm, NaN if not read
	RCDTripTime          float64   `json:"rcdTripTime"`          // ms, NaN if not read
	Compliant            bool      `json:"compliant"`
	Device               string    `json:"device"`
	Voltage              float64   `json:"voltage"`
	Taken                time.Time `json:"taken"`
}

// Gateway polls one instrument on behalf of one circuit.
type Gateway struct {
	mux       *sync.Mutex
	pid       uuid.UUID
	poller    modbuscomm.ModbusComm
	pollRate  int
	config    config
	maxZ      float64
	pubsub    *msg.PubSub
	stop      chan bool
}

type config struct {
	Poller         modbuscomm.PollerConfig `json:"Poller"`
	Registers      []modbuscomm.Register   `json:"Registers"`
	CircuitVoltage float64                 `json:"CircuitVoltage"`
	DeviceCode     string                  `json:"DeviceCode"`
}

// New reads the JSON config, resolves the protective device and returns
// a gateway publishing on the given fabric.
func New(configPath string, prot *protection.Catalog, std *standards.Reference, pubsub *msg.PubSub) (Gateway, error) {
	jsonConfig, err := ioutil.ReadFile(configPath)
	if err != nil {
		return Gateway{}, err
	}
	cfg := config{}
	if err := json.Unmarshal(jsonConfig, &cfg); err != nil {
		return Gateway{}, err
	}

	dev, ok := prot.Device(cfg.DeviceCode)
	if !ok || dev.Rating == 0 {
		return Gateway{}, ErrUnknownDevice
	}

	// the fault current must at least reach the bottom of the
	// instantaneous band
	band := prot.TripPointFactor(cfg.DeviceCode)
	tripCurrent := dev.Rating * band.TripPointMin
	maxZ := std.CalculateMaxLoopImpedance(cfg.CircuitVoltage, tripCurrent)

	pid, err := uuid.NewUUID()
	if err != nil {
		return Gateway{}, err
	}

	poller := modbuscomm.NewPoller(cfg.Poller)

	return Gateway{
		mux:      &sync.Mutex{},
		pid:      pid,
		poller:   poller,
		pollRate: cfg.Poller.PollRate,
		config:   cfg,
		maxZ:     maxZ,
		pubsub:   pubsub,
		stop:     make(chan bool),
	}, nil
}

// PID returns the gateway PID.
func (g *Gateway) PID() uuid.UUID {
	return g.pid
}

// MaxLoopImpedance returns the limit the gateway compares against.
func (g *Gateway) MaxLoopImpedance() float64 {
	return g.maxZ
}

// StopProcess terminates the Process loop.
func (g *Gateway) StopProcess() {
	g.stop <- true
}

// Process polls the instrument at the configured rate until stopped.
func (g *Gateway) Process() {
	ticker := time.NewTicker(time.Duration(g.pollRate) * time.Millisecond)
	defer ticker.Stop()
loop:
	for {
		select {
		case <-ticker.C:
			g.poll()
		case <-g.stop:
			break loop
		}
	}
	log.Println("[Instrument] Process Shutdown")
}

func (g *Gateway) poll() {
	values, err := g.poller.Read(g.config.Registers)
	if err != nil {
		log.Println("[Instrument] Comm Error:", err)
		return
	}
	m, err := g.evaluate(values)
	if err != nil {
		log.Println("[Instrument]", err)
		return
	}
	g.pubsub.Publish(msg.Measurement, m)
}

// evaluate turns a raw register read into an evaluated measurement.
func (g *Gateway) evaluate(values map[string]float64) (Measurement, error) {
	zs, ok := values[RegLoopImpedance]
	if !ok || math.IsNaN(zs) {
		return Measurement{}, errors.New("instrument: no loop impedance reading")
	}

	m := Measurement{
		LoopImpedance:        zs,
		MaxLoopImpedance:     g.maxZ,
		InsulationResistance: math.NaN(),
		RCDTripTime:          math.NaN(),
		Compliant:            zs <= g.maxZ,
		Device:               g.config.DeviceCode,
		Voltage:              g.config.CircuitVoltage,
		Taken:                time.Now().UTC(),
	}
	if riso, ok := values[RegInsulationResistance]; ok {
		m.InsulationResistance = riso
	}
	if tt, ok := values[RegRCDTripTime]; ok {
		m.RCDTripTime = tt
	}
	return m, nil
}
