package modbuscomm

import (
	"encoding/binary"
	"log"
	"math"
	"os"
	"time"

	"github.com/goburrow/modbus"
)

// Poller reads a target instrument over Modbus TCP.
type Poller struct {
	handler  *modbus.TCPClientHandler
	pollRate int
}

// PollerConfig is the configuration format for Poller.
type PollerConfig struct {
	IPAddr       string `json:"IPAddr"`
	Port         string `json:"Port"`
	SlaveID      byte   `json:"SlaveID"`
	Timeout      int    `json:"Timeout"`  // ms
	PollRate     int    `json:"PollRate"` // ms
	EnableLogger bool
}

// NewPoller is a factory for the Poller struct.
func NewPoller(cfg PollerConfig) Poller {
	handler := modbus.NewTCPClientHandler(cfg.IPAddr + ":" + cfg.Port)
	handler.Timeout = time.Millisecond * time.Duration(cfg.Timeout)
	handler.SlaveId = cfg.SlaveID

	if cfg.EnableLogger {
		handler.Logger = log.New(os.Stdout, "modbus: ", log.LstdFlags)
	}

	return Poller{
		handler:  handler,
		pollRate: cfg.PollRate,
	}
}

// PollRate returns the configured poll interval in milliseconds.
func (m Poller) PollRate() int {
	return m.pollRate
}

// Read fetches every register in one connection. A failed register
// reads as NaN and the last error is returned alongside the partial
// value map.
func (m Poller) Read(registers []Register) (map[string]float64, error) {
	err := m.handler.Connect()
	if err != nil {
		return nil, err
	}
	defer m.handler.Close()

	client := modbus.NewClient(m.handler)
	readValues := make(map[string]float64)
	for _, register := range registers {
		resp, readErr := client.ReadHoldingRegisters(register.Address, sizeOf(register.DataType))
		if readErr != nil {
			readValues[register.Name] = math.NaN()
			err = readErr
			continue
		}
		readValues[register.Name] = decode(resp, register)
	}
	return readValues, err
}

// decode converts a register byte slice into a scaled float64.
func decode(bytes []byte, register Register) float64 {
	var n float64
	endian := getByteOrder(register.Endianness)
	switch register.DataType {
	case U16:
		n = float64(endian.Uint16(bytes))
	case I16:
		n = float64(int16(endian.Uint16(bytes)))
	case U32:
		n = float64(endian.Uint32(bytes))
	case I32:
		n = float64(int32(endian.Uint32(bytes)))
	case F32:
		n = float64(math.Float32frombits(endian.Uint32(bytes)))
	case U64:
		n = float64(endian.Uint64(bytes))
	case I64:
		n = float64(int64(endian.Uint64(bytes)))
	case F64:
		n = math.Float64frombits(endian.Uint64(bytes))
	}
	if register.Scale != 0 {
		n *= register.Scale
	}
	return n
}

// getByteOrder returns the binary endian object for the register type.
func getByteOrder(e Endian) binary.ByteOrder {
	if e == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// sizeOf returns the number of u16 registers for the datatype.
func sizeOf(t DataType) uint16 {
	switch t {
	case U16, I16:
		return 1
	case U32, I32, F32:
		return 2
	case U64, I64, F64:
		return 4
	}
	return 0
}
