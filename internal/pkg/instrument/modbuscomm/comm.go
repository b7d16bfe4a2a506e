// Package modbuscomm reads installation test instruments over Modbus
// TCP. Register maps differ per instrument model, so the register list
// (address, data type, endianness, scale) comes from configuration.
package modbuscomm

// ModbusComm is the read interface for a polled instrument.
type ModbusComm interface {
	Read([]Register) (map[string]float64, error)
}

// DataType defines the type of Modbus register for decoding.
type DataType string

// Register data types.
const (
	U16 DataType = "u16"
	I16 DataType = "i16"
	U32 DataType = "u32"
	I32 DataType = "i32"
	F32 DataType = "f32"
	U64 DataType = "u64"
	I64 DataType = "i64"
	F64 DataType = "f64"
)

// Endian is the register byte order.
type Endian string

// Byte orders.
const (
	BigEndian    Endian = "big"
	LittleEndian Endian = "little"
)

// Register describes one readable instrument value.
type Register struct {
	Name       string   `json:"Name"`
	Address    uint16   `json:"Address"`
	DataType   DataType `json:"DataType"`
	Endianness Endian   `json:"Endianness"`
	Scale      float64  `json:"Scale"` // multiplier applied after decode; 0 means 1
}
