// Package colorsense holds the bus contracts shared by the colour sensor
// driver and the transports it can run on.
package colorsense

import (
	"context"
	"fmt"
)

// DefaultAddress is the fixed 7-bit address of TCS3472x parts.
const DefaultAddress = 0x29

var ErrBusBusy = fmt.Errorf("I2C engine is busy (command not completed)")

type AddressableReader interface {
	ReadFromAddr(ctx context.Context, address byte, buffer []byte) error
}

type AddressableWriter interface {
	WriteToAddr(ctx context.Context, address byte, buffer []byte) error
	Release(ctx context.Context) error
}

// I2CBus is the transport collaborator: raw writes and reads addressed to
// a 7-bit device address. Implementations must not combine a write and a
// following read into a repeated-start transaction.
type I2CBus interface {
	AddressableReader
	AddressableWriter
}
