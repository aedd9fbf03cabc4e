// Package smbus frames register-addressed reads and writes for devices that
// use single-register selection without combined transactions.
//
// A register read is two separate bus transactions: the register number is
// written first, then the requested number of bytes is read back. The
// sequence is not atomic; callers sharing a device must serialize it.
package smbus

import (
	"context"
	"fmt"

	"github.com/mklimuk/colorsense"
)

// WriteByte sends [reg, value] to the device in one transaction.
func WriteByte(ctx context.Context, bus colorsense.AddressableWriter, addr, reg, value byte) error {
	err := bus.WriteToAddr(ctx, addr, []byte{reg, value})
	if err != nil {
		return fmt.Errorf("could not write register %#x: %w", reg, err)
	}
	return nil
}

// WriteBuffer sends [reg, data...] to the device in one transaction.
func WriteBuffer(ctx context.Context, bus colorsense.AddressableWriter, addr, reg byte, data []byte) error {
	buf := make([]byte, len(data)+1)
	buf[0] = reg
	copy(buf[1:], data)
	err := bus.WriteToAddr(ctx, addr, buf)
	if err != nil {
		return fmt.Errorf("could not write register %#x: %w", reg, err)
	}
	return nil
}

// ReadBuffer selects reg and reads n bytes from it.
func ReadBuffer(ctx context.Context, bus colorsense.I2CBus, addr, reg byte, n int) ([]byte, error) {
	err := bus.WriteToAddr(ctx, addr, []byte{reg})
	if err != nil {
		return nil, fmt.Errorf("could not select register %#x: %w", reg, err)
	}
	buf := make([]byte, n)
	err = bus.ReadFromAddr(ctx, addr, buf)
	if err != nil {
		return nil, fmt.Errorf("could not read register %#x: %w", reg, err)
	}
	return buf, nil
}

// ReadNumber selects reg and decodes a single field from it.
func ReadNumber(ctx context.Context, bus colorsense.I2CBus, addr, reg byte, field Field) (int, error) {
	buf, err := ReadBuffer(ctx, bus, addr, reg, field.Size)
	if err != nil {
		return 0, err
	}
	return field.decode(buf), nil
}
