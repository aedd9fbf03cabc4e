package i2c

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync"

	gobot "gobot.io/x/gobot/v2/drivers/i2c"

	"github.com/mklimuk/colorsense"
	"github.com/mklimuk/colorsense/snsctx"
)

var _ colorsense.I2CBus = &GobotBus{}

// DeviceDriver is the subset of gobot's GenericDriver used by GobotBus.
type DeviceDriver interface {
	Start() error
	Halt() error
	Read(data []byte) error
	Write(data []byte) error
}

// DriverFactory opens a driver for one device address on a gobot adaptor.
type DriverFactory func(address byte) DeviceDriver

// GobotBus routes transfers through gobot I2C drivers, one per device
// address, started on first use.
type GobotBus struct {
	mx      sync.Mutex
	factory DriverFactory
	drivers map[byte]DeviceDriver
}

// NewGobotBus uses the given adaptor (e.g. nanopi.NewNeoAdaptor()) and bus
// number. The adaptor must already be connected.
func NewGobotBus(adaptor gobot.Connector, bus int) *GobotBus {
	return NewGobotBusWithFactory(func(address byte) DeviceDriver {
		return gobot.NewGenericDriver(adaptor, "colorsense", int(address), func(c gobot.Config) {
			c.SetBus(bus)
		})
	})
}

func NewGobotBusWithFactory(factory DriverFactory) *GobotBus {
	return &GobotBus{
		factory: factory,
		drivers: make(map[byte]DeviceDriver),
	}
}

func (b *GobotBus) driver(address byte) (DeviceDriver, error) {
	if d, ok := b.drivers[address]; ok {
		return d, nil
	}
	d := b.factory(address)
	err := d.Start()
	if err != nil {
		return nil, fmt.Errorf("could not start driver for %#x: %w", address, err)
	}
	b.drivers[address] = d
	return d, nil
}

func (b *GobotBus) ReadFromAddr(ctx context.Context, address byte, buffer []byte) error {
	b.mx.Lock()
	defer b.mx.Unlock()
	d, err := b.driver(address)
	if err != nil {
		return err
	}
	err = d.Read(buffer)
	if err != nil {
		return fmt.Errorf("could not read from i2c bus %x: %w", address, err)
	}
	if snsctx.IsVerbose(ctx) {
		slog.Debug("gobot read", "addr", fmt.Sprintf("%#x", address), "data", hex.EncodeToString(buffer))
	}
	return nil
}

func (b *GobotBus) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	b.mx.Lock()
	defer b.mx.Unlock()
	d, err := b.driver(address)
	if err != nil {
		return err
	}
	if snsctx.IsVerbose(ctx) {
		slog.Debug("gobot write", "addr", fmt.Sprintf("%#x", address), "data", hex.EncodeToString(buffer))
	}
	err = d.Write(buffer)
	if err != nil {
		return fmt.Errorf("could not write to i2c bus %x: %w", address, err)
	}
	return nil
}

func (b *GobotBus) Release(ctx context.Context) error {
	return nil
}

// Close halts every started driver and returns the first error.
func (b *GobotBus) Close() error {
	b.mx.Lock()
	defer b.mx.Unlock()
	var first error
	for addr, d := range b.drivers {
		if err := d.Halt(); err != nil && first == nil {
			first = fmt.Errorf("could not halt driver for %#x: %w", addr, err)
		}
		delete(b.drivers, addr)
	}
	return first
}
