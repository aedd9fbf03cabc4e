// Package color drives TCS3472x colour light-to-digital converters and turns
// their channel counts into normalized RGB and a coarse colour class.
package color

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/mklimuk/colorsense"
	"github.com/mklimuk/colorsense/smbus"
)

// Register addresses already carry the command bit (0x80). The channel block
// address also sets auto-increment so all four words come in one read.
const (
	regEnable  byte = 0x80
	regATime   byte = 0x81
	regControl byte = 0x8F
	regID      byte = 0x92
	regStatus  byte = 0x93
	regCData   byte = 0xB4
)

const (
	enablePON byte = 0x01
	enableAEN byte = 0x02

	defaultATime byte = 0x2B

	statusAVALID byte = 0x01
)

// one integration cycle is 2.4ms; ATIME holds 256 minus the cycle count
const maxIntegrationTicks = 255

// longest integration, reached at maxIntegrationTicks
const maxIntegrationMs = 612

// Gain is the analog gain of the RGBC channels (CONTROL register).
type Gain byte

const (
	Gain1x  Gain = 0x00
	Gain4x  Gain = 0x01
	Gain16x Gain = 0x02
	Gain60x Gain = 0x03
)

var ErrInvalidGain = errors.New("tcs3472: invalid gain")

func (g Gain) String() string {
	switch g {
	case Gain1x:
		return "1x"
	case Gain4x:
		return "4x"
	case Gain16x:
		return "16x"
	case Gain60x:
		return "60x"
	default:
		return fmt.Sprintf("Gain(%d)", byte(g))
	}
}

// ParseGain accepts 1, 4, 16 or 60 with an optional trailing "x".
func ParseGain(s string) (Gain, error) {
	switch s {
	case "1", "1x":
		return Gain1x, nil
	case "4", "4x":
		return Gain4x, nil
	case "16", "16x":
		return Gain16x, nil
	case "60", "60x":
		return Gain60x, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidGain, s)
}

type state int

const (
	stateUninitialized state = iota
	stateInitialized
)

type TCS3472Opts struct {
	Address    byte
	Parameters Parameters
	ATime      byte
	Gain       Gain
	SetGain    bool
}

type TCS3472Opt func(*TCS3472Opts)

func WithAddress(address byte) TCS3472Opt {
	return func(o *TCS3472Opts) {
		o.Address = address
	}
}

func WithParameters(p Parameters) TCS3472Opt {
	return func(o *TCS3472Opts) {
		o.Parameters = p
	}
}

// WithIntegrationTime replaces the integration time written during setup.
func WithIntegrationTime(d time.Duration) TCS3472Opt {
	return func(o *TCS3472Opts) {
		o.ATime = integrationRegister(d)
	}
}

// WithGain makes setup also write the CONTROL register.
func WithGain(g Gain) TCS3472Opt {
	return func(o *TCS3472Opts) {
		o.Gain = g
		o.SetGain = true
	}
}

// TCS3472 represents an ams TCS3472x colour sensor.
// See: https://cdn-shop.adafruit.com/datasheets/TCS34725.pdf
//
// The device is powered up lazily by the first accessor that needs it, or
// explicitly with Setup. Accessors are safe for concurrent use; the
// register select and data read of a query are never interleaved.
//
//	s := NewTCS3472(bus)
//	c, err := s.Color(ctx)
type TCS3472 struct {
	mx        sync.Mutex
	transport colorsense.I2CBus
	addr      byte
	state     state
	config    TCS3472Opts
	params    Parameters
}

func NewTCS3472(transport colorsense.I2CBus, opts ...TCS3472Opt) *TCS3472 {
	config := TCS3472Opts{
		Address:    colorsense.DefaultAddress,
		Parameters: DefaultParameters(),
		ATime:      defaultATime,
	}
	for _, opt := range opts {
		opt(&config)
	}
	return &TCS3472{
		transport: transport,
		addr:      config.Address,
		config:    config,
		params:    config.Parameters,
	}
}

// Setup powers the oscillator and ADC and writes the initial timing. It only
// talks to the device the first time it succeeds.
func (s *TCS3472) Setup(ctx context.Context) error {
	s.mx.Lock()
	defer s.mx.Unlock()
	return s.setup(ctx)
}

func (s *TCS3472) setup(ctx context.Context) error {
	if s.state == stateInitialized {
		return nil
	}
	err := smbus.WriteByte(ctx, s.transport, s.addr, regEnable, enablePON|enableAEN)
	if err != nil {
		return fmt.Errorf("tcs3472: could not enable device: %w", err)
	}
	err = smbus.WriteByte(ctx, s.transport, s.addr, regATime, s.config.ATime)
	if err != nil {
		return fmt.Errorf("tcs3472: could not set integration time: %w", err)
	}
	if s.config.SetGain {
		err = smbus.WriteByte(ctx, s.transport, s.addr, regControl, byte(s.config.Gain))
		if err != nil {
			return fmt.Errorf("tcs3472: could not set gain: %w", err)
		}
	}
	s.state = stateInitialized
	slog.Debug("tcs3472 initialized", "addr", fmt.Sprintf("%#x", s.addr), "atime", s.config.ATime)
	return nil
}

// SetIntegrationTime sets how long the ADC integrates per reading. The value
// is clamped to 0..612ms in 2.4ms steps.
func (s *TCS3472) SetIntegrationTime(ctx context.Context, d time.Duration) error {
	s.mx.Lock()
	defer s.mx.Unlock()
	if err := s.setup(ctx); err != nil {
		return err
	}
	reg := integrationRegister(d)
	err := smbus.WriteByte(ctx, s.transport, s.addr, regATime, reg)
	if err != nil {
		return fmt.Errorf("tcs3472: could not set integration time: %w", err)
	}
	slog.Debug("tcs3472 integration time set", "duration", d, "atime", reg)
	return nil
}

func integrationRegister(d time.Duration) byte {
	ms := float64(d) / float64(time.Millisecond)
	ticks := min(max(ms*10/24, 0), maxIntegrationTicks)
	return byte(maxIntegrationTicks - ticks)
}

// SetGain writes the RGBC gain.
func (s *TCS3472) SetGain(ctx context.Context, g Gain) error {
	if g > Gain60x {
		return fmt.Errorf("%w: %d", ErrInvalidGain, byte(g))
	}
	s.mx.Lock()
	defer s.mx.Unlock()
	if err := s.setup(ctx); err != nil {
		return err
	}
	err := smbus.WriteByte(ctx, s.transport, s.addr, regControl, byte(g))
	if err != nil {
		return fmt.Errorf("tcs3472: could not set gain: %w", err)
	}
	return nil
}

// SetParameters replaces the classification parameters. Values are not
// validated.
func (s *TCS3472) SetParameters(p Parameters) {
	s.mx.Lock()
	s.params = p
	s.mx.Unlock()
}

func (s *TCS3472) Parameters() Parameters {
	s.mx.Lock()
	defer s.mx.Unlock()
	return s.params
}

// ID returns the content of the ID register (0x44 for TCS34721/5, 0x4D for
// TCS34723/7).
func (s *TCS3472) ID(ctx context.Context) (byte, error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	if err := s.setup(ctx); err != nil {
		return 0, err
	}
	id, err := smbus.ReadNumber(ctx, s.transport, s.addr, regID, smbus.Uint8)
	if err != nil {
		return 0, fmt.Errorf("tcs3472: could not read id: %w", err)
	}
	return byte(id), nil
}

// Ready reports whether an integration cycle has completed since power up.
func (s *TCS3472) Ready(ctx context.Context) (bool, error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	if err := s.setup(ctx); err != nil {
		return false, err
	}
	status, err := smbus.ReadNumber(ctx, s.transport, s.addr, regStatus, smbus.Uint8)
	if err != nil {
		return false, fmt.Errorf("tcs3472: could not read status: %w", err)
	}
	return byte(status)&statusAVALID != 0, nil
}

// Raw reads clear, red, green and blue counts.
func (s *TCS3472) Raw(ctx context.Context) (Raw, error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	return s.raw(ctx)
}

func (s *TCS3472) raw(ctx context.Context) (Raw, error) {
	if err := s.setup(ctx); err != nil {
		return Raw{}, err
	}
	buf, err := smbus.ReadBuffer(ctx, s.transport, s.addr, regCData, smbus.Channels.Size())
	if err != nil {
		return Raw{}, fmt.Errorf("tcs3472: could not read channels: %w", err)
	}
	ch, err := smbus.Channels.Decode(buf)
	if err != nil {
		return Raw{}, fmt.Errorf("tcs3472: could not decode channels: %w", err)
	}
	return Raw{
		Clear: uint16(ch[0]),
		Red:   uint16(ch[1]),
		Green: uint16(ch[2]),
		Blue:  uint16(ch[3]),
	}, nil
}

// Light returns the clear channel count.
func (s *TCS3472) Light(ctx context.Context) (int, error) {
	raw, err := s.Raw(ctx)
	if err != nil {
		return 0, err
	}
	return int(raw.Clear), nil
}

// RGB returns the colour channels scaled by 255/clear. It fails with
// ErrNoLight when the clear channel reads zero.
func (s *TCS3472) RGB(ctx context.Context) (RGB, error) {
	raw, err := s.Raw(ctx)
	if err != nil {
		return RGB{}, err
	}
	rgb, err := Normalize(raw)
	if err != nil {
		return RGB{}, fmt.Errorf("tcs3472: %w", err)
	}
	return rgb, nil
}

// Color classifies a single frame with the current parameters.
func (s *TCS3472) Color(ctx context.Context) (Class, error) {
	s.mx.Lock()
	raw, err := s.raw(ctx)
	params := s.params
	s.mx.Unlock()
	if err != nil {
		return ClassDark, err
	}
	return ClassifyRaw(raw, params), nil
}

// GetLight returns the clear channel.
func (s *TCS3472) GetLight(ctx context.Context) (int, error) {
	return s.Light(ctx)
}

func (s *TCS3472) GetRed(ctx context.Context) (int, error) {
	rgb, err := s.RGB(ctx)
	return int(math.Round(rgb.R)), err
}

func (s *TCS3472) GetGreen(ctx context.Context) (int, error) {
	rgb, err := s.RGB(ctx)
	return int(math.Round(rgb.G)), err
}

func (s *TCS3472) GetBlue(ctx context.Context) (int, error) {
	rgb, err := s.RGB(ctx)
	return int(math.Round(rgb.B)), err
}

// GetColor returns the colour class as a number in 0..7.
func (s *TCS3472) GetColor(ctx context.Context) (int, error) {
	c, err := s.Color(ctx)
	return int(c), err
}

// SetColourIntegrationTime sets the integration time in milliseconds.
func (s *TCS3472) SetColourIntegrationTime(ctx context.Context, ms int) error {
	ms = min(max(ms, 0), maxIntegrationMs)
	return s.SetIntegrationTime(ctx, time.Duration(ms)*time.Millisecond)
}
