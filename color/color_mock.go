package color

import (
	"context"
	"sync"
)

// Sensor is the read surface shared by TCS3472 and MockColorSensor.
type Sensor interface {
	Raw(ctx context.Context) (Raw, error)
	Light(ctx context.Context) (int, error)
	RGB(ctx context.Context) (RGB, error)
	Color(ctx context.Context) (Class, error)
}

var _ Sensor = &TCS3472{}
var _ Sensor = &MockColorSensor{}

// RawBehaviorFunc produces one frame of channel counts or an error.
type RawBehaviorFunc func(ctx context.Context) (Raw, error)

// MockColorSensor is a hardware-free colour sensor. Frames come from a
// behavior function and go through the same normalization and
// classification as the real driver.
//
// Example usage:
//
//	// Red card under daylight
//	sensor := NewMockColorSensor(func(ctx context.Context) (Raw, error) {
//		return Raw{Clear: 3000, Red: 2000, Green: 500, Blue: 500}, nil
//	})
type MockColorSensor struct {
	mx       sync.Mutex
	behavior RawBehaviorFunc
	params   Parameters
}

func NewMockColorSensor(behavior RawBehaviorFunc) *MockColorSensor {
	return &MockColorSensor{
		behavior: behavior,
		params:   DefaultParameters(),
	}
}

func (m *MockColorSensor) SetParameters(p Parameters) {
	m.mx.Lock()
	m.params = p
	m.mx.Unlock()
}

func (m *MockColorSensor) Raw(ctx context.Context) (Raw, error) {
	return m.behavior(ctx)
}

func (m *MockColorSensor) Light(ctx context.Context) (int, error) {
	raw, err := m.behavior(ctx)
	if err != nil {
		return 0, err
	}
	return int(raw.Clear), nil
}

func (m *MockColorSensor) RGB(ctx context.Context) (RGB, error) {
	raw, err := m.behavior(ctx)
	if err != nil {
		return RGB{}, err
	}
	return Normalize(raw)
}

func (m *MockColorSensor) Color(ctx context.Context) (Class, error) {
	raw, err := m.behavior(ctx)
	if err != nil {
		return ClassDark, err
	}
	m.mx.Lock()
	params := m.params
	m.mx.Unlock()
	return ClassifyRaw(raw, params), nil
}
