package i2c

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDriver struct {
	mock.Mock
}

func (m *MockDriver) Start() error { return m.Called().Error(0) }

func (m *MockDriver) Halt() error { return m.Called().Error(0) }

func (m *MockDriver) Read(data []byte) error {
	args := m.Called(data)
	if b, ok := args.Get(0).([]byte); ok {
		copy(data, b)
	}
	return args.Error(1)
}

func (m *MockDriver) Write(data []byte) error { return m.Called(data).Error(0) }

func TestGobotBus_RegisterRead(t *testing.T) {
	drv := new(MockDriver)
	drv.On("Start").Return(nil).Once()
	drv.On("Write", []byte{0xB4}).Return(nil).Once()
	drv.On("Read", mock.Anything).Return([]byte{0x64, 0x00}, nil).Once()
	drv.On("Halt").Return(nil).Once()

	var opened []byte
	bus := NewGobotBusWithFactory(func(address byte) DeviceDriver {
		opened = append(opened, address)
		return drv
	})
	ctx := context.Background()

	require.NoError(t, bus.WriteToAddr(ctx, 0x29, []byte{0xB4}))
	buf := make([]byte, 2)
	require.NoError(t, bus.ReadFromAddr(ctx, 0x29, buf))
	assert.Equal(t, []byte{0x64, 0x00}, buf)
	assert.Equal(t, []byte{0x29}, opened, "driver must be started once per address")

	require.NoError(t, bus.Close())
	drv.AssertExpectations(t)
}

func TestGobotBus_Errors(t *testing.T) {
	drv := new(MockDriver)
	drv.On("Start").Return(errors.New("no bus")).Once()
	bus := NewGobotBusWithFactory(func(address byte) DeviceDriver { return drv })

	err := bus.WriteToAddr(context.Background(), 0x29, []byte{0x80, 0x03})
	assert.EqualError(t, err, "could not start driver for 0x29: no bus")

	drv.On("Start").Return(nil).Once()
	drv.On("Read", mock.Anything).Return(nil, errors.New("nack")).Once()
	err = bus.ReadFromAddr(context.Background(), 0x29, make([]byte, 1))
	assert.EqualError(t, err, "could not read from i2c bus 29: nack")
	drv.AssertExpectations(t)
}
