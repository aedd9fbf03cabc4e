package adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mklimuk/colorsense"
)

// fakeBridge answers HID reports with scripted responses.
type fakeBridge struct {
	requests  [][]byte
	responses [][]byte
	closed    int
}

func (f *fakeBridge) Write(b []byte) (int, error) {
	f.requests = append(f.requests, append([]byte(nil), b...))
	return len(b), nil
}

func (f *fakeBridge) Read(b []byte) (int, error) {
	if len(f.responses) == 0 {
		return 0, errors.New("no response scripted")
	}
	copy(b, f.responses[0])
	f.responses = f.responses[1:]
	return reportSize, nil
}

func (f *fakeBridge) Close() error {
	f.closed++
	return nil
}

func response(fields map[int]byte) []byte {
	buf := make([]byte, reportSize)
	for i, v := range fields {
		buf[i] = v
	}
	return buf
}

func newTestBridge(f *fakeBridge) *MCP2221 {
	return NewMCP2221(
		WithResponseWait(time.Millisecond),
		WithOpener(func(index int) (Device, error) { return f, nil }),
	)
}

func TestMCP2221_WriteToAddr(t *testing.T) {
	f := &fakeBridge{responses: [][]byte{response(map[int]byte{0: cmdI2CWrite})}}
	d := newTestBridge(f)

	err := d.WriteToAddr(context.Background(), 0x29, []byte{0x80, 0x03})
	require.NoError(t, err)
	require.Len(t, f.requests, 1)
	assert.Equal(t, []byte{0x90, 0x02, 0x00, 0x52, 0x80, 0x03}, f.requests[0][:6])
	assert.Equal(t, 1, f.closed)
}

func TestMCP2221_PayloadTooLarge(t *testing.T) {
	f := &fakeBridge{}
	d := newTestBridge(f)

	err := d.WriteToAddr(context.Background(), 0x29, make([]byte, maxPayload+1))
	assert.ErrorIs(t, err, ErrPayloadTooLarge)
	err = d.ReadFromAddr(context.Background(), 0x29, make([]byte, maxPayload+1))
	assert.ErrorIs(t, err, ErrPayloadTooLarge)
	assert.Empty(t, f.requests)

	f.responses = [][]byte{response(map[int]byte{0: cmdI2CWrite})}
	require.NoError(t, d.WriteToAddr(context.Background(), 0x29, make([]byte, maxPayload)))
	assert.Equal(t, []byte{0x90, maxPayload, 0x00, 0x52}, f.requests[0][:4])
}

func TestMCP2221_WriteBusy(t *testing.T) {
	f := &fakeBridge{responses: [][]byte{response(map[int]byte{0: cmdI2CWrite, 1: 0x01})}}
	d := newTestBridge(f)

	err := d.WriteToAddr(context.Background(), 0x29, []byte{0xB4})
	assert.ErrorIs(t, err, colorsense.ErrBusBusy)
}

func TestMCP2221_ReadFromAddr(t *testing.T) {
	data := response(map[int]byte{0: cmdI2CGetData, 3: 8, 4: 0x64, 6: 0x32, 8: 0x19, 10: 0x4B})
	f := &fakeBridge{responses: [][]byte{response(map[int]byte{0: cmdI2CRead}), data}}
	d := newTestBridge(f)

	buf := make([]byte, 8)
	err := d.ReadFromAddr(context.Background(), 0x29, buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x64, 0x00, 0x32, 0x00, 0x19, 0x00, 0x4B, 0x00}, buf)
	require.Len(t, f.requests, 2)
	assert.Equal(t, []byte{0x91, 0x08, 0x00, 0x53}, f.requests[0][:4])
	assert.Equal(t, cmdI2CGetData, f.requests[1][0])
}

func TestMCP2221_ReadFromAddr_Errors(t *testing.T) {
	tests := []struct {
		name          string
		getData       []byte
		expectedError string
	}{
		{
			name:          "engine error",
			getData:       response(map[int]byte{1: i2cReadError}),
			expectedError: "error reading the I2C slave data from the I2C engine",
		},
		{
			name:          "size mismatch",
			getData:       response(map[int]byte{3: 4}),
			expectedError: "invalid data size byte; expected 8, got 4",
		},
		{
			name:          "invalid size marker",
			getData:       response(map[int]byte{3: invalidDataSize}),
			expectedError: "invalid data size byte; expected 8, got 127",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeBridge{responses: [][]byte{response(nil), tt.getData}}
			d := newTestBridge(f)
			err := d.ReadFromAddr(context.Background(), 0x29, make([]byte, 8))
			assert.EqualError(t, err, tt.expectedError)
		})
	}
}

func TestMCP2221_Status(t *testing.T) {
	f := &fakeBridge{responses: [][]byte{response(map[int]byte{
		9: 0x08, 11: 0x08, 13: 2, 14: 0x76, 15: 5, 16: 0x52, 25: 1,
	})}}
	d := newTestBridge(f)

	status, err := d.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &MCP2221Status{
		I2CDataBufferCounter:   2,
		I2CSpeedDivider:        0x76,
		I2CTimeout:             5,
		CurrentAddress:         "5200",
		LastWriteRequestedSize: 8,
		LastWriteSentSize:      8,
		ReadPending:            1,
	}, status)
}

func TestMCP2221_Release(t *testing.T) {
	f := &fakeBridge{responses: [][]byte{response(nil)}}
	d := newTestBridge(f)

	require.NoError(t, d.Release(context.Background()))
	assert.Equal(t, cmdStatus, f.requests[0][0])
	assert.Equal(t, statusCancelTransfer, f.requests[0][2])
}

func TestMCP2221_OpenError(t *testing.T) {
	d := NewMCP2221(WithOpener(func(index int) (Device, error) { return nil, ErrDeviceNotFound }))
	err := d.WriteToAddr(context.Background(), 0x29, []byte{0xB4})
	assert.ErrorIs(t, err, ErrDeviceNotFound)
	assert.ErrorIs(t, d.Init(), ErrDeviceNotFound)
}

func TestMCP2221_ContextCancelled(t *testing.T) {
	f := &fakeBridge{responses: [][]byte{response(nil)}}
	d := NewMCP2221(
		WithResponseWait(time.Second),
		WithOpener(func(index int) (Device, error) { return f, nil }),
	)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := d.WriteToAddr(ctx, 0x29, []byte{0xB4})
	assert.ErrorIs(t, err, context.Canceled)
}
