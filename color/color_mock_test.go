package color

import (
	"context"
	"fmt"
	"testing"
)

func TestMockColorSensor_StaticValue(t *testing.T) {
	sensor := NewMockColorSensor(func(ctx context.Context) (Raw, error) {
		return Raw{Clear: 3000, Red: 2000, Green: 500, Blue: 500}, nil
	})

	ctx := context.Background()
	light, err := sensor.Light(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if light != 3000 {
		t.Errorf("expected 3000, got %d", light)
	}
	c, err := sensor.Color(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != ClassRed {
		t.Errorf("expected red, got %s", c)
	}
}

func TestMockColorSensor_Parameters(t *testing.T) {
	sensor := NewMockColorSensor(func(ctx context.Context) (Raw, error) {
		return Raw{Clear: 800, Red: 270, Green: 265, Blue: 265}, nil
	})
	ctx := context.Background()

	c, _ := sensor.Color(ctx)
	if c != ClassDark {
		t.Errorf("expected dark with default black limit, got %s", c)
	}
	sensor.SetParameters(Parameters{BlackLimit: 500, Hysteresis: 25, Offset: 1.1})
	c, _ = sensor.Color(ctx)
	if c != ClassBright {
		t.Errorf("expected bright with lowered black limit, got %s", c)
	}
}

func TestMockColorSensor_NoLight(t *testing.T) {
	sensor := NewMockColorSensor(func(ctx context.Context) (Raw, error) {
		return Raw{}, nil
	})
	ctx := context.Background()

	if _, err := sensor.RGB(ctx); err != ErrNoLight {
		t.Errorf("expected ErrNoLight, got %v", err)
	}
	c, err := sensor.Color(ctx)
	if err != nil || c != ClassDark {
		t.Errorf("expected dark without error, got %s, %v", c, err)
	}
}

func TestMockColorSensor_ErrorHandling(t *testing.T) {
	sensor := NewMockColorSensor(func(ctx context.Context) (Raw, error) {
		return Raw{}, fmt.Errorf("sensor malfunction")
	})

	ctx := context.Background()
	if _, err := sensor.Color(ctx); err == nil || err.Error() != "sensor malfunction" {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := sensor.Light(ctx); err == nil {
		t.Error("expected error, got nil")
	}
}

func TestMockColorSensor_Dynamic(t *testing.T) {
	frames := []Raw{
		{Clear: 3000, Red: 500, Green: 2000, Blue: 500},
		{Clear: 3000, Red: 500, Green: 500, Blue: 2000},
	}
	calls := 0
	sensor := NewMockColorSensor(func(ctx context.Context) (Raw, error) {
		r := frames[calls%len(frames)]
		calls++
		return r, nil
	})

	ctx := context.Background()
	for _, expected := range []Class{ClassGreen, ClassBlue, ClassGreen} {
		c, err := sensor.Color(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c != expected {
			t.Errorf("expected %s, got %s", expected, c)
		}
	}
}
