package deck

import (
	"testing"

	"encoderdeck-go/drivers/seesaw"
	"encoderdeck-go/errcode"
)

// flakyPeripheral fails encoder reads with a scripted error while keeping
// Probe behaviour independent, to exercise fault classification.
type flakyPeripheral struct {
	fakePeripheral
	readErr error
}

func (f *flakyPeripheral) EncoderPosition(slot int) (int32, error) {
	if f.readErr != nil {
		return 0, f.readErr
	}
	return f.fakePeripheral.EncoderPosition(slot)
}

func resolvedSet(t *testing.T, dev Peripheral) *ChannelSet {
	t.Helper()
	set, _, err := Resolve(DefaultConfig(), func(uint16) (Peripheral, error) { return dev, nil })
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	return set
}

func TestClassifyTransientWhenDeviceStillAnswers(t *testing.T) {
	f := &flakyPeripheral{}
	set := resolvedSet(t, f)

	f.readErr = errNak // bus hiccup, but Probe still succeeds
	_, ok, err := set.Position(0)
	if !ok {
		t.Fatal("channel should still be enabled")
	}
	if errcode.Of(err) != errcode.Transient {
		t.Fatalf("classified %v, want transient", err)
	}
}

func TestClassifyDeviceAbsentWhenProbeFails(t *testing.T) {
	f := &flakyPeripheral{}
	set := resolvedSet(t, f)

	f.readErr = errNak
	f.probeErr = errNak // device is gone entirely
	_, _, err := set.Position(0)
	if errcode.Of(err) != errcode.DeviceAbsent {
		t.Fatalf("classified %v, want device_absent", err)
	}
}

func TestClassifyDeviceAbsentOnDriverSentinel(t *testing.T) {
	f := &flakyPeripheral{}
	set := resolvedSet(t, f)

	f.readErr = seesaw.ErrNoDevice
	_, _, err := set.Position(0)
	if errcode.Of(err) != errcode.DeviceAbsent {
		t.Fatalf("classified %v, want device_absent", err)
	}
}

func TestDisableIsIdempotentAndIrreversible(t *testing.T) {
	set := resolvedSet(t, &fakePeripheral{})

	set.DisableEncoder(2)
	set.DisableEncoder(2)
	if _, ok, _ := set.Position(2); ok {
		t.Fatal("disabled encoder still readable")
	}
	// The button half is untouched.
	if _, ok, _ := set.ButtonLevel(2); !ok {
		t.Fatal("button half must survive encoder disable")
	}

	enc, btn := set.Working()
	if enc != 3 || btn != 4 {
		t.Fatalf("working = %d/%d, want 3/4", enc, btn)
	}
}
