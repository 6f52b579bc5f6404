package galaxy

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultParameters(t *testing.T) {
	p := DefaultParameters()
	if err := p.Validate(); err != nil {
		t.Fatalf("default parameters invalid: %v", err)
	}
	if p.Count != 100000 || p.Branches != 7 {
		t.Errorf("unexpected defaults: %+v", p)
	}
	if got := p.InsideColor.Hex(); got != "#ff6030" {
		t.Errorf("inside color = %s, want #ff6030", got)
	}
	if got := p.OutsideColor.Hex(); got != "#1b3984" {
		t.Errorf("outside color = %s, want #1b3984", got)
	}
}

func TestClamp(t *testing.T) {
	p := Parameters{
		Count: 5, Size: 1, Radius: -3, Branches: 0, Spin: 12,
		Randomness: math.NaN(), RandomnessPower: 0.2,
	}
	c := p.Clamp()

	if c.Count != MinCount || c.Size != MaxSize || c.Radius != MinRadius || c.Branches != MinBranches {
		t.Errorf("clamp failed: %+v", c)
	}
	if c.Spin != MaxSpin || c.Randomness != MinRandomness || c.RandomnessPower != MinRandomnessPower {
		t.Errorf("clamp failed: %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("clamped parameters invalid: %v", err)
	}
}

func TestValidate_ParamError(t *testing.T) {
	p := DefaultParameters()
	p.Branches = 0

	err := p.Validate()
	var pe *ParamError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParamError, got %T", err)
	}
	if pe.Field != "branches" {
		t.Errorf("field = %s, want branches", pe.Field)
	}
	if !errors.Is(err, ErrInvalidParameter) {
		t.Error("ParamError should unwrap to ErrInvalidParameter")
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#f00")
	if err != nil {
		t.Fatal(err)
	}
	if c.R != 1 || c.G != 0 || c.B != 0 {
		t.Errorf("got %+v, want red", c)
	}
	if _, err := ParseColor("nope"); err == nil {
		t.Error("expected error for malformed color")
	}
}

func TestBufferBytes(t *testing.T) {
	if got := BufferBytes(1_000_000); got != 24_000_000 {
		t.Errorf("BufferBytes = %d, want 24000000", got)
	}
}
