package schema

import (
	"encoding/json"
	"testing"
)

func TestValidateState_ValidPayload(t *testing.T) {
	v := NewValidator()

	err := v.ValidateState(map[string]any{
		"power":  "ON",
		"volume": float64(40),
	})
	if err != nil {
		t.Errorf("expected valid payload, got: %v", err)
	}
}

func TestValidateState_PowerOnly(t *testing.T) {
	v := NewValidator()

	err := v.ValidateState(map[string]any{
		"power": "OFF",
	})
	if err != nil {
		t.Errorf("expected valid payload, got: %v", err)
	}
}

func TestValidateState_InvalidPowerEnum(t *testing.T) {
	v := NewValidator()

	err := v.ValidateState(map[string]any{
		"power": "STANDBY",
	})
	if err == nil {
		t.Error("expected validation error for invalid power value")
	}
}

func TestValidateState_VolumeOutOfRange(t *testing.T) {
	v := NewValidator()

	err := v.ValidateState(map[string]any{
		"volume": float64(150),
	})
	if err == nil {
		t.Error("expected validation error for out-of-range volume")
	}
}

func TestValidateState_NegativeVolume(t *testing.T) {
	v := NewValidator()

	err := v.ValidateState(map[string]any{
		"volume": float64(-5),
	})
	if err == nil {
		t.Error("expected validation error for negative volume")
	}
}

func TestValidateState_UnknownProperty(t *testing.T) {
	v := NewValidator()

	err := v.ValidateState(map[string]any{
		"power":   "ON",
		"unknown": "value",
	})
	if err == nil {
		t.Error("expected validation error for unknown property")
	}
}

func TestValidateState_EmptyPayload(t *testing.T) {
	v := NewValidator()

	err := v.ValidateState(map[string]any{})
	if err == nil {
		t.Error("expected validation error for empty state request")
	}
}

func TestValidateState_WrongType(t *testing.T) {
	v := NewValidator()

	err := v.ValidateState(map[string]any{
		"volume": "loud",
	})
	if err == nil {
		t.Error("expected validation error for wrong type")
	}
}

func TestValidateAudioSetting_Value(t *testing.T) {
	v := NewValidator()

	err := v.ValidateAudioSetting(map[string]any{
		"value": float64(-20),
	})
	if err != nil {
		t.Errorf("expected valid payload, got: %v", err)
	}
}

func TestValidateAudioSetting_Option(t *testing.T) {
	v := NewValidator()

	err := v.ValidateAudioSetting(map[string]any{
		"option": "DIALOG",
	})
	if err != nil {
		t.Errorf("expected valid payload, got: %v", err)
	}
}

func TestValidateAudioSetting_BothKeys(t *testing.T) {
	v := NewValidator()

	err := v.ValidateAudioSetting(map[string]any{
		"value":  float64(0),
		"option": "DIALOG",
	})
	if err == nil {
		t.Error("expected validation error when both value and option are set")
	}
}

func TestValidate_EmptySchema(t *testing.T) {
	v := NewValidator()

	// Empty schema means no validation
	err := v.Validate(json.RawMessage(`{}`), map[string]any{
		"anything": "goes",
	})
	if err != nil {
		t.Errorf("empty schema should skip validation, got: %v", err)
	}
}

func TestValidate_NilSchema(t *testing.T) {
	v := NewValidator()

	err := v.Validate(nil, map[string]any{
		"anything": "goes",
	})
	if err != nil {
		t.Errorf("nil schema should skip validation, got: %v", err)
	}
}

func TestValidate_CachesSchema(t *testing.T) {
	v := NewValidator()

	// First call compiles
	err := v.ValidateState(map[string]any{"power": "ON"})
	if err != nil {
		t.Fatal(err)
	}

	// Second call should use cache
	err = v.ValidateState(map[string]any{"power": "OFF"})
	if err != nil {
		t.Fatal(err)
	}

	v.mu.RLock()
	cacheSize := len(v.cache)
	v.mu.RUnlock()
	if cacheSize != 1 {
		t.Errorf("expected 1 cached schema, got %d", cacheSize)
	}
}
