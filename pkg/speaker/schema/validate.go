package schema

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// StateCommand is the schema for state-change requests accepted by the
// API and MCP surfaces. Speakers only understand a small command
// vocabulary, so the document is fixed rather than per-device.
const StateCommand = `{
	"type": "object",
	"additionalProperties": false,
	"minProperties": 1,
	"properties": {
		"power": {"type": "string", "enum": ["ON", "OFF"]},
		"volume": {"type": "integer", "minimum": 0, "maximum": 100},
		"muted": {"type": "boolean"},
		"source": {"type": "string", "minLength": 1}
	}
}`

// AudioSettingCommand is the schema for audio-setting writes: a single
// numeric slider value or a named select option.
const AudioSettingCommand = `{
	"type": "object",
	"additionalProperties": false,
	"minProperties": 1,
	"maxProperties": 1,
	"properties": {
		"value": {"type": "integer"},
		"option": {"type": "string", "minLength": 1}
	}
}`

// Validator validates JSON payloads against JSON Schema documents.
// It caches compiled schemas keyed by their raw bytes.
type Validator struct {
	mu    sync.RWMutex
	cache map[string]*jsonschema.Schema
}

// NewValidator creates a new Validator with an empty cache.
func NewValidator() *Validator {
	return &Validator{
		cache: make(map[string]*jsonschema.Schema),
	}
}

// Validate validates payload against the given JSON Schema document.
// Returns nil if valid, or an error describing the validation failures.
func (v *Validator) Validate(schemaDoc json.RawMessage, payload map[string]any) error {
	if len(schemaDoc) == 0 || string(schemaDoc) == "{}" || string(schemaDoc) == "null" {
		return nil // No schema = no validation
	}

	compiled, err := v.compile(schemaDoc)
	if err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}

	return compiled.Validate(payload)
}

// ValidateState validates a state-change request against StateCommand.
func (v *Validator) ValidateState(payload map[string]any) error {
	return v.Validate(json.RawMessage(StateCommand), payload)
}

// ValidateAudioSetting validates an audio-setting write against
// AudioSettingCommand.
func (v *Validator) ValidateAudioSetting(payload map[string]any) error {
	return v.Validate(json.RawMessage(AudioSettingCommand), payload)
}

func (v *Validator) compile(schemaDoc json.RawMessage) (*jsonschema.Schema, error) {
	key := string(schemaDoc)

	v.mu.RLock()
	if s, ok := v.cache[key]; ok {
		v.mu.RUnlock()
		return s, nil
	}
	v.mu.RUnlock()

	v.mu.Lock()
	defer v.mu.Unlock()

	// Double-check after acquiring write lock
	if s, ok := v.cache[key]; ok {
		return s, nil
	}

	var schemaMap any
	if err := json.Unmarshal(schemaDoc, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", schemaMap); err != nil {
		return nil, fmt.Errorf("failed to add resource: %w", err)
	}
	compiled, err := c.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile: %w", err)
	}

	v.cache[key] = compiled
	return compiled, nil
}
