package schema_registry

import "encoding/json"

// VersionLatest addresses the most recent version of a subject.
const VersionLatest = "latest"

// SchemaVersion is a registered (subject, version, id, schema) tuple. Fields
// the registry omitted from a response are left zero.
type SchemaVersion struct {
	Subject    string `json:"subject,omitempty"`
	Version    int    `json:"version,omitempty"`
	ID         int    `json:"id,omitempty"`
	Schema     string `json:"schema,omitempty"`
	SchemaType string `json:"schemaType,omitempty"`
}

// CompatibilityLevel is the rule the registry applies between versions.
type CompatibilityLevel string

const (
	LevelBackward           CompatibilityLevel = "BACKWARD"
	LevelBackwardTransitive CompatibilityLevel = "BACKWARD_TRANSITIVE"
	LevelForward            CompatibilityLevel = "FORWARD"
	LevelForwardTransitive  CompatibilityLevel = "FORWARD_TRANSITIVE"
	LevelFull               CompatibilityLevel = "FULL"
	LevelFullTransitive     CompatibilityLevel = "FULL_TRANSITIVE"
	LevelNone               CompatibilityLevel = "NONE"
)

// Valid reports whether l is one of the levels known to the registry.
func (l CompatibilityLevel) Valid() bool {
	switch l {
	case LevelBackward, LevelBackwardTransitive, LevelForward, LevelForwardTransitive,
		LevelFull, LevelFullTransitive, LevelNone:
		return true
	}
	return false
}

// Mode is the operational state of the registry.
type Mode string

const (
	ModeImport    Mode = "IMPORT"
	ModeReadOnly  Mode = "READONLY"
	ModeReadWrite Mode = "READWRITE"
)

// Valid reports whether m is one of the modes known to the registry.
func (m Mode) Valid() bool {
	switch m {
	case ModeImport, ModeReadOnly, ModeReadWrite:
		return true
	}
	return false
}

// SchemaDefinition is the raw schema returned by GetSchemaDefinition. Primitive
// schemas come back as a JSON string ("string"), records as a JSON object.
type SchemaDefinition json.RawMessage

// Primitive returns the type name when the definition is a primitive schema.
func (d SchemaDefinition) Primitive() (string, bool) {
	if len(d) == 0 || d[0] != '"' {
		return "", false
	}
	var name string
	if err := json.Unmarshal(d, &name); err != nil {
		return "", false
	}
	return name, true
}

// Decode unmarshals the definition into v.
func (d SchemaDefinition) Decode(v any) error {
	return json.Unmarshal(d, v)
}

// String returns the definition as JSON text.
func (d SchemaDefinition) String() string {
	return string(d)
}

// MarshalJSON writes the definition unchanged.
func (d SchemaDefinition) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("null"), nil
	}
	return d, nil
}
