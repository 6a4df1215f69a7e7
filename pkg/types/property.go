package types

// Property types accepted by the Contacts API. The type decides how a value
// is serialized on the wire and cast back on retrieval.
const (
	PropertyTypeBoolean     = "bool"
	PropertyTypeDate        = "date"
	PropertyTypeDatetime    = "datetime"
	PropertyTypeEnumeration = "enumeration"
	PropertyTypeNumber      = "number"
	PropertyTypeString      = "string"
)

// defaultFieldTypes maps each property type to the form field HubSpot
// renders for it when no field type is given.
var defaultFieldTypes = map[string]string{
	PropertyTypeBoolean:     "booleancheckbox",
	PropertyTypeDate:        "date",
	PropertyTypeDatetime:    "date",
	PropertyTypeEnumeration: "select",
	PropertyTypeNumber:      "number",
	PropertyTypeString:      "text",
}

// Property is a contact property definition.
type Property struct {
	Name        string            // Internal name (required, non-empty).
	Label       string            // Human-readable label.
	Description string            // Optional explanation.
	GroupName   string            // Property group the definition belongs to.
	FieldType   string            // Form field type; defaults by Type.
	Type        string            // One of the PropertyType constants.
	Options     map[string]string // Enumeration options, label to value.
}

// IsValidPropertyType reports whether t is a recognized property type.
func IsValidPropertyType(t string) bool {
	_, ok := defaultFieldTypes[t]
	return ok
}

// EffectiveFieldType returns the property's field type, falling back to the
// default for its type.
func (p Property) EffectiveFieldType() string {
	if p.FieldType != "" {
		return p.FieldType
	}
	return defaultFieldTypes[p.Type]
}

// Validate checks the definition is usable by the formatters.
// Returns ErrInvalidName if Name is empty and ErrInvalidPropertyType if Type
// is not recognized.
func (p Property) Validate() error {
	if p.Name == "" {
		return ErrInvalidName
	}
	if !IsValidPropertyType(p.Type) {
		return ErrInvalidPropertyType
	}
	return nil
}

// PropertyGroup groups property definitions for display.
type PropertyGroup struct {
	Name        string
	DisplayName string
	Properties  []Property
}

// PropertiesByName indexes property definitions by name.
func PropertiesByName(properties []Property) map[string]Property {
	byName := make(map[string]Property, len(properties))
	for _, p := range properties {
		byName[p.Name] = p
	}
	return byName
}
