package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Property is the wire shape of a single schema property descriptor, the same
// subset an MCP elicitation request carries.
type Property struct {
	Type        string     `json:"type,omitempty"`
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Format      string     `json:"format,omitempty"`
	Default     any        `json:"default,omitempty"`
	Enum        []any      `json:"enum,omitempty"`
	EnumNames   []string   `json:"enumNames,omitempty"`
	MinLength   *int       `json:"minLength,omitempty"`
	MaxLength   *int       `json:"maxLength,omitempty"`
	Pattern     string     `json:"pattern,omitempty"`
	Minimum     *float64   `json:"minimum,omitempty"`
	Maximum     *float64   `json:"maximum,omitempty"`
	AnyOf       []Property `json:"anyOf,omitempty"`
}

// Object is an ordered flat object schema: the properties/required pair a
// JSON-Schema object declares. Property order is declaration order and is
// user-visible (it becomes the form's tab order), which is why Properties is
// an ordered map rather than a plain one.
type Object struct {
	Type       string                                   `json:"type,omitempty"`
	Properties *orderedmap.OrderedMap[string, Property] `json:"properties"`
	Required   []string                                 `json:"required,omitempty"`
}

// ParseObject unmarshals a JSON object schema, preserving property
// declaration order.
func ParseObject(raw []byte) (Object, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return Object{}, errors.New("schema: empty document")
	}
	var obj Object
	if err := json.Unmarshal(raw, &obj); err != nil {
		return Object{}, fmt.Errorf("schema: parse object: %w", err)
	}
	if obj.Type != "" && obj.Type != "object" {
		return Object{}, fmt.Errorf("schema: root type must be object, got %q", obj.Type)
	}
	if obj.Properties == nil {
		obj.Properties = orderedmap.New[string, Property]()
	}
	return obj, nil
}

// Fields builds the ordered field specifications for the object.
func (o Object) Fields() ([]FieldSpec, error) {
	return Build(o.Properties, o.Required)
}
