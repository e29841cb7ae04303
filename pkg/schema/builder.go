package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/goliatone/go-elicit/pkg/validate"
)

// multilineThreshold mirrors the display heuristic for long text fields:
// anything allowed to exceed it is edited in a multiline buffer.
const multilineThreshold = 100

// formatTextArea forces a multiline buffer without implying validation.
const formatTextArea = "textarea"

var validatedFormats = map[string]struct{}{
	validate.FormatEmail:    {},
	validate.FormatURI:      {},
	validate.FormatDate:     {},
	validate.FormatDateTime: {},
}

// Build translates an ordered property set and its required-name list into
// field specifications. It is a pure function: inputs are not mutated and
// identical inputs yield identical output, in property declaration order.
func Build(props *orderedmap.OrderedMap[string, Property], required []string) ([]FieldSpec, error) {
	reqSet := make(map[string]struct{}, len(required))
	for _, name := range required {
		reqSet[name] = struct{}{}
	}

	if props == nil {
		return []FieldSpec{}, nil
	}
	specs := make([]FieldSpec, 0, props.Len())
	for pair := props.Oldest(); pair != nil; pair = pair.Next() {
		_, req := reqSet[pair.Key]
		spec, err := buildField(pair.Key, pair.Value, req)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func buildField(name string, prop Property, required bool) (FieldSpec, error) {
	eff := flatten(prop)

	spec := FieldSpec{
		Name:        name,
		Required:    required,
		Title:       eff.Title,
		Description: eff.Description,
	}

	if eff.Enum != nil && len(eff.Enum) == 0 {
		return FieldSpec{}, fmt.Errorf("%w: field %q declares an empty enum", ErrInvalidConstraint, name)
	}

	typ := eff.Type
	if typ == "" {
		// Untyped properties are treated as strings, matching the
		// elicitation schema subset.
		typ = "string"
	}

	var err error
	switch {
	case typ == "string" && len(eff.Enum) > 0:
		err = buildEnum(&spec, name, eff)
	case typ == "string":
		err = buildString(&spec, name, eff)
	case typ == "integer":
		err = buildNumeric(&spec, name, eff, KindInteger)
	case typ == "number":
		err = buildNumeric(&spec, name, eff, KindNumber)
	case typ == "boolean":
		err = buildBoolean(&spec, name, eff)
	default:
		err = fmt.Errorf("%w: field %q has type %q", ErrUnsupportedType, name, typ)
	}
	if err != nil {
		return FieldSpec{}, err
	}
	return spec, nil
}

func buildString(spec *FieldSpec, name string, eff Property) error {
	spec.Kind = KindString

	var c validate.Constraints
	if eff.MinLength != nil {
		if *eff.MinLength < 0 {
			return fmt.Errorf("%w: field %q minLength is negative", ErrInvalidConstraint, name)
		}
		v := *eff.MinLength
		c.MinLength = &v
	}
	if eff.MaxLength != nil {
		v := *eff.MaxLength
		c.MaxLength = &v
	}
	if c.MinLength != nil && c.MaxLength != nil && *c.MinLength > *c.MaxLength {
		return fmt.Errorf("%w: field %q minLength %d exceeds maxLength %d", ErrInvalidConstraint, name, *c.MinLength, *c.MaxLength)
	}
	if eff.Pattern != "" {
		re, err := regexp.Compile(eff.Pattern)
		if err != nil {
			return fmt.Errorf("%w: field %q pattern: %v", ErrInvalidConstraint, name, err)
		}
		c.Pattern = re
	}
	if _, ok := validatedFormats[eff.Format]; ok {
		c.Format = eff.Format
	}
	spec.Constraints = c
	spec.Multiline = eff.Format == formatTextArea ||
		(c.MaxLength != nil && *c.MaxLength > multilineThreshold)

	if eff.Default != nil {
		s, ok := eff.Default.(string)
		if !ok {
			return fmt.Errorf("%w: field %q default %v is not a string", ErrInvalidDefault, name, eff.Default)
		}
		if err := validate.String(s, c); err != nil {
			return fmt.Errorf("%w: field %q: %v", ErrInvalidDefault, name, err)
		}
		spec.Default = s
	}
	return nil
}

func buildNumeric(spec *FieldSpec, name string, eff Property, kind Kind) error {
	spec.Kind = kind

	var c validate.Constraints
	if eff.Minimum != nil {
		v := *eff.Minimum
		c.Minimum = &v
	}
	if eff.Maximum != nil {
		v := *eff.Maximum
		c.Maximum = &v
	}
	if c.Minimum != nil && c.Maximum != nil && *c.Minimum > *c.Maximum {
		return fmt.Errorf("%w: field %q minimum %v exceeds maximum %v", ErrInvalidConstraint, name, *c.Minimum, *c.Maximum)
	}
	spec.Constraints = c

	if eff.Default != nil {
		f, ok := toFloat(eff.Default)
		if !ok {
			return fmt.Errorf("%w: field %q default %v is not numeric", ErrInvalidDefault, name, eff.Default)
		}
		if kind == KindInteger {
			if f != math.Trunc(f) {
				return fmt.Errorf("%w: field %q default %v is not an integer", ErrInvalidDefault, name, eff.Default)
			}
			if _, err := validate.Integer(strconv.FormatInt(int64(f), 10), c); err != nil {
				return fmt.Errorf("%w: field %q: %v", ErrInvalidDefault, name, err)
			}
			spec.Default = int64(f)
		} else {
			if _, err := validate.Number(strconv.FormatFloat(f, 'g', -1, 64), c); err != nil {
				return fmt.Errorf("%w: field %q: %v", ErrInvalidDefault, name, err)
			}
			spec.Default = f
		}
	}
	return nil
}

func buildBoolean(spec *FieldSpec, name string, eff Property) error {
	spec.Kind = KindBoolean
	if eff.Default != nil {
		b, ok := eff.Default.(bool)
		if !ok {
			return fmt.Errorf("%w: field %q default %v is not a boolean", ErrInvalidDefault, name, eff.Default)
		}
		spec.Default = b
	}
	return nil
}

func buildEnum(spec *FieldSpec, name string, eff Property) error {
	spec.Kind = KindEnum

	choices := make([]string, 0, len(eff.Enum))
	seen := make(map[string]struct{}, len(eff.Enum))
	for _, v := range eff.Enum {
		s := fmt.Sprint(v)
		if _, dup := seen[s]; dup {
			return fmt.Errorf("%w: field %q duplicates enum choice %q", ErrInvalidConstraint, name, s)
		}
		seen[s] = struct{}{}
		choices = append(choices, s)
	}
	spec.Constraints = validate.Constraints{Choices: choices}

	if len(eff.EnumNames) == len(choices) {
		spec.ChoiceLabels = append([]string(nil), eff.EnumNames...)
	}

	if eff.Default != nil {
		s := fmt.Sprint(eff.Default)
		if _, err := validate.Enum(s, spec.Constraints); err != nil {
			return fmt.Errorf("%w: field %q: %v", ErrInvalidDefault, name, err)
		}
		spec.Default = s
	}
	return nil
}

// flatten lifts type, default, and constraints out of anyOf variants, the
// shape optional fields take when schemas come from Optional[...] models.
func flatten(p Property) Property {
	if len(p.AnyOf) == 0 {
		return p
	}
	eff := p
	for _, variant := range p.AnyOf {
		if variant.Type == "" || variant.Type == "null" {
			continue
		}
		if eff.Type == "" {
			eff.Type = variant.Type
		}
		if variant.Type != eff.Type {
			continue
		}
		if eff.MinLength == nil {
			eff.MinLength = variant.MinLength
		}
		if eff.MaxLength == nil {
			eff.MaxLength = variant.MaxLength
		}
		if eff.Pattern == "" {
			eff.Pattern = variant.Pattern
		}
		if eff.Format == "" {
			eff.Format = variant.Format
		}
		if eff.Minimum == nil {
			eff.Minimum = variant.Minimum
		}
		if eff.Maximum == nil {
			eff.Maximum = variant.Maximum
		}
		if len(eff.Enum) == 0 {
			eff.Enum = variant.Enum
			eff.EnumNames = variant.EnumNames
		}
		break
	}
	if eff.Default == nil {
		for _, variant := range p.AnyOf {
			if variant.Default != nil {
				eff.Default = variant.Default
				break
			}
		}
	}
	return eff
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
