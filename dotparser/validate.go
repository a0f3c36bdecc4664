package dotparser

import (
	"fmt"
	"strings"
)

// ValidateAttr checks an attribute name and raw value against the schema
// for the given entity kind. It returns nil on success; otherwise an
// *AttributeError describing the first violation. The value itself is never
// rewritten: the parser attaches the raw text unchanged.
func ValidateAttr(name string, kind EntityKind, value string, pos Position) error {
	spec, ok := schema[name]
	if !ok {
		return &AttributeError{
			ParseError: ParseError{
				Message: fmt.Sprintf("unknown attribute %q", name),
				Pos:     pos,
			},
			Kind: UnknownAttribute,
			Name: name,
		}
	}

	if spec.Kinds&kind == 0 {
		return &AttributeError{
			ParseError: ParseError{
				Message: fmt.Sprintf("attribute %q does not apply to %s entities", name, kind),
				Pos:     pos,
			},
			Kind: WrongEntityKind,
			Name: name,
		}
	}

	if err := checkValueType(spec.Type, value); err != nil {
		return &AttributeError{
			ParseError: ParseError{
				Message: fmt.Sprintf("attribute %q: %v", name, err),
				Pos:     pos,
				Cause:   err,
			},
			Kind: MalformedValue,
			Name: name,
		}
	}
	return nil
}

func checkValueType(typ ValueType, value string) error {
	switch typ {
	case TypeDouble:
		if !isNumeral(value) {
			return fmt.Errorf("value %q is not a numeral", value)
		}
	case TypeBool:
		switch strings.ToLower(value) {
		case "true", "false", "yes", "no":
		default:
			return fmt.Errorf("value %q is not a boolean", value)
		}
	case TypeColor, TypeColorList:
		// Full color-grammar validation is out of scope; require presence.
		if value == "" {
			return fmt.Errorf("color value must not be empty")
		}
	case TypeString, TypeLblString, TypeBoolOrString:
		// Any value, including empty, is acceptable.
	}
	return nil
}

// isNumeral reports whether s matches the numeral rule
// -?('.'[0-9]+ | [0-9]+('.'[0-9]*)?) exactly.
func isNumeral(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		return i > start && i == len(s)
	}
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == start {
		return false
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	return i == len(s)
}
