package figref

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

var (
	// ErrInvalidDefinition occurs when a directive definition fails schema
	// validation.
	ErrInvalidDefinition = errors.New("figref: invalid directive definition")
	// ErrUnknownParameter indicates an invocation supplied an unexpected
	// parameter.
	ErrUnknownParameter = errors.New("figref: unknown parameter")
	// ErrMissingParameter indicates a required parameter was not provided.
	ErrMissingParameter = errors.New("figref: missing required parameter")
	// ErrParameterType indicates a parameter could not be coerced to the
	// declared type.
	ErrParameterType = errors.New("figref: parameter type mismatch")
)

// Validator performs directive definition and parameter validation.
type Validator struct{}

// NewValidator returns a Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateDefinition ensures the definition carries a name, a handler, and a
// well-formed parameter schema.
func (v *Validator) ValidateDefinition(def DirectiveDefinition) error {
	if strings.TrimSpace(def.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidDefinition)
	}
	if def.Handler == nil {
		return fmt.Errorf("%w: directive %q has no handler", ErrInvalidDefinition, def.Name)
	}

	seen := make(map[string]struct{})
	for _, param := range def.Schema.Params {
		name := strings.TrimSpace(param.Name)
		if name == "" {
			return fmt.Errorf("%w: schema parameter name required", ErrInvalidDefinition)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: duplicate schema parameter %q", ErrInvalidDefinition, name)
		}
		seen[name] = struct{}{}

		switch param.Type {
		case DirectiveParamString, DirectiveParamInt, DirectiveParamBool, DirectiveParamURL:
			// Valid types
		default:
			return fmt.Errorf("%w: parameter %q unknown type %q", ErrInvalidDefinition, name, param.Type)
		}
	}

	for _, name := range def.Schema.Positional {
		if _, ok := seen[name]; !ok {
			return fmt.Errorf("%w: positional parameter %q not in schema", ErrInvalidDefinition, name)
		}
	}

	return nil
}

// CoerceParams validates supplied parameters against the definition schema
// and returns a normalised map. Positional arguments ("param1", "param2", …)
// are mapped onto the schema's positional names first; named arguments win
// when both forms supply the same parameter.
func (v *Validator) CoerceParams(def DirectiveDefinition, supplied map[string]any) (map[string]any, error) {
	named, err := resolvePositional(def, supplied)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(def.Schema.Params))
	allowed := make(map[string]DirectiveParam, len(def.Schema.Params))
	for _, param := range def.Schema.Params {
		allowed[param.Name] = param
		if param.Default != nil {
			out[param.Name] = param.Default
		}
	}

	for key, value := range named {
		param, ok := allowed[key]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownParameter, key)
		}
		coerced, err := coerceValue(param.Type, value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %v", ErrParameterType, key, err)
		}
		if param.Validate != nil {
			if err := param.Validate(coerced); err != nil {
				return nil, err
			}
		}
		out[key] = coerced
	}

	for _, param := range def.Schema.Params {
		if param.Required {
			if _, ok := out[param.Name]; !ok {
				return nil, fmt.Errorf("%w: %s", ErrMissingParameter, param.Name)
			}
		}
	}

	return out, nil
}

// resolvePositional rewrites "paramN" keys produced by the parser onto the
// schema's positional parameter names.
func resolvePositional(def DirectiveDefinition, supplied map[string]any) (map[string]any, error) {
	named := make(map[string]any, len(supplied))
	for key, value := range supplied {
		idx, ok := positionalIndex(key)
		if !ok {
			named[key] = value
			continue
		}
		if idx > len(def.Schema.Positional) {
			return nil, fmt.Errorf("%w: positional argument %d not accepted by %q", ErrUnknownParameter, idx, def.Name)
		}
		target := def.Schema.Positional[idx-1]
		if _, exists := supplied[target]; exists {
			continue
		}
		named[target] = value
	}
	return named, nil
}

func positionalIndex(key string) (int, bool) {
	rest, ok := strings.CutPrefix(key, "param")
	if !ok {
		return 0, false
	}
	idx, err := strconv.Atoi(rest)
	if err != nil || idx < 1 {
		return 0, false
	}
	return idx, true
}

func coerceValue(paramType DirectiveParamType, value any) (any, error) {
	switch paramType {
	case DirectiveParamString:
		return coerceString(value), nil
	case DirectiveParamInt:
		return coerceInt(value)
	case DirectiveParamBool:
		return coerceBool(value)
	case DirectiveParamURL:
		urlStr := coerceString(value)
		if _, err := url.ParseRequestURI(urlStr); err != nil {
			// Relative asset paths are common in authoring workflows.
			if _, relErr := url.Parse(urlStr); relErr != nil {
				return nil, relErr
			}
		}
		return urlStr, nil
	default:
		return nil, fmt.Errorf("unsupported parameter type %q", paramType)
	}
}

func coerceString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", value)
	}
}

func coerceInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, err
		}
		return i, nil
	default:
		return 0, fmt.Errorf("cannot convert %T to int", value)
	}
}

func coerceBool(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true, nil
		case "0", "false", "f", "no", "n", "off":
			return false, nil
		default:
			return false, fmt.Errorf("cannot convert %q to bool", v)
		}
	default:
		return false, fmt.Errorf("cannot convert %T to bool", value)
	}
}
