package validator

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// ValidationError is a single failed field constraint. These are pure
// client-side form errors: they resolve in the UI and never reach a store
// or the network.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates all failed constraints of one struct.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether any error concerns the given field.
func (e ValidationErrors) Has(field string) bool {
	for _, ve := range e {
		if ve.Field == field {
			return true
		}
	}
	return false
}

// Rule pairs a check with the error it produces on failure.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// RuleFunc builds a Rule for a field value and rule parameters.
type RuleFunc func(field string, value reflect.Value, params []string) Rule

var (
	registryMu sync.RWMutex
	registry   = map[string]RuleFunc{
		"required": requiredRule,
		"min":      minRule,
		"max":      maxRule,
		"alphanum": alphanumRule,
		"in":       inRule,
	}
)

// Register adds a custom rule to the registry.
func Register(name string, fn RuleFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

// ValidateStruct validates a struct based on its `validate` field tags.
// Rules are separated by semicolon, parameters by colon and comma:
//
//	type Credentials struct {
//		Identifier string `validate:"required;min:3;max:64"`
//		Secret     string `validate:"required;min:8"`
//	}
//
// It returns nil or a ValidationErrors value.
func ValidateStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("validator: must pass a struct or pointer to struct")
	}

	var errs ValidationErrors
	rt := rv.Type()

	for i := 0; i < rv.NumField(); i++ {
		structField := rt.Field(i)
		tag := structField.Tag.Get("validate")
		if tag == "" || tag == "-" {
			continue
		}
		validateField(structField.Name, rv.Field(i), tag, &errs)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateField(field string, value reflect.Value, tag string, errs *ValidationErrors) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, ruleStr := range strings.Split(tag, ";") {
		ruleStr = strings.TrimSpace(ruleStr)
		if ruleStr == "" {
			continue
		}

		name, paramStr, _ := strings.Cut(ruleStr, ":")
		name = strings.TrimSpace(name)

		var params []string
		if paramStr != "" {
			params = strings.Split(paramStr, ",")
			for i := range params {
				params[i] = strings.TrimSpace(params[i])
			}
		}

		fn, ok := registry[name]
		if !ok {
			continue
		}
		if rule := fn(field, value, params); !rule.Check() {
			*errs = append(*errs, rule.Error)
		}
	}
}

// Built-in rules

func requiredRule(field string, value reflect.Value, _ []string) Rule {
	return Rule{
		Check: func() bool {
			switch value.Kind() {
			case reflect.String:
				return strings.TrimSpace(value.String()) != ""
			case reflect.Slice, reflect.Map, reflect.Array:
				return value.Len() > 0
			case reflect.Pointer, reflect.Interface:
				return !value.IsNil()
			default:
				return !value.IsZero()
			}
		},
		Error: ValidationError{Field: field, Message: "field is required"},
	}
}

func minRule(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 {
		return Rule{Check: func() bool { return true }}
	}

	switch value.Kind() {
	case reflect.String, reflect.Slice, reflect.Array:
		min, _ := strconv.Atoi(params[0])
		return Rule{
			Check: func() bool { return value.Len() >= min },
			Error: ValidationError{Field: field, Message: fmt.Sprintf("must be at least %d characters", min)},
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		min, _ := strconv.ParseInt(params[0], 10, 64)
		return Rule{
			Check: func() bool { return value.Int() >= min },
			Error: ValidationError{Field: field, Message: fmt.Sprintf("must be at least %d", min)},
		}
	default:
		return Rule{Check: func() bool { return true }}
	}
}

func maxRule(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 {
		return Rule{Check: func() bool { return true }}
	}

	switch value.Kind() {
	case reflect.String, reflect.Slice, reflect.Array:
		max, _ := strconv.Atoi(params[0])
		return Rule{
			Check: func() bool { return value.Len() <= max },
			Error: ValidationError{Field: field, Message: fmt.Sprintf("must be at most %d characters", max)},
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		max, _ := strconv.ParseInt(params[0], 10, 64)
		return Rule{
			Check: func() bool { return value.Int() <= max },
			Error: ValidationError{Field: field, Message: fmt.Sprintf("must be at most %d", max)},
		}
	default:
		return Rule{Check: func() bool { return true }}
	}
}

func alphanumRule(field string, value reflect.Value, _ []string) Rule {
	return Rule{
		Check: func() bool {
			if value.Kind() != reflect.String {
				return true
			}
			for _, r := range value.String() {
				if !isAlphanum(r) {
					return false
				}
			}
			return true
		},
		Error: ValidationError{Field: field, Message: "must contain only letters and digits"},
	}
}

func inRule(field string, value reflect.Value, params []string) Rule {
	return Rule{
		Check: func() bool {
			if value.Kind() != reflect.String {
				return true
			}
			s := value.String()
			if s == "" {
				return true
			}
			for _, p := range params {
				if s == p {
					return true
				}
			}
			return false
		},
		Error: ValidationError{Field: field, Message: fmt.Sprintf("must be one of: %s", strings.Join(params, ", "))},
	}
}

func isAlphanum(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}
