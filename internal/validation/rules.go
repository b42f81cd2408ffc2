// Package validation implements the declarative per-route field rules and the
// translation of validator/v10 failures into the same {field, message} shape.
package validation

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// FieldError is a single validation failure reported to the caller.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// CheckFunc inspects one raw decoded value. present is false when the field
// was absent from the input entirely.
type CheckFunc func(v any, present bool) bool

// Rule is one declarative (field, check, message) triple.
type Rule struct {
	Field   string
	Check   CheckFunc
	Message string
}

// RuleSet is an ordered list of rules. Rules are evaluated in declaration
// order and every violation is collected, not just the first.
type RuleSet []Rule

// Apply evaluates the rule set against raw input values and returns all
// violations in rule order.
func (rs RuleSet) Apply(values map[string]any) []FieldError {
	var errs []FieldError
	for _, r := range rs {
		v, present := values[r.Field]
		if !r.Check(v, present) {
			errs = append(errs, FieldError{Field: r.Field, Message: r.Message})
		}
	}
	return errs
}

// Required passes for any present, non-null value except the empty string.
// Numeric zero counts as present.
func Required(v any, present bool) bool {
	if !present || v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// Numeric passes only for JSON numbers. A quoted number is a type violation
// here; the typed bind after the gate would reject it anyway, and the gate
// owns all field-level failures. An absent value fails, matching the original
// validator chain where the type check fires alongside the required check.
func Numeric(v any, present bool) bool {
	if !present {
		return false
	}
	_, ok := v.(float64)
	return ok
}

// Boolean passes only for JSON booleans, for the same reason Numeric rejects
// quoted numbers.
func Boolean(v any, present bool) bool {
	if !present {
		return false
	}
	_, ok := v.(bool)
	return ok
}

// Integer passes for values that are syntactically integers. Path parameters
// arrive as strings.
func Integer(v any, present bool) bool {
	if !present {
		return false
	}
	switch t := v.(type) {
	case string:
		_, err := strconv.Atoi(t)
		return err == nil
	case float64:
		return t == float64(int64(t))
	default:
		return false
	}
}

// MaxLen bounds string length in runes. Absent or non-string values pass;
// other rules own those failures.
func MaxLen(n int) CheckFunc {
	return func(v any, present bool) bool {
		s, ok := v.(string)
		if !present || !ok {
			return true
		}
		return utf8.RuneCountInString(s) <= n
	}
}

// GreaterThan passes only for numeric values strictly above min, so it fires
// for absent and non-numeric values too, like the original custom predicate.
func GreaterThan(min float64) CheckFunc {
	return func(v any, present bool) bool {
		f, ok := v.(float64)
		return present && ok && f > min
	}
}

// Optional skips the wrapped check when the field is absent or null.
func Optional(check CheckFunc) CheckFunc {
	return func(v any, present bool) bool {
		if !present || v == nil {
			return true
		}
		return check(v, present)
	}
}

// ProductIDRules guards the :id path parameter. A non-integer identifier is
// rejected before any lookup happens, distinguishing it from a 404.
var ProductIDRules = RuleSet{
	{Field: "id", Check: Integer, Message: "invalid identifier"},
}

// CreateProductRules validates the create payload. Availability may be
// omitted and defaults to true.
var CreateProductRules = RuleSet{
	{Field: "name", Check: Required, Message: "name must not be empty"},
	{Field: "name", Check: MaxLen(100), Message: "name must not exceed 100 characters"},
	{Field: "price", Check: Numeric, Message: "invalid value"},
	{Field: "price", Check: Required, Message: "price must not be empty"},
	{Field: "price", Check: GreaterThan(0), Message: "invalid price"},
	{Field: "availability", Check: Optional(Boolean), Message: "invalid availability value"},
}

// ReplaceProductRules validates the full-replace payload; availability is
// mandatory here.
var ReplaceProductRules = RuleSet{
	{Field: "name", Check: Required, Message: "name must not be empty"},
	{Field: "name", Check: MaxLen(100), Message: "name must not exceed 100 characters"},
	{Field: "price", Check: Numeric, Message: "invalid value"},
	{Field: "price", Check: Required, Message: "price must not be empty"},
	{Field: "price", Check: GreaterThan(0), Message: "invalid price"},
	{Field: "availability", Check: Boolean, Message: "invalid availability value"},
}

// Validator adapts go-playground/validator to echo's Validator interface for
// the typed auth DTOs. Field names come from json tags.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds the validator used by the echo instance.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// Translate converts a validator/v10 error into field errors, one per failing
// rule, so multi-field failures are reported at once.
func Translate(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Message: "invalid request body"}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: messageFor(fe)})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "invalid email"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	case "oneof":
		return "invalid " + fe.Field()
	default:
		return "invalid " + fe.Field()
	}
}
