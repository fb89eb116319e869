// Package validate checks request bodies and reports every violated
// constraint as a "<field>-<Constraint>-<rule>" line.
//
// Rules come from `validate` struct tags understood by
// go-playground/validator. Each rule of a field is evaluated on its own so
// that a single field can report several violations (an empty title fails
// both notblank and its size bounds). A nil pointer field is absent: it
// fails notblank and required only.
package validate

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Error lists the violations of one request body, sorted.
type Error struct {
	Lines []string
}

func (e *Error) Error() string {
	return strings.Join(e.Lines, "\n")
}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return &Validator{v: v}
}

// Struct validates s, which must be a struct or a pointer to one. It
// returns nil or an *Error.
func (val *Validator) Struct(s any) error {
	rv := reflect.Indirect(reflect.ValueOf(s))
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("validate: expected struct, got %s", rv.Kind())
	}
	rt := rv.Type()

	seen := map[string]struct{}{}
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" || tag == "-" || !field.IsExported() {
			continue
		}
		name := fieldName(field)
		rules := strings.Split(tag, ",")
		fv := rv.Field(i)
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				if presenceRequired(rules) {
					seen[line(name, "notblank", rules)] = struct{}{}
				}
				continue
			}
			fv = fv.Elem()
		}
		for _, rule := range rules {
			if err := val.v.Var(fv.Interface(), rule); err != nil {
				if _, ok := err.(validator.ValidationErrors); !ok {
					return fmt.Errorf("validate %s: %w", name, err)
				}
				seen[line(name, rule, rules)] = struct{}{}
			}
		}
	}
	if len(seen) == 0 {
		return nil
	}

	lines := make([]string, 0, len(seen))
	for l := range seen {
		lines = append(lines, l)
	}
	sort.Strings(lines)
	return &Error{Lines: lines}
}

func fieldName(f reflect.StructField) string {
	if name, _, _ := strings.Cut(f.Tag.Get("json"), ","); name != "" && name != "-" {
		return name
	}
	return f.Name
}

func line(field, rule string, rules []string) string {
	tag, _, _ := strings.Cut(rule, "=")
	switch tag {
	case "notblank", "required":
		return field + "-NotBlank-must not be blank"
	case "min", "max":
		lo, hi := param(rules, "min"), param(rules, "max")
		switch {
		case lo != "" && hi != "":
			return fmt.Sprintf("%s-Size-size must be between %s and %s", field, lo, hi)
		case lo != "":
			return fmt.Sprintf("%s-Size-size must be at least %s", field, lo)
		default:
			return fmt.Sprintf("%s-Size-size must be at most %s", field, hi)
		}
	default:
		return fmt.Sprintf("%s-%s-must satisfy %s", field, strings.ToUpper(tag[:1])+tag[1:], rule)
	}
}

func presenceRequired(rules []string) bool {
	for _, r := range rules {
		if r == "notblank" || r == "required" {
			return true
		}
	}
	return false
}

func param(rules []string, tag string) string {
	for _, r := range rules {
		if name, value, ok := strings.Cut(r, "="); ok && name == tag {
			return value
		}
	}
	return ""
}
