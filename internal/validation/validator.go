package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

var emailRe = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Validator validates structs against `validate` tags
type Validator struct{}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate validates a struct
func (v *Validator) Validate(s interface{}) error {
	val := reflect.ValueOf(s)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		return fmt.Errorf("validate expects a struct")
	}

	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)
		tag := fieldType.Tag.Get("validate")

		if tag == "" {
			continue
		}

		if err := v.validateField(field, tag); err != nil {
			return fmt.Errorf("%s: %w", fieldType.Name, err)
		}
	}

	return nil
}

// validateField validates a single field
func (v *Validator) validateField(field reflect.Value, tag string) error {
	rules := strings.Split(tag, ",")

	for _, rule := range rules {
		parts := strings.SplitN(rule, "=", 2)
		ruleName := parts[0]
		arg := ""
		if len(parts) == 2 {
			arg = parts[1]
		}

		switch ruleName {
		case "required":
			if field.IsZero() {
				return fmt.Errorf("field is required")
			}

		case "email":
			if field.Kind() == reflect.String && field.String() != "" {
				if !emailRe.MatchString(field.String()) {
					return fmt.Errorf("invalid email format")
				}
			}

		case "min":
			n, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				continue
			}
			switch field.Kind() {
			case reflect.String:
				if float64(len(field.String())) < n {
					return fmt.Errorf("minimum length is %s", arg)
				}
			case reflect.Int, reflect.Int64:
				if float64(field.Int()) < n {
					return fmt.Errorf("minimum value is %s", arg)
				}
			case reflect.Float32, reflect.Float64:
				if field.Float() < n {
					return fmt.Errorf("minimum value is %s", arg)
				}
			}

		case "max":
			n, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				continue
			}
			switch field.Kind() {
			case reflect.String:
				if float64(len(field.String())) > n {
					return fmt.Errorf("maximum length is %s", arg)
				}
			case reflect.Int, reflect.Int64:
				if float64(field.Int()) > n {
					return fmt.Errorf("maximum value is %s", arg)
				}
			case reflect.Float32, reflect.Float64:
				if field.Float() > n {
					return fmt.Errorf("maximum value is %s", arg)
				}
			}

		case "gt":
			n, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				continue
			}
			switch field.Kind() {
			case reflect.Int, reflect.Int64:
				if float64(field.Int()) <= n {
					return fmt.Errorf("must be greater than %s", arg)
				}
			case reflect.Float32, reflect.Float64:
				if field.Float() <= n {
					return fmt.Errorf("must be greater than %s", arg)
				}
			}
		}
	}

	return nil
}
