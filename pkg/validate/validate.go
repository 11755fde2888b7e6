// Package validate provides struct-tag validation for request payloads.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required            field must not be zero/empty
//	nullable            if empty, skip all remaining rules for this field
//	email               valid email address
//	url                 valid URL (http/https)
//	numeric             any number
//	boolean             "true","false","1","0" (or actual bool)
//	date                parseable date (common layouts tried)
//	min=N               string: min char length | number: min value
//	max=N               string: max char length | number: max value
//	gt=N                number > N
//	gte=N               number >= N
//	lte=N               number <= N
//	in=a,b,c            value must be one of the listed items
//
// Example:
//
//	type Input struct {
//	    Name   string  `json:"name"   validate:"required,min=2,max=100"`
//	    Email  string  `json:"email"  validate:"required,email"`
//	    Amount float64 `json:"amount" validate:"required,gt=0"`
//	}
package validate

import (
	"fmt"
	"net/mail"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Struct validates all exported fields of v that carry a `validate` tag.
// Returns a map of fieldName → error message; empty map means no errors.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		value := rv.Field(i)

		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}

		name := jsonFieldName(field)
		rules := strings.Split(tag, ",")

		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		for _, rule := range rules {
			rule = strings.TrimSpace(rule)
			if rule == "" || rule == "nullable" {
				continue
			}
			if msg := applyRule(rule, name, value); msg != "" {
				errs[name] = msg
				break // first failing rule per field
			}
		}
	}

	return errs
}

// HasErrors reports whether the errs map is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

func applyRule(rule, field string, v reflect.Value) string {
	raw := fmt.Sprintf("%v", v.Interface())
	key, param, _ := strings.Cut(rule, "=")

	switch key {
	case "required":
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}

	case "email":
		if _, err := mail.ParseAddress(raw); err != nil {
			return fmt.Sprintf("The %s field must be a valid email address.", field)
		}

	case "url":
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Sprintf("The %s field must be a valid URL.", field)
		}

	case "numeric":
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return fmt.Sprintf("The %s field must be a number.", field)
		}

	case "boolean":
		switch strings.ToLower(raw) {
		case "true", "false", "1", "0":
		default:
			return fmt.Sprintf("The %s field must be a boolean.", field)
		}

	case "date":
		if !parseableDate(raw) {
			return fmt.Sprintf("The %s field must be a valid date.", field)
		}

	case "min":
		if msg := boundCheck(field, v, raw, param, ">="); msg != "" {
			return msg
		}

	case "max":
		if msg := boundCheck(field, v, raw, param, "<="); msg != "" {
			return msg
		}

	case "gt":
		if msg := numericCompare(field, raw, param, ">"); msg != "" {
			return msg
		}

	case "gte":
		if msg := numericCompare(field, raw, param, ">="); msg != "" {
			return msg
		}

	case "lte":
		if msg := numericCompare(field, raw, param, "<="); msg != "" {
			return msg
		}

	case "in":
		for _, option := range strings.Split(param, ",") {
			if raw == option {
				return ""
			}
		}
		return fmt.Sprintf("The %s field must be one of: %s.", field, param)
	}

	return ""
}

// boundCheck applies min/max: character length for strings, value for numbers.
func boundCheck(field string, v reflect.Value, raw, param, op string) string {
	limit, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return ""
	}

	var val float64
	if v.Kind() == reflect.String {
		val = float64(len([]rune(v.String())))
	} else if n, err := strconv.ParseFloat(raw, 64); err == nil {
		val = n
	} else {
		return fmt.Sprintf("The %s field must be a number.", field)
	}

	if op == ">=" && val < limit {
		return fmt.Sprintf("The %s field must be at least %s.", field, param)
	}
	if op == "<=" && val > limit {
		return fmt.Sprintf("The %s field may not be greater than %s.", field, param)
	}
	return ""
}

func numericCompare(field, raw, param, op string) string {
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Sprintf("The %s field must be a number.", field)
	}
	limit, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return ""
	}

	ok := false
	switch op {
	case ">":
		ok = val > limit
	case ">=":
		ok = val >= limit
	case "<=":
		ok = val <= limit
	}
	if !ok {
		return fmt.Sprintf("The %s field must be %s %s.", field, op, param)
	}
	return ""
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
}

func parseableDate(raw string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, raw); err == nil {
			return true
		}
	}
	return false
}

func hasRule(rules []string, name string) bool {
	for _, r := range rules {
		if strings.TrimSpace(r) == name {
			return true
		}
	}
	return false
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}

// jsonFieldName returns the json tag name of the field, falling back to
// the Go field name.
func jsonFieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return field.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return field.Name
	}
	return name
}
