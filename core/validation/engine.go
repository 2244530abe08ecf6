// Package validation evaluates form inputs against declarative schema tables.
//
// A schema is data (see schemas.go); one generic Engine evaluates every schema,
// delegating the individual checks to go-playground/validator and the messages to its translator.
package validation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/classroom/core"
)

// Values holds raw form values keyed by field name.
type Values map[string]string

// Result is either accepted normalized values (OK) or field-scoped error messages.
type Result struct {
	OK     bool
	Value  Values
	Errors map[string]string

	schema SchemaName
	fields []core.FieldError
}

// Err returns nil when the result is OK, a *core.ValidationError otherwise.
func (r Result) Err() error {
	if r.OK {
		return nil
	}
	return core.NewValidationError(fmt.Errorf("invalid %s input", r.schema), r.fields...)
}

// Engine evaluates Values against the registered schemas.
type Engine struct {
	validate   *validator.Validate
	translator ut.Translator
}

// NewEngine returns an Engine running its checks on `validate` and its messages through `translator`.
func NewEngine(validate *validator.Validate, translator ut.Translator) *Engine {
	return &Engine{validate: validate, translator: translator}
}

// NewDefaultEngine returns an Engine backed by core.NewValidator.
func NewDefaultEngine() *Engine {
	return NewEngine(core.NewValidator())
}

// Validate evaluates `in` against the named schema.
// The error is only set for an unknown schema name; invalid input is reported through the Result.
func (e *Engine) Validate(name SchemaName, in Values) (Result, error) {
	schema, ok := Lookup(name)
	if !ok {
		return Result{}, fmt.Errorf("unknown schema %q", name)
	}
	return e.Check(name, schema, in), nil
}

// Check evaluates `in` against `schema`. Fields absent from the schema are dropped.
func (e *Engine) Check(name SchemaName, schema Schema, in Values) Result {
	res := Result{
		Value:  make(Values, len(schema)),
		Errors: make(map[string]string),
		schema: name,
	}
	for _, rule := range schema {
		val, msg := e.checkRule(rule, in[rule.Field], res.Value)
		if msg != "" {
			res.Errors[rule.Field] = msg
			res.fields = append(res.fields, core.FieldError{Field: rule.Field, Error: msg})
			continue
		}
		res.Value[rule.Field] = val
	}
	res.OK = len(res.fields) == 0
	if !res.OK {
		res.Value = nil
	}
	return res
}

// checkRule returns the normalized value or an error message.
func (e *Engine) checkRule(rule Rule, raw string, accepted Values) (string, string) {
	val := raw
	if rule.Raw {
		if rule.Lower {
			val = strings.ToLower(val)
		}
	} else {
		val = core.CleanString(val, rule.Lower)
	}
	if val == "" && rule.Default != "" {
		val = rule.Default
	}
	if val == "" {
		if rule.Required {
			return "", e.text("required")
		}
		return "", ""
	}

	switch rule.Kind {
	case KindInt:
		n, err := strconv.Atoi(val)
		if err != nil {
			return "", e.text("number")
		}
		tags := "gte=" + strconv.Itoa(rule.Min)
		if rule.Max > 0 {
			tags += ",lte=" + strconv.Itoa(rule.Max)
		}
		if msg := e.translate(e.validate.Var(n, tags)); msg != "" {
			return "", msg
		}
		val = strconv.Itoa(n)
	case KindDateTime:
		if msg := e.translate(e.validate.Var(val, core.DateTimeTag)); msg != "" {
			return "", msg
		}
		t, _ := core.ParseDateTime(val)
		val = t.Format(time.RFC3339)
	default:
		if tags := rule.stringTags(); tags != "" {
			if msg := e.translate(e.validate.Var(val, tags)); msg != "" {
				return "", msg
			}
		}
	}

	// a referenced field that failed its own rules reports the error; nothing to compare against
	if ref, ok := accepted[rule.EqField]; rule.EqField != "" && ok {
		if msg := e.translate(e.validate.VarWithValue(val, ref, "eqcsfield")); msg != "" {
			if rule.Message != "" {
				return "", rule.Message
			}
			return "", msg
		}
	}
	return val, ""
}

func (r Rule) stringTags() string {
	tags := make([]string, 0, 4)
	if r.Kind == KindEmail {
		tags = append(tags, "email")
	}
	if r.Min > 0 {
		tags = append(tags, "min="+strconv.Itoa(r.Min))
	}
	if r.Max > 0 {
		tags = append(tags, "max="+strconv.Itoa(r.Max))
	}
	if len(r.OneOf) > 0 {
		tags = append(tags, "oneof="+strings.Join(r.OneOf, " "))
	}
	return strings.Join(tags, ",")
}

// translate returns the message of the first failed check of `err`, or "" if err is nil.
func (e *Engine) translate(err error) string {
	if err == nil {
		return ""
	}
	if vErrs, ok := err.(validator.ValidationErrors); ok && len(vErrs) > 0 {
		return vErrs[0].Translate(e.translator)
	}
	return err.Error()
}

func (e *Engine) text(tag string) string {
	s, _ := e.translator.T(tag)
	return s
}
