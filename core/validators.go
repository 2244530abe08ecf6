package core

import (
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	// custom validation tags
	DateTimeTag = "datetime_any"

	// accepted date-time layouts, most specific first
	DateTimeLayouts = []string{
		time.RFC3339,
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		"2006-01-02",
	}

	// {tag: text}; {0} is replaced by the tag param
	fieldTexts = map[string]string{
		"required":  "this field is required",
		"min":       "must be at least {0} characters",
		"max":       "must be at most {0} characters",
		"gte":       "must be {0} or more",
		"lte":       "must be {0} or less",
		"oneof":     "must be one of [{0}]",
		"email":     "must be a valid email address",
		"number":    "must be a whole number",
		"eqcsfield": "does not match",
		DateTimeTag: "must be a valid date-time",
	}
)

// NewValidator instantiates a validator with its english translator.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	InitValidators(validate, translator)
	return validate, translator
}

// InitValidators registers the custom validators and the field error texts.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// register custom validators
	_ = validate.RegisterValidation(DateTimeTag, dateTimeValidation)

	for tag, text := range fieldTexts {
		RegisterCustomTranslation(validate, translator, tag, text, true)
	}
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, strings.ReplaceAll(fe.Param(), " ", ", "))
			return s
		},
	)
}

// ParseDateTime parses `s` with the first matching layout of DateTimeLayouts.
func ParseDateTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range DateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Custom Global Validators

func dateTimeValidation(fl validator.FieldLevel) bool {
	_, ok := ParseDateTime(fl.Field().String())
	return ok
}
