package core

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	// custom validation tags & texts
	hhmmTag   = "hhmm"
	hhmmText  = "must be a 24h time in HH:MM format"
	hhmmRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

	weekdayTag  = "weekday"
	weekdayText = "must be a school day (monday..friday)"

	isodateTag   = "isodate"
	isodateText  = "must be a calendar date in YYYY-MM-DD format"
	isodateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	requiredTag  = "required"
	requiredText = "this field is required"

	weekdays = map[string]struct{}{
		"monday": {}, "tuesday": {}, "wednesday": {}, "thursday": {}, "friday": {},
	}
)

// InitValidators instantiates the shared validator and its translations.
func InitValidators() {
	Validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	Translator, _ = uni.GetTranslator("en")

	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	// Use JSON tag names for errors instead of Go struct names.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = Validate.RegisterValidation(hhmmTag, hhmmValidation)
	RegisterCustomTranslation(Validate, Translator, hhmmTag, hhmmText)

	_ = Validate.RegisterValidation(weekdayTag, weekdayValidation)
	RegisterCustomTranslation(Validate, Translator, weekdayTag, weekdayText)

	_ = Validate.RegisterValidation(isodateTag, isodateValidation)
	RegisterCustomTranslation(Validate, Translator, isodateTag, isodateText)

	RegisterCustomTranslation(Validate, Translator, requiredTag, requiredText, true)
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
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Custom Global Validators

func hhmmValidation(fl validator.FieldLevel) bool {
	return hhmmRegex.MatchString(fl.Field().String())
}

func weekdayValidation(fl validator.FieldLevel) bool {
	_, ok := weekdays[strings.ToLower(fl.Field().String())]
	return ok
}

func isodateValidation(fl validator.FieldLevel) bool {
	return isodateRegex.MatchString(fl.Field().String())
}
