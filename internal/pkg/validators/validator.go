package validators

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validator wraps a validator instance with English translations so that
// validation failures can be surfaced to end users verbatim.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

var (
	defaultValidator *Validator
	defaultErr       error
	defaultOnce      sync.Once
)

// Default returns the process-wide validator.
func Default() *Validator {
	defaultOnce.Do(func() {
		defaultValidator, defaultErr = New()
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("failed to initialize validator: %v", defaultErr))
	}
	return defaultValidator
}

// New creates a validator with English messages, label-aware field names and
// the custom rules of this package registered.
func New() (*Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(fieldLabel)

	locale := en.New()
	trans, _ := ut.New(locale, locale).GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("failed to register translations: %w", err)
	}

	if err := validate.RegisterValidation("localpath", LocalPathValidation); err != nil {
		return nil, fmt.Errorf("failed to register localpath validation: %w", err)
	}

	overrides := map[string]string{
		"required":  "{0} is required",
		"email":     "Please enter a valid email address",
		"eqfield":   "{0} does not match",
		"localpath": "{0} must be a relative path",
	}
	for tag, text := range overrides {
		if err := validate.RegisterTranslation(tag, trans, addTranslation(tag, text), translate(tag)); err != nil {
			return nil, fmt.Errorf("failed to register %s translation: %w", tag, err)
		}
	}

	return &Validator{validate: validate, trans: trans}, nil
}

// Struct validates s and returns validator.ValidationErrors on failure.
func (v *Validator) Struct(s any) error {
	return v.validate.Struct(s)
}

// Var validates a single value against tag.
func (v *Validator) Var(field any, tag string) error {
	return v.validate.Var(field, tag)
}

// Messages translates every field error in err, in field order.
func (v *Validator) Messages(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		if err == nil {
			return nil
		}
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, fieldErr.Translate(v.trans))
	}
	return messages
}

// FirstMessage returns the first translated message of err, or "" when err is nil.
func (v *Validator) FirstMessage(err error) string {
	messages := v.Messages(err)
	if len(messages) == 0 {
		return ""
	}
	return messages[0]
}

// FirstMessage is shorthand for Default().FirstMessage.
func FirstMessage(err error) string {
	return Default().FirstMessage(err)
}

// fieldLabel names fields by their `label` tag, then their json or form name.
func fieldLabel(field reflect.StructField) string {
	if label := field.Tag.Get("label"); label != "" {
		return label
	}
	for _, key := range []string{"json", "form"} {
		name := strings.SplitN(field.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return field.Name
}

func addTranslation(tag, text string) validator.RegisterTranslationsFunc {
	return func(trans ut.Translator) error {
		return trans.Add(tag, text, true)
	}
}

func translate(tag string) validator.TranslationFunc {
	return func(trans ut.Translator, fe validator.FieldError) string {
		msg, err := trans.T(tag, fe.Field())
		if err != nil {
			return fe.Error()
		}
		return msg
	}
}
