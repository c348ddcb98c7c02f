package validator

import (
	"errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/enemamar/enemamar-api/shared/phone"
)

// Validator bundles a validator instance with an English translator so
// validation failures surface as user-facing messages.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// New creates a Validator with default English translations and the custom
// et_phone rule for Ethiopian phone number formats.
func New() (*Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, found := uni.GetTranslator("en")
	if !found {
		return nil, errors.New("english translator not found")
	}

	if err := entranslations.RegisterDefaultTranslations(validate, translator); err != nil {
		return nil, err
	}

	if err := validate.RegisterValidation("et_phone", func(fl validator.FieldLevel) bool {
		_, err := phone.Normalize(fl.Field().String())
		return err == nil
	}); err != nil {
		return nil, err
	}

	if err := validate.RegisterTranslation(
		"et_phone",
		translator,
		func(ut ut.Translator) error {
			return ut.Add("et_phone", "{0} must be a valid phone number (09XXXXXXXX or +251XXXXXXXXX)", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T("et_phone", fe.Field())
			return t
		},
	); err != nil {
		return nil, err
	}

	return &Validator{
		validate:   validate,
		translator: translator,
	}, nil
}

// Struct validates a payload struct and returns translated messages for
// every failing field, or nil when the payload is valid.
func (v *Validator) Struct(s any) []string {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, fieldErr.Translate(v.translator))
	}

	return messages
}
