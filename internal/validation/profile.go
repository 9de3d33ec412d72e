package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/julianstephens/classlog/internal/models"
	"github.com/julianstephens/classlog/internal/utils"
)

var (
	validate   *validator.Validate
	translator ut.Translator

	// custom validation tags
	hhmmTag = "hhmm"
)

func init() {
	validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Report fields by their JSON names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(hhmmTag, hhmmValidation)
	_ = validate.RegisterTranslation(hhmmTag, translator,
		func(ut.Translator) error { return nil },
		func(_ ut.Translator, fe validator.FieldError) string {
			return fmt.Sprintf("%s must be a time in HH:MM format", fe.Field())
		},
	)
}

func hhmmValidation(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	return ok && utils.ValidateTimeFormat(s)
}

// ValidateProfile checks field formats of the user document: HH:MM times,
// residence and course types, semester numbers and dates.
func (v *Validator) ValidateProfile(doc models.UserDocument) ValidationResult {
	return validateStruct(doc)
}

// ValidateHealth checks that health metrics are inside plausible ranges.
func (v *Validator) ValidateHealth(h models.HealthMetricEntry) ValidationResult {
	return validateStruct(h)
}

func validateStruct(s any) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	err := validate.Struct(s)
	if err == nil {
		return result
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		result.add(Conflict{
			Type:        ConflictInvalidField,
			Description: err.Error(),
		})
		return result
	}

	for _, fe := range verrs {
		path := fieldPath(fe.Namespace())
		result.add(Conflict{
			Type:        ConflictInvalidField,
			Description: fmt.Sprintf("%s: %s", path, fe.Translate(translator)),
			Items:       []string{path},
		})
	}
	return result
}

// fieldPath drops the root struct and embedded struct names from a
// validator namespace.
func fieldPath(ns string) string {
	parts := strings.Split(ns, ".")
	out := parts[:0]
	for i, p := range parts {
		if i == 0 || p == "ScheduleProfile" {
			continue
		}
		out = append(out, p)
	}
	return strings.Join(out, ".")
}
