package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jsamuelsen/portfolio/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("section", func(fl validator.FieldLevel) bool {
		return domain.SectionID(fl.Field().String()).Valid()
	})

	return v
}

// Validate checks the document's structure: section ids are known and
// unique, every section has copy, and skill levels lie in 0..100.
// All problems are reported together.
func Validate(doc *Document) error {
	var problems []string

	if err := validate.Struct(doc); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, e := range verrs {
			problems = append(problems, formatFieldError(e))
		}
	}

	present := make(map[domain.SectionID]bool, len(doc.Sections))
	for _, s := range doc.Sections {
		present[s.ID] = true
	}
	for _, s := range domain.Sections() {
		if !present[s.ID] {
			problems = append(problems, fmt.Sprintf("sections: missing %q", s.ID))
		}
	}

	if len(problems) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(problems, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := fieldPath(e.Namespace())

	switch e.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "unique":
		return fmt.Sprintf("%s must have unique %s values", field, e.Param())
	case "section":
		return fmt.Sprintf("%s: unknown section %q", field, e.Value())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, e.Tag())
	}
}

// fieldPath converts "Document.SkillCategories[0].Skills[2].Level" to
// "skillcategories[0].skills[2].level".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		namespace = rest
	}
	return strings.ToLower(namespace)
}
