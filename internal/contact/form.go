// Package contact implements the contact form: field state, honeypot gating
// and delivery through an external mail relay.
package contact

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Field names match the HTML form inputs.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
	FieldHoney   Field = "honey"
)

// Fields lists every form input in display order.
var Fields = []Field{FieldName, FieldEmail, FieldMessage, FieldHoney}

var ErrUnknownField = errors.New("unknown contact field")

// Form is the contact form state. Honey is the hidden honeypot input; a
// human never fills it.
type Form struct {
	Name    string `validate:"required"`
	Email   string `validate:"required,email"`
	Message string `validate:"required"`
	Honey   string
}

// Apply returns a copy of f with field set to value.
func (f Form) Apply(field Field, value string) (Form, error) {
	switch field {
	case FieldName:
		f.Name = value
	case FieldEmail:
		f.Email = value
	case FieldMessage:
		f.Message = value
	case FieldHoney:
		f.Honey = value
	default:
		return f, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return f, nil
}

// IsBot reports whether the honeypot was filled in.
func (f Form) IsBot() bool {
	return f.Honey != ""
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationErrors maps a field to a short user-facing problem.
type ValidationErrors map[Field]string

func (v ValidationErrors) Error() string {
	return fmt.Sprintf("contact form has %d invalid field(s)", len(v))
}

// Validate checks the visible fields. It returns nil or ValidationErrors.
func (f Form) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(ValidationErrors, len(verrs))
	for _, fe := range verrs {
		field := fieldFor(fe.StructField())
		switch fe.Tag() {
		case "required":
			out[field] = "This field is required."
		case "email":
			out[field] = "Enter a valid email address."
		default:
			out[field] = "Invalid value."
		}
	}
	return out
}

func fieldFor(structField string) Field {
	switch structField {
	case "Name":
		return FieldName
	case "Email":
		return FieldEmail
	case "Message":
		return FieldMessage
	default:
		return FieldHoney
	}
}
