package validation

import (
	"errors"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/corray333/backend-labs/storefront/internal/service/models/order"
)

const (
	minNameLength    = 2
	minAddressLength = 5
	postalPrefixLen  = 4
)

var (
	ErrRequired            = errors.New("this field is required")
	ErrInvalidEmail        = errors.New("invalid email address")
	ErrInvalidPhone        = errors.New("invalid phone number")
	ErrOutsideDeliveryZone = errors.New("we only deliver within Den Haag")
	ErrUnknownField        = errors.New("unknown field")
)

var (
	emailRe     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	dutchPhone  = regexp.MustCompile(`^(\+31|0031|0)[1-9][0-9]{8}$`)
	intlPhone   = regexp.MustCompile(`^\+?[0-9]{10,14}$`)
	phoneFiller = strings.NewReplacer(" ", "", "\t", "", "-", "", "(", "", ")", "")
)

// Field names a validated customer field.
type Field string

const (
	FieldName       Field = "name"
	FieldEmail      Field = "email"
	FieldPhone      Field = "phone"
	FieldAddress    Field = "address"
	FieldPostalCode Field = "postalCode"
)

func ParseField(s string) (Field, error) {
	f := Field(s)
	if slices.Contains(RequiredFields(order.DeliveryTypeDelivery), f) {
		return f, nil
	}

	return "", fmt.Errorf("%w %q", ErrUnknownField, s)
}

// RequiredFields lists the fields checked for the delivery type.
func RequiredFields(deliveryType order.DeliveryType) []Field {
	if deliveryType == order.DeliveryTypePickup {
		return []Field{FieldName, FieldEmail, FieldPhone}
	}

	return []Field{FieldName, FieldEmail, FieldPhone, FieldAddress, FieldPostalCode}
}

// Errors maps each invalid field to its reason.
type Errors map[Field]error

func (e Errors) Error() string {
	fields := slices.Sorted(maps.Keys(e))
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %v", f, e[f]))
	}

	return strings.Join(parts, "; ")
}

// Messages renders the errors as plain strings keyed by field name.
func (e Errors) Messages() map[string]string {
	out := make(map[string]string, len(e))
	for f, err := range e {
		out[string(f)] = err.Error()
	}

	return out
}

func ValidateEmail(value string) error {
	if !emailRe.MatchString(value) {
		return ErrInvalidEmail
	}

	return nil
}

func ValidatePhone(value string) error {
	cleaned := phoneFiller.Replace(value)
	if dutchPhone.MatchString(cleaned) || intlPhone.MatchString(cleaned) {
		return nil
	}

	return ErrInvalidPhone
}

// ValidatePostalCode checks the code against the default delivery zone.
func ValidatePostalCode(value string) error {
	return DefaultZone.Validate(value)
}

func ValidateName(value string) error {
	if utf8.RuneCountInString(strings.TrimSpace(value)) < minNameLength {
		return ErrRequired
	}

	return nil
}

func ValidateAddress(value string) error {
	if utf8.RuneCountInString(strings.TrimSpace(value)) < minAddressLength {
		return ErrRequired
	}

	return nil
}

// ValidateField validates a single field. Address and postal code always
// pass for pickup orders.
func ValidateField(field Field, c order.CustomerInfo, deliveryType order.DeliveryType) error {
	switch field {
	case FieldName:
		return ValidateName(c.Name)
	case FieldEmail:
		return ValidateEmail(c.Email)
	case FieldPhone:
		return ValidatePhone(c.Phone)
	case FieldAddress:
		if deliveryType == order.DeliveryTypePickup {
			return nil
		}

		return ValidateAddress(c.Address)
	case FieldPostalCode:
		if deliveryType == order.DeliveryTypePickup {
			return nil
		}
		if strings.TrimSpace(c.PostalCode) == "" {
			return ErrRequired
		}

		return ValidatePostalCode(c.PostalCode)
	default:
		return nil
	}
}

// ValidateCustomer validates every field required for the delivery type.
// It returns nil when the form is valid.
func ValidateCustomer(c order.CustomerInfo, deliveryType order.DeliveryType) Errors {
	var errs Errors
	for _, f := range RequiredFields(deliveryType) {
		if err := ValidateField(f, c, deliveryType); err != nil {
			if errs == nil {
				errs = Errors{}
			}
			errs[f] = err
		}
	}

	return errs
}
