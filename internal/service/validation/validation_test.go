package validation

import (
	"errors"
	"testing"

	"github.com/corray333/backend-labs/storefront/internal/service/models/order"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"simple", "a@b.com", true},
		{"subdomain", "jan.jansen@mail.example.nl", true},
		{"missing tld", "a@b", false},
		{"missing at", "ab.com", false},
		{"whitespace", "a b@c.com", false},
		{"two ats", "a@b@c.com", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.value)
			if tt.valid && err != nil {
				t.Errorf("ValidateEmail(%q) = %v, want nil", tt.value, err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidEmail) {
				t.Errorf("ValidateEmail(%q) = %v, want ErrInvalidEmail", tt.value, err)
			}
		})
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"dutch mobile", "0612345678", true},
		{"dutch with country code", "+31612345678", true},
		{"dutch with 0031", "0031703462789", true},
		{"formatted landline", "+31 70 346 2789", true},
		{"parentheses and hyphens", "(070) 346-2789", true},
		{"international", "+442071234567", true},
		{"nine digits", "123456789", false},
		{"too short", "12345", false},
		{"letters", "06-ABCDEFGH", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePhone(tt.value)
			if tt.valid && err != nil {
				t.Errorf("ValidatePhone(%q) = %v, want nil", tt.value, err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidPhone) {
				t.Errorf("ValidatePhone(%q) = %v, want ErrInvalidPhone", tt.value, err)
			}
		})
	}
}

func TestValidatePostalCode(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"inside zone", "2562 HD", true},
		{"restaurant district", "2514CG", true},
		{"lowercase and spaces", " 2514 cg ", true},
		{"prefix only", "2597", true},
		{"amsterdam", "1000 AB", false},
		{"gap between ranges", "2499 AA", false},
		{"too short", "25", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePostalCode(tt.value)
			if tt.valid && err != nil {
				t.Errorf("ValidatePostalCode(%q) = %v, want nil", tt.value, err)
			}
			if !tt.valid && !errors.Is(err, ErrOutsideDeliveryZone) {
				t.Errorf("ValidatePostalCode(%q) = %v, want ErrOutsideDeliveryZone", tt.value, err)
			}
		})
	}
}

func TestValidateNameAndAddress(t *testing.T) {
	if err := ValidateName(" J "); !errors.Is(err, ErrRequired) {
		t.Errorf("ValidateName single char = %v, want ErrRequired", err)
	}
	if err := ValidateName("Jo"); err != nil {
		t.Errorf("ValidateName(Jo) = %v, want nil", err)
	}
	if err := ValidateAddress("Str "); !errors.Is(err, ErrRequired) {
		t.Errorf("ValidateAddress short = %v, want ErrRequired", err)
	}
	if err := ValidateAddress("Denneweg 10A"); err != nil {
		t.Errorf("ValidateAddress = %v, want nil", err)
	}
}

func TestValidateCustomer(t *testing.T) {
	valid := order.CustomerInfo{
		Name:       "Eleni",
		Email:      "eleni@example.com",
		Phone:      "0612345678",
		Address:    "Denneweg 10A",
		PostalCode: "2514 CG",
		City:       "Den Haag",
	}

	t.Run("valid delivery", func(t *testing.T) {
		if errs := ValidateCustomer(valid, order.DeliveryTypeDelivery); errs != nil {
			t.Errorf("unexpected errors: %v", errs)
		}
	})

	t.Run("pickup ignores address", func(t *testing.T) {
		c := valid
		c.Address = ""
		c.PostalCode = "1000 AB"
		if errs := ValidateCustomer(c, order.DeliveryTypePickup); errs != nil {
			t.Errorf("unexpected errors: %v", errs)
		}
	})

	t.Run("delivery reports every bad field", func(t *testing.T) {
		c := order.CustomerInfo{Name: "E", Email: "a@b", Phone: "1", Address: "", PostalCode: "1000 AB"}
		errs := ValidateCustomer(c, order.DeliveryTypeDelivery)
		want := map[Field]error{
			FieldName:       ErrRequired,
			FieldEmail:      ErrInvalidEmail,
			FieldPhone:      ErrInvalidPhone,
			FieldAddress:    ErrRequired,
			FieldPostalCode: ErrOutsideDeliveryZone,
		}
		if len(errs) != len(want) {
			t.Fatalf("got %d errors, want %d: %v", len(errs), len(want), errs)
		}
		for f, w := range want {
			if !errors.Is(errs[f], w) {
				t.Errorf("field %s: got %v, want %v", f, errs[f], w)
			}
		}
	})

	t.Run("empty postal code is required", func(t *testing.T) {
		c := valid
		c.PostalCode = "  "
		errs := ValidateCustomer(c, order.DeliveryTypeDelivery)
		if !errors.Is(errs[FieldPostalCode], ErrRequired) {
			t.Errorf("postal code: got %v, want ErrRequired", errs[FieldPostalCode])
		}
	})
}

func TestParseField(t *testing.T) {
	if _, err := ParseField("postalCode"); err != nil {
		t.Errorf("ParseField(postalCode) = %v", err)
	}
	if _, err := ParseField("city"); err == nil {
		t.Error("ParseField(city) should fail")
	}
}
