package penalty

import (
	"regexp"
	"strings"
)

var (
	nameRegexp     = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s]+$`)
	passportRegexp = regexp.MustCompile(`^[0-9]{1,12}$`)
)

// ValidateName checks a person name: letters, accented latin letters and spaces.
func ValidateName(field, name string) error {
	if strings.TrimSpace(name) == "" {
		return ValidationError{Field: field, Message: "name is required"}
	}
	if !nameRegexp.MatchString(name) {
		return ValidationError{Field: field, Message: "name may only contain letters and spaces"}
	}
	return nil
}

// ValidatePassport checks a passport number: 1 to 12 digits.
func ValidatePassport(field, passport string) error {
	if passport == "" {
		return ValidationError{Field: field, Message: "passport is required"}
	}
	if !passportRegexp.MatchString(passport) {
		return ValidationError{Field: field, Message: "passport must be 1 to 12 digits"}
	}
	return nil
}

// Validate checks the form before it may be submitted. The first failing rule
// is returned.
func (f *Form) Validate() error {
	if err := ValidateName("accused.name", f.Accused.Name); err != nil {
		return err
	}
	if err := ValidatePassport("accused.passport", f.Accused.Passport); err != nil {
		return err
	}
	if f.AttorneyPresent && f.Attorney.Name != "" && f.Attorney.Passport != "" {
		if err := ValidateName("attorney.name", f.Attorney.Name); err != nil {
			return err
		}
		if err := ValidatePassport("attorney.passport", f.Attorney.Passport); err != nil {
			return err
		}
	}
	if f.Selection.Len() == 0 {
		return ValidationError{Field: "violations", Message: "select at least one violation"}
	}
	return nil
}
