package validation

import "regexp"

var specialChars = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)

// HasSpecialChar checks if a string contains at least one special character
func HasSpecialChar(s string) bool {
	return specialChars.MatchString(s)
}

// AgentSignup validates the input of the two-step agent creation. It runs
// before any write so an invalid form never reaches the store.
func (v *Validator) AgentSignup(email, fullName, password, phone string) {
	v.Required("email", email)
	if email != "" {
		v.Email("email", email)
	}
	v.Required("full_name", fullName)
	v.Required("password", password)
	if password != "" {
		v.MinLen("password", password, 8)
		v.Check(HasSpecialChar(password), "password", "password must contain a special character")
	}
	v.Phone("phone", phone)
}
