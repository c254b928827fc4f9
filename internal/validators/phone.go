package validators

// IsPhone accepts 7 to 15 digits, ignoring spaces, dashes, dots, parens and a
// leading plus.
func IsPhone(phone string) bool {
	n := 0
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			n++
		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')':
		case r == '+' && i == 0:
		default:
			return false
		}
	}
	return n >= 7 && n <= 15
}
