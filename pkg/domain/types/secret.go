package types

// Secret holds a credential value. The logging layer redacts it and
// fmt-style output masks it.
type Secret string

func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return "[REDACTED]"
}

func (s Secret) Unwrap() string {
	return string(s)
}
