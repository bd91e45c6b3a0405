package domain

// MaxIDLength ограничивает длину идентификатора записи.
const MaxIDLength = 128

// ValidateID проверяет синтаксис идентификатора: непустой, не длиннее MaxIDLength,
// только латиница, цифры, '-' и '_'.
func ValidateID(field, id string) error {
	if id == "" {
		return NewValidationError(field, "is required")
	}
	if len(id) > MaxIDLength {
		return NewValidationError(field, "is too long")
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return NewValidationError(field, "contains invalid characters")
		}
	}
	return nil
}
