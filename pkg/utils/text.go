package utils

// Truncate corta s em no máximo max caracteres (runas, não bytes)
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}

	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}

	return s
}
