package util

import "strings"

// IsBlank nil 或仅包含空白字符
func IsBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
