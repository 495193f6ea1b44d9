package util

import (
	"strings"
)

// returns the first non-empty string, or the empty string
func CoalesceStr(strs ...string) string {
	for _, s := range strs {
		if len(s) > 0 {
			return s
		}
	}
	return ""
}

func ChooseStr(cond bool, trueStr, falseStr string) string {
	if cond {
		return trueStr
	}
	return falseStr
}

// returns true if the string explicitly represents a "true" value.
func IsTruthy(s string) bool {
	switch strings.ToLower(s) {
	case "t", "true", "y", "yes", "1":
		return true
	default:
		return false
	}
}
