package util

import (
	"os"
)

// returns true if the path exists and is a regular file
func IsFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

func WriteFile(content string, file string) error {
	return os.WriteFile(file, []byte(content), 0644)
}
