package viewmodel

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// AvatarURL is the Gravatar image for email, falling back to the mystery
// person silhouette. size defaults to 80px.
func AvatarURL(email string, size int) string {
	if size <= 0 {
		size = 80
	}
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=%d&d=mp", sum, size)
}
