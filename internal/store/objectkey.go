package store

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Logical prefixes for uploaded images in the bucket.
const (
	ProfilePicturePrefix = "profile_pictures"
	RescuePicturePrefix  = "rescues"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeFilename strips directory components and collapses anything
// outside [A-Za-z0-9._-] so a client-supplied filename can never
// traverse out of its prefix.
func SanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		name = "file"
	}
	return name
}

// NewObjectKey builds "{prefix}/{uuid}_{sanitized}" — the random token
// makes concurrent uploads of the same filename collision-free.
func NewObjectKey(prefix, filename string) string {
	return fmt.Sprintf("%s/%s_%s", prefix, uuid.New().String(), SanitizeFilename(filename))
}
