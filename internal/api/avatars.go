package api

import (
	"fmt"
	"net/url"
)

// InitialsAvatarURL builds the deterministic initials-avatar URL for a
// username. The avatar service renders it on demand; nothing is uploaded.
func InitialsAvatarURL(baseURL, projectID, name string) string {
	vals := url.Values{}
	vals.Set("name", name)
	vals.Set("project", projectID)
	return fmt.Sprintf("%s/avatars/initials?%s", baseURL, vals.Encode())
}
