package utils

import (
	"net/url"
	"strings"
)

// NicknameURL builds a rig API url with the camera nickname as query
// parameter. Nicknames are operator-entered free text so they are escaped.
func NicknameURL(endpoint, path, nickname string) string {
	u := strings.TrimRight(endpoint, "/") + path
	if nickname != "" {
		u += "?nickname=" + url.QueryEscape(nickname)
	}
	return u
}
