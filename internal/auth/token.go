package auth

import (
	"net/http"
	"strings"
)

// BearerHeader renders the Authorization header value. An absent token still
// yields the "Bearer " prefix with an empty credential.
func BearerHeader(accessToken string) string {
	return "Bearer " + accessToken
}

// ExtractAccessToken reads the bearer credential off a request.
func ExtractAccessToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
