package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/jwtauth/v5"
)

func queryInt(r *http.Request, key string, fallback int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// actorID extracts the authenticated subject from the bearer token.
func actorID(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	sub, _ := claims["sub"].(string)
	return sub
}

func currentYear() int {
	return time.Now().UTC().Year()
}
