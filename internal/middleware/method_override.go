package middleware

import (
	"net/http"
	"strings"
)

// overrideField is the form field HTML forms use to tunnel PUT/DELETE
// through a POST.
const overrideField = "_method"

// MethodOverride rewrites POST requests whose form body carries a
// _method field of PUT or DELETE. It must wrap the router as an
// http.Handler: Gin matches routes by method before any gin middleware
// runs, so the rewrite has to happen ahead of routing.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && isFormEncoded(r) {
			// ParseForm caches the body in r.PostForm, so later form
			// binding still sees every field.
			if err := r.ParseForm(); err == nil {
				switch strings.ToUpper(r.PostForm.Get(overrideField)) {
				case http.MethodPut:
					r.Method = http.MethodPut
				case http.MethodDelete:
					r.Method = http.MethodDelete
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

func isFormEncoded(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "application/x-www-form-urlencoded")
}
