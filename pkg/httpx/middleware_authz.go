package httpx

import "net/http"

// RequireRole rejects callers whose verified token does not carry one of
// the given roles. A wrong-role credential is treated the same as an
// invalid one: the caller is not authenticated for this endpoint.
func RequireRole(allowed ...string) Middleware {
	want := make(map[string]struct{}, len(allowed))
	for _, r := range allowed {
		want[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := want[roleFromCtx(r.Context())]; !ok {
				writeBearerError(w, "role not permitted")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
