package httpclient

import "net/http"

// Credential stamps a secret onto an outgoing request. Secrets only ever
// come from configuration; a nil Credential sends nothing.
type Credential func(*http.Request)

// BearerAuth sends "Authorization: Bearer <token>". An empty token yields
// nil so local engines need no special casing.
func BearerAuth(token string) Credential {
	if token == "" {
		return nil
	}
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

// APIKeyAuthHeader sends the key in the named header.
func APIKeyAuthHeader(key, header string) Credential {
	if key == "" {
		return nil
	}
	return func(r *http.Request) { r.Header.Set(header, key) }
}

// APIKeyAuthQuery sends the key as a query parameter.
func APIKeyAuthQuery(key, param string) Credential {
	if key == "" {
		return nil
	}
	return func(r *http.Request) {
		q := r.URL.Query()
		q.Set(param, key)
		r.URL.RawQuery = q.Encode()
	}
}
