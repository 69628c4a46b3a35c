package model

import "strings"

// HeaderValue is a single header entry in the CloudFront response shape.
type HeaderValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Response is what the resolver hands back to the edge platform.
// Headers are keyed by lower-case header name.
type Response struct {
	Status            int                      `json:"status"`
	StatusDescription string                   `json:"statusDescription"`
	Headers           map[string][]HeaderValue `json:"headers"`
	Body              string                   `json:"body"`
}

// Header returns the first value stored under the given header name.
func (r Response) Header(name string) string {
	values := r.Headers[strings.ToLower(name)]
	if len(values) == 0 {
		return ""
	}
	return values[0].Value
}

// NotFoundBody is the JSON payload of a 404 response.
type NotFoundBody struct {
	Message string `json:"message"`
	Exc     string `json:"exc"`
	Key     string `json:"key"`
}
