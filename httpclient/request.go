package httpclient

// Request describes an outbound request.
type Request struct {
	// Method is the HTTP method.
	Method string
	// Path is appended to the client's BaseURL. A full URL is used as-is.
	Path string
	// Headers are request-specific headers, merged over the client defaults.
	Headers map[string]string
	// Query are URL query parameters.
	Query map[string]string
	// Body accepts *MultipartBody, []byte, string, or any JSON-encodable value.
	Body any
}

// Response is the result of a request.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
