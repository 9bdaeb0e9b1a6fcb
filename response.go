package graphqlclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Response is a GraphQL response envelope. Data holds the raw JSON of the
// "data" field; decode it into a typed value with UnmarshalData.
type Response struct {
	Data   json.RawMessage `json:"data"`
	Errors []ResponseError `json:"errors,omitempty"`

	header http.Header
}

// ResponseError is a single GraphQL error as defined by the spec's errors
// array. GraphQL errors accompany a response rather than replacing it, so
// the client returns them inside the Response instead of as a Go error.
type ResponseError struct {
	Message    string          `json:"message"`
	Locations  []ErrorLocation `json:"locations,omitempty"`
	Path       []any           `json:"path,omitempty"`
	Extensions map[string]any  `json:"extensions,omitempty"`
}

// ErrorLocation points at the query position an error refers to.
type ErrorLocation struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (e ResponseError) Error() string {
	return e.Message
}

// HasErrors reports whether the server returned any GraphQL errors.
func (r *Response) HasErrors() bool {
	return len(r.Errors) > 0
}

// ErrorsString joins all GraphQL error messages, mainly for logging.
func (r *Response) ErrorsString() string {
	if len(r.Errors) == 0 {
		return ""
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Header returns the HTTP response headers the envelope arrived with.
// Responses served from cache carry the headers recorded at store time.
func (r *Response) Header() http.Header {
	return r.header
}

// UnmarshalData decodes the "data" field into v.
func (r *Response) UnmarshalData(v any) error {
	if len(r.Data) == 0 {
		return fmt.Errorf("graphqlclient: response has no data")
	}
	return json.Unmarshal(r.Data, v)
}

// decodeResponse parses a response body with the options' unmarshaler
// when one is set, encoding/json otherwise.
func decodeResponse(body []byte, opts *RequestOptions) (*Response, error) {
	resp := &Response{}
	if u := optionsOrDefault(opts).Unmarshaler(); u != nil {
		if err := u(body, resp); err != nil {
			return nil, err
		}
		return resp, nil
	}
	if err := json.Unmarshal(body, resp); err != nil {
		return nil, err
	}
	return resp, nil
}
