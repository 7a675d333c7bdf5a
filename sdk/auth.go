package sdk

import "net/http"

// HeaderRequestID carries a per-request UUID so provider-side support can
// correlate a failing call.
const HeaderRequestID = "X-Request-Id"

// addAuthHeaders adds HTTP basic credentials (username and API key) to the request.
// Returns ErrMissingAuth if either is empty.
func (c *Client) addAuthHeaders(req *http.Request) error {
	if c.username == "" || c.apiKey == "" {
		return ErrMissingAuth
	}
	req.SetBasicAuth(c.username, c.apiKey)
	return nil
}
