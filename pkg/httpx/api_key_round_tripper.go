package httpx

import (
	"fmt"
	"net/http"
)

const HeaderNameAPIKey = "x-api-key"

// APIKeyRoundTripper sets a static API key header on every outgoing request.
type APIKeyRoundTripper struct {
	next       http.RoundTripper
	headerName string
	apiKey     string
}

func NewAPIKeyRoundTripper(
	next http.RoundTripper,
	headerName string,
	apiKey string,
) APIKeyRoundTripper {
	if headerName == "" {
		headerName = HeaderNameAPIKey
	}

	return APIKeyRoundTripper{
		next:       next,
		headerName: headerName,
		apiKey:     apiKey,
	}
}

func (rt APIKeyRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrip must not modify the caller's request.
	req = req.Clone(req.Context())
	req.Header.Set(rt.headerName, rt.apiKey)

	resp, err := rt.next.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("next.RoundTrip: %w", err)
	}

	return resp, nil
}
