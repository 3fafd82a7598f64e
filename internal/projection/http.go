package projection

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Driiva/Driiva/internal/httputil"
)

// HTTPProjector defers projection to an external service, demonstrating the
// documented boundary between this repository's core and a caller-supplied
// projection collaborator without pulling projection math into it.
type HTTPProjector struct {
	Client  httputil.HTTPClient
	BaseURL string
}

// NewHTTPProjector wraps client (e.g. httputil.NewStandardClient(nil)) and
// targets baseURL's /project endpoint.
func NewHTTPProjector(client httputil.HTTPClient, baseURL string) *HTTPProjector {
	return &HTTPProjector{Client: client, BaseURL: baseURL}
}

type httpProjectRequest struct {
	Points []GeoPoint `json:"points"`
}

type httpProjectResponse struct {
	Points []PlanarPoint `json:"points"`
}

// Project posts points to BaseURL+"/project" and decodes the response.
func (p *HTTPProjector) Project(points []GeoPoint) ([]PlanarPoint, error) {
	if len(points) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(httpProjectRequest{Points: points})
	if err != nil {
		return nil, fmt.Errorf("projection: marshal request: %w", err)
	}

	resp, err := p.Client.Post(p.BaseURL+"/project", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("projection: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("projection: service returned status %d", resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("projection: read response: %w", err)
	}

	var out httpProjectResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("projection: decode response: %w", err)
	}
	return out.Points, nil
}
