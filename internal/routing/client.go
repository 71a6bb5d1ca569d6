// Package routing resolves walking routes from an external routing
// provider. The provider is an optional enhancement: every failure mode
// maps to ErrUnavailable so callers can fall back to the haversine
// estimate instead of surfacing a request failure.
package routing

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"

	"context"

	"github.com/twpayne/go-polyline"
	"golang.org/x/time/rate"

	"makanmap.sg/internal/appconf"
)

// ErrUnavailable is returned for every provider failure: network errors,
// non-OK responses, rate limits, and no-route results.
var ErrUnavailable = errors.New("routing unavailable")

// Route is a resolved walking route.
type Route struct {
	DistanceMeters float64
	Minutes        int
	// Geometry is the decoded route polyline as [lat, lng] pairs.
	Geometry [][]float64
}

// Client calls an OSRM-compatible walking-route endpoint. It paces calls
// with a rate limiter so bulk refreshes stay inside upstream quotas.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(engine appconf.Engine) *Client {
	var limiter *rate.Limiter
	if engine.BulkPacingDelay > 0 {
		limiter = rate.NewLimiter(rate.Every(engine.BulkPacingDelay), 1)
	}
	return &Client{
		baseURL:    engine.RoutingBaseURL,
		httpClient: &http.Client{Timeout: engine.RoutingTimeout},
		limiter:    limiter,
	}
}

// Enabled reports whether a provider endpoint is configured.
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

type routeResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry string  `json:"geometry"`
	} `json:"routes"`
}

// WalkingRoute resolves a walking route between two coordinate pairs.
// Returns ErrUnavailable on any provider failure; never panics or blocks
// past the configured timeout.
func (c *Client) WalkingRoute(ctx context.Context, originLat, originLng, destLat, destLng float64) (Route, error) {
	if !c.Enabled() {
		return Route{}, ErrUnavailable
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return Route{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}

	url := fmt.Sprintf("%s/route/v1/foot/%f,%f;%f,%f?overview=full",
		c.baseURL, originLng, originLat, destLng, destLat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Route{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Route{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close failure is not actionable

	if resp.StatusCode != http.StatusOK {
		return Route{}, fmt.Errorf("%w: provider returned status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Route{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var parsed routeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Route{}, fmt.Errorf("%w: malformed response: %v", ErrUnavailable, err)
	}

	if parsed.Code != "Ok" || len(parsed.Routes) == 0 {
		return Route{}, fmt.Errorf("%w: no route found", ErrUnavailable)
	}

	best := parsed.Routes[0]

	minutes := int(math.Ceil(best.Duration / 60))
	if minutes < 1 {
		minutes = 1
	}

	route := Route{
		DistanceMeters: best.Distance,
		Minutes:        minutes,
	}

	if best.Geometry != "" {
		if coords, _, err := polyline.DecodeCoords([]byte(best.Geometry)); err == nil {
			route.Geometry = coords
		}
	}

	return route, nil
}
