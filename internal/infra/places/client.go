package places

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"fleet-console/internal/domain/request"
	"fleet-console/internal/infra"
	"fleet-console/internal/pkg/config"
	"fleet-console/internal/usecase/shared"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

var _ shared.PlaceProvider = (*Client)(nil)

// Provider statuses
const (
	statusOK             = "OK"
	statusZeroResults    = "ZERO_RESULTS"
	statusOverQueryLimit = "OVER_QUERY_LIMIT"
	statusRequestDenied  = "REQUEST_DENIED"
	statusInvalidRequest = "INVALID_REQUEST"
)

// Client is a Google Places style autocomplete and geocoding client.
// Outbound calls are throttled so a burst of keystrokes across sessions
// stays within the API quota.
type Client struct {
	baseURL string
	apiKey  string
	country string
	http    *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

func NewClient(cfg config.PlacesConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		country: strings.ToLower(cfg.Country),
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   cfg.RequestTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst),
		logger:  logger,
	}
}

type autocompleteResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Predictions  []struct {
		PlaceID     string `json:"place_id"`
		Description string `json:"description"`
	} `json:"predictions"`
}

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (c *Client) Autocomplete(ctx context.Context, query string) ([]request.Prediction, error) {
	params := url.Values{}
	params.Set("input", query)
	params.Set("key", c.apiKey)
	if c.country != "" {
		params.Set("components", "country:"+c.country)
	}

	var resp autocompleteResponse
	if err := c.get(ctx, "/place/autocomplete/json", params, "autocomplete", &resp); err != nil {
		return nil, err
	}

	switch resp.Status {
	case statusOK:
	case statusZeroResults:
		return []request.Prediction{}, nil
	default:
		return nil, c.statusError("autocomplete", resp.Status, resp.ErrorMessage)
	}

	out := make([]request.Prediction, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		if p.Description == "" {
			continue
		}
		out = append(out, request.Prediction{PlaceID: p.PlaceID, Description: p.Description})
	}
	return out, nil
}

func (c *Client) Geocode(ctx context.Context, address string) (request.Coordinates, error) {
	params := url.Values{}
	params.Set("address", address)
	params.Set("key", c.apiKey)

	var resp geocodeResponse
	if err := c.get(ctx, "/geocode/json", params, "geocode", &resp); err != nil {
		return request.Coordinates{}, err
	}

	if resp.Status != statusOK {
		return request.Coordinates{}, c.statusError("geocode", resp.Status, resp.ErrorMessage)
	}
	if len(resp.Results) == 0 {
		return request.Coordinates{}, infra.WrapGatewayErr(c.logger, infra.KindNotFound, 0, "geocode: no results", nil)
	}

	loc := resp.Results[0].Geometry.Location
	coords, err := request.NewCoordinates(loc.Lat, loc.Lng)
	if err != nil {
		return request.Coordinates{}, infra.WrapGatewayErr(c.logger, infra.KindDecode, 0, "geocode", err)
	}
	return coords, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, op string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return infra.WrapGatewayErr(c.logger, infra.KindRateLimited, 0, op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return infra.WrapGatewayErr(c.logger, infra.KindTransport, 0, op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return infra.WrapGatewayErr(c.logger, infra.KindUnavailable, resp.StatusCode, op, nil)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return infra.WrapGatewayErr(c.logger, infra.KindDecode, resp.StatusCode, op, err)
	}
	return nil
}

func (c *Client) statusError(op, status, detail string) error {
	msg := op + ": " + status
	if detail != "" {
		msg += " (" + detail + ")"
	}
	switch status {
	case statusZeroResults:
		return infra.WrapGatewayErr(c.logger, infra.KindNotFound, 0, msg, nil)
	case statusOverQueryLimit:
		return infra.WrapGatewayErr(c.logger, infra.KindRateLimited, 0, msg, nil)
	case statusRequestDenied, statusInvalidRequest:
		return infra.WrapGatewayErr(c.logger, infra.KindRejected, 0, msg, nil)
	default:
		return infra.WrapGatewayErr(c.logger, infra.KindUnavailable, 0, msg, nil)
	}
}
