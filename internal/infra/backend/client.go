package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"fleet-console/internal/infra"
	"fleet-console/internal/pkg/config"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const headerIdempotencyKey = "Idempotency-Key"

// Client talks to the fleet backend REST API. Calls go through one circuit
// breaker: transport failures, 5xx responses and undecodable payloads count
// against it, rejections do not.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	logger  *slog.Logger
}

func NewClient(cfg config.BackendConfig, logger *slog.Logger) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   cfg.RequestTimeout,
		},
		logger: logger,
	}
	c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "fleet-backend",
		MaxRequests: cfg.BreakerMaxRequests,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.BreakerMinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.BreakerFailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			var ge infra.GatewayError
			if errors.As(err, &ge) {
				return !ge.Kind.Transient()
			}
			return false
		},
	})
	return c
}

// envelope is the backend's response wrapper.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type call struct {
	method  string
	path    string
	body    any
	headers map[string]string
	op      string // used in logs and error messages
}

// do executes the call and decodes the envelope's data into out when out is
// non-nil. Decoding runs inside the breaker so malformed payloads count as
// failures.
func (c *Client) do(ctx context.Context, cl call, out any) error {
	_, err := c.breaker.Execute(func() ([]byte, error) {
		raw, err := c.roundTrip(ctx, cl)
		if err != nil || out == nil {
			return raw, err
		}
		return raw, c.decode(cl.op, raw, out)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return infra.WrapGatewayErr(c.logger, infra.KindCircuitOpen, 0, cl.op, err)
		}
		return err
	}
	return nil
}

func (c *Client) decode(op string, raw []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return infra.WrapGatewayErr(c.logger, infra.KindDecode, 0, op, err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return infra.WrapGatewayErr(c.logger, infra.KindDecode, 0, op+": empty data", nil)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return infra.WrapGatewayErr(c.logger, infra.KindDecode, 0, op, err)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, cl call) ([]byte, error) {
	var body io.Reader
	if cl.body != nil {
		buf, err := json.Marshal(cl.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", cl.op, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", cl.op, err)
	}
	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, v := range cl.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, infra.WrapGatewayErr(c.logger, infra.KindTransport, 0, cl.op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, infra.WrapGatewayErr(c.logger, infra.KindTransport, resp.StatusCode, cl.op, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}
	return nil, c.statusError(cl.op, resp.StatusCode, raw)
}

func (c *Client) statusError(op string, status int, raw []byte) error {
	msg := op
	var env envelope
	if json.Unmarshal(raw, &env) == nil && env.Message != "" {
		msg = env.Message
	}

	switch {
	case status == http.StatusNotFound:
		return infra.WrapGatewayErr(c.logger, infra.KindNotFound, status, msg, nil)
	case status == http.StatusTooManyRequests:
		return infra.WrapGatewayErr(c.logger, infra.KindRateLimited, status, msg, nil)
	case status >= 500:
		return infra.WrapGatewayErr(c.logger, infra.KindUnavailable, status, msg, nil)
	default:
		return infra.WrapGatewayErr(c.logger, infra.KindRejected, status, msg, nil)
	}
}
