package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-openapi/runtime"
	httptransport "github.com/go-openapi/runtime/client"
	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/sm8ta/hospital_frontend/internal/config"
	"github.com/sm8ta/hospital_frontend/internal/core/ports"
)

const (
	RequestIDHeader = "X-Request-ID"
	DefaultTimeout  = 10 * time.Second
)

// Client talks to the hospital backend. It attaches the bearer token of the
// current session to every request and ends the session on a 401.
type Client struct {
	transport *httptransport.Runtime
	store     ports.TokenReader
	navigator ports.Navigator
	loginPath string
	timeout   time.Duration
	logger    ports.LoggerPort
	metrics   ports.MetricsPort
	inflight  singleflight.Group
}

func NewClient(
	cfg *config.API,
	store ports.TokenReader,
	navigator ports.Navigator,
	loginPath string,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *Client {
	transport := httptransport.New(cfg.Host(), cfg.BasePath(), []string{cfg.Scheme()})
	// error bodies are not always JSON; the reader decodes them itself
	transport.Consumers["*/*"] = runtime.ByteStreamConsumer()

	if loginPath == "" {
		loginPath = "/login"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		transport: transport,
		store:     store,
		navigator: navigator,
		loginPath: loginPath,
		timeout:   timeout,
		logger:    logger,
		metrics:   metrics,
	}
}

type request struct {
	op     string
	method string
	path   string
	id     *int64
	body   interface{}
}

type response struct {
	status int
	body   []byte
}

// do sends req and returns the raw body of a 2xx response. Identical
// requests already in flight share one round trip.
func (c *Client) do(ctx context.Context, req request) ([]byte, error) {
	key, err := c.flightKey(req)
	if err != nil {
		return nil, &Error{Op: req.op, Kind: KindDecode, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return nil, &Error{Op: req.op, Kind: KindNetwork, Err: err}
	}

	// the shared call outlives any single caller; each caller stops waiting
	// when its own context ends
	flightCtx := context.WithoutCancel(ctx)
	ch := c.inflight.DoChan(key, func() (interface{}, error) {
		return c.send(flightCtx, req)
	})

	select {
	case <-ctx.Done():
		c.logger.Debug("Caller stopped waiting for request", map[string]interface{}{
			"operation": req.op,
			"error":     ctx.Err().Error(),
		})
		return nil, &Error{Op: req.op, Kind: KindNetwork, Err: ctx.Err()}
	case res := <-ch:
		if res.Shared {
			c.logger.Debug("Request shared with an identical in-flight call", map[string]interface{}{
				"operation": req.op,
			})
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

func (c *Client) send(ctx context.Context, req request) ([]byte, error) {
	start := time.Now()
	requestID := uuid.NewString()

	sendCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	op := &runtime.ClientOperation{
		ID:                 req.op,
		Method:             req.method,
		PathPattern:        req.path,
		ProducesMediaTypes: []string{runtime.JSONMime},
		ConsumesMediaTypes: []string{runtime.JSONMime},
		AuthInfo:           c.authInfo(sendCtx),
		Params: runtime.ClientRequestWriterFunc(func(r runtime.ClientRequest, _ strfmt.Registry) error {
			if err := r.SetTimeout(c.timeout); err != nil {
				return err
			}
			if err := r.SetHeaderParam(RequestIDHeader, requestID); err != nil {
				return err
			}
			if req.id != nil {
				if err := r.SetPathParam("id", strconv.FormatInt(*req.id, 10)); err != nil {
					return err
				}
			}
			if req.body != nil {
				return r.SetBodyParam(req.body)
			}
			return nil
		}),
		Reader: runtime.ClientResponseReaderFunc(func(r runtime.ClientResponse, _ runtime.Consumer) (interface{}, error) {
			body, err := io.ReadAll(r.Body())
			if err != nil {
				return nil, fmt.Errorf("read response body: %w", err)
			}
			return &response{status: r.Code(), body: body}, nil
		}),
		Context: sendCtx,
	}

	result, err := c.transport.Submit(op)
	if err != nil {
		c.recordRequest(req.op, 0, start)
		c.logger.Error("Request failed", map[string]interface{}{
			"operation":  req.op,
			"request_id": requestID,
			"error":      err.Error(),
		})
		return nil, &Error{Op: req.op, Kind: KindNetwork, Err: err}
	}

	resp := result.(*response)
	c.recordRequest(req.op, resp.status, start)

	if resp.status >= 200 && resp.status < 300 {
		return resp.body, nil
	}
	return nil, c.handleFailure(ctx, req.op, requestID, resp)
}

func (c *Client) handleFailure(ctx context.Context, op, requestID string, resp *response) error {
	apiErr := &Error{
		Op:      op,
		Kind:    kindForStatus(resp.status),
		Status:  resp.status,
		Message: serverMessage(resp.body),
	}

	switch apiErr.Kind {
	case KindUnauthorized:
		c.logger.Warn("Session rejected by server, signing out", map[string]interface{}{
			"operation":  op,
			"request_id": requestID,
		})
		// the redirect must happen even when the caller has given up
		navCtx := context.WithoutCancel(ctx)
		c.store.Clear(navCtx)
		if err := c.navigator.Push(navCtx, c.loginPath); err != nil {
			c.logger.Error("Failed to redirect to login", map[string]interface{}{
				"error": err.Error(),
			})
		}
	case KindForbidden:
		c.logger.Warn("Access forbidden", map[string]interface{}{
			"operation":  op,
			"request_id": requestID,
			"message":    apiErr.Message,
		})
	default:
		c.logger.Error("Server returned an error", map[string]interface{}{
			"operation":  op,
			"request_id": requestID,
			"status":     resp.status,
			"message":    apiErr.Message,
		})
	}
	return apiErr
}

// authInfo applies the session headers of the token store at send time so a
// request never carries a stale or empty bearer header.
func (c *Client) authInfo(ctx context.Context) runtime.ClientAuthInfoWriter {
	return runtime.ClientAuthInfoWriterFunc(func(r runtime.ClientRequest, _ strfmt.Registry) error {
		for name, value := range c.store.AuthHeaders(ctx) {
			if err := r.SetHeaderParam(name, value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (c *Client) flightKey(req request) (string, error) {
	var b strings.Builder
	b.WriteString(req.method)
	b.WriteString(" ")
	b.WriteString(req.path)
	if req.id != nil {
		fmt.Fprintf(&b, "#%d", *req.id)
	}
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return "", fmt.Errorf("encode request body: %w", err)
		}
		b.WriteString(" ")
		b.Write(data)
	}
	return b.String(), nil
}

func (c *Client) recordRequest(op string, status int, start time.Time) {
	if c.metrics != nil {
		c.metrics.RecordRequest(op, status, start)
	}
}

func decode(op string, body []byte, out interface{}) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Op: op, Kind: KindDecode, Status: http.StatusOK, Err: err}
	}
	return nil
}
