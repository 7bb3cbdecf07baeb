package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/mercadorenta/rentas-client/internal/auth"
	"github.com/mercadorenta/rentas-client/internal/errs"
	"github.com/mercadorenta/rentas-client/internal/model"
)

// TokenSource supplies the session credential for outgoing calls.
type TokenSource interface {
	Token() string
	HasToken() bool
}

var _ TokenSource = (*auth.TokenStore)(nil)

const (
	XRequestID          = "X-Request-Id"
	AuthorizationHeader = "Authorization"
	Bearer              = "Bearer "
)

// Client is the shared HTTP transport for every collaborator service.
// All transport-error typing happens here, once.
type Client struct {
	log    *zap.Logger
	client *http.Client
	tokens TokenSource
}

func New(log *zap.Logger, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		log:    log,
		client: &http.Client{Timeout: timeout},
		tokens: tokens,
	}
}

func (c *Client) HasToken() bool {
	return c.tokens.HasToken()
}

// Do performs one call and hands back the raw response body for 2xx, or the
// classified error otherwise.
func (c *Client) Do(ctx context.Context, method, url string, body any) ([]byte, error) {
	var reqBody io.Reader = http.NoBody
	if body != nil {
		b := bytes.NewBuffer(nil)
		if err := json.NewEncoder(b).Encode(body); err != nil {
			return nil, errs.Transport(err)
		}
		reqBody = b
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, errs.Transport(err)
	}
	req.Header.Set("Content-Type", echo.MIMEApplicationJSONCharsetUTF8)
	req.Header.Set(XRequestID, uuid.NewString())
	if tok := c.tokens.Token(); tok != "" {
		req.Header.Set(AuthorizationHeader, Bearer+tok)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errs.Transport(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Transport(err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		e := errs.Classify(resp.StatusCode, data, c.tokens.HasToken())
		c.log.Debug("api error",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode),
			zap.Uint8("kind", uint8(e.Kind)),
		)
		return nil, e
	}
	return data, nil
}

// Call performs the request and unwraps the success envelope.
func Call[T any](ctx context.Context, c *Client, method, url string, body any) (T, error) {
	var zero T
	raw, err := c.Do(ctx, method, url, body)
	if err != nil {
		return zero, err
	}
	var env model.Response[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		return zero, errs.Transport(err)
	}
	return env.Data, nil
}
