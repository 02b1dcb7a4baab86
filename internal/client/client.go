package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/parsa-mehek/LinkingLink-client/internal/storage"
)

const (
	clientTimeoutSeconds = 10
	maxResponseBytes     = 4 << 20

	headerRequestID = "X-Request-ID"
)

// Client единая точка для всех исходящих запросов. Перед каждым запросом
// токен читается из хранилища и, если он не пуст, передается в заголовке
// Authorization. Ни один метод не возвращает error и не паникует: любой
// сбой превращается в Result с заполненным Error.
type Client struct {
	baseURL    string
	httpClient HTTPClient
	store      storage.TokenStore
	logger     *slog.Logger
}

type clientOptions struct {
	httpClient         HTTPClient
	logger             *slog.Logger
	timeout            time.Duration
	insecureSkipVerify bool
}

type Option func(*clientOptions)

func WithHTTPClient(httpClient HTTPClient) Option {
	return func(o *clientOptions) {
		o.httpClient = httpClient
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

func WithInsecureSkipVerify(skip bool) Option {
	return func(o *clientOptions) {
		o.insecureSkipVerify = skip
	}
}

func NewClient(baseURL string, store storage.TokenStore, opts ...Option) *Client {
	o := clientOptions{
		timeout: clientTimeoutSeconds * time.Second,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.httpClient == nil {
		o.httpClient = &http.Client{
			Timeout: o.timeout,
			Transport: &http.Transport{
				Proxy:           http.ProxyFromEnvironment,
				TLSClientConfig: createTLSConfig(o.insecureSkipVerify),
			},
		}
	}

	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if store == nil {
		store = storage.NewMemoryStore()
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: o.httpClient,
		store:      store,
		logger:     o.logger,
	}
}

func createTLSConfig(insecureSkipVerify bool) *tls.Config {
	config := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}

	if insecureSkipVerify {
		config.InsecureSkipVerify = true // #nosec G402
	}

	return config
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// TokenStore возвращает хранилище, из которого клиент берет токен
func (c *Client) TokenStore() storage.TokenStore {
	return c.store
}

type requestConfig struct {
	header http.Header
	query  url.Values
}

// RequestOption настраивает отдельный запрос: заголовки и параметры строки запроса
type RequestOption func(*requestConfig)

func WithHeader(key, value string) RequestOption {
	return func(rc *requestConfig) {
		rc.header.Set(key, value)
	}
}

func WithQuery(key, value string) RequestOption {
	return func(rc *requestConfig) {
		rc.query.Add(key, value)
	}
}

func (c *Client) Get(ctx context.Context, path string, opts ...RequestOption) Result[json.RawMessage] {
	return c.Do(ctx, http.MethodGet, path, nil, opts...)
}

func (c *Client) Post(ctx context.Context, path string, body any, opts ...RequestOption) Result[json.RawMessage] {
	return c.Do(ctx, http.MethodPost, path, body, opts...)
}

func (c *Client) Put(ctx context.Context, path string, body any, opts ...RequestOption) Result[json.RawMessage] {
	return c.Do(ctx, http.MethodPut, path, body, opts...)
}

func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) Result[json.RawMessage] {
	return c.Do(ctx, http.MethodDelete, path, nil, opts...)
}

// Do выполняет запрос и нормализует ответ. Тело ответа со статусом 2xx
// возвращается как есть в Data, все остальное становится APIError.
func (c *Client) Do(
	ctx context.Context,
	method, path string,
	body any,
	opts ...RequestOption,
) (res Result[json.RawMessage]) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("паника при выполнении запроса", "method", method, "path", path, "panic", r)
			res = failure[json.RawMessage](transportError(fmt.Errorf("паника: %v", r)))
		}
	}()

	req, err := c.newRequest(ctx, method, path, body, opts)
	if err != nil {
		return failure[json.RawMessage](transportError(err))
	}

	requestID := req.Header.Get(headerRequestID)
	started := time.Now()

	c.logger.Debug("запрос", "method", method, "path", path, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("запрос не выполнен", "method", method, "path", path, "request_id", requestID, "error", err)

		return failure[json.RawMessage](transportError(err))
	}

	var data []byte
	if resp.Body != nil {
		defer resp.Body.Close()

		data, err = io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			apiErr := transportError(fmt.Errorf("ошибка чтения тела ответа: %w", err))
			apiErr.Status = resp.StatusCode

			return failure[json.RawMessage](apiErr)
		}
	}

	c.logger.Debug(
		"ответ",
		"method", method,
		"path", path,
		"request_id", requestID,
		"status", resp.StatusCode,
		"duration", time.Since(started),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return failure[json.RawMessage](toAPIError(resp.StatusCode, data))
	}

	return success(json.RawMessage(data), resp.StatusCode)
}

func (c *Client) newRequest(
	ctx context.Context,
	method, path string,
	body any,
	opts []RequestOption,
) (*http.Request, error) {
	rc := requestConfig{
		header: make(http.Header),
		query:  make(url.Values),
	}
	for _, opt := range opts {
		opt(&rc)
	}

	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, err
	}

	if len(rc.query) > 0 {
		q := u.Query()
		for key, values := range rc.query {
			for _, value := range values {
				q.Add(key, value)
			}
		}
		u.RawQuery = q.Encode()
	}

	var reader io.Reader
	if body != nil {
		jsonData, errMarshal := json.Marshal(body)
		if errMarshal != nil {
			return nil, fmt.Errorf("ошибка сериализации тела запроса: %w", errMarshal)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(headerRequestID, uuid.NewString())

	if token := c.store.Load(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	for key, values := range rc.header {
		req.Header[key] = values
	}

	return req, nil
}
