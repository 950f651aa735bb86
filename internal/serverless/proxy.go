// Package serverless runs the HTTP API behind an AWS API Gateway proxy
// integration.
package serverless

import (
	"bytes"
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"

	"github.com/interbanking/interbanking-api/internal/platform/httpx"
)

// BuildFunc creates the handler that serves events. It runs on the first
// invocation of a container and again only after a failure.
type BuildFunc func(ctx context.Context) (http.Handler, error)

// Proxy adapts API Gateway proxy events to an http.Handler. The handler and
// whatever it holds (the database pool) survive across warm invocations.
type Proxy struct {
	logger *slog.Logger
	build  BuildFunc

	mu      sync.Mutex
	handler http.Handler
}

func NewProxy(logger *slog.Logger, build BuildFunc) *Proxy {
	if logger == nil {
		logger = slog.Default()
	}
	return &Proxy{logger: logger, build: build}
}

// Handle serves a single event. Failures are reported in the response, so
// the returned error is always nil.
func (p *Proxy) Handle(ctx context.Context, ev events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	w := newResponseWriter()

	req, err := NewRequest(ctx, ev)
	if err != nil {
		fallback, _ := http.NewRequestWithContext(ctx, http.MethodPost, "/", nil)
		fallback.URL.Path = ev.Path
		httpx.RespondError(w, fallback, p.logger, httpx.NewError(httpx.ErrValidation, "Invalid request body"))
		return w.response(), nil
	}

	h, err := p.handlerFor(ctx)
	if err != nil {
		httpx.RespondStatus(w, req, p.logger, http.StatusInternalServerError, err)
		return w.response(), nil
	}

	h.ServeHTTP(w, req)
	return w.response(), nil
}

func (p *Proxy) handlerFor(ctx context.Context) (http.Handler, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.handler != nil {
		return p.handler, nil
	}
	h, err := p.build(ctx)
	if err != nil {
		return nil, err
	}
	p.logger.Info("serverless handler ready")
	p.handler = h
	return h, nil
}

// NewRequest converts a proxy event into an *http.Request bound to ctx.
func NewRequest(ctx context.Context, ev events.APIGatewayProxyRequest) (*http.Request, error) {
	body := []byte(ev.Body)
	if ev.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(ev.Body)
		if err != nil {
			return nil, err
		}
		body = decoded
	}

	req, err := http.NewRequestWithContext(ctx, ev.HTTPMethod, "/", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	if len(ev.MultiValueHeaders) > 0 {
		for k, vs := range ev.MultiValueHeaders {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}
	} else {
		for k, v := range ev.Headers {
			req.Header.Set(k, v)
		}
	}

	query := url.Values{}
	if len(ev.MultiValueQueryStringParameters) > 0 {
		for k, vs := range ev.MultiValueQueryStringParameters {
			query[k] = append(query[k], vs...)
		}
	} else {
		for k, v := range ev.QueryStringParameters {
			query.Set(k, v)
		}
	}

	host := req.Header.Get("Host")
	req.Header.Del("Host")
	if host == "" {
		host = ev.RequestContext.DomainName
	}
	// API Gateway terminates TLS.
	scheme := strings.ToLower(req.Header.Get("X-Forwarded-Proto"))
	if scheme == "" {
		scheme = "https"
	}
	path := ev.Path
	if path == "" {
		path = "/"
	}

	req.URL = &url.URL{Scheme: scheme, Host: host, Path: path, RawQuery: query.Encode()}
	req.Host = host
	req.RequestURI = req.URL.RequestURI()
	req.RemoteAddr = ev.RequestContext.Identity.SourceIP
	return req, nil
}

type responseWriter struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newResponseWriter() *responseWriter {
	return &responseWriter{header: http.Header{}}
}

func (w *responseWriter) Header() http.Header { return w.header }

func (w *responseWriter) WriteHeader(status int) {
	if w.status != 0 {
		return
	}
	w.status = status
}

func (w *responseWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.WriteHeader(http.StatusOK)
	}
	return w.body.Write(p)
}

func (w *responseWriter) response() events.APIGatewayProxyResponse {
	status := w.status
	if status == 0 {
		status = http.StatusOK
	}

	single := make(map[string]string, len(w.header))
	multi := make(map[string][]string, len(w.header))
	for k, vs := range w.header {
		if len(vs) == 0 {
			continue
		}
		single[k] = strings.Join(vs, ", ")
		multi[k] = append([]string(nil), vs...)
	}

	resp := events.APIGatewayProxyResponse{
		StatusCode:        status,
		Headers:           single,
		MultiValueHeaders: multi,
	}
	if raw := w.body.Bytes(); utf8.Valid(raw) {
		resp.Body = string(raw)
	} else {
		resp.Body = base64.StdEncoding.EncodeToString(raw)
		resp.IsBase64Encoded = true
	}
	return resp
}
