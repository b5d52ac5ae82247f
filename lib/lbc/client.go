package lbc

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"time"

	"lbc-backend/lib/restyutil"
	"lbc-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("lbc")

const DefaultBaseURL = "https://api.leboncoin.fr"

const (
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 5
	DefaultMinDelay   = 1500 * time.Millisecond
	DefaultMaxDelay   = 3500 * time.Millisecond
)

var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64; rv:124.0) Gecko/20100101 Firefox/124.0",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:123.0) Gecko/20100101 Firefox/123.0",
}

var instrumentOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput enables request/response dumps for every
// transport this package builds.
func SetRestyInstrumentOutput(output restyutil.InstrumentOutput) {
	instrumentOutput = output
}

type ClientOptions struct {
	// BaseURL overrides the production API host, mostly for tests.
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int

	// Session may be shared between several clients. When nil a
	// private session with default pacing is created.
	Session *Session
}

// Client executes searches and single-resource lookups against the
// backend, cycling the session's identities to get past anti-bot
// blocking.
type Client struct {
	baseURL    string
	timeout    time.Duration
	maxRetries int
	session    *Session

	// backoff unit, only shortened in tests
	backoffBase time.Duration
}

func NewClient(opts ClientOptions) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	session := opts.Session
	if session == nil {
		session = NewSession(SessionOptions{
			UserAgents: defaultUserAgents,
			MinDelay:   DefaultMinDelay,
			MaxDelay:   DefaultMaxDelay,
		})
	}
	return &Client{
		baseURL:     baseURL,
		timeout:     timeout,
		maxRetries:  maxRetries,
		session:     session,
		backoffBase: time.Second,
	}
}

// Session exposes the shared anti-bot state, e.g. for request counters.
func (c *Client) Session() *Session {
	return c.session
}

// Search runs a canonical query through the full request cycle. The
// query is rendered before any network activity, so a malformed query
// never produces a partial request.
func (c *Client) Search(ctx context.Context, q *Query) (Search, error) {
	ctx, span := tracer.Start(ctx, "Search")
	defer span.End()

	payload, err := q.Payload()
	if err != nil {
		return Search{}, err
	}
	body, err := c.fetch(ctx, http.MethodPost, "/finder/search", payload)
	if err != nil {
		return Search{}, err
	}
	return mapSearchResponse(body, q.Limit)
}

// SearchURL searches with a human-shared URL instead of structured
// arguments. Page and limit override whatever paging the URL carries;
// zero values keep the defaults.
func (c *Client) SearchURL(ctx context.Context, rawURL string, page, limit int) (Search, error) {
	q, err := QueryFromURL(rawURL)
	if err != nil {
		return Search{}, err
	}
	if limit > 0 {
		q.Limit = limit
	}
	if page > 1 {
		q.Offset = (page - 1) * q.Limit
	}
	return c.Search(ctx, q)
}

// GetAd fetches one ad by id. A missing ad surfaces as ErrNotFound.
func (c *Client) GetAd(ctx context.Context, id string) (Ad, error) {
	ctx, span := tracer.Start(ctx, "GetAd")
	defer span.End()

	body, err := c.fetch(ctx, http.MethodGet, "/finder/classified/"+id, nil)
	if err != nil {
		return Ad{}, err
	}
	return mapAdResponse(body)
}

// GetUser fetches one public user profile by id.
func (c *Client) GetUser(ctx context.Context, id string) (User, error) {
	ctx, span := tracer.Start(ctx, "GetUser")
	defer span.End()

	body, err := c.fetch(ctx, http.MethodGet, "/api/accounts/v1/accounts/"+id+"/public", nil)
	if err != nil {
		return User{}, err
	}
	return mapUserResponse(body)
}

// fetch drives the per-attempt state machine: rate gate, identity
// selection, send, block recovery. Only the anti-bot block is retried;
// any other failure propagates after the first attempt so real outages
// are not masked as block events.
func (c *Client) fetch(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		id, err := c.session.Acquire(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRequest, err)
		}

		httpc, err := c.transport(id)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRequest, err)
		}
		req := httpc.R().
			SetContext(ctx).
			SetHeader("accept", "application/json")
		if payload != nil {
			req.SetHeader("content-type", "application/json").
				SetBody(payload)
		}

		res, err := req.Execute(method, path)
		if err != nil {
			// transport failures, timeouts included, are not
			// retried
			return nil, fmt.Errorf("%w: %s %s: %v", ErrRequest, method, path, err)
		}

		switch {
		case res.StatusCode() == http.StatusForbidden:
			if attempt+1 >= c.maxRetries {
				return nil, fmt.Errorf("%w (gave up after %d attempts)", ErrDatadome, attempt+1)
			}
			slog.WarnContext(ctx, "blocked by datadome, rotating identity",
				"attempt", attempt+1,
				"max_retries", c.maxRetries,
			)
			if err := c.blockBackoff(ctx, attempt); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrRequest, err)
			}
			continue
		case res.StatusCode() == http.StatusNotFound:
			return nil, fmt.Errorf("%w: %s %s", ErrNotFound, method, path)
		case res.IsError():
			return nil, fmt.Errorf("%w: %s %s: status %d", ErrRequest, method, path, res.StatusCode())
		}
		return res.Body(), nil
	}
}

// transport builds a resty client bound to one identity.
func (c *Client) transport(id Identity) (*resty.Client, error) {
	client := resty.New()
	client.SetBaseURL(c.baseURL)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	if id.Proxy != nil {
		client.SetProxy(id.Proxy.URL())
	}
	client.SetHeader("user-agent", id.UserAgent)
	client.SetTimeout(c.timeout)

	if instrumentOutput != nil {
		restyutil.InstrumentClient(client, tracer, instrumentOutput)
	} else {
		telemetry.InstrumentResty(client, "lbc/http")
	}
	return client, nil
}

// blockBackoff sleeps 2^attempt seconds plus up to a second of jitter
// before the next identity is tried.
func (c *Client) blockBackoff(ctx context.Context, attempt int) error {
	delay := time.Duration(1<<attempt)*c.backoffBase + randomDuration(c.backoffBase)
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
