package history

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/lox/lotofacil/lotto"
)

// maxDownload caps the size of a fetched table
const maxDownload = 32 << 20

// Source supplies a draw history
type Source interface {
	Fetch(ctx context.Context) (lotto.History, error)
}

// FileSource reads a local CSV or XLSX table
type FileSource struct {
	Path  string
	Sheet string
}

func (s FileSource) Fetch(ctx context.Context) (lotto.History, error) {
	if err := ctx.Err(); err != nil {
		return lotto.History{}, err
	}
	h, err := Load(s.Path, s.Sheet)
	if err != nil {
		return lotto.History{}, fmt.Errorf("%w: %s: %w", lotto.ErrDataUnavailable, s.Path, err)
	}
	return h, nil
}

// HTTPSource downloads a CSV or XLSX table. Requests are rate limited and
// pass through a circuit breaker so a failing endpoint is not hammered.
type HTTPSource struct {
	url     string
	sheet   string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// HTTPOption configures an HTTPSource
type HTTPOption func(*HTTPSource)

// WithHTTPClient replaces the default client
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		s.client = c
	}
}

// WithTimeout sets the request timeout of the default client
func WithTimeout(d time.Duration) HTTPOption {
	return func(s *HTTPSource) {
		if d > 0 {
			s.client.Timeout = d
		}
	}
}

// WithSheet selects the workbook sheet for XLSX downloads
func WithSheet(sheet string) HTTPOption {
	return func(s *HTTPSource) {
		s.sheet = sheet
	}
}

// WithLimiter replaces the default limiter (one request per second)
func WithLimiter(l *rate.Limiter) HTTPOption {
	return func(s *HTTPSource) {
		s.limiter = l
	}
}

// WithSourceLogger attaches a logger
func WithSourceLogger(logger zerolog.Logger) HTTPOption {
	return func(s *HTTPSource) {
		s.logger = logger
	}
}

// NewHTTPSource creates a source for url
func NewHTTPSource(url string, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		url:     url,
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	st := gobreaker.Settings{
		Name:     "draw-history",
		Interval: 60 * time.Second,
		Timeout:  60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			s.logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state changed")
		},
	}
	s.breaker = gobreaker.NewCircuitBreaker(st)
	return s
}

func (s *HTTPSource) Fetch(ctx context.Context) (lotto.History, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return lotto.History{}, fmt.Errorf("%w: %w", lotto.ErrDataUnavailable, err)
	}

	out, err := s.breaker.Execute(func() (interface{}, error) {
		return s.download(ctx)
	})
	if err != nil {
		return lotto.History{}, fmt.Errorf("%w: %s: %w", lotto.ErrDataUnavailable, s.url, err)
	}
	return out.(lotto.History), nil
}

func (s *HTTPSource) download(ctx context.Context) (lotto.History, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return lotto.History{}, err
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return lotto.History{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return lotto.History{}, fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDownload+1))
	if err != nil {
		return lotto.History{}, err
	}
	if len(body) > maxDownload {
		return lotto.History{}, errors.New("response exceeds size limit")
	}

	var h lotto.History
	if isWorkbook(s.url, resp.Header.Get("Content-Type")) {
		h, err = ReadXLSX(bytes.NewReader(body), s.sheet)
	} else {
		h, err = ReadCSV(bytes.NewReader(body))
	}
	if err != nil {
		return lotto.History{}, err
	}

	s.logger.Debug().
		Str("url", s.url).
		Int("bytes", len(body)).
		Int("draws", h.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("Downloaded draw history")
	return h, nil
}

func isWorkbook(url, contentType string) bool {
	return strings.HasSuffix(strings.ToLower(url), ".xlsx") ||
		strings.Contains(contentType, "spreadsheetml")
}

// FallbackSource tries a primary source and switches to a fallback when the
// primary fails. Only when both fail is ErrDataUnavailable returned.
type FallbackSource struct {
	Primary  Source
	Fallback Source
	Logger   zerolog.Logger
}

func (s FallbackSource) Fetch(ctx context.Context) (lotto.History, error) {
	h, err := s.Primary.Fetch(ctx)
	if err == nil {
		return h, nil
	}
	if s.Fallback == nil || ctx.Err() != nil {
		return lotto.History{}, err
	}

	s.Logger.Warn().Err(err).Msg("Primary draw source failed, using fallback")
	h, fbErr := s.Fallback.Fetch(ctx)
	if fbErr != nil {
		return lotto.History{}, fmt.Errorf("%w: primary: %v; fallback: %v", lotto.ErrDataUnavailable, err, fbErr)
	}
	return h, nil
}
