package power

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/lox/skyra/internal/httputil"
	"github.com/lox/skyra/internal/metrics"
	"github.com/lox/skyra/internal/models"
)

const (
	// DailyPointURL is the NASA POWER daily point endpoint.
	DailyPointURL = "https://power.larc.nasa.gov/api/temporal/daily/point"

	// DefaultFillValue is the sentinel NASA POWER uses for missing readings.
	DefaultFillValue = -999.0

	community = "AG"
)

// Variable codes requested from NASA POWER, in request order.
var parameterCodes = []string{"T2M", "QV2M", "U10M", "PS", "PRECTOTCORR"}

// codeVariables maps NASA POWER parameter codes onto table variables.
var codeVariables = map[string]models.Variable{
	"T2M":         models.VarTemperature,
	"QV2M":        models.VarSpecificHumidity,
	"U10M":        models.VarWindSpeed,
	"PS":          models.VarSurfacePressure,
	"PRECTOTCORR": models.VarPrecipitation,
}

// Raw is the per-variable daily series block of a NASA POWER response,
// keyed by parameter code and then YYYYMMDD.
type Raw struct {
	Parameter map[string]map[string]*float64
	FillValue float64
}

// Client fetches daily point data from NASA POWER. It never retries: a
// failed call surfaces as a *RetrievalError straight away.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	now        func() time.Time
}

// NewClient creates a client for the given endpoint. An empty baseURL uses
// DailyPointURL and a nil httpClient uses httputil.NewClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DailyPointURL
	}
	if httpClient == nil {
		httpClient = httputil.NewClient()
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(1), 3),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "nasa-power",
			MaxRequests: 1,
			Interval:    5 * time.Minute,
			Timeout:     time.Minute,
			IsSuccessful: func(err error) bool {
				var aborted *callerAbortError
				return err == nil || errors.As(err, &aborted)
			},
		}),
		now: time.Now,
	}
}

// DefaultYears returns the default ten-year window ending last year.
func DefaultYears(now time.Time) (startYear, endYear int) {
	return now.Year() - 10, now.Year() - 1
}

// resolveYears fills zero bounds with the defaults.
func (c *Client) resolveYears(startYear, endYear int) (int, int) {
	defStart, defEnd := DefaultYears(c.now())
	if startYear == 0 {
		startYear = defStart
	}
	if endYear == 0 {
		endYear = defEnd
	}
	return startYear, endYear
}

type response struct {
	Header struct {
		FillValue *float64 `json:"fill_value"`
	} `json:"header"`
	Properties *struct {
		Parameter map[string]map[string]*float64 `json:"parameter"`
	} `json:"properties"`
	Messages []string `json:"messages"`
}

// Fetch retrieves the five daily series for loc between January 1 of
// startYear and December 31 of endYear. Zero years select the defaults.
func (c *Client) Fetch(ctx context.Context, loc models.Location, startYear, endYear int) (*Raw, error) {
	startYear, endYear = c.resolveYears(startYear, endYear)
	if startYear > endYear {
		return nil, fmt.Errorf("%w %d-%d", ErrInvalidYears, startYear, endYear)
	}

	values := url.Values{}
	values.Set("parameters", strings.Join(parameterCodes, ","))
	values.Set("community", community)
	values.Set("longitude", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
	values.Set("latitude", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
	values.Set("start", fmt.Sprintf("%04d0101", startYear))
	values.Set("end", fmt.Sprintf("%04d1231", endYear))
	values.Set("format", "JSON")
	u := c.baseURL + "?" + values.Encode()

	log.Printf("power: fetching %s for %d-%d", loc, startYear, endYear)

	if err := c.limiter.Wait(ctx); err != nil {
		metrics.PowerAPICallsTotal.WithLabelValues("rate_limited").Inc()
		return nil, &RetrievalError{Op: "rate limit wait", Err: err}
	}

	start := time.Now()
	result, err := c.breaker.Execute(func() (interface{}, error) {
		body, err := c.get(ctx, u)
		if err != nil && ctx.Err() != nil {
			return nil, &callerAbortError{err: err}
		}
		return body, err
	})
	metrics.PowerAPILatency.Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.PowerAPICallsTotal.WithLabelValues("circuit_open").Inc()
			return nil, &RetrievalError{Op: "circuit breaker", Err: err}
		}
		var aborted *callerAbortError
		if errors.As(err, &aborted) {
			metrics.PowerAPICallsTotal.WithLabelValues("cancelled").Inc()
			err = aborted.err
		}
		metrics.PowerAPICallsTotal.WithLabelValues("error").Inc()
		var re *RetrievalError
		if errors.As(err, &re) {
			return nil, re
		}
		return nil, &RetrievalError{Op: "fetch", Err: err}
	}
	body := result.([]byte)

	var data response
	if err := json.Unmarshal(body, &data); err != nil {
		metrics.PowerAPICallsTotal.WithLabelValues("bad_body").Inc()
		return nil, &RetrievalError{Op: "decode", Err: err}
	}
	if data.Properties == nil || data.Properties.Parameter == nil {
		metrics.PowerAPICallsTotal.WithLabelValues("bad_body").Inc()
		return nil, &RetrievalError{Op: "decode", Err: errors.New("unexpected response format: missing properties.parameter")}
	}
	metrics.PowerAPICallsTotal.WithLabelValues("ok").Inc()

	raw := &Raw{
		Parameter: data.Properties.Parameter,
		FillValue: DefaultFillValue,
	}
	if data.Header.FillValue != nil {
		raw.FillValue = *data.Header.FillValue
	}
	return raw, nil
}

// callerAbortError marks a failure caused by the caller's context ending.
// The breaker does not count it against the upstream.
type callerAbortError struct {
	err error
}

func (e *callerAbortError) Error() string { return e.err.Error() }
func (e *callerAbortError) Unwrap() error { return e.err }

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &RetrievalError{Op: "create request", Err: err}
	}
	req.Header.Set("User-Agent", "skyra/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RetrievalError{Op: "fetch", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &RetrievalError{Op: "fetch", Status: resp.StatusCode, Err: fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RetrievalError{Op: "read body", Err: err}
	}
	return body, nil
}

// FetchTable fetches and reshapes in one step.
func (c *Client) FetchTable(ctx context.Context, loc models.Location, startYear, endYear int) (models.Table, error) {
	raw, err := c.Fetch(ctx, loc, startYear, endYear)
	if err != nil {
		return models.Table{}, err
	}
	return ToTable(raw)
}
