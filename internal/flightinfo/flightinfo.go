// Package flightinfo looks up live flight details from the
// aviationstack API, used to prefill flight records from just a flight
// number.
//
// The lookup is strictly best-effort: any failure (no API key, network
// error, unknown flight) yields nil, and the caller proceeds with
// whatever the user typed. A flaky third-party API must never block a
// record from being saved.
package flightinfo

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "http://api.aviationstack.com/v1"

// Info is the subset of aviationstack's response this app cares about.
// String fields fall back to "Unknown" placeholders; pointer fields are
// nil when the API didn't report them.
type Info struct {
	FlightNumber     string
	Airline          string
	DepartureAirport string
	ArrivalAirport   string
	DepartureTime    *time.Time
	ArrivalTime      *time.Time
	Gate             *string
	Status           *string
}

// Client queries the aviationstack flights endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient builds a client. An empty apiKey produces a client whose
// Lookup always returns nil, so callers never need to special-case a
// missing key.
func NewClient(apiKey string, logger *slog.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// aviationstack's response shape, trimmed to the fields Lookup reads.
// Missing or null JSON fields decode to "" and are handled by the
// fallbacks in Lookup.
type apiResponse struct {
	Data []apiFlight `json:"data"`
}

type apiFlight struct {
	FlightStatus string      `json:"flight_status"`
	Departure    apiEndpoint `json:"departure"`
	Arrival      apiEndpoint `json:"arrival"`
	Airline      struct {
		Name string `json:"name"`
	} `json:"airline"`
	Flight struct {
		IATA string `json:"iata"`
		ICAO string `json:"icao"`
	} `json:"flight"`
}

type apiEndpoint struct {
	Airport   string `json:"airport"`
	IATA      string `json:"iata"`
	Scheduled string `json:"scheduled"`
	Gate      string `json:"gate"`
}

// Lookup fetches details for a flight number, which may be an IATA code
// (QR639), an ICAO code (QTR639), or a bare number. The API exposes
// those as separate query parameters, so each is tried in turn and the
// first hit wins. Returns nil when nothing matched or anything failed.
func (c *Client) Lookup(ctx context.Context, flightNumber string) *Info {
	if c.apiKey == "" {
		c.logger.Debug("flight lookup skipped: no API key configured")
		return nil
	}

	clean := strings.ToUpper(strings.TrimSpace(flightNumber))

	for _, param := range []string{"flight_iata", "flight_icao", "flight_number"} {
		flight, ok := c.query(ctx, param, clean)
		if !ok {
			continue
		}
		return buildInfo(flight, clean)
	}

	c.logger.Info("no flight data found", "flight_number", clean)
	return nil
}

// query performs one request against the flights endpoint. ok is false
// when the request failed or returned no results.
func (c *Client) query(ctx context.Context, param, value string) (apiFlight, bool) {
	q := url.Values{}
	q.Set("access_key", c.apiKey)
	q.Set(param, value)
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/flights?"+q.Encode(), nil)
	if err != nil {
		c.logger.Warn("building flight lookup request", "error", err)
		return apiFlight{}, false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("flight lookup request failed", "param", param, "error", err)
		return apiFlight{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("flight lookup returned non-OK status", "param", param, "status", resp.StatusCode)
		return apiFlight{}, false
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.logger.Warn("decoding flight lookup response", "param", param, "error", err)
		return apiFlight{}, false
	}
	if len(body.Data) == 0 {
		return apiFlight{}, false
	}

	return body.Data[0], true
}

// buildInfo maps the raw API record onto Info, applying the same
// fallbacks for absent fields regardless of which query matched.
func buildInfo(f apiFlight, clean string) *Info {
	info := &Info{
		FlightNumber:     firstNonEmpty(f.Flight.IATA, f.Flight.ICAO, clean),
		Airline:          firstNonEmpty(f.Airline.Name, "Unknown Airline"),
		DepartureAirport: firstNonEmpty(f.Departure.Airport, f.Departure.IATA, "Unknown"),
		ArrivalAirport:   firstNonEmpty(f.Arrival.Airport, f.Arrival.IATA, "Unknown"),
		DepartureTime:    parseScheduled(f.Departure.Scheduled),
		ArrivalTime:      parseScheduled(f.Arrival.Scheduled),
	}
	if f.Departure.Gate != "" {
		gate := f.Departure.Gate
		info.Gate = &gate
	}
	status := firstNonEmpty(f.FlightStatus, "Unknown")
	info.Status = &status

	return info
}

// parseScheduled parses aviationstack's scheduled timestamps, which are
// RFC 3339 with a numeric offset. Unparseable input becomes nil rather
// than an error; a missing time is not worth failing the lookup over.
func parseScheduled(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
