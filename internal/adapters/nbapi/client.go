package nbapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ratewatch/internal/domain"

	"github.com/sirupsen/logrus"
)

// Client queries the National Bank exrates API for one calendar date. It
// tries the configured base endpoints in priority order and returns the
// first complete quotation; a quotation missing any requested code counts
// as a miss for that endpoint.
type Client struct {
	http      *http.Client
	endpoints []string
}

func NewClient(httpClient *http.Client, endpoints []string) *Client {
	return &Client{http: httpClient, endpoints: endpoints}
}

type rateResponse struct {
	Abbreviation string  `json:"Cur_Abbreviation"`
	Scale        int     `json:"Cur_Scale"`
	OfficialRate float64 `json:"Cur_OfficialRate"`
	Date         string  `json:"Date"`
}

func (c *Client) FetchDaily(ctx context.Context, date string, codes []string) (*domain.Snapshot, error) {
	if len(c.endpoints) == 0 {
		return nil, fmt.Errorf("nbapi: no endpoints configured: %w", domain.ErrSourceUnreachable)
	}
	if len(codes) == 0 {
		return nil, errors.New("nbapi: no currency codes requested")
	}

	sawDefinitiveMiss := false
	for _, base := range c.endpoints {
		snap, err := c.fetchFromEndpoint(ctx, base, date, codes)
		if err == nil {
			return snap, nil
		}
		if errors.Is(err, domain.ErrRatesUnavailable) {
			sawDefinitiveMiss = true
			logrus.WithFields(logrus.Fields{"endpoint": base, "date": date}).
				Debug("Endpoint has no complete quotation for date")
			continue
		}
		logrus.WithError(err).WithFields(logrus.Fields{"endpoint": base, "date": date}).
			Warn("Rate endpoint failed, falling back to next")
	}

	if sawDefinitiveMiss {
		return nil, domain.ErrRatesUnavailable
	}
	return nil, domain.ErrSourceUnreachable
}

// fetchFromEndpoint issues one request per code against a single base URL.
// All responses must agree on the effective date, otherwise the endpoint's
// quotation is cross-currency inconsistent and is rejected.
func (c *Client) fetchFromEndpoint(ctx context.Context, base, date string, codes []string) (*domain.Snapshot, error) {
	rates := make(map[string]float64, len(codes))
	effective := ""

	for _, code := range codes {
		rr, err := c.fetchOne(ctx, base, date, code)
		if err != nil {
			return nil, err
		}
		if len(rr.Date) < len(domain.DateLayout) {
			return nil, fmt.Errorf("nbapi: malformed date %q for currency %q", rr.Date, code)
		}
		reported := rr.Date[:len(domain.DateLayout)]
		if _, parseErr := time.Parse(domain.DateLayout, reported); parseErr != nil {
			// A non-ISO key would poison the stored series and stall the
			// cursor, so it must never leave this client.
			return nil, fmt.Errorf("nbapi: malformed date %q for currency %q: %w", rr.Date, code, parseErr)
		}
		if effective == "" {
			effective = reported
		} else if reported != effective {
			return nil, fmt.Errorf("nbapi: inconsistent effective dates %q vs %q", effective, reported)
		}
		if rr.OfficialRate <= 0 {
			return nil, fmt.Errorf("nbapi: non-positive rate %v for currency %q", rr.OfficialRate, code)
		}
		rates[rr.Abbreviation] = rr.OfficialRate
	}

	for _, code := range codes {
		if _, ok := rates[code]; !ok {
			return nil, fmt.Errorf("nbapi: quotation misses currency %q: %w", code, domain.ErrRatesUnavailable)
		}
	}
	return &domain.Snapshot{EffectiveDate: effective, Rates: rates}, nil
}

func (c *Client) fetchOne(ctx context.Context, base, date, code string) (*rateResponse, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("nbapi: failed to parse endpoint URL: %w", err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/exrates/rates/" + code
	q := u.Query()
	q.Set("parammode", "2")
	q.Set("ondate", date)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("nbapi: failed to create request for currency %q: %w", code, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nbapi: failed to execute request for currency %q: %w", code, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// The API answers 404 when no quotation is published for the date.
		return nil, fmt.Errorf("nbapi: no quotation for currency %q on %s: %w", code, date, domain.ErrRatesUnavailable)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("nbapi: unexpected status %d for currency %q: %s", resp.StatusCode, code, resp.Status)
	}

	var rr rateResponse
	if err = json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return nil, fmt.Errorf("nbapi: failed to decode response for currency %q: %w", code, err)
	}
	return &rr, nil
}
