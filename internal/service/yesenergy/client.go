// Package yesenergy implements the external tabular time-series source: a
// CSV-over-HTTP endpoint queried by item key and date range, authenticated
// with a credential pair from configuration.
package yesenergy

import (
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"ShapeMatch/internal/domain/models"
	drepo "ShapeMatch/internal/domain/repository"
	xhttp "ShapeMatch/pkg/http"
	applogger "ShapeMatch/pkg/logger"
	"ShapeMatch/pkg/util"
)

const sourceName = "yesenergy"

// Client implements a SeriesSource backed by the Yes Energy REST API.
type Client struct {
	baseURL  string
	username string
	password string
	client   *xhttp.Client
	l        *applogger.Logger
}

// New creates a new Yes Energy SeriesSource.
func New(baseURL, username, password string, timeout time.Duration) drepo.SeriesSource {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		client:   xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

// SetLogger injects a structured logger.
func (c *Client) SetLogger(l *applogger.Logger) { c.l = l }

// Name identifies the source in errors and metrics.
func (c *Client) Name() string { return sourceName }

// FetchRange pulls the raw hourly table for one item over [start, end]. A
// response with a header and no data rows is a valid, empty table.
func (c *Client) FetchRange(ctx context.Context, itemKey string, start, end time.Time) (*models.Table, error) {
	began := time.Now()

	var body []byte
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/timeseries/multiple.csv",
		QueryParams: map[string]string{
			"items":     itemKey,
			"startdate": util.DayKey(start),
			"enddate":   util.DayKey(end),
			"agglevel":  "hour",
		},
		BasicAuth: &xhttp.BasicAuth{Username: c.username, Password: c.password},
	}, &body)
	if err != nil {
		if c.l != nil {
			c.l.Error("yesenergy fetch error",
				applogger.String("item", itemKey),
				applogger.String("start", util.DayKey(start)),
				applogger.String("end", util.DayKey(end)),
				applogger.Error(err),
			)
		}
		return nil, &models.UpstreamError{Source: sourceName, Err: err}
	}

	table, err := decodeCSV(body)
	if err != nil {
		if c.l != nil {
			c.l.Error("yesenergy decode error",
				applogger.String("item", itemKey),
				applogger.Error(err),
			)
		}
		return nil, &models.UpstreamError{Source: sourceName, Err: err}
	}

	if c.l != nil {
		c.l.Info("yesenergy fetch ok",
			applogger.String("item", itemKey),
			applogger.String("start", util.DayKey(start)),
			applogger.String("end", util.DayKey(end)),
			applogger.Int("rows", len(table.Rows)),
			applogger.Duration("duration_ms", time.Since(began)),
		)
	}
	return table, nil
}

// decodeCSV splits the payload into a header row and data rows. Cell text is
// left untyped here; classification happens in the tabular package.
func decodeCSV(body []byte) (*models.Table, error) {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return &models.Table{}, nil
	}

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1 // the source pads some rows inconsistently
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("decode csv: %w", err)
	}
	if len(rows) == 0 {
		return &models.Table{}, nil
	}
	return &models.Table{Header: rows[0], Rows: rows[1:]}, nil
}
