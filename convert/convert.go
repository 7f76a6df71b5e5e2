/*
 * convert.go, part of molview.
 *
 * Copyright 2021 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package convert turns line chemical notation (SMILES) into atom records,
//through a remote conversion service.
package convert

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	chem "github.com/rmera/molview"
	"github.com/rmera/molview/internal/logging"
)

//Converter turns a chemical notation into atom records.
type Converter interface {
	Convert(ctx context.Context, notation string) ([]chem.AtomRecord, error)
}

//A loose check: at least 7 characters from the SMILES alphabet, not starting with J.
var notation = regexp.MustCompile(`(?i)^[^J][0-9BCOHNSOPrIFla@+\-\[\]\(\)\\=#$]{6,}$`)

//CheckNotation returns an error of kind chem.ErrUnrecognizedFormat if text,
//trimmed, does not look like a chemical line notation.
func CheckNotation(text string) error {
	if !notation.MatchString(strings.TrimSpace(text)) {
		err := chem.NewError(chem.ErrUnrecognizedFormat, nil, "%.40q", strings.TrimSpace(text))
		err.Decorate("CheckNotation")
		return err
	}
	return nil
}

//DefaultBaseURL is the ChEMBL utilities API.
const DefaultBaseURL = "https://www.ebi.ac.uk/chembl/api/utils"

//Responses larger than this are refused.
const maxBody = 16 << 20

//StatusError is a non-2xx answer of the conversion service.
type StatusError struct {
	Op         string
	StatusCode int
	RequestID  string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: HTTP %d [request_id=%s]: %s", e.Op, e.StatusCode, e.RequestID, e.Body)
}

//Remote converts notations with two chained calls to a ChEMBL-like service:
//notation to connection table, then connection table to XYZ coordinates.
//It never retries.
type Remote struct {
	baseURL string
	client  *http.Client
	logger  logging.Logger
}

//Option configures a Remote.
type Option func(*Remote)

func WithBaseURL(u string) Option { return func(R *Remote) { R.baseURL = strings.TrimRight(u, "/") } }

func WithHTTPClient(c *http.Client) Option { return func(R *Remote) { R.client = c } }

//WithTimeout sets the timeout of the whole HTTP exchange, for each of the two calls.
//It applies to a copy of the client set so far.
func WithTimeout(d time.Duration) Option {
	return func(R *Remote) {
		c := *R.client
		c.Timeout = d
		R.client = &c
	}
}

func WithLogger(l logging.Logger) Option { return func(R *Remote) { R.logger = l } }

//NewRemote returns a converter for DefaultBaseURL unless told otherwise.
func NewRemote(opts ...Option) *Remote {
	R := &Remote{
		baseURL: DefaultBaseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  logging.NewNopLogger(),
	}
	for _, o := range opts {
		o(R)
	}
	return R
}

//Convert checks the notation, then asks the service for a connection table and
//for its 3D coordinates. The first XYZ frame is returned. Every failure after the
//notation check is of kind chem.ErrConversionFailed, wrapping the upstream error.
func (R *Remote) Convert(ctx context.Context, text string) ([]chem.AtomRecord, error) {
	if err := CheckNotation(text); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	start := time.Now()
	ctab, err := R.get(ctx, "smiles2ctab", text)
	if err != nil {
		return nil, failed("Convert", err)
	}
	xyz, err := R.get(ctx, "ctab2xyz", ctab)
	if err != nil {
		return nil, failed("Convert", err)
	}
	frames, err := chem.ReadXYZ(strings.NewReader(xyz))
	if err != nil {
		return nil, failed("Convert", err)
	}
	//an answer we can't load is as bad as no answer.
	if err := chem.Validate(frames[0]); err != nil {
		return nil, failed("Convert", err)
	}
	R.logger.Debug("notation converted",
		logging.String("notation", text),
		logging.Int("atoms", len(frames[0])),
		logging.Duration("elapsed", time.Since(start)))
	return frames[0], nil
}

func failed(caller string, err error) error {
	e := chem.NewError(chem.ErrConversionFailed, err, "")
	e.Decorate(caller)
	return e
}

func (R *Remote) get(ctx context.Context, op, payload string) (string, error) {
	u := R.baseURL + "/" + op + "/" + base64.URLEncoding.EncodeToString([]byte(payload))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	reqID := uuid.New().String()
	req.Header.Set("X-Request-ID", reqID)
	req.Header.Set("Accept", "text/plain")
	resp, err := R.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", fmt.Errorf("%s: reading response: %w", op, err)
	}
	R.logger.Debug("conversion call",
		logging.String("op", op),
		logging.Int("status", resp.StatusCode),
		logging.String("request_id", reqID))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{Op: op, StatusCode: resp.StatusCode, RequestID: reqID, Body: truncate(string(body), 200)}
	}
	if strings.TrimSpace(string(body)) == "" {
		return "", fmt.Errorf("%s: %w", op, errEmptyBody)
	}
	return string(body), nil
}

var errEmptyBody = errors.New("empty response")

//truncate cuts s to at most n bytes, on a rune boundary.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
