/*
 * convert_test.go, part of molview.
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

package convert

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chem "github.com/rmera/molview"
)

const ethanolXYZ = `3
ethanol, heavy atoms
C -0.748 -0.015 0.024
C 0.558 0.420 -0.278
O 0.716 1.807 0.025
`

const ctab = "fake molfile\nM  END\n"

//service fakes the two conversion endpoints. xyz is what ctab2xyz answers.
func service(t *testing.T, calls *atomic.Int32, xyz string, status int) *httptest.Server {
	return httptest.NewServer(endpoints(t, calls, xyz, status))
}

func endpoints(t *testing.T, calls *atomic.Int32, xyz string, status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, err := uuid.Parse(r.Header.Get("X-Request-ID"))
		assert.NoError(t, err, "every call carries a request id")
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if !assert.Len(t, parts, 2) {
			return
		}
		payload, err := base64.URLEncoding.DecodeString(parts[1])
		assert.NoError(t, err)
		if status != http.StatusOK {
			http.Error(w, "nope", status)
			return
		}
		switch parts[0] {
		case "smiles2ctab":
			assert.Equal(t, "CC(O)CC=O", string(payload))
			w.Write([]byte(ctab))
		case "ctab2xyz":
			assert.Equal(t, ctab, string(payload))
			w.Write([]byte(xyz))
		default:
			http.NotFound(w, r)
		}
	})
}

func TestCheckNotation(t *testing.T) {
	for _, ok := range []string{"CC(O)CC=O", "  c1ccccc1  ", "C[N+](C)(C)C", "OC(=O)C#N"} {
		assert.NoError(t, CheckNotation(ok), ok)
	}
	for _, bad := range []string{"", "CCO", "JCCCCCC", "jccccccc", "hello world", "3\nwater\nO 0 0 0"} {
		err := CheckNotation(bad)
		assert.ErrorIs(t, err, chem.ErrUnrecognizedFormat, bad)
	}
}

func TestConvert(t *testing.T) {
	var calls atomic.Int32
	srv := service(t, &calls, ethanolXYZ, http.StatusOK)
	defer srv.Close()
	R := NewRemote(WithBaseURL(srv.URL+"/"), WithHTTPClient(srv.Client()))
	recs, err := R.Convert(context.Background(), " CC(O)CC=O ")
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "O", recs[2].Symbol)
	assert.Equal(t, []float64{0.716, 1.807, 0.025}, recs[2].Position)
	assert.Equal(t, int32(2), calls.Load())
}

func TestConvertFailures(t *testing.T) {
	cases := []struct {
		name   string
		xyz    string
		status int
		cause  error
	}{
		{"status", ethanolXYZ, http.StatusInternalServerError, nil},
		{"empty", "   ", http.StatusOK, nil},
		{"garbage", "not an xyz file", http.StatusOK, chem.ErrMalformedInput},
		{"no atoms", "0\nnothing\n", http.StatusOK, chem.ErrEmptyInput},
		{"unknown element", "1\nx\nXx 0 0 0\n", http.StatusOK, chem.ErrInvalidSymbol},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := service(t, &calls, c.xyz, c.status)
			defer srv.Close()
			R := NewRemote(WithBaseURL(srv.URL), WithTimeout(5*time.Second))
			recs, err := R.Convert(context.Background(), "CC(O)CC=O")
			assert.Nil(t, recs)
			assert.ErrorIs(t, err, chem.ErrConversionFailed)
			if c.cause != nil {
				assert.ErrorIs(t, err, c.cause)
			}
		})
	}

	var calls atomic.Int32
	srv := service(t, &calls, ethanolXYZ, http.StatusBadGateway)
	defer srv.Close()
	_, err := NewRemote(WithBaseURL(srv.URL)).Convert(context.Background(), "CC(O)CC=O")
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadGateway, se.StatusCode)
	assert.Equal(t, "smiles2ctab", se.Op)
	assert.Equal(t, int32(1), calls.Load(), "no retries")
}

func TestWithTimeoutKeepsClient(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewTLSServer(endpoints(t, &calls, ethanolXYZ, http.StatusOK))
	defer srv.Close()
	//only srv.Client() trusts the test certificate.
	R := NewRemote(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()), WithTimeout(5*time.Second))
	assert.Equal(t, 5*time.Second, R.client.Timeout)
	assert.Equal(t, srv.Client().Transport, R.client.Transport)
	assert.NotSame(t, srv.Client(), R.client)
	recs, err := R.Convert(context.Background(), "CC(O)CC=O")
	require.NoError(t, err)
	assert.Len(t, recs, 3)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd...", truncate("abcdefgh", 4))
	//"é" takes 2 bytes, a cut at 2 would split it.
	got := truncate("aé€", 2)
	assert.Equal(t, "a...", got)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "aé...", truncate("aé€", 4))
}

func TestConvertRejectsBeforeNetwork(t *testing.T) {
	var calls atomic.Int32
	srv := service(t, &calls, ethanolXYZ, http.StatusOK)
	defer srv.Close()
	_, err := NewRemote(WithBaseURL(srv.URL)).Convert(context.Background(), "water")
	assert.ErrorIs(t, err, chem.ErrUnrecognizedFormat)
	assert.Equal(t, int32(0), calls.Load())
}

func TestConvertCanceled(t *testing.T) {
	var calls atomic.Int32
	srv := service(t, &calls, ethanolXYZ, http.StatusOK)
	defer srv.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRemote(WithBaseURL(srv.URL)).Convert(ctx, "CC(O)CC=O")
	assert.ErrorIs(t, err, chem.ErrConversionFailed)
	assert.ErrorIs(t, err, context.Canceled)
}
