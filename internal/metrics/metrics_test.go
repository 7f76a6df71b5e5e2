/*
 * metrics_test.go, part of molview.
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

package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New("molview", false)
	m.FrameRendered()
	m.FrameRendered()
	m.BufferReset()
	m.LoadDone(ResultOK, 3)
	m.LoadDone(ResultError, 0)
	m.ConversionDone(ResultDiscarded, 120*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.frames))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.resets))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.loads.WithLabelValues(ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.loads.WithLabelValues(ResultError)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.atoms), "failed loads keep the atom count")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.conversions.WithLabelValues(ResultDiscarded)))
}

func TestHandler(t *testing.T) {
	m := New("molview", true)
	m.FrameRendered()
	srv := httptest.NewServer(m.Handler())
	defer srv.Close()
	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "molview_frames_rendered_total 1"))
	assert.True(t, strings.Contains(string(body), "go_goroutines"))
}
