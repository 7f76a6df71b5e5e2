/*
 * ticks.go, part of molview.
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

package render

import (
	"context"
	"time"
)

//TickSource delivers the frame ticks of a host. Production hosts tick at a
//fixed rate, tests tick by hand.
type TickSource interface {
	C() <-chan time.Time
	Stop()
}

//IntervalTicks ticks at a fixed rate.
type IntervalTicks struct {
	t *time.Ticker
}

//NewIntervalTicks returns a source that ticks fps times per second.
//Non-positive rates default to 60.
func NewIntervalTicks(fps int) *IntervalTicks {
	if fps <= 0 {
		fps = 60
	}
	return &IntervalTicks{t: time.NewTicker(time.Second / time.Duration(fps))}
}

func (I *IntervalTicks) C() <-chan time.Time { return I.t.C }

func (I *IntervalTicks) Stop() { I.t.Stop() }

//ManualTicks ticks only when Fire is called.
type ManualTicks struct {
	c chan time.Time
}

//NewManualTicks returns a hand-driven tick source.
func NewManualTicks() *ManualTicks {
	return &ManualTicks{c: make(chan time.Time)}
}

func (M *ManualTicks) C() <-chan time.Time { return M.c }

//Stop does nothing, a manual source only ticks when told.
func (M *ManualTicks) Stop() {}

//Fire delivers one tick, blocking until it is received or ctx is done.
func (M *ManualTicks) Fire(ctx context.Context) error {
	select {
	case M.c <- time.Now():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
