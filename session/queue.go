/*
 * queue.go, part of molview.
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

package session

import "sync"

//Queue is a Dispatcher for hosts that drain events themselves, at a point of
//their own loop. Dispatch never blocks.
type Queue struct {
	mu    sync.Mutex
	fs    []func()
	ready chan struct{}
}

//NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{ready: make(chan struct{}, 1)}
}

//Dispatch queues f. It can be called from any goroutine.
func (q *Queue) Dispatch(f func()) {
	q.mu.Lock()
	q.fs = append(q.fs, f)
	q.mu.Unlock()
	select {
	case q.ready <- struct{}{}:
	default:
	}
}

//Ready is signaled when there is something to drain.
func (q *Queue) Ready() <-chan struct{} { return q.ready }

//Drain runs every queued function, in order, on the calling goroutine, and
//returns how many ran.
func (q *Queue) Drain() int {
	q.mu.Lock()
	fs := q.fs
	q.fs = nil
	q.mu.Unlock()
	for _, f := range fs {
		f()
	}
	return len(fs)
}
