// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package deadline races asynchronous operations against a timer.
//
// A timed out operation is abandoned, never cancelled: the underlying driver
// does not guarantee safe cancellation, therefore a timeout means that the
// caller gave up waiting and not that the operation did not happen.
package deadline

import (
	"errors"
	"time"
)

// ErrTimeout is returned when the deadline elapses before the operation
// completes.
var ErrTimeout = errors.New("deadline exceeded")

// Future represents the eventual result of an operation awaited by exactly
// one caller.
type Future[T any] interface {
	// Done is closed once the result is available.
	Done() <-chan struct{}
	// Result returns the operation result, it must only be called after
	// Done is closed.
	Result() (T, error)
}

// Task is a Future backed by a goroutine.
type Task[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Go starts an operation and returns its Future.
func Go[T any](op func() (T, error)) *Task[T] {
	t := &Task[T]{
		done: make(chan struct{}),
	}

	go func() {
		defer close(t.done)
		t.val, t.err = op()
	}()

	return t
}

// Done implements Future.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Result implements Future.
func (t *Task[T]) Result() (T, error) {
	return t.val, t.err
}

// Guard waits for a Future until the deadline d elapses on the argument
// clock. The result is returned unmodified if the operation completes first,
// ErrTimeout otherwise.
//
// The deadline is inclusive: an operation found complete when the timer
// fires wins the race.
func Guard[T any](clk Clock, d time.Duration, f Future[T]) (val T, err error) {
	timer := clk.After(d)

	select {
	case <-f.Done():
		return f.Result()
	case <-timer:
	}

	select {
	case <-f.Done():
		return f.Result()
	default:
		return val, ErrTimeout
	}
}

// Run starts an operation and guards it, see Go and Guard.
func Run[T any](clk Clock, d time.Duration, op func() (T, error)) (T, error) {
	return Guard[T](clk, d, Go(op))
}
