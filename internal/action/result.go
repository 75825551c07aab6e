// Copyright (c) 2026 Kodingin Dev Studio <hi@kodingin.dev>
// All rights reserved. See LICENSE for details.

// Package action is the state-change boundary between form submissions and
// the post store. Every mutating operation returns a uniform Result and
// declares the set of cached views it affects; a single dispatcher performs
// the invalidation, keeping the mutations themselves side-effect-free.
package action

// Result is the uniform outcome of a mutating operation: either a success
// carrying data or a failure carrying a human-readable message. No raw
// error ever crosses this boundary.
type Result[T any] struct {
	Success bool
	Data    T
	Error   string
}

// OK builds a success result carrying data.
func OK[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

// Fail builds a failure result with a human-readable message.
func Fail[T any](msg string) Result[T] {
	return Result[T]{Success: false, Error: msg}
}
