// Package log provides the logging interface for the taskstore library.
//
// The library accepts any implementation of [Logger]. Use [Noop] to disable
// logging (this is the default when no logger is configured).
//
// To integrate with your application's logger, implement the [Logger]
// interface. For most use cases only the format methods (Infof, Warningf,
// Errorf, Debugf) need meaningful implementations.
package log

import "github.com/taskbridge/taskstore/internal/log"

// Logger is the interface that loggers must implement for the library.
type Logger = log.Logger

// Kv is a helper type for structured logging key-value pairs.
type Kv = log.Kv

// Noop is a logger that discards all log output. This is the default logger
// when none is provided in [taskstore.Config].
var Noop = log.Noop
