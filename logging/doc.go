// SPDX-License-Identifier: MIT

// Package logging builds the zap loggers used by the command line tool.
//
// Two modes:
//   - Production: JSON lines, no stack traces below error level.
//   - Development: colored console output with caller information.
//
// The library packages never build their own logger; they accept a
// *zap.Logger (see descent.WithLogger) and default to zap.NewNop().
//
//	logger, err := logging.New(logging.Config{Level: "debug", Development: true})
//	defer logger.Sync()
package logging
