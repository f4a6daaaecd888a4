// Package repository loads the scouting log and serves point-in-time views of it.
package repository

import "github.com/okian/scoutbrief/pkg/logger"

// Option applies a configuration option to a load.
type Option func(*loader)

// WithLogger sets the logger used to report skipped rows.
func WithLogger(l logger.Logger) Option {
	return func(ld *loader) {
		if l != nil {
			ld.logger = l
		}
	}
}
