// Package dataset loads the static launch table from a CSV or XLSX file.
package dataset

import "github.com/okian/launchdash/pkg/logger"

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithLogger sets the logger used to report load progress.
func WithLogger(l logger.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// WithSheet selects the worksheet read from XLSX files. Defaults to the first sheet.
func WithSheet(name string) Option {
	return func(ld *Loader) {
		ld.sheet = name
	}
}
