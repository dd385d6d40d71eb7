package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/launchdash/internal/adapters/chart"
	"github.com/okian/launchdash/internal/domain/types"
)

// Query parameter names.
const (
	paramSite   = "site"
	paramMin    = "min"
	paramMax    = "max"
	paramFormat = "format"
)

// parseSelector reads ?site=, defaulting to ALL.
func parseSelector(q url.Values) types.Selector {
	return types.ParseSelector(q.Get(paramSite))
}

// parseRange reads ?min=&max= over def and validates the result.
func parseRange(q url.Values, def types.PayloadRange) (types.PayloadRange, error) {
	rng := def
	var err error
	if rng.Lo, err = parseBound(q, paramMin, def.Lo); err != nil {
		return types.PayloadRange{}, err
	}
	if rng.Hi, err = parseBound(q, paramMax, def.Hi); err != nil {
		return types.PayloadRange{}, err
	}
	if err := rng.Validate(); err != nil {
		return types.PayloadRange{}, err
	}
	return rng, nil
}

func parseBound(q url.Values, name string, def float64) (float64, error) {
	s := strings.TrimSpace(q.Get(name))
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", ErrBadRequest, name)
	}
	return v, nil
}

func parseFormat(q url.Values) (chart.Format, error) {
	return chart.ParseFormat(q.Get(paramFormat))
}
