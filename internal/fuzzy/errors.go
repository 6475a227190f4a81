package fuzzy

import "errors"

var (
	// ConfigurationErr signals malformed fuzzy set or partition parameters.
	ConfigurationErr = errors.New("invalid configuration")
)
