package starter

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration reports a request or setup that can never be served:
	// bad k, negative slack, empty corpus.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrInvalidK is returned for k <= 0.
	ErrInvalidK = fmt.Errorf("%w: k must be positive", ErrConfiguration)

	// ErrInfeasible is returned when no group of k letter-disjoint words can
	// exist, either because k*wordLength exceeds the alphabet or because the
	// widening loop ran out of letters or slack.
	ErrInfeasible = errors.New("infeasible request")
)
