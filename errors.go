package gatsby

import (
	"errors"
	"fmt"

	"github.com/bahadirdogan/gatsby/filter"
	"github.com/bahadirdogan/gatsby/query"
)

var (
	// ErrInvalidPattern is returned when a regex or glob operand cannot be
	// compiled into a matching predicate.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrIndexBuild is returned when the store fails to build a
	// typed-chain index. The failure is hard: a silently skipped index
	// would produce incorrect query results.
	ErrIndexBuild = errors.New("index build failed")
)

// translateError maps layer-internal sentinels onto the public error
// contract. The original error remains reachable via errors.Unwrap.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, filter.ErrInvalidPattern) {
		return fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}
	if errors.Is(err, query.ErrIndexBuild) {
		return fmt.Errorf("%w: %w", ErrIndexBuild, err)
	}
	return err
}
