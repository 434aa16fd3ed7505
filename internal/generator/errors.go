package generator

import (
	"errors"
	"fmt"

	"github.com/cebarrett/Silents-Mechanisms/internal/world/geom"
)

// InvariantError reports internal state that a loaded machine can never be
// in. It is raised with panic, not returned.
type InvariantError struct {
	Kind    string
	Pos     geom.Pos
	Message string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Pos, e.Message)
}

// IsInvariantError reports whether err wraps an InvariantError.
func IsInvariantError(err error) bool {
	var ie *InvariantError
	return errors.As(err, &ie)
}
