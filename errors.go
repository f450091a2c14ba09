package archival

import "github.com/cockroachdb/errors"

// Sentinel errors. Library operations report ordinary failures as booleans;
// these mark programming errors and are carried by panics or returned by the
// I/O layers built on top.
var (
	// ErrUnresolvedType is wrapped when a value's type has no serialization
	// strategy.
	ErrUnresolvedType = errors.New("archival: unresolved type")
	// ErrStructureConflict is marked on assertion failures raised when a write
	// would replace an existing value with an incompatible structure.
	ErrStructureConflict = errors.New("archival: structure conflict")
)

// StructureConflictf builds an assertion failure marked with
// ErrStructureConflict. Backends panic with it.
func StructureConflictf(format string, args ...any) error {
	return errors.Mark(errors.AssertionFailedf(format, args...), ErrStructureConflict)
}

// IsUnresolvedType reports whether v, typically a recovered panic value, is an
// ErrUnresolvedType error.
func IsUnresolvedType(v any) bool {
	err, ok := v.(error)
	return ok && errors.Is(err, ErrUnresolvedType)
}
