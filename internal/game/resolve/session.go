package resolve

// Session is the per-chain scratch state resolvers use to hand results to
// resolvers pushed later in the same chain. One session is created per
// top-level action and shared by reference through every derived context.
// Access goes through typed keys so a missing or mistyped entry is caught
// at the accessor instead of at a distant cast.
type Session struct {
	values map[string]any
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{values: make(map[string]any)}
}

// Key is a typed session key.
type Key[T any] struct {
	name string
}

// NewKey creates a typed key with a stable name.
func NewKey[T any](name string) Key[T] {
	return Key[T]{name: name}
}

// Put stores a value under the key.
func Put[T any](s *Session, k Key[T], v T) {
	s.values[k.name] = v
}

// Get retrieves the value stored under the key, if present and of the
// key's type.
func Get[T any](s *Session, k Key[T]) (T, bool) {
	var zero T
	raw, ok := s.values[k.name]
	if !ok {
		return zero, false
	}
	v, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// Delete removes the value stored under the key.
func Delete[T any](s *Session, k Key[T]) {
	delete(s.values, k.name)
}

// Keys used by the canonical resolution pipeline.
var (
	// KeyResponseOutcome carries a response window's outcome to the
	// resolver that pushed the window.
	KeyResponseOutcome = NewKey[ResponseOutcome]("response.outcome")
	// KeyDodgeRequest carries the shared dodge request of the current
	// provider chain invocation.
	KeyDodgeRequest = NewKey[*DodgeRequest]("dodge.request")
)
