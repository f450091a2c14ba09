package archival

// Codec turns a serializable value into bytes and back. Backend packages
// provide one for their format.
type Codec interface {
	// Marshal serializes v, which must be resolvable (see Resolve).
	Marshal(v any) ([]byte, error)
	// Unmarshal deserializes data into v.
	Unmarshal(data []byte, v any) error
	// Name returns the codec identifier used for diagnostics.
	Name() string
}
