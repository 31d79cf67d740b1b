package corpus

// Codec converts a typed content value to and from bytes.
//
// Encode must be deterministic for identical logical values
// (fixed field order, no embedded timestamps):
// the encoded bytes feed the version hash,
// and a noncanonical encoding would make identical content
// hash differently, breaking deduplication.
//
// Decode must validate structural and semantic correctness
// (required fields present, enum values constrained)
// and fail with an error rather than silently coercing.
type Codec[T any] interface {
	Encode(T) ([]byte, error)
	Decode([]byte) (T, error)
}
