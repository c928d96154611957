package hdwallet

import "errors"

// Error taxonomy for the derivation engine and extended-key codec. Fallible
// operations return one of these (or a %w-wrapped variant), except for
// MasterFromSeed's seed-length check, which returns a plain error; none
// are retried automatically, since InvalidChild in particular is a signal
// the caller must act on (advance to the next index), not a failure to
// paper over.
var (
	// ErrInvalidMasterKey is returned by MasterFromSeed when the derived
	// scalar is zero or not less than the curve order.
	ErrInvalidMasterKey = errors.New("hdwallet: invalid master key")

	// ErrInvalidChild is returned by Ckd when HMAC output IL is >= the
	// curve order, or the resulting private scalar is zero, or the
	// resulting public point is the point at infinity.
	ErrInvalidChild = errors.New("hdwallet: invalid child")

	// ErrHardenedFromPublic is returned when a hardened index is requested
	// from a public-only node.
	ErrHardenedFromPublic = errors.New("hdwallet: cannot derive hardened child from public node")

	// ErrDepthOverflow is returned when a derivation would push depth past
	// 255.
	ErrDepthOverflow = errors.New("hdwallet: derivation path too long")

	// ErrBadLength is returned by Parse when the decoded payload is not
	// exactly 78 bytes.
	ErrBadLength = errors.New("hdwallet: bad extended key length")

	// ErrBadChecksum is returned by Parse when the base58check checksum
	// does not verify.
	ErrBadChecksum = errors.New("hdwallet: bad base58check checksum")

	// ErrBadKeyPrefix is returned by Parse when a private extended key's
	// key material does not begin with 0x00.
	ErrBadKeyPrefix = errors.New("hdwallet: bad private key prefix")

	// ErrUnknownVersion is returned when a 4-byte version prefix does not
	// match any entry in the version registry.
	ErrUnknownVersion = errors.New("hdwallet: unknown version prefix")

	// ErrInconsistentMaster is returned when a depth-0 extended key has a
	// nonzero parent fingerprint or index.
	ErrInconsistentMaster = errors.New("hdwallet: inconsistent master key fields")

	// ErrBadPath is returned by ParsePath on a malformed path string.
	ErrBadPath = errors.New("hdwallet: bad derivation path")
)
