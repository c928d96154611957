package hdwallet

import (
	"fmt"
	"strconv"
	"strings"
)

// HardenedOffset is added to an index to mark it hardened (BIP-32's 2^31).
const HardenedOffset uint32 = 0x80000000

// ParsePath parses a textual derivation path such as "m/44'/0'/0'/0/1" into
// its root marker and index sequence. The root is 'm' (private) or 'M'
// (public); each subsequent component is a decimal integer optionally
// suffixed with ' or h to mark it hardened.
func ParsePath(path string) (isPrivateRoot bool, indices []uint32, err error) {
	parts := strings.Split(path, "/")
	if len(parts) == 0 {
		return false, nil, fmt.Errorf("%w: empty path", ErrBadPath)
	}

	switch parts[0] {
	case "m":
		isPrivateRoot = true
	case "M":
		isPrivateRoot = false
	default:
		return false, nil, fmt.Errorf("%w: root must be 'm' or 'M', got %q", ErrBadPath, parts[0])
	}

	indices = make([]uint32, 0, len(parts)-1)
	for _, comp := range parts[1:] {
		idx, err := parsePathComponent(comp)
		if err != nil {
			return false, nil, err
		}
		indices = append(indices, idx)
	}
	return isPrivateRoot, indices, nil
}

func parsePathComponent(comp string) (uint32, error) {
	if comp == "" {
		return 0, fmt.Errorf("%w: empty path component", ErrBadPath)
	}

	hardened := false
	numPart := comp
	switch comp[len(comp)-1] {
	case '\'', 'h', 'H':
		hardened = true
		numPart = comp[:len(comp)-1]
	}

	n, err := strconv.ParseUint(numPart, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a valid index: %v", ErrBadPath, comp, err)
	}
	if hardened {
		if n >= uint64(HardenedOffset) {
			return 0, fmt.Errorf("%w: hardened index %q overflows", ErrBadPath, comp)
		}
		n += uint64(HardenedOffset)
	} else if n >= uint64(1)<<32 {
		return 0, fmt.Errorf("%w: index %q out of range", ErrBadPath, comp)
	}
	return uint32(n), nil
}

// FormatPath renders an index sequence back to its textual form, the
// inverse of ParsePath.
func FormatPath(indices []uint32, private bool) string {
	var b strings.Builder
	if private {
		b.WriteByte('m')
	} else {
		b.WriteByte('M')
	}
	for _, idx := range indices {
		b.WriteByte('/')
		if idx >= HardenedOffset {
			b.WriteString(strconv.FormatUint(uint64(idx-HardenedOffset), 10))
			b.WriteByte('\'')
		} else {
			b.WriteString(strconv.FormatUint(uint64(idx), 10))
		}
	}
	return b.String()
}

// purposeFromPath inspects the first path component (stripped of its
// hardened bit) to infer the BIP-43 purpose: 44/49/84 map to their
// namesakes, anything else defaults to plain BIP-32.
func purposeFromPath(indices []uint32) Purpose {
	if len(indices) == 0 {
		return PurposeBIP32
	}
	first := indices[0]
	if first >= HardenedOffset {
		first -= HardenedOffset
	}
	switch first {
	case 44:
		return PurposeBIP44
	case 49:
		return PurposeBIP49
	case 84:
		return PurposeBIP84
	default:
		return PurposeBIP32
	}
}
