package hdwallet

import (
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// extendedKeyLength is the fixed size of a BIP-32 extended key payload,
// before base58check framing: version(4) || depth(1) || parent
// fingerprint(4) || index(4) || chain code(32) || key material(33).
const extendedKeyLength = 4 + 1 + 4 + 4 + 32 + 33

// checksumLength is the trailing checksum base58check appends: the first
// 4 bytes of SHA256(SHA256(payload)).
const checksumLength = 4

// Serialize encodes a node as a 78-byte extended key payload (no
// base58check framing). Purpose is determined per spec: purposeOverride,
// if non-nil, wins outright (e.g. presenting the same key material as a
// zpub instead of an xpub); otherwise, if the node's own derivation path
// is known and non-empty (its in-memory parent chain reaches the master),
// the purpose is inferred fresh from the path's first component every
// call, the way the original recomputes it on every serialize rather than
// trusting a stored field; only when no path is known (a node produced by
// Parse) or the node is itself a root does the node's own stored Purpose
// — the prefix last observed on the wire — apply.
func Serialize(n *Node, purposeOverride *Purpose) ([]byte, error) {
	purpose := n.purpose
	if indices, ok := n.PathIndices(); ok && len(indices) > 0 {
		purpose = purposeFromPath(indices)
	}
	if purposeOverride != nil {
		purpose = *purposeOverride
	}

	keyType := PublicKeyType
	if n.IsPrivate() {
		keyType = PrivateKeyType
	}
	version := encodeVersion(n.network, keyType, purpose)

	buf := make([]byte, 0, extendedKeyLength)
	buf = append(buf, serialize32(version)...)
	buf = append(buf, n.depth)
	buf = append(buf, n.parentFingerprint[:]...)
	buf = append(buf, serialize32(n.index)...)
	buf = append(buf, n.chainCode[:]...)

	if n.IsPrivate() {
		privBytes, _ := n.PrivateKeyBytes()
		buf = append(buf, 0x00)
		buf = append(buf, privBytes[:]...)
	} else {
		buf = append(buf, n.pub.SerializeCompressed()...)
	}

	if len(buf) != extendedKeyLength {
		return nil, fmt.Errorf("hdwallet: internal error: serialized %d bytes, want %d", len(buf), extendedKeyLength)
	}
	return buf, nil
}

// SerializeString encodes a node as a base58check extended key string (the
// familiar xprv.../xpub... textual form).
func SerializeString(n *Node, purposeOverride *Purpose) (string, error) {
	raw, err := Serialize(n, purposeOverride)
	if err != nil {
		return "", err
	}
	return base58.Encode(appendChecksum(raw)), nil
}

// appendChecksum appends the first 4 bytes of SHA256(SHA256(payload)),
// the framing base58check uses over the whole version-prefixed payload
// (distinct from btcutil's single-byte-version CheckEncode, which doesn't
// fit BIP-32's 4-byte version field).
func appendChecksum(payload []byte) []byte {
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	out := make([]byte, 0, len(payload)+checksumLength)
	out = append(out, payload...)
	out = append(out, second[:checksumLength]...)
	return out
}

// Parse decodes a base58check extended key string back into a Node. The
// returned node's Parent is always nil (no in-memory lineage is known for
// a parsed key); ParentFingerprint is preserved from the wire format.
func Parse(s string) (*Node, error) {
	decoded := base58.Decode(s)
	if len(decoded) != extendedKeyLength+checksumLength {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrBadLength, len(decoded), extendedKeyLength+checksumLength)
	}
	payload, checksum := decoded[:extendedKeyLength], decoded[extendedKeyLength:]

	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	for i := 0; i < checksumLength; i++ {
		if checksum[i] != second[i] {
			return nil, ErrBadChecksum
		}
	}

	return ParseBytes(payload)
}

// ParseBytes decodes a raw (non-base58check-framed) 78-byte extended key
// payload into a Node.
func ParseBytes(raw []byte) (*Node, error) {
	if len(raw) != extendedKeyLength {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrBadLength, len(raw), extendedKeyLength)
	}

	version := uint32(raw[0])<<24 | uint32(raw[1])<<16 | uint32(raw[2])<<8 | uint32(raw[3])
	network, keyType, purpose, err := decodeVersion(version)
	if err != nil {
		return nil, err
	}

	depth := raw[4]
	var parentFP [4]byte
	copy(parentFP[:], raw[5:9])
	index := uint32(raw[9])<<24 | uint32(raw[10])<<16 | uint32(raw[11])<<8 | uint32(raw[12])
	var chainCode [32]byte
	copy(chainCode[:], raw[13:45])
	keyMaterial := raw[45:78]

	if depth == 0 && (parentFP != [4]byte{} || index != 0) {
		return nil, ErrInconsistentMaster
	}

	n := &Node{
		chainCode:         chainCode,
		depth:             depth,
		index:             index,
		parentFingerprint: parentFP,
		network:           network,
		purpose:           purpose,
	}

	if keyType == PrivateKeyType {
		if keyMaterial[0] != 0x00 {
			return nil, ErrBadKeyPrefix
		}
		var scalar secp256k1.ModNScalar
		if overflow := scalar.SetByteSlice(keyMaterial[1:]); overflow {
			return nil, fmt.Errorf("%w: private key scalar out of range", ErrBadLength)
		}
		n.priv = secp256k1.NewPrivateKey(&scalar)
		n.pub = n.priv.PubKey()
	} else {
		pub, err := secp256k1.ParsePubKey(keyMaterial)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadLength, err)
		}
		n.pub = pub
	}

	return n, nil
}
