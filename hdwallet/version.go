package hdwallet

import "fmt"

// Network selects the Bitcoin network a node's addresses and version bytes
// belong to.
type Network uint8

const (
	Mainnet Network = iota
	Testnet
)

func (n Network) String() string {
	if n == Testnet {
		return "testnet"
	}
	return "mainnet"
}

// KeyType distinguishes a private extended key from its public projection.
type KeyType uint8

const (
	PrivateKeyType KeyType = iota
	PublicKeyType
)

// Purpose identifies the script-type convention a node's path follows, per
// BIP-43/44/49/84. It determines the version prefix (and hence address
// type) used when an extended key is serialized.
type Purpose uint8

const (
	// PurposeBIP32 is the default when a node's path does not match a
	// known BIP-44/49/84 purpose field; version bytes xprv/xpub/tprv/tpub.
	PurposeBIP32 Purpose = iota
	PurposeBIP44
	PurposeBIP49
	PurposeBIP84
)

func (p Purpose) String() string {
	switch p {
	case PurposeBIP44:
		return "BIP-44"
	case PurposeBIP49:
		return "BIP-49"
	case PurposeBIP84:
		return "BIP-84"
	default:
		return "BIP-32"
	}
}

type versionKey struct {
	network Network
	keyType KeyType
	purpose Purpose
}

// versionRegistry is the closed, total mapping from (network, key type,
// purpose) to its 4-byte version prefix, per BIP-32 and SLIP-0132.
var versionRegistry = map[versionKey]uint32{
	{Mainnet, PrivateKeyType, PurposeBIP32}: 0x0488ADE4, // xprv
	{Mainnet, PublicKeyType, PurposeBIP32}:  0x0488B21E, // xpub
	{Testnet, PrivateKeyType, PurposeBIP32}: 0x04358394, // tprv
	{Testnet, PublicKeyType, PurposeBIP32}:  0x043587CF, // tpub

	{Mainnet, PrivateKeyType, PurposeBIP44}: 0x0488ADE4, // xprv (BIP-44 shares BIP-32's prefix)
	{Mainnet, PublicKeyType, PurposeBIP44}:  0x0488B21E, // xpub
	{Testnet, PrivateKeyType, PurposeBIP44}: 0x04358394, // tprv
	{Testnet, PublicKeyType, PurposeBIP44}:  0x043587CF, // tpub

	{Mainnet, PrivateKeyType, PurposeBIP49}: 0x049D7878, // yprv
	{Mainnet, PublicKeyType, PurposeBIP49}:  0x049D7CB2, // ypub
	{Testnet, PrivateKeyType, PurposeBIP49}: 0x044A4E28, // uprv
	{Testnet, PublicKeyType, PurposeBIP49}:  0x044A5262, // upub

	{Mainnet, PrivateKeyType, PurposeBIP84}: 0x04B2430C, // zprv
	{Mainnet, PublicKeyType, PurposeBIP84}:  0x04B24746, // zpub
	{Testnet, PrivateKeyType, PurposeBIP84}: 0x045F18BC, // vprv
	{Testnet, PublicKeyType, PurposeBIP84}:  0x045F1CF6, // vpub
}

// reverseVersionRegistry maps a version prefix back to its attributes.
// Because BIP-44 and BIP-32 share a prefix, a prefix lookup resolves to
// PurposeBIP32 when ambiguous; callers that derived the node along a known
// path should prefer the path's own purpose instead of trusting the
// round-tripped one (see Node.Purpose and DESIGN.md).
var reverseVersionRegistry = buildReverseRegistry()

func buildReverseRegistry() map[uint32]versionKey {
	m := make(map[uint32]versionKey, len(versionRegistry))
	// Iterate in a fixed order so BIP-32 (the lower Purpose value) wins the
	// prefix collision with BIP-44 deterministically.
	for _, p := range []Purpose{PurposeBIP32, PurposeBIP44, PurposeBIP49, PurposeBIP84} {
		for _, n := range []Network{Mainnet, Testnet} {
			for _, kt := range []KeyType{PrivateKeyType, PublicKeyType} {
				key := versionKey{n, kt, p}
				version := versionRegistry[key]
				if _, exists := m[version]; !exists {
					m[version] = key
				}
			}
		}
	}
	return m
}

// encodeVersion looks up the 4-byte version prefix for a (network, key
// type, purpose) triple. The registry is total over its declared domain, so
// this never fails for the Purpose/KeyType/Network values defined above.
func encodeVersion(network Network, keyType KeyType, purpose Purpose) uint32 {
	v, ok := versionRegistry[versionKey{network, keyType, purpose}]
	if !ok {
		panic(fmt.Sprintf("hdwallet: no version registered for %s/%v/%s", network, keyType, purpose))
	}
	return v
}

// decodeVersion recovers (network, key type, purpose) from a 4-byte version
// prefix, or ErrUnknownVersion if the prefix is not registered.
func decodeVersion(version uint32) (Network, KeyType, Purpose, error) {
	key, ok := reverseVersionRegistry[version]
	if !ok {
		return 0, 0, 0, fmt.Errorf("%w: %#08x", ErrUnknownVersion, version)
	}
	return key.network, key.keyType, key.purpose, nil
}
