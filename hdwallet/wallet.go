package hdwallet

// AddressEncoder is the small interface the wallet facade uses to turn a
// derived node's key material into a human-facing address and (for
// private nodes) a WIF string, without hdwallet depending on any concrete
// address/base58 codec itself. The addresses package implements it; tests
// can substitute a stub.
type AddressEncoder interface {
	Address(purpose Purpose, hash160 [20]byte, testnet bool) (string, error)
	WIF(scalar [32]byte, testnet bool, compressed bool) string
}

// AccountEntry is one derived leaf in a wallet account scan: its path, the
// node itself, and (when an encoder is supplied) its rendered address and
// WIF.
type AccountEntry struct {
	Path    string
	Node    *Node
	Address string
	WIF     string
}

// accountPathPrefix returns the BIP-44/49/84 account-level path prefix
// (purpose'/coin_type'/account') for a purpose, given a SLIP-44 coin type.
func accountPathPrefix(purpose Purpose, coinType uint32) []uint32 {
	var purposeIndex uint32
	switch purpose {
	case PurposeBIP49:
		purposeIndex = 49
	case PurposeBIP84:
		purposeIndex = 84
	default:
		purposeIndex = 44
	}
	return []uint32{
		purposeIndex + HardenedOffset,
		coinType + HardenedOffset,
		0 + HardenedOffset, // account 0
	}
}

// DeriveAccountChain derives the external (chain 0) address nodes
// m/purpose'/coin_type'/0'/0/i for i in [start, end) beneath a master
// node, returning one AccountEntry per index. coinType is the SLIP-44
// coin type to use; pass nil to take the default (0 on mainnet, 1 on
// testnet, mirroring the original wallet's testnet override) rather than
// an explicit caller choice. encoder may be nil, in which case
// Address/WIF are left blank and only the Node/Path are populated —
// useful when only the key tree itself is wanted.
func DeriveAccountChain(master *Node, purpose Purpose, coinType *uint32, start, end uint32, encoder AddressEncoder) ([]AccountEntry, error) {
	if !master.IsPrivate() {
		return nil, ErrInvalidMasterKey
	}

	resolvedCoinType := uint32(0)
	if master.Network() == Testnet {
		resolvedCoinType = 1
	}
	if coinType != nil {
		resolvedCoinType = *coinType
	}

	accountPath := accountPathPrefix(purpose, resolvedCoinType)
	account, err := DerivePath(master, accountPath)
	if err != nil {
		return nil, err
	}

	chain, err := Ckd(account, 0)
	if err != nil {
		return nil, err
	}

	entries := make([]AccountEntry, 0, end-start)
	for i := start; i < end; i++ {
		child, err := Ckd(chain, i)
		if err != nil {
			return nil, err
		}

		entry := AccountEntry{
			Path: child.String(),
			Node: child,
		}

		if encoder != nil {
			pubBytes := child.PublicKeyCompressed()
			h160 := [20]byte{}
			copy(h160[:], hash160(pubBytes[:]))

			addr, err := encoder.Address(purpose, h160, child.Network() == Testnet)
			if err != nil {
				return nil, err
			}
			entry.Address = addr

			if priv, ok := child.PrivateKeyBytes(); ok {
				entry.WIF = encoder.WIF(priv, child.Network() == Testnet, true)
			}
		}

		entries = append(entries, entry)
	}

	return entries, nil
}
