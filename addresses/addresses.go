// Package addresses renders public-key hashes into the textual address
// formats BIP-44 (P2PKH), BIP-49 (P2SH-wrapped P2WPKH) and BIP-84 (native
// P2WPKH) nodes correspond to, plus WIF private-key export. None of this
// is part of the derivation engine itself: hdwallet hands out key material
// and hash160 digests, and this package is one (replaceable) way to turn
// those into the strings a block explorer would recognize.
package addresses

import (
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // required for hash160, no alternative in the ecosystem

	"github.com/haeberli/hdkit/hdwallet"
)

// Encoder implements hdwallet.AddressEncoder, dispatching on the purpose
// a node was derived under: BIP-44 gets a P2PKH address, BIP-49 a
// P2SH-wrapped P2WPKH address, and BIP-84 (or bare BIP-32) a native
// P2WPKH address.
type Encoder struct{}

// Address renders the address format corresponding to purpose.
func (Encoder) Address(purpose hdwallet.Purpose, hash160 [20]byte, testnet bool) (string, error) {
	switch purpose {
	case hdwallet.PurposeBIP44:
		return P2PKH(hash160, testnet), nil
	case hdwallet.PurposeBIP49:
		return P2SHP2WPKH(hash160, testnet), nil
	default:
		return P2WPKH(hash160, testnet)
	}
}

// WIF delegates to the package-level WIF function.
func (Encoder) WIF(scalar [32]byte, testnet bool, compressed bool) string {
	return WIF(scalar, testnet, compressed)
}

// version bytes per address/network, see Bitcoin's base58check address
// scheme.
const (
	p2pkhMainnet  = 0x00
	p2pkhTestnet  = 0x6F
	p2shMainnet   = 0x05
	p2shTestnet   = 0xC4
	wifMainnet    = 0x80
	wifTestnet    = 0xEF
	wifCompressed = 0x01
)

// P2PKH renders a legacy pay-to-pubkey-hash address: base58check(version ||
// hash160).
func P2PKH(hash160 [20]byte, testnet bool) string {
	version := byte(p2pkhMainnet)
	if testnet {
		version = p2pkhTestnet
	}
	return base58CheckEncode(version, hash160[:])
}

// P2SHP2WPKH renders a nested-segwit address: the P2SH of a witness
// program wrapping the pubkey hash.
func P2SHP2WPKH(hash160 [20]byte, testnet bool) string {
	witnessProgram := make([]byte, 0, 22)
	witnessProgram = append(witnessProgram, 0x00, 0x14)
	witnessProgram = append(witnessProgram, hash160[:]...)
	scriptHash := hash160Of(witnessProgram)

	version := byte(p2shMainnet)
	if testnet {
		version = p2shTestnet
	}
	return base58CheckEncode(version, scriptHash)
}

// P2WPKH renders a native segwit (bech32, witness version 0) address.
func P2WPKH(hash160 [20]byte, testnet bool) (string, error) {
	hrp := "bc"
	if testnet {
		hrp = "tb"
	}
	data, err := bech32.ConvertBits(hash160[:], 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("addresses: convert bits: %w", err)
	}
	data = append([]byte{0x00}, data...)
	addr, err := bech32.Encode(hrp, data)
	if err != nil {
		return "", fmt.Errorf("addresses: bech32 encode: %w", err)
	}
	return addr, nil
}

// WIF renders a private scalar in Wallet Import Format.
func WIF(scalar [32]byte, testnet bool, compressed bool) string {
	version := byte(wifMainnet)
	if testnet {
		version = wifTestnet
	}
	payload := make([]byte, 0, 33)
	payload = append(payload, scalar[:]...)
	if compressed {
		payload = append(payload, wifCompressed)
	}
	return base58CheckEncode(version, payload)
}

func base58CheckEncode(version byte, payload []byte) string {
	data := make([]byte, 0, 1+len(payload))
	data = append(data, version)
	data = append(data, payload...)

	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	data = append(data, second[:4]...)

	return base58.Encode(data)
}

func hash160Of(data []byte) []byte {
	sum := sha256.Sum256(data)
	ripe := ripemd160.New()
	ripe.Write(sum[:])
	return ripe.Sum(nil)
}
