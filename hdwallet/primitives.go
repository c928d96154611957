package hdwallet

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // required for hash160, no alternative in the ecosystem
)

// hash160 computes RIPEMD160(SHA256(x)), the digest BIP-32 uses for key
// fingerprints and BIP-44/49 address hashes.
func hash160(data []byte) []byte {
	sum256 := sha256.Sum256(data)
	ripe := ripemd160.New()
	ripe.Write(sum256[:])
	return ripe.Sum(nil)
}

// hmacSHA512 computes HMAC-SHA512(key, data), the primitive behind master
// key generation and child key derivation.
func hmacSHA512(key, data []byte) []byte {
	mac := hmac.New(sha512.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// serialize32 big-endian encodes a uint32 (ser32 in BIP-32 notation).
func serialize32(i uint32) []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, i)
	return buf
}
