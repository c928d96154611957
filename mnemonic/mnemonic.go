// Package mnemonic implements the BIP-39 entropy/mnemonic/seed codec: the
// entropy -> checksum-padded bit string -> 11-bit word index -> phrase
// transform, its inverse, and PBKDF2 seed stretching.
package mnemonic

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/unicode/norm"
)

const (
	pbkdf2Iterations = 2048
	seedLength       = 64
	saltPrefix       = "mnemonic"
)

// validEntropyBits lists the only entropy lengths (in bits) BIP-39 allows.
var validEntropyBits = map[int]bool{128: true, 160: true, 192: true, 224: true, 256: true}

func checkEntropyLength(entropy []byte) error {
	bitLen := len(entropy) * 8
	if !validEntropyBits[bitLen] {
		return fmt.Errorf("%w: got %d bits", ErrBadEntropyLength, bitLen)
	}
	return nil
}

// NewEntropy draws cryptographically secure randomness of the given bit
// length (128, 160, 192, 224 or 256). It never falls back to a
// non-cryptographic RNG.
func NewEntropy(bits int) ([]byte, error) {
	if !validEntropyBits[bits] {
		return nil, fmt.Errorf("%w: requested %d bits", ErrBadEntropyLength, bits)
	}
	entropy := make([]byte, bits/8)
	if _, err := rand.Read(entropy); err != nil {
		return nil, fmt.Errorf("mnemonic: reading entropy: %w", err)
	}
	return entropy, nil
}

// EntropyToMnemonic converts raw entropy into its BIP-39 mnemonic sentence.
func EntropyToMnemonic(entropy []byte) (string, error) {
	if err := checkEntropyLength(entropy); err != nil {
		return "", err
	}

	checksum := sha256.Sum256(entropy)
	csBits := len(entropy) * 8 / 32

	// Concatenate entropy || full SHA-256 digest into one bit buffer, then
	// read off 11-bit groups. Only the first csBits (4..8) bits of the
	// digest are read, since totalBits stops there.
	combined := append(append([]byte{}, entropy...), checksum[:]...)
	totalBits := len(entropy)*8 + csBits

	wordCountOut := totalBits / 11
	sentence := make([]string, wordCountOut)
	for i := 0; i < wordCountOut; i++ {
		idx := readBits11(combined, i*11)
		sentence[i] = words[idx]
	}
	return strings.Join(sentence, " "), nil
}

// readBits11 reads an 11-bit big-endian value starting at the given bit
// offset within buf.
func readBits11(buf []byte, bitOffset int) uint16 {
	var v uint32
	for i := 0; i < 11; i++ {
		pos := bitOffset + i
		byteIdx := pos / 8
		bitIdx := 7 - uint(pos%8)
		bit := (buf[byteIdx] >> bitIdx) & 1
		v = (v << 1) | uint32(bit)
	}
	return uint16(v)
}

// bitWriter is a bit accumulator represented as a byte slice grown on
// demand, tracking the number of valid bits written; writeBits appends the
// low n bits of a value, most significant first.
type bitWriter struct {
	buf  []byte
	bits int
}

func (w *bitWriter) writeBits(v uint32, n int) {
	for i := n - 1; i >= 0; i-- {
		bit := byte((v >> uint(i)) & 1)
		byteIdx := w.bits / 8
		for byteIdx >= len(w.buf) {
			w.buf = append(w.buf, 0)
		}
		if bit == 1 {
			w.buf[byteIdx] |= 1 << uint(7-w.bits%8)
		}
		w.bits++
	}
}

// MnemonicToEntropy reverses EntropyToMnemonic, recovering the original
// entropy and verifying its embedded checksum.
func MnemonicToEntropy(sentence string) ([]byte, error) {
	wordList := strings.Fields(sentence)
	n := len(wordList)
	if n%3 != 0 || n < 12 || n > 24 {
		return nil, fmt.Errorf("%w: %d words", ErrBadWordCount, n)
	}

	w := &bitWriter{}
	for _, word := range wordList {
		idx, ok := wordIndex[word]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownWord, word)
		}
		w.writeBits(uint32(idx), 11)
	}

	totalBits := n * 11
	csBits := totalBits / 33
	entBits := totalBits - csBits
	entropy := w.buf[:entBits/8]

	checksum := sha256.Sum256(entropy)
	gotChecksum := checksum[0] >> uint(8-csBits)
	wantChecksum := lastBits(w.buf, entBits, csBits)
	if gotChecksum != wantChecksum {
		return nil, ErrBadChecksum
	}
	return entropy, nil
}

func lastBits(buf []byte, offset, n int) byte {
	var v uint32
	for i := 0; i < n; i++ {
		pos := offset + i
		byteIdx := pos / 8
		bitIdx := 7 - uint(pos%8)
		bit := (buf[byteIdx] >> bitIdx) & 1
		v = (v << 1) | uint32(bit)
	}
	return byte(v)
}

// ValidateMnemonic reports whether a sentence is a well-formed BIP-39
// mnemonic: every word known, correct length, checksum intact.
func ValidateMnemonic(sentence string) error {
	_, err := MnemonicToEntropy(sentence)
	return err
}

// IsValid is a boolean convenience wrapper around ValidateMnemonic.
func IsValid(sentence string) bool {
	return ValidateMnemonic(sentence) == nil
}

// NewMnemonic draws fresh CSPRNG entropy of the requested bit length and
// encodes it as a mnemonic sentence.
func NewMnemonic(bits int) (string, error) {
	entropy, err := NewEntropy(bits)
	if err != nil {
		return "", err
	}
	return EntropyToMnemonic(entropy)
}

// SeedFromMnemonic derives the 64-byte BIP-39 seed from a mnemonic and
// optional passphrase. Both are NFKD-normalized first; the mnemonic is the
// PBKDF2 password, and "mnemonic"+passphrase is the salt.
func SeedFromMnemonic(sentence, passphrase string) []byte {
	normalizedMnemonic := norm.NFKD.String(sentence)
	normalizedPassphrase := norm.NFKD.String(passphrase)
	salt := saltPrefix + normalizedPassphrase
	return pbkdf2.Key([]byte(normalizedMnemonic), []byte(salt), pbkdf2Iterations, seedLength, sha512.New)
}
