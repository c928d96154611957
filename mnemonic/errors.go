package mnemonic

import "errors"

// Error sentinels for the BIP-39 codec. Callers should compare with
// errors.Is; wrapped errors add the offending word or length where useful.
var (
	// ErrBadEntropyLength is returned when entropy is not 16, 20, 24, 28 or
	// 32 bytes long.
	ErrBadEntropyLength = errors.New("mnemonic: bad entropy length")

	// ErrUnknownWord is returned when a mnemonic word is not present in the
	// wordlist.
	ErrUnknownWord = errors.New("mnemonic: unknown word")

	// ErrBadWordCount is returned when a mnemonic does not have 12, 15, 18,
	// 21 or 24 words.
	ErrBadWordCount = errors.New("mnemonic: bad word count")

	// ErrBadChecksum is returned when the checksum bits embedded in a
	// mnemonic do not match the checksum computed from its entropy.
	ErrBadChecksum = errors.New("mnemonic: bad checksum")
)
