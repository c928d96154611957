package mnemonic

import (
	_ "embed"
	"strings"
)

// wordlistAsset is the 2048-word BIP-39 English wordlist, shipped as a
// static asset rather than fetched over the network at runtime.
//
//go:embed wordlist_english.txt
var wordlistAsset string

// wordCount is the fixed size of every BIP-39 wordlist.
const wordCount = 2048

var (
	words     [wordCount]string
	wordIndex map[string]uint16
)

func init() {
	lines := strings.Split(strings.TrimSpace(wordlistAsset), "\n")
	if len(lines) != wordCount {
		panic("mnemonic: embedded wordlist does not have 2048 entries")
	}
	wordIndex = make(map[string]uint16, wordCount)
	for i, w := range lines {
		words[i] = w
		wordIndex[w] = uint16(i)
	}
}
