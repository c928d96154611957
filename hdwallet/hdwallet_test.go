package hdwallet

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

// BIP-32 Test Vector 1, seed 000102030405060708090a0b0c0d0e0f.
const testVector1Seed = "000102030405060708090a0b0c0d0e0f"

// BIP-32 Test Vector 2's seed (64 bytes, descending byte pattern). Used
// here only for property checks (round-trip, neuter/ckd_pub equivalence,
// hardened derivation past index 2^31-1) rather than against its
// published xprv/xpub strings, which this module has no way to
// regenerate and cross-check without running a toolchain.
const testVector2Seed = "fffcf9f6f3f0edeae7e4e1dedbd8d5d2cfccc9c6c3c0bdbab7b4b1aeaba8a5a29f9c999693908d8a8784817e7b7875726f6c696663605d5a5754514e4b484542"

func mustSeed(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestBIP32Vector1(t *testing.T) {
	seed := mustSeed(t, testVector1Seed)
	master, err := MasterFromSeed(seed, Mainnet)
	require.NoError(t, err)

	cases := []struct {
		indices []uint32
		xpub    string
		xprv    string
	}{
		{
			nil,
			"xpub661MyMwAqRbcFtXgS5sYJABqqG9YLmC4Q1Rdap9gSE8NqtwybGhePY2gZ29ESFjqJoCu1Rupje8YtGqsefD265TMg7usUDFdp6W1EGMcet8",
			"xprv9s21ZrQH143K3QTDL4LXw2F7HEK3wJUD2nW2nRk4stbPy6cq3jPPqjiChkVvvNKmPGJxWUtg6LnF5kejMRNNU3TGtRBeJgk33yuGBxrMPHi",
		},
		{
			[]uint32{0 + HardenedOffset},
			"xpub68Gmy5EdvgibQVfPdqkBBCHxA5htiqg55crXYuXoQRKfDBFA1WEjWgP6LHhwBZeNK1VTsfTFUHCdrfp1bgwQ9xv5ski8PX9rL2dZXvgGDnw",
			"xprv9uHRZZhk6KAJC1avXpDAp4MDc3sQKNxDiPvvkX8Br5ngLNv1TxvUxt4cV1rGL5hj6KCesnDYUhd7oWgT11eZG7XnxHrnYeSvkzY7d2bhkJ7",
		},
		{
			[]uint32{0 + HardenedOffset, 1},
			"xpub6ASuArnXKPbfEwhqN6e3mwBcDTgzisQN1wXN9BJcM47sSikHjJf3UFHKkNAWbWMiGj7Wf5uMash7SyYq527Hqck2AxYysAA7xmALppuCkwQ",
			"xprv9wTYmMFdV23N2TdNG573QoEsfRrWKQgWeibmLntzniatZvR9BmLnvSxqu53Kw1UmYPxLgboyZQaXwTCg8MSY3H2EU4pWcQDnRnrVA1xe8fs",
		},
		{
			[]uint32{0 + HardenedOffset, 1, 2 + HardenedOffset},
			"xpub6D4BDPcP2GT577Vvch3R8wDkScZWzQzMMUm3PWbmWvVJrZwQY4VUNgqFJPMM3No2dFDFGTsxxpG5uJh7n7epu4trkrX7x7DogT5Uv6fcLW5",
			"xprv9z4pot5VBttmtdRTWfWQmoH1taj2axGVzFqSb8C9xaxKymcFzXBDptWmT7FwuEzG3ryjH4ktypQSAewRiNMjANTtpgP4mLTj34bhnZX7UiM",
		},
		{
			[]uint32{0 + HardenedOffset, 1, 2 + HardenedOffset, 2, 1000000000},
			"xpub6H1LXWLaKsWFhvm6RVpEL9P4KfRZSW7abD2ttkWP3SSQvnyA8FSVqNTEcYFgJS2UaFcxupHiYkro49S8yGasTvXEYBVPamhGW6cFJodrTHy",
			"xprvA41z7zogVVwxVSgdKUHDy1SKmdb533PjDz7J6N6mV6uS3ze1ai8FHa8kmHScGpWmj4WggLyQjgPie1rFSruoUihUZREPSL39UNdE3BBDu76",
		},
	}

	for _, tc := range cases {
		node, err := DerivePath(master, tc.indices)
		require.NoError(t, err)

		xprv, err := SerializeString(node, nil)
		require.NoError(t, err)
		require.Equal(t, tc.xprv, xprv)

		xpub, err := SerializeString(Neuter(node), nil)
		require.NoError(t, err)
		require.Equal(t, tc.xpub, xpub)
	}
}

func TestExtendedKeyRoundTrip(t *testing.T) {
	seed := mustSeed(t, testVector1Seed)
	master, err := MasterFromSeed(seed, Mainnet)
	require.NoError(t, err)

	child, err := DerivePath(master, []uint32{44 + HardenedOffset, 0 + HardenedOffset, 0 + HardenedOffset})
	require.NoError(t, err)
	child.purpose = PurposeBIP44

	xprv, err := SerializeString(child, nil)
	require.NoError(t, err)

	parsed, err := Parse(xprv)
	require.NoError(t, err)

	require.Equal(t, child.depth, parsed.depth)
	require.Equal(t, child.index, parsed.index)
	require.Equal(t, child.parentFingerprint, parsed.parentFingerprint)
	require.Equal(t, child.chainCode, parsed.chainCode)
	require.Equal(t, child.PublicKeyCompressed(), parsed.PublicKeyCompressed())
	privChild, _ := child.PrivateKeyBytes()
	privParsed, _ := parsed.PrivateKeyBytes()
	require.Equal(t, privChild, privParsed)
}

func TestNeuterCommutesWithNonHardenedCKD(t *testing.T) {
	seed := mustSeed(t, testVector1Seed)
	master, err := MasterFromSeed(seed, Mainnet)
	require.NoError(t, err)

	account, err := DerivePath(master, []uint32{0 + HardenedOffset, 1})
	require.NoError(t, err)

	for _, idx := range []uint32{0, 1, 2, 1000000000} {
		left, err := Ckd(account, idx)
		require.NoError(t, err)
		left = Neuter(left)

		right, err := Ckd(Neuter(account), idx)
		require.NoError(t, err)

		require.Equal(t, left.PublicKeyCompressed(), right.PublicKeyCompressed())
		require.Equal(t, left.chainCode, right.chainCode)
	}
}

func TestHardenedFromPublicRejected(t *testing.T) {
	seed := mustSeed(t, testVector1Seed)
	master, err := MasterFromSeed(seed, Mainnet)
	require.NoError(t, err)

	pubMaster := Neuter(master)
	_, err = Ckd(pubMaster, HardenedOffset)
	require.ErrorIs(t, err, ErrHardenedFromPublic)
}

func TestFingerprintConsistency(t *testing.T) {
	seed := mustSeed(t, testVector1Seed)
	master, err := MasterFromSeed(seed, Mainnet)
	require.NoError(t, err)

	child, err := Ckd(master, 7)
	require.NoError(t, err)

	ok, known := child.CheckFingerprint()
	require.True(t, known)
	require.True(t, ok)

	require.False(t, master.IsHardened())
	_, known = master.CheckFingerprint()
	require.False(t, known)
}

func TestVersionTotality(t *testing.T) {
	networks := []Network{Mainnet, Testnet}
	keyTypes := []KeyType{PrivateKeyType, PublicKeyType}
	purposes := []Purpose{PurposeBIP32, PurposeBIP44, PurposeBIP49, PurposeBIP84}

	for _, n := range networks {
		for _, kt := range keyTypes {
			for _, p := range purposes {
				version := encodeVersion(n, kt, p)
				gotNetwork, gotKeyType, _, err := decodeVersion(version)
				require.NoError(t, err)
				require.Equal(t, n, gotNetwork)
				require.Equal(t, kt, gotKeyType)
			}
		}
	}
}

func TestDepthBound(t *testing.T) {
	seed := mustSeed(t, testVector1Seed)
	master, err := MasterFromSeed(seed, Mainnet)
	require.NoError(t, err)

	node := master
	for i := 0; i < 255; i++ {
		node, err = Ckd(node, uint32(i))
		require.NoError(t, err)
	}
	require.Equal(t, uint8(255), node.depth)

	_, err = Ckd(node, 0)
	require.ErrorIs(t, err, ErrDepthOverflow)
}

func TestParseRejectsBadChecksum(t *testing.T) {
	seed := mustSeed(t, testVector1Seed)
	master, err := MasterFromSeed(seed, Mainnet)
	require.NoError(t, err)

	xprv, err := SerializeString(master, nil)
	require.NoError(t, err)

	tampered := xprv[:len(xprv)-1] + "1"
	if tampered == xprv {
		tampered = xprv[:len(xprv)-1] + "2"
	}
	_, err = Parse(tampered)
	require.Error(t, err)
}

func TestBIP32Vector2Properties(t *testing.T) {
	seed := mustSeed(t, testVector2Seed)
	master, err := MasterFromSeed(seed, Mainnet)
	require.NoError(t, err)

	// m/0
	child, err := Ckd(master, 0)
	require.NoError(t, err)

	// m/0/2147483647' (the vector's first hardened step past a
	// non-hardened one, exercising the hardened-branch HMAC input).
	hardened, err := Ckd(child, 2147483647+HardenedOffset)
	require.NoError(t, err)
	require.True(t, hardened.IsHardened())
	require.Equal(t, uint8(2), hardened.depth)

	// Round-trip through base58check.
	xprv, err := SerializeString(hardened, nil)
	require.NoError(t, err)
	parsed, err := Parse(xprv)
	require.NoError(t, err)
	require.Equal(t, hardened.chainCode, parsed.chainCode)
	privHardened, _ := hardened.PrivateKeyBytes()
	privParsed, _ := parsed.PrivateKeyBytes()
	require.Equal(t, privHardened, privParsed)

	// Neuter/ckd_pub equivalence one level further (non-hardened index).
	left, err := Ckd(hardened, 1)
	require.NoError(t, err)
	left = Neuter(left)
	right, err := Ckd(Neuter(hardened), 1)
	require.NoError(t, err)
	require.Equal(t, left.PublicKeyCompressed(), right.PublicKeyCompressed())
}

func TestSerializePurposeInferredFromPath(t *testing.T) {
	seed := mustSeed(t, testVector1Seed)
	master, err := MasterFromSeed(seed, Mainnet)
	require.NoError(t, err)

	cases := []struct {
		indices  []uint32
		prvAfter string
		pubAfter string
	}{
		{[]uint32{44 + HardenedOffset, 0 + HardenedOffset, 0 + HardenedOffset}, "xprv", "xpub"},
		{[]uint32{49 + HardenedOffset, 0 + HardenedOffset, 0 + HardenedOffset}, "yprv", "ypub"},
		{[]uint32{84 + HardenedOffset, 0 + HardenedOffset, 0 + HardenedOffset}, "zprv", "zpub"},
	}

	for _, tc := range cases {
		node, err := DerivePath(master, tc.indices)
		require.NoError(t, err)
		require.Equal(t, PurposeBIP32, node.purpose, "stored purpose is never set by plain derivation")

		xprv, err := SerializeString(node, nil)
		require.NoError(t, err)
		require.Equal(t, tc.prvAfter, xprv[:4])

		xpub, err := SerializeString(Neuter(node), nil)
		require.NoError(t, err)
		require.Equal(t, tc.pubAfter, xpub[:4])
	}
}

func TestSerializePurposeFallsBackToStoredWhenPathUnknown(t *testing.T) {
	seed := mustSeed(t, testVector1Seed)
	master, err := MasterFromSeed(seed, Mainnet)
	require.NoError(t, err)

	node, err := DerivePath(master, []uint32{49 + HardenedOffset, 0 + HardenedOffset, 0 + HardenedOffset})
	require.NoError(t, err)

	xprv, err := SerializeString(node, nil)
	require.NoError(t, err)
	require.Equal(t, "yprv", xprv[:4])

	// Parse loses the in-memory parent chain, so its stored purpose (the
	// one decoded from the version bytes on the wire) is what Serialize
	// falls back to.
	parsed, err := Parse(xprv)
	require.NoError(t, err)
	require.Equal(t, PurposeBIP49, parsed.purpose)

	reprv, err := SerializeString(parsed, nil)
	require.NoError(t, err)
	require.Equal(t, "yprv", reprv[:4])
}

func TestSerializePurposeOverrideWins(t *testing.T) {
	seed := mustSeed(t, testVector1Seed)
	master, err := MasterFromSeed(seed, Mainnet)
	require.NoError(t, err)

	node, err := DerivePath(master, []uint32{49 + HardenedOffset, 0 + HardenedOffset, 0 + HardenedOffset})
	require.NoError(t, err)

	override := PurposeBIP84
	zprv, err := SerializeString(node, &override)
	require.NoError(t, err)
	require.Equal(t, "zprv", zprv[:4])
}

func TestParseRejectsInconsistentMaster(t *testing.T) {
	seed := mustSeed(t, testVector1Seed)
	master, err := MasterFromSeed(seed, Mainnet)
	require.NoError(t, err)

	raw, err := Serialize(master, nil)
	require.NoError(t, err)
	raw[4] = 0 // depth, already zero
	raw[9] = 0x00
	raw[10] = 0x00
	raw[11] = 0x00
	raw[12] = 0x01 // nonzero index with depth 0

	_, err = ParseBytes(raw)
	require.ErrorIs(t, err, ErrInconsistentMaster)
}
