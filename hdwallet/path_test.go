package hdwallet

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePathRoundTrip(t *testing.T) {
	cases := []struct {
		path    string
		private bool
		indices []uint32
	}{
		{"m", true, nil},
		{"M", false, nil},
		{"m/44'/0'/0'/0/0", true, []uint32{44 + HardenedOffset, 0 + HardenedOffset, 0 + HardenedOffset, 0, 0}},
		{"m/0'/1/2'/2/1000000000", true, []uint32{0 + HardenedOffset, 1, 2 + HardenedOffset, 2, 1000000000}},
		{"M/84h/0h/0h/1/5", false, []uint32{84 + HardenedOffset, 0 + HardenedOffset, 0 + HardenedOffset, 1, 5}},
	}

	for _, tc := range cases {
		isPrivate, indices, err := ParsePath(tc.path)
		require.NoError(t, err)
		require.Equal(t, tc.private, isPrivate)
		require.Equal(t, tc.indices, indices)
	}
}

func TestFormatPathInverse(t *testing.T) {
	indices := []uint32{44 + HardenedOffset, 0 + HardenedOffset, 0 + HardenedOffset, 0, 3}
	require.Equal(t, "m/44'/0'/0'/0/3", FormatPath(indices, true))
	require.Equal(t, "M/44'/0'/0'/0/3", FormatPath(indices, false))
}

func TestParsePathRejectsBadRoot(t *testing.T) {
	_, _, err := ParsePath("x/0")
	require.ErrorIs(t, err, ErrBadPath)
}

func TestParsePathRejectsOverflowHardened(t *testing.T) {
	_, _, err := ParsePath("m/4294967296'")
	require.Error(t, err)
}

func TestPurposeFromPath(t *testing.T) {
	require.Equal(t, PurposeBIP44, purposeFromPath([]uint32{44 + HardenedOffset, 0, 0}))
	require.Equal(t, PurposeBIP49, purposeFromPath([]uint32{49 + HardenedOffset}))
	require.Equal(t, PurposeBIP84, purposeFromPath([]uint32{84 + HardenedOffset}))
	require.Equal(t, PurposeBIP32, purposeFromPath([]uint32{1 + HardenedOffset}))
	require.Equal(t, PurposeBIP32, purposeFromPath(nil))
}
