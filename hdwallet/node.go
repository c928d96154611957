// Package hdwallet implements the BIP-32 hierarchical-deterministic key
// tree: master key generation, child key derivation for both private and
// public nodes, extended-key serialization, and the small set of supporting
// codecs (version registry, derivation-path grammar) that give the tree a
// textual interface.
package hdwallet

import (
	"fmt"
	"strconv"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// masterHMACKey is the fixed HMAC key BIP-32 uses to derive the master node
// from a seed.
const masterHMACKey = "Bitcoin seed"

// Node is a single entry in the derivation tree. It is a tagged variant:
// priv is non-nil for PRIVATE nodes and nil for PUBLIC nodes; pub is always
// populated (the public projection, computed once at construction).
//
// Nodes are immutable value-like objects after construction. The parent
// back-edge is a non-owning reference set only when a node is produced by
// Ckd/DerivePath within the same call chain; a node reconstructed via Parse
// carries a nil parent but retains its stored ParentFingerprint, per the
// "derive on demand" design (recomputing an unmaterialized parent is O(depth)
// Ckd calls, not something this package does implicitly).
type Node struct {
	priv *secp256k1.PrivateKey
	pub  *secp256k1.PublicKey

	chainCode         [32]byte
	depth             uint8
	index             uint32
	parentFingerprint [4]byte
	network           Network
	purpose           Purpose
	parent            *Node
}

// IsPrivate reports whether this node holds a private scalar.
func (n *Node) IsPrivate() bool { return n.priv != nil }

// IsHardened reports whether this node's own index denotes a hardened
// child (index >= 2^31). Always false for the master node.
func (n *Node) IsHardened() bool { return n.index >= HardenedOffset }

// IsMaster reports whether this is a root node: depth 0, index 0, zero
// parent fingerprint, no materialized parent.
func (n *Node) IsMaster() bool {
	return n.depth == 0 && n.index == 0 && n.parentFingerprint == [4]byte{} && n.parent == nil
}

// Depth returns the node's distance from the master (0 for master).
func (n *Node) Depth() uint8 { return n.depth }

// Index returns the node's own child index (0 for master).
func (n *Node) Index() uint32 { return n.index }

// Network returns the network (mainnet/testnet) this node belongs to.
func (n *Node) Network() Network { return n.network }

// Purpose returns the node's stored BIP-43 purpose: inherited from its
// parent on derivation, or decoded from the version bytes by Parse.
// Serialize uses it only when the node's path from the master is not
// known or is empty; otherwise it infers the purpose from that path.
func (n *Node) Purpose() Purpose { return n.purpose }

// ChainCode returns the 32-byte chain code used as the HMAC key for this
// node's children.
func (n *Node) ChainCode() [32]byte { return n.chainCode }

// ParentFingerprint returns the stored parent fingerprint (all-zero for
// master).
func (n *Node) ParentFingerprint() [4]byte { return n.parentFingerprint }

// Parent returns the in-memory parent, or nil if this node has none
// materialized (true for the master node, and for any node produced by
// Parse).
func (n *Node) Parent() *Node { return n.parent }

// PublicKeyCompressed returns the 33-byte SEC-compressed public key: the
// node's own key if PUBLIC, or the public projection of its scalar if
// PRIVATE.
func (n *Node) PublicKeyCompressed() [33]byte {
	var out [33]byte
	copy(out[:], n.pub.SerializeCompressed())
	return out
}

// PrivateKeyBytes returns the 32-byte big-endian scalar and true for a
// PRIVATE node, or a zero array and false for a PUBLIC node.
func (n *Node) PrivateKeyBytes() ([32]byte, bool) {
	var out [32]byte
	if n.priv == nil {
		return out, false
	}
	copy(out[:], n.priv.Serialize())
	return out, true
}

// Fingerprint computes hash160(compressed pubkey)[:4], the identifier this
// node presents to its children as their ParentFingerprint.
func (n *Node) Fingerprint() [4]byte {
	sum := hash160(n.pub.SerializeCompressed())
	var fp [4]byte
	copy(fp[:], sum[:4])
	return fp
}

// CheckFingerprint compares the stored ParentFingerprint against the
// materialized parent's own Fingerprint. known is false when no parent is
// materialized, in which case the comparison cannot be made.
func (n *Node) CheckFingerprint() (ok bool, known bool) {
	if n.parent == nil {
		return false, false
	}
	return n.parent.Fingerprint() == n.parentFingerprint, true
}

// PathIndices walks the in-memory parent chain back to the master and
// returns the full index sequence from master to this node. ok is false
// if the chain breaks before reaching a master (e.g. this node, or one of
// its ancestors, came from Parse at a nonzero depth and carries no
// materialized parent) — callers fall back to the node's stored Purpose in
// that case. A root node yields an empty sequence and ok true.
func (n *Node) PathIndices() (indices []uint32, ok bool) {
	cur := n
	for cur != nil && !cur.IsMaster() {
		indices = append(indices, cur.index)
		cur = cur.parent
	}
	if cur == nil {
		return nil, false
	}
	for i, j := 0, len(indices)-1; i < j; i, j = i+1, j-1 {
		indices[i], indices[j] = indices[j], indices[i]
	}
	return indices, true
}

// String renders the node's textual derivation path: the parent's own
// String() (if materialized) or this node's root marker, followed by "/"
// and this node's index (hardened indices rendered as "n'"). Root nodes
// print as "m" (private) or "M" (public).
func (n *Node) String() string {
	mark := "M"
	if n.IsPrivate() {
		mark = "m"
	}
	if n.IsMaster() {
		return mark
	}

	prefix := mark
	if n.parent != nil {
		prefix = n.parent.String()
	}

	idx := strconv.FormatUint(uint64(n.index), 10)
	if n.IsHardened() {
		idx = strconv.FormatUint(uint64(n.index-HardenedOffset), 10) + "'"
	}
	return prefix + "/" + idx
}

// MasterFromSeed derives the master private node from a BIP-32 seed
// (recommended length 64 bytes, accepted range 16..64).
func MasterFromSeed(seed []byte, network Network) (*Node, error) {
	if len(seed) < 16 || len(seed) > 64 {
		return nil, fmt.Errorf("hdwallet: seed must be 16..64 bytes, got %d", len(seed))
	}

	I := hmacSHA512([]byte(masterHMACKey), seed)
	ilBytes, irBytes := I[:32], I[32:]

	var scalar secp256k1.ModNScalar
	overflow := scalar.SetByteSlice(ilBytes)
	if overflow || scalar.IsZero() {
		return nil, ErrInvalidMasterKey
	}

	priv := secp256k1.NewPrivateKey(&scalar)
	var chainCode [32]byte
	copy(chainCode[:], irBytes)

	return &Node{
		priv:      priv,
		pub:       priv.PubKey(),
		chainCode: chainCode,
		depth:     0,
		index:     0,
		network:   network,
		purpose:   PurposeBIP32,
	}, nil
}

// Neuter projects a PRIVATE node to its PUBLIC counterpart. Depth, index,
// parent fingerprint, chain code, network and purpose carry over verbatim;
// only the key material changes. Calling Neuter on an already-public node
// returns it unchanged.
func Neuter(n *Node) *Node {
	if !n.IsPrivate() {
		return n
	}
	return &Node{
		pub:               n.pub,
		chainCode:         n.chainCode,
		depth:             n.depth,
		index:             n.index,
		parentFingerprint: n.parentFingerprint,
		network:           n.network,
		purpose:           n.purpose,
		parent:            n.parent,
	}
}

// Ckd derives the child at the given index, dispatching to the private or
// public derivation rule depending on the parent's variant.
func Ckd(parent *Node, index uint32) (*Node, error) {
	if parent.depth == 255 {
		return nil, ErrDepthOverflow
	}
	if parent.IsPrivate() {
		return ckdPriv(parent, index)
	}
	return ckdPub(parent, index)
}

// ckdPriv implements private-parent child key derivation (BIP-32 CKDpriv),
// covering both the hardened and non-hardened branches.
func ckdPriv(parent *Node, index uint32) (*Node, error) {
	var data []byte
	if index >= HardenedOffset {
		privBytes := parent.priv.Serialize()
		data = make([]byte, 0, 1+32+4)
		data = append(data, 0x00)
		data = append(data, privBytes...)
	} else {
		data = append(data, parent.pub.SerializeCompressed()...)
	}
	data = append(data, serialize32(index)...)

	I := hmacSHA512(parent.chainCode[:], data)
	ilBytes, irBytes := I[:32], I[32:]

	var il secp256k1.ModNScalar
	if overflow := il.SetByteSlice(ilBytes); overflow {
		return nil, ErrInvalidChild
	}

	childScalar := parent.priv.Key
	childScalar.Add(&il)
	if childScalar.IsZero() {
		return nil, ErrInvalidChild
	}

	childPriv := secp256k1.NewPrivateKey(&childScalar)
	var chainCode [32]byte
	copy(chainCode[:], irBytes)

	return &Node{
		priv:              childPriv,
		pub:               childPriv.PubKey(),
		chainCode:         chainCode,
		depth:             parent.depth + 1,
		index:             index,
		parentFingerprint: parent.Fingerprint(),
		network:           parent.network,
		purpose:           parent.purpose,
		parent:            parent,
	}, nil
}

// ckdPub implements public-parent child key derivation (BIP-32 CKDpub),
// valid only for non-hardened indices.
func ckdPub(parent *Node, index uint32) (*Node, error) {
	if index >= HardenedOffset {
		return nil, ErrHardenedFromPublic
	}

	data := append(append([]byte{}, parent.pub.SerializeCompressed()...), serialize32(index)...)
	I := hmacSHA512(parent.chainCode[:], data)
	ilBytes, irBytes := I[:32], I[32:]

	var il secp256k1.ModNScalar
	if overflow := il.SetByteSlice(ilBytes); overflow {
		return nil, ErrInvalidChild
	}

	var ilPoint secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&il, &ilPoint)

	var parentPoint secp256k1.JacobianPoint
	parent.pub.AsJacobian(&parentPoint)

	var sum secp256k1.JacobianPoint
	secp256k1.AddNonConst(&ilPoint, &parentPoint, &sum)
	if sum.Z.IsZero() {
		return nil, ErrInvalidChild
	}
	sum.ToAffine()
	childPub := secp256k1.NewPublicKey(&sum.X, &sum.Y)

	var chainCode [32]byte
	copy(chainCode[:], irBytes)

	return &Node{
		pub:               childPub,
		chainCode:         chainCode,
		depth:             parent.depth + 1,
		index:             index,
		parentFingerprint: parent.Fingerprint(),
		network:           parent.network,
		purpose:           parent.purpose,
		parent:            parent,
	}, nil
}

// DerivePath left-folds Ckd over an index sequence, wrapping any failure
// with the offending index.
func DerivePath(root *Node, indices []uint32) (*Node, error) {
	node := root
	for _, idx := range indices {
		child, err := Ckd(node, idx)
		if err != nil {
			return nil, fmt.Errorf("hdwallet: deriving index %d: %w", idx, err)
		}
		node = child
	}
	return node, nil
}
