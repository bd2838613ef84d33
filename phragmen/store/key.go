package store

import (
	"encoding/binary"
	"encoding/hex"
	"hash"

	"github.com/xxfoundation/wallet.xx.network/phragmen"
	"golang.org/x/crypto/blake2b"
)

// Key identifies the input of an election prediction
type Key [blake2b.Size256]byte

func (k Key) String() string { return hex.EncodeToString(k[:8]) }

// Bytes returns the key as a byte slice
func (k Key) Bytes() []byte { return k[:] }

// Fingerprint hashes the election params, the voter list and seat count. Voter
// order is part of the key since it decides the tie-break between equally
// scored candidates.
func Fingerprint(p *phragmen.Params, voters []phragmen.Voter, count int) (k Key) {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic("store/fingerprint: " + err.Error())
	}

	writeUint(h, uint64(p.Iterations))
	writeUint(h, uint64(p.DecimalContext.Precision))
	writeString(h, p.DecimalContext.Rounding)
	writeString(h, p.UnreachableScore.String())

	writeUint(h, uint64(count))
	writeUint(h, uint64(len(voters)))
	for _, v := range voters {
		writeString(h, v.NominatorID)
		writeString(h, v.Stake)
		writeUint(h, uint64(len(v.Targets)))
		for _, t := range v.Targets {
			writeString(h, t)
		}
	}

	copy(k[:], h.Sum(nil))
	return
}

func writeUint(h hash.Hash, n uint64) {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	h.Write(b)
}

//writeString writes a length prefixed string so that no two voter lists
//share an encoding
func writeString(h hash.Hash, s string) {
	writeUint(h, uint64(len(s)))
	h.Write([]byte(s))
}
