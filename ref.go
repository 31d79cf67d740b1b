package corpus

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// Ref is the id of a version: the sha256 hash of its encoded content bytes.
type Ref [sha256.Size]byte

// RefOf computes the Ref of a sequence of encoded content bytes.
func RefOf(data []byte) Ref {
	return sha256.Sum256(data)
}

// Zero is the zero value of a Ref.
var Zero Ref

func (r Ref) String() string {
	return hex.EncodeToString(r[:])
}

func (r Ref) IsZero() bool {
	return r == Zero
}

func (r Ref) Less(other Ref) bool {
	return bytes.Compare(r[:], other[:]) < 0
}

func (r *Ref) FromHex(s string) error {
	if len(s) != 2*sha256.Size {
		return errors.New("wrong length")
	}
	_, err := hex.Decode(r[:], []byte(s))
	return err
}

func RefFromHex(s string) (Ref, error) {
	var out Ref
	err := out.FromHex(s)
	return out, err
}
