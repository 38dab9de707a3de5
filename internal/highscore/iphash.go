package highscore

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

// pepper is mixed into the address before hashing so a leaked high-score
// file alone can't be dictionary-attacked against the raw IPv4/IPv6
// address space. It has no secrecy requirement beyond that.
const pepper = "wordgrid-highscore"

const pbkdf2Iterations = 10000

// HashAddress derives a stable, non-reversible lookup key for a remote
// address. Unlike bcrypt, pbkdf2.Key is deterministic for a fixed
// salt/iteration count, which a Store needs since the hash doubles as the
// record's primary key.
func HashAddress(remoteAddress string) string {
	derived := pbkdf2.Key([]byte(remoteAddress), []byte(pepper), pbkdf2Iterations, sha256.Size, sha256.New)
	return hex.EncodeToString(derived)
}
