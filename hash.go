// hash.go — cryptographic digests (spec §6: "Md5/Sha1/Sha256/Sha512 ->
// hex string").
//
// Directly adapted from the teacher's `builtin_crypto.go`, which already
// wires stdlib `crypto/sha256` for a digest builtin; extended here to the
// full algorithm set spec.md names. The teacher returns raw digest bytes;
// spec.md's contract is a hex string, so this is an intentional behavior
// change from the teacher (recorded in DESIGN.md's primitive operator
// library entry), not a silent divergence.
package nickel

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
)

func registerHashOps(ip *Interpreter) {
	digest := func(op Op, sum func(string) []byte) {
		ip.natives[op] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
			s := strArg(pos, args[0], ip, string(op))
			return Str(pos, hex.EncodeToString(sum(s)))
		}
	}
	digest(OpHashMd5, func(s string) []byte { h := md5.Sum([]byte(s)); return h[:] })
	digest(OpHashSha1, func(s string) []byte { h := sha1.Sum([]byte(s)); return h[:] })
	digest(OpHashSha256, func(s string) []byte { h := sha256.Sum256([]byte(s)); return h[:] })
	digest(OpHashSha512, func(s string) []byte { h := sha512.Sum512([]byte(s)); return h[:] })
}
