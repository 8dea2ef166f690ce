package services

import (
	"buysell_server/lib"
	"buysell_server/structs"
)

var DefaultParams = &structs.ArgonParams{
	Memory:  64 * 1024, // 64 MB
	Time:    1,
	Threads: 4,
	KeyLen:  32,
	SaltLen: 16,
}

// PasswordHasher is a one-way password encoder.
type PasswordHasher interface {
	Encode(plain string) (string, error)
	Matches(plain, encoded string) (bool, error)
}

// Argon2Hasher encodes passwords as argon2id PHC strings
type Argon2Hasher struct {
	params *structs.ArgonParams
}

func NewArgon2Hasher(params *structs.ArgonParams) *Argon2Hasher {
	if params == nil {
		params = DefaultParams
	}
	return &Argon2Hasher{params: params}
}

func (h *Argon2Hasher) Encode(plain string) (string, error) {
	p := h.params
	return lib.EncodeArgon2Hash(plain, p.Memory, p.Time, p.Threads, p.KeyLen, p.SaltLen)
}

// Matches uses the parameters stored in the encoded hash, so hashes made
// with older parameters keep verifying.
func (h *Argon2Hasher) Matches(plain, encoded string) (bool, error) {
	return lib.VerifyArgon2Hash(plain, encoded)
}
