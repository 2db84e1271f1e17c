package signingkey

import (
	"fmt"
	"math/big"

	"wallet-keycore/pkg/bn"
	"wallet-keycore/pkg/secp256k1"
)

// Signature 以太坊风格的签名：r、s 各 32 字节，V = 27 + (RecoveryParam & 1)。
type Signature struct {
	R             [32]byte
	S             [32]byte
	RecoveryParam int
	V             int
}

func newSignature(sig *secp256k1.Signature) *Signature {
	out := &Signature{RecoveryParam: sig.RecoveryParam, V: 27 + sig.RecoveryParam&1}
	copy(out.R[:], bn.MustBytes32(sig.R))
	copy(out.S[:], bn.MustBytes32(sig.S))
	return out
}

func (s *Signature) ecdsa() *secp256k1.Signature {
	return &secp256k1.Signature{
		R:             new(big.Int).SetBytes(s.R[:]),
		S:             new(big.Int).SetBytes(s.S[:]),
		RecoveryParam: s.RecoveryParam,
	}
}

// Bytes 65 字节 r || s || v。
func (s *Signature) Bytes() []byte {
	out := make([]byte, 65)
	copy(out, s.R[:])
	copy(out[32:], s.S[:])
	out[64] = byte(27 + s.RecoveryParam&1)
	return out
}

// YParityAndS EIP-2098 中 s 的最高位携带 y 奇偶。
func (s *Signature) YParityAndS() [32]byte {
	vs := s.S
	if s.RecoveryParam&1 == 1 {
		vs[0] |= 0x80
	}
	return vs
}

// Compact 64 字节 EIP-2098 紧凑签名 r || yParityAndS。
func (s *Signature) Compact() []byte {
	vs := s.YParityAndS()
	out := make([]byte, 64)
	copy(out, s.R[:])
	copy(out[32:], vs[:])
	return out
}

// SplitSignature 解析 65 字节 r||s||v 或 64 字节 EIP-2098 紧凑签名。
// v 为 0/1 时按 27/28 处理，其它小于 27 的值返回错误。
func SplitSignature(b []byte) (*Signature, error) {
	sig := &Signature{}
	switch len(b) {
	case 64:
		copy(sig.R[:], b[:32])
		copy(sig.S[:], b[32:])
		sig.V = 27 + int(sig.S[0]>>7)
		sig.S[0] &= 0x7f
	case 65:
		copy(sig.R[:], b[:32])
		copy(sig.S[:], b[32:64])
		sig.V = int(b[64])
		if sig.V < 27 {
			if sig.V != 0 && sig.V != 1 {
				return nil, fmt.Errorf("%w: invalid v byte %d", ErrInvalidSignature, sig.V)
			}
			sig.V += 27
		}
	default:
		return nil, fmt.Errorf("%w: invalid signature length %d", ErrInvalidSignature, len(b))
	}
	sig.RecoveryParam = 1 - sig.V%2
	return sig, nil
}
