// Package signingkey 是 secp256k1 私钥的门面：派生公钥、签名、ECDH 与公钥恢复。
// 曲线参数对象由调用方传入。
package signingkey

import (
	"errors"
	"fmt"
	"math/big"
	"sync"

	"wallet-keycore/pkg/bn"
	"wallet-keycore/pkg/secp256k1"
)

var (
	ErrInvalidPrivateKey = errors.New("invalid private key")
	ErrInvalidKey        = errors.New("invalid public or private key")
	ErrInvalidDigest     = errors.New("bad digest length")
	ErrInvalidSignature  = errors.New("invalid signature")
)

// SigningKey 持有 32 字节私钥。公钥在首次访问时计算并缓存。
// SignDigest 等方法只读私钥，可以并发调用。
type SigningKey struct {
	curve *secp256k1.Curve
	d     *big.Int
	priv  [32]byte

	once       sync.Once
	pub        secp256k1.Point
	pubBytes   []byte
	compressed []byte
}

// New 从 32 字节私钥创建 SigningKey。私钥按模 n 约简，约简后为 0 时返回错误。
func New(curve *secp256k1.Curve, privateKey []byte) (*SigningKey, error) {
	if curve == nil {
		return nil, fmt.Errorf("%w: nil curve", ErrInvalidPrivateKey)
	}
	if len(privateKey) != 32 {
		return nil, fmt.Errorf("%w: expected 32 bytes, got %d", ErrInvalidPrivateKey, len(privateKey))
	}
	d := curve.ScalarRed().Reduce(bn.FromBytes(privateKey))
	if d.Sign() == 0 {
		return nil, fmt.Errorf("%w: zero scalar", ErrInvalidPrivateKey)
	}
	k := &SigningKey{curve: curve, d: d}
	copy(k.priv[:], privateKey)
	return k, nil
}

func (k *SigningKey) derive() {
	k.once.Do(func() {
		k.pub = k.curve.PublicKey(k.d)
		k.pubBytes = k.curve.EncodePoint(k.pub, false)
		k.compressed = k.curve.EncodePoint(k.pub, true)
	})
}

// Curve 返回所用曲线参数对象。
func (k *SigningKey) Curve() *secp256k1.Curve { return k.curve }

// PrivateKey 返回私钥副本。
func (k *SigningKey) PrivateKey() []byte {
	out := make([]byte, 32)
	copy(out, k.priv[:])
	return out
}

// PublicKey 65 字节未压缩公钥。
func (k *SigningKey) PublicKey() []byte {
	k.derive()
	return append([]byte(nil), k.pubBytes...)
}

// CompressedPublicKey 33 字节压缩公钥。
func (k *SigningKey) CompressedPublicKey() []byte {
	k.derive()
	return append([]byte(nil), k.compressed...)
}

// SignDigest 对 32 字节摘要做 RFC 6979 确定性签名，结果为 low-s。
func (k *SigningKey) SignDigest(digest []byte) (*Signature, error) {
	if len(digest) != 32 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDigest, len(digest))
	}
	sig, err := k.curve.Sign(k.d, digest)
	if err != nil {
		return nil, err
	}
	return newSignature(sig), nil
}

// VerifyDigest 用本密钥的公钥校验签名。
func (k *SigningKey) VerifyDigest(digest []byte, sig *Signature) bool {
	if sig == nil {
		return false
	}
	k.derive()
	return k.curve.Verify(k.pub, digest, sig.ecdsa())
}

// ComputeSharedSecret ECDH，other 可以是 32 字节私钥或 33/65 字节公钥。
// 返回共享点 x 坐标（32 字节）。
func (k *SigningKey) ComputeSharedSecret(other []byte) ([]byte, error) {
	pub, err := ComputePublicKey(k.curve, other, false)
	if err != nil {
		return nil, err
	}
	pt, err := k.curve.DecodePoint(pub)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return k.curve.ECDH(k.d, pt)
}

// AddPoint 返回本公钥与 other 公钥之和的压缩编码。
func (k *SigningKey) AddPoint(other []byte) ([]byte, error) {
	pt, err := k.curve.DecodePoint(other)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	k.derive()
	sum := k.curve.Add(k.pub, pt)
	if sum.IsInfinity() {
		return nil, fmt.Errorf("%w: sum is the point at infinity", ErrInvalidKey)
	}
	return k.curve.EncodePoint(sum, true), nil
}

// ComputePublicKey 根据长度判断输入：32 字节视为私钥并派生公钥，
// 33/65 字节视为公钥并按 compressed 重新编码。其它长度返回 ErrInvalidKey。
func ComputePublicKey(curve *secp256k1.Curve, key []byte, compressed bool) ([]byte, error) {
	switch len(key) {
	case 32:
		sk, err := New(curve, key)
		if err != nil {
			return nil, err
		}
		if compressed {
			return sk.CompressedPublicKey(), nil
		}
		return sk.PublicKey(), nil
	case 33, 65:
		pt, err := curve.DecodePoint(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
		}
		return curve.EncodePoint(pt, compressed), nil
	default:
		return nil, fmt.Errorf("%w: length %d", ErrInvalidKey, len(key))
	}
}

// RecoverPublicKey 从摘要和签名恢复 65 字节未压缩公钥。
func RecoverPublicKey(curve *secp256k1.Curve, digest []byte, sig *Signature) ([]byte, error) {
	if sig == nil {
		return nil, ErrInvalidSignature
	}
	pt, err := curve.RecoverPublicKey(digest, sig.ecdsa())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return curve.EncodePoint(pt, false), nil
}
