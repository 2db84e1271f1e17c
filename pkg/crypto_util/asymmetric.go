package crypto_util

import (
	"bytes"
	"crypto/ed25519"
	"fmt"
	"math/big"

	"wallet-keycore/pkg/bn"
	"wallet-keycore/pkg/hash"
	"wallet-keycore/pkg/safe_random"
	"wallet-keycore/pkg/secp256k1"
	"wallet-keycore/pkg/signingkey"
)

// ------------------------------------------------------------------------------------------------
// secp256k1 (比特币/以太坊)
// ------------------------------------------------------------------------------------------------

// GenerateSecp256k1Key 生成 [1, n-1] 范围内的随机私钥。
func GenerateSecp256k1Key(curve *secp256k1.Curve) (*signingkey.SigningKey, error) {
	max := new(big.Int).Sub(curve.N(), big.NewInt(1))
	d, err := safe_random.GenerateRandomInt(max)
	if err != nil {
		return nil, err
	}
	d.Add(d, big.NewInt(1))
	b := bn.MustBytes32(d)
	defer clear(b)
	return signingkey.New(curve, b)
}

// Secp256k1Sign 对 SHA256(message) 签名，返回 65 字节 r||s||v。
func Secp256k1Sign(key *signingkey.SigningKey, message []byte) ([]byte, error) {
	digest := hash.Sum256(message)
	sig, err := key.SignDigest(digest[:])
	if err != nil {
		return nil, err
	}
	return sig.Bytes(), nil
}

// Secp256k1Verify 从签名恢复公钥并与给定公钥（33 或 65 字节）比较。
func Secp256k1Verify(curve *secp256k1.Curve, pub, message, signature []byte) bool {
	if len(pub) != 33 && len(pub) != 65 {
		return false
	}
	want, err := signingkey.ComputePublicKey(curve, pub, true)
	if err != nil {
		return false
	}
	sig, err := signingkey.SplitSignature(signature)
	if err != nil {
		return false
	}
	digest := hash.Sum256(message)
	got, err := signingkey.RecoverPublicKey(curve, digest[:], sig)
	if err != nil {
		return false
	}
	compressed, err := signingkey.ComputePublicKey(curve, got, true)
	if err != nil {
		return false
	}
	return bytes.Equal(compressed, want)
}

// ------------------------------------------------------------------------------------------------
// Ed25519 (Edwards-curve 数字签名算法)
// ------------------------------------------------------------------------------------------------

// GenerateEd25519KeyPair 生成新的 Ed25519 密钥对。
func GenerateEd25519KeyPair() (ed25519.PrivateKey, ed25519.PublicKey, error) {
	pub, priv, err := ed25519.GenerateKey(safe_random.Reader)
	return priv, pub, err
}

// Ed25519FromSeed 由 32 字节种子恢复密钥对。
func Ed25519FromSeed(seed []byte) (ed25519.PrivateKey, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("ed25519 种子长度必须是 %d 字节, 得到 %d", ed25519.SeedSize, len(seed))
	}
	return ed25519.NewKeyFromSeed(seed), nil
}

// Ed25519Sign 对消息进行签名。
func Ed25519Sign(priv ed25519.PrivateKey, message []byte) []byte {
	return ed25519.Sign(priv, message)
}

// Ed25519Verify 验证签名。
func Ed25519Verify(pub ed25519.PublicKey, message, signature []byte) bool {
	return ed25519.Verify(pub, message, signature)
}
