package crypto_util

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
	"lukechampine.com/blake3"

	"wallet-keycore/pkg/hash"
)

// Digest 使用 pkg/hash 的引擎计算摘要并返回 hex 字符串。
func Digest(alg hash.Algorithm, data []byte) (string, error) {
	sum, err := hash.Sum(alg, data)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(sum), nil
}

// CalculateMD5 计算输入的 MD5 哈希值。
// 警告：MD5 不安全，不应用于安全相关的用途。
func CalculateMD5(data []byte) string {
	h := hash.NewMD5()
	_ = h.Update(data)
	sum, _ := h.Digest()
	return hex.EncodeToString(sum)
}

// CalculateSHA256 计算输入的 SHA256 哈希值。
func CalculateSHA256(data []byte) string {
	sum := hash.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// CalculateHash160 计算 RIPEMD160(SHA256(data))，比特币地址使用。
func CalculateHash160(data []byte) string {
	return hex.EncodeToString(hash.Hash160(data))
}

// Keccak256 以太坊使用的 Keccak-256（非 NIST SHA3）。
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, b := range data {
		h.Write(b)
	}
	return h.Sum(nil)
}

// CalculateKeccak256 计算输入的 Keccak256 哈希值。
func CalculateKeccak256(data []byte) string {
	return hex.EncodeToString(Keccak256(data))
}

// CalculateBlake3 计算输入的 Blake3 哈希值。
func CalculateBlake3(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
