package service

import (
	"context"

	"wallet-keycore/pkg/hash"
	"wallet-keycore/pkg/keystore"
	"wallet-keycore/pkg/kms"
)

// CryptoService 无状态的摘要、密钥拉伸与公钥运算。
type CryptoService interface {
	Hash(alg hash.Algorithm, data []byte) ([]byte, error)
	PBKDF2(ctx context.Context, password, salt []byte, iterations, keyLen int, alg hash.Algorithm) ([]byte, error)
	PublicKey(key []byte, compressed bool) ([]byte, error)
	// Recover 返回 65 字节公钥与对应的以太坊地址
	Recover(digest, signature []byte) ([]byte, string, error)
}

// MnemonicService 助记词生成、校验、种子派生与 keystore 加解密。
type MnemonicService interface {
	Generate(strength int, language string) (string, error)
	Validate(mnemonic, language string) error
	Entropy(mnemonic, language string) ([]byte, error)
	Seed(ctx context.Context, mnemonic, password string) ([]byte, error)
	Encrypt(ctx context.Context, mnemonic, password, language string) (*keystore.Keystore, error)
	Decrypt(ctx context.Context, ks *keystore.Keystore, password string) (string, error)
}

// KeyService 托管在 KMS 中的密钥。
type KeyService interface {
	CreateKey(kType kms.KeyType, mnemonic, password, path string) (*KeyInfo, error)
	// ImportKeystore 解密 keystore 中的助记词并按 path 派生签名密钥
	ImportKeystore(ctx context.Context, ks *keystore.Keystore, password, path string) (*KeyInfo, error)
	GetKey(keyID string) (*KeyInfo, error)
	SignDigest(keyID string, digest []byte) ([]byte, error)
	SetEnabled(keyID string, enabled bool) error
}

// KeyInfo 是对外可见的密钥信息，不含私钥。
type KeyInfo struct {
	kms.KeyMetadata
	PublicKey           string `json:"public_key,omitempty"`
	CompressedPublicKey string `json:"compressed_public_key,omitempty"`
	ETHAddress          string `json:"eth_address,omitempty"`
	BTCAddress          string `json:"btc_address,omitempty"`
	Bech32Address       string `json:"bech32_address,omitempty"`
}
