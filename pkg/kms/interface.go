package kms

import (
	"errors"
)

// KeyType 定义了支持的密钥类型
type KeyType string

const (
	KeyTypeAES       KeyType = "AES"       // 对称加密密钥 (AES-256-GCM)
	KeyTypeEd25519   KeyType = "Ed25519"   // Ed25519 密钥 (Solana 等)
	KeyTypeSecp256k1 KeyType = "Secp256k1" // 比特币/以太坊专用
)

// KeyMetadata 包含密钥的元数据，不包含敏感的私钥信息
type KeyMetadata struct {
	KeyID     string  `json:"key_id"`         // 密钥唯一标识符
	Type      KeyType `json:"type"`           // 密钥类型
	CreatedAt int64   `json:"created_at"`     // 创建时间戳
	Enabled   bool    `json:"enabled"`        // 是否启用
	Path      string  `json:"path,omitempty"` // 由助记词派生时的 BIP-32 路径
}

// KeyManager 定义了密钥管理服务的核心行为。
// 这是一个抽象接口，允许我们后续替换为真实的 HSM 或云端 KMS。
type KeyManager interface {
	// CreateKey 创建一个新的随机密钥，并返回其 ID。
	// 注意：私钥永远不会离开 KMS 的安全边界。
	CreateKey(kType KeyType) (string, error)

	// ImportKey 导入已有的密钥材料（secp256k1 私钥 32 字节、Ed25519 种子 32 字节、AES 16/24/32 字节）。
	ImportKey(kType KeyType, material []byte) (string, error)

	// CreateKeyFromMnemonic 由 BIP-39 助记词按 BIP-32 路径派生 secp256k1 密钥。
	CreateKeyFromMnemonic(mnemonic, password, path string) (string, error)

	// Metadata 返回密钥元数据。
	Metadata(keyID string) (KeyMetadata, error)

	// GetPublicKey 获取公钥字节。secp256k1 返回 65 字节非压缩格式，Ed25519 返回 32 字节。
	// 对称密钥 (AES) 返回 ErrUnsupportedOp。
	GetPublicKey(keyID string) ([]byte, error)

	// Sign 使用指定的密钥对数据进行签名。
	// secp256k1 对 SHA256(data) 签名并返回 65 字节 r||s||v。
	Sign(keyID string, data []byte) ([]byte, error)

	// SignDigest 直接对 32 字节摘要签名，仅适用于 secp256k1。
	SignDigest(keyID string, digest []byte) ([]byte, error)

	// Verify 验证签名是否有效。
	Verify(keyID string, data []byte, signature []byte) error

	// Encrypt 使用指定的密钥加密数据，仅适用于 AES。
	Encrypt(keyID string, plaintext []byte) ([]byte, error)

	// Decrypt 使用指定的密钥解密数据。
	Decrypt(keyID string, ciphertext []byte) ([]byte, error)

	// SetEnabled 启用或禁用密钥。
	SetEnabled(keyID string, enabled bool) error
}

var (
	ErrKeyNotFound      = errors.New("密钥未找到")
	ErrKeyDisabled      = errors.New("密钥已禁用")
	ErrUnsupportedOp    = errors.New("该密钥类型不支持此操作")
	ErrInvalidSignature = errors.New("签名无效")
	ErrInvalidMaterial  = errors.New("密钥材料无效")
)
