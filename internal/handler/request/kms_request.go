package request

import "wallet-keycore/pkg/keystore"

// CreateKeyRequest mnemonic 非空时按 path 派生 secp256k1 密钥，type 被忽略
type CreateKeyRequest struct {
	Type     string `json:"type" binding:"omitempty,oneof=AES Ed25519 Secp256k1"`
	Mnemonic string `json:"mnemonic"`
	Password string `json:"password"`
	Path     string `json:"path" binding:"bip32_path"`
}

type SignDigestRequest struct {
	DigestHex string `json:"digest_hex" binding:"required,hexbytes"`
}

type SetKeyStateRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// ImportKeystoreRequest 用 keystore 中的助记词派生签名密钥
type ImportKeystoreRequest struct {
	Keystore *keystore.Keystore `json:"keystore" binding:"required"`
	Password string             `json:"password" binding:"required"`
	Path     string             `json:"path" binding:"bip32_path"`
}
