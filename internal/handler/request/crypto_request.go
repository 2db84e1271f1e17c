package request

// HashRequest 计算摘要
type HashRequest struct {
	Algorithm string `json:"algorithm" binding:"required,digest_alg"`
	DataHex   string `json:"data_hex" binding:"hexbytes"`
}

// PBKDF2Request 派生密钥，digest 为空时使用 sha1
type PBKDF2Request struct {
	PasswordHex string `json:"password_hex" binding:"hexbytes"`
	SaltHex     string `json:"salt_hex" binding:"hexbytes"`
	Iterations  int    `json:"iterations" binding:"max=10000000"`
	KeyLength   int    `json:"key_length" binding:"required,min=1,max=4096"`
	Digest      string `json:"digest" binding:"digest_alg"`
}

// PublicKeyRequest 私钥(32)或公钥(33/65)转公钥
type PublicKeyRequest struct {
	KeyHex     string `json:"key_hex" binding:"required,hexbytes"`
	Compressed bool   `json:"compressed"`
}

// RecoverRequest 从 32 字节摘要和 64/65 字节签名恢复公钥
type RecoverRequest struct {
	DigestHex    string `json:"digest_hex" binding:"required,hexbytes"`
	SignatureHex string `json:"signature_hex" binding:"required,hexbytes"`
}
