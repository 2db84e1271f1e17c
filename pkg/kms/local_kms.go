package kms

import (
	"crypto/ed25519"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/btcsuite/btcd/chaincfg"

	"wallet-keycore/pkg/bip32"
	"wallet-keycore/pkg/crypto_util"
	"wallet-keycore/pkg/safe_random"
	"wallet-keycore/pkg/secp256k1"
	"wallet-keycore/pkg/signingkey"
)

// keyEntry 是内部存储结构，包含私钥（敏感数据）和元数据
type keyEntry struct {
	Metadata   KeyMetadata
	PrivateKey any // []byte (AES), ed25519.PrivateKey, *signingkey.SigningKey
}

// LocalKMS 是 KeyManager 接口的本地内存实现。
// 它模拟了一个硬件安全模块 (HSM)，私钥存储在内存中，不直接暴露给外部。
type LocalKMS struct {
	mu      sync.RWMutex
	keys    map[string]*keyEntry
	curve   *secp256k1.Curve
	network *chaincfg.Params
}

// NewLocalKMS 创建一个新的 LocalKMS 实例。curve 为 nil 时新建 secp256k1 参数对象。
func NewLocalKMS(curve *secp256k1.Curve) *LocalKMS {
	if curve == nil {
		curve = secp256k1.NewCurve()
	}
	return &LocalKMS{
		keys:    make(map[string]*keyEntry),
		curve:   curve,
		network: &chaincfg.MainNetParams,
	}
}

// Curve 返回 KMS 使用的曲线参数对象。
func (kms *LocalKMS) Curve() *secp256k1.Curve { return kms.curve }

// CreateKey 创建一个新的密钥，并返回其 ID。
func (kms *LocalKMS) CreateKey(kType KeyType) (string, error) {
	var priv any

	// 根据类型生成具体的密钥
	switch kType {
	case KeyTypeAES:
		// AES 256
		keyBytes, err := safe_random.GenerateRandomBytes(32)
		if err != nil {
			return "", err
		}
		priv = keyBytes

	case KeyTypeEd25519:
		edPriv, _, err := crypto_util.GenerateEd25519KeyPair()
		if err != nil {
			return "", err
		}
		priv = edPriv

	case KeyTypeSecp256k1:
		sk, err := crypto_util.GenerateSecp256k1Key(kms.curve)
		if err != nil {
			return "", err
		}
		priv = sk

	default:
		return "", fmt.Errorf("%w: 不支持的密钥类型 %s", ErrUnsupportedOp, kType)
	}

	return kms.store(kType, priv, "")
}

// ImportKey 导入已有的密钥材料。
func (kms *LocalKMS) ImportKey(kType KeyType, material []byte) (string, error) {
	var priv any

	switch kType {
	case KeyTypeAES:
		switch len(material) {
		case 16, 24, 32:
		default:
			return "", fmt.Errorf("%w: AES 密钥长度 %d", ErrInvalidMaterial, len(material))
		}
		priv = append([]byte(nil), material...)

	case KeyTypeEd25519:
		edPriv, err := crypto_util.Ed25519FromSeed(material)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidMaterial, err)
		}
		priv = edPriv

	case KeyTypeSecp256k1:
		sk, err := signingkey.New(kms.curve, material)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrInvalidMaterial, err)
		}
		priv = sk

	default:
		return "", fmt.Errorf("%w: 不支持的密钥类型 %s", ErrUnsupportedOp, kType)
	}

	return kms.store(kType, priv, "")
}

// CreateKeyFromMnemonic 校验助记词，派生 BIP-32 路径上的 secp256k1 私钥并保存。
func (kms *LocalKMS) CreateKeyFromMnemonic(mnemonic, password, path string) (string, error) {
	wallet, err := bip32.NewMasterKeyFromMnemonic(mnemonic, password, kms.network)
	if err != nil {
		return "", err
	}
	ext, err := wallet.DerivePath(path)
	if err != nil {
		return "", err
	}
	sk, err := ext.SigningKey(kms.curve)
	if err != nil {
		return "", err
	}
	return kms.store(KeyTypeSecp256k1, sk, path)
}

func (kms *LocalKMS) store(kType KeyType, priv any, path string) (string, error) {
	// 生成一个随机 Key ID
	keyID, err := safe_random.GenerateRandomHexString(16)
	if err != nil {
		return "", fmt.Errorf("生成 KeyID 失败: %w", err)
	}

	kms.mu.Lock()
	defer kms.mu.Unlock()

	kms.keys[keyID] = &keyEntry{
		Metadata: KeyMetadata{
			KeyID:     keyID,
			Type:      kType,
			CreatedAt: time.Now().Unix(),
			Enabled:   true,
			Path:      path,
		},
		PrivateKey: priv,
	}
	return keyID, nil
}

// lookup 调用方需持有读锁。
func (kms *LocalKMS) lookup(keyID string) (*keyEntry, error) {
	entry, exists := kms.keys[keyID]
	if !exists {
		return nil, ErrKeyNotFound
	}
	if !entry.Metadata.Enabled {
		return nil, ErrKeyDisabled
	}
	return entry, nil
}

// Metadata 返回密钥元数据，禁用的密钥同样可以查询。
func (kms *LocalKMS) Metadata(keyID string) (KeyMetadata, error) {
	kms.mu.RLock()
	defer kms.mu.RUnlock()

	entry, exists := kms.keys[keyID]
	if !exists {
		return KeyMetadata{}, ErrKeyNotFound
	}
	return entry.Metadata, nil
}

// ListKeys 按创建时间返回所有密钥的元数据。
func (kms *LocalKMS) ListKeys() []KeyMetadata {
	kms.mu.RLock()
	defer kms.mu.RUnlock()

	list := make([]KeyMetadata, 0, len(kms.keys))
	for _, entry := range kms.keys {
		list = append(list, entry.Metadata)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt != list[j].CreatedAt {
			return list[i].CreatedAt < list[j].CreatedAt
		}
		return list[i].KeyID < list[j].KeyID
	})
	return list
}

// SetEnabled 启用或禁用密钥。
func (kms *LocalKMS) SetEnabled(keyID string, enabled bool) error {
	kms.mu.Lock()
	defer kms.mu.Unlock()

	entry, exists := kms.keys[keyID]
	if !exists {
		return ErrKeyNotFound
	}
	entry.Metadata.Enabled = enabled
	return nil
}

// GetPublicKey 获取指定密钥 ID 的公钥。
func (kms *LocalKMS) GetPublicKey(keyID string) ([]byte, error) {
	kms.mu.RLock()
	defer kms.mu.RUnlock()

	entry, err := kms.lookup(keyID)
	if err != nil {
		return nil, err
	}

	switch k := entry.PrivateKey.(type) {
	case *signingkey.SigningKey:
		return k.PublicKey(), nil
	case ed25519.PrivateKey:
		return append([]byte(nil), k.Public().(ed25519.PublicKey)...), nil
	default:
		return nil, fmt.Errorf("%w: 密钥 %s 没有公钥 (可能是对称密钥)", ErrUnsupportedOp, keyID)
	}
}

// Sign 使用指定的密钥对数据进行签名。
func (kms *LocalKMS) Sign(keyID string, data []byte) ([]byte, error) {
	kms.mu.RLock()
	defer kms.mu.RUnlock()

	entry, err := kms.lookup(keyID)
	if err != nil {
		return nil, err
	}

	switch k := entry.PrivateKey.(type) {
	case *signingkey.SigningKey:
		return crypto_util.Secp256k1Sign(k, data)
	case ed25519.PrivateKey:
		return crypto_util.Ed25519Sign(k, data), nil
	default:
		return nil, ErrUnsupportedOp
	}
}

// SignDigest 对 32 字节摘要签名，返回 r||s||v。
func (kms *LocalKMS) SignDigest(keyID string, digest []byte) ([]byte, error) {
	kms.mu.RLock()
	defer kms.mu.RUnlock()

	entry, err := kms.lookup(keyID)
	if err != nil {
		return nil, err
	}

	k, ok := entry.PrivateKey.(*signingkey.SigningKey)
	if !ok {
		return nil, ErrUnsupportedOp
	}
	sig, err := k.SignDigest(digest)
	if err != nil {
		return nil, err
	}
	return sig.Bytes(), nil
}

// Verify 验证签名是否有效。
func (kms *LocalKMS) Verify(keyID string, data []byte, signature []byte) error {
	kms.mu.RLock()
	defer kms.mu.RUnlock()

	entry, err := kms.lookup(keyID)
	if err != nil {
		return err
	}

	var valid bool
	switch k := entry.PrivateKey.(type) {
	case *signingkey.SigningKey:
		valid = crypto_util.Secp256k1Verify(kms.curve, k.PublicKey(), data, signature)
	case ed25519.PrivateKey:
		valid = crypto_util.Ed25519Verify(k.Public().(ed25519.PublicKey), data, signature)
	default:
		return ErrUnsupportedOp
	}

	if !valid {
		return ErrInvalidSignature
	}
	return nil
}

// Encrypt 使用指定的密钥加密数据。
func (kms *LocalKMS) Encrypt(keyID string, plaintext []byte) ([]byte, error) {
	kms.mu.RLock()
	defer kms.mu.RUnlock()

	entry, err := kms.lookup(keyID)
	if err != nil {
		return nil, err
	}

	k, ok := entry.PrivateKey.([]byte)
	if !ok {
		return nil, ErrUnsupportedOp
	}
	return crypto_util.EncryptAESGCM(k, plaintext)
}

// Decrypt 使用指定的密钥解密数据。
func (kms *LocalKMS) Decrypt(keyID string, ciphertext []byte) ([]byte, error) {
	kms.mu.RLock()
	defer kms.mu.RUnlock()

	entry, err := kms.lookup(keyID)
	if err != nil {
		return nil, err
	}

	k, ok := entry.PrivateKey.([]byte)
	if !ok {
		return nil, ErrUnsupportedOp
	}
	return crypto_util.DecryptAESGCM(k, ciphertext)
}

var _ KeyManager = (*LocalKMS)(nil)
