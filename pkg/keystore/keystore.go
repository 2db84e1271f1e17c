// Package keystore 将助记词加密为 xchain-keystore JSON。
// 密钥派生默认 PBKDF2-HMAC-SHA256，可选 scrypt；加密 AES-128-CTR；
// MAC = BLAKE2b-256(derivedKey[16:32] || ciphertext)，与 xchainjs 互通。
// blake3 MAC 需显式开启，并记录在 crypto.macalg 字段中。
package keystore

import (
	"context"
	"crypto/aes"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/scrypt"
	"lukechampine.com/blake3"

	"wallet-keycore/pkg/bip39"
	"wallet-keycore/pkg/crypto_util"
	"wallet-keycore/pkg/hash"
	"wallet-keycore/pkg/pbkdf2"
	"wallet-keycore/pkg/safe_random"
)

const (
	CipherAES128CTR = "aes-128-ctr"
	KDFPBKDF2       = "pbkdf2"
	KDFScrypt       = "scrypt"
	PRFHMACSHA256   = "hmac-sha256"

	// macalg 缺省即 BLAKE2b-256
	MACBlake2b256 = "blake2b-256"
	MACBlake3     = "blake3"

	Meta    = "xchain-keystore"
	Version = 1

	DefaultIterations = 262144
	DefaultScryptN    = 262144
	DefaultScryptR    = 8
	DefaultScryptP    = 1

	// 解密时 KDF 参数来自不可信的 JSON，超过上限直接拒绝
	MaxIterations  = 4 * DefaultIterations
	MaxScryptCost  = 1 << 20 * 8 // N*r*p
	maxScryptParam = 1 << 23

	dkLen   = 32
	saltLen = 32
	ivLen   = aes.BlockSize
)

var (
	ErrInvalidPassword   = errors.New("invalid password")
	ErrUnsupportedCipher = errors.New("unsupported cipher")
	ErrUnsupportedKDF    = errors.New("unsupported kdf")
	ErrInvalidKeystore   = errors.New("invalid keystore")
	ErrUnsupportedMAC    = errors.New("unsupported mac algorithm")
)

// Keystore 是落盘的 JSON 结构。
type Keystore struct {
	Crypto  CryptoJSON `json:"crypto"`
	ID      string     `json:"id"`
	Version int        `json:"version"`
	Meta    string     `json:"meta"`
}

type CryptoJSON struct {
	Cipher       string       `json:"cipher"`
	CipherText   string       `json:"ciphertext"`
	CipherParams CipherParams `json:"cipherparams"`
	KDF          string       `json:"kdf"`
	KDFParams    KDFParams    `json:"kdfparams"`
	MAC          string       `json:"mac"`
	MACAlg       string       `json:"macalg,omitempty"`
}

type CipherParams struct {
	IV string `json:"iv"`
}

// KDFParams pbkdf2 使用 prf/c，scrypt 使用 n/r/p。
type KDFParams struct {
	PRF   string `json:"prf,omitempty"`
	DKLen int    `json:"dklen"`
	Salt  string `json:"salt"`
	C     int    `json:"c,omitempty"`
	N     int    `json:"n,omitempty"`
	R     int    `json:"r,omitempty"`
	P     int    `json:"p,omitempty"`
}

type options struct {
	kdf        string
	iterations int
	n, r, p    int
	macAlg     string
	wordlist   *bip39.Wordlist
	random     bip39.RandomBytes
}

// Option 调整加密参数。
type Option func(*options)

// WithPBKDF2 使用 PBKDF2-HMAC-SHA256，iterations 为迭代次数。
func WithPBKDF2(iterations int) Option {
	return func(o *options) {
		o.kdf = KDFPBKDF2
		o.iterations = iterations
	}
}

// WithScrypt 使用 scrypt 派生密钥。
func WithScrypt(n, r, p int) Option {
	return func(o *options) {
		o.kdf = KDFScrypt
		o.n, o.r, o.p = n, r, p
	}
}

// WithBlake3MAC 改用 blake3 计算 MAC，xchainjs 无法解密此类文件。
func WithBlake3MAC() Option {
	return func(o *options) { o.macAlg = MACBlake3 }
}

// WithWordlist 指定校验助记词所用的词表，默认英文。
func WithWordlist(wl *bip39.Wordlist) Option {
	return func(o *options) { o.wordlist = wl }
}

// WithRandom 替换 salt/iv 的随机源（测试用）。
func WithRandom(rng bip39.RandomBytes) Option {
	return func(o *options) { o.random = rng }
}

func defaultOptions() *options {
	return &options{
		kdf:        KDFPBKDF2,
		iterations: DefaultIterations,
		random:     safe_random.GenerateRandomBytes,
	}
}

// EncryptMnemonic 校验助记词后用密码加密。
func EncryptMnemonic(mnemonic, password string, opts ...Option) (*Keystore, error) {
	return EncryptMnemonicContext(context.Background(), mnemonic, password, opts...)
}

// EncryptMnemonicContext 同 EncryptMnemonic，PBKDF2 迭代期间响应 ctx 取消。
func EncryptMnemonicContext(ctx context.Context, mnemonic, password string, opts ...Option) (*Keystore, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if _, err := bip39.MnemonicToEntropy(mnemonic, o.wordlist); err != nil {
		return nil, err
	}

	salt, err := o.random(saltLen)
	if err != nil {
		return nil, err
	}
	iv, err := o.random(ivLen)
	if err != nil {
		return nil, err
	}

	params := KDFParams{DKLen: dkLen, Salt: hex.EncodeToString(salt)}
	switch o.kdf {
	case KDFPBKDF2:
		params.PRF = PRFHMACSHA256
		params.C = o.iterations
	case KDFScrypt:
		params.N, params.R, params.P = o.n, o.r, o.p
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKDF, o.kdf)
	}
	if err := checkKDFParams(o.kdf, params); err != nil {
		return nil, err
	}

	derivedKey, err := deriveKey(ctx, o.kdf, params, []byte(password), salt)
	if err != nil {
		return nil, err
	}
	defer clear(derivedKey)

	ciphertext, err := crypto_util.AESCTR(derivedKey[:16], iv, []byte(mnemonic))
	if err != nil {
		return nil, err
	}
	mac, err := computeMAC(o.macAlg, derivedKey, ciphertext)
	if err != nil {
		return nil, err
	}

	return &Keystore{
		Version: Version,
		ID:      uuid.NewString(),
		Meta:    Meta,
		Crypto: CryptoJSON{
			Cipher:       CipherAES128CTR,
			CipherText:   hex.EncodeToString(ciphertext),
			CipherParams: CipherParams{IV: hex.EncodeToString(iv)},
			KDF:          o.kdf,
			KDFParams:    params,
			MAC:          mac,
			MACAlg:       o.macAlg,
		},
	}, nil
}

// DecryptMnemonic 解密得到助记词，MAC 不匹配返回 ErrInvalidPassword。
func DecryptMnemonic(ks *Keystore, password string) (string, error) {
	return DecryptMnemonicContext(context.Background(), ks, password)
}

func DecryptMnemonicContext(ctx context.Context, ks *Keystore, password string) (string, error) {
	if ks == nil {
		return "", ErrInvalidKeystore
	}
	c := ks.Crypto
	if c.Cipher != CipherAES128CTR {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedCipher, c.Cipher)
	}

	salt, err := hex.DecodeString(c.KDFParams.Salt)
	if err != nil {
		return "", fmt.Errorf("%w: salt: %v", ErrInvalidKeystore, err)
	}
	iv, err := hex.DecodeString(c.CipherParams.IV)
	if err != nil || len(iv) != ivLen {
		return "", fmt.Errorf("%w: iv", ErrInvalidKeystore)
	}
	ciphertext, err := hex.DecodeString(c.CipherText)
	if err != nil {
		return "", fmt.Errorf("%w: ciphertext: %v", ErrInvalidKeystore, err)
	}
	if c.KDFParams.DKLen != dkLen {
		return "", fmt.Errorf("%w: dklen %d", ErrInvalidKeystore, c.KDFParams.DKLen)
	}
	if c.MACAlg != "" && c.MACAlg != MACBlake2b256 && c.MACAlg != MACBlake3 {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMAC, c.MACAlg)
	}
	if err := checkKDFParams(c.KDF, c.KDFParams); err != nil {
		return "", err
	}

	derivedKey, err := deriveKey(ctx, c.KDF, c.KDFParams, []byte(password), salt)
	if err != nil {
		return "", err
	}
	defer clear(derivedKey)

	mac, err := computeMAC(c.MACAlg, derivedKey, ciphertext)
	if err != nil {
		return "", err
	}
	if subtle.ConstantTimeCompare([]byte(mac), []byte(c.MAC)) != 1 {
		return "", ErrInvalidPassword
	}

	plaintext, err := crypto_util.AESCTR(derivedKey[:16], iv, ciphertext)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// checkKDFParams 在任何派生计算之前校验参数范围。
func checkKDFParams(kdf string, p KDFParams) error {
	switch kdf {
	case KDFPBKDF2:
		if p.C < 1 || p.C > MaxIterations {
			return fmt.Errorf("%w: c=%d 超出范围 [1, %d]", ErrInvalidKeystore, p.C, MaxIterations)
		}
	case KDFScrypt:
		if p.N <= 1 || p.N&(p.N-1) != 0 {
			return fmt.Errorf("%w: scrypt n=%d 必须是大于 1 的 2 的幂", ErrInvalidKeystore, p.N)
		}
		if p.R < 1 || p.P < 1 || p.N > maxScryptParam || p.R > maxScryptParam || p.P > maxScryptParam {
			return fmt.Errorf("%w: scrypt n=%d r=%d p=%d", ErrInvalidKeystore, p.N, p.R, p.P)
		}
		if cost := int64(p.N) * int64(p.R) * int64(p.P); cost > MaxScryptCost {
			return fmt.Errorf("%w: scrypt n*r*p=%d 超过上限 %d", ErrInvalidKeystore, cost, MaxScryptCost)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedKDF, kdf)
	}
	return nil
}

func deriveKey(ctx context.Context, kdf string, p KDFParams, password, salt []byte) ([]byte, error) {
	switch kdf {
	case KDFPBKDF2:
		if p.PRF != PRFHMACSHA256 {
			return nil, fmt.Errorf("%w: prf %s", ErrUnsupportedKDF, p.PRF)
		}
		return pbkdf2.KeyContext(ctx, password, salt, p.C, p.DKLen, hash.SHA256)
	case KDFScrypt:
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return scrypt.Key(password, salt, p.N, p.R, p.P, p.DKLen)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKDF, kdf)
	}
}

func computeMAC(alg string, derivedKey, ciphertext []byte) (string, error) {
	buf := make([]byte, 0, 16+len(ciphertext))
	buf = append(buf, derivedKey[16:32]...)
	buf = append(buf, ciphertext...)

	var sum [32]byte
	switch alg {
	case "", MACBlake2b256:
		sum = blake2b.Sum256(buf)
	case MACBlake3:
		sum = blake3.Sum256(buf)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMAC, alg)
	}
	return hex.EncodeToString(sum[:]), nil
}

// SaveToFile 保存到文件（0600）。
func (k *Keystore) SaveToFile(filename string) error {
	data, err := json.MarshalIndent(k, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0600)
}

// LoadFromFile 从文件加载。
func LoadFromFile(filename string) (*Keystore, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var k Keystore
	if err := json.Unmarshal(data, &k); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeystore, err)
	}
	return &k, nil
}
