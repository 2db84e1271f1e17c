package bip32

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"

	"wallet-keycore/pkg/bip39"
	"wallet-keycore/pkg/secp256k1"
	"wallet-keycore/pkg/signingkey"
)

// 常用 BIP-44 路径
const (
	BTCPath = "m/44'/0'/0'/0/0"
	ETHPath = "m/44'/60'/0'/0/0"
)

// BTCKeychain 实现了 ExtendedKey 接口，封装了 hdkeychain.ExtendedKey
type BTCKeychain struct {
	key     *hdkeychain.ExtendedKey
	network *chaincfg.Params
}

func (k *BTCKeychain) String() string {
	return k.key.String()
}

func (k *BTCKeychain) ECPubKey() (*btcec.PublicKey, error) {
	return k.key.ECPubKey()
}

// ECPrivKey 返回椭圆曲线私钥
func (k *BTCKeychain) ECPrivKey() (*btcec.PrivateKey, error) {
	return k.key.ECPrivKey()
}

func (k *BTCKeychain) Derive(index uint32) (ExtendedKey, error) {
	childKey, err := k.key.Derive(index)
	if err != nil {
		return nil, fmt.Errorf("派生子密钥失败: %v", err)
	}
	return &BTCKeychain{key: childKey, network: k.network}, nil
}

func (k *BTCKeychain) IsPrivate() bool {
	return k.key.IsPrivate()
}

func (k *BTCKeychain) Address() string {
	// 这是一个简化的实现，直接生成 P2PKH 地址
	addr, err := k.key.Address(k.network)
	if err != nil {
		return "unknown"
	}
	return addr.EncodeAddress()
}

// SigningKey 导出 32 字节私钥并构造 SigningKey。
func (k *BTCKeychain) SigningKey(curve *secp256k1.Curve) (*signingkey.SigningKey, error) {
	if !k.key.IsPrivate() {
		return nil, ErrPublicOnly
	}
	priv, err := k.key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("获取私钥失败: %w", err)
	}
	raw := priv.Serialize()
	defer clear(raw)
	return signingkey.New(curve, raw)
}

func (k *BTCKeychain) Neuter() (ExtendedKey, error) {
	neuterKey, err := k.key.Neuter()
	if err != nil {
		return nil, fmt.Errorf("转换公钥失败: %v", err)
	}
	return &BTCKeychain{key: neuterKey, network: k.network}, nil
}

// Wallet 实现 HDWallet 接口
type Wallet struct {
	masterKey *BTCKeychain
	network   *chaincfg.Params
}

// NewMasterKeyFromSeed 使用 BIP-39 种子生成主密钥
// network: 默认为 chaincfg.MainNetParams
func NewMasterKeyFromSeed(seed []byte, network *chaincfg.Params) (*Wallet, error) {
	if len(seed) < 16 || len(seed) > 64 {
		return nil, fmt.Errorf("%w: 长度 %d", ErrInvalidSeed, len(seed))
	}

	if network == nil {
		network = &chaincfg.MainNetParams
	}

	masterKey, err := hdkeychain.NewMaster(seed, network)
	if err != nil {
		return nil, fmt.Errorf("生成主密钥失败: %v", err)
	}

	return &Wallet{
		masterKey: &BTCKeychain{key: masterKey, network: network},
		network:   network,
	}, nil
}

// NewMasterKeyFromMnemonic 先校验助记词，再按 BIP-39 派生种子并生成主密钥。
func NewMasterKeyFromMnemonic(mnemonic, password string, network *chaincfg.Params) (*Wallet, error) {
	if _, err := bip39.MnemonicToEntropy(mnemonic, nil); err != nil {
		return nil, err
	}
	seed := bip39.MnemonicToSeed(mnemonic, password)
	defer clear(seed)
	return NewMasterKeyFromSeed(seed, network)
}

func (w *Wallet) MasterKey() ExtendedKey {
	return w.masterKey
}

// ParsePath 把 m/44'/60'/0'/0/0 形式的路径解析为子索引序列，"m" 与空串表示主密钥。
// 硬化段可用 ' 或 h 后缀。
func ParsePath(path string) ([]uint32, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == "m" {
		return nil, nil
	}
	path = strings.TrimPrefix(path, "m/")

	segments := strings.Split(path, "/")
	indexes := make([]uint32, 0, len(segments))
	for _, segment := range segments {
		isHardened := false
		if strings.HasSuffix(segment, "'") || strings.HasSuffix(segment, "h") {
			isHardened = true
			segment = segment[:len(segment)-1]
		}

		val, err := strconv.ParseUint(segment, 10, 32)
		if err != nil || val >= hdkeychain.HardenedKeyStart {
			return nil, fmt.Errorf("%w: 无效的路径段 '%s'", ErrInvalidPath, segment)
		}
		index := uint32(val)
		if isHardened {
			index += hdkeychain.HardenedKeyStart
		}
		indexes = append(indexes, index)
	}
	return indexes, nil
}

// ValidatePath 只做语法检查，不派生。
func ValidatePath(path string) error {
	_, err := ParsePath(path)
	return err
}

// DerivePath 解析路径并派生密钥
// 支持格式: m/44'/0'/0'/0/0 或 m/44h/0h/0h/0/0
func (w *Wallet) DerivePath(path string) (ExtendedKey, error) {
	indexes, err := ParsePath(path)
	if err != nil {
		return nil, err
	}

	var currentKey ExtendedKey = w.masterKey
	for _, index := range indexes {
		if currentKey, err = currentKey.Derive(index); err != nil {
			return nil, err
		}
	}
	return currentKey, nil
}
