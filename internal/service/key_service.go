package service

import (
	"context"
	"encoding/hex"

	"github.com/btcsuite/btcd/chaincfg"
	"go.uber.org/zap"

	"wallet-keycore/pkg/address"
	"wallet-keycore/pkg/errno"
	"wallet-keycore/pkg/keystore"
	"wallet-keycore/pkg/kms"
	"wallet-keycore/pkg/logger"
	"wallet-keycore/pkg/monitor"
	"wallet-keycore/pkg/signingkey"
)

type keyService struct {
	kms         *kms.LocalKMS
	defaultPath string
	eth         *address.ETHGenerator
	btc         *address.BTCGenerator
	bech32      *address.Bech32Generator
	metrics     *monitor.Metrics
}

// NewKeyService defaultPath 为助记词导入时未指定路径使用的 BIP-32 路径。
func NewKeyService(k *kms.LocalKMS, defaultPath string, metrics *monitor.Metrics) KeyService {
	curve := k.Curve()
	return &keyService{
		kms:         k,
		defaultPath: defaultPath,
		eth:         address.NewETHGenerator(curve),
		btc:         address.NewBTCGenerator(curve, &chaincfg.MainNetParams),
		bech32:      address.NewBech32Generator(curve, address.DefaultBech32Prefix),
		metrics:     metrics,
	}
}

// CreateKey mnemonic 非空时从助记词派生 secp256k1 密钥 (kType 须为空或 Secp256k1)，否则随机生成 kType 类型的密钥。
func (s *keyService) CreateKey(kType kms.KeyType, mnemonic, password, path string) (*KeyInfo, error) {
	var (
		keyID string
		err   error
	)
	if mnemonic != "" {
		if kType != "" && kType != kms.KeyTypeSecp256k1 {
			return nil, errno.ErrInvalidArgument.WithMessage("助记词只能派生 Secp256k1 密钥, 得到 type=" + string(kType))
		}
		if path == "" {
			path = s.defaultPath
		}
		keyID, err = s.kms.CreateKeyFromMnemonic(mnemonic, password, path)
		kType = kms.KeyTypeSecp256k1
	} else {
		keyID, err = s.kms.CreateKey(kType)
	}
	s.metrics.ObserveOp("kms_create_key", err)
	if err != nil {
		return nil, err
	}

	s.metrics.KeyAdded(string(kType))
	logger.Info("kms key created", zap.String("key_id", keyID), zap.String("type", string(kType)), zap.String("path", path))
	return s.GetKey(keyID)
}

func (s *keyService) ImportKeystore(ctx context.Context, ks *keystore.Keystore, password, path string) (*KeyInfo, error) {
	mnemonic, err := keystore.DecryptMnemonicContext(ctx, ks, password)
	s.metrics.ObserveOp("keystore_decrypt", err)
	if err != nil {
		return nil, err
	}
	return s.CreateKey(kms.KeyTypeSecp256k1, mnemonic, "", path)
}

func (s *keyService) GetKey(keyID string) (*KeyInfo, error) {
	meta, err := s.kms.Metadata(keyID)
	if err != nil {
		return nil, err
	}
	info := &KeyInfo{KeyMetadata: meta}
	if !meta.Enabled || meta.Type == kms.KeyTypeAES {
		return info, nil
	}

	pub, err := s.kms.GetPublicKey(keyID)
	if err != nil {
		return nil, err
	}
	info.PublicKey = hex.EncodeToString(pub)
	if meta.Type != kms.KeyTypeSecp256k1 {
		return info, nil
	}

	compressedBytes, err := signingkey.ComputePublicKey(s.kms.Curve(), pub, true)
	if err != nil {
		return nil, err
	}
	info.CompressedPublicKey = hex.EncodeToString(compressedBytes)

	if info.ETHAddress, err = s.eth.PubKeyToAddress(pub); err != nil {
		return nil, err
	}
	if info.BTCAddress, err = s.btc.PubKeyToAddress(compressedBytes); err != nil {
		return nil, err
	}
	if info.Bech32Address, err = s.bech32.PubKeyToAddress(compressedBytes); err != nil {
		return nil, err
	}
	return info, nil
}

func (s *keyService) SignDigest(keyID string, digest []byte) ([]byte, error) {
	sig, err := s.kms.SignDigest(keyID, digest)
	s.metrics.ObserveOp("kms_sign", err)
	return sig, err
}

func (s *keyService) SetEnabled(keyID string, enabled bool) error {
	err := s.kms.SetEnabled(keyID, enabled)
	if err == nil {
		logger.Info("kms key state changed", zap.String("key_id", keyID), zap.Bool("enabled", enabled))
	}
	return err
}
