package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"wallet-keycore/pkg/bip39"
	"wallet-keycore/pkg/config"
	"wallet-keycore/pkg/keystore"
	"wallet-keycore/pkg/logger"
	"wallet-keycore/pkg/monitor"
)

type mnemonicService struct {
	language string
	strength int
	ksOpts   []keystore.Option
	kdf      string
	metrics  *monitor.Metrics
}

// NewMnemonicService 使用 bip39 与 keystore 配置段构造服务。
func NewMnemonicService(bipCfg config.Bip39Config, ksCfg config.KeystoreConfig, metrics *monitor.Metrics) MnemonicService {
	s := &mnemonicService{
		language: bipCfg.Language,
		strength: bipCfg.Strength,
		kdf:      ksCfg.KDF,
		metrics:  metrics,
	}
	switch ksCfg.KDF {
	case keystore.KDFScrypt:
		s.ksOpts = append(s.ksOpts, keystore.WithScrypt(ksCfg.ScryptN, ksCfg.ScryptR, ksCfg.ScryptP))
	default:
		s.kdf = keystore.KDFPBKDF2
		s.ksOpts = append(s.ksOpts, keystore.WithPBKDF2(ksCfg.Iterations))
	}
	if ksCfg.MAC == keystore.MACBlake3 {
		s.ksOpts = append(s.ksOpts, keystore.WithBlake3MAC())
	}
	return s
}

// wordlist 空语言使用配置中的默认语言。
func (s *mnemonicService) wordlist(language string) (*bip39.Wordlist, error) {
	if language == "" {
		language = s.language
	}
	return bip39.WordlistFor(bip39.Language(language))
}

func (s *mnemonicService) Generate(strength int, language string) (string, error) {
	wl, err := s.wordlist(language)
	if err != nil {
		return "", err
	}
	if strength == 0 {
		strength = s.strength
	}
	m, err := bip39.GenerateMnemonic(strength, nil, wl)
	s.metrics.ObserveOp("mnemonic_generate", err)
	return m, err
}

func (s *mnemonicService) Validate(mnemonic, language string) error {
	_, err := s.Entropy(mnemonic, language)
	return err
}

func (s *mnemonicService) Entropy(mnemonic, language string) ([]byte, error) {
	wl, err := s.wordlist(language)
	if err != nil {
		return nil, err
	}
	entropy, err := bip39.MnemonicToEntropy(mnemonic, wl)
	s.metrics.ObserveOp("mnemonic_to_entropy", err)
	return entropy, err
}

func (s *mnemonicService) Seed(ctx context.Context, mnemonic, password string) ([]byte, error) {
	start := time.Now()
	seed, err := bip39.MnemonicToSeedContext(ctx, mnemonic, password)
	s.metrics.ObserveOp("mnemonic_to_seed", err)
	if err != nil {
		logger.Warn("seed derivation aborted", zap.Error(err))
		return nil, err
	}
	s.metrics.ObserveKDF("bip39_seed", start)
	return seed, nil
}

func (s *mnemonicService) Encrypt(ctx context.Context, mnemonic, password, language string) (*keystore.Keystore, error) {
	wl, err := s.wordlist(language)
	if err != nil {
		return nil, err
	}
	opts := append([]keystore.Option{keystore.WithWordlist(wl)}, s.ksOpts...)

	start := time.Now()
	ks, err := keystore.EncryptMnemonicContext(ctx, mnemonic, password, opts...)
	s.metrics.ObserveOp("keystore_encrypt", err)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveKDF(s.kdf, start)
	logger.Info("keystore created", zap.String("id", ks.ID), zap.String("kdf", s.kdf))
	return ks, nil
}

func (s *mnemonicService) Decrypt(ctx context.Context, ks *keystore.Keystore, password string) (string, error) {
	m, err := keystore.DecryptMnemonicContext(ctx, ks, password)
	s.metrics.ObserveOp("keystore_decrypt", err)
	if err != nil {
		logger.Warn("keystore decrypt failed", zap.Error(err))
	}
	return m, err
}
