package bip39

import (
	"context"
	"fmt"
)

// MnemonicService 提供助记词相关的功能
type MnemonicService struct {
	wordlist *Wordlist
	rng      RandomBytes
}

// NewMnemonicService 创建一个新的助记词服务实例，wl 为 nil 时使用英文词表。
func NewMnemonicService(wl *Wordlist) *MnemonicService {
	if wl == nil {
		wl = DefaultWordlist()
	}
	return &MnemonicService{wordlist: wl}
}

// WithRandom 替换熵来源（测试中注入固定熵）。
func (s *MnemonicService) WithRandom(rng RandomBytes) *MnemonicService {
	s.rng = rng
	return s
}

// Wordlist 当前词表
func (s *MnemonicService) Wordlist() *Wordlist { return s.wordlist }

// GenerateMnemonic 生成一个新的随机助记词 (BIP-39)。
// bitSize: 熵的位数，通常为 128 (12个单词) 或 256 (24个单词)。
func (s *MnemonicService) GenerateMnemonic(bitSize int) (string, error) {
	mnemonic, err := GenerateMnemonic(bitSize, s.rng, s.wordlist)
	if err != nil {
		return "", fmt.Errorf("生成助记词失败: %w", err)
	}
	return mnemonic, nil
}

// GeneratePhrase 按单词数生成助记词：12/15/18/21/24。
func (s *MnemonicService) GeneratePhrase(words int) (string, error) {
	if words < 12 || words > 24 || words%3 != 0 {
		return "", fmt.Errorf("%w: unsupported word count %d", ErrInvalidEntropy, words)
	}
	return s.GenerateMnemonic(words / 3 * 32)
}

// ValidatePhrase 验证助记词是否有效。
func (s *MnemonicService) ValidatePhrase(mnemonic string) bool {
	return ValidateMnemonic(mnemonic, s.wordlist)
}

// Entropy 返回助记词对应的熵，错误保留具体原因（单词位置 / 校验和）。
func (s *MnemonicService) Entropy(mnemonic string) ([]byte, error) {
	return MnemonicToEntropy(mnemonic, s.wordlist)
}

// MnemonicToSeed 将助记词转换为种子 (BIP-39 Seed)。
// password: 可选的密码 (Passphrase),用于以此增强安全性 (这也是 "第25个单词" 的由来)。
// 如果不需要密码，传空字符串 ""。
func (s *MnemonicService) MnemonicToSeed(ctx context.Context, mnemonic string, password string) ([]byte, error) {
	return MnemonicToSeedContext(ctx, mnemonic, password)
}

// GetSeed 先校验助记词，再派生种子（空密码）。
func (s *MnemonicService) GetSeed(ctx context.Context, phrase string) ([]byte, error) {
	if _, err := MnemonicToEntropy(phrase, s.wordlist); err != nil {
		return nil, err
	}
	return MnemonicToSeedContext(ctx, phrase, "")
}
