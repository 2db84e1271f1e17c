// Package bip39 实现 BIP-39 助记词：熵与助记词的双向编码，以及助记词到种子的派生。
//
// 词表可替换，任何 2048 个互不相同的单词都可以使用；日文词表输出时用 U+3000 连接。
package bip39

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"wallet-keycore/pkg/hash"
	"wallet-keycore/pkg/safe_random"
)

var (
	ErrInvalidEntropy  = errors.New("invalid entropy")
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
	ErrInvalidChecksum = errors.New("invalid mnemonic checksum")
)

// DefaultStrength 默认熵位数（12 个单词）。
const DefaultStrength = 128

// RandomBytes 熵来源。
type RandomBytes func(n int) ([]byte, error)

func validEntropyLen(n int) bool {
	return n >= 16 && n <= 32 && n%4 == 0
}

// readBits 从 data 的第 offset 位起（高位在前）读取 n 位。
func readBits(data []byte, offset, n int) int {
	v := 0
	for i := 0; i < n; i++ {
		bit := offset + i
		v = v<<1 | int(data[bit/8]>>(7-bit%8)&1)
	}
	return v
}

// writeBits 把 v 的低 n 位写入 data 的第 offset 位起。
func writeBits(data []byte, offset, n, v int) {
	for i := 0; i < n; i++ {
		if v>>(n-1-i)&1 == 1 {
			bit := offset + i
			data[bit/8] |= 1 << (7 - bit%8)
		}
	}
}

// EntropyToMnemonic 熵长度必须是 16..32 字节且为 4 的倍数。
// wl 为 nil 时使用英文词表。
func EntropyToMnemonic(entropy []byte, wl *Wordlist) (string, error) {
	if !validEntropyLen(len(entropy)) {
		return "", fmt.Errorf("%w: length %d", ErrInvalidEntropy, len(entropy))
	}
	if wl == nil {
		wl = DefaultWordlist()
	}

	entBits := len(entropy) * 8
	csBits := entBits / 32
	sum := hash.Sum256(entropy)

	data := make([]byte, len(entropy)+1)
	copy(data, entropy)
	data[len(entropy)] = sum[0]

	count := (entBits + csBits) / 11
	words := make([]string, count)
	for i := range words {
		words[i] = wl.Word(readBits(data, i*11, 11))
	}
	clear(data)
	return strings.Join(words, wl.separator()), nil
}

// MnemonicToEntropy 解析助记词并校验校验和。
// 语法错误返回 ErrInvalidMnemonic，熵长度不合法返回 ErrInvalidEntropy，
// 校验和不匹配返回 ErrInvalidChecksum。
func MnemonicToEntropy(mnemonic string, wl *Wordlist) ([]byte, error) {
	if wl == nil {
		wl = DefaultWordlist()
	}
	words := strings.Split(norm.NFKD.String(mnemonic), " ")
	if len(words)%3 != 0 {
		return nil, fmt.Errorf("%w: word count %d is not a multiple of 3", ErrInvalidMnemonic, len(words))
	}

	totalBits := len(words) * 11
	buf := make([]byte, (totalBits+7)/8)
	for i, w := range words {
		idx, ok := wl.Index(w)
		if !ok {
			return nil, fmt.Errorf("%w: word %d (%q) is not in the wordlist", ErrInvalidMnemonic, i+1, w)
		}
		writeBits(buf, i*11, 11, idx)
	}

	divider := totalBits / 33 * 32
	entropy := buf[:divider/8]
	if !validEntropyLen(len(entropy)) {
		return nil, fmt.Errorf("%w: length %d", ErrInvalidEntropy, len(entropy))
	}

	csBits := totalBits - divider
	sum := hash.Sum256(entropy)
	if readBits(buf, divider, csBits) != readBits(sum[:], 0, csBits) {
		return nil, ErrInvalidChecksum
	}
	return append([]byte(nil), entropy...), nil
}

// ValidateMnemonic 不返回错误的校验形式。
func ValidateMnemonic(mnemonic string, wl *Wordlist) bool {
	_, err := MnemonicToEntropy(mnemonic, wl)
	return err == nil
}

// GenerateMnemonic strength 为熵位数（0 表示 128），必须是 32 的倍数。
// rng 为 nil 时使用 safe_random.GenerateRandomBytes。
func GenerateMnemonic(strength int, rng RandomBytes, wl *Wordlist) (string, error) {
	if strength == 0 {
		strength = DefaultStrength
	}
	if strength%32 != 0 || strength < 0 {
		return "", fmt.Errorf("%w: strength %d is not a multiple of 32", ErrInvalidEntropy, strength)
	}
	if rng == nil {
		rng = safe_random.GenerateRandomBytes
	}
	entropy, err := rng(strength / 8)
	if err != nil {
		return "", err
	}
	defer clear(entropy)
	return EntropyToMnemonic(entropy, wl)
}
