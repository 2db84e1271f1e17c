// Package address 把 secp256k1 公钥编码为各链地址：
// 以太坊（Keccak-256 + EIP-55）、比特币 P2PKH（Base58Check）和
// Cosmos/THORChain 风格的 bech32（HASH160 + bech32）。
package address

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"

	"wallet-keycore/pkg/hash"
	"wallet-keycore/pkg/secp256k1"
	"wallet-keycore/pkg/signingkey"
)

// DefaultBech32Prefix THORChain 主网前缀
const DefaultBech32Prefix = "thor"

var ErrInvalidAddress = errors.New("invalid address")

// Bech32Generator 生成 bech32(prefix, HASH160(compressedPubKey)) 地址。
type Bech32Generator struct {
	curve  *secp256k1.Curve
	prefix string
}

func NewBech32Generator(curve *secp256k1.Curve, prefix string) *Bech32Generator {
	if prefix == "" {
		prefix = DefaultBech32Prefix
	}
	return &Bech32Generator{curve: curve, prefix: prefix}
}

// PubKeyToAddress 公钥统一转成压缩格式后计算。
func (g *Bech32Generator) PubKeyToAddress(pubKeyBytes []byte) (string, error) {
	if len(pubKeyBytes) != 33 && len(pubKeyBytes) != 65 {
		return "", fmt.Errorf("%w: public key length %d", signingkey.ErrInvalidKey, len(pubKeyBytes))
	}
	compressed, err := signingkey.ComputePublicKey(g.curve, pubKeyBytes, true)
	if err != nil {
		return "", err
	}
	words, err := bech32.ConvertBits(hash.Hash160(compressed), 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode(g.prefix, words)
}

// DecodeAddress 校验前缀并返回 20 字节公钥哈希。
func (g *Bech32Generator) DecodeAddress(addr string) ([]byte, error) {
	hrp, words, err := bech32.Decode(addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if hrp != g.prefix {
		return nil, fmt.Errorf("%w: prefix %q, expected %q", ErrInvalidAddress, hrp, g.prefix)
	}
	data, err := bech32.ConvertBits(words, 5, 8, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if len(data) != 20 {
		return nil, fmt.Errorf("%w: payload length %d", ErrInvalidAddress, len(data))
	}
	return data, nil
}
