package address

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg"

	"wallet-keycore/pkg/hash"
	"wallet-keycore/pkg/secp256k1"
	"wallet-keycore/pkg/signingkey"
)

// BTCGenerator 比特币地址生成器
type BTCGenerator struct {
	curve   *secp256k1.Curve
	network *chaincfg.Params
}

// NewBTCGenerator network 为 nil 时使用主网。
func NewBTCGenerator(curve *secp256k1.Curve, network *chaincfg.Params) *BTCGenerator {
	if network == nil {
		network = &chaincfg.MainNetParams
	}
	return &BTCGenerator{curve: curve, network: network}
}

// PubKeyToAddress 将公钥字节转换为 P2PKH 地址：Base58Check(version || HASH160(pub))。
// 公钥按传入的编码（压缩或未压缩）计算，两者得到不同的地址。
func (g *BTCGenerator) PubKeyToAddress(pubKeyBytes []byte) (string, error) {
	if _, err := g.curve.DecodePoint(pubKeyBytes); err != nil {
		return "", fmt.Errorf("%w: %v", signingkey.ErrInvalidKey, err)
	}
	return base58.CheckEncode(hash.Hash160(pubKeyBytes), g.network.PubKeyHashAddrID), nil
}

// DecodeAddress 解析 P2PKH 地址，返回 20 字节公钥哈希。
func (g *BTCGenerator) DecodeAddress(addr string) ([]byte, error) {
	payload, version, err := base58.CheckDecode(addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if version != g.network.PubKeyHashAddrID || len(payload) != 20 {
		return nil, fmt.Errorf("%w: not a p2pkh address for %s", ErrInvalidAddress, g.network.Name)
	}
	return payload, nil
}
