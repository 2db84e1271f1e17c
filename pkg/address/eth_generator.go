package address

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"wallet-keycore/pkg/crypto_util"
	"wallet-keycore/pkg/secp256k1"
	"wallet-keycore/pkg/signingkey"
)

// ETHGenerator 以太坊地址生成器
type ETHGenerator struct {
	curve *secp256k1.Curve
}

func NewETHGenerator(curve *secp256k1.Curve) *ETHGenerator {
	return &ETHGenerator{curve: curve}
}

// PubKeyToAddress 将公钥字节转换为 EIP-55 地址。
// 压缩公钥（33 bytes）会先解压为 65 bytes 再计算。
func (g *ETHGenerator) PubKeyToAddress(pubKeyBytes []byte) (string, error) {
	if len(pubKeyBytes) != 33 && len(pubKeyBytes) != 65 {
		return "", fmt.Errorf("%w: public key length %d", signingkey.ErrInvalidKey, len(pubKeyBytes))
	}
	return g.ComputeAddress(pubKeyBytes)
}

// ComputeAddress 接受 32 字节私钥或 33/65 字节公钥。
func (g *ETHGenerator) ComputeAddress(key []byte) (string, error) {
	pub, err := signingkey.ComputePublicKey(g.curve, key, false)
	if err != nil {
		return "", err
	}
	// 去掉前缀 0x04，Keccak-256 后取后 20 字节
	hash := crypto_util.Keccak256(pub[1:])
	return common.BytesToAddress(hash[12:]).Hex(), nil
}

// RecoverAddress 从摘要与签名恢复签名者地址。
func (g *ETHGenerator) RecoverAddress(digest []byte, sig *signingkey.Signature) (string, error) {
	pub, err := signingkey.RecoverPublicKey(g.curve, digest, sig)
	if err != nil {
		return "", err
	}
	return g.ComputeAddress(pub)
}

// ChecksumAddress 校验并返回 EIP-55 混合大小写形式。
func ChecksumAddress(addr string) (string, error) {
	if !common.IsHexAddress(addr) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
	}
	return common.HexToAddress(addr).Hex(), nil
}
