// Package pbkdf2 实现 RFC 8018 PBKDF2，PRF 为 pkg/hmac。
package pbkdf2

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"wallet-keycore/pkg/hash"
	"wallet-keycore/pkg/hmac"
)

// MaxKeyLen 输出长度上限 2^30-1 字节。
const MaxKeyLen = 1<<30 - 1

// DefaultAlgorithm 未指定摘要时使用 SHA-1。
const DefaultAlgorithm = hash.SHA1

var (
	ErrBadIterations = errors.New("bad iterations")
	ErrBadKeyLength  = errors.New("bad key length")
)

// Key 派生 keyLen 字节的密钥。参数在任何哈希计算之前校验。
// iterations 为 0 时与 1 等价。
func Key(password, salt []byte, iterations, keyLen int, alg hash.Algorithm) ([]byte, error) {
	return KeyContext(context.Background(), password, salt, iterations, keyLen, alg)
}

// KeyContext 与 Key 相同，每个分块的迭代之间检查 ctx 是否已取消。
func KeyContext(ctx context.Context, password, salt []byte, iterations, keyLen int, alg hash.Algorithm) ([]byte, error) {
	if alg == "" {
		alg = DefaultAlgorithm
	}
	if iterations < 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadIterations, iterations)
	}
	if keyLen < 0 || keyLen > MaxKeyLen {
		return nil, fmt.Errorf("%w: %d", ErrBadKeyLength, keyLen)
	}
	probe, err := hash.New(alg)
	if err != nil {
		return nil, err
	}
	if iterations == 0 {
		iterations = 1
	}

	// 超过分组长度的口令先压缩一次，后续每轮 HMAC 不必重复哈希。
	if len(password) > probe.BlockSize() {
		if password, err = hash.Sum(alg, password); err != nil {
			return nil, err
		}
	}

	hLen := probe.Size()
	blocks := (keyLen + hLen - 1) / hLen
	out := make([]byte, 0, blocks*hLen)

	var idx [4]byte
	u := make([]byte, hLen)
	t := make([]byte, hLen)
	for block := 1; block <= blocks; block++ {
		binary.BigEndian.PutUint32(idx[:], uint32(block))

		mac, err := hmac.New(alg, password)
		if err != nil {
			return nil, err
		}
		_ = mac.Update(salt)
		_ = mac.Update(idx[:])
		first, err := mac.Digest()
		if err != nil {
			return nil, err
		}
		copy(u, first)
		copy(t, first)

		for i := 1; i < iterations; i++ {
			if i%1024 == 0 {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
			}
			next, err := hmac.Sum(alg, password, u)
			if err != nil {
				return nil, err
			}
			copy(u, next)
			for j := range t {
				t[j] ^= u[j]
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, t...)
	}

	clear(u)
	clear(t)
	return out[:keyLen], nil
}
