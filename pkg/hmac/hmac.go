// Package hmac 在 pkg/hash 的任意引擎之上实现 HMAC（RFC 2104）。
package hmac

import (
	"wallet-keycore/pkg/hash"
)

const (
	ipad = 0x36
	opad = 0x5c
)

// HMAC 是单次使用的 HMAC 状态，语义与 hash.Hasher 一致：
// Digest 之后再调用 Update/Digest 返回 hash.ErrDigestAlreadyCalled。
type HMAC struct {
	alg   hash.Algorithm
	inner hash.Hasher
	outer hash.Hasher
}

// New 用 key 初始化 HMAC。key 长于分组时先做一次哈希，短于分组时补零。
func New(alg hash.Algorithm, key []byte) (*HMAC, error) {
	inner, err := hash.New(alg)
	if err != nil {
		return nil, err
	}
	outer, _ := hash.New(alg)

	bs := inner.BlockSize()
	k := make([]byte, bs)
	if len(key) > bs {
		sum, err := hash.Sum(alg, key)
		if err != nil {
			return nil, err
		}
		copy(k, sum)
	} else {
		copy(k, key)
	}

	pad := make([]byte, bs)
	for i := range k {
		pad[i] = k[i] ^ ipad
	}
	_ = inner.Update(pad)
	for i := range k {
		pad[i] = k[i] ^ opad
	}
	_ = outer.Update(pad)

	clear(k)
	clear(pad)

	return &HMAC{alg: alg, inner: inner, outer: outer}, nil
}

// Update 追加消息数据。
func (h *HMAC) Update(data []byte) error {
	return h.inner.Update(data)
}

// Write 实现 io.Writer。
func (h *HMAC) Write(p []byte) (int, error) {
	return h.inner.Write(p)
}

// Digest 输出 MAC，只能调用一次。
func (h *HMAC) Digest() ([]byte, error) {
	in, err := h.inner.Digest()
	if err != nil {
		return nil, err
	}
	if err := h.outer.Update(in); err != nil {
		return nil, err
	}
	return h.outer.Digest()
}

// Size MAC 字节数，等于底层摘要长度。
func (h *HMAC) Size() int { return h.outer.Size() }

func (h *HMAC) Algorithm() hash.Algorithm { return h.alg }

// Sum 一次性计算 HMAC(key, msg)。
func Sum(alg hash.Algorithm, key, msg []byte) ([]byte, error) {
	h, err := New(alg, key)
	if err != nil {
		return nil, err
	}
	if err := h.Update(msg); err != nil {
		return nil, err
	}
	return h.Digest()
}
