// Package hash 实现钱包密钥派生所需的分组哈希算法：
// MD5、SHA-0、SHA-1、SHA-224/256、SHA-384/512 以及 RIPEMD-160。
//
// 所有算法共享同一个流式契约：Update 可以多次调用，Digest 只能调用一次。
// Digest 之后内部状态会被清零并标记为已结束，再次 Update/Digest 会返回
// ErrDigestAlreadyCalled。
package hash

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Algorithm 哈希算法名称
type Algorithm string

const (
	MD5       Algorithm = "md5"
	SHA0      Algorithm = "sha0"
	SHA1      Algorithm = "sha1"
	SHA224    Algorithm = "sha224"
	SHA256    Algorithm = "sha256"
	SHA384    Algorithm = "sha384"
	SHA512    Algorithm = "sha512"
	RIPEMD160 Algorithm = "ripemd160"
)

var (
	// ErrDigestAlreadyCalled 在已经 Digest 过的状态上继续调用 Update/Digest。
	ErrDigestAlreadyCalled = errors.New("digest already called")
	// ErrUnknownAlgorithm 未知的哈希算法名称。
	ErrUnknownAlgorithm = errors.New("unknown hash algorithm")
)

// Hasher 是所有哈希引擎共享的流式接口。
// 同一个 Hasher 不能被多个 goroutine 同时使用。
type Hasher interface {
	// Update 追加数据，凑满一个分组立即压缩。
	Update(data []byte) error
	// Write 实现 io.Writer，便于与 fmt.Fprint 等配合。
	Write(p []byte) (int, error)
	// Digest 填充并输出摘要，之后状态不可再用。
	Digest() ([]byte, error)
	// Size 摘要字节数
	Size() int
	// BlockSize 分组字节数
	BlockSize() int
	Algorithm() Algorithm
}

// Algorithms 返回支持的全部算法。
func Algorithms() []Algorithm {
	return []Algorithm{MD5, SHA0, SHA1, SHA224, SHA256, SHA384, SHA512, RIPEMD160}
}

// New 按名称创建哈希状态。
func New(alg Algorithm) (Hasher, error) {
	switch alg {
	case MD5:
		return NewMD5(), nil
	case SHA0:
		return NewSHA0(), nil
	case SHA1:
		return NewSHA1(), nil
	case SHA224:
		return NewSHA224(), nil
	case SHA256:
		return NewSHA256(), nil
	case SHA384:
		return NewSHA384(), nil
	case SHA512:
		return NewSHA512(), nil
	case RIPEMD160:
		return NewRIPEMD160(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, string(alg))
	}
}

// Sum 一次性计算 data 的摘要。
func Sum(alg Algorithm, data []byte) ([]byte, error) {
	h, err := New(alg)
	if err != nil {
		return nil, err
	}
	if err := h.Update(data); err != nil {
		return nil, err
	}
	return h.Digest()
}

// Sum256 计算 SHA-256，新建的状态不会出错，所以直接返回定长数组。
func Sum256(data []byte) [32]byte {
	var out [32]byte
	h := NewSHA256()
	_ = h.Update(data)
	d, _ := h.Digest()
	copy(out[:], d)
	return out
}

// Hash160 = RIPEMD160(SHA256(data))，比特币/Cosmos 地址使用。
func Hash160(data []byte) []byte {
	s := Sum256(data)
	h := NewRIPEMD160()
	_ = h.Update(s[:])
	d, _ := h.Digest()
	return d
}

// compressor 是各算法的压缩函数与寄存器状态。
type compressor interface {
	compress(block []byte)
	output() []byte
	wipe()
}

// blockHasher 负责分组缓冲、长度计数与填充，具体算法通过组合的 compressor 提供。
type blockHasher struct {
	alg       Algorithm
	size      int
	blockSize int
	// lenSize 为长度字段字节数：64 字节分组为 8，128 字节分组为 16。
	lenSize int
	order   binary.ByteOrder

	c      compressor
	block  []byte
	nx     int
	length uint64 // 已处理的字节数
	done   bool
}

func newBlockHasher(alg Algorithm, size, blockSize, lenSize int, order binary.ByteOrder, c compressor) *blockHasher {
	return &blockHasher{
		alg:       alg,
		size:      size,
		blockSize: blockSize,
		lenSize:   lenSize,
		order:     order,
		c:         c,
		block:     make([]byte, blockSize),
	}
}

func (h *blockHasher) Size() int            { return h.size }
func (h *blockHasher) BlockSize() int       { return h.blockSize }
func (h *blockHasher) Algorithm() Algorithm { return h.alg }

func (h *blockHasher) Update(data []byte) error {
	if h.done {
		return ErrDigestAlreadyCalled
	}
	h.length += uint64(len(data))

	if h.nx > 0 {
		n := copy(h.block[h.nx:], data)
		h.nx += n
		data = data[n:]
		if h.nx < h.blockSize {
			return nil
		}
		h.c.compress(h.block)
		h.nx = 0
	}
	for len(data) >= h.blockSize {
		h.c.compress(data[:h.blockSize])
		data = data[h.blockSize:]
	}
	if len(data) > 0 {
		h.nx = copy(h.block, data)
	}
	return nil
}

func (h *blockHasher) Write(p []byte) (int, error) {
	if err := h.Update(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (h *blockHasher) Digest() ([]byte, error) {
	if h.done {
		return nil, ErrDigestAlreadyCalled
	}

	bitLen := h.length << 3
	// 长度字段的高 64 位只在 SHA-384/512 中存在，超过 2^61 字节的输入不现实。
	bitLenHi := h.length >> 61

	h.block[h.nx] = 0x80
	h.nx++
	if h.nx > h.blockSize-h.lenSize {
		clear(h.block[h.nx:])
		h.c.compress(h.block)
		h.nx = 0
	}
	clear(h.block[h.nx:])

	tail := h.block[h.blockSize-h.lenSize:]
	if h.order == binary.BigEndian {
		if h.lenSize == 16 {
			binary.BigEndian.PutUint64(tail[:8], bitLenHi)
		}
		binary.BigEndian.PutUint64(tail[h.lenSize-8:], bitLen)
	} else {
		binary.LittleEndian.PutUint64(tail[:8], bitLen)
		if h.lenSize == 16 {
			binary.LittleEndian.PutUint64(tail[8:], bitLenHi)
		}
	}
	h.c.compress(h.block)

	out := h.c.output()[:h.size]

	clear(h.block)
	h.nx = 0
	h.length = 0
	h.c.wipe()
	h.done = true

	return out, nil
}
