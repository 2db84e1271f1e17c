package hash

import (
	"encoding/binary"
	"math/bits"
)

// sha1State 同时服务 SHA-0 与 SHA-1，两者唯一区别是消息扩展时是否循环左移 1 位。
type sha1State struct {
	h      [5]uint32
	rotate bool
}

var sha1IV = [5]uint32{0x67452301, 0xefcdab89, 0x98badcfe, 0x10325476, 0xc3d2e1f0}

// NewSHA1 创建 SHA-1 状态。
func NewSHA1() Hasher {
	return newBlockHasher(SHA1, 20, 64, 8, binary.BigEndian, &sha1State{h: sha1IV, rotate: true})
}

// NewSHA0 创建 SHA-0 状态（已撤回的 FIPS 180 原版）。
func NewSHA0() Hasher {
	return newBlockHasher(SHA0, 20, 64, 8, binary.BigEndian, &sha1State{h: sha1IV})
}

func (s *sha1State) compress(p []byte) {
	var w [80]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(p[i*4:])
	}
	for i := 16; i < 80; i++ {
		x := w[i-3] ^ w[i-8] ^ w[i-14] ^ w[i-16]
		if s.rotate {
			x = bits.RotateLeft32(x, 1)
		}
		w[i] = x
	}

	a, b, c, d, e := s.h[0], s.h[1], s.h[2], s.h[3], s.h[4]
	for i := 0; i < 80; i++ {
		var f, k uint32
		switch {
		case i < 20:
			f = (b & c) | (^b & d)
			k = 0x5a827999
		case i < 40:
			f = b ^ c ^ d
			k = 0x6ed9eba1
		case i < 60:
			f = (b & c) | (b & d) | (c & d)
			k = 0x8f1bbcdc
		default:
			f = b ^ c ^ d
			k = 0xca62c1d6
		}
		t := bits.RotateLeft32(a, 5) + f + e + k + w[i]
		e = d
		d = c
		c = bits.RotateLeft32(b, 30)
		b = a
		a = t
	}

	s.h[0] += a
	s.h[1] += b
	s.h[2] += c
	s.h[3] += d
	s.h[4] += e
}

func (s *sha1State) output() []byte {
	out := make([]byte, 20)
	for i, v := range s.h {
		binary.BigEndian.PutUint32(out[i*4:], v)
	}
	return out
}

func (s *sha1State) wipe() { s.h = [5]uint32{} }
