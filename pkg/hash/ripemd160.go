package hash

import (
	"encoding/binary"
	"math/bits"
)

// 左右两条并行支路各自的消息字选择顺序与循环移位量。
var (
	rmdR = [80]int{
		0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
		7, 4, 13, 1, 10, 6, 15, 3, 12, 0, 9, 5, 2, 14, 11, 8,
		3, 10, 14, 4, 9, 15, 8, 1, 2, 7, 0, 6, 13, 11, 5, 12,
		1, 9, 11, 10, 0, 8, 12, 4, 13, 3, 7, 15, 14, 5, 6, 2,
		4, 0, 5, 9, 7, 12, 2, 10, 14, 1, 3, 8, 11, 6, 15, 13,
	}
	rmdRh = [80]int{
		5, 14, 7, 0, 9, 2, 11, 4, 13, 6, 15, 8, 1, 10, 3, 12,
		6, 11, 3, 7, 0, 13, 5, 10, 14, 15, 8, 12, 4, 9, 1, 2,
		15, 5, 1, 3, 7, 14, 6, 9, 11, 8, 12, 2, 10, 0, 4, 13,
		8, 6, 4, 1, 3, 11, 15, 0, 5, 12, 2, 13, 9, 7, 10, 14,
		12, 15, 10, 4, 1, 5, 8, 7, 6, 2, 13, 14, 0, 3, 9, 11,
	}
	rmdS = [80]int{
		11, 14, 15, 12, 5, 8, 7, 9, 11, 13, 14, 15, 6, 7, 9, 8,
		7, 6, 8, 13, 11, 9, 7, 15, 7, 12, 15, 9, 11, 7, 13, 12,
		11, 13, 6, 7, 14, 9, 13, 15, 14, 8, 13, 6, 5, 12, 7, 5,
		11, 12, 14, 15, 14, 15, 9, 8, 9, 14, 5, 6, 8, 6, 5, 12,
		9, 15, 5, 11, 6, 8, 13, 12, 5, 12, 13, 14, 11, 8, 5, 6,
	}
	rmdSh = [80]int{
		8, 9, 9, 11, 13, 15, 15, 5, 7, 7, 8, 11, 14, 14, 12, 6,
		9, 13, 15, 7, 12, 8, 9, 11, 7, 7, 12, 7, 6, 15, 13, 11,
		9, 7, 15, 11, 8, 6, 6, 14, 12, 13, 5, 14, 13, 13, 7, 5,
		15, 5, 8, 11, 14, 14, 6, 14, 6, 9, 12, 9, 12, 5, 15, 8,
		8, 5, 12, 9, 12, 5, 14, 6, 8, 13, 6, 5, 15, 13, 11, 11,
	}
	rmdK  = [5]uint32{0x00000000, 0x5a827999, 0x6ed9eba1, 0x8f1bbcdc, 0xa953fd4e}
	rmdKh = [5]uint32{0x50a28be6, 0x5c4dd124, 0x6d703ef3, 0x7a6d76e9, 0x00000000}
)

type ripemd160State struct {
	h [5]uint32
}

// NewRIPEMD160 创建 RIPEMD-160 状态，小端序长度与输出。
func NewRIPEMD160() Hasher {
	s := &ripemd160State{h: sha1IV}
	return newBlockHasher(RIPEMD160, 20, 64, 8, binary.LittleEndian, s)
}

func rmdF(j int, x, y, z uint32) uint32 {
	switch j / 16 {
	case 0:
		return x ^ y ^ z
	case 1:
		return (x & y) | (^x & z)
	case 2:
		return (x | ^y) ^ z
	case 3:
		return (x & z) | (y & ^z)
	default:
		return x ^ (y | ^z)
	}
}

func (s *ripemd160State) compress(p []byte) {
	var x [16]uint32
	for i := range x {
		x[i] = binary.LittleEndian.Uint32(p[i*4:])
	}

	al, bl, cl, dl, el := s.h[0], s.h[1], s.h[2], s.h[3], s.h[4]
	ar, br, cr, dr, er := al, bl, cl, dl, el

	for j := 0; j < 80; j++ {
		t := bits.RotateLeft32(al+rmdF(j, bl, cl, dl)+x[rmdR[j]]+rmdK[j/16], rmdS[j]) + el
		al = el
		el = dl
		dl = bits.RotateLeft32(cl, 10)
		cl = bl
		bl = t

		t = bits.RotateLeft32(ar+rmdF(79-j, br, cr, dr)+x[rmdRh[j]]+rmdKh[j/16], rmdSh[j]) + er
		ar = er
		er = dr
		dr = bits.RotateLeft32(cr, 10)
		cr = br
		br = t
	}

	t := s.h[1] + cl + dr
	s.h[1] = s.h[2] + dl + er
	s.h[2] = s.h[3] + el + ar
	s.h[3] = s.h[4] + al + br
	s.h[4] = s.h[0] + bl + cr
	s.h[0] = t
}

func (s *ripemd160State) output() []byte {
	out := make([]byte, 20)
	for i, v := range s.h {
		binary.LittleEndian.PutUint32(out[i*4:], v)
	}
	return out
}

func (s *ripemd160State) wipe() { s.h = [5]uint32{} }
