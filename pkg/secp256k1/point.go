package secp256k1

import (
	"fmt"
	"math/big"

	"wallet-keycore/pkg/bn"
)

// Point 仿射坐标点。X 为 nil 表示无穷远点。
type Point struct {
	X, Y *big.Int
}

// Infinity 无穷远点
func Infinity() Point { return Point{} }

func (pt Point) IsInfinity() bool { return pt.X == nil }

// Equal 比较两个仿射点。
func (pt Point) Equal(o Point) bool {
	if pt.IsInfinity() || o.IsInfinity() {
		return pt.IsInfinity() && o.IsInfinity()
	}
	return pt.X.Cmp(o.X) == 0 && pt.Y.Cmp(o.Y) == 0
}

func (pt Point) clone() Point {
	if pt.IsInfinity() {
		return Point{}
	}
	return Point{X: new(big.Int).Set(pt.X), Y: new(big.Int).Set(pt.Y)}
}

// jacobianPoint 表示 (X/Z^2, Y/Z^3)，Z = 0 为无穷远点。
type jacobianPoint struct {
	x, y, z *big.Int
}

func (j *jacobianPoint) isInfinity() bool { return j.z.Sign() == 0 }

func jacobianInfinity() *jacobianPoint {
	return &jacobianPoint{x: big.NewInt(1), y: big.NewInt(1), z: new(big.Int)}
}

func (c *Curve) toJacobian(pt Point) *jacobianPoint {
	if pt.IsInfinity() {
		return jacobianInfinity()
	}
	return &jacobianPoint{x: new(big.Int).Set(pt.X), y: new(big.Int).Set(pt.Y), z: big.NewInt(1)}
}

func (c *Curve) toAffine(j *jacobianPoint) Point {
	if j.isInfinity() {
		return Point{}
	}
	zinv, err := c.fp.Inv(j.z)
	if err != nil {
		return Point{}
	}
	zinv2 := c.fp.Sqr(zinv)
	return Point{
		X: c.fp.Mul(j.x, zinv2),
		Y: c.fp.Mul(c.fp.Mul(j.y, zinv2), zinv),
	}
}

func (c *Curve) jNeg(j *jacobianPoint) *jacobianPoint {
	return &jacobianPoint{x: j.x, y: c.fp.Neg(j.y), z: j.z}
}

// jDouble a = 0 的倍点公式。
func (c *Curve) jDouble(j *jacobianPoint) *jacobianPoint {
	if j.isInfinity() || j.y.Sign() == 0 {
		return jacobianInfinity()
	}
	f := c.fp
	yy := f.Sqr(j.y)
	s := f.Mul(f.Mul(j.x, yy), big.NewInt(4))
	m := f.Mul(f.Sqr(j.x), big.NewInt(3))
	x3 := f.Sub(f.Sqr(m), f.Double(s))
	y3 := f.Sub(f.Mul(m, f.Sub(s, x3)), f.Mul(f.Sqr(yy), big.NewInt(8)))
	z3 := f.Double(f.Mul(j.y, j.z))
	return &jacobianPoint{x: x3, y: y3, z: z3}
}

func (c *Curve) jAdd(a, b *jacobianPoint) *jacobianPoint {
	if a.isInfinity() {
		return b
	}
	if b.isInfinity() {
		return a
	}
	f := c.fp
	z1z1 := f.Sqr(a.z)
	z2z2 := f.Sqr(b.z)
	u1 := f.Mul(a.x, z2z2)
	u2 := f.Mul(b.x, z1z1)
	s1 := f.Mul(f.Mul(a.y, b.z), z2z2)
	s2 := f.Mul(f.Mul(b.y, a.z), z1z1)

	h := f.Sub(u2, u1)
	r := f.Sub(s2, s1)
	if h.Sign() == 0 {
		if r.Sign() == 0 {
			return c.jDouble(a)
		}
		return jacobianInfinity()
	}

	hh := f.Sqr(h)
	hhh := f.Mul(h, hh)
	v := f.Mul(u1, hh)
	x3 := f.Sub(f.Sub(f.Sqr(r), hhh), f.Double(v))
	y3 := f.Sub(f.Mul(r, f.Sub(v, x3)), f.Mul(s1, hhh))
	z3 := f.Mul(f.Mul(a.z, b.z), h)
	return &jacobianPoint{x: x3, y: y3, z: z3}
}

// Add 仿射点加法。
func (c *Curve) Add(a, b Point) Point {
	return c.toAffine(c.jAdd(c.toJacobian(a), c.toJacobian(b)))
}

// Double 仿射倍点。
func (c *Curve) Double(a Point) Point {
	return c.toAffine(c.jDouble(c.toJacobian(a)))
}

// Neg 返回 -a。
func (c *Curve) Neg(a Point) Point {
	if a.IsInfinity() {
		return a
	}
	return Point{X: new(big.Int).Set(a.X), Y: c.fp.Neg(a.Y)}
}

// DecodePoint 解析 33 字节压缩（0x02/0x03）或 65 字节未压缩（0x04）编码。
func (c *Curve) DecodePoint(b []byte) (Point, error) {
	switch {
	case len(b) == 33 && (b[0] == 0x02 || b[0] == 0x03):
		return c.PointFromX(bn.FromBytes(b[1:]), b[0] == 0x03)
	case len(b) == 65 && b[0] == 0x04:
		pt := Point{X: bn.FromBytes(b[1:33]), Y: bn.FromBytes(b[33:])}
		if !c.IsOnCurve(pt) {
			return Point{}, fmt.Errorf("%w: not on curve", ErrInvalidPoint)
		}
		return pt, nil
	default:
		return Point{}, fmt.Errorf("%w: bad encoding length %d", ErrInvalidPoint, len(b))
	}
}

// EncodePoint 编码为 SEC1 格式。无穷远点返回 nil。
func (c *Curve) EncodePoint(pt Point, compressed bool) []byte {
	if pt.IsInfinity() {
		return nil
	}
	if compressed {
		out := make([]byte, 33)
		out[0] = 0x02 | byte(pt.Y.Bit(0))
		pt.X.FillBytes(out[1:])
		return out
	}
	out := make([]byte, 65)
	out[0] = 0x04
	pt.X.FillBytes(out[1:33])
	pt.Y.FillBytes(out[33:])
	return out
}
