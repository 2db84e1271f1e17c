// Package secp256k1 实现 secp256k1 曲线（y^2 = x^3 + 7）上的点运算、
// RFC 6979 确定性 ECDSA 签名、公钥恢复以及 ECDH。
//
// 曲线参数由 NewCurve 显式构造，调用方持有并注入到上层（例如 signingkey），
// 包内没有全局曲线实例。Curve 构造后只读，可被多个 goroutine 共享。
package secp256k1

import (
	"errors"
	"math/big"
	"sync"

	"wallet-keycore/pkg/bn"
)

var (
	ErrInvalidPoint         = errors.New("invalid curve point")
	ErrInvalidScalar        = errors.New("invalid scalar")
	ErrInvalidSignature     = errors.New("invalid signature")
	ErrInvalidRecoveryParam = errors.New("invalid recovery param")
)

const (
	// 任意点乘使用的 wNAF 窗口宽度
	window = 4
	// 基点使用更宽的窗口，奇数倍表只计算一次并缓存
	baseWindow = 8
)

// Curve secp256k1 参数对象。
type Curve struct {
	p, n, b, halfN *big.Int
	g              Point

	fp *bn.Red // 模 p
	fn *bn.Red // 模 n

	baseOnce  sync.Once
	baseTable []*jacobianPoint
}

// NewCurve 构造 secp256k1 参数对象。
func NewCurve() *Curve {
	p := bn.FromHex("fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f")
	n := bn.FromHex("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")
	return &Curve{
		p:     p,
		n:     n,
		b:     big.NewInt(7),
		halfN: new(big.Int).Rsh(n, 1),
		g: Point{
			X: bn.FromHex("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"),
			Y: bn.FromHex("483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"),
		},
		fp: bn.NewRed(p),
		fn: bn.NewRed(n),
	}
}

// P 域素数
func (c *Curve) P() *big.Int { return new(big.Int).Set(c.p) }

// N 基点阶
func (c *Curve) N() *big.Int { return new(big.Int).Set(c.n) }

// HalfN = n/2，low-s 判定阈值
func (c *Curve) HalfN() *big.Int { return new(big.Int).Set(c.halfN) }

// G 生成元
func (c *Curve) G() Point { return c.g.clone() }

// ScalarRed 返回模 n 的约简上下文。
func (c *Curve) ScalarRed() *bn.Red { return c.fn }

// FieldRed 返回模 p 的约简上下文。
func (c *Curve) FieldRed() *bn.Red { return c.fp }

// IsOnCurve 判断仿射点是否在曲线上。无穷远点返回 false。
func (c *Curve) IsOnCurve(pt Point) bool {
	if pt.IsInfinity() {
		return false
	}
	if pt.X.Sign() < 0 || pt.X.Cmp(c.p) >= 0 || pt.Y.Sign() < 0 || pt.Y.Cmp(c.p) >= 0 {
		return false
	}
	return c.fp.Sqr(pt.Y).Cmp(c.rhs(pt.X)) == 0
}

// rhs = x^3 + 7 mod p
func (c *Curve) rhs(x *big.Int) *big.Int {
	return c.fp.Add(c.fp.Mul(c.fp.Sqr(x), x), c.b)
}

// PointFromX 由 x 坐标和 y 的奇偶性恢复点。
func (c *Curve) PointFromX(x *big.Int, odd bool) (Point, error) {
	if x.Sign() < 0 || x.Cmp(c.p) >= 0 {
		return Point{}, ErrInvalidPoint
	}
	y, err := c.fp.Sqrt(c.rhs(x))
	if err != nil {
		return Point{}, ErrInvalidPoint
	}
	if (y.Bit(0) == 1) != odd {
		y = c.fp.Neg(y)
	}
	return Point{X: new(big.Int).Set(x), Y: y}, nil
}
