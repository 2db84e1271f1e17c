package secp256k1

import (
	"fmt"
	"math/big"

	"wallet-keycore/pkg/bn"
)

// Signature ECDSA 签名。RecoveryParam 低位为 R.y 的奇偶，
// 高位表示 R.x >= n（概率约 2^-128）。
type Signature struct {
	R, S          *big.Int
	RecoveryParam int
}

// truncateToN 把摘要转换为整数：超过 n 的位数时右移截断，
// truncOnly 为 false 时再约简一次到 [0, n)。
func (c *Curve) truncateToN(msg *big.Int, truncOnly bool) *big.Int {
	m := new(big.Int).Set(msg)
	delta := (m.BitLen()+7)/8*8 - c.n.BitLen()
	if delta > 0 {
		m.Rsh(m, uint(delta))
	}
	if !truncOnly && m.Cmp(c.n) >= 0 {
		m.Sub(m, c.n)
	}
	return m
}

// Sign 使用私钥 d（先约简模 n）对摘要签名，nonce 按 RFC 6979 确定性生成，
// 输出规范化为 low-s。
func (c *Curve) Sign(d *big.Int, digest []byte) (*Signature, error) {
	key := c.fn.Reduce(d)
	if key.Sign() == 0 {
		return nil, fmt.Errorf("%w: private key is zero mod n", ErrInvalidScalar)
	}
	msg := c.truncateToN(bn.FromBytes(digest), false)

	bkey := bn.MustBytes32(key)
	nonce := bn.MustBytes32(msg)
	drbg := newHMACDRBG(bkey, nonce)
	clear(bkey)

	ns1 := new(big.Int).Sub(c.n, big.NewInt(1))
	for {
		k := c.truncateToN(bn.FromBytes(drbg.generate(32)), true)
		if k.Cmp(big.NewInt(1)) <= 0 || k.Cmp(ns1) >= 0 {
			continue
		}

		kp := c.ScalarBaseMult(k)
		if kp.IsInfinity() {
			continue
		}
		r := c.fn.Reduce(kp.X)
		if r.Sign() == 0 {
			continue
		}

		kinv, err := c.fn.Inv(k)
		if err != nil {
			continue
		}
		s := c.fn.Mul(kinv, c.fn.Add(c.fn.Mul(r, key), msg))
		if s.Sign() == 0 {
			continue
		}

		recovery := int(kp.Y.Bit(0))
		if kp.X.Cmp(r) != 0 {
			recovery |= 2
		}
		if s.Cmp(c.halfN) > 0 {
			s = new(big.Int).Sub(c.n, s)
			recovery ^= 1
		}
		return &Signature{R: r, S: s, RecoveryParam: recovery}, nil
	}
}

// Verify 校验签名。
func (c *Curve) Verify(pub Point, digest []byte, sig *Signature) bool {
	if sig == nil || sig.R == nil || sig.S == nil || !c.IsOnCurve(pub) {
		return false
	}
	if sig.R.Sign() <= 0 || sig.R.Cmp(c.n) >= 0 || sig.S.Sign() <= 0 || sig.S.Cmp(c.n) >= 0 {
		return false
	}
	msg := c.truncateToN(bn.FromBytes(digest), false)

	sinv, err := c.fn.Inv(sig.S)
	if err != nil {
		return false
	}
	u1 := c.fn.Mul(sinv, msg)
	u2 := c.fn.Mul(sinv, sig.R)

	pt := c.MulAdd(u1, u2, pub)
	if pt.IsInfinity() {
		return false
	}
	return c.fn.Reduce(pt.X).Cmp(sig.R) == 0
}

// RecoverPublicKey 由摘要、(r, s) 与 RecoveryParam 恢复签名公钥：
// Q = r^-1 (s·R - e·G)。
func (c *Curve) RecoverPublicKey(digest []byte, sig *Signature) (Point, error) {
	if sig == nil || sig.R == nil || sig.S == nil {
		return Point{}, ErrInvalidSignature
	}
	j := sig.RecoveryParam
	if j&3 != j {
		return Point{}, fmt.Errorf("%w: %d", ErrInvalidRecoveryParam, j)
	}
	if sig.R.Sign() <= 0 || sig.R.Cmp(c.n) >= 0 || sig.S.Sign() <= 0 || sig.S.Cmp(c.n) >= 0 {
		return Point{}, fmt.Errorf("%w: r or s out of range", ErrInvalidSignature)
	}

	x := new(big.Int).Set(sig.R)
	if j>>1 == 1 {
		if sig.R.Cmp(new(big.Int).Sub(c.p, c.n)) >= 0 {
			return Point{}, fmt.Errorf("%w: no second key candidate", ErrInvalidRecoveryParam)
		}
		x.Add(x, c.n)
	}
	rp, err := c.PointFromX(x, j&1 == 1)
	if err != nil {
		return Point{}, fmt.Errorf("%w: r is not a valid x coordinate", ErrInvalidSignature)
	}

	e := c.fn.Reduce(bn.FromBytes(digest))
	rinv, err := c.fn.Inv(sig.R)
	if err != nil {
		return Point{}, ErrInvalidSignature
	}
	s1 := c.fn.Mul(c.fn.Neg(e), rinv)
	s2 := c.fn.Mul(sig.S, rinv)

	q := c.MulAdd(s1, s2, rp)
	if q.IsInfinity() {
		return Point{}, fmt.Errorf("%w: recovered point at infinity", ErrInvalidSignature)
	}
	return q, nil
}

// ECDH 计算 d·Pub 的 x 坐标（32 字节大端）。
func (c *Curve) ECDH(d *big.Int, pub Point) ([]byte, error) {
	if !c.IsOnCurve(pub) {
		return nil, ErrInvalidPoint
	}
	shared := c.ScalarMult(pub, d)
	if shared.IsInfinity() {
		return nil, fmt.Errorf("%w: shared point at infinity", ErrInvalidScalar)
	}
	return bn.MustBytes32(shared.X), nil
}
