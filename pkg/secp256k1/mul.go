package secp256k1

import (
	"math/big"
)

// wnaf 计算 k 的宽度为 w 的非相邻形式，低位在前。
// 非零位均为奇数，绝对值小于 2^(w-1)。
func wnaf(k *big.Int, w uint) []int8 {
	k = new(big.Int).Set(k)
	mod := int64(1) << w
	half := mod >> 1

	out := make([]int8, 0, k.BitLen()+1)
	for k.Sign() > 0 {
		var d int64
		if k.Bit(0) == 1 {
			d = int64(uint64(k.Bits()[0]) & uint64(mod-1))
			if d >= half {
				d -= mod
			}
			k.Sub(k, big.NewInt(d))
		}
		out = append(out, int8(d))
		k.Rsh(k, 1)
	}
	return out
}

// oddMultiples 返回 P, 3P, 5P, ..., (2^(w-1)-1)P。
func (c *Curve) oddMultiples(p *jacobianPoint, w uint) []*jacobianPoint {
	n := 1 << (w - 2)
	table := make([]*jacobianPoint, n)
	table[0] = p
	twoP := c.jDouble(p)
	for i := 1; i < n; i++ {
		table[i] = c.jAdd(table[i-1], twoP)
	}
	return table
}

func (c *Curve) base() []*jacobianPoint {
	c.baseOnce.Do(func() {
		c.baseTable = c.oddMultiples(c.toJacobian(c.g), baseWindow)
	})
	return c.baseTable
}

func (c *Curve) lookup(table []*jacobianPoint, d int8) *jacobianPoint {
	if d > 0 {
		return table[(d-1)/2]
	}
	return c.jNeg(table[(-d-1)/2])
}

// mulWNAF 对若干 (标量, 奇数倍表) 同时做 wNAF 扫描（Shamir 技巧）。
func (c *Curve) mulWNAF(nafs [][]int8, tables [][]*jacobianPoint) *jacobianPoint {
	maxLen := 0
	for _, naf := range nafs {
		maxLen = max(maxLen, len(naf))
	}

	acc := jacobianInfinity()
	for i := maxLen - 1; i >= 0; i-- {
		acc = c.jDouble(acc)
		for j, naf := range nafs {
			if i < len(naf) && naf[i] != 0 {
				acc = c.jAdd(acc, c.lookup(tables[j], naf[i]))
			}
		}
	}
	return acc
}

// ScalarMult 计算 k·P。k 先约简到 [0, n)。
func (c *Curve) ScalarMult(p Point, k *big.Int) Point {
	k = c.fn.Reduce(k)
	if p.IsInfinity() || k.Sign() == 0 {
		return Point{}
	}
	table := c.oddMultiples(c.toJacobian(p), window)
	return c.toAffine(c.mulWNAF([][]int8{wnaf(k, window)}, [][]*jacobianPoint{table}))
}

// ScalarBaseMult 计算 k·G，使用缓存的基点表。
func (c *Curve) ScalarBaseMult(k *big.Int) Point {
	k = c.fn.Reduce(k)
	if k.Sign() == 0 {
		return Point{}
	}
	return c.toAffine(c.mulWNAF([][]int8{wnaf(k, baseWindow)}, [][]*jacobianPoint{c.base()}))
}

// MulAdd 计算 k1·G + k2·P。
func (c *Curve) MulAdd(k1 *big.Int, k2 *big.Int, p Point) Point {
	return c.toAffine(c.mulAdd(k1, k2, p))
}

func (c *Curve) mulAdd(k1, k2 *big.Int, p Point) *jacobianPoint {
	k1 = c.fn.Reduce(k1)
	k2 = c.fn.Reduce(k2)

	var nafs [][]int8
	var tables [][]*jacobianPoint
	if k1.Sign() != 0 {
		nafs = append(nafs, wnaf(k1, baseWindow))
		tables = append(tables, c.base())
	}
	if k2.Sign() != 0 && !p.IsInfinity() {
		nafs = append(nafs, wnaf(k2, window))
		tables = append(tables, c.oddMultiples(c.toJacobian(p), window))
	}
	if len(nafs) == 0 {
		return jacobianInfinity()
	}
	return c.mulWNAF(nafs, tables)
}

// PublicKey 计算 d·G，d 先约简模 n。
func (c *Curve) PublicKey(d *big.Int) Point {
	return c.ScalarBaseMult(d)
}
