// Package bn 是 secp256k1 引擎使用的大整数层：
// 基于 math/big 的模约简上下文（Red）以及定长大端编码。
//
// 所有运算都返回新的 *big.Int，不修改入参。
package bn

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrNotInvertible 元素在模数下没有逆元（为 0 或与模数不互素）。
	ErrNotInvertible = errors.New("element not invertible")
	// ErrNoSquareRoot 元素不是二次剩余。
	ErrNoSquareRoot = errors.New("no square root")
	// ErrOverflow 数值超出目标宽度。
	ErrOverflow = errors.New("value overflows width")
)

var (
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
	four  = big.NewInt(4)
)

// Red 模 m 的约简上下文，对应曲线的素域 p 或阶 n。
type Red struct {
	m *big.Int
	// sqrtExp = (m+1)/4，仅在 m ≡ 3 (mod 4) 时有效。
	sqrtExp *big.Int
}

// NewRed 创建模 m 的上下文。m 必须大于 1。
func NewRed(m *big.Int) *Red {
	r := &Red{m: new(big.Int).Set(m)}
	if new(big.Int).Mod(m, four).Cmp(three) == 0 {
		r.sqrtExp = new(big.Int).Add(m, one)
		r.sqrtExp.Rsh(r.sqrtExp, 2)
	}
	return r
}

// Modulus 返回模数的副本。
func (r *Red) Modulus() *big.Int { return new(big.Int).Set(r.m) }

// Reduce a mod m，结果落在 [0, m)。
func (r *Red) Reduce(a *big.Int) *big.Int {
	return new(big.Int).Mod(a, r.m)
}

func (r *Red) Add(a, b *big.Int) *big.Int {
	z := new(big.Int).Add(a, b)
	return z.Mod(z, r.m)
}

func (r *Red) Sub(a, b *big.Int) *big.Int {
	z := new(big.Int).Sub(a, b)
	return z.Mod(z, r.m)
}

func (r *Red) Mul(a, b *big.Int) *big.Int {
	z := new(big.Int).Mul(a, b)
	return z.Mod(z, r.m)
}

func (r *Red) Sqr(a *big.Int) *big.Int {
	return r.Mul(a, a)
}

// Neg 返回 -a mod m。
func (r *Red) Neg(a *big.Int) *big.Int {
	z := new(big.Int).Neg(a)
	return z.Mod(z, r.m)
}

// Pow a^e mod m。
func (r *Red) Pow(a, e *big.Int) *big.Int {
	return new(big.Int).Exp(r.Reduce(a), e, r.m)
}

// Inv 模逆。
func (r *Red) Inv(a *big.Int) (*big.Int, error) {
	z := new(big.Int).ModInverse(r.Reduce(a), r.m)
	if z == nil {
		return nil, ErrNotInvertible
	}
	return z, nil
}

// Sqrt 对 m ≡ 3 (mod 4) 的素数模数求平方根（a^((m+1)/4)）。
// 返回的根需要平方回验，不是二次剩余时返回 ErrNoSquareRoot。
func (r *Red) Sqrt(a *big.Int) (*big.Int, error) {
	if r.sqrtExp == nil {
		return nil, fmt.Errorf("%w: modulus is not 3 mod 4", ErrNoSquareRoot)
	}
	a = r.Reduce(a)
	z := new(big.Int).Exp(a, r.sqrtExp, r.m)
	if r.Sqr(z).Cmp(a) != 0 {
		return nil, ErrNoSquareRoot
	}
	return z, nil
}

// IsZero 判断 a ≡ 0 (mod m)。
func (r *Red) IsZero(a *big.Int) bool {
	return r.Reduce(a).Sign() == 0
}

// Double 2a mod m
func (r *Red) Double(a *big.Int) *big.Int {
	return r.Mul(a, two)
}

// FromBytes 把大端字节解释为非负整数。
func FromBytes(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// ToBytes 把 a 编码为 size 字节大端序，左侧补零。
// 负数或超过宽度时返回 ErrOverflow。
func ToBytes(a *big.Int, size int) ([]byte, error) {
	if a.Sign() < 0 || (a.BitLen()+7)/8 > size {
		return nil, fmt.Errorf("%w: %d bits into %d bytes", ErrOverflow, a.BitLen(), size)
	}
	out := make([]byte, size)
	a.FillBytes(out)
	return out, nil
}

// MustBytes32 用于已知小于 2^256 的值，例如模 p 或模 n 的结果。
func MustBytes32(a *big.Int) []byte {
	out, err := ToBytes(a, 32)
	if err != nil {
		panic(err)
	}
	return out
}

// FromHex 解析十六进制常量，仅用于包级参数初始化。
func FromHex(s string) *big.Int {
	z, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("bn: invalid hex constant " + s)
	}
	return z
}
