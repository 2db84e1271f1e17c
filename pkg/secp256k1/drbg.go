package secp256k1

import (
	"wallet-keycore/pkg/hash"
	"wallet-keycore/pkg/hmac"
)

// hmacDRBG 是 RFC 6979 第 3.2 节使用的 HMAC_DRBG（SHA-256）。
type hmacDRBG struct {
	k, v []byte
}

func newHMACDRBG(entropy, nonce []byte) *hmacDRBG {
	d := &hmacDRBG{
		k: make([]byte, 32),
		v: make([]byte, 32),
	}
	for i := range d.v {
		d.v[i] = 0x01
	}
	seed := make([]byte, 0, len(entropy)+len(nonce))
	seed = append(seed, entropy...)
	seed = append(seed, nonce...)
	d.update(seed)
	clear(seed)
	return d
}

func (d *hmacDRBG) mac(parts ...[]byte) []byte {
	h, _ := hmac.New(hash.SHA256, d.k)
	for _, p := range parts {
		_ = h.Update(p)
	}
	out, _ := h.Digest()
	return out
}

// update 对应 HMAC_DRBG_Update；seed 为空时只做第一轮。
func (d *hmacDRBG) update(seed []byte) {
	d.k = d.mac(d.v, []byte{0x00}, seed)
	d.v = d.mac(d.v)
	if len(seed) == 0 {
		return
	}
	d.k = d.mac(d.v, []byte{0x01}, seed)
	d.v = d.mac(d.v)
}

func (d *hmacDRBG) generate(n int) []byte {
	out := make([]byte, 0, n)
	for len(out) < n {
		d.v = d.mac(d.v)
		out = append(out, d.v...)
	}
	d.update(nil)
	return out[:n]
}
