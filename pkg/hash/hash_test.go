package hash

import (
	"bytes"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	stdhash "hash"
	"testing"

	"golang.org/x/crypto/ripemd160"
)

func TestKnownVectors(t *testing.T) {
	tests := []struct {
		alg  Algorithm
		in   string
		want string
	}{
		{MD5, "", "d41d8cd98f00b204e9800998ecf8427e"},
		{MD5, "abc", "900150983cd24fb0d6963f7d28e17f72"},
		{SHA0, "", "f96cea198ad1dd5617ac084a3d92c6107708c0ef"},
		{SHA0, "abc", "0164b8a914cd2a5e74c4f7ff082c4d97f1edf880"},
		{SHA1, "abc", "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{SHA224, "abc", "23097d223405d8228642a477bda255b32aadbce4bda0b3f7e36c9da7"},
		{SHA256, "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{SHA256, "abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{SHA384, "abc", "cb00753f45a35e8bb5a03d699ac65007272c32ab0eded1631a8b605a43ff5bed8086072ba1e7cc2358baeca134c825a7"},
		{SHA512, "abc", "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"},
		{RIPEMD160, "", "9c1185a5c5e9fc54612808977ee8f548b2258d31"},
		{RIPEMD160, "abc", "8eb208f7e05d987a9b044a8e98c6b087f15a0bfc"},
		{RIPEMD160, "message digest", "5d0689ef49d2fae572b881b123a85ffa21595f36"},
	}

	for _, tt := range tests {
		got, err := Sum(tt.alg, []byte(tt.in))
		if err != nil {
			t.Fatalf("%s(%q) 失败: %v", tt.alg, tt.in, err)
		}
		if hex.EncodeToString(got) != tt.want {
			t.Errorf("%s(%q) = %x, 期望 %s", tt.alg, tt.in, got, tt.want)
		}
	}
}

func oracle(alg Algorithm) func() stdhash.Hash {
	switch alg {
	case MD5:
		return md5.New
	case SHA1:
		return sha1.New
	case SHA224:
		return sha256.New224
	case SHA256:
		return sha256.New
	case SHA384:
		return sha512.New384
	case SHA512:
		return sha512.New
	case RIPEMD160:
		return ripemd160.New
	}
	return nil
}

// 覆盖所有填充边界：0..300 字节，包括 55/56/63/64 与 111/112/127/128。
func TestAgainstStandardLibrary(t *testing.T) {
	data := make([]byte, 300)
	for i := range data {
		data[i] = byte(i*7 + 3)
	}

	for _, alg := range Algorithms() {
		newOracle := oracle(alg)
		if newOracle == nil {
			continue
		}
		for n := 0; n <= len(data); n++ {
			got, err := Sum(alg, data[:n])
			if err != nil {
				t.Fatalf("%s 失败: %v", alg, err)
			}
			o := newOracle()
			o.Write(data[:n])
			if want := o.Sum(nil); !bytes.Equal(got, want) {
				t.Fatalf("%s 长度 %d: 得到 %x, 期望 %x", alg, n, got, want)
			}
		}
	}
}

func TestChunkedUpdate(t *testing.T) {
	data := bytes.Repeat([]byte("wallet-keycore"), 37)

	for _, alg := range Algorithms() {
		want, err := Sum(alg, data)
		if err != nil {
			t.Fatal(err)
		}
		for _, step := range []int{1, 3, 17, 64, 65, 129} {
			h, _ := New(alg)
			for i := 0; i < len(data); i += step {
				end := min(i+step, len(data))
				if err := h.Update(data[i:end]); err != nil {
					t.Fatalf("%s Update 失败: %v", alg, err)
				}
			}
			got, err := h.Digest()
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, want) {
				t.Errorf("%s 分段 %d: 得到 %x, 期望 %x", alg, step, got, want)
			}
		}
	}
}

func TestMillionA(t *testing.T) {
	if testing.Short() {
		t.Skip("short 模式跳过")
	}
	h := NewSHA256()
	chunk := bytes.Repeat([]byte{'a'}, 1000)
	for i := 0; i < 1000; i++ {
		_ = h.Update(chunk)
	}
	got, _ := h.Digest()
	want := "cdc76e5c9914fb9281a1c7e284d73e67f1809a48a497200e046d39ccc7112cd0"
	if hex.EncodeToString(got) != want {
		t.Errorf("SHA256(10^6 'a') = %x, 期望 %s", got, want)
	}

	h = NewRIPEMD160()
	for i := 0; i < 1000; i++ {
		_ = h.Update(chunk)
	}
	got, _ = h.Digest()
	want = "52783243c1697bdbe16d37f97f68f08325dc1528"
	if hex.EncodeToString(got) != want {
		t.Errorf("RIPEMD160(10^6 'a') = %x, 期望 %s", got, want)
	}
}

func TestDigestSingleUse(t *testing.T) {
	for _, alg := range Algorithms() {
		h, _ := New(alg)
		_ = h.Update([]byte("abc"))
		d, err := h.Digest()
		if err != nil {
			t.Fatal(err)
		}
		if len(d) != h.Size() {
			t.Errorf("%s 摘要长度 %d, 期望 %d", alg, len(d), h.Size())
		}
		if _, err := h.Digest(); !errors.Is(err, ErrDigestAlreadyCalled) {
			t.Errorf("%s 第二次 Digest 应返回 ErrDigestAlreadyCalled, 得到 %v", alg, err)
		}
		if err := h.Update([]byte("x")); !errors.Is(err, ErrDigestAlreadyCalled) {
			t.Errorf("%s Digest 之后 Update 应返回 ErrDigestAlreadyCalled, 得到 %v", alg, err)
		}
		if _, err := h.Write([]byte("x")); !errors.Is(err, ErrDigestAlreadyCalled) {
			t.Errorf("%s Digest 之后 Write 应返回错误, 得到 %v", alg, err)
		}
	}
}

func TestSizes(t *testing.T) {
	sizes := map[Algorithm][2]int{
		MD5:       {16, 64},
		SHA0:      {20, 64},
		SHA1:      {20, 64},
		SHA224:    {28, 64},
		SHA256:    {32, 64},
		SHA384:    {48, 128},
		SHA512:    {64, 128},
		RIPEMD160: {20, 64},
	}
	for alg, want := range sizes {
		h, err := New(alg)
		if err != nil {
			t.Fatal(err)
		}
		if h.Size() != want[0] || h.BlockSize() != want[1] {
			t.Errorf("%s Size/BlockSize = %d/%d, 期望 %d/%d", alg, h.Size(), h.BlockSize(), want[0], want[1])
		}
		if h.Algorithm() != alg {
			t.Errorf("Algorithm() = %s, 期望 %s", h.Algorithm(), alg)
		}
	}
}

func TestUnknownAlgorithm(t *testing.T) {
	if _, err := New("sha3"); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("期望 ErrUnknownAlgorithm, 得到 %v", err)
	}
}

func TestHash160(t *testing.T) {
	pub, _ := hex.DecodeString("0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798")
	if got := hex.EncodeToString(Hash160(pub)); got != "751e76e8199196d454941c45d1b3a323f1433bd6" {
		t.Errorf("Hash160(G) = %s", got)
	}
}
