package keystore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"wallet-keycore/pkg/bip39"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestEncryptDecryptMnemonic(t *testing.T) {
	password := "secure-password"

	ks, err := EncryptMnemonic(testMnemonic, password, WithPBKDF2(1024))
	if err != nil {
		t.Fatalf("加密失败: %v", err)
	}

	if ks.Crypto.Cipher != CipherAES128CTR {
		t.Errorf("cipher = %s, 期望 %s", ks.Crypto.Cipher, CipherAES128CTR)
	}
	if ks.Crypto.KDF != KDFPBKDF2 || ks.Crypto.KDFParams.PRF != PRFHMACSHA256 || ks.Crypto.KDFParams.C != 1024 {
		t.Errorf("kdf 参数不正确: %+v", ks.Crypto.KDFParams)
	}
	if ks.Version != Version || ks.Meta != Meta || ks.ID == "" {
		t.Errorf("头部字段不正确: version=%d meta=%s id=%s", ks.Version, ks.Meta, ks.ID)
	}
	if len(ks.Crypto.CipherParams.IV) != 32 || len(ks.Crypto.KDFParams.Salt) != 64 || len(ks.Crypto.MAC) != 64 {
		t.Errorf("iv/salt/mac 长度不正确")
	}

	plaintext, err := DecryptMnemonic(ks, password)
	if err != nil {
		t.Fatalf("解密失败: %v", err)
	}
	if plaintext != testMnemonic {
		t.Errorf("解密结果不一致: %s", plaintext)
	}

	if _, err := DecryptMnemonic(ks, "wrong-password"); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("错误密码应返回 ErrInvalidPassword, 得到 %v", err)
	}
}

func TestDistinctSaltAndID(t *testing.T) {
	a, err := EncryptMnemonic(testMnemonic, "pw", WithPBKDF2(1))
	if err != nil {
		t.Fatal(err)
	}
	b, err := EncryptMnemonic(testMnemonic, "pw", WithPBKDF2(1))
	if err != nil {
		t.Fatal(err)
	}
	if a.ID == b.ID || a.Crypto.KDFParams.Salt == b.Crypto.KDFParams.Salt || a.Crypto.CipherText == b.Crypto.CipherText {
		t.Error("两次加密的 id/salt/密文不应相同")
	}
}

func TestScrypt(t *testing.T) {
	ks, err := EncryptMnemonic(testMnemonic, "pw", WithScrypt(1024, 8, 1))
	if err != nil {
		t.Fatalf("scrypt 加密失败: %v", err)
	}
	p := ks.Crypto.KDFParams
	if ks.Crypto.KDF != KDFScrypt || p.N != 1024 || p.R != 8 || p.P != 1 || p.PRF != "" || p.C != 0 {
		t.Errorf("scrypt 参数不正确: %+v", p)
	}
	got, err := DecryptMnemonic(ks, "pw")
	if err != nil || got != testMnemonic {
		t.Errorf("scrypt 解密失败: %v", err)
	}
}

func TestRejectInvalidMnemonic(t *testing.T) {
	_, err := EncryptMnemonic("test mnemonic", "123456", WithPBKDF2(1))
	if !errors.Is(err, bip39.ErrInvalidMnemonic) {
		t.Errorf("非法助记词应返回 ErrInvalidMnemonic, 得到 %v", err)
	}
}

func TestFixedRandom(t *testing.T) {
	zero := func(n int) ([]byte, error) { return make([]byte, n), nil }
	a, err := EncryptMnemonic(testMnemonic, "pw", WithPBKDF2(2), WithRandom(zero))
	if err != nil {
		t.Fatal(err)
	}
	b, err := EncryptMnemonic(testMnemonic, "pw", WithPBKDF2(2), WithRandom(zero))
	if err != nil {
		t.Fatal(err)
	}
	if a.Crypto.CipherText != b.Crypto.CipherText || a.Crypto.MAC != b.Crypto.MAC {
		t.Error("相同 salt/iv 应得到相同密文与 MAC")
	}
}

func TestTamperedKeystore(t *testing.T) {
	ks, err := EncryptMnemonic(testMnemonic, "pw", WithPBKDF2(1))
	if err != nil {
		t.Fatal(err)
	}

	tampered := *ks
	ct := []byte(tampered.Crypto.CipherText)
	if ct[0] == '0' {
		ct[0] = '1'
	} else {
		ct[0] = '0'
	}
	tampered.Crypto.CipherText = string(ct)
	if _, err := DecryptMnemonic(&tampered, "pw"); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("篡改密文应导致 MAC 校验失败, 得到 %v", err)
	}

	badCipher := *ks
	badCipher.Crypto.Cipher = "aes-256-gcm"
	if _, err := DecryptMnemonic(&badCipher, "pw"); !errors.Is(err, ErrUnsupportedCipher) {
		t.Errorf("期望 ErrUnsupportedCipher, 得到 %v", err)
	}

	badKDF := *ks
	badKDF.Crypto.KDF = "argon2"
	if _, err := DecryptMnemonic(&badKDF, "pw"); !errors.Is(err, ErrUnsupportedKDF) {
		t.Errorf("期望 ErrUnsupportedKDF, 得到 %v", err)
	}

	badIV := *ks
	badIV.Crypto.CipherParams.IV = "zz"
	if _, err := DecryptMnemonic(&badIV, "pw"); !errors.Is(err, ErrInvalidKeystore) {
		t.Errorf("期望 ErrInvalidKeystore, 得到 %v", err)
	}

	if _, err := DecryptMnemonic(nil, "pw"); !errors.Is(err, ErrInvalidKeystore) {
		t.Errorf("nil keystore 应返回 ErrInvalidKeystore, 得到 %v", err)
	}
}

func TestContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := EncryptMnemonicContext(ctx, testMnemonic, "pw", WithPBKDF2(100000)); !errors.Is(err, context.Canceled) {
		t.Errorf("期望 context.Canceled, 得到 %v", err)
	}
}

func TestFileSaveLoad(t *testing.T) {
	password := "123456"
	filename := filepath.Join(t.TempDir(), "wallet.json")

	ks, err := EncryptMnemonic(testMnemonic, password, WithPBKDF2(16))
	if err != nil {
		t.Fatal(err)
	}
	if err := ks.SaveToFile(filename); err != nil {
		t.Fatalf("SaveToFile 失败: %v", err)
	}

	info, err := os.Stat(filename)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("文件权限 = %v, 期望 0600", info.Mode().Perm())
	}

	loaded, err := LoadFromFile(filename)
	if err != nil {
		t.Fatalf("LoadFromFile 失败: %v", err)
	}
	if loaded.ID != ks.ID {
		t.Errorf("加载后 ID 不一致")
	}

	decrypted, err := DecryptMnemonic(loaded, password)
	if err != nil {
		t.Fatalf("解密加载的文件失败: %v", err)
	}
	if decrypted != testMnemonic {
		t.Errorf("内容不一致")
	}

	broken := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(broken, []byte("{"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(broken); !errors.Is(err, ErrInvalidKeystore) {
		t.Errorf("损坏文件应返回 ErrInvalidKeystore, 得到 %v", err)
	}
}

// testdata 中的文件按 xchainjs encryptToKeyStore 的步骤生成：
// PBKDF2-HMAC-SHA256(c=262144) + AES-128-CTR + BLAKE2b-256 MAC。
func TestDecryptXChainKeystore(t *testing.T) {
	if testing.Short() {
		t.Skip("short 模式跳过")
	}
	ks, err := LoadFromFile(filepath.Join("testdata", "xchain_keystore.json"))
	if err != nil {
		t.Fatal(err)
	}
	if ks.Crypto.MACAlg != "" {
		t.Errorf("xchainjs 文件不应带 macalg, 得到 %q", ks.Crypto.MACAlg)
	}

	got, err := DecryptMnemonic(ks, "xchain-password")
	if err != nil {
		t.Fatalf("解密 xchainjs keystore 失败: %v", err)
	}
	if got != testMnemonic {
		t.Errorf("解密结果不一致: %s", got)
	}

	if _, err := DecryptMnemonic(ks, "wrong-password"); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("错误密码应返回 ErrInvalidPassword, 得到 %v", err)
	}
}

func TestDefaultMACIsBlake2b(t *testing.T) {
	zero := func(n int) ([]byte, error) { return make([]byte, n), nil }
	ks, err := EncryptMnemonic(testMnemonic, "pw", WithPBKDF2(2), WithRandom(zero))
	if err != nil {
		t.Fatal(err)
	}
	if ks.Crypto.MACAlg != "" {
		t.Errorf("默认 MAC 不应写入 macalg, 得到 %q", ks.Crypto.MACAlg)
	}

	explicit := *ks
	explicit.Crypto.MACAlg = MACBlake2b256
	if got, err := DecryptMnemonic(&explicit, "pw"); err != nil || got != testMnemonic {
		t.Errorf("macalg=%s 应可解密, 得到 %q, %v", MACBlake2b256, got, err)
	}

	// 同一文件按 blake3 校验必然失败
	asBlake3 := *ks
	asBlake3.Crypto.MACAlg = MACBlake3
	if _, err := DecryptMnemonic(&asBlake3, "pw"); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("期望 ErrInvalidPassword, 得到 %v", err)
	}
}

func TestBlake3MAC(t *testing.T) {
	ks, err := EncryptMnemonic(testMnemonic, "pw", WithPBKDF2(2), WithBlake3MAC())
	if err != nil {
		t.Fatal(err)
	}
	if ks.Crypto.MACAlg != MACBlake3 {
		t.Errorf("macalg = %q, 期望 %q", ks.Crypto.MACAlg, MACBlake3)
	}
	if got, err := DecryptMnemonic(ks, "pw"); err != nil || got != testMnemonic {
		t.Errorf("blake3 keystore 解密失败: %q, %v", got, err)
	}

	stripped := *ks
	stripped.Crypto.MACAlg = ""
	if _, err := DecryptMnemonic(&stripped, "pw"); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("去掉 macalg 后应按 BLAKE2b 校验失败, 得到 %v", err)
	}

	unknown := *ks
	unknown.Crypto.MACAlg = "sha3-256"
	if _, err := DecryptMnemonic(&unknown, "pw"); !errors.Is(err, ErrUnsupportedMAC) {
		t.Errorf("期望 ErrUnsupportedMAC, 得到 %v", err)
	}
}

func TestRejectKDFParamsOutOfRange(t *testing.T) {
	base, err := EncryptMnemonic(testMnemonic, "pw", WithPBKDF2(1))
	if err != nil {
		t.Fatal(err)
	}

	pbkdf2Params := func(c int) KDFParams {
		p := base.Crypto.KDFParams
		p.C = c
		return p
	}
	scryptParams := func(n, r, p int) KDFParams {
		return KDFParams{DKLen: dkLen, Salt: base.Crypto.KDFParams.Salt, N: n, R: r, P: p}
	}

	tests := []struct {
		name   string
		kdf    string
		params KDFParams
	}{
		{"pbkdf2 c=2e9", KDFPBKDF2, pbkdf2Params(2_000_000_000)},
		{"pbkdf2 c 超过上限", KDFPBKDF2, pbkdf2Params(MaxIterations + 1)},
		{"pbkdf2 c=0", KDFPBKDF2, pbkdf2Params(0)},
		{"pbkdf2 c<0", KDFPBKDF2, pbkdf2Params(-1)},
		{"scrypt n=2^30", KDFScrypt, scryptParams(1<<30, 8, 1)},
		{"scrypt n 非 2 的幂", KDFScrypt, scryptParams(1000, 8, 1)},
		{"scrypt n=1", KDFScrypt, scryptParams(1, 8, 1)},
		{"scrypt n=0", KDFScrypt, scryptParams(0, 8, 1)},
		{"scrypt r=0", KDFScrypt, scryptParams(1024, 0, 1)},
		{"scrypt p=0", KDFScrypt, scryptParams(1024, 8, 0)},
		{"scrypt r 过大", KDFScrypt, scryptParams(2, 1<<30, 1)},
		{"scrypt n*r*p 超过上限", KDFScrypt, scryptParams(1<<20, 8, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ks := *base
			ks.Crypto.KDF = tt.kdf
			ks.Crypto.KDFParams = tt.params

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			start := time.Now()
			_, err := DecryptMnemonicContext(ctx, &ks, "pw")
			if !errors.Is(err, ErrInvalidKeystore) {
				t.Fatalf("期望 ErrInvalidKeystore, 得到 %v", err)
			}
			if elapsed := time.Since(start); elapsed > time.Second {
				t.Errorf("参数应在派生前被拒绝, 实际耗时 %v", elapsed)
			}
		})
	}

	if _, err := EncryptMnemonic(testMnemonic, "pw", WithPBKDF2(MaxIterations+1)); !errors.Is(err, ErrInvalidKeystore) {
		t.Errorf("加密时超过迭代上限也应拒绝, 得到 %v", err)
	}
	if _, err := EncryptMnemonic(testMnemonic, "pw", WithScrypt(1000, 8, 1)); !errors.Is(err, ErrInvalidKeystore) {
		t.Errorf("加密时 scrypt n 非 2 的幂也应拒绝, 得到 %v", err)
	}
}

func TestScryptContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := EncryptMnemonicContext(ctx, testMnemonic, "pw", WithScrypt(1024, 8, 1)); !errors.Is(err, context.Canceled) {
		t.Errorf("期望 context.Canceled, 得到 %v", err)
	}
}
