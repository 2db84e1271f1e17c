package kms

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"wallet-keycore/pkg/address"
	"wallet-keycore/pkg/bip32"
	"wallet-keycore/pkg/hash"
	"wallet-keycore/pkg/signingkey"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestLocalKMS_AES(t *testing.T) {
	kms := NewLocalKMS(nil)

	// 创建 AES 密钥
	keyID, err := kms.CreateKey(KeyTypeAES)
	if err != nil {
		t.Fatalf("创建 AES 密钥失败: %v", err)
	}
	t.Logf("生成的 AES KeyID: %s", keyID)

	plaintext := []byte("这是最高机密")
	ciphertext, err := kms.Encrypt(keyID, plaintext)
	if err != nil {
		t.Fatalf("AES 加密失败: %v", err)
	}

	decrypted, err := kms.Decrypt(keyID, ciphertext)
	if err != nil {
		t.Fatalf("AES 解密失败: %v", err)
	}

	if !bytes.Equal(plaintext, decrypted) {
		t.Errorf("AES 解密内容不匹配")
	}

	if _, err := kms.GetPublicKey(keyID); !errors.Is(err, ErrUnsupportedOp) {
		t.Errorf("AES 没有公钥, 期望 ErrUnsupportedOp, 得到 %v", err)
	}
}

func TestLocalKMS_Secp256k1(t *testing.T) {
	kms := NewLocalKMS(nil)

	keyID, err := kms.CreateKey(KeyTypeSecp256k1)
	if err != nil {
		t.Fatalf("创建 secp256k1 密钥失败: %v", err)
	}

	pub, err := kms.GetPublicKey(keyID)
	if err != nil {
		t.Fatal(err)
	}
	if len(pub) != 65 || pub[0] != 0x04 {
		t.Fatalf("公钥格式不正确: %x", pub)
	}

	msg := []byte("secp256k1 签名消息")
	sig, err := kms.Sign(keyID, msg)
	if err != nil {
		t.Fatalf("签名失败: %v", err)
	}
	if len(sig) != 65 {
		t.Fatalf("签名长度 = %d, 期望 65", len(sig))
	}
	if err := kms.Verify(keyID, msg, sig); err != nil {
		t.Errorf("验签失败: %v", err)
	}
	if err := kms.Verify(keyID, []byte("other"), sig); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("期望 ErrInvalidSignature, 得到 %v", err)
	}

	// Sign 等价于对 SHA256(msg) 调用 SignDigest，且签名可恢复出同一公钥
	digest := hash.Sum256(msg)
	sig2, err := kms.SignDigest(keyID, digest[:])
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(sig, sig2) {
		t.Error("RFC 6979 签名应是确定性的")
	}
	split, err := signingkey.SplitSignature(sig2)
	if err != nil {
		t.Fatal(err)
	}
	recovered, err := signingkey.RecoverPublicKey(kms.Curve(), digest[:], split)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(recovered, pub) {
		t.Error("恢复出的公钥与 KMS 公钥不一致")
	}

	if _, err := kms.SignDigest(keyID, []byte("short")); !errors.Is(err, signingkey.ErrInvalidDigest) {
		t.Errorf("期望 ErrInvalidDigest, 得到 %v", err)
	}
	if _, err := kms.Encrypt(keyID, msg); !errors.Is(err, ErrUnsupportedOp) {
		t.Errorf("secp256k1 不支持加密, 得到 %v", err)
	}
}

func TestLocalKMS_ImportSecp256k1(t *testing.T) {
	kms := NewLocalKMS(nil)

	priv, _ := hex.DecodeString("0000000000000000000000000000000000000000000000000000000000000001")
	keyID, err := kms.ImportKey(KeyTypeSecp256k1, priv)
	if err != nil {
		t.Fatal(err)
	}
	pub, err := kms.GetPublicKey(keyID)
	if err != nil {
		t.Fatal(err)
	}
	want := "0479be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798" +
		"483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"
	if hex.EncodeToString(pub) != want {
		t.Errorf("私钥 1 的公钥 = %x", pub)
	}

	if _, err := kms.ImportKey(KeyTypeSecp256k1, make([]byte, 32)); !errors.Is(err, ErrInvalidMaterial) {
		t.Errorf("零私钥应返回 ErrInvalidMaterial, 得到 %v", err)
	}
	if _, err := kms.ImportKey(KeyTypeSecp256k1, make([]byte, 32)); !errors.Is(err, signingkey.ErrInvalidPrivateKey) {
		t.Errorf("应同时包装 ErrInvalidPrivateKey, 得到 %v", err)
	}
	if _, err := kms.ImportKey(KeyTypeAES, make([]byte, 10)); !errors.Is(err, ErrInvalidMaterial) {
		t.Errorf("AES 长度错误应返回 ErrInvalidMaterial, 得到 %v", err)
	}
	if _, err := kms.ImportKey(KeyTypeEd25519, make([]byte, 31)); !errors.Is(err, ErrInvalidMaterial) {
		t.Errorf("Ed25519 种子长度错误应返回 ErrInvalidMaterial, 得到 %v", err)
	}
}

func TestLocalKMS_FromMnemonic(t *testing.T) {
	kms := NewLocalKMS(nil)

	keyID, err := kms.CreateKeyFromMnemonic(testMnemonic, "", bip32.ETHPath)
	if err != nil {
		t.Fatalf("从助记词创建密钥失败: %v", err)
	}
	meta, err := kms.Metadata(keyID)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Path != bip32.ETHPath || meta.Type != KeyTypeSecp256k1 {
		t.Errorf("元数据不正确: %+v", meta)
	}

	pub, err := kms.GetPublicKey(keyID)
	if err != nil {
		t.Fatal(err)
	}
	addr, err := address.NewETHGenerator(kms.Curve()).PubKeyToAddress(pub)
	if err != nil {
		t.Fatal(err)
	}
	if addr != "0x9858EfFD232B4033E47d90003D41EC34EcaEda94" {
		t.Errorf("派生地址 = %s", addr)
	}

	if _, err := kms.CreateKeyFromMnemonic("abandon abandon", "", bip32.ETHPath); err == nil {
		t.Error("非法助记词应报错")
	}
	if _, err := kms.CreateKeyFromMnemonic(testMnemonic, "", "m/x"); !errors.Is(err, bip32.ErrInvalidPath) {
		t.Errorf("期望 ErrInvalidPath, 得到 %v", err)
	}
}

func TestLocalKMS_Ed25519(t *testing.T) {
	kms := NewLocalKMS(nil)

	keyID, err := kms.CreateKey(KeyTypeEd25519)
	if err != nil {
		t.Fatalf("创建 Ed25519 密钥失败: %v", err)
	}
	t.Logf("生成的 Ed25519 KeyID: %s", keyID)

	msg := []byte("Ed25519 签名消息")
	sig, err := kms.Sign(keyID, msg)
	if err != nil {
		t.Fatalf("Ed25519 签名失败: %v", err)
	}

	if err := kms.Verify(keyID, msg, sig); err != nil {
		t.Errorf("Ed25519 验签失败: %v", err)
	}

	pub, err := kms.GetPublicKey(keyID)
	if err != nil || len(pub) != 32 {
		t.Errorf("Ed25519 公钥不正确: %x, %v", pub, err)
	}

	if _, err := kms.SignDigest(keyID, make([]byte, 32)); !errors.Is(err, ErrUnsupportedOp) {
		t.Errorf("Ed25519 不支持 SignDigest, 得到 %v", err)
	}
}

func TestLocalKMS_EnableDisable(t *testing.T) {
	kms := NewLocalKMS(nil)

	keyID, err := kms.CreateKey(KeyTypeSecp256k1)
	if err != nil {
		t.Fatal(err)
	}
	if err := kms.SetEnabled(keyID, false); err != nil {
		t.Fatal(err)
	}
	if _, err := kms.Sign(keyID, []byte("x")); !errors.Is(err, ErrKeyDisabled) {
		t.Errorf("期望 ErrKeyDisabled, 得到 %v", err)
	}
	meta, err := kms.Metadata(keyID)
	if err != nil || meta.Enabled {
		t.Errorf("禁用后元数据仍应可查询且 Enabled=false: %+v, %v", meta, err)
	}
	if err := kms.SetEnabled(keyID, true); err != nil {
		t.Fatal(err)
	}
	if _, err := kms.Sign(keyID, []byte("x")); err != nil {
		t.Errorf("重新启用后签名失败: %v", err)
	}

	if err := kms.SetEnabled("missing", true); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("期望 ErrKeyNotFound, 得到 %v", err)
	}
	if got := len(kms.ListKeys()); got != 1 {
		t.Errorf("ListKeys 长度 = %d, 期望 1", got)
	}
}

func TestLocalKMS_Errors(t *testing.T) {
	kms := NewLocalKMS(nil)

	// 测试不存在的 Key
	_, err := kms.Encrypt("non-existent", []byte("data"))
	if err != ErrKeyNotFound {
		t.Errorf("期望 ErrKeyNotFound, 得到 %v", err)
	}

	// 测试 AES 不支持签名
	aesKeyID, _ := kms.CreateKey(KeyTypeAES)
	_, err = kms.Sign(aesKeyID, []byte("data"))
	if err != ErrUnsupportedOp {
		t.Errorf("期望 ErrUnsupportedOp (AES 签名), 得到 %v", err)
	}

	if _, err := kms.CreateKey("RSA"); !errors.Is(err, ErrUnsupportedOp) {
		t.Errorf("期望 ErrUnsupportedOp (RSA), 得到 %v", err)
	}
}
