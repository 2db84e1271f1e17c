package errno

import (
	"errors"

	"wallet-keycore/pkg/bip32"
	"wallet-keycore/pkg/bip39"
	"wallet-keycore/pkg/bn"
	"wallet-keycore/pkg/hash"
	"wallet-keycore/pkg/keystore"
	"wallet-keycore/pkg/kms"
	"wallet-keycore/pkg/pbkdf2"
	"wallet-keycore/pkg/secp256k1"
	"wallet-keycore/pkg/signingkey"
)

// Errno defines the error code logic
type Errno struct {
	Code    int
	Message string
}

func (e Errno) Error() string {
	return e.Message
}

// WithMessage 返回同一错误码、替换描述的副本
func (e Errno) WithMessage(msg string) Errno {
	e.Message = msg
	return e
}

// Decode tries to convert an error to Errno.
// 领域哨兵错误按 errors.Is 映射到错误码，消息保留原始错误的上下文。
func Decode(err error) (int, string) {
	if err == nil {
		return OK.Code, OK.Message
	}

	var typed Errno
	if errors.As(err, &typed) {
		return typed.Code, typed.Message
	}
	var ptr *Errno
	if errors.As(err, &ptr) && ptr != nil {
		return ptr.Code, ptr.Message
	}

	for _, m := range sentinels {
		if errors.Is(err, m.err) {
			return m.code.Code, err.Error()
		}
	}
	return InternalServerError.Code, err.Error()
}

// Common Errors
var (
	OK                  = Errno{Code: 0, Message: "Success"}
	InternalServerError = Errno{Code: 10001, Message: "Internal server error"}
	ErrBind             = Errno{Code: 10002, Message: "Error occurred while binding the request body to the struct"}
	ErrNotFound         = Errno{Code: 10004, Message: "Route not found"}
)

// Crypto Errors (30000+)
var (
	ErrInvalidArgument     = Errno{Code: 30001, Message: "Invalid argument"}
	ErrUnknownAlgorithm    = Errno{Code: 30002, Message: "Unknown digest algorithm"}
	ErrDigestAlreadyCalled = Errno{Code: 30003, Message: "Digest already called"}

	ErrInvalidEntropy  = Errno{Code: 30101, Message: "Invalid entropy"}
	ErrInvalidMnemonic = Errno{Code: 30102, Message: "Invalid mnemonic"}
	ErrInvalidChecksum = Errno{Code: 30103, Message: "Invalid mnemonic checksum"}

	ErrInvalidPrivateKey = Errno{Code: 30201, Message: "Invalid private key"}
	ErrInvalidKey        = Errno{Code: 30202, Message: "Invalid public or private key"}
	ErrInvalidSignature  = Errno{Code: 30203, Message: "Invalid signature"}

	ErrKeystorePassword = Errno{Code: 30301, Message: "Invalid keystore password"}

	ErrKeyNotFound   = Errno{Code: 30401, Message: "Key not found"}
	ErrKeyDisabled   = Errno{Code: 30402, Message: "Key disabled"}
	ErrUnsupportedOp = Errno{Code: 30403, Message: "Operation not supported for key type"}
)

type mapping struct {
	err  error
	code Errno
}

// 顺序即优先级：更具体的错误放在前面。
var sentinels = []mapping{
	{hash.ErrUnknownAlgorithm, ErrUnknownAlgorithm},
	{hash.ErrDigestAlreadyCalled, ErrDigestAlreadyCalled},
	{pbkdf2.ErrBadIterations, ErrInvalidArgument},
	{pbkdf2.ErrBadKeyLength, ErrInvalidArgument},
	{bip39.ErrInvalidEntropy, ErrInvalidEntropy},
	{bip39.ErrInvalidMnemonic, ErrInvalidMnemonic},
	{bip39.ErrInvalidChecksum, ErrInvalidChecksum},
	{bip39.ErrInvalidWordlist, ErrInvalidArgument},
	{bip32.ErrInvalidPath, ErrInvalidArgument},
	{bip32.ErrInvalidSeed, ErrInvalidArgument},
	{signingkey.ErrInvalidPrivateKey, ErrInvalidPrivateKey},
	{signingkey.ErrInvalidKey, ErrInvalidKey},
	{signingkey.ErrInvalidDigest, ErrInvalidArgument},
	{signingkey.ErrInvalidSignature, ErrInvalidSignature},
	{secp256k1.ErrInvalidPoint, ErrInvalidKey},
	{secp256k1.ErrInvalidScalar, ErrInvalidPrivateKey},
	{secp256k1.ErrInvalidSignature, ErrInvalidSignature},
	{secp256k1.ErrInvalidRecoveryParam, ErrInvalidSignature},
	{bn.ErrNotInvertible, ErrInvalidSignature},
	{keystore.ErrInvalidPassword, ErrKeystorePassword},
	{keystore.ErrInvalidKeystore, ErrInvalidArgument},
	{keystore.ErrUnsupportedCipher, ErrInvalidArgument},
	{keystore.ErrUnsupportedKDF, ErrInvalidArgument},
	{keystore.ErrUnsupportedMAC, ErrInvalidArgument},
	{kms.ErrKeyNotFound, ErrKeyNotFound},
	{kms.ErrKeyDisabled, ErrKeyDisabled},
	{kms.ErrUnsupportedOp, ErrUnsupportedOp},
	{kms.ErrInvalidSignature, ErrInvalidSignature},
	{kms.ErrInvalidMaterial, ErrInvalidKey},
}
