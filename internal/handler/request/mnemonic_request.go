package request

import "wallet-keycore/pkg/keystore"

type GenerateMnemonicRequest struct {
	Strength int    `json:"strength" binding:"omitempty,oneof=128 160 192 224 256"`
	Language string `json:"language" binding:"bip39_lang"`
}

type MnemonicRequest struct {
	Mnemonic string `json:"mnemonic" binding:"required"`
	Language string `json:"language" binding:"bip39_lang"`
}

type SeedRequest struct {
	Mnemonic string `json:"mnemonic" binding:"required"`
	Password string `json:"password"`
}

type EncryptKeystoreRequest struct {
	Mnemonic string `json:"mnemonic" binding:"required"`
	Password string `json:"password" binding:"required"`
	Language string `json:"language" binding:"bip39_lang"`
}

type DecryptKeystoreRequest struct {
	Keystore *keystore.Keystore `json:"keystore" binding:"required"`
	Password string             `json:"password" binding:"required"`
}
