package bip39

import (
	"context"

	"golang.org/x/text/unicode/norm"

	"wallet-keycore/pkg/hash"
	"wallet-keycore/pkg/pbkdf2"
)

const (
	seedIterations = 2048
	SeedLength     = 64
	saltPrefix     = "mnemonic"
)

func seedArgs(mnemonic, password string) ([]byte, []byte) {
	return []byte(norm.NFKD.String(mnemonic)), []byte(saltPrefix + norm.NFKD.String(password))
}

// MnemonicToSeed = PBKDF2-HMAC-SHA512(NFKD(mnemonic), "mnemonic"+NFKD(password), 2048, 64)。
// 不校验助记词本身。
func MnemonicToSeed(mnemonic, password string) []byte {
	pw, salt := seedArgs(mnemonic, password)
	// 参数固定，不会出错
	seed, _ := pbkdf2.Key(pw, salt, seedIterations, SeedLength, hash.SHA512)
	return seed
}

// MnemonicToSeedContext 在独立 goroutine 中派生种子，ctx 取消时立即返回。
func MnemonicToSeedContext(ctx context.Context, mnemonic, password string) ([]byte, error) {
	type result struct {
		seed []byte
		err  error
	}
	ch := make(chan result, 1)
	pw, salt := seedArgs(mnemonic, password)

	go func() {
		seed, err := pbkdf2.KeyContext(ctx, pw, salt, seedIterations, SeedLength, hash.SHA512)
		ch <- result{seed, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		return r.seed, r.err
	}
}
