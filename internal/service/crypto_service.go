package service

import (
	"context"
	"time"

	"wallet-keycore/pkg/address"
	"wallet-keycore/pkg/hash"
	"wallet-keycore/pkg/monitor"
	"wallet-keycore/pkg/pbkdf2"
	"wallet-keycore/pkg/secp256k1"
	"wallet-keycore/pkg/signingkey"
)

type cryptoService struct {
	curve   *secp256k1.Curve
	eth     *address.ETHGenerator
	metrics *monitor.Metrics
}

func NewCryptoService(curve *secp256k1.Curve, metrics *monitor.Metrics) CryptoService {
	return &cryptoService{
		curve:   curve,
		eth:     address.NewETHGenerator(curve),
		metrics: metrics,
	}
}

func (s *cryptoService) Hash(alg hash.Algorithm, data []byte) ([]byte, error) {
	sum, err := hash.Sum(alg, data)
	s.metrics.ObserveOp("hash_"+string(alg), err)
	return sum, err
}

func (s *cryptoService) PBKDF2(ctx context.Context, password, salt []byte, iterations, keyLen int, alg hash.Algorithm) ([]byte, error) {
	start := time.Now()
	key, err := pbkdf2.KeyContext(ctx, password, salt, iterations, keyLen, alg)
	s.metrics.ObserveOp("pbkdf2", err)
	if err == nil {
		s.metrics.ObserveKDF("pbkdf2", start)
	}
	return key, err
}

func (s *cryptoService) PublicKey(key []byte, compressed bool) ([]byte, error) {
	pub, err := signingkey.ComputePublicKey(s.curve, key, compressed)
	s.metrics.ObserveOp("compute_public_key", err)
	return pub, err
}

func (s *cryptoService) Recover(digest, signature []byte) ([]byte, string, error) {
	pub, addr, err := s.recover(digest, signature)
	s.metrics.ObserveOp("recover", err)
	return pub, addr, err
}

func (s *cryptoService) recover(digest, signature []byte) ([]byte, string, error) {
	sig, err := signingkey.SplitSignature(signature)
	if err != nil {
		return nil, "", err
	}
	pub, err := signingkey.RecoverPublicKey(s.curve, digest, sig)
	if err != nil {
		return nil, "", err
	}
	addr, err := s.eth.PubKeyToAddress(pub)
	if err != nil {
		return nil, "", err
	}
	return pub, addr, nil
}
