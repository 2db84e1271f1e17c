package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"wallet-keycore/internal/handler/request"
	"wallet-keycore/internal/handler/response"
	"wallet-keycore/internal/service"
	"wallet-keycore/pkg/hash"
	"wallet-keycore/pkg/signingkey"
)

type CryptoHandler struct {
	svc service.CryptoService
}

func NewCryptoHandler(svc service.CryptoService) *CryptoHandler {
	return &CryptoHandler{svc: svc}
}

// Hash 计算摘要
// @Tags crypto
// @Accept  json
// @Produce  json
// @Param request body request.HashRequest true "请求参数"
// @Success 200 {object} response.Response
// @Router /api/v1/hash [post]
func (h *CryptoHandler) Hash(c *gin.Context) {
	var req request.HashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	data, err := decodeHex("data_hex", req.DataHex)
	if err != nil {
		response.Error(c, err)
		return
	}

	sum, err := h.svc.Hash(hash.Algorithm(req.Algorithm), data)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"algorithm": req.Algorithm, "digest": response.Hex(sum)})
}

// PBKDF2 派生密钥
// @Tags crypto
// @Accept  json
// @Produce  json
// @Param request body request.PBKDF2Request true "请求参数"
// @Success 200 {object} response.Response
// @Router /api/v1/pbkdf2 [post]
func (h *CryptoHandler) PBKDF2(c *gin.Context) {
	var req request.PBKDF2Request
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	password, err := decodeHex("password_hex", req.PasswordHex)
	if err != nil {
		response.Error(c, err)
		return
	}
	salt, err := decodeHex("salt_hex", req.SaltHex)
	if err != nil {
		response.Error(c, err)
		return
	}

	key, err := h.svc.PBKDF2(c.Request.Context(), password, salt, req.Iterations, req.KeyLength, hash.Algorithm(req.Digest))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"key": response.Hex(key)})
}

// PublicKey 计算或重新编码公钥
// @Tags crypto
// @Accept  json
// @Produce  json
// @Param request body request.PublicKeyRequest true "请求参数"
// @Success 200 {object} response.Response
// @Router /api/v1/keys/public [post]
func (h *CryptoHandler) PublicKey(c *gin.Context) {
	var req request.PublicKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	key, err := decodeHex("key_hex", req.KeyHex)
	if err != nil {
		response.Error(c, err)
		return
	}

	pub, err := h.svc.PublicKey(key, req.Compressed)
	clear(key)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"public_key": response.Hex(pub), "compressed": req.Compressed})
}

// Recover 从签名恢复公钥与以太坊地址
// @Tags crypto
// @Accept  json
// @Produce  json
// @Param request body request.RecoverRequest true "请求参数"
// @Success 200 {object} response.Response
// @Router /api/v1/signature/recover [post]
func (h *CryptoHandler) Recover(c *gin.Context) {
	var req request.RecoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	digest, err := decodeHex("digest_hex", req.DigestHex)
	if err != nil {
		response.Error(c, err)
		return
	}
	if len(digest) != 32 {
		response.Error(c, fmt.Errorf("%w: %d", signingkey.ErrInvalidDigest, len(digest)))
		return
	}
	sig, err := decodeHex("signature_hex", req.SignatureHex)
	if err != nil {
		response.Error(c, err)
		return
	}

	pub, addr, err := h.svc.Recover(digest, sig)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"public_key": response.Hex(pub), "address": addr})
}
