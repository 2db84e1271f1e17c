package handler

import (
	"github.com/gin-gonic/gin"

	"wallet-keycore/internal/handler/request"
	"wallet-keycore/internal/handler/response"
	"wallet-keycore/internal/service"
	"wallet-keycore/pkg/kms"
)

type KMSHandler struct {
	svc service.KeyService
}

func NewKMSHandler(svc service.KeyService) *KMSHandler {
	return &KMSHandler{svc: svc}
}

// CreateKey 创建或从助记词导入密钥
// @Tags kms
// @Accept  json
// @Produce  json
// @Param request body request.CreateKeyRequest true "请求参数"
// @Success 200 {object} response.Response
// @Router /api/v1/kms/keys [post]
func (h *KMSHandler) CreateKey(c *gin.Context) {
	var req request.CreateKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	kType := kms.KeyType(req.Type)
	if kType == "" {
		kType = kms.KeyTypeSecp256k1
	}
	info, err := h.svc.CreateKey(kType, req.Mnemonic, req.Password, req.Path)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}

// ImportKeystore 解密 keystore 并导入派生出的 secp256k1 密钥
// @Tags kms
// @Accept  json
// @Produce  json
// @Param request body request.ImportKeystoreRequest true "请求参数"
// @Success 200 {object} response.Response
// @Router /api/v1/kms/keys/import [post]
func (h *KMSHandler) ImportKeystore(c *gin.Context) {
	var req request.ImportKeystoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	info, err := h.svc.ImportKeystore(c.Request.Context(), req.Keystore, req.Password, req.Path)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}

// GetKey 公钥与地址
// @Tags kms
// @Accept  json
// @Produce  json
// @Param id path string true "Key ID"
// @Success 200 {object} response.Response
// @Router /api/v1/kms/keys/{id} [get]
func (h *KMSHandler) GetKey(c *gin.Context) {
	info, err := h.svc.GetKey(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}

// Sign 对 32 字节摘要签名，返回 r||s||v
// @Tags kms
// @Accept  json
// @Produce  json
// @Param id path string true "Key ID"
// @Param request body request.SignDigestRequest true "请求参数"
// @Success 200 {object} response.Response
// @Router /api/v1/kms/keys/{id}/sign [post]
func (h *KMSHandler) Sign(c *gin.Context) {
	var req request.SignDigestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	digest, err := decodeHex("digest_hex", req.DigestHex)
	if err != nil {
		response.Error(c, err)
		return
	}
	sig, err := h.svc.SignDigest(c.Param("id"), digest)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"signature": response.Hex(sig)})
}

// SetState 启用/禁用密钥
// @Tags kms
// @Accept  json
// @Produce  json
// @Param id path string true "Key ID"
// @Param request body request.SetKeyStateRequest true "请求参数"
// @Success 200 {object} response.Response
// @Router /api/v1/kms/keys/{id}/state [put]
func (h *KMSHandler) SetState(c *gin.Context) {
	var req request.SetKeyStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if err := h.svc.SetEnabled(c.Param("id"), *req.Enabled); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"key_id": c.Param("id"), "enabled": *req.Enabled})
}
