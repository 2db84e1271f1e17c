package handler

import (
	"github.com/gin-gonic/gin"

	"wallet-keycore/internal/handler/request"
	"wallet-keycore/internal/handler/response"
	"wallet-keycore/internal/service"
	"wallet-keycore/pkg/errno"
)

type MnemonicHandler struct {
	svc service.MnemonicService
}

func NewMnemonicHandler(svc service.MnemonicService) *MnemonicHandler {
	return &MnemonicHandler{svc: svc}
}

// Generate 生成助记词
// @Tags mnemonic
// @Accept  json
// @Produce  json
// @Param request body request.GenerateMnemonicRequest true "请求参数"
// @Success 200 {object} response.Response
// @Router /api/v1/mnemonic/generate [post]
func (h *MnemonicHandler) Generate(c *gin.Context) {
	var req request.GenerateMnemonicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	m, err := h.svc.Generate(req.Strength, req.Language)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"mnemonic": m})
}

// Validate 校验助记词；无效时仍返回成功信封，data 中给出原因码
// @Tags mnemonic
// @Accept  json
// @Produce  json
// @Param request body request.MnemonicRequest true "请求参数"
// @Success 200 {object} response.Response
// @Router /api/v1/mnemonic/validate [post]
func (h *MnemonicHandler) Validate(c *gin.Context) {
	var req request.MnemonicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if err := h.svc.Validate(req.Mnemonic, req.Language); err != nil {
		code, msg := errno.Decode(err)
		response.Success(c, gin.H{"valid": false, "reason_code": code, "reason": msg})
		return
	}
	response.Success(c, gin.H{"valid": true})
}

// Entropy 助记词还原为熵
// @Tags mnemonic
// @Accept  json
// @Produce  json
// @Param request body request.MnemonicRequest true "请求参数"
// @Success 200 {object} response.Response
// @Router /api/v1/mnemonic/entropy [post]
func (h *MnemonicHandler) Entropy(c *gin.Context) {
	var req request.MnemonicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	entropy, err := h.svc.Entropy(req.Mnemonic, req.Language)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"entropy": response.Hex(entropy)})
}

// Seed 派生 64 字节 BIP-39 种子，不校验助记词
// @Tags mnemonic
// @Accept  json
// @Produce  json
// @Param request body request.SeedRequest true "请求参数"
// @Success 200 {object} response.Response
// @Router /api/v1/mnemonic/seed [post]
func (h *MnemonicHandler) Seed(c *gin.Context) {
	var req request.SeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	seed, err := h.svc.Seed(c.Request.Context(), req.Mnemonic, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"seed": response.Hex(seed)})
}

// EncryptKeystore 助记词加密为 keystore JSON
// @Tags keystore
// @Accept  json
// @Produce  json
// @Param request body request.EncryptKeystoreRequest true "请求参数"
// @Success 200 {object} response.Response
// @Router /api/v1/keystore/encrypt [post]
func (h *MnemonicHandler) EncryptKeystore(c *gin.Context) {
	var req request.EncryptKeystoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	ks, err := h.svc.Encrypt(c.Request.Context(), req.Mnemonic, req.Password, req.Language)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, ks)
}

// DecryptKeystore 解密 keystore 得到助记词
// @Tags keystore
// @Accept  json
// @Produce  json
// @Param request body request.DecryptKeystoreRequest true "请求参数"
// @Success 200 {object} response.Response
// @Router /api/v1/keystore/decrypt [post]
func (h *MnemonicHandler) DecryptKeystore(c *gin.Context) {
	var req request.DecryptKeystoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	m, err := h.svc.Decrypt(c.Request.Context(), req.Keystore, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"mnemonic": m})
}
