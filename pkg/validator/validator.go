package validator

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"wallet-keycore/pkg/bip32"
	"wallet-keycore/pkg/bip39"
	"wallet-keycore/pkg/hash"
)

var validate *validator.Validate

// Init 在 gin 的默认校验引擎上注册自定义规则。
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validate = v
		Register(v)
	}
}

// Register 注册 hexbytes / digest_alg / bip39_lang / bip32_path 规则。
func Register(v *validator.Validate) {
	_ = v.RegisterValidation("hexbytes", isHexBytes)
	_ = v.RegisterValidation("digest_alg", isDigestAlgorithm)
	_ = v.RegisterValidation("bip39_lang", isLanguage)
	_ = v.RegisterValidation("bip32_path", isPath)
}

// 偶数长度十六进制，允许 0x 前缀；空串交给 required 处理。
func isHexBytes(fl validator.FieldLevel) bool {
	s := strings.TrimPrefix(fl.Field().String(), "0x")
	_, err := hex.DecodeString(s)
	return err == nil
}

func isDigestAlgorithm(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	for _, alg := range hash.Algorithms() {
		if string(alg) == s {
			return true
		}
	}
	return false
}

func isLanguage(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	for _, l := range bip39.Languages() {
		if string(l) == s {
			return true
		}
	}
	return false
}

func isPath(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || bip32.ValidatePath(s) == nil
}

// GetErrorMsg translates validation errors into user-friendly messages
func GetErrorMsg(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "请求参数错误"
	}

	var errMsgs []string
	for _, e := range validationErrors {
		field := e.Field()
		param := e.Param()

		switch e.Tag() {
		case "required":
			errMsgs = append(errMsgs, fmt.Sprintf("%s 不能为空", field))
		case "min":
			errMsgs = append(errMsgs, fmt.Sprintf("%s 不能小于 %s", field, param))
		case "max":
			errMsgs = append(errMsgs, fmt.Sprintf("%s 不能超过 %s", field, param))
		case "oneof":
			errMsgs = append(errMsgs, fmt.Sprintf("%s 必须是 [%s] 之一", field, param))
		case "hexbytes":
			errMsgs = append(errMsgs, fmt.Sprintf("%s 必须是偶数长度的十六进制字符串", field))
		case "len":
			errMsgs = append(errMsgs, fmt.Sprintf("%s 长度必须为 %s", field, param))
		case "digest_alg":
			errMsgs = append(errMsgs, fmt.Sprintf("%s 不是支持的摘要算法", field))
		case "bip39_lang":
			errMsgs = append(errMsgs, fmt.Sprintf("%s 不是支持的词表语言", field))
		case "bip32_path":
			errMsgs = append(errMsgs, fmt.Sprintf("%s 不是合法的派生路径", field))
		default:
			errMsgs = append(errMsgs, fmt.Sprintf("%s 校验失败 (%s)", field, e.Tag()))
		}
	}
	return strings.Join(errMsgs, "; ")
}
