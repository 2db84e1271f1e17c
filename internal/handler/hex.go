package handler

import (
	"encoding/hex"
	"fmt"
	"strings"

	"wallet-keycore/pkg/errno"
)

// decodeHex 接受可选 0x 前缀。
func decodeHex(field, s string) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, errno.ErrInvalidArgument.WithMessage(fmt.Sprintf("%s: %v", field, err))
	}
	return b, nil
}
