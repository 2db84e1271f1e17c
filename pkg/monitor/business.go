package monitor

import "time"

const (
	ResultOK    = "ok"
	ResultError = "error"
)

// ObserveOp 按结果记录一次密码学操作。
func (m *Metrics) ObserveOp(op string, err error) {
	if m == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.CryptoOpsTotal.WithLabelValues(op, result).Inc()
}

// ObserveKDF 记录从 start 到现在的密钥拉伸耗时。
func (m *Metrics) ObserveKDF(kdf string, start time.Time) {
	if m == nil {
		return
	}
	m.KDFDuration.WithLabelValues(kdf).Observe(time.Since(start).Seconds())
}

// KeyAdded KMS 新增一把 keyType 类型的密钥。
func (m *Metrics) KeyAdded(keyType string) {
	if m == nil {
		return
	}
	m.KeysManaged.WithLabelValues(keyType).Inc()
}
