package server

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet-keycore/internal/handler"
	"wallet-keycore/internal/service"
	"wallet-keycore/pkg/config"
	"wallet-keycore/pkg/errno"
	"wallet-keycore/pkg/hash"
	"wallet-keycore/pkg/kms"
	"wallet-keycore/pkg/monitor"
	"wallet-keycore/pkg/secp256k1"
	"wallet-keycore/pkg/signingkey"
	"wallet-keycore/pkg/validator"

	_ "wallet-keycore/docs/swagger"
)

const abandonMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validator.Init()
	os.Exit(m.Run())
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T) (*gin.Engine, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	metrics := monitor.New(reg)
	curve := secp256k1.NewCurve()

	crypto := service.NewCryptoService(curve, metrics)
	mnemonic := service.NewMnemonicService(
		config.Bip39Config{Language: "english", Strength: 128},
		config.KeystoreConfig{KDF: "pbkdf2", Iterations: 4},
		metrics,
	)
	keys := service.NewKeyService(kms.NewLocalKMS(curve), "m/44'/60'/0'/0/0", metrics)

	r := NewHTTPRouter(Handlers{
		Crypto:   handler.NewCryptoHandler(crypto),
		Mnemonic: handler.NewMnemonicHandler(mnemonic),
		KMS:      handler.NewKMSHandler(keys),
	}, metrics, reg)
	return r, reg
}

func do(t *testing.T, r http.Handler, method, path string, body any) (int, envelope, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	data := map[string]any{}
	if len(env.Data) > 0 {
		_ = json.Unmarshal(env.Data, &data)
	}
	return w.Code, env, data
}

func TestHealthCheck(t *testing.T) {
	r, _ := newTestRouter(t)

	status, env, data := do(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, errno.OK.Code, env.Code)
	assert.Equal(t, "UP", data["status"])

	_, env, data = do(t, r, http.MethodGet, "/api/v1/ping", nil)
	assert.Equal(t, errno.OK.Code, env.Code)
	assert.Equal(t, true, data["pong"])

	_, env, _ = do(t, r, http.MethodGet, "/api/v1/nope", nil)
	assert.Equal(t, errno.ErrNotFound.Code, env.Code)
}

func TestSwaggerDoc(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var doc struct {
		Paths map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Contains(t, doc.Paths, "/api/v1/hash")
	assert.Contains(t, doc.Paths["/api/v1/kms/keys/{id}/state"], "put")
	assert.Contains(t, doc.Paths["/api/v1/keystore/decrypt"], "post")
}

func TestHashRoute(t *testing.T) {
	r, _ := newTestRouter(t)

	_, env, data := do(t, r, http.MethodPost, "/api/v1/hash", gin.H{"algorithm": "sha256", "data_hex": "0x616263"})
	require.Equal(t, errno.OK.Code, env.Code, env.Msg)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", data["digest"])

	_, env, data = do(t, r, http.MethodPost, "/api/v1/hash", gin.H{"algorithm": "ripemd160", "data_hex": ""})
	require.Equal(t, errno.OK.Code, env.Code, env.Msg)
	assert.Equal(t, "9c1185a5c5e9fc54612808977ee8f548b2258d31", data["digest"])

	_, env, _ = do(t, r, http.MethodPost, "/api/v1/hash", gin.H{"algorithm": "sha3", "data_hex": "00"})
	assert.Equal(t, errno.ErrBind.Code, env.Code)

	_, env, _ = do(t, r, http.MethodPost, "/api/v1/hash", gin.H{"algorithm": "md5", "data_hex": "abc"})
	assert.Equal(t, errno.ErrBind.Code, env.Code)
}

func TestPBKDF2Route(t *testing.T) {
	r, _ := newTestRouter(t)

	_, env, data := do(t, r, http.MethodPost, "/api/v1/pbkdf2", gin.H{
		"password_hex": "70617373776f7264", // "password"
		"salt_hex":     "73616c74",         // "salt"
		"iterations":   2,
		"key_length":   20,
	})
	require.Equal(t, errno.OK.Code, env.Code, env.Msg)
	assert.Equal(t, "ea6c014dc72d6f8ccd1ed92ace1d41f0d8de8957", data["key"])

	_, env, data = do(t, r, http.MethodPost, "/api/v1/pbkdf2", gin.H{
		"password_hex": "70617373776f7264",
		"salt_hex":     "73616c74",
		"iterations":   1,
		"key_length":   32,
		"digest":       string(hash.SHA256),
	})
	require.Equal(t, errno.OK.Code, env.Code, env.Msg)
	assert.Equal(t, "120fb6cffcf8b32c43e7225256c4f837a86548c92ccc35480805987cb70be17b", data["key"])

	_, env, _ = do(t, r, http.MethodPost, "/api/v1/pbkdf2", gin.H{"key_length": 0})
	assert.Equal(t, errno.ErrBind.Code, env.Code)
}

func TestPublicKeyAndRecoverRoutes(t *testing.T) {
	r, _ := newTestRouter(t)
	priv := "0000000000000000000000000000000000000000000000000000000000000001"

	_, env, data := do(t, r, http.MethodPost, "/api/v1/keys/public", gin.H{"key_hex": priv, "compressed": true})
	require.Equal(t, errno.OK.Code, env.Code, env.Msg)
	assert.Equal(t, "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798", data["public_key"])

	_, env, _ = do(t, r, http.MethodPost, "/api/v1/keys/public", gin.H{"key_hex": strings.Repeat("00", 32)})
	assert.Equal(t, errno.ErrInvalidPrivateKey.Code, env.Code)

	_, env, _ = do(t, r, http.MethodPost, "/api/v1/keys/public", gin.H{"key_hex": "0102"})
	assert.Equal(t, errno.ErrInvalidKey.Code, env.Code)

	curve := secp256k1.NewCurve()
	privBytes, _ := hex.DecodeString(priv)
	sk, err := signingkey.New(curve, privBytes)
	require.NoError(t, err)
	digest := hash.Sum256([]byte("message"))
	sig, err := sk.SignDigest(digest[:])
	require.NoError(t, err)

	_, env, data = do(t, r, http.MethodPost, "/api/v1/signature/recover", gin.H{
		"digest_hex":    hex.EncodeToString(digest[:]),
		"signature_hex": hex.EncodeToString(sig.Bytes()),
	})
	require.Equal(t, errno.OK.Code, env.Code, env.Msg)
	assert.Equal(t, "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf", data["address"])

	_, env, _ = do(t, r, http.MethodPost, "/api/v1/signature/recover", gin.H{
		"digest_hex":    "00",
		"signature_hex": hex.EncodeToString(sig.Bytes()),
	})
	assert.Equal(t, errno.ErrInvalidArgument.Code, env.Code)
}

func TestMnemonicRoutes(t *testing.T) {
	r, _ := newTestRouter(t)

	_, env, data := do(t, r, http.MethodPost, "/api/v1/mnemonic/generate", gin.H{"strength": 256})
	require.Equal(t, errno.OK.Code, env.Code, env.Msg)
	assert.Len(t, strings.Fields(data["mnemonic"].(string)), 24)

	_, env, _ = do(t, r, http.MethodPost, "/api/v1/mnemonic/generate", gin.H{"strength": 100})
	assert.Equal(t, errno.ErrBind.Code, env.Code)

	_, env, data = do(t, r, http.MethodPost, "/api/v1/mnemonic/validate", gin.H{"mnemonic": abandonMnemonic})
	require.Equal(t, errno.OK.Code, env.Code)
	assert.Equal(t, true, data["valid"])

	bad := strings.Repeat("abandon ", 11) + "abandon"
	_, env, data = do(t, r, http.MethodPost, "/api/v1/mnemonic/validate", gin.H{"mnemonic": bad})
	require.Equal(t, errno.OK.Code, env.Code)
	assert.Equal(t, false, data["valid"])
	assert.EqualValues(t, errno.ErrInvalidChecksum.Code, data["reason_code"])

	_, env, data = do(t, r, http.MethodPost, "/api/v1/mnemonic/entropy", gin.H{"mnemonic": abandonMnemonic})
	require.Equal(t, errno.OK.Code, env.Code, env.Msg)
	assert.Equal(t, strings.Repeat("00", 16), data["entropy"])

	_, env, _ = do(t, r, http.MethodPost, "/api/v1/mnemonic/entropy", gin.H{"mnemonic": "abandon abandon abandon"})
	assert.Equal(t, errno.ErrInvalidEntropy.Code, env.Code)

	_, env, data = do(t, r, http.MethodPost, "/api/v1/mnemonic/seed", gin.H{"mnemonic": abandonMnemonic, "password": "TREZOR"})
	require.Equal(t, errno.OK.Code, env.Code, env.Msg)
	assert.Equal(t, "c55257c360c07c72029aebc1b53c05ed0362ada38ead3e3e9efa3708e53495531f09a6987599d18264c1e1c92f2cf141630c7a3c4ab7c81b2f001698e7463b04", data["seed"])

	_, env, _ = do(t, r, http.MethodPost, "/api/v1/mnemonic/seed", gin.H{})
	assert.Equal(t, errno.ErrBind.Code, env.Code)
}

func TestKeystoreRoutes(t *testing.T) {
	r, _ := newTestRouter(t)

	_, env, _ := do(t, r, http.MethodPost, "/api/v1/keystore/encrypt", gin.H{"mnemonic": abandonMnemonic, "password": "pw"})
	require.Equal(t, errno.OK.Code, env.Code, env.Msg)

	var ks map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &ks))
	assert.Equal(t, "xchain-keystore", ks["meta"])

	_, env, data := do(t, r, http.MethodPost, "/api/v1/keystore/decrypt", gin.H{"keystore": ks, "password": "pw"})
	require.Equal(t, errno.OK.Code, env.Code, env.Msg)
	assert.Equal(t, abandonMnemonic, data["mnemonic"])

	_, env, _ = do(t, r, http.MethodPost, "/api/v1/keystore/decrypt", gin.H{"keystore": ks, "password": "wrong"})
	assert.Equal(t, errno.ErrKeystorePassword.Code, env.Code)

	_, env, _ = do(t, r, http.MethodPost, "/api/v1/keystore/encrypt", gin.H{"mnemonic": "not a mnemonic", "password": "pw"})
	assert.Equal(t, errno.ErrInvalidMnemonic.Code, env.Code)

	// 超大迭代次数在派生前即被拒绝
	ks["crypto"].(map[string]any)["kdfparams"].(map[string]any)["c"] = 2_000_000_000
	_, env, _ = do(t, r, http.MethodPost, "/api/v1/keystore/decrypt", gin.H{"keystore": ks, "password": "pw"})
	assert.Equal(t, errno.ErrInvalidArgument.Code, env.Code)
}

func TestKMSRoutes(t *testing.T) {
	r, _ := newTestRouter(t)

	_, env, data := do(t, r, http.MethodPost, "/api/v1/kms/keys", gin.H{"mnemonic": abandonMnemonic})
	require.Equal(t, errno.OK.Code, env.Code, env.Msg)
	assert.Equal(t, "0x9858EfFD232B4033E47d90003D41EC34EcaEda94", data["eth_address"])
	id := data["key_id"].(string)
	require.NotEmpty(t, id)

	_, env, data = do(t, r, http.MethodGet, "/api/v1/kms/keys/"+id, nil)
	require.Equal(t, errno.OK.Code, env.Code, env.Msg)
	assert.Equal(t, "0x9858EfFD232B4033E47d90003D41EC34EcaEda94", data["eth_address"])

	digest := hash.Sum256([]byte("tx"))
	_, env, data = do(t, r, http.MethodPost, "/api/v1/kms/keys/"+id+"/sign", gin.H{"digest_hex": hex.EncodeToString(digest[:])})
	require.Equal(t, errno.OK.Code, env.Code, env.Msg)
	sigHex := data["signature"].(string)
	assert.Len(t, sigHex, 130)

	_, env, data = do(t, r, http.MethodPost, "/api/v1/signature/recover", gin.H{
		"digest_hex":    hex.EncodeToString(digest[:]),
		"signature_hex": sigHex,
	})
	require.Equal(t, errno.OK.Code, env.Code, env.Msg)
	assert.Equal(t, "0x9858EfFD232B4033E47d90003D41EC34EcaEda94", data["address"])

	_, env, _ = do(t, r, http.MethodPut, "/api/v1/kms/keys/"+id+"/state", gin.H{"enabled": false})
	require.Equal(t, errno.OK.Code, env.Code, env.Msg)
	_, env, _ = do(t, r, http.MethodPost, "/api/v1/kms/keys/"+id+"/sign", gin.H{"digest_hex": hex.EncodeToString(digest[:])})
	assert.Equal(t, errno.ErrKeyDisabled.Code, env.Code)

	_, env, _ = do(t, r, http.MethodPut, "/api/v1/kms/keys/"+id+"/state", gin.H{})
	assert.Equal(t, errno.ErrBind.Code, env.Code)

	_, env, _ = do(t, r, http.MethodGet, "/api/v1/kms/keys/missing", nil)
	assert.Equal(t, errno.ErrKeyNotFound.Code, env.Code)

	_, env, data = do(t, r, http.MethodPost, "/api/v1/kms/keys", gin.H{"type": "Ed25519"})
	require.Equal(t, errno.OK.Code, env.Code, env.Msg)
	edID := data["key_id"].(string)
	_, env, _ = do(t, r, http.MethodPost, "/api/v1/kms/keys/"+edID+"/sign", gin.H{"digest_hex": hex.EncodeToString(digest[:])})
	assert.Equal(t, errno.ErrUnsupportedOp.Code, env.Code)

	_, env, _ = do(t, r, http.MethodPost, "/api/v1/kms/keys", gin.H{"mnemonic": abandonMnemonic, "path": "m/x"})
	assert.Equal(t, errno.ErrBind.Code, env.Code)

	_, env, _ = do(t, r, http.MethodPost, "/api/v1/kms/keys", gin.H{"mnemonic": abandonMnemonic, "type": "AES"})
	assert.Equal(t, errno.ErrInvalidArgument.Code, env.Code)
}

func TestKMSImportKeystoreRoute(t *testing.T) {
	r, _ := newTestRouter(t)

	_, env, _ := do(t, r, http.MethodPost, "/api/v1/keystore/encrypt", gin.H{"mnemonic": abandonMnemonic, "password": "pw"})
	require.Equal(t, errno.OK.Code, env.Code, env.Msg)
	var ks map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &ks))

	_, env, data := do(t, r, http.MethodPost, "/api/v1/kms/keys/import", gin.H{"keystore": ks, "password": "pw"})
	require.Equal(t, errno.OK.Code, env.Code, env.Msg)
	assert.Equal(t, "0x9858EfFD232B4033E47d90003D41EC34EcaEda94", data["eth_address"])

	_, env, _ = do(t, r, http.MethodPost, "/api/v1/kms/keys/import", gin.H{"keystore": ks, "password": "bad"})
	assert.Equal(t, errno.ErrKeystorePassword.Code, env.Code)
}

func TestMetricsRoute(t *testing.T) {
	r, _ := newTestRouter(t)

	do(t, r, http.MethodPost, "/api/v1/hash", gin.H{"algorithm": "md5", "data_hex": ""})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `http_requests_total{method="POST",path="/api/v1/hash",status="200"} 1`)
	assert.Contains(t, body, `keycore_crypto_operations_total{op="hash_md5",result="ok"} 1`)
}
