package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wallet-keycore/internal/handler"
	"wallet-keycore/internal/server"
	"wallet-keycore/internal/service"
	"wallet-keycore/pkg/config"
	"wallet-keycore/pkg/keystore"
	"wallet-keycore/pkg/kms"
	"wallet-keycore/pkg/logger"
	"wallet-keycore/pkg/monitor"
	"wallet-keycore/pkg/secp256k1"
	"wallet-keycore/pkg/validator"

	_ "wallet-keycore/docs/swagger"
)

// @title Wallet Keycore API
// @version 1.0
// @description Hash, PBKDF2, BIP-39, keystore and secp256k1 signing API

// @host localhost:8080
// @BasePath /
func main() {
	// 0. 初始化 Config
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Global

	// 1. 初始化 Logger
	if err := logger.Init(cfg.App.Env, cfg.App.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	validator.Init()
	metrics := monitor.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. 组装服务，整个进程共享一个曲线参数对象
	curve := secp256k1.NewCurve()
	localKMS := kms.NewLocalKMS(curve)

	cryptoService := service.NewCryptoService(curve, metrics)
	mnemonicService := service.NewMnemonicService(cfg.Bip39, cfg.Keystore, metrics)
	keyService := service.NewKeyService(localKMS, cfg.KMS.DefaultPath, metrics)

	// 3. 启动时导入本地 Keystore（可选）
	if err := importKeystore(ctx, keyService, cfg); err != nil {
		logger.Fatal("导入 Keystore 失败", zap.Error(err), zap.String("path", cfg.Keystore.Path))
	}

	// 4. HTTP
	r := server.NewHTTPRouter(server.Handlers{
		Crypto:   handler.NewCryptoHandler(cryptoService),
		Mnemonic: handler.NewMnemonicHandler(mnemonicService),
		KMS:      handler.NewKMSHandler(keyService),
	}, metrics, nil)

	app := server.New(server.Config{HttpPort: cfg.App.HttpPort}, r)
	if err := app.Run(ctx); err != nil {
		logger.Fatal("HTTP Server failure", zap.Error(err))
	}
}

// importKeystore 文件不存在时跳过；存在则必须配置密码
func importKeystore(ctx context.Context, keys service.KeyService, cfg config.Config) error {
	if cfg.Keystore.Path == "" {
		return nil
	}
	ks, err := keystore.LoadFromFile(cfg.Keystore.Path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Info("未找到 Keystore 文件，跳过导入", zap.String("path", cfg.Keystore.Path))
		return nil
	}
	if err != nil {
		return err
	}
	if cfg.Keystore.Password == "" {
		return errors.New("keystore.password 未配置 (KEYSTORE_PASSWORD)")
	}

	info, err := keys.ImportKeystore(ctx, ks, cfg.Keystore.Password, cfg.KMS.DefaultPath)
	if err != nil {
		return err
	}
	logger.Info("Keystore 已导入 KMS",
		zap.String("key_id", info.KeyID),
		zap.String("path", info.Path),
		zap.String("eth_address", info.ETHAddress),
	)
	return nil
}
