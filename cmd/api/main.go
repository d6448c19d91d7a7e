package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cafepos/internal/config"
	"cafepos/internal/handler"
	"cafepos/internal/infra/cache"
	"cafepos/internal/infra/db"
	infraRepo "cafepos/internal/infra/repository"
	"cafepos/internal/logger"
	"cafepos/internal/repository"
	"cafepos/internal/server"
	"cafepos/internal/usecase"
	auth "cafepos/internal/usecase/auth_usecase"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

// 放置カートの掃除間隔
const sweepInterval = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.GoEnv)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//DB接続
	gormDB, err := db.Connect(cfg.DSN(), !cfg.IsProduction())
	if err != nil {
		return err
	}
	if err := db.Migrate(gormDB); err != nil {
		return err
	}
	sqlxDB, err := db.NewSqlx(gormDB)
	if err != nil {
		return err
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	menuItemRepo := infraRepo.NewMenuItemGormRepository(gormDB)
	transactionRepo := infraRepo.NewTransactionGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	dashboardRepo := infraRepo.NewDashboardSqlxRepository(sqlxDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	//カタログ読み取り（Redisがあればキャッシュ）
	var reader repository.CatalogReader = infraRepo.NewCatalogReaderGorm(categoryRepo, menuItemRepo)
	var invalidator repository.CatalogInvalidator = cache.NoopInvalidator{}
	if cfg.RedisAddr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		cached := cache.NewCachedCatalogReader(reader, client, log)
		reader = cached
		invalidator = cached
		log.Info("catalog cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	sessions := usecase.NewSessionRegistry(cfg.SessionIdleTTL, clock, log)
	go sessions.Run(ctx, sweepInterval)

	receipts := usecase.NewReceiptFormatter(usecase.ShopInfo{
		Name:    cfg.ShopName,
		Address: cfg.ShopAddress,
		Phone:   cfg.ShopPhone,
	}, cfg.Location)

	//bcrypt（ユーザー登録：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	verifier := auth.NewBcryptPasswordVerifier()
	issuer := auth.NewJWTIssuer(cfg.JWTSecret, cfg.AccessTokenTTL)

	//Usecase生成
	loginUC := auth.NewLoginUsecase(userRepo, verifier, issuer, idGen, clock)
	logoutUC := auth.NewLogoutUsecase(userRepo, sessions)
	meUC := auth.NewMeUsecase(userRepo)
	registerUC := auth.NewRegisterUserUsecase(txm, hasher, idGen, clock)

	catalogUC := usecase.NewCatalogUsecase(categoryRepo, menuItemRepo, reader, invalidator, txm, idGen, clock, log)
	auditUC := usecase.NewAuditUsecase(auditRepo, cfg.Location, log)
	orderUC := usecase.NewOrderUsecase(sessions, menuItemRepo)
	checkoutUC := usecase.NewCheckoutUsecase(sessions, txm, receipts, idGen, clock, cfg.Location, log)
	transactionUC := usecase.NewTransactionUsecase(transactionRepo, receipts, cfg.Location, log)
	dashboardUC := usecase.NewDashboardUsecase(dashboardRepo, clock, cfg.Location, log)

	//Handler生成
	h := server.Handlers{
		Auth:         handler.NewAuthHandler(loginUC, logoutUC, meUC),
		AdminUser:    handler.NewAdminUserHandler(registerUC, logoutUC),
		Catalog:      handler.NewCatalogHandler(catalogUC),
		AdminCatalog: handler.NewAdminCatalogHandler(catalogUC, auditUC),
		Order:        handler.NewOrderHandler(orderUC, checkoutUC),
		Transaction:  handler.NewTransactionHandler(transactionUC),
		Dashboard:    handler.NewDashboardHandler(dashboardUC),
	}

	//Server起動
	addr := cfg.Port
	if addr != "" && addr[0] != ':' {
		addr = ":" + addr
	}

	e := server.New(cfg, log, userRepo, h)
	return server.Run(ctx, e, addr, log)
}
