package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	grpchealth "google.golang.org/grpc/health"

	"github.com/rahulthapa9024/basic-app/internal/api/grpc/health"
	grpcrouter "github.com/rahulthapa9024/basic-app/internal/api/grpc/router"
	grpcserver "github.com/rahulthapa9024/basic-app/internal/api/grpc/server"
	httpcontext "github.com/rahulthapa9024/basic-app/internal/api/http/context"
	"github.com/rahulthapa9024/basic-app/internal/api/http/cookie"
	httprouter "github.com/rahulthapa9024/basic-app/internal/api/http/router"
	httpserver "github.com/rahulthapa9024/basic-app/internal/api/http/server"
	"github.com/rahulthapa9024/basic-app/internal/config"
	"github.com/rahulthapa9024/basic-app/internal/logger"
	"github.com/rahulthapa9024/basic-app/internal/mail"
	"github.com/rahulthapa9024/basic-app/internal/model"
	"github.com/rahulthapa9024/basic-app/internal/repository/memory"
	"github.com/rahulthapa9024/basic-app/internal/repository/postgres"
	"github.com/rahulthapa9024/basic-app/internal/repository/redis"
	"github.com/rahulthapa9024/basic-app/internal/secret"
	"github.com/rahulthapa9024/basic-app/internal/server"
	"github.com/rahulthapa9024/basic-app/internal/service"
	storage "github.com/rahulthapa9024/basic-app/internal/storage/minio"
	"github.com/rahulthapa9024/basic-app/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	if err := secret.Apply(ctx, cfg); err != nil {
		log.Fatalf("failed to read secrets: %v", err)
	}
	if err := cfg.CheckSecrets(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	newLogger := logger.New
	if cfg.IsProduction() {
		newLogger = logger.NewProduction
	}
	logger := newLogger(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	redisClient, err := redis.NewClient(ctx, redis.Options{
		Addr:     cfg.Redis.Addr,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Fatal("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	deps := map[string]model.Pinger{
		"postgres": db,
		"redis":    redis.Pinger{Client: redisClient},
	}

	userRepo := postgres.NewUserRepository(db)
	revocationRepo := redis.NewRevocationRepository(redisClient)

	var otpStore model.OTPStore = memory.NewOTPRepository()
	if cfg.OTP.Store == config.OTPStoreRedis {
		otpStore = redis.NewOTPRepository(redisClient)
	}

	mailer, err := newMailer(cfg.SMTP, logger)
	if err != nil {
		logger.Fatal("failed to initialize mailer", "error", err)
	}

	var avatarStorage model.Storage
	if cfg.Storage.Enabled {
		storageClient, err := storage.NewClient(ctx, storage.Options{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			UseSSL:    cfg.Storage.UseSSL,
		})
		if err != nil {
			logger.Fatal("failed to initialize storage client", "error", err)
		}
		avatarStorage = storageClient
		deps["minio"] = storageClient
	}

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)
	tokenService := service.NewTokenService(tokenManager, revocationRepo, logger)
	authService := service.NewAuth(
		userRepo,
		otpStore,
		tokenService,
		mailer,
		service.NewDigitCodeGenerator(cfg.OTP.Length),
		cfg.OTP.TTL,
		logger,
	)
	avatarService := service.NewAvatar(avatarStorage, logger)

	httpRouter := httprouter.New(authService, avatarService, httpcontext.NewManager(), httprouter.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Production:     cfg.IsProduction(),
		Cookies:        cookie.NewManager(cfg.IsProduction(), cfg.JWT.TTL),
	}, logger)
	httpSrv := httpserver.NewHTTPServer(httpRouter.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port), cfg.HTTP.ReadHeaderTimeout)

	healthServer := grpchealth.NewServer()
	grpcSrv := grpcserver.NewGRPCServer(grpcrouter.New(healthServer, logger).Register(), fmt.Sprintf(":%s", cfg.GRPC.Port))

	sl := server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	servers := []model.Server{httpSrv, grpcSrv}

	var wg sync.WaitGroup
	for _, s := range servers {
		wg.Add(1)
		go func(s model.Server) {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				stop()
			}
		}(s)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		health.NewChecker(healthServer, deps, cfg.GRPC.HealthInterval, logger).Run(ctx)
	}()

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func newMailer(cfg config.SMTP, logger *logger.Logger) (model.Mailer, error) {
	if cfg.Host == "" {
		logger.Warn("SMTP host is not set, one-time passwords are written to the log")
		return mail.NewLogMailer(logger), nil
	}
	return mail.NewSMTPMailer(mail.SMTPOptions{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
		From:     cfg.From,
	}, logger)
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
