package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"canopy/backend/internal/account/password"
	accountrepo "canopy/backend/internal/account/repository"
	accountusecase "canopy/backend/internal/account/usecase"
	"canopy/backend/internal/audit"
	auditrepo "canopy/backend/internal/audit/repository"
	"canopy/backend/internal/auth"
	authhandler "canopy/backend/internal/auth/handler"
	"canopy/backend/internal/config"
	"canopy/backend/internal/db"
	"canopy/backend/internal/events"
	"canopy/backend/internal/log"
	"canopy/backend/internal/server"
	"canopy/backend/internal/server/middleware"
	userhandler "canopy/backend/internal/user/handler"
	userrepo "canopy/backend/internal/user/repository"
	userusecase "canopy/backend/internal/user/usecase"
	workspacehandler "canopy/backend/internal/workspace/handler"
	workspacerepo "canopy/backend/internal/workspace/repository"
	workspaceusecase "canopy/backend/internal/workspace/usecase"
	memberhandler "canopy/backend/internal/workspacemember/handler"
	memberrepo "canopy/backend/internal/workspacemember/repository"
	memberusecase "canopy/backend/internal/workspacemember/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := log.New(cfg.Env)

	ctx := context.Background()
	pool, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connect failed")
	}
	defer pool.Close()

	authSvc, err := auth.NewService(auth.Config{
		Secret:       cfg.AuthJWTSecret,
		Algorithm:    cfg.AuthJWTAlgorithm,
		Expiration:   cfg.AuthJWTExpiration,
		CookieName:   cfg.AuthCookieName,
		CookieDomain: cfg.AuthCookieDomain,
		KeyID:        cfg.AuthKeyID,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("auth service init failed")
	}

	producer, err := events.NewKafkaProducer(cfg.KafkaBrokersList(), cfg.EventsKafkaTopic, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("kafka producer init failed")
	}
	defer producer.Close()

	auditLog := audit.NewLogger(auditrepo.NewPostgresRepository(pool), middleware.ClientIP, logger)

	accountDeps := accountusecase.Deps{Repository: accountrepo.NewPostgresRepository(pool)}
	userDeps := userusecase.Deps{Repository: userrepo.NewPostgresRepository(pool)}
	workspaceDeps := workspaceusecase.Deps{Repository: workspacerepo.NewPostgresRepository(pool)}
	memberDeps := memberusecase.Deps{Repository: memberrepo.NewPostgresRepository(pool)}

	srv := server.New(server.Options{
		Addr:           cfg.HTTPAddr,
		Environment:    cfg.Env,
		AllowedOrigins: cfg.CORSAllowOriginsList(),
	}, server.Deps{
		Auth:         authSvc,
		Revoker:      audit.NewRevoker(auditLog),
		HealthPinger: pool,
		AuthHandler: authhandler.New(authhandler.Deps{
			Auth:          authSvc,
			Hasher:        password.NewHasher(cfg.BcryptCost),
			GetAccount:    accountusecase.NewGetAccountByProviderAndProviderAccountID(accountDeps),
			CreateAccount: accountusecase.NewCreateAccount(accountDeps),
			GetUser:       userusecase.NewGetUserByID(userDeps),
			CreateUser:    userusecase.NewCreateUser(userDeps),
			Audit:         auditLog,
			Events:        producer,
			Log:           logger,
		}),
		UserHandler: userhandler.New(userhandler.Deps{
			GetUser: userusecase.NewGetUserByID(userDeps),
			Log:     logger,
		}),
		WorkspaceHandler: workspacehandler.New(workspacehandler.Deps{
			CreateWorkspace:    workspaceusecase.NewCreateWorkspace(workspaceDeps),
			GetWorkspaceByID:   workspaceusecase.NewGetWorkspaceByID(workspaceDeps),
			GetUserWorkspaces:  workspaceusecase.NewGetUserWorkspaces(workspaceDeps),
			AddUserToWorkspace: workspaceusecase.NewAddUserToWorkspace(workspaceDeps),
			AddMember:          memberusecase.NewAddWorkspaceMember(memberDeps),
			Audit:              auditLog,
			Events:             producer,
			Log:                logger,
		}),
		MemberHandler: memberhandler.New(memberhandler.Deps{
			GetWorkspaceMembers: memberusecase.NewGetWorkspaceMembers(memberDeps),
			GetMemberWorkspaces: memberusecase.NewGetMemberWorkspaces(memberDeps),
			RemoveMember:        memberusecase.NewRemoveWorkspaceMember(memberDeps),
			Audit:               auditLog,
			Events:              producer,
			Log:                 logger,
		}),
	}, logger)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown incomplete")
	}
	logger.Info().Msg("http server stopped")
}
