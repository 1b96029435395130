package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"agriplan/config"
	"agriplan/database"
	"agriplan/pkg/catalog"
	"agriplan/pkg/kvstore"
	"agriplan/pkg/logger"
	"agriplan/pkg/middleware"
	"agriplan/pkg/recommend"
	"agriplan/router"

	assistantCtrlImp "agriplan/pkg/assistant/controllerImp"
	assistantSvcImp "agriplan/pkg/assistant/serviceImp"
	authCtrlImp "agriplan/pkg/auth/controllerImp"
	catalogCtrlImp "agriplan/pkg/catalog/controllerImp"
	cropCtrlImp "agriplan/pkg/crop/controllerImp"
	cropRepoImp "agriplan/pkg/crop/repositoryImp"
	cropSvcImp "agriplan/pkg/crop/serviceImp"
	fieldCtrlImp "agriplan/pkg/field/controllerImp"
	fieldRepoImp "agriplan/pkg/field/repositoryImp"
	fieldSvcImp "agriplan/pkg/field/serviceImp"
	healthCtrlImp "agriplan/pkg/health/controllerImp"
	kbCtrlImp "agriplan/pkg/kb/controllerImp"
	kbRepoImp "agriplan/pkg/kb/repositoryImp"
	kbSvcImp "agriplan/pkg/kb/serviceImp"
	planCtrlImp "agriplan/pkg/plan/controllerImp"
	planRepoImp "agriplan/pkg/plan/repositoryImp"
	planSvcImp "agriplan/pkg/plan/serviceImp"
	profileCtrlImp "agriplan/pkg/profile/controllerImp"
	profileSvcImp "agriplan/pkg/profile/serviceImp"
	recommendCtrlImp "agriplan/pkg/recommend/controllerImp"
	schedCtrlImp "agriplan/pkg/schedule/controllerImp"
	schedRepoImp "agriplan/pkg/schedule/repositoryImp"
	schedSvcImp "agriplan/pkg/schedule/serviceImp"
	soilCtrlImp "agriplan/pkg/soil/controllerImp"
	soilRepoImp "agriplan/pkg/soil/repositoryImp"
	soilSvcImp "agriplan/pkg/soil/serviceImp"
)

func main() {
	// 1) Config + logger
	cfg := config.Load()
	if err := logger.Init(cfg.Env, cfg.LogLevel); err != nil {
		_ = logger.Init(cfg.Env, "")
		logger.Warn("bad LOG_LEVEL, using default", zap.String("level", cfg.LogLevel), zap.Error(err))
	}
	defer logger.Sync()
	logger.Info("config loaded", cfg.Fields()...)

	// 2) Catalog, optionally patched from YAML
	cat, err := catalog.LoadOverrides(cfg.CatalogOverrides)
	if err != nil {
		logger.Fatal("catalog overrides", zap.String("path", cfg.CatalogOverrides), zap.Error(err))
	}

	// 3) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 4) Recommender
	rec, err := recommend.Build(cfg.RecommenderRuleset, cfg.RecommenderURL, cat)
	if err != nil {
		logger.Fatal("recommender", zap.String("ruleset", cfg.RecommenderRuleset), zap.Error(err))
	}

	// 5) Services
	now := time.Now
	kv := kvstore.New(db)
	profiles := profileSvcImp.NewProfileService(kv, cat)
	soil := soilSvcImp.NewSoilService(soilRepoImp.New(db))
	notes := kbSvcImp.New(kbRepoImp.New(db))
	fieldRepo := fieldRepoImp.New(db)
	crops := cropSvcImp.NewCropServiceWithClock(cropRepoImp.New(db), cat, now)
	activities := schedSvcImp.NewActivityService(schedRepoImp.New(db), now)
	plans := planSvcImp.NewPlanService(planRepoImp.New(db), profiles, fieldRepo, cat)
	assistant := assistantSvcImp.NewAssistantService(assistantSvcImp.Deps{
		Recommender: rec,
		Soil:        soil,
		Profile:     profiles,
		Notes:       notes,
		Catalog:     cat,
	})

	// 6) Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestID())
	e.Use(middleware.RequestLog(logger.Named("http")))
	if _, err := os.Stat(filepath.Join(cfg.StaticDir, "index.html")); err == nil {
		e.Static("/static", cfg.StaticDir)
		e.File("/", filepath.Join(cfg.StaticDir, "index.html"))
	}

	router.New(e, router.Controllers{
		Auth:      authCtrlImp.NewAuthController(kv),
		Health:    healthCtrlImp.NewHealthCtrl(db, cat, cfg.RecommenderRuleset),
		Catalog:   catalogCtrlImp.New(cat),
		Recommend: recommendCtrlImp.New(rec),
		Plan:      planCtrlImp.NewPlanCtrl(plans),
		Profile:   profileCtrlImp.New(profiles),
		Field:     fieldCtrlImp.New(fieldSvcImp.NewFieldService(fieldRepo, cat)),
		Crop:      cropCtrlImp.New(crops),
		Activity:  schedCtrlImp.New(activities),
		Soil:      soilCtrlImp.New(soil),
		Assistant: assistantCtrlImp.New(assistant),
		KB:        kbCtrlImp.New(notes, cfg.KBAllowedDomains, cfg.KBMaxBytesPerPage),
	}, cfg.RequireSession)

	// 7) Start, stop on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		logger.Info("listening", zap.String("port", cfg.Port))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server", zap.Error(err))
		}
	}()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
