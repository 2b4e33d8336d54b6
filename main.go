package main

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rafaelbressan/marmitas.top/configs"
	"github.com/rafaelbressan/marmitas.top/notify"
	"github.com/rafaelbressan/marmitas.top/repository"
	"github.com/rafaelbressan/marmitas.top/routes"
	"github.com/rafaelbressan/marmitas.top/services"
	"github.com/rafaelbressan/marmitas.top/ws"
)

func main() {
	cfg := configs.LoadConfig()

	configs.InitLogger(cfg)
	log := configs.Log()
	defer log.Sync()

	configs.ConnectionDB(cfg)
	configs.SetupDatabase()
	db := configs.DB()

	if err := configs.SeedAdmin(); err != nil {
		log.Fatal("seed admin failed", zap.Error(err))
	}

	// Repositories
	users := repository.NewUserRepository(db)
	sellers := repository.NewSellerRepository(db)
	locations := repository.NewSellingLocationRepository(db)
	dishes := repository.NewDishRepository(db)
	menus := repository.NewMenuRepository(db)
	reviews := repository.NewReviewRepository(db)
	favorites := repository.NewFavoriteRepository(db)

	// Notifications: presence hub + log sink behind one dispatcher
	presenceHub := ws.NewPresenceHub(log)
	go presenceHub.Run()
	dispatcher := notify.NewAsyncDispatcher(log, &notify.LogSink{Log: log}, presenceHub)
	defer dispatcher.Close()

	// Services
	authSvc := services.NewAuthService(users, cfg.JWTSecret, cfg.JWTTTL)
	sellerSvc := services.NewSellerService(sellers)
	locationSvc := services.NewSellingLocationService(locations, sellers)
	broadcastSvc := services.NewBroadcastService(db, sellers, locations, dispatcher, log,
		cfg.DefaultBroadcastDuration, cfg.MaxBroadcastDuration)
	dishSvc := services.NewDishService(dishes)
	menuSvc := services.NewMenuService(menus, dishes)
	ratingSvc := services.NewRatingService(reviews, sellers)
	reviewSvc := services.NewReviewService(db, reviews, sellers, menus, ratingSvc, dispatcher, log)
	reviewSvc.EditWindow = cfg.ReviewEditWindow
	reviewSvc.VerifyRadiusKm = cfg.VerifiedEncounterRadiusKm
	reviewSvc.AutoFlagWindow = cfg.AutoFlagWindow
	reviewSvc.OneStarThreshold = cfg.AutoFlagOneStarThreshold
	reviewSvc.VolumeThreshold = cfg.AutoFlagVolumeThreshold
	favoriteSvc := services.NewFavoriteService(db, favorites, dishes, sellers)
	geoSvc := services.NewGeoService(sellers)

	// Broadcasts past leaving_at are also closed lazily on read; the sweep
	// keeps the map honest for sellers nobody touches.
	go func() {
		ticker := time.NewTicker(cfg.BroadcastSweepInterval)
		defer ticker.Stop()
		for range ticker.C {
			broadcastSvc.SweepExpired()
		}
	}()

	// HTTP
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		Cfg: cfg,
		Log: log,

		Auth:      authSvc,
		Sellers:   sellerSvc,
		Locations: locationSvc,
		Broadcast: broadcastSvc,
		Dishes:    dishSvc,
		Menus:     menuSvc,
		Reviews:   reviewSvc,
		Favorites: favoriteSvc,
		Geo:       geoSvc,

		PresenceHub: presenceHub,
	})

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := r.Run(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
