package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/rafaelbressan/marmitas.top/configs"
	"github.com/rafaelbressan/marmitas.top/controllers"
	"github.com/rafaelbressan/marmitas.top/middlewares"
	"github.com/rafaelbressan/marmitas.top/services"
	"github.com/rafaelbressan/marmitas.top/ws"
)

// Deps carries everything the HTTP surface needs wired in.
type Deps struct {
	Cfg *configs.Config
	Log *zap.Logger

	Auth      *services.AuthService
	Sellers   *services.SellerService
	Locations *services.SellingLocationService
	Broadcast *services.BroadcastService
	Dishes    *services.DishService
	Menus     *services.MenuService
	Reviews   *services.ReviewService
	Favorites *services.FavoriteService
	Geo       *services.GeoService

	PresenceHub *ws.PresenceHub
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.Use(middlewares.CORSMiddleware(d.Cfg.AllowedOrigins))
	r.Use(middlewares.RequestID())
	r.Use(middlewares.Observability(d.Log))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authCtl := controllers.NewAuthController(d.Auth)
	sellerCtl := controllers.NewSellerController(d.Sellers, d.Reviews)
	locationCtl := controllers.NewLocationController(d.Locations, d.Broadcast, d.Sellers)
	dishCtl := controllers.NewDishController(d.Dishes, d.Sellers)
	menuCtl := controllers.NewMenuController(d.Menus, d.Dishes, d.Sellers)
	reviewCtl := controllers.NewReviewController(d.Reviews)
	favoriteCtl := controllers.NewFavoriteController(d.Favorites)
	adminCtl := controllers.NewAdminController(d.Reviews, d.Sellers)
	mapCtl := controllers.NewMapController(d.Geo)

	authed := middlewares.AuthMiddleware(d.Cfg.JWTSecret, false)
	adminOnly := middlewares.AuthMiddleware(d.Cfg.JWTSecret, true)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtl.Register)
		a.POST("/login", authCtl.Login)
	}

	// Auth (protected)
	aAuth := a.Group("", authed)
	{
		aAuth.GET("/me", authCtl.Me)
		aAuth.PATCH("/me", authCtl.UpdateMe)
		aAuth.POST("/devices", authCtl.RegisterDevice)
		aAuth.DELETE("/devices", authCtl.RemoveDevice)
	}

	// Public catalog
	r.GET("/sellers", sellerCtl.List)
	r.GET("/sellers/:id", sellerCtl.Show)
	r.GET("/sellers/:id/reviews", reviewCtl.ListForSeller)
	r.GET("/sellers/:id/dishes", dishCtl.ListForSeller)
	r.GET("/sellers/:id/menu", menuCtl.Current)

	// Map
	r.GET("/map/sellers", mapCtl.Sellers)
	r.GET("/map/bounds", mapCtl.Bounds)

	// Reviews (user)
	u := r.Group("/", authed)
	{
		u.POST("/reviews", reviewCtl.Create)
		u.GET("/reviews/:id", reviewCtl.Show)
		u.PATCH("/reviews/:id", reviewCtl.Update)
		u.DELETE("/reviews/:id", reviewCtl.Delete)
		u.POST("/reviews/:id/flag", reviewCtl.Flag)
		u.POST("/reviews/:id/helpful", reviewCtl.ToggleHelpful)

		u.POST("/favorites/toggle", favoriteCtl.Toggle)
		u.GET("/favorites", favoriteCtl.List)
	}

	// Profile
	profile := r.Group("/profile", authed)
	{
		profile.GET("/reviews", reviewCtl.Mine)
	}

	// Seller dashboard
	seller := r.Group("/seller", authed)
	{
		seller.POST("/profile", sellerCtl.CreateProfile)
		seller.GET("/profile", sellerCtl.MyProfile)
		seller.PATCH("/profile", sellerCtl.UpdateMyProfile)

		seller.GET("/locations", locationCtl.List)
		seller.POST("/locations", locationCtl.Create)
		seller.PATCH("/locations/:id", locationCtl.Update)
		seller.DELETE("/locations/:id", locationCtl.Delete)

		seller.POST("/arrive", locationCtl.Arrive)
		seller.POST("/leave", locationCtl.Leave)
		seller.GET("/status", locationCtl.Status)

		seller.GET("/dishes", dishCtl.ListMine)
		seller.POST("/dishes", dishCtl.Create)
		seller.PATCH("/dishes/:id", dishCtl.Update)
		seller.DELETE("/dishes/:id", dishCtl.Delete)

		seller.GET("/menus", menuCtl.List)
		seller.POST("/menus", menuCtl.Create)
		seller.PATCH("/menus/:id", menuCtl.Update)
		seller.DELETE("/menus/:id", menuCtl.Delete)
		seller.POST("/menus/:id/restore", menuCtl.Restore)
		seller.POST("/menus/:id/duplicate", menuCtl.Duplicate)
		seller.POST("/menus/:id/dishes", menuCtl.AddDish)
		seller.DELETE("/menu-dishes/:menuDishId", menuCtl.RemoveDish)
		seller.POST("/menu-dishes/:menuDishId/consume", menuCtl.Consume)
		seller.POST("/menu-dishes/:menuDishId/restock", menuCtl.Restock)
	}

	// Admin (admin only)
	admin := r.Group("/admin", adminOnly)
	{
		admin.GET("/reviews/queue", adminCtl.ModerationQueue)
		admin.POST("/reviews/:id/approve", adminCtl.ApproveReview)
		admin.POST("/reviews/:id/remove", adminCtl.RemoveReview)
		admin.PATCH("/sellers/:id/verify", adminCtl.VerifySeller)
	}

	// WebSocket presence feed
	r.GET("/ws/presence", middlewares.WSAuthMiddleware(d.Cfg.JWTSecret), d.PresenceHub.HandleWebSocket)
}
