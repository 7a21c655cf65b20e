package routes

import (
	"time"

	"furniture_back_end/internal/database"
	"furniture_back_end/internal/handlers/admin"
	"furniture_back_end/internal/handlers/product"
	"furniture_back_end/internal/handlers/user"
	"furniture_back_end/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

type Deps struct {
	Products    *product.Handler
	Members     *user.Handler
	Admin       *admin.Handler
	AdminAuth   middleware.TokenAuthenticator
	Cookies     sessions.Store
	Sessions    *database.SessionStore
	CORSOrigins []string
	Log         *zap.Logger
}

// NewRouter builds the engine with the shared middleware and every route.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(d.Log))
	if len(d.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	RegisterRoutes(r, d)
	return r
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	api := r.Group("/api")

	// Catalog
	api.GET("/products", d.Products.List)
	api.GET("/products/:id", d.Products.Get)
	api.GET("/categories", d.Products.Categories)
	api.GET("/partners", d.Products.Partners)

	member := api.Group("", middleware.Session(d.Cookies, d.Sessions, d.Log))

	// Member auth
	auth := member.Group("/auth")
	auth.POST("/login", d.Members.Login)
	auth.POST("/register", d.Members.Register)
	auth.POST("/logout", d.Members.Logout)
	auth.GET("/me", d.Members.Me)

	// Cart
	cart := member.Group("/cart")
	cart.GET("", d.Members.GetCart)
	cart.DELETE("", d.Members.ClearCart)
	cart.POST("/items", d.Members.AddItem)
	cart.PATCH("/items/:productId", d.Members.UpdateItem)
	cart.DELETE("/items/:productId", d.Members.RemoveItem)
	cart.POST("/discount", d.Members.ApplyDiscount)
	cart.DELETE("/discount", d.Members.RemoveDiscount)
	cart.POST("/checkout", d.Members.Checkout)
	cart.GET("/ws", d.Members.CartWebSocket)

	// Member orders
	orders := member.Group("/orders")
	orders.GET("", d.Members.MyOrders)
	orders.GET("/:id", d.Members.MyOrder)
	orders.GET("/:id/snapshot", d.Members.MyOrderSnapshot)

	// Back office
	api.POST("/admin/login", d.Admin.Login)
	adm := api.Group("/admin", middleware.AdminAuth(d.AdminAuth), middleware.RequireAdmin)
	adm.POST("/logout", d.Admin.Logout)
	adm.GET("/stats", d.Admin.Stats)
	adm.GET("/orders", d.Admin.ListOrders)
	adm.GET("/orders/:id", d.Admin.GetOrder)
	adm.DELETE("/orders/:id", d.Admin.DeleteOrder)
	adm.GET("/orders/:id/snapshot", d.Admin.Snapshot)
	adm.POST("/orders/:id/edit", d.Admin.BeginEdit)
	adm.GET("/orders/:id/draft", d.Admin.Draft)
	adm.PATCH("/orders/:id/draft", d.Admin.UpdateDraft)
	adm.POST("/orders/:id/draft/items", d.Admin.AddDraftItem)
	adm.PATCH("/orders/:id/draft/items/:index", d.Admin.UpdateDraftItem)
	adm.DELETE("/orders/:id/draft/items/:index", d.Admin.RemoveDraftItem)
	adm.POST("/orders/:id/save", d.Admin.Save)
	adm.POST("/orders/:id/cancel", d.Admin.Cancel)
}
