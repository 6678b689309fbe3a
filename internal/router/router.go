package router

import (
	"net/http"

	"socialfeed/internal/config"
	"socialfeed/internal/handlers"
	"socialfeed/internal/log"
	"socialfeed/internal/media"
	"socialfeed/internal/middleware"
	"socialfeed/internal/presenter"
	"socialfeed/internal/services"
	"socialfeed/internal/store"
	"socialfeed/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const sessionName = "socialfeed_session"

// New wires the services over st and returns the HTTP engine.
func New(cfg *config.Config, st store.Store) (*gin.Engine, error) {
	mediaStore, err := media.NewStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}
	feeds, err := utils.NewTTLCache[*store.Feed](cfg.FeedCacheSize, cfg.FeedCacheTTL)
	if err != nil {
		return nil, err
	}

	accounts := services.NewAccountService(st, mediaStore, feeds, cfg.BcryptCost)
	content := services.NewContentService(st, st, mediaStore, feeds)
	formatter := presenter.NewFormatter(cfg.Location())
	metrics := middleware.NewMetrics()

	r := gin.New()
	r.MaxMultipartMemory = cfg.MaxUploadBytes()
	r.Use(
		gin.Recovery(),
		log.DefaultGinLoggerMiddleware(middleware.CurrentUserID),
		metrics.Middleware(),
	)

	secret := cfg.SessionSecret
	if secret == "" {
		log.Warnf("SESSION_SECRET is not set, using an insecure default")
		secret = "secret_key_change_me"
	}
	r.Use(sessions.Sessions(sessionName, cookie.NewStore([]byte(secret))))
	r.Use(middleware.LoadUser(st))

	registerRoutes(r, routeHandlers{
		account: handlers.NewAccountHandler(accounts, cfg.MaxUploadBytes()),
		post:    handlers.NewPostHandler(content, formatter, cfg.MaxUploadBytes()),
	})
	r.Static("/uploads", mediaStore.Dir())
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	return r, nil
}

type routeHandlers struct {
	account *handlers.AccountHandler
	post    *handlers.PostHandler
}

func registerRoutes(r *gin.Engine, h routeHandlers) {
	// accounts
	r.POST("/register", h.account.Register)
	r.PUT("/update/:id", h.account.Update)
	r.POST("/login", h.account.Login)
	r.POST("/logout", h.account.Logout)
	r.GET("/me", h.account.Me)

	// posts, comments and likes
	r.POST("/create", h.post.Create)
	r.POST("/comment/:postId", h.post.Comment)
	r.POST("/comment/reply/:commentId", h.post.Reply)
	r.POST("/comment/like/:commentId", h.post.LikeComment)
	r.POST("/like/:postId", h.post.LikePost)
	r.GET("/post/all", h.post.ListAll)
	r.GET("/post/byUser/:userId", h.post.ListByUser)
}
