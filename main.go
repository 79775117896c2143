// main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"go-ballpark/config"
	"go-ballpark/controllers"
	"go-ballpark/logger"
	"go-ballpark/metrics"
	"go-ballpark/middleware"
	"go-ballpark/models"
	"go-ballpark/services"
	"go-ballpark/viewstate"
	"go-ballpark/websocket"
)

const sessionName = "ballpark"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logger.InitLogger(cfg.LogDir); err != nil {
		log.Fatalf("Failed to initialise logger: %v", err)
	}
	logger.SetLogLevel(cfg.Env)

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	models.Location = cfg.Location
	viewstate.Strict = !cfg.Production()
	controllers.Location = cfg.Location
	controllers.SetConfig(cfg.ApplicationURL, cfg.WebsocketURL)

	stop := make(chan struct{})

	var publisher metrics.Publisher = metrics.Noop{}
	if cfg.MetricsEnabled {
		cw, err := metrics.NewCloudWatch()
		if err != nil {
			logger.Error.Printf("CloudWatch unavailable, metrics disabled: %v", err)
		} else {
			go cw.Run(stop)
			publisher = cw
		}
	}

	hub := websocket.NewHub([]string{cfg.ApplicationURL}, metrics.ConnectionGauge(publisher))
	go hub.Run(stop)

	httpClient := &http.Client{Timeout: 15 * time.Second}
	if cfg.TracingEnabled {
		httpClient = xray.Client(httpClient)
	}
	visitors := services.NewVisitorService(services.VisitorConfig{
		APIBaseURL: cfg.APIBaseURL,
		APIToken:   cfg.APIToken,
		HTTPClient: httpClient,
		Observer:   metrics.APIObserver(publisher),
		Workspace: viewstate.WorkspaceConfig{
			CommentsPageSize: cfg.CommentsPageSize,
			DebounceDelay:    cfg.DebounceDelay,
			Location:         cfg.Location,
		},
	}, websocket.NewMessenger(hub))
	visitors.StartSweeper(time.Minute, cfg.VisitorIdleTimeout, stop)
	go reportVisitors(publisher, visitors, time.Minute, stop)

	router, err := setupRouter(cfg, visitors, hub)
	if err != nil {
		log.Fatalf("Failed to set up router: %v", err)
	}

	var handler http.Handler = router
	if cfg.TracingEnabled {
		handler = xray.Handler(xray.NewFixedSegmentNamer("go-ballpark"), router)
	}
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info.Printf("Listening on %s (env=%s)", srv.Addr, cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to run server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info.Println("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error.Printf("Server shutdown: %v", err)
	}
	close(stop)
}

// reportVisitors publishes the number of live visitors every interval.
func reportVisitors(pub metrics.Publisher, visitors services.VisitorServiceInterface, interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			metrics.VisitorGauge(pub, visitors.Count())
		case <-stop:
			return
		}
	}
}

// setupRouter builds the engine: sessions, templates, static files and every
// route.
func setupRouter(cfg *config.Config, visitors services.VisitorServiceInterface, hub *websocket.Hub) (*gin.Engine, error) {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	hashKey, blockKey, err := cfg.SessionKeys()
	if err != nil {
		return nil, err
	}
	store := cookie.NewStore(hashKey, blockKey)
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   cfg.Production(),
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions(sessionName, store))

	router.SetFuncMap(controllers.TemplateFuncs(cfg.Location))
	router.LoadHTMLGlob(filepath.Join(cfg.TemplatesDir, "*.html"))
	router.Static("/static", "./static")

	router.GET("/health", controllers.Health)

	router.Use(middleware.Visitor(visitors))

	realtime := controllers.NewRealtimeController(hub)
	router.GET("/ws", realtime.Connect)
	router.POST("/heartbeat", controllers.Heartbeat)

	// Public routes
	router.GET("/", controllers.ShowSchedule)
	router.GET("/games/:id", controllers.ShowGame)
	router.GET("/games/:id/qrcode", controllers.GetQRCode)
	router.GET("/rankings", controllers.ShowRankings)
	router.GET("/login", controllers.ShowLoginPage)
	router.POST("/login", controllers.PerformLogin)
	router.POST("/logout", controllers.Logout)
	router.GET("/register", controllers.ShowRegisterPage)
	router.POST("/register", controllers.PerformRegister)
	router.POST("/register/check", controllers.CheckField)

	// Signed-in routes
	member := router.Group("/", middleware.AuthRequired)
	{
		member.POST("/games/:id/comments", controllers.AddComment)
		member.POST("/games/:id/comments/:commentId", controllers.UpdateComment)
		member.POST("/games/:id/comments/:commentId/edit", controllers.StartCommentEdit)
		member.POST("/games/:id/comments/:commentId/delete", controllers.RequestCommentDelete)
		member.POST("/games/:id/comments/edit/cancel", controllers.CancelCommentEdit)
		member.POST("/games/:id/comments/delete/cancel", controllers.CancelCommentDelete)
		member.POST("/games/:id/comments/delete/confirm", controllers.ConfirmCommentDelete)

		member.GET("/profile", controllers.ShowProfile)
		member.POST("/profile", controllers.UpdateProfile)
		member.POST("/profile/edit", controllers.StartProfileEdit)
		member.POST("/profile/edit/cancel", controllers.CancelProfileEdit)
		member.POST("/profile/password", controllers.ChangePassword)
		member.POST("/profile/withdraw", controllers.RequestWithdraw)
		member.POST("/profile/withdraw/cancel", controllers.CancelWithdraw)
		member.POST("/profile/withdraw/confirm", controllers.ConfirmWithdraw)
	}

	// Admin routes
	admin := router.Group("/", middleware.AdminRequired())
	{
		admin.POST("/games", controllers.CreateGame)
		admin.POST("/games/crawl", controllers.CrawlGames)
		admin.POST("/games/:id", controllers.UpdateGame)
		admin.POST("/games/:id/edit", controllers.StartGameEdit)
		admin.POST("/games/:id/edit/cancel", controllers.CancelGameEdit)
		admin.POST("/games/:id/delete", controllers.RequestGameDelete)
		admin.POST("/games/:id/delete/cancel", controllers.CancelGameDelete)
		admin.POST("/games/:id/delete/confirm", controllers.ConfirmGameDelete)
		admin.POST("/games/:id/lineups/crawl", controllers.CrawlLineups)
		admin.POST("/games/:id/lineups/:side", controllers.EditLineup)
		admin.POST("/games/:id/lineups/:side/edit", controllers.StartLineupEdit)
		admin.POST("/games/:id/lineups/:side/cancel", controllers.CancelLineupEdit)

		admin.POST("/rankings", controllers.CreateRanking)
		admin.POST("/rankings/crawl", controllers.CrawlRankings)
		admin.POST("/rankings/calculate", controllers.CalculateRankings)
		admin.POST("/rankings/:id", controllers.UpdateRanking)
		admin.POST("/rankings/:id/delete", controllers.RequestRankingDelete)
		admin.POST("/rankings/delete/cancel", controllers.CancelRankingDelete)
		admin.POST("/rankings/delete/confirm", controllers.ConfirmRankingDelete)

		admin.GET("/admin/teams", controllers.ShowTeams)
		admin.POST("/admin/teams", controllers.SaveTeam)
		admin.POST("/admin/teams/:id", controllers.SaveTeam)
		admin.POST("/admin/teams/:id/delete", controllers.RequestTeamDelete)
		admin.POST("/admin/teams/delete/cancel", controllers.CancelTeamDelete)
		admin.POST("/admin/teams/delete/confirm", controllers.ConfirmTeamDelete)

		admin.GET("/admin/members", controllers.ShowMembers)
		admin.POST("/admin/members/:id", controllers.UpdateMember)
		admin.POST("/admin/members/:id/edit", controllers.StartMemberEdit)
		admin.POST("/admin/members/:id/delete", controllers.RequestMemberDelete)
		admin.POST("/admin/members/edit/cancel", controllers.CancelMemberEdit)
		admin.POST("/admin/members/delete/cancel", controllers.CancelMemberDelete)
		admin.POST("/admin/members/delete/confirm", controllers.ConfirmMemberDelete)
		admin.POST("/admin/members/ban/:username", controllers.OpenBan)
		admin.POST("/admin/members/ban/cancel", controllers.CancelBan)
		admin.POST("/admin/members/ban/confirm", controllers.ConfirmBan)
		admin.POST("/admin/members/unban/:username", controllers.Unban)
	}

	return router, nil
}
