package main

import (
	"context"
	"log"
	"os"
	"time"

	"pantrypal/internal/auth"
	"pantrypal/internal/community"
	"pantrypal/internal/db"
	"pantrypal/internal/inventory"
	"pantrypal/internal/llm"
	"pantrypal/internal/middleware"
	"pantrypal/internal/ranking"
	"pantrypal/internal/reports"
	"pantrypal/internal/risk"
	"pantrypal/internal/storage"
	"pantrypal/internal/waste"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const riskRecomputeInterval = 6 * time.Hour

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"JWT_SECRET",
		"DATABASE_URL",
		"R2_ACCESS_KEY",
		"R2_SECRET_KEY",
		"R2_BUCKET_NAME",
		"R2_ENDPOINT",
		"R2_PUBLIC_BASE_URL",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── STORAGE ─────────────────────────
	r2Client, err := storage.NewR2Client(context.Background())
	if err != nil {
		log.Fatal("❌ R2 init failed:", err)
	}

	// ───────────────────────── LLM ─────────────────────────
	llmClient := llm.NewFromEnv()

	// ───────────────────────── AUTH ─────────────────────────
	userRepo := auth.NewPostgresUserRepository(pgDB)
	authService := auth.NewService(userRepo)
	authHandler := auth.NewHandler(authService)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// ───────────────────────── REPOS ─────────────────────────
	inventoryRepo := inventory.NewPostgresRepository(pgDB)
	riskRepo := risk.NewPostgresRepository(pgDB)
	rankingRepo := ranking.NewPostgresRepository(pgDB)
	wasteRepo := waste.NewPostgresRepository(pgDB)
	communityRepo := community.NewPostgresRepository(pgDB)

	// ───────────────────────── SERVICES ─────────────────────────
	inventoryService := inventory.NewService(inventoryRepo)
	riskPredictor := risk.NewPredictor(riskRepo, llmClient)
	rankingService := ranking.NewService(rankingRepo)
	wasteEstimator := waste.NewEstimator(wasteRepo)
	comparator := community.NewComparator(communityRepo, llmClient)
	reportService := reports.NewService(wasteRepo, r2Client)

	// ───────────────────────── HANDLERS ─────────────────────────
	inventoryHandler := inventory.NewHandler(inventoryService)
	riskHandler := risk.NewHandler(riskPredictor)
	rankingHandler := ranking.NewHandler(rankingService)
	wasteHandler := waste.NewHandler(wasteEstimator)
	communityHandler := community.NewHandler(comparator, wasteEstimator)
	reportHandler := reports.NewHandler(reportService)

	// ───────────────────────── INVENTORY ROUTES ─────────────────────────
	inventoryGroup := r.Group("/inventory")
	inventoryGroup.Use(middleware.AuthMiddleware())
	{
		inventoryGroup.POST("", inventoryHandler.Create)
		inventoryGroup.GET("", inventoryHandler.List)
		inventoryGroup.PUT("/:id", inventoryHandler.Update)
		inventoryGroup.DELETE("/:id", inventoryHandler.Delete)
		inventoryGroup.POST("/bulk", inventoryHandler.BulkCreate)
	}

	usage := r.Group("/usage")
	usage.Use(middleware.AuthMiddleware())
	{
		usage.POST("", inventoryHandler.LogUsage)
	}

	// ───────────────────────── RISK ROUTES ─────────────────────────
	riskGroup := r.Group("/risk")
	riskGroup.Use(middleware.AuthMiddleware())
	{
		riskGroup.POST("/calculate", riskHandler.Calculate)
		riskGroup.GET("/scores", riskHandler.Scores)
	}

	// ───────────────────────── PRIORITY ROUTES ─────────────────────────
	priorities := r.Group("/priorities")
	priorities.Use(middleware.AuthMiddleware())
	{
		priorities.GET("", rankingHandler.Prioritize)
		priorities.GET("/top", rankingHandler.Top)
	}

	// ───────────────────────── WASTE ROUTES ─────────────────────────
	wasteGroup := r.Group("/waste")
	wasteGroup.Use(middleware.AuthMiddleware())
	{
		wasteGroup.GET("/estimate", wasteHandler.Estimate)
		wasteGroup.GET("/projection/weekly", wasteHandler.WeeklyProjection)
		wasteGroup.GET("/projection/monthly", wasteHandler.MonthlyProjection)
		wasteGroup.POST("/records", wasteHandler.CreateRecord)
		wasteGroup.POST("/records/bulk", wasteHandler.BulkCreateRecords)
		wasteGroup.GET("/patterns", wasteHandler.Patterns)
		wasteGroup.GET("/history", wasteHandler.History)
	}

	// ───────────────────────── COMMUNITY ROUTES ─────────────────────────
	communityGroup := r.Group("/community")
	communityGroup.Use(middleware.AuthMiddleware())
	{
		communityGroup.GET("/comparison", communityHandler.Comparison)
		communityGroup.GET("/insights", communityHandler.Insights)
		communityGroup.GET("/averages", communityHandler.Averages)
	}

	// ───────────────────────── REPORT ROUTES ─────────────────────────
	reportGroup := r.Group("/reports")
	reportGroup.Use(middleware.AuthMiddleware())
	{
		reportGroup.POST("/waste", reportHandler.CreateWasteReport)
	}

	// ───────────────────────── ADMIN ROUTES ─────────────────────────
	admin := r.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole("ADMIN"),
	)
	{
		admin.POST("/community/recompute", communityHandler.Recompute)
	}

	// ───────────────────────── BACKGROUND WORKERS ─────────────────────────
	risk.StartRecomputeWorker(riskPredictor, riskRecomputeInterval)

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── START ─────────────────────────
	log.Println("🚀 API running at http://localhost:8000")
	r.Run(":8000")
}
