package routers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ArpitBagaria/dist-backend/internal/app/pkg/logger"
	"github.com/ArpitBagaria/dist-backend/internal/app/server/handlers/approval"
	"github.com/ArpitBagaria/dist-backend/internal/app/server/handlers/prmsync"
	"github.com/ArpitBagaria/dist-backend/internal/app/server/handlers/product"
	"github.com/ArpitBagaria/dist-backend/internal/app/server/handlers/report"
	"github.com/ArpitBagaria/dist-backend/internal/app/server/handlers/retailer"
	"github.com/ArpitBagaria/dist-backend/internal/app/server/handlers/tally"
	"github.com/ArpitBagaria/dist-backend/internal/app/server/middlewares"
)

// SetupRoutes 配置所有路由，使用 Route Group 分类
func SetupRoutes(
	approvalHandler *approval.ApprovalHandler,
	productHandler *product.ProductHandler,
	tallyHandler *tally.TallyHandler,
	reportHandler *report.ReportHandler,
	prmSyncHandler *prmsync.PrmSyncHandler,
	retailerHandler *retailer.RetailerHandler,
	log logger.Logger,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middlewares.CORS())
	r.Use(middlewares.Logger(log))
	r.Use(middlewares.ErrorHandler())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	v1 := r.Group("/api/v1")
	{
		approvals := v1.Group("/approvals")
		{
			approvals.POST("/evaluate", approvalHandler.Evaluate)
		}

		products := v1.Group("/products")
		{
			products.PUT("/prices", productHandler.UpdatePrices)
			products.GET("/price-history", productHandler.PriceHistory)
		}

		tallyGroup := v1.Group("/tally")
		{
			tallyGroup.GET("/closing-balance", tallyHandler.ClosingBalance)
			tallyGroup.POST("/sync", tallyHandler.Sync)
			tallyGroup.GET("/cache", tallyHandler.Cache)
		}

		reports := v1.Group("/reports")
		{
			reports.GET("/negative", reportHandler.Negative)
		}

		prmSync := v1.Group("/prm-sync")
		{
			prmSync.POST("/run", prmSyncHandler.Run)
			prmSync.GET("/logs", prmSyncHandler.Logs)
		}

		v1.GET("/retailers", retailerHandler.List)
	}

	return r
}
