package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/cep-market-client/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Reconciled NFT views (public read access)
		v1.GET("/nfts", handler.ListNFTs)
		v1.GET("/nfts/owned", handler.ListOwnedNFTs)
		v1.GET("/nfts/:id", handler.GetNFT)

		// Unsigned deploys for the wallet to sign
		v1.POST("/deploys/mint", handler.PrepareMint)
		v1.POST("/deploys/burn", handler.PrepareBurn)
		v1.POST("/deploys/transfer", handler.PrepareTransfer)
		v1.POST("/deploys/approve", handler.PrepareApprove)
		v1.POST("/deploys/listings", handler.PrepareCreateListing)
		v1.POST("/deploys/sales", handler.PrepareProcessSale)

		// Signed deploy submission and finality
		v1.POST("/deploys", handler.SubmitDeploy)
		v1.GET("/deploys/:hash", handler.GetDeploy)

		// Signer events forwarded by the browser
		v1.POST("/wallet/events", handler.ApplyWalletEvent)

		// Catalog cache (writes require authentication)
		v1.GET("/items", handler.ListItems)
		v1.POST("/items", middleware.Auth(authCfg), handler.CreateItem)
	}
}
