package rest

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/cep-market-client/internal/api/shared/constants"
	"github.com/feral-file/cep-market-client/internal/api/shared/dto"
	"github.com/feral-file/cep-market-client/internal/api/shared/executor"
	"github.com/feral-file/cep-market-client/internal/service"
)

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// GetNFT returns the reconciled view of one token
	// GET /api/v1/nfts/:id?refresh=<bool>
	GetNFT(c *gin.Context)

	// ListNFTs scans every token of the NFT contract
	// GET /api/v1/nfts
	ListNFTs(c *gin.Context)

	// ListOwnedNFTs scans the tokens owned by the active wallet account
	// GET /api/v1/nfts/owned
	ListOwnedNFTs(c *gin.Context)

	// PrepareMint returns an unsigned mint deploy
	// POST /api/v1/deploys/mint
	PrepareMint(c *gin.Context)

	// PrepareBurn returns an unsigned burn deploy
	// POST /api/v1/deploys/burn
	PrepareBurn(c *gin.Context)

	// PrepareTransfer returns an unsigned transfer deploy
	// POST /api/v1/deploys/transfer
	PrepareTransfer(c *gin.Context)

	// PrepareApprove returns an unsigned approve deploy for the marketplace escrow
	// POST /api/v1/deploys/approve
	PrepareApprove(c *gin.Context)

	// PrepareCreateListing returns an unsigned create_market_item deploy
	// POST /api/v1/deploys/listings
	PrepareCreateListing(c *gin.Context)

	// PrepareProcessSale returns an unsigned offer-purse deploy
	// POST /api/v1/deploys/sales
	PrepareProcessSale(c *gin.Context)

	// SubmitDeploy sends a signed deploy to the node
	// POST /api/v1/deploys?wait=<bool>
	SubmitDeploy(c *gin.Context)

	// GetDeploy returns the latest known outcome of a deploy
	// GET /api/v1/deploys/:hash
	GetDeploy(c *gin.Context)

	// ApplyWalletEvent applies a signer event forwarded by the browser
	// POST /api/v1/wallet/events
	ApplyWalletEvent(c *gin.Context)

	// ListItems returns catalog items
	// GET /api/v1/items?contract_hash=<hash>&limit=<limit>&offset=<offset>
	ListItems(c *gin.Context)

	// CreateItem stores a catalog item (requires authentication)
	// POST /api/v1/items
	CreateItem(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor) Handler {
	return &handler{executor: exec}
}

// GetNFT returns the reconciled view of one token
func (h *handler) GetNFT(c *gin.Context) {
	tokenID := c.Param("id")
	if tokenID == "" {
		respondBadRequest(c, "Token ID is required")
		return
	}

	queryParams, err := ParseGetNFTQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	nft, err := h.executor.GetNFT(c.Request.Context(), tokenID, queryParams.Refresh)
	if err != nil {
		respondError(c, err, "Failed to get NFT")
		return
	}
	if nft == nil {
		respondNotFound(c, "Token not found")
		return
	}

	c.JSON(http.StatusOK, nft)
}

// ListNFTs scans every token of the NFT contract
func (h *handler) ListNFTs(c *gin.Context) {
	h.listNFTs(c, false)
}

// ListOwnedNFTs scans the tokens owned by the active wallet account
func (h *handler) ListOwnedNFTs(c *gin.Context) {
	h.listNFTs(c, true)
}

func (h *handler) listNFTs(c *gin.Context, owned bool) {
	response, err := h.executor.ListNFTs(c.Request.Context(), owned)
	if err != nil {
		respondError(c, err, "Failed to list NFTs")
		return
	}

	c.JSON(http.StatusOK, response)
}

// prepare binds the request body into input and responds with the prepared deploy
func prepare[T any](c *gin.Context, build func(input T) (*dto.PreparedDeployResponse, error)) {
	var input T
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := build(input)
	if err != nil {
		respondError(c, err, "Failed to prepare deploy")
		return
	}

	c.JSON(http.StatusOK, response)
}

// PrepareMint returns an unsigned mint deploy
func (h *handler) PrepareMint(c *gin.Context) {
	prepare(c, func(input service.MintInput) (*dto.PreparedDeployResponse, error) {
		return h.executor.PrepareMint(c.Request.Context(), input)
	})
}

// PrepareBurn returns an unsigned burn deploy
func (h *handler) PrepareBurn(c *gin.Context) {
	prepare(c, func(input service.BurnInput) (*dto.PreparedDeployResponse, error) {
		return h.executor.PrepareBurn(c.Request.Context(), input)
	})
}

// PrepareTransfer returns an unsigned transfer deploy
func (h *handler) PrepareTransfer(c *gin.Context) {
	prepare(c, func(input service.TransferInput) (*dto.PreparedDeployResponse, error) {
		return h.executor.PrepareTransfer(c.Request.Context(), input)
	})
}

// PrepareApprove returns an unsigned approve deploy
func (h *handler) PrepareApprove(c *gin.Context) {
	prepare(c, func(input service.ApproveInput) (*dto.PreparedDeployResponse, error) {
		return h.executor.PrepareApprove(c.Request.Context(), input)
	})
}

// PrepareCreateListing returns an unsigned create_market_item deploy
func (h *handler) PrepareCreateListing(c *gin.Context) {
	prepare(c, func(input service.CreateListingInput) (*dto.PreparedDeployResponse, error) {
		return h.executor.PrepareCreateListing(c.Request.Context(), input)
	})
}

// PrepareProcessSale returns an unsigned offer-purse deploy
func (h *handler) PrepareProcessSale(c *gin.Context) {
	prepare(c, func(input service.ProcessSaleInput) (*dto.PreparedDeployResponse, error) {
		return h.executor.PrepareProcessSale(c.Request.Context(), input)
	})
}

// SubmitDeploy sends a signed deploy to the node.
// A final outcome answers 200, an unknown one 202.
func (h *handler) SubmitDeploy(c *gin.Context) {
	queryParams, err := ParseSubmitDeployQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		respondBadRequest(c, "Failed to read request body", err.Error())
		return
	}
	var req dto.SubmitDeployRequest
	if err := json.Unmarshal(body, &req); err != nil || len(req.Deploy) == 0 {
		respondValidationError(c, "body must be a signed deploy of the form {\"deploy\": {...}}")
		return
	}

	response, err := h.executor.SubmitDeploy(c.Request.Context(), body, queryParams.Wait)
	if err != nil {
		respondError(c, err, "Failed to submit deploy")
		return
	}

	respondDeploy(c, response)
}

// GetDeploy returns the latest known outcome of a deploy
func (h *handler) GetDeploy(c *gin.Context) {
	hash := c.Param("hash")
	if hash == "" {
		respondBadRequest(c, "Deploy hash is required")
		return
	}

	response, err := h.executor.GetDeploy(c.Request.Context(), hash)
	if err != nil {
		respondError(c, err, "Failed to get deploy")
		return
	}

	respondDeploy(c, response)
}

func respondDeploy(c *gin.Context, response *dto.DeployResponse) {
	if response.IsFinal() {
		c.JSON(http.StatusOK, response)
		return
	}
	c.JSON(http.StatusAccepted, response)
}

// ApplyWalletEvent applies a signer event forwarded by the browser
func (h *handler) ApplyWalletEvent(c *gin.Context) {
	var req dto.WalletEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err, "Invalid wallet event")
		return
	}

	response, err := h.executor.ApplyWalletEvent(c.Request.Context(), req.ToDomain())
	if err != nil {
		respondError(c, err, "Failed to apply wallet event")
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListItems returns catalog items
func (h *handler) ListItems(c *gin.Context) {
	queryParams, err := ParseListItemsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if err := queryParams.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.ListItems(c.Request.Context(), queryParams.ContractHash, queryParams.Limit, queryParams.Offset)
	if err != nil {
		respondError(c, err, "Failed to list items")
		return
	}

	c.JSON(http.StatusOK, response)
}

// CreateItem stores a catalog item. A new item answers 201, a duplicate 200.
func (h *handler) CreateItem(c *gin.Context) {
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err, "Invalid item")
		return
	}

	response, created, err := h.executor.CreateItem(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create item")
		return
	}

	if created {
		c.JSON(http.StatusCreated, response)
		return
	}
	c.JSON(http.StatusOK, response)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": constants.SERVICE_NAME,
	})
}
