package rest

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/cep-market-client/internal/api/shared/constants"
)

// GetNFTQueryParams holds query parameters for GET /nfts/:id
type GetNFTQueryParams struct {
	Refresh bool `form:"refresh,default=false"`
}

// ListItemsQueryParams holds query parameters for GET /items
type ListItemsQueryParams struct {
	ContractHash string `form:"contract_hash"`
	Limit        int    `form:"limit,default=50"`
	Offset       int    `form:"offset,default=0"`
}

// Validate validates the query parameters
func (p *ListItemsQueryParams) Validate() error {
	if p.Limit < 1 || p.Limit > constants.MAX_ITEMS_LIMIT {
		return fmt.Errorf("limit must be between 1 and %d", constants.MAX_ITEMS_LIMIT)
	}
	if p.Offset < 0 {
		return fmt.Errorf("offset must not be negative")
	}
	return nil
}

// SubmitDeployQueryParams holds query parameters for POST /deploys
type SubmitDeployQueryParams struct {
	Wait bool `form:"wait,default=false"`
}

// ParseGetNFTQuery parses query parameters for GET /nfts/:id
func ParseGetNFTQuery(c *gin.Context) (*GetNFTQueryParams, error) {
	var params GetNFTQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	return &params, nil
}

// ParseListItemsQuery parses query parameters for GET /items
func ParseListItemsQuery(c *gin.Context) (*ListItemsQueryParams, error) {
	var params ListItemsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	return &params, nil
}

// ParseSubmitDeployQuery parses query parameters for POST /deploys
func ParseSubmitDeployQuery(c *gin.Context) (*SubmitDeployQueryParams, error) {
	var params SubmitDeployQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	return &params, nil
}
