package dto

import "github.com/feral-file/cep-market-client/internal/domain"

// ListingResponse represents the current market listing of an NFT
type ListingResponse struct {
	ItemID       string `json:"item_id"`
	NFTContract  string `json:"nft_contract,omitempty"`
	TokenID      string `json:"token_id"`
	AskingPrice  string `json:"asking_price,omitempty"`
	Status       string `json:"status"`
	Available    bool   `json:"available"`
	ApprovalHash string `json:"approval_hash,omitempty"`
}

// NFTResponse represents the reconciled view of one NFT
type NFTResponse struct {
	TokenID    string            `json:"token_id"`
	Meta       map[string]string `json:"meta"`
	Owner      string            `json:"owner"`
	Approved   string            `json:"approved,omitempty"`
	IsOwner    bool              `json:"is_owner"`
	IsApproved bool              `json:"is_approved"`
	Listing    *ListingResponse  `json:"listing,omitempty"`
	Partial    []string          `json:"partial,omitempty"`
}

// NFTListResponse represents a list of reconciled NFTs
type NFTListResponse struct {
	NFTs  []NFTResponse `json:"nfts"`
	Total int           `json:"total"`
}

// MapNFTViewToDTO maps a reconciled view to its response
func MapNFTViewToDTO(view domain.NFTView) NFTResponse {
	meta := view.Meta
	if meta == nil {
		meta = map[string]string{}
	}
	resp := NFTResponse{
		TokenID:    view.TokenID,
		Meta:       meta,
		Owner:      view.Owner,
		Approved:   view.Approved,
		IsOwner:    view.IsOwner,
		IsApproved: view.IsApproved,
		Partial:    view.Partial,
	}

	if l := view.Listing; l != nil {
		resp.Listing = &ListingResponse{
			ItemID:       l.ItemID,
			NFTContract:  l.NFTContract,
			TokenID:      l.TokenID,
			Status:       string(l.Status),
			Available:    l.Available,
			ApprovalHash: l.ApprovalHash,
		}
		if l.AskingPrice != nil {
			resp.Listing.AskingPrice = l.AskingPrice.String()
		}
	}
	return resp
}

// MapNFTViewsToDTO maps a list of views
func MapNFTViewsToDTO(views []domain.NFTView) *NFTListResponse {
	nfts := make([]NFTResponse, len(views))
	for i, v := range views {
		nfts[i] = MapNFTViewToDTO(v)
	}
	return &NFTListResponse{NFTs: nfts, Total: len(nfts)}
}
