package service

// MintInput mints TokenIDs with their metadata. Recipient defaults to the sender's account.
type MintInput struct {
	Sender    string              `json:"sender" binding:"required"`
	Recipient string              `json:"recipient"`
	TokenIDs  []string            `json:"token_ids" binding:"required"`
	Metas     []map[string]string `json:"token_metas" binding:"required"`
	Payment   string              `json:"payment_amount"`
}

// BurnInput burns TokenIDs held by Owner (defaults to the sender's account)
type BurnInput struct {
	Sender   string   `json:"sender" binding:"required"`
	Owner    string   `json:"owner"`
	TokenIDs []string `json:"token_ids" binding:"required"`
	Payment  string   `json:"payment_amount"`
}

// TransferInput transfers TokenIDs to Recipient
type TransferInput struct {
	Sender    string   `json:"sender" binding:"required"`
	Recipient string   `json:"recipient" binding:"required"`
	TokenIDs  []string `json:"token_ids" binding:"required"`
	Payment   string   `json:"payment_amount"`
}

// ApproveInput approves the marketplace escrow account to move TokenIDs
type ApproveInput struct {
	Sender   string   `json:"sender" binding:"required"`
	TokenIDs []string `json:"token_ids" binding:"required"`
	Payment  string   `json:"payment_amount"`
}

// CreateListingInput lists tokens for sale. The item, token and price lists are parallel.
type CreateListingInput struct {
	Sender       string   `json:"sender" binding:"required"`
	Recipient    string   `json:"recipient"`
	NFTContract  string   `json:"nft_contract"`
	ItemIDs      []string `json:"item_ids" binding:"required"`
	TokenIDs     []string `json:"token_ids" binding:"required"`
	AskingPrices []string `json:"asking_prices" binding:"required"`
	Payment      string   `json:"payment_amount"`
}

// ProcessSaleInput buys one market item
type ProcessSaleInput struct {
	Sender    string `json:"sender" binding:"required"`
	Recipient string `json:"recipient"`
	ItemID    string `json:"item_id" binding:"required"`
	Amount    string `json:"amount" binding:"required"`
	Payment   string `json:"payment_amount"`
}

// InstallInput installs a contract from its compiled module. Contract is ContractNFT or ContractMarket.
type InstallInput struct {
	Sender       string            `json:"sender" binding:"required"`
	Contract     string            `json:"contract" binding:"required"`
	Wasm         []byte            `json:"-"`
	Name         string            `json:"name" binding:"required"`
	Symbol       string            `json:"symbol" binding:"required"`
	Meta         map[string]string `json:"meta"`
	ContractName string            `json:"contract_name" binding:"required"`
	Payment      string            `json:"payment_amount"`
}
