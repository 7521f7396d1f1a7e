package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Item represents the items table - catalog entries submitted alongside mint deploys
type Item struct {
	// ID is the row identifier (UUID)
	ID string `gorm:"column:id;primaryKey;type:uuid"`
	// ContractHash is the NFT contract the item was minted on, empty when unknown
	ContractHash string `gorm:"column:contract_hash;not null;default:'';type:text;index"`
	// TokenID is the token id assigned on chain, empty until known
	TokenID string `gorm:"column:token_id;not null;default:'';type:text"`
	// DeployHash is the mint deploy that created the item, empty when unknown
	DeployHash string `gorm:"column:deploy_hash;not null;default:'';type:text"`
	// Item is the submitted JSON document
	Item datatypes.JSON `gorm:"column:item;not null;type:jsonb"`
	// ContentHash is sha256 of the canonical (RFC 8785) form of Item
	ContentHash []byte `gorm:"column:content_hash;not null;uniqueIndex;type:bytea"`
	// CreatedAt is the timestamp when the item was stored
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Item model
func (Item) TableName() string {
	return "items"
}
