package schema

import (
	"time"

	"github.com/feral-file/cep-market-client/internal/domain"
)

// Deploy represents the deploys table - submitted deploys and their observed outcome
type Deploy struct {
	// DeployHash is the hex deploy hash
	DeployHash string `gorm:"column:deploy_hash;primaryKey;type:text"`
	// Operation names what the deploy does (mint, burn, transfer, approve, listing, sale, install)
	Operation string `gorm:"column:operation;not null;default:'';type:text"`
	// Sender is the public key hex of the deploy account
	Sender string `gorm:"column:sender;not null;default:'';type:text"`
	// State is the lifecycle state
	State domain.DeployState `gorm:"column:state;not null;type:text;index"`
	// BlockHash is the block that executed the deploy
	BlockHash string `gorm:"column:block_hash;not null;default:'';type:text"`
	// Cost is the execution cost in motes
	Cost string `gorm:"column:cost;not null;default:'';type:text"`
	// ErrorMessage is the execution engine error of a failed deploy
	ErrorMessage string `gorm:"column:error_message;not null;default:'';type:text"`
	// SubmittedAt is the timestamp of account_put_deploy
	SubmittedAt time.Time `gorm:"column:submitted_at;not null;default:now();type:timestamptz"`
	// FinalizedAt is set once the deploy reached a terminal state
	FinalizedAt *time.Time `gorm:"column:finalized_at;type:timestamptz"`
	// UpdatedAt is the timestamp of the last state change
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Deploy model
func (Deploy) TableName() string {
	return "deploys"
}

// Outcome converts the row to a domain outcome
func (d *Deploy) Outcome() domain.DeployOutcome {
	return domain.DeployOutcome{
		DeployHash:   d.DeployHash,
		State:        d.State,
		BlockHash:    d.BlockHash,
		Cost:         d.Cost,
		ErrorMessage: d.ErrorMessage,
	}
}
