package dto

import (
	"encoding/json"
	"time"

	"github.com/feral-file/cep-market-client/internal/domain"
)

// PreparedDeployResponse carries an unsigned deploy for the wallet to sign
type PreparedDeployResponse struct {
	DeployHash string          `json:"deploy_hash"`
	Deploy     json.RawMessage `json:"deploy"`
}

// SubmitDeployRequest carries a signed deploy in the {"deploy": {...}} form
type SubmitDeployRequest struct {
	Deploy json.RawMessage `json:"deploy"`
}

// DeployResponse represents the known outcome of a deploy
type DeployResponse struct {
	DeployHash   string     `json:"deploy_hash"`
	State        string     `json:"state"`
	BlockHash    string     `json:"block_hash,omitempty"`
	Cost         string     `json:"cost,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
	FinalizedAt  *time.Time `json:"finalized_at,omitempty"`
}

// IsFinal reports whether the deploy has a known execution result
func (r *DeployResponse) IsFinal() bool {
	return r.State == string(domain.DeployStateSuccess) || r.State == string(domain.DeployStateFailure)
}

// MapOutcomeToDTO maps a deploy outcome to its response
func MapOutcomeToDTO(outcome domain.DeployOutcome) *DeployResponse {
	return &DeployResponse{
		DeployHash:   outcome.DeployHash,
		State:        string(outcome.State),
		BlockHash:    outcome.BlockHash,
		Cost:         outcome.Cost,
		ErrorMessage: outcome.ErrorMessage,
	}
}
