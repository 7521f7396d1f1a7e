package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEncoding is returned when a value cannot be represented in its declared argument width
	ErrEncoding = errors.New("encoding error")

	// ErrInvalidAmount is returned when a payment amount is not a positive integer
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrMissingContractReference is returned when a contract hash / package hash pair was never set
	ErrMissingContractReference = errors.New("missing contract reference")

	// ErrInvalidWasm is returned when module bytes are not a WebAssembly binary
	ErrInvalidWasm = errors.New("invalid wasm module")

	// ErrWalletUnavailable is returned when no wallet is connected
	ErrWalletUnavailable = errors.New("wallet unavailable")

	// ErrWalletLocked is returned when the wallet is connected but locked
	ErrWalletLocked = errors.New("wallet locked")

	// ErrUserRejectedSigning is returned when the user declines to sign
	ErrUserRejectedSigning = errors.New("user rejected signing")

	// ErrSubmission is returned when the node rejects a signed deploy
	ErrSubmission = errors.New("deploy submission failed")

	// ErrContractExecution is returned when a deploy was accepted but failed on-chain
	ErrContractExecution = errors.New("contract execution failed")

	// ErrDeployTimeout is returned when finality was not observed within the polling ceiling
	ErrDeployTimeout = errors.New("deploy finality timeout")

	// ErrReconciliationPartial marks a non-primary reconciliation query failure
	ErrReconciliationPartial = errors.New("reconciliation partial")

	// ErrSubscriptionFailed is returned when subscription to events fails
	ErrSubscriptionFailed = errors.New("subscription failed")

	// ErrTokenNotFound is returned when a token is not found
	ErrTokenNotFound = errors.New("token not found")

	// ErrInvalidDeploy is returned when a deploy fails structural validation
	ErrInvalidDeploy = errors.New("invalid deploy")
)

// SubmissionError carries the node's RPC error for a rejected deploy
type SubmissionError struct {
	Code    int
	Message string
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("deploy submission failed (code %d): %s", e.Code, e.Message)
}

func (e *SubmissionError) Unwrap() error {
	return ErrSubmission
}

// ContractExecutionError carries the execution engine's failure message
type ContractExecutionError struct {
	DeployHash string
	Message    string
}

func (e *ContractExecutionError) Error() string {
	return fmt.Sprintf("contract execution failed for deploy %s: %s", e.DeployHash, e.Message)
}

func (e *ContractExecutionError) Unwrap() error {
	return ErrContractExecution
}

// DeployTimeoutError reports that a deploy's outcome is unknown after the polling ceiling
type DeployTimeoutError struct {
	DeployHash string
	Attempts   int
}

func (e *DeployTimeoutError) Error() string {
	return fmt.Sprintf("no execution result for deploy %s after %d attempts", e.DeployHash, e.Attempts)
}

func (e *DeployTimeoutError) Unwrap() error {
	return ErrDeployTimeout
}
