package casper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/feral-file/cep-market-client/internal/adapter"
	"github.com/feral-file/cep-market-client/internal/clvalue"
	"github.com/feral-file/cep-market-client/internal/domain"
	"github.com/feral-file/cep-market-client/internal/logger"
)

// rpcQueryFailed is the node's error code for a failed global state query
const rpcQueryFailed = -32003

// RPCError is an error object returned by the node
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	if e.Data != "" {
		return fmt.Sprintf("rpc error %d: %s (%s)", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// IsNotFound reports whether err means the queried key or dictionary item does not exist
func IsNotFound(err error) bool {
	var rpcErr *RPCError
	if !errors.As(err, &rpcErr) {
		return false
	}
	msg := strings.ToLower(rpcErr.Message + " " + rpcErr.Data)
	return rpcErr.Code == rpcQueryFailed ||
		strings.Contains(msg, "valuenotfound") ||
		strings.Contains(msg, "no such")
}

// ExecutionResult is one entry of info_get_deploy's execution_results
type ExecutionResult struct {
	BlockHash string           `json:"block_hash"`
	Result    ExecutionOutcome `json:"result"`
}

// ExecutionOutcome holds exactly one of Success or Failure
type ExecutionOutcome struct {
	Success *ExecutionSuccess `json:"Success,omitempty"`
	Failure *ExecutionFailure `json:"Failure,omitempty"`
}

type ExecutionSuccess struct {
	Cost   string          `json:"cost"`
	Effect ExecutionEffect `json:"effect"`
}

type ExecutionFailure struct {
	Cost         string `json:"cost"`
	ErrorMessage string `json:"error_message"`
}

// ExecutionEffect holds the global state changes of a processed deploy
type ExecutionEffect struct {
	Transforms []TransformEntry `json:"transforms"`
}

// TransformEntry is a single global state write
type TransformEntry struct {
	Key       string          `json:"key"`
	Transform json.RawMessage `json:"transform"`
}

// WriteCLValue returns the written value when the transform is a WriteCLValue
func (t TransformEntry) WriteCLValue() (*clvalue.JSONValue, bool) {
	var w struct {
		WriteCLValue *clvalue.JSONValue `json:"WriteCLValue"`
	}
	if err := json.Unmarshal(t.Transform, &w); err != nil || w.WriteCLValue == nil {
		return nil, false
	}
	return w.WriteCLValue, true
}

// DeployInfo is the result of info_get_deploy
type DeployInfo struct {
	Deploy struct {
		Hash string `json:"hash"`
	} `json:"deploy"`
	ExecutionResults []ExecutionResult `json:"execution_results"`
}

// Outcome converts the first execution result into a deploy outcome
func (d *DeployInfo) Outcome(hash string) domain.DeployOutcome {
	out := domain.DeployOutcome{DeployHash: hash, State: domain.DeployStatePolling}
	if len(d.ExecutionResults) == 0 {
		return out
	}

	r := d.ExecutionResults[0]
	out.BlockHash = r.BlockHash
	switch {
	case r.Result.Success != nil:
		out.State = domain.DeployStateSuccess
		out.Cost = r.Result.Success.Cost
	case r.Result.Failure != nil:
		out.State = domain.DeployStateFailure
		out.Cost = r.Result.Failure.Cost
		out.ErrorMessage = r.Result.Failure.ErrorMessage
	}
	return out
}

// StoredValue is the stored_value variant returned by state queries
type StoredValue struct {
	CLValue  *clvalue.JSONValue `json:"CLValue,omitempty"`
	Account  *AccountInfo       `json:"Account,omitempty"`
	Contract *struct {
		ContractPackageHash string     `json:"contract_package_hash"`
		NamedKeys           []NamedKey `json:"named_keys"`
	} `json:"Contract,omitempty"`
}

// NamedKey is an entry of an account or contract named keys
type NamedKey struct {
	Name string `json:"name"`
	Key  string `json:"key"`
}

// AccountInfo is the account record of state_get_account_info
type AccountInfo struct {
	AccountHash string     `json:"account_hash"`
	MainPurse   string     `json:"main_purse"`
	NamedKeys   []NamedKey `json:"named_keys"`
}

// Value decodes the CLValue variant
func (s *StoredValue) Value() (clvalue.Value, error) {
	if s == nil || s.CLValue == nil {
		return clvalue.Value{}, fmt.Errorf("stored value is not a CLValue")
	}
	return s.CLValue.Value()
}

// NodeStatus is the subset of info_get_status used by the client
type NodeStatus struct {
	APIVersion         string `json:"api_version"`
	ChainspecName      string `json:"chainspec_name"`
	LastAddedBlockInfo *struct {
		Hash          string `json:"hash"`
		Height        uint64 `json:"height"`
		StateRootHash string `json:"state_root_hash"`
	} `json:"last_added_block_info"`
}

// Client defines the node JSON-RPC operations used across the application
//
//go:generate mockgen -source=client.go -destination=../../mocks/casper_client.go -package=mocks -mock_names=Client=MockCasperClient
type Client interface {
	// StateRootHash returns the latest state root hash
	StateRootHash(ctx context.Context) (string, error)

	// GetDeploy returns the deploy and its execution results, if any.
	// It sends exactly one request; the finality poller owns the retry schedule.
	GetDeploy(ctx context.Context, deployHash string) (*DeployInfo, error)

	// PutDeploy submits a signed deploy in its JSON form and returns the deploy hash.
	// It is never retried.
	PutDeploy(ctx context.Context, signedJSON []byte) (string, error)

	// QueryContractData reads the value under key following path through named keys
	QueryContractData(ctx context.Context, key string, path []string) (*StoredValue, error)

	// GetDictionaryItem reads itemKey from the dictionary named dict of a contract
	GetDictionaryItem(ctx context.Context, contractHash string, dict string, itemKey string) (*StoredValue, error)

	// GetStatus returns the node status
	GetStatus(ctx context.Context) (*NodeStatus, error)

	// AccountBalance returns the main purse balance of an account in motes
	AccountBalance(ctx context.Context, key domain.PublicKey) (*big.Int, error)
}

type rpcRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      uint64      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

type rpcClient struct {
	url        string
	httpClient adapter.HTTPClient
	json       adapter.JSON
	nextID     atomic.Uint64
}

// NewClient creates a JSON-RPC client for the node at url
func NewClient(url string, httpClient adapter.HTTPClient, json adapter.JSON) Client {
	return &rpcClient{
		url:        url,
		httpClient: httpClient,
		json:       json,
	}
}

func (c *rpcClient) call(ctx context.Context, method string, params interface{}, result interface{}, once bool) error {
	body, err := c.json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", method, err)
	}

	var raw []byte
	if once {
		raw, err = c.httpClient.PostJSONOnce(ctx, c.url, body)
	} else {
		raw, err = c.httpClient.PostJSON(ctx, c.url, body)
	}
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", method, err)
	}

	var resp rpcResponse
	if err := c.json.Unmarshal(raw, &resp); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", method, err)
	}
	if resp.Error != nil {
		return resp.Error
	}
	if result == nil {
		return nil
	}
	if err := c.json.Unmarshal(resp.Result, result); err != nil {
		return fmt.Errorf("failed to decode %s result: %w", method, err)
	}
	return nil
}

func (c *rpcClient) StateRootHash(ctx context.Context) (string, error) {
	var res struct {
		StateRootHash string `json:"state_root_hash"`
	}
	if err := c.call(ctx, "chain_get_state_root_hash", []interface{}{}, &res, false); err != nil {
		return "", err
	}
	return res.StateRootHash, nil
}

func (c *rpcClient) GetDeploy(ctx context.Context, deployHash string) (*DeployInfo, error) {
	var res DeployInfo
	params := map[string]string{"deploy_hash": domain.NormalizeHash(deployHash)}
	if err := c.call(ctx, "info_get_deploy", params, &res, true); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *rpcClient) PutDeploy(ctx context.Context, signedJSON []byte) (string, error) {
	var res struct {
		DeployHash string `json:"deploy_hash"`
	}
	err := c.call(ctx, "account_put_deploy", json.RawMessage(signedJSON), &res, true)
	if err != nil {
		var rpcErr *RPCError
		if errors.As(err, &rpcErr) {
			msg := rpcErr.Message
			if rpcErr.Data != "" {
				msg = msg + ": " + rpcErr.Data
			}
			return "", &domain.SubmissionError{Code: rpcErr.Code, Message: msg}
		}
		return "", fmt.Errorf("%w: %v", domain.ErrSubmission, err)
	}

	logger.InfoCtx(ctx, "Deploy submitted", zap.String("deploy_hash", res.DeployHash))
	return res.DeployHash, nil
}

func (c *rpcClient) QueryContractData(ctx context.Context, key string, path []string) (*StoredValue, error) {
	srh, err := c.StateRootHash(ctx)
	if err != nil {
		return nil, err
	}
	if path == nil {
		path = []string{}
	}

	var res struct {
		StoredValue StoredValue `json:"stored_value"`
	}
	params := map[string]interface{}{
		"state_root_hash": srh,
		"key":             key,
		"path":            path,
	}
	if err := c.call(ctx, "state_get_item", params, &res, false); err != nil {
		return nil, fmt.Errorf("failed to query %s %v: %w", key, path, err)
	}
	return &res.StoredValue, nil
}

func (c *rpcClient) GetDictionaryItem(ctx context.Context, contractHash string, dict string, itemKey string) (*StoredValue, error) {
	srh, err := c.StateRootHash(ctx)
	if err != nil {
		return nil, err
	}

	var res struct {
		StoredValue StoredValue `json:"stored_value"`
	}
	params := map[string]interface{}{
		"state_root_hash": srh,
		"dictionary_identifier": map[string]interface{}{
			"ContractNamedKey": map[string]string{
				"key":                 domain.HASH_PREFIX + domain.NormalizeHash(contractHash),
				"dictionary_name":     dict,
				"dictionary_item_key": itemKey,
			},
		},
	}
	if err := c.call(ctx, "state_get_dictionary_item", params, &res, false); err != nil {
		return nil, fmt.Errorf("failed to query dictionary %s[%s]: %w", dict, itemKey, err)
	}
	return &res.StoredValue, nil
}

func (c *rpcClient) GetStatus(ctx context.Context) (*NodeStatus, error) {
	var res NodeStatus
	if err := c.call(ctx, "info_get_status", []interface{}{}, &res, false); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *rpcClient) AccountBalance(ctx context.Context, key domain.PublicKey) (*big.Int, error) {
	var account struct {
		Account AccountInfo `json:"account"`
	}
	if err := c.call(ctx, "state_get_account_info", map[string]string{"public_key": key.Hex()}, &account, false); err != nil {
		return nil, fmt.Errorf("failed to get account info: %w", err)
	}

	srh, err := c.StateRootHash(ctx)
	if err != nil {
		return nil, err
	}

	var balance struct {
		BalanceValue string `json:"balance_value"`
	}
	params := map[string]string{"state_root_hash": srh, "purse_uref": account.Account.MainPurse}
	if err := c.call(ctx, "state_get_balance", params, &balance, false); err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}

	v, ok := new(big.Int).SetString(balance.BalanceValue, 10)
	if !ok {
		return nil, fmt.Errorf("invalid balance %q", balance.BalanceValue)
	}
	return v, nil
}
