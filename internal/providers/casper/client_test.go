package casper

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/cep-market-client/internal/adapter"
	"github.com/feral-file/cep-market-client/internal/clvalue"
	"github.com/feral-file/cep-market-client/internal/domain"
)

type rpcCall struct {
	Method string                 `json:"method"`
	Params map[string]interface{} `json:"params"`
}

// fakeNode answers JSON-RPC calls from a method -> response body table
type fakeNode struct {
	mu        sync.Mutex
	calls     []rpcCall
	responses map[string]string
}

func (f *fakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	var raw struct {
		Method string          `json:"method"`
		Params json.RawMessage `json:"params"`
	}
	_ = json.Unmarshal(body, &raw)
	call := rpcCall{Method: raw.Method}
	_ = json.Unmarshal(raw.Params, &call.Params)

	f.mu.Lock()
	f.calls = append(f.calls, call)
	resp, ok := f.responses[raw.Method]
	f.mu.Unlock()

	if !ok {
		resp = `{"jsonrpc":"2.0","id":1,"error":{"code":-32601,"message":"Method not found"}}`
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(resp))
}

func (f *fakeNode) methods() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.Method)
	}
	return out
}

func setupTestClient(t *testing.T, responses map[string]string) (Client, *fakeNode) {
	node := &fakeNode{responses: responses}
	srv := httptest.NewServer(node)
	t.Cleanup(srv.Close)

	httpClient := adapter.NewHTTPClientWithRetry(5*time.Second, adapter.RetryConfig{
		InitialInterval: time.Millisecond,
		MaxInterval:     time.Millisecond,
		MaxElapsedTime:  50 * time.Millisecond,
	})
	return NewClient(srv.URL+"/rpc", httpClient, adapter.NewJSON()), node
}

const stateRootResponse = `{"jsonrpc":"2.0","id":1,"result":{"api_version":"1.4.5","state_root_hash":"` +
	"0101010101010101010101010101010101010101010101010101010101010101" + `"}}`

func clValueResult(t *testing.T, v clvalue.Value) string {
	t.Helper()
	jv, err := clvalue.ToJSONValue(v)
	require.NoError(t, err)
	b, err := json.Marshal(map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"result": map[string]interface{}{
			"stored_value": map[string]interface{}{"CLValue": jv},
		},
	})
	require.NoError(t, err)
	return string(b)
}

func TestClient_GetDictionaryItem(t *testing.T) {
	contractHash := strings.Repeat("ab", 32)
	client, node := setupTestClient(t, map[string]string{
		"chain_get_state_root_hash": stateRootResponse,
		"state_get_dictionary_item": clValueResult(t, clvalue.String("available")),
	})

	sv, err := client.GetDictionaryItem(context.Background(), "hash-"+contractHash, "item_statuses", "3")
	require.NoError(t, err)

	v, err := sv.Value()
	require.NoError(t, err)
	s, ok := v.AsString()
	require.True(t, ok)
	assert.Equal(t, "available", s)

	assert.Equal(t, []string{"chain_get_state_root_hash", "state_get_dictionary_item"}, node.methods())
	params := node.calls[1].Params
	assert.Equal(t, strings.Repeat("01", 32), params["state_root_hash"])
	ident := params["dictionary_identifier"].(map[string]interface{})["ContractNamedKey"].(map[string]interface{})
	assert.Equal(t, "hash-"+contractHash, ident["key"])
	assert.Equal(t, "item_statuses", ident["dictionary_name"])
	assert.Equal(t, "3", ident["dictionary_item_key"])
}

func TestClient_QueryContractData(t *testing.T) {
	client, node := setupTestClient(t, map[string]string{
		"chain_get_state_root_hash": stateRootResponse,
		"state_get_item":            clValueResult(t, clvalue.String("My Market")),
	})

	sv, err := client.QueryContractData(context.Background(), "hash-"+strings.Repeat("cd", 32), []string{"market_name"})
	require.NoError(t, err)
	v, err := sv.Value()
	require.NoError(t, err)
	assert.Equal(t, "My Market", v.Str)

	params := node.calls[1].Params
	assert.Equal(t, []interface{}{"market_name"}, params["path"])
}

func TestClient_NotFound(t *testing.T) {
	client, _ := setupTestClient(t, map[string]string{
		"chain_get_state_root_hash": stateRootResponse,
		"state_get_dictionary_item": `{"jsonrpc":"2.0","id":1,"error":{"code":-32003,"message":"state query failed: ValueNotFound(\"Failed to find base key\")"}}`,
	})

	_, err := client.GetDictionaryItem(context.Background(), strings.Repeat("ab", 32), "owners", "9")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotFound(errors.New("boom")))
}

func TestClient_PutDeploy(t *testing.T) {
	client, node := setupTestClient(t, map[string]string{
		"account_put_deploy": `{"jsonrpc":"2.0","id":1,"result":{"api_version":"1.4.5","deploy_hash":"ff00"}}`,
	})

	hash, err := client.PutDeploy(context.Background(), []byte(`{"deploy":{"hash":"ff00"}}`))
	require.NoError(t, err)
	assert.Equal(t, "ff00", hash)

	// the signed deploy is sent as the params object verbatim
	deployParam := node.calls[0].Params["deploy"].(map[string]interface{})
	assert.Equal(t, "ff00", deployParam["hash"])
}

func TestClient_PutDeployRejected(t *testing.T) {
	client, node := setupTestClient(t, map[string]string{
		"account_put_deploy": `{"jsonrpc":"2.0","id":1,"error":{"code":-32008,"message":"invalid deploy","data":"expired"}}`,
	})

	_, err := client.PutDeploy(context.Background(), []byte(`{"deploy":{}}`))
	require.Error(t, err)

	var subErr *domain.SubmissionError
	require.True(t, errors.As(err, &subErr))
	assert.Equal(t, -32008, subErr.Code)
	assert.Equal(t, "invalid deploy: expired", subErr.Message)
	assert.True(t, errors.Is(err, domain.ErrSubmission))
	assert.Len(t, node.methods(), 1)
}

func TestClient_PutDeployNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, adapter.NewHTTPClientWithRetry(time.Second, adapter.RetryConfig{
		InitialInterval: time.Millisecond,
		MaxInterval:     time.Millisecond,
		MaxElapsedTime:  50 * time.Millisecond,
	}), adapter.NewJSON())

	_, err := client.PutDeploy(context.Background(), []byte(`{"deploy":{}}`))
	assert.True(t, errors.Is(err, domain.ErrSubmission))
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_GetDeployOutcome(t *testing.T) {
	tests := []struct {
		name     string
		result   string
		state    domain.DeployState
		errorMsg string
	}{
		{
			name:   "pending",
			result: `{"deploy":{"hash":"aa"},"execution_results":[]}`,
			state:  domain.DeployStatePolling,
		},
		{
			name:   "success",
			result: `{"deploy":{"hash":"aa"},"execution_results":[{"block_hash":"bb","result":{"Success":{"cost":"100","effect":{"transforms":[]}}}}]}`,
			state:  domain.DeployStateSuccess,
		},
		{
			name:     "failure",
			result:   `{"deploy":{"hash":"aa"},"execution_results":[{"block_hash":"bb","result":{"Failure":{"cost":"100","error_message":"User error: 4"}}}]}`,
			state:    domain.DeployStateFailure,
			errorMsg: "User error: 4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := setupTestClient(t, map[string]string{
				"info_get_deploy": `{"jsonrpc":"2.0","id":1,"result":` + tt.result + `}`,
			})

			info, err := client.GetDeploy(context.Background(), "aa")
			require.NoError(t, err)
			outcome := info.Outcome("aa")
			assert.Equal(t, tt.state, outcome.State)
			assert.Equal(t, tt.errorMsg, outcome.ErrorMessage)
		})
	}
}

func TestClient_AccountBalance(t *testing.T) {
	client, node := setupTestClient(t, map[string]string{
		"chain_get_state_root_hash": stateRootResponse,
		"state_get_account_info":    `{"jsonrpc":"2.0","id":1,"result":{"account":{"account_hash":"account-hash-00","main_purse":"uref-0202-007","named_keys":[]}}}`,
		"state_get_balance":         `{"jsonrpc":"2.0","id":1,"result":{"balance_value":"123456789012345678901234567890"}}`,
	})

	key, err := domain.ParsePublicKey("01" + strings.Repeat("11", 32))
	require.NoError(t, err)

	balance, err := client.AccountBalance(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, "123456789012345678901234567890", balance.String())
	assert.Equal(t, "uref-0202-007", node.calls[2].Params["purse_uref"])
}

func TestClient_GetStatus(t *testing.T) {
	client, _ := setupTestClient(t, map[string]string{
		"info_get_status": `{"jsonrpc":"2.0","id":1,"result":{"api_version":"1.4.5","chainspec_name":"casper-test","last_added_block_info":{"hash":"aa","height":42,"state_root_hash":"bb"}}}`,
	})

	status, err := client.GetStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "casper-test", status.ChainspecName)
	require.NotNil(t, status.LastAddedBlockInfo)
	assert.Equal(t, uint64(42), status.LastAddedBlockInfo.Height)
}
