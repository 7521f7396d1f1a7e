package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/cep-market-client/internal/api/middleware"
	"github.com/feral-file/cep-market-client/internal/api/shared/dto"
	apierrors "github.com/feral-file/cep-market-client/internal/api/shared/errors"
	"github.com/feral-file/cep-market-client/internal/domain"
	"github.com/feral-file/cep-market-client/internal/mocks"
	"github.com/feral-file/cep-market-client/internal/service"
)

const testAPIKey = "test-api-key"

var testDeployHash = strings.Repeat("ab", 32)

type testRouter struct {
	ctrl   *gomock.Controller
	exec   *mocks.MockAPIExecutor
	engine *gin.Engine
}

func setupTestRouter(t *testing.T) *testRouter {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	exec := mocks.NewMockAPIExecutor(ctrl)

	engine := gin.New()
	SetupRoutes(engine, NewHandler(exec), middleware.AuthConfig{APIKeys: []string{testAPIKey}})

	return &testRouter{ctrl: ctrl, exec: exec, engine: engine}
}

func (r *testRouter) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.engine.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apierrors.APIError {
	t.Helper()
	var apiErr apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	return apiErr
}

func TestHealthCheck(t *testing.T) {
	r := setupTestRouter(t)

	w := r.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestGetNFT(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		r := setupTestRouter(t)
		r.exec.EXPECT().GetNFT(gomock.Any(), "7", true).
			Return(&dto.NFTResponse{TokenID: "7", Owner: "account-hash-" + testDeployHash}, nil)

		w := r.do(http.MethodGet, "/api/v1/nfts/7?refresh=true", "")
		assert.Equal(t, http.StatusOK, w.Code)

		var resp dto.NFTResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "7", resp.TokenID)
	})

	t.Run("not found", func(t *testing.T) {
		r := setupTestRouter(t)
		r.exec.EXPECT().GetNFT(gomock.Any(), "8", false).Return(nil, nil)

		w := r.do(http.MethodGet, "/api/v1/nfts/8", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, apierrors.ErrCodeNotFound, decodeError(t, w).Code)
	})

	t.Run("bad refresh flag", func(t *testing.T) {
		r := setupTestRouter(t)

		w := r.do(http.MethodGet, "/api/v1/nfts/8?refresh=maybe", "")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("node failure", func(t *testing.T) {
		r := setupTestRouter(t)
		r.exec.EXPECT().GetNFT(gomock.Any(), "9", false).Return(nil, assert.AnError)

		w := r.do(http.MethodGet, "/api/v1/nfts/9", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestListNFTs(t *testing.T) {
	r := setupTestRouter(t)
	r.exec.EXPECT().ListNFTs(gomock.Any(), false).Return(&dto.NFTListResponse{NFTs: []dto.NFTResponse{{TokenID: "1"}}, Total: 1}, nil)
	r.exec.EXPECT().ListNFTs(gomock.Any(), true).Return(nil, domain.ErrWalletUnavailable)

	w := r.do(http.MethodGet, "/api/v1/nfts", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	w = r.do(http.MethodGet, "/api/v1/nfts/owned", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, apierrors.ErrCodeWalletConflict, decodeError(t, w).Code)
}

func TestPrepareMint(t *testing.T) {
	t.Run("prepared", func(t *testing.T) {
		r := setupTestRouter(t)
		r.exec.EXPECT().PrepareMint(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ interface{}, in service.MintInput) (*dto.PreparedDeployResponse, error) {
				assert.Equal(t, []string{"1", "2"}, in.TokenIDs)
				assert.Equal(t, "Two", in.Metas[1]["name"])
				return &dto.PreparedDeployResponse{DeployHash: testDeployHash, Deploy: json.RawMessage(`{"deploy":{}}`)}, nil
			})

		body := `{"sender":"01aa","token_ids":["1","2"],"token_metas":[{"name":"One"},{"name":"Two"}]}`
		w := r.do(http.MethodPost, "/api/v1/deploys/mint", body)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), testDeployHash)
	})

	t.Run("malformed body", func(t *testing.T) {
		r := setupTestRouter(t)

		w := r.do(http.MethodPost, "/api/v1/deploys/mint", `{"sender":`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("amount rejected", func(t *testing.T) {
		r := setupTestRouter(t)
		r.exec.EXPECT().PrepareMint(gomock.Any(), gomock.Any()).Return(nil, domain.ErrInvalidAmount)

		body := `{"sender":"01aa","token_ids":["1"],"token_metas":[{}],"payment_amount":"0"}`
		w := r.do(http.MethodPost, "/api/v1/deploys/mint", body)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, apierrors.ErrCodeValidationFailed, decodeError(t, w).Code)
	})
}

func TestPrepareApprove_MissingEscrow(t *testing.T) {
	r := setupTestRouter(t)
	r.exec.EXPECT().PrepareApprove(gomock.Any(), gomock.Any()).Return(nil, domain.ErrMissingContractReference)

	w := r.do(http.MethodPost, "/api/v1/deploys/approve", `{"sender":"01aa","token_ids":["1"]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestSubmitDeploy(t *testing.T) {
	signed := `{"deploy":{"hash":"` + testDeployHash + `"}}`

	t.Run("tracked in background", func(t *testing.T) {
		r := setupTestRouter(t)
		r.exec.EXPECT().SubmitDeploy(gomock.Any(), []byte(signed), false).
			Return(&dto.DeployResponse{DeployHash: testDeployHash, State: string(domain.DeployStateSubmitted)}, nil)

		w := r.do(http.MethodPost, "/api/v1/deploys", signed)
		assert.Equal(t, http.StatusAccepted, w.Code)
	})

	t.Run("waited to success", func(t *testing.T) {
		r := setupTestRouter(t)
		r.exec.EXPECT().SubmitDeploy(gomock.Any(), []byte(signed), true).
			Return(&dto.DeployResponse{DeployHash: testDeployHash, State: string(domain.DeployStateSuccess)}, nil)

		w := r.do(http.MethodPost, "/api/v1/deploys?wait=true", signed)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("waited to failure", func(t *testing.T) {
		r := setupTestRouter(t)
		r.exec.EXPECT().SubmitDeploy(gomock.Any(), []byte(signed), true).
			Return(&dto.DeployResponse{DeployHash: testDeployHash, State: string(domain.DeployStateFailure), ErrorMessage: "User error: 1"}, nil)

		w := r.do(http.MethodPost, "/api/v1/deploys?wait=true", signed)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "User error: 1")
	})

	t.Run("node rejected", func(t *testing.T) {
		r := setupTestRouter(t)
		r.exec.EXPECT().SubmitDeploy(gomock.Any(), gomock.Any(), false).
			Return(nil, &domain.SubmissionError{Code: -32008, Message: "invalid deploy: expired"})

		w := r.do(http.MethodPost, "/api/v1/deploys", signed)
		assert.Equal(t, http.StatusBadGateway, w.Code)
		apiErr := decodeError(t, w)
		assert.Equal(t, apierrors.ErrCodeNodeRejected, apiErr.Code)
		assert.Contains(t, apiErr.Details, "expired")
	})

	t.Run("missing deploy key", func(t *testing.T) {
		r := setupTestRouter(t)

		w := r.do(http.MethodPost, "/api/v1/deploys", `{"hash":"`+testDeployHash+`"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestGetDeploy(t *testing.T) {
	r := setupTestRouter(t)
	gomock.InOrder(
		r.exec.EXPECT().GetDeploy(gomock.Any(), testDeployHash).
			Return(&dto.DeployResponse{DeployHash: testDeployHash, State: string(domain.DeployStatePolling)}, nil),
		r.exec.EXPECT().GetDeploy(gomock.Any(), testDeployHash).
			Return(&dto.DeployResponse{DeployHash: testDeployHash, State: string(domain.DeployStateSuccess), BlockHash: "cd"}, nil),
	)

	w := r.do(http.MethodGet, "/api/v1/deploys/"+testDeployHash, "")
	assert.Equal(t, http.StatusAccepted, w.Code)

	w = r.do(http.MethodGet, "/api/v1/deploys/"+testDeployHash, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"block_hash":"cd"`)
}

func TestApplyWalletEvent(t *testing.T) {
	t.Run("applied", func(t *testing.T) {
		r := setupTestRouter(t)
		r.exec.EXPECT().ApplyWalletEvent(gomock.Any(), domain.WalletEvent{
			Type:   domain.WalletEventConnected,
			Detail: domain.WalletState{IsConnected: true, IsUnlocked: true, ActiveKey: "01aa"},
		}).Return(&dto.WalletStateResponse{IsConnected: true, IsUnlocked: true, ActiveKey: "01aa"}, nil)

		body := `{"type":"signer:connected","detail":{"isConnected":true,"isUnlocked":true,"activeKey":"01aa"}}`
		w := r.do(http.MethodPost, "/api/v1/wallet/events", body)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"is_connected":true`)
	})

	t.Run("unknown type", func(t *testing.T) {
		r := setupTestRouter(t)

		w := r.do(http.MethodPost, "/api/v1/wallet/events", `{"type":"signer:exploded","detail":{}}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestListItems(t *testing.T) {
	t.Run("paged", func(t *testing.T) {
		r := setupTestRouter(t)
		next := 20
		r.exec.EXPECT().ListItems(gomock.Any(), "hash-aa", 10, 10).
			Return(&dto.ItemListResponse{Items: []dto.ItemResponse{}, NextOffset: &next}, nil)

		w := r.do(http.MethodGet, "/api/v1/items?contract_hash=hash-aa&limit=10&offset=10", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"next_offset":20`)
	})

	t.Run("limit out of range", func(t *testing.T) {
		r := setupTestRouter(t)

		w := r.do(http.MethodGet, "/api/v1/items?limit=100000", "")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestCreateItem(t *testing.T) {
	body := `{"contract_hash":"hash-aa","token_id":"1","item":{"name":"One"}}`

	t.Run("requires auth", func(t *testing.T) {
		r := setupTestRouter(t)

		w := r.do(http.MethodPost, "/api/v1/items", body)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = r.do(http.MethodPost, "/api/v1/items", body, "Authorization", "ApiKey wrong")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("created", func(t *testing.T) {
		r := setupTestRouter(t)
		r.exec.EXPECT().CreateItem(gomock.Any(), gomock.Any()).
			Return(&dto.ItemResponse{ID: "1", Item: json.RawMessage(`{"name":"One"}`)}, true, nil)

		w := r.do(http.MethodPost, "/api/v1/items", body, "Authorization", "ApiKey "+testAPIKey)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("duplicate", func(t *testing.T) {
		r := setupTestRouter(t)
		r.exec.EXPECT().CreateItem(gomock.Any(), gomock.Any()).
			Return(&dto.ItemResponse{ID: "1", Item: json.RawMessage(`{"name":"One"}`)}, false, nil)

		w := r.do(http.MethodPost, "/api/v1/items", body, "Authorization", "ApiKey "+testAPIKey)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing item", func(t *testing.T) {
		r := setupTestRouter(t)

		w := r.do(http.MethodPost, "/api/v1/items", `{"token_id":"1"}`, "Authorization", "ApiKey "+testAPIKey)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
