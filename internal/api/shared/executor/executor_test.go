package executor_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/feral-file/cep-market-client/internal/api/shared/constants"
	"github.com/feral-file/cep-market-client/internal/api/shared/dto"
	apierrors "github.com/feral-file/cep-market-client/internal/api/shared/errors"
	"github.com/feral-file/cep-market-client/internal/api/shared/executor"
	"github.com/feral-file/cep-market-client/internal/domain"
	"github.com/feral-file/cep-market-client/internal/mocks"
	"github.com/feral-file/cep-market-client/internal/service"
	"github.com/feral-file/cep-market-client/internal/store"
	"github.com/feral-file/cep-market-client/internal/store/schema"
)

var testHash = strings.Repeat("cd", 32)

type testExecutorMocks struct {
	ctrl    *gomock.Controller
	deploys *mocks.MockDeployService
	viewer  *mocks.MockNFTViewer
	wallet  *mocks.MockWalletSession
	cache   *mocks.MockViewCache
	store   *mocks.MockStore
}

func setupTestExecutor(t *testing.T) (executor.Executor, *testExecutorMocks) {
	ctrl := gomock.NewController(t)
	m := &testExecutorMocks{
		ctrl:    ctrl,
		deploys: mocks.NewMockDeployService(ctrl),
		viewer:  mocks.NewMockNFTViewer(ctrl),
		wallet:  mocks.NewMockWalletSession(ctrl),
		cache:   mocks.NewMockViewCache(ctrl),
		store:   mocks.NewMockStore(ctrl),
	}
	return executor.NewExecutor(m.deploys, m.viewer, m.wallet, m.cache, m.store), m
}

func testView(id string) domain.NFTView {
	return domain.NFTView{NFTItem: domain.NFTItem{TokenID: id, Owner: "account-hash-" + testHash}}
}

func TestGetNFT(t *testing.T) {
	ctx := context.Background()

	t.Run("cached", func(t *testing.T) {
		exec, m := setupTestExecutor(t)
		m.cache.EXPECT().Get("1").Return(testView("1"), true)

		resp, err := exec.GetNFT(ctx, "1", false)
		require.NoError(t, err)
		assert.Equal(t, "1", resp.TokenID)
		assert.NotNil(t, resp.Meta)
	})

	t.Run("refresh bypasses cache", func(t *testing.T) {
		exec, m := setupTestExecutor(t)
		view := testView("1")
		m.viewer.EXPECT().Reconcile(ctx, "1").Return(&view, nil)
		m.cache.EXPECT().Put(view)

		resp, err := exec.GetNFT(ctx, "1", true)
		require.NoError(t, err)
		assert.Equal(t, view.Owner, resp.Owner)
	})

	t.Run("missing token", func(t *testing.T) {
		exec, m := setupTestExecutor(t)
		m.cache.EXPECT().Get("2").Return(domain.NFTView{}, false)
		m.viewer.EXPECT().Reconcile(ctx, "2").Return(nil, domain.ErrTokenNotFound)

		resp, err := exec.GetNFT(ctx, "2", false)
		require.NoError(t, err)
		assert.Nil(t, resp)
	})

	t.Run("node failure", func(t *testing.T) {
		exec, m := setupTestExecutor(t)
		m.viewer.EXPECT().Reconcile(ctx, "3").Return(nil, assert.AnError)

		_, err := exec.GetNFT(ctx, "3", true)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestListNFTs(t *testing.T) {
	ctx := context.Background()
	exec, m := setupTestExecutor(t)

	views := []domain.NFTView{testView("1"), testView("2")}
	m.viewer.EXPECT().Owned(ctx).Return(views, nil)
	m.cache.EXPECT().Put(gomock.Any()).Times(2)

	resp, err := exec.ListNFTs(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "2", resp.NFTs[1].TokenID)
}

func TestPrepareTransfer(t *testing.T) {
	ctx := context.Background()

	t.Run("token ids required", func(t *testing.T) {
		exec, _ := setupTestExecutor(t)

		_, err := exec.PrepareTransfer(ctx, service.TransferInput{Sender: "01aa", Recipient: "01bb"})
		var apiErr *apierrors.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, apierrors.ErrCodeValidationFailed, apiErr.Code)
	})

	t.Run("propagates builder error", func(t *testing.T) {
		exec, m := setupTestExecutor(t)
		m.deploys.EXPECT().PrepareTransfer(ctx, gomock.Any()).Return(nil, domain.ErrEncoding)

		_, err := exec.PrepareTransfer(ctx, service.TransferInput{Sender: "01aa", Recipient: "01bb", TokenIDs: []string{"1"}})
		assert.ErrorIs(t, err, domain.ErrEncoding)
	})
}

func TestSubmitDeploy(t *testing.T) {
	ctx := context.Background()
	signed := []byte(`{"deploy":{}}`)

	t.Run("background", func(t *testing.T) {
		exec, m := setupTestExecutor(t)
		m.deploys.EXPECT().Submit(ctx, signed).Return(testHash, nil)
		m.deploys.EXPECT().Track(ctx, testHash)

		resp, err := exec.SubmitDeploy(ctx, signed, false)
		require.NoError(t, err)
		assert.Equal(t, string(domain.DeployStateSubmitted), resp.State)
		assert.False(t, resp.IsFinal())
	})

	t.Run("waited failure is an outcome", func(t *testing.T) {
		exec, m := setupTestExecutor(t)
		outcome := domain.DeployOutcome{DeployHash: testHash, State: domain.DeployStateFailure, ErrorMessage: "User error: 2"}
		m.deploys.EXPECT().Submit(ctx, signed).Return(testHash, nil)
		m.deploys.EXPECT().Wait(ctx, testHash).
			Return(outcome, &domain.ContractExecutionError{DeployHash: testHash, Message: "User error: 2"})

		resp, err := exec.SubmitDeploy(ctx, signed, true)
		require.NoError(t, err)
		assert.Equal(t, "User error: 2", resp.ErrorMessage)
		assert.True(t, resp.IsFinal())
	})

	t.Run("waited timeout is an outcome", func(t *testing.T) {
		exec, m := setupTestExecutor(t)
		m.deploys.EXPECT().Submit(ctx, signed).Return(testHash, nil)
		m.deploys.EXPECT().Wait(ctx, testHash).
			Return(domain.DeployOutcome{DeployHash: testHash, State: domain.DeployStateTimedOut}, domain.ErrDeployTimeout)

		resp, err := exec.SubmitDeploy(ctx, signed, true)
		require.NoError(t, err)
		assert.Equal(t, string(domain.DeployStateTimedOut), resp.State)
	})

	t.Run("cancelled wait", func(t *testing.T) {
		exec, m := setupTestExecutor(t)
		m.deploys.EXPECT().Submit(ctx, signed).Return(testHash, nil)
		m.deploys.EXPECT().Wait(ctx, testHash).Return(domain.DeployOutcome{}, context.Canceled)

		_, err := exec.SubmitDeploy(ctx, signed, true)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("rejected", func(t *testing.T) {
		exec, m := setupTestExecutor(t)
		m.deploys.EXPECT().Submit(ctx, signed).Return("", &domain.SubmissionError{Code: -1, Message: "bad"})

		_, err := exec.SubmitDeploy(ctx, signed, false)
		assert.ErrorIs(t, err, domain.ErrSubmission)
	})
}

func TestGetDeploy(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid hash", func(t *testing.T) {
		exec, _ := setupTestExecutor(t)

		_, err := exec.GetDeploy(ctx, "zz")
		var apiErr *apierrors.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, apierrors.ErrCodeBadRequest, apiErr.Code)
	})

	t.Run("known", func(t *testing.T) {
		exec, m := setupTestExecutor(t)
		m.deploys.EXPECT().Outcome(ctx, testHash).
			Return(domain.DeployOutcome{DeployHash: testHash, State: domain.DeployStateSuccess, Cost: "100"}, nil)

		resp, err := exec.GetDeploy(ctx, testHash)
		require.NoError(t, err)
		assert.Equal(t, "100", resp.Cost)
	})
}

func TestApplyWalletEvent(t *testing.T) {
	ctx := context.Background()
	event := domain.WalletEvent{Type: domain.WalletEventUnlocked, Detail: domain.WalletState{IsConnected: true, IsUnlocked: true, ActiveKey: "01aa"}}

	t.Run("with account", func(t *testing.T) {
		exec, m := setupTestExecutor(t)
		account := domain.AccountHash{0x01}
		m.wallet.EXPECT().Apply(ctx, event).Return(event.Detail, nil)
		m.wallet.EXPECT().ActiveAccount(ctx).Return(&account, nil)

		resp, err := exec.ApplyWalletEvent(ctx, event)
		require.NoError(t, err)
		assert.True(t, resp.IsUnlocked)
		assert.Equal(t, account.String(), resp.ActiveAccount)
	})

	t.Run("account derivation failure is tolerated", func(t *testing.T) {
		exec, m := setupTestExecutor(t)
		m.wallet.EXPECT().Apply(ctx, event).Return(event.Detail, nil)
		m.wallet.EXPECT().ActiveAccount(ctx).Return(nil, assert.AnError)

		resp, err := exec.ApplyWalletEvent(ctx, event)
		require.NoError(t, err)
		assert.Empty(t, resp.ActiveAccount)
	})

	t.Run("rejected event", func(t *testing.T) {
		exec, m := setupTestExecutor(t)
		m.wallet.EXPECT().Apply(ctx, event).Return(domain.WalletState{}, assert.AnError)

		_, err := exec.ApplyWalletEvent(ctx, event)
		var apiErr *apierrors.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, apierrors.ErrCodeValidationFailed, apiErr.Code)
	})
}

func TestListItems(t *testing.T) {
	ctx := context.Background()

	t.Run("full page has next offset", func(t *testing.T) {
		exec, m := setupTestExecutor(t)
		items := []schema.Item{
			{ID: "a", Item: datatypes.JSON(`{"n":1}`), CreatedAt: time.Now()},
			{ID: "b", Item: datatypes.JSON(`{"n":2}`), CreatedAt: time.Now()},
		}
		m.store.EXPECT().ListItems(ctx, store.ItemFilter{ContractHash: "hash-aa", Limit: 2, Offset: 4}).Return(items, nil)

		resp, err := exec.ListItems(ctx, "hash-aa", 2, 4)
		require.NoError(t, err)
		require.Len(t, resp.Items, 2)
		require.NotNil(t, resp.NextOffset)
		assert.Equal(t, 6, *resp.NextOffset)
	})

	t.Run("default limit", func(t *testing.T) {
		exec, m := setupTestExecutor(t)
		m.store.EXPECT().ListItems(ctx, store.ItemFilter{Limit: constants.DEFAULT_ITEMS_LIMIT}).Return(nil, nil)

		resp, err := exec.ListItems(ctx, "", 0, 0)
		require.NoError(t, err)
		assert.Empty(t, resp.Items)
		assert.Nil(t, resp.NextOffset)
	})

	t.Run("catalog disabled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		exec := executor.NewExecutor(mocks.NewMockDeployService(ctrl), mocks.NewMockNFTViewer(ctrl),
			mocks.NewMockWalletSession(ctrl), mocks.NewMockViewCache(ctrl), nil)

		_, err := exec.ListItems(ctx, "", 10, 0)
		var apiErr *apierrors.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, apierrors.ErrCodeNotFound, apiErr.Code)
	})
}

func TestCreateItem(t *testing.T) {
	ctx := context.Background()
	req := dto.CreateItemRequest{ContractHash: "hash-aa", TokenID: "1", Item: json.RawMessage(`{"name":"One"}`)}

	t.Run("created", func(t *testing.T) {
		exec, m := setupTestExecutor(t)
		m.store.EXPECT().CreateItem(ctx, store.CreateItemInput{ContractHash: "hash-aa", TokenID: "1", Item: req.Item}).
			Return(&schema.Item{ID: "x", Item: datatypes.JSON(req.Item)}, true, nil)

		resp, created, err := exec.CreateItem(ctx, req)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "x", resp.ID)
	})

	t.Run("store failure", func(t *testing.T) {
		exec, m := setupTestExecutor(t)
		m.store.EXPECT().CreateItem(ctx, gomock.Any()).Return(nil, false, assert.AnError)

		_, _, err := exec.CreateItem(ctx, req)
		var apiErr *apierrors.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, apierrors.ErrCodeDatabaseError, apiErr.Code)
	})

	t.Run("invalid json", func(t *testing.T) {
		exec, _ := setupTestExecutor(t)

		_, _, err := exec.CreateItem(ctx, dto.CreateItemRequest{Item: json.RawMessage(`{"name":`)})
		assert.Error(t, err)
	})
}
