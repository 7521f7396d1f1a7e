package market_test

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/cep-market-client/internal/clvalue"
	"github.com/feral-file/cep-market-client/internal/contracts/market"
	"github.com/feral-file/cep-market-client/internal/deploy"
	"github.com/feral-file/cep-market-client/internal/domain"
	"github.com/feral-file/cep-market-client/internal/mocks"
	"github.com/feral-file/cep-market-client/internal/providers/casper"
)

var (
	marketRef = domain.ContractReference{
		ContractHash:        "hash-" + strings.Repeat("cd", 32),
		ContractPackageHash: strings.Repeat("ef", 32),
	}
	nftContract = "hash-" + strings.Repeat("aa", 32)
	offerPurse  = append([]byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}, bytes.Repeat([]byte{0x03}, 8)...)
)

type testMocks struct {
	ctrl  *gomock.Controller
	rpc   *mocks.MockCasperClient
	clock *mocks.MockClock
}

func setupTest(t *testing.T) (*market.Deployer, *market.Client, *testMocks) {
	ctrl := gomock.NewController(t)
	tm := &testMocks{
		ctrl:  ctrl,
		rpc:   mocks.NewMockCasperClient(ctrl),
		clock: mocks.NewMockClock(ctrl),
	}
	tm.clock.EXPECT().Now().Return(time.Date(2023, 5, 6, 7, 8, 9, 0, time.UTC)).AnyTimes()

	client, err := market.NewClient(tm.rpc, marketRef)
	require.NoError(t, err)
	builder := deploy.NewBuilder(deploy.Params{ChainName: "casper-test"}, tm.clock)
	return market.NewDeployer(builder, marketRef), client, tm
}

func tearDownTest(tm *testMocks) {
	tm.ctrl.Finish()
}

func testKey(t *testing.T) domain.PublicKey {
	t.Helper()
	k, err := domain.ParsePublicKey("01" + strings.Repeat("12", 32))
	require.NoError(t, err)
	return k
}

func storedValue(t *testing.T, v clvalue.Value) *casper.StoredValue {
	t.Helper()
	jv, err := clvalue.ToJSONValue(v)
	require.NoError(t, err)
	return &casper.StoredValue{CLValue: &jv}
}

func TestDeployer_CreateMarketItem(t *testing.T) {
	deployer, _, tm := setupTest(t)
	defer tearDownTest(tm)

	sender := testKey(t)
	d, err := deployer.CreateMarketItem(sender.Hex(),
		[]string{"0"}, []string{nftContract}, []string{"2000000"}, []string{"7"},
		sender, "3000000000")
	require.NoError(t, err)

	assert.Equal(t, market.EntryPointCreateMarketItem, d.Session.EntryPoint)
	var names []string
	for _, a := range d.Session.Args {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"recipient", "item_ids", "item_nft_contract_addresses", "item_asking_prices", "item_token_ids"}, names)

	addresses, _ := d.Session.Args.Get("item_nft_contract_addresses")
	require.Len(t, addresses.Items, 1)
	assert.Equal(t, bytes.Repeat([]byte{0xaa}, 32), addresses.Items[0].Raw)

	prices, _ := d.Session.Args.Get("item_asking_prices")
	assert.True(t, prices.Type.Equal(clvalue.ListOf(clvalue.TypeU512)))
	assert.NoError(t, d.Validate())
}

func TestDeployer_CreateMarketItemValidation(t *testing.T) {
	deployer, _, tm := setupTest(t)
	defer tearDownTest(tm)

	sender := testKey(t)
	tests := []struct {
		name      string
		itemIDs   []string
		contracts []string
		prices    []string
		tokenIDs  []string
	}{
		{name: "empty", itemIDs: nil, contracts: nil, prices: nil, tokenIDs: nil},
		{name: "missing price", itemIDs: []string{"0", "1"}, contracts: []string{nftContract, nftContract}, prices: []string{"1"}, tokenIDs: []string{"1", "2"}},
		{name: "missing token", itemIDs: []string{"0"}, contracts: []string{nftContract}, prices: []string{"1"}, tokenIDs: nil},
		{name: "bad contract", itemIDs: []string{"0"}, contracts: []string{"hash-zz"}, prices: []string{"1"}, tokenIDs: []string{"1"}},
		{name: "bad price", itemIDs: []string{"0"}, contracts: []string{nftContract}, prices: []string{"cheap"}, tokenIDs: []string{"1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := deployer.CreateMarketItem(sender.Hex(), tt.itemIDs, tt.contracts, tt.prices, tt.tokenIDs, sender, "3000000000")
			assert.True(t, errors.Is(err, domain.ErrEncoding))
		})
	}
}

func TestDeployer_ProcessMarketSale(t *testing.T) {
	deployer, _, tm := setupTest(t)
	defer tearDownTest(tm)

	sender := testKey(t)
	d, err := deployer.ProcessMarketSale(offerPurse, sender.Hex(), "4", "2000000", sender, "10000000000")
	require.NoError(t, err)

	assert.Equal(t, deploy.ItemModuleBytes, d.Session.Kind)
	amount, _ := d.Session.Args.Get("amount")
	assert.Equal(t, "2000000", amount.Int.String())
	assert.True(t, amount.Type.Equal(clvalue.TypeU512))
	hash, _ := d.Session.Args.Get("market_contract_hash")
	assert.Equal(t, bytes.Repeat([]byte{0xcd}, 32), hash.Raw)

	_, err = deployer.ProcessMarketSale([]byte("<html>"), sender.Hex(), "4", "2000000", sender, "10000000000")
	assert.True(t, errors.Is(err, domain.ErrInvalidWasm))

	_, err = deployer.ProcessMarketSale(offerPurse, sender.Hex(), "4", "0", sender, "10000000000")
	assert.True(t, errors.Is(err, domain.ErrInvalidAmount))
}

func TestClient_MarketItemHashCached(t *testing.T) {
	_, client, tm := setupTest(t)
	defer tearDownTest(tm)
	ctx := context.Background()

	escrow := [32]byte{0x99}
	tm.rpc.EXPECT().QueryContractData(ctx, marketRef.ContractKey(), []string{market.NamedKeyMarketItemHash}).
		Return(storedValue(t, clvalue.KeyHash(escrow)), nil).
		Times(1)

	first, err := client.MarketItemHash(ctx)
	require.NoError(t, err)
	second, err := client.MarketItemHash(ctx)
	require.NoError(t, err)

	assert.Equal(t, "hash-99"+strings.Repeat("00", 31), first)
	assert.Equal(t, first, second)
}

func TestClient_MarketItemHashRawBytes(t *testing.T) {
	_, client, tm := setupTest(t)
	defer tearDownTest(tm)

	tm.rpc.EXPECT().QueryContractData(gomock.Any(), marketRef.ContractKey(), []string{market.NamedKeyMarketItemHash}).
		Return(storedValue(t, clvalue.ByteArray(bytes.Repeat([]byte{0x42}, 32))), nil)

	h, err := client.MarketItemHash(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "account-hash-"+strings.Repeat("42", 32), h)
}

func TestClient_Listing(t *testing.T) {
	_, client, tm := setupTest(t)
	defer tearDownTest(tm)
	ctx := context.Background()

	ids := clvalue.Some(clvalue.List(clvalue.TypeU256, clvalue.U256(big.NewInt(0)), clvalue.U256(big.NewInt(3))))
	tm.rpc.EXPECT().GetDictionaryItem(ctx, marketRef.ContractHash, market.DictNFTMarketItemIDs, "7").
		Return(storedValue(t, ids), nil)
	tm.rpc.EXPECT().GetDictionaryItem(ctx, marketRef.ContractHash, market.DictItemStatuses, "3").
		Return(storedValue(t, clvalue.String("available")), nil)
	tm.rpc.EXPECT().GetDictionaryItem(ctx, marketRef.ContractHash, market.DictItemAskingPrices, "3").
		Return(storedValue(t, clvalue.U512(big.NewInt(2000000))), nil)

	itemIDs, err := client.MarketItemIDs(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "3"}, itemIDs)

	status, err := client.ItemStatus(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, domain.ListingStatusAvailable, status)

	price, err := client.ItemAskingPrice(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "2000000", price.String())
}

func TestClient_NeverListed(t *testing.T) {
	_, client, tm := setupTest(t)
	defer tearDownTest(tm)

	tm.rpc.EXPECT().GetDictionaryItem(gomock.Any(), marketRef.ContractHash, market.DictNFTMarketItemIDs, "8").
		Return(nil, &casper.RPCError{Code: -32003, Message: "ValueNotFound"})

	itemIDs, err := client.MarketItemIDs(context.Background(), "8")
	require.NoError(t, err)
	assert.Nil(t, itemIDs)
}
