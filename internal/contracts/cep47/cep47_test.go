package cep47_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"

	"github.com/feral-file/cep-market-client/internal/clvalue"
	"github.com/feral-file/cep-market-client/internal/contracts/cep47"
	"github.com/feral-file/cep-market-client/internal/deploy"
	"github.com/feral-file/cep-market-client/internal/domain"
	"github.com/feral-file/cep-market-client/internal/mocks"
	"github.com/feral-file/cep-market-client/internal/providers/casper"
)

var (
	nftRef = domain.ContractReference{
		ContractHash:        "hash-" + strings.Repeat("aa", 32),
		ContractPackageHash: strings.Repeat("bb", 32),
	}
	wasmModule = append([]byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}, bytes.Repeat([]byte{0x02}, 8)...)
)

type testMocks struct {
	ctrl  *gomock.Controller
	rpc   *mocks.MockCasperClient
	clock *mocks.MockClock
}

func setupTest(t *testing.T) (*cep47.Deployer, *cep47.Client, *testMocks) {
	ctrl := gomock.NewController(t)
	tm := &testMocks{
		ctrl:  ctrl,
		rpc:   mocks.NewMockCasperClient(ctrl),
		clock: mocks.NewMockClock(ctrl),
	}
	tm.clock.EXPECT().Now().Return(time.Date(2023, 5, 6, 7, 8, 9, 0, time.UTC)).AnyTimes()

	builder := deploy.NewBuilder(deploy.Params{ChainName: "casper-test"}, tm.clock)
	return cep47.NewDeployer(builder, nftRef), cep47.NewClient(tm.rpc, nftRef), tm
}

func tearDownTest(tm *testMocks) {
	tm.ctrl.Finish()
}

func testKey(t *testing.T, fill string) domain.PublicKey {
	t.Helper()
	k, err := domain.ParsePublicKey("01" + strings.Repeat(fill, 32))
	require.NoError(t, err)
	return k
}

func argNames(d *deploy.Deploy) []string {
	var names []string
	for _, a := range d.Session.Args {
		names = append(names, a.Name)
	}
	return names
}

func storedValue(t *testing.T, v clvalue.Value) *casper.StoredValue {
	t.Helper()
	jv, err := clvalue.ToJSONValue(v)
	require.NoError(t, err)
	return &casper.StoredValue{CLValue: &jv}
}

func TestDeployer_Mint(t *testing.T) {
	deployer, _, tm := setupTest(t)
	defer tearDownTest(tm)

	sender := testKey(t, "11")
	recipient := testKey(t, "22")

	d, err := deployer.Mint(recipient.Hex(), []string{"5", "6"},
		[]map[string]string{{"name": "five"}, {"name": "six"}}, sender, "1000000000")
	require.NoError(t, err)

	assert.Equal(t, cep47.EntryPointMint, d.Session.EntryPoint)
	assert.Equal(t, []string{"recipient", "token_ids", "token_metas"}, argNames(d))

	r, _ := d.Session.Args.Get("recipient")
	formatted, _ := r.FormatKey()
	assert.Equal(t, recipient.AccountHash().String(), formatted)

	metas, _ := d.Session.Args.Get("token_metas")
	require.Len(t, metas.Items, 2)
	m, ok := metas.Items[1].AsStringMap()
	require.True(t, ok)
	assert.Equal(t, "six", m["name"])
}

func TestDeployer_MintValidation(t *testing.T) {
	deployer, _, tm := setupTest(t)
	defer tearDownTest(tm)

	sender := testKey(t, "11")

	_, err := deployer.Mint(sender.Hex(), nil, nil, sender, "1000000000")
	assert.True(t, errors.Is(err, domain.ErrEncoding))

	_, err = deployer.Mint(sender.Hex(), []string{"1", "2"}, []map[string]string{{}}, sender, "1000000000")
	assert.True(t, errors.Is(err, domain.ErrEncoding))

	_, err = deployer.Mint("nobody", []string{"1"}, []map[string]string{{}}, sender, "1000000000")
	assert.True(t, errors.Is(err, domain.ErrEncoding))

	_, err = deployer.Mint(sender.Hex(), []string{"1"}, []map[string]string{{}}, sender, "0")
	assert.True(t, errors.Is(err, domain.ErrInvalidAmount))
}

func TestDeployer_TokenCalls(t *testing.T) {
	deployer, _, tm := setupTest(t)
	defer tearDownTest(tm)

	sender := testKey(t, "11")
	escrow := "hash-" + strings.Repeat("ee", 32)

	tests := []struct {
		name       string
		build      func() (*deploy.Deploy, error)
		entryPoint string
		keyArg     string
	}{
		{
			name:       "burn",
			build:      func() (*deploy.Deploy, error) { return deployer.Burn(sender.Hex(), []string{"1"}, sender, "1000000000") },
			entryPoint: cep47.EntryPointBurn,
			keyArg:     "owner",
		},
		{
			name:       "transfer",
			build:      func() (*deploy.Deploy, error) { return deployer.Transfer(sender.Hex(), []string{"1"}, sender, "1000000000") },
			entryPoint: cep47.EntryPointTransfer,
			keyArg:     "recipient",
		},
		{
			name:       "approve",
			build:      func() (*deploy.Deploy, error) { return deployer.Approve(escrow, []string{"1"}, sender, "1000000000") },
			entryPoint: cep47.EntryPointApprove,
			keyArg:     "spender",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := tt.build()
			require.NoError(t, err)
			assert.Equal(t, tt.entryPoint, d.Session.EntryPoint)
			assert.Equal(t, []string{tt.keyArg, "token_ids"}, argNames(d))
			assert.NoError(t, d.Validate())
		})
	}

	_, err := deployer.Burn(sender.Hex(), []string{}, sender, "1000000000")
	assert.True(t, errors.Is(err, domain.ErrEncoding))
}

func TestDeployer_Install(t *testing.T) {
	deployer, _, tm := setupTest(t)
	defer tearDownTest(tm)

	sender := testKey(t, "11")
	d, err := deployer.Install(wasmModule, cep47.InstallArgs{
		Name:         "Gallery",
		Symbol:       "GAL",
		Meta:         map[string]string{"origin": "casper"},
		ContractName: "gallery",
	}, sender, "150000000000")
	require.NoError(t, err)
	assert.Equal(t, deploy.ItemModuleBytes, d.Session.Kind)
	assert.Equal(t, []string{"name", "symbol", "meta", "contract_name"}, argNames(d))

	_, err = deployer.Install([]byte("{}"), cep47.InstallArgs{}, sender, "150000000000")
	assert.True(t, errors.Is(err, domain.ErrInvalidWasm))
}

func TestClient_OwnerOfAndMeta(t *testing.T) {
	_, client, tm := setupTest(t)
	defer tearDownTest(tm)
	ctx := context.Background()

	owner := testKey(t, "33").AccountHash()
	tm.rpc.EXPECT().GetDictionaryItem(ctx, nftRef.ContractHash, cep47.DictOwners, "7").
		Return(storedValue(t, clvalue.KeyAccount(owner)), nil)
	tm.rpc.EXPECT().GetDictionaryItem(ctx, nftRef.ContractHash, cep47.DictMetadata, "7").
		Return(storedValue(t, clvalue.StringMap(map[string]string{"name": "Seven"})), nil)

	got, err := client.OwnerOf(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, owner.String(), got)

	meta, err := client.TokenMeta(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"name": "Seven"}, meta)
}

func TestClient_OwnerOfMissing(t *testing.T) {
	_, client, tm := setupTest(t)
	defer tearDownTest(tm)

	tm.rpc.EXPECT().GetDictionaryItem(gomock.Any(), nftRef.ContractHash, cep47.DictOwners, "99").
		Return(nil, &casper.RPCError{Code: -32003, Message: "state query failed: ValueNotFound"})

	_, err := client.OwnerOf(context.Background(), "99")
	assert.True(t, errors.Is(err, domain.ErrTokenNotFound))
}

func TestAllowanceKey(t *testing.T) {
	owner := testKey(t, "44")
	hash := owner.AccountHash()

	// Key::Account bytes followed by String bytes
	var buf []byte
	buf = append(buf, 0x00)
	buf = append(buf, hash[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, 2)
	buf = append(buf, "12"...)
	want := blake2b.Sum256(buf)

	got, err := cep47.AllowanceKey(hash.String(), "12")
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(want[:]), got)

	fromPublicKey, err := cep47.AllowanceKey(owner.Hex(), "12")
	require.NoError(t, err)
	assert.Equal(t, got, fromPublicKey)
}

func TestClient_Allowance(t *testing.T) {
	_, client, tm := setupTest(t)
	defer tearDownTest(tm)
	ctx := context.Background()

	owner := testKey(t, "44").AccountHash().String()
	escrow := [32]byte{0xee}
	itemKey, err := cep47.AllowanceKey(owner, "3")
	require.NoError(t, err)

	tm.rpc.EXPECT().GetDictionaryItem(ctx, nftRef.ContractHash, cep47.DictAllowances, itemKey).
		Return(storedValue(t, clvalue.KeyHash(escrow)), nil)
	spender, err := client.Allowance(ctx, owner, "3")
	require.NoError(t, err)
	assert.Equal(t, "hash-ee"+strings.Repeat("00", 31), spender)

	missingKey, err := cep47.AllowanceKey(owner, "4")
	require.NoError(t, err)
	tm.rpc.EXPECT().GetDictionaryItem(ctx, nftRef.ContractHash, cep47.DictAllowances, missingKey).
		Return(nil, &casper.RPCError{Code: -32003, Message: "ValueNotFound"})
	spender, err = client.Allowance(ctx, owner, "4")
	require.NoError(t, err)
	assert.Empty(t, spender)
}

func TestClient_SupplyAndBalance(t *testing.T) {
	_, client, tm := setupTest(t)
	defer tearDownTest(tm)
	ctx := context.Background()

	tm.rpc.EXPECT().QueryContractData(ctx, nftRef.ContractKey(), []string{cep47.NamedKeyTotalSupply}).
		Return(storedValue(t, clvalue.U256(big.NewInt(3))), nil)
	supply, err := client.TotalSupply(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), supply.Int64())

	owner := testKey(t, "55").AccountHash().String()
	balanceKey, err := cep47.BalanceKey(owner)
	require.NoError(t, err)
	tm.rpc.EXPECT().GetDictionaryItem(ctx, nftRef.ContractHash, cep47.DictBalances, balanceKey).
		Return(nil, &casper.RPCError{Code: -32003, Message: "ValueNotFound"})
	balance, err := client.BalanceOf(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance.Int64())

	tm.rpc.EXPECT().QueryContractData(ctx, nftRef.ContractKey(), []string{cep47.NamedKeyName}).
		Return(storedValue(t, clvalue.String("Gallery")), nil)
	name, err := client.Name(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Gallery", name)
}
