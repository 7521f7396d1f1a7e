package signer_test

import (
	"context"
	"encoding/hex"
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/cep-market-client/internal/adapter"
	"github.com/feral-file/cep-market-client/internal/clvalue"
	"github.com/feral-file/cep-market-client/internal/deploy"
	"github.com/feral-file/cep-market-client/internal/domain"
	"github.com/feral-file/cep-market-client/internal/mocks"
	. "github.com/feral-file/cep-market-client/internal/signer"
)

var testRef = domain.ContractReference{
	ContractHash:        strings.Repeat("11", 32),
	ContractPackageHash: strings.Repeat("22", 32),
}

func buildDeploy(t *testing.T, sender domain.PublicKey) *deploy.Deploy {
	t.Helper()
	b := deploy.NewBuilder(deploy.Params{}, adapter.NewClock())
	args := clvalue.NewArgs().Add("token_ids", clvalue.List(clvalue.TypeU256, clvalue.U256(big.NewInt(1))))
	d, err := b.NewStoredContractCall(testRef, "burn", args, sender, "1000000000")
	require.NoError(t, err)
	return d
}

func TestKeySigner_SignDeploy(t *testing.T) {
	edSigner, err := NewEd25519Signer([]byte(strings.Repeat("s", 32)))
	require.NoError(t, err)

	secpSecret, err := hex.DecodeString(strings.Repeat("0f", 32))
	require.NoError(t, err)
	secpSigner, err := NewSecp256k1Signer(secpSecret)
	require.NoError(t, err)

	for name, s := range map[string]*KeySigner{"ed25519": edSigner, "secp256k1": secpSigner} {
		t.Run(name, func(t *testing.T) {
			d := buildDeploy(t, s.PublicKey())

			signed, err := SignDeploy(context.Background(), s, d)
			require.NoError(t, err)
			assert.Equal(t, d.Hash, signed.Hash)
			assert.True(t, signed.IsSignedBy(s.PublicKey()))
			require.Len(t, signed.Approvals, 1)
			assert.NoError(t, signed.Validate())
		})
	}
}

func TestKeySigner_RejectsForeignSigner(t *testing.T) {
	s, err := NewEd25519Signer([]byte(strings.Repeat("a", 32)))
	require.NoError(t, err)
	other, err := NewEd25519Signer([]byte(strings.Repeat("b", 32)))
	require.NoError(t, err)

	d := buildDeploy(t, s.PublicKey())
	js, err := deploy.ToJSON(d)
	require.NoError(t, err)

	_, err = s.Sign(context.Background(), js, other.PublicKey().Hex(), s.PublicKey().Hex())
	assert.True(t, errors.Is(err, domain.ErrWalletUnavailable))
}

func TestLoadKeySigner(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret.hex")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("0f", 32)+"\n"), 0600))

	s, err := LoadKeySigner("secp256k1", path)
	require.NoError(t, err)
	assert.Equal(t, domain.KeyAlgorithmSecp256k1, s.PublicKey().Algorithm)

	s, err = LoadKeySigner("ed25519", path)
	require.NoError(t, err)
	assert.Equal(t, domain.KeyAlgorithmEd25519, s.PublicKey().Algorithm)

	_, err = LoadKeySigner("rsa", path)
	assert.Error(t, err)

	_, err = LoadKeySigner("ed25519", filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestSignDeploy_GatewayErrors(t *testing.T) {
	local, err := NewEd25519Signer([]byte(strings.Repeat("k", 32)))
	require.NoError(t, err)
	key := local.PublicKey()

	tests := []struct {
		name   string
		setup  func(gw *mocks.MockGateway)
		expect error
	}{
		{
			name: "wallet not connected",
			setup: func(gw *mocks.MockGateway) {
				gw.EXPECT().IsConnected(gomock.Any()).Return(false, nil)
			},
			expect: domain.ErrWalletUnavailable,
		},
		{
			name: "wallet locked",
			setup: func(gw *mocks.MockGateway) {
				gw.EXPECT().IsConnected(gomock.Any()).Return(true, nil)
				gw.EXPECT().ActivePublicKey(gomock.Any()).Return(domain.PublicKey{}, domain.ErrWalletLocked)
			},
			expect: domain.ErrWalletLocked,
		},
		{
			name: "user rejected",
			setup: func(gw *mocks.MockGateway) {
				gw.EXPECT().IsConnected(gomock.Any()).Return(true, nil)
				gw.EXPECT().ActivePublicKey(gomock.Any()).Return(key, nil)
				gw.EXPECT().Sign(gomock.Any(), gomock.Any(), key.Hex(), key.Hex()).Return(nil, domain.ErrUserRejectedSigning)
			},
			expect: domain.ErrUserRejectedSigning,
		},
		{
			name: "active key is another account",
			setup: func(gw *mocks.MockGateway) {
				other, _ := NewEd25519Signer([]byte(strings.Repeat("z", 32)))
				gw.EXPECT().IsConnected(gomock.Any()).Return(true, nil)
				gw.EXPECT().ActivePublicKey(gomock.Any()).Return(other.PublicKey(), nil)
			},
			expect: domain.ErrWalletUnavailable,
		},
		{
			name: "wallet returns unsigned deploy",
			setup: func(gw *mocks.MockGateway) {
				gw.EXPECT().IsConnected(gomock.Any()).Return(true, nil)
				gw.EXPECT().ActivePublicKey(gomock.Any()).Return(key, nil)
				gw.EXPECT().Sign(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, js []byte, _, _ string) ([]byte, error) {
						return js, nil
					})
			},
			expect: domain.ErrInvalidDeploy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			gw := mocks.NewMockGateway(ctrl)
			tt.setup(gw)

			_, err := SignDeploy(context.Background(), gw, buildDeploy(t, key))
			assert.True(t, errors.Is(err, tt.expect), "got %v", err)
		})
	}
}
