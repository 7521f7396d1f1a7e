package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/feral-file/cep-market-client/internal/deploy"
	"github.com/feral-file/cep-market-client/internal/domain"
	"github.com/feral-file/cep-market-client/internal/service"
)

var errNoKey = errors.New("secret_key_path is not configured")

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show node, contract and account information",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, _ []string) error {
			info := map[string]interface{}{}

			status, err := a.rpc.GetStatus(ctx)
			if err != nil {
				return fmt.Errorf("failed to get node status: %w", err)
			}
			info["chainspec_name"] = status.ChainspecName
			info["api_version"] = status.APIVersion

			if name, err := a.nft.Name(ctx); err == nil {
				info["nft_name"] = name
			}
			if symbol, err := a.nft.Symbol(ctx); err == nil {
				info["nft_symbol"] = symbol
			}
			if supply, err := a.nft.TotalSupply(ctx); err == nil {
				info["nft_total_supply"] = supply.String()
			}
			if name, err := a.market.Name(ctx); err == nil {
				info["market_name"] = name
			}
			if supply, err := a.market.TotalSupply(ctx); err == nil {
				info["market_item_total_supply"] = supply.String()
			}
			if escrow, err := a.market.MarketItemHash(ctx); err == nil {
				info["market_escrow"] = escrow
			}

			if a.signer != nil {
				key := a.signer.PublicKey()
				info["public_key"] = key.Hex()
				info["account_hash"] = key.AccountHash().String()
				if balance, err := a.rpc.AccountBalance(ctx, key); err == nil {
					info["balance"] = balance.String()
				}
				if owned, err := a.nft.BalanceOf(ctx, key.AccountHash().String()); err == nil {
					info["nft_balance"] = owned.String()
				}
			}
			return a.print(info)
		}),
	}
}

func newScanCmd() *cobra.Command {
	var owned bool
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Reconcile every token of the NFT contract",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, _ []string) error {
			var bar *progressbar.ProgressBar
			views, err := a.reconciler.ScanWithProgress(ctx, func(done, total int) {
				if bar == nil {
					bar = progressbar.NewOptions(total,
						progressbar.OptionSetWriter(os.Stderr),
						progressbar.OptionSetDescription("Scanning tokens"),
						progressbar.OptionShowCount(),
						progressbar.OptionClearOnFinish(),
					)
				}
				_ = bar.Set(done)
			})
			if bar != nil {
				_ = bar.Finish()
			}
			if err != nil {
				return err
			}

			if owned {
				filtered := views[:0]
				for _, v := range views {
					if v.IsOwner {
						filtered = append(filtered, v)
					}
				}
				views = filtered
			}
			return a.print(views)
		}),
	}
	cmd.Flags().BoolVar(&owned, "owned", false, "Only tokens owned by the configured key")
	return cmd
}

func newReconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile <token-id>",
		Short: "Show the reconciled view of one token",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app, args []string) error {
			view, err := a.reconciler.Reconcile(ctx, args[0])
			if err != nil {
				return err
			}
			return a.print(view)
		}),
	}
}

func newWaitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wait <deploy-hash>",
		Short: "Poll a deploy until it has an execution result",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app, args []string) error {
			if _, err := domain.ParseHash(args[0]); err != nil {
				return fmt.Errorf("invalid deploy hash %q: %w", args[0], err)
			}
			return printOutcome(a)(a.service.Wait(ctx, domain.NormalizeHash(args[0])))
		}),
	}
}

func newPutDeployCmd() *cobra.Command {
	var wait bool
	cmd := &cobra.Command{
		Use:   "put-deploy <file>",
		Short: "Submit a signed deploy JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app, args []string) error {
			signed, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read deploy: %w", err)
			}
			hash, err := a.service.Submit(ctx, signed)
			if err != nil {
				return err
			}
			if !wait {
				return a.print(domain.DeployOutcome{DeployHash: hash, State: domain.DeployStateSubmitted})
			}
			return printOutcome(a)(a.service.Wait(ctx, hash))
		}),
	}
	cmd.Flags().BoolVar(&wait, "wait", true, "Wait for the execution result")
	return cmd
}

// printOutcome prints the outcome of a finished wait. A failed or timed out deploy
// is printed and reported as an error so the exit status reflects it.
func printOutcome(a *app) func(outcome domain.DeployOutcome, err error) error {
	return func(outcome domain.DeployOutcome, err error) error {
		if outcome.DeployHash == "" {
			return err
		}
		if printErr := a.print(outcome); printErr != nil {
			return printErr
		}
		return err
	}
}

// deployFlags are shared by every command that builds and signs a deploy
type deployFlags struct {
	payment string
	dryRun  bool
}

func (f *deployFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.payment, "payment", "", "Payment amount in motes (default from config)")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Print the unsigned deploy without signing it")
}

// execute prints the unsigned deploy on dry run, otherwise signs, submits and waits for it
func (f *deployFlags) execute(ctx context.Context, a *app, prepare func(sender string) (*service.Prepared, error)) error {
	if a.signer == nil {
		return errNoKey
	}

	p, err := prepare(a.signer.PublicKey().Hex())
	if err != nil {
		return err
	}
	if f.dryRun {
		_, err := fmt.Fprintln(os.Stdout, string(p.JSON))
		return err
	}

	fmt.Fprintf(os.Stderr, "Submitting deploy %s\n", p.Deploy.HashHex())
	return printOutcome(a)(a.service.Execute(ctx, a.signer, p.Deploy))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func newMintCmd() *cobra.Command {
	var (
		flags     deployFlags
		recipient string
		tokenIDs  string
		metas     string
	)
	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Mint tokens with their metadata",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, _ []string) error {
			var tokenMetas []map[string]string
			if err := a.json.Unmarshal([]byte(metas), &tokenMetas); err != nil {
				return fmt.Errorf("--metas must be a JSON array of string maps: %w", err)
			}
			return flags.execute(ctx, a, func(sender string) (*service.Prepared, error) {
				return a.service.PrepareMint(ctx, service.MintInput{
					Sender:    sender,
					Recipient: recipient,
					TokenIDs:  splitList(tokenIDs),
					Metas:     tokenMetas,
					Payment:   flags.payment,
				})
			})
		}),
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&recipient, "recipient", "", "Recipient public key or account hash (default the signer)")
	cmd.Flags().StringVar(&tokenIDs, "token-ids", "", "Comma separated token ids")
	cmd.Flags().StringVar(&metas, "metas", "[]", `Token metadata, e.g. '[{"name":"One"}]'`)
	_ = cmd.MarkFlagRequired("token-ids")
	return cmd
}

func newBurnCmd() *cobra.Command {
	var (
		flags    deployFlags
		owner    string
		tokenIDs string
	)
	cmd := &cobra.Command{
		Use:   "burn",
		Short: "Burn tokens",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, _ []string) error {
			return flags.execute(ctx, a, func(sender string) (*service.Prepared, error) {
				return a.service.PrepareBurn(ctx, service.BurnInput{
					Sender:   sender,
					Owner:    owner,
					TokenIDs: splitList(tokenIDs),
					Payment:  flags.payment,
				})
			})
		}),
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&owner, "owner", "", "Token owner (default the signer)")
	cmd.Flags().StringVar(&tokenIDs, "token-ids", "", "Comma separated token ids")
	_ = cmd.MarkFlagRequired("token-ids")
	return cmd
}

func newTransferCmd() *cobra.Command {
	var (
		flags     deployFlags
		recipient string
		tokenIDs  string
	)
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer tokens to a recipient",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, _ []string) error {
			return flags.execute(ctx, a, func(sender string) (*service.Prepared, error) {
				return a.service.PrepareTransfer(ctx, service.TransferInput{
					Sender:    sender,
					Recipient: recipient,
					TokenIDs:  splitList(tokenIDs),
					Payment:   flags.payment,
				})
			})
		}),
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&recipient, "recipient", "", "Recipient public key or account hash")
	cmd.Flags().StringVar(&tokenIDs, "token-ids", "", "Comma separated token ids")
	_ = cmd.MarkFlagRequired("recipient")
	_ = cmd.MarkFlagRequired("token-ids")
	return cmd
}

func newApproveCmd() *cobra.Command {
	var (
		flags    deployFlags
		tokenIDs string
	)
	cmd := &cobra.Command{
		Use:   "approve",
		Short: "Approve the marketplace escrow to move tokens",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, _ []string) error {
			return flags.execute(ctx, a, func(sender string) (*service.Prepared, error) {
				return a.service.PrepareApprove(ctx, service.ApproveInput{
					Sender:   sender,
					TokenIDs: splitList(tokenIDs),
					Payment:  flags.payment,
				})
			})
		}),
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&tokenIDs, "token-ids", "", "Comma separated token ids")
	_ = cmd.MarkFlagRequired("token-ids")
	return cmd
}

func newListCmd() *cobra.Command {
	var (
		flags       deployFlags
		recipient   string
		nftContract string
		itemIDs     string
		tokenIDs    string
		prices      string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Create market items for approved tokens",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, _ []string) error {
			return flags.execute(ctx, a, func(sender string) (*service.Prepared, error) {
				return a.service.PrepareCreateListing(ctx, service.CreateListingInput{
					Sender:       sender,
					Recipient:    recipient,
					NFTContract:  nftContract,
					ItemIDs:      splitList(itemIDs),
					TokenIDs:     splitList(tokenIDs),
					AskingPrices: splitList(prices),
					Payment:      flags.payment,
				})
			})
		}),
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&recipient, "recipient", "", "Seller account (default the signer)")
	cmd.Flags().StringVar(&nftContract, "nft-contract", "", "NFT contract hash (default from config)")
	cmd.Flags().StringVar(&itemIDs, "item-ids", "", "Comma separated market item ids")
	cmd.Flags().StringVar(&tokenIDs, "token-ids", "", "Comma separated token ids, parallel to --item-ids")
	cmd.Flags().StringVar(&prices, "prices", "", "Comma separated asking prices in motes, parallel to --item-ids")
	_ = cmd.MarkFlagRequired("item-ids")
	_ = cmd.MarkFlagRequired("token-ids")
	_ = cmd.MarkFlagRequired("prices")
	return cmd
}

func newBuyCmd() *cobra.Command {
	var (
		flags     deployFlags
		recipient string
		itemID    string
		amount    string
	)
	cmd := &cobra.Command{
		Use:   "buy",
		Short: "Buy a market item with the offer purse module",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, _ []string) error {
			if _, err := deploy.ParseAmount(amount); err != nil {
				return err
			}
			return flags.execute(ctx, a, func(sender string) (*service.Prepared, error) {
				return a.service.PrepareProcessSale(ctx, service.ProcessSaleInput{
					Sender:    sender,
					Recipient: recipient,
					ItemID:    itemID,
					Amount:    amount,
					Payment:   flags.payment,
				})
			})
		}),
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&recipient, "recipient", "", "Buyer account (default the signer)")
	cmd.Flags().StringVar(&itemID, "item-id", "", "Market item id")
	cmd.Flags().StringVar(&amount, "amount", "", "Offer amount in motes")
	_ = cmd.MarkFlagRequired("item-id")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newInstallCmd() *cobra.Command {
	var (
		flags        deployFlags
		wasmPath     string
		name         string
		symbol       string
		meta         string
		contractName string
	)
	cmd := &cobra.Command{
		Use:       "install <nft|market>",
		Short:     "Install the NFT or market contract from its compiled module",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{service.ContractNFT, service.ContractMarket},
		RunE: withApp(func(ctx context.Context, a *app, args []string) error {
			wasm, err := os.ReadFile(wasmPath)
			if err != nil {
				return fmt.Errorf("failed to read contract module: %w", err)
			}
			contractMeta := map[string]string{}
			if err := a.json.Unmarshal([]byte(meta), &contractMeta); err != nil {
				return fmt.Errorf("--meta must be a JSON string map: %w", err)
			}
			return flags.execute(ctx, a, func(sender string) (*service.Prepared, error) {
				return a.service.PrepareInstall(ctx, service.InstallInput{
					Sender:       sender,
					Contract:     args[0],
					Wasm:         wasm,
					Name:         name,
					Symbol:       symbol,
					Meta:         contractMeta,
					ContractName: contractName,
					Payment:      flags.payment,
				})
			})
		}),
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&wasmPath, "wasm", "", "Path to the compiled contract module")
	cmd.Flags().StringVar(&name, "name", "", "Collection or market name")
	cmd.Flags().StringVar(&symbol, "symbol", "", "Collection or market symbol")
	cmd.Flags().StringVar(&meta, "meta", "{}", `Contract metadata, e.g. '{"origin":"gallery"}'`)
	cmd.Flags().StringVar(&contractName, "contract-name", "", "Named key the installer stores the contract under")
	_ = cmd.MarkFlagRequired("wasm")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("symbol")
	_ = cmd.MarkFlagRequired("contract-name")
	return cmd
}
