// The marketctl tool runs individual marketplace operations from the
// command line: publishing a model, revealing a score, listing assets, and
// probing contract availability.
package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/urfave/cli/v2"

	"github.com/modelmart/fhe-marketplace-client/cmd/flags"
	"github.com/modelmart/fhe-marketplace-client/fhe"
	"github.com/modelmart/fhe-marketplace-client/gatewayresolver"
	"github.com/modelmart/fhe-marketplace-client/interfaces"
	"github.com/modelmart/fhe-marketplace-client/ledger"
	"github.com/modelmart/fhe-marketplace-client/workflow"
)

var nameFlag = &cli.StringFlag{
	Name:     "name",
	Required: true,
	Usage:    "model display name",
}

var accuracyFlag = &cli.StringFlag{
	Name:  "accuracy",
	Usage: "model accuracy score; unparseable input coerces to 0",
}

var priceFlag = &cli.StringFlag{
	Name:  "price",
	Usage: "public asking price; unparseable input coerces to 0",
}

var categoryFlag = &cli.StringFlag{
	Name:  "category",
	Value: "AI",
	Usage: "model category tag",
}

func main() {
	chainAndFHE := append(append([]cli.Flag{}, flags.ChainFlags...), flags.FHEFlags...)
	app := &cli.App{
		Name:  "marketctl",
		Usage: "Run FHE marketplace operations from the command line",
		Flags: append(chainAndFHE, flags.CommonFlags...),
		Commands: []*cli.Command{
			{
				Name:  "publish",
				Usage: "encrypt and publish a model's quality score",
				Flags: []cli.Flag{nameFlag, accuracyFlag, priceFlag, categoryFlag},
				Action: func(cCtx *cli.Context) error {
					coordinator, err := buildCoordinator(cCtx)
					if err != nil {
						return err
					}

					id, err := coordinator.Publish(cCtx.Context, workflow.PublishInput{
						DisplayName: cCtx.String(nameFlag.Name),
						Accuracy:    cCtx.String(accuracyFlag.Name),
						Price:       cCtx.String(priceFlag.Name),
						Category:    cCtx.String(categoryFlag.Name),
					})
					if err != nil {
						return err
					}

					fmt.Println(id)
					return nil
				},
			},
			{
				Name:      "reveal",
				Usage:     "trigger verified decryption of an asset's score",
				ArgsUsage: "<asset-id>",
				Action: func(cCtx *cli.Context) error {
					if cCtx.NArg() != 1 {
						return fmt.Errorf("expected exactly one asset id")
					}

					coordinator, err := buildCoordinator(cCtx)
					if err != nil {
						return err
					}

					value, err := coordinator.Reveal(cCtx.Context, interfaces.AssetID(cCtx.Args().First()))
					if err != nil {
						return err
					}
					if value == nil {
						// A concurrent verification won; re-read the list.
						fmt.Println("already verified")
						return nil
					}

					fmt.Println(*value)
					return nil
				},
			},
			{
				Name:  "list",
				Usage: "list assets with aggregate statistics",
				Action: func(cCtx *cli.Context) error {
					coordinator, err := buildCoordinator(cCtx)
					if err != nil {
						return err
					}

					if err := coordinator.Refresh(cCtx.Context); err != nil {
						return err
					}

					out, err := json.MarshalIndent(struct {
						Assets []interfaces.AssetRecord `json:"assets"`
						Stats  workflow.Stats           `json:"stats"`
					}{coordinator.Assets(), coordinator.Stats()}, "", "  ")
					if err != nil {
						return err
					}

					fmt.Println(string(out))
					return nil
				},
			},
			{
				Name:  "check",
				Usage: "probe marketplace contract availability",
				Action: func(cCtx *cli.Context) error {
					coordinator, err := buildCoordinator(cCtx)
					if err != nil {
						return err
					}

					available, err := coordinator.CheckAvailability(cCtx.Context)
					if err != nil {
						return err
					}

					fmt.Println(available)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// buildCoordinator wires the workflow core against the configured chain and
// encryption service.
func buildCoordinator(cCtx *cli.Context) (*workflow.Coordinator, error) {
	logger := flags.SetupLogger(cCtx)
	ctx := context.Background()

	ethClient, err := ethclient.Dial(cCtx.String(flags.RPCAddrFlag.Name))
	if err != nil {
		return nil, fmt.Errorf("dialing RPC: %w", err)
	}

	contractAddress := common.HexToAddress(cCtx.String(flags.ContractAddrFlag.Name))
	gateway, err := ledger.NewOnchainLedgerClient(ethClient, ethClient, contractAddress)
	if err != nil {
		return nil, fmt.Errorf("creating ledger client: %w", err)
	}

	var identity interfaces.AccountAddress
	if signerKey := cCtx.String(flags.SignerKeyFlag.Name); signerKey != "" {
		key, err := crypto.HexToECDSA(signerKey)
		if err != nil {
			return nil, fmt.Errorf("parsing signer key: %w", err)
		}

		chainID := new(big.Int).SetInt64(cCtx.Int64(flags.ChainIDFlag.Name))
		if chainID.Sign() == 0 {
			chainID, err = ethClient.ChainID(ctx)
			if err != nil {
				return nil, fmt.Errorf("querying chain id: %w", err)
			}
		}

		auth, err := bind.NewKeyedTransactorWithChainID(key, chainID)
		if err != nil {
			return nil, fmt.Errorf("creating transactor: %w", err)
		}
		gateway.SetTransactOpts(auth)
		copy(identity[:], crypto.PubkeyToAddress(key.PublicKey).Bytes())
	}

	encryption, err := buildEncryption(cCtx, logger)
	if err != nil {
		return nil, err
	}

	var contract interfaces.ContractAddress
	copy(contract[:], contractAddress.Bytes())

	coordinator, err := workflow.New(workflow.Config{
		Ledger:     gateway,
		Encryption: encryption,
		Contract:   contract,
		Identity:   identity,
		Log:        logger,
	})
	if err != nil {
		return nil, err
	}

	if err := coordinator.Init(ctx); err != nil {
		return nil, err
	}
	return coordinator, nil
}

// buildEncryption mirrors the daemon's encryption selection: simulator,
// explicit relayer URL, or DNS discovery.
func buildEncryption(cCtx *cli.Context, logger *slog.Logger) (interfaces.EncryptionService, error) {
	if cCtx.Bool(flags.FHESimFlag.Name) {
		seed, err := hex.DecodeString(cCtx.String(flags.FHESimSeedFlag.Name))
		if err != nil {
			return nil, fmt.Errorf("parsing simulator seed: %w", err)
		}
		return fhe.NewSimService(seed)
	}

	relayerURL := cCtx.String(flags.RelayerURLFlag.Name)
	if relayerURL == "" {
		domain := cCtx.String(flags.ServiceDomainFlag.Name)
		if domain == "" {
			return nil, fmt.Errorf("either %s or %s is required", flags.RelayerURLFlag.Name, flags.ServiceDomainFlag.Name)
		}

		resolver := gatewayresolver.NewResolver(cCtx.String(flags.DNSResolverFlag.Name))
		endpoints, err := resolver.RelayerEndpoints(domain)
		if err != nil {
			return nil, fmt.Errorf("discovering relayer: %w", err)
		}
		relayerURL = endpoints[0]
	}

	return fhe.NewRelayerClient(relayerURL, logger), nil
}
