// The marketplaced daemon serves the FHE model marketplace workflow over a
// JSON HTTP API: publishing encrypted quality scores, revealing them through
// on-chain verified decryption, and the asset list the presentation layer
// renders from.
package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"log/slog"
	"math/big"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	appcommon "github.com/modelmart/fhe-marketplace-client/common"
	"github.com/modelmart/fhe-marketplace-client/cmd/flags"
	"github.com/modelmart/fhe-marketplace-client/fhe"
	"github.com/modelmart/fhe-marketplace-client/gatewayresolver"
	"github.com/modelmart/fhe-marketplace-client/httpserver"
	"github.com/modelmart/fhe-marketplace-client/interfaces"
	"github.com/modelmart/fhe-marketplace-client/ledger"
	"github.com/modelmart/fhe-marketplace-client/metrics"
	"github.com/modelmart/fhe-marketplace-client/storage"
	"github.com/modelmart/fhe-marketplace-client/workflow"
)

func main() {
	app := &cli.App{
		Name:  "marketplaced",
		Usage: "Serve the FHE model marketplace workflow API",
		Flags: joinFlags(
			flags.ChainFlags,
			flags.FHEFlags,
			flags.ServerFlags,
			flags.CommonFlags,
			[]cli.Flag{flags.StorageURIFlag},
		),
		Action: runDaemon,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func joinFlags(groups ...[]cli.Flag) []cli.Flag {
	var all []cli.Flag
	for _, group := range groups {
		all = append(all, group...)
	}
	return all
}

func runDaemon(cCtx *cli.Context) error {
	logger := flags.SetupLogger(cCtx)
	ctx := context.Background()

	rpcAddress := cCtx.String(flags.RPCAddrFlag.Name)
	logger.Info("Connecting to Ethereum RPC", "address", rpcAddress)
	ethClient, err := ethclient.Dial(rpcAddress)
	if err != nil {
		logger.Error("Failed to dial RPC", "err", err)
		return err
	}

	contractAddress := common.HexToAddress(cCtx.String(flags.ContractAddrFlag.Name))
	gateway, err := ledger.NewOnchainLedgerClient(ethClient, ethClient, contractAddress)
	if err != nil {
		return fmt.Errorf("creating ledger client: %w", err)
	}

	identity, err := configureSigner(ctx, cCtx, ethClient, gateway, logger)
	if err != nil {
		return err
	}

	encryption, err := configureEncryption(cCtx, logger)
	if err != nil {
		return err
	}

	cardStore, err := configureCardStorage(cCtx, logger)
	if err != nil {
		return err
	}

	var contract interfaces.ContractAddress
	copy(contract[:], contractAddress.Bytes())

	coordinator, err := workflow.New(workflow.Config{
		Ledger:     gateway,
		Encryption: encryption,
		Contract:   contract,
		Identity:   identity,
		CardStore:  cardStore,
		Metrics:    metrics.NewWorkflowMetrics(appcommon.PackageName, prometheus.DefaultRegisterer),
		Log:        logger,
	})
	if err != nil {
		return err
	}

	if err := coordinator.Init(ctx); err != nil {
		logger.Error("Coordinator initialization failed", "err", err)
		return err
	}

	srv, err := httpserver.New(flags.ConfigureServer(cCtx, logger), httpserver.NewHandler(coordinator, logger))
	if err != nil {
		return err
	}
	srv.RunInBackground()

	exit := make(chan os.Signal, 1)
	signal.Notify(exit, os.Interrupt, syscall.SIGTERM)
	<-exit
	logger.Info("Shutting down")

	srv.Shutdown()
	return nil
}

// configureSigner wires the keyed transactor when a signer key is given and
// returns the operator identity. Without a key the daemon runs read-only.
func configureSigner(ctx context.Context, cCtx *cli.Context, ethClient *ethclient.Client, gateway *ledger.OnchainLedgerClient, logger *slog.Logger) (interfaces.AccountAddress, error) {
	var identity interfaces.AccountAddress

	signerKey := cCtx.String(flags.SignerKeyFlag.Name)
	if signerKey == "" {
		logger.Warn("No signer key configured, running read-only")
		return identity, nil
	}

	key, err := crypto.HexToECDSA(signerKey)
	if err != nil {
		return identity, fmt.Errorf("parsing signer key: %w", err)
	}

	chainID := new(big.Int).SetInt64(cCtx.Int64(flags.ChainIDFlag.Name))
	if chainID.Sign() == 0 {
		chainID, err = ethClient.ChainID(ctx)
		if err != nil {
			return identity, fmt.Errorf("querying chain id: %w", err)
		}
	}

	auth, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return identity, fmt.Errorf("creating transactor: %w", err)
	}
	gateway.SetTransactOpts(auth)

	copy(identity[:], crypto.PubkeyToAddress(key.PublicKey).Bytes())
	logger.Info("Transaction signer configured", "address", identity.String())
	return identity, nil
}

// configureEncryption selects the simulator or a relayer, discovering the
// relayer over DNS when no URL is given.
func configureEncryption(cCtx *cli.Context, logger *slog.Logger) (interfaces.EncryptionService, error) {
	if cCtx.Bool(flags.FHESimFlag.Name) {
		seedHex := cCtx.String(flags.FHESimSeedFlag.Name)
		if seedHex == "" {
			return nil, fmt.Errorf("%s is required with %s", flags.FHESimSeedFlag.Name, flags.FHESimFlag.Name)
		}
		seed, err := hex.DecodeString(seedHex)
		if err != nil {
			return nil, fmt.Errorf("parsing simulator seed: %w", err)
		}

		logger.Warn("Using in-process FHE simulator, not suitable for production")
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
		logger.Info("Discovered FHE relayer", "url", relayerURL, "candidates", len(endpoints))
	}

	return fhe.NewRelayerClient(relayerURL, logger), nil
}

// configureCardStorage builds the replicated model-card store from the
// storage-uri flags. No URIs means no card storage.
func configureCardStorage(cCtx *cli.Context, logger *slog.Logger) (interfaces.StorageBackend, error) {
	uris := cCtx.StringSlice(flags.StorageURIFlag.Name)
	if len(uris) == 0 {
		logger.Info("No storage URIs configured, model cards will not be stored")
		return nil, nil
	}

	locations := make([]interfaces.StorageBackendLocation, 0, len(uris))
	for _, uri := range uris {
		locations = append(locations, interfaces.StorageBackendLocation(uri))
	}

	return storage.NewFactory(logger).CreateMultiBackend(locations)
}
