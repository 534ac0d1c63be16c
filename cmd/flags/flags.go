// Package flags holds the CLI flags shared by the marketplace binaries.
package flags

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/modelmart/fhe-marketplace-client/common"
	"github.com/modelmart/fhe-marketplace-client/httpserver"
)

// SetupLogger builds the process logger from the log-* flags.
func SetupLogger(cCtx *cli.Context) (log *slog.Logger) {
	logger := common.SetupLogger(&common.LoggingOpts{
		Debug:   cCtx.Bool(LogDebugFlag.Name),
		JSON:    cCtx.Bool(LogJSONFlag.Name),
		Service: cCtx.String(LogServiceFlag.Name),
		Version: common.Version,
	})

	if cCtx.Bool(LogUIDFlag.Name) {
		id := uuid.Must(uuid.NewRandom())
		logger = logger.With("uid", id.String())
	}
	return logger
}

// ConfigureServer builds the HTTP server config from the server flags.
func ConfigureServer(cCtx *cli.Context, logger *slog.Logger) *httpserver.HTTPServerConfig {
	return &httpserver.HTTPServerConfig{
		ListenAddr:               cCtx.String(ListenAddrFlag.Name),
		MetricsAddr:              cCtx.String(MetricsAddrFlag.Name),
		Log:                      logger,
		EnablePprof:              cCtx.Bool(PprofFlag.Name),
		DrainDuration:            time.Duration(cCtx.Int64(DrainSecondsFlag.Name)) * time.Second,
		GracefulShutdownDuration: 30 * time.Second,
		ReadTimeout:              60 * time.Second,
		WriteTimeout:             30 * time.Second,
	}
}

var RPCAddrFlag = &cli.StringFlag{
	Name:  "rpc-addr",
	Value: "http://127.0.0.1:8545",
	Usage: "address to connect to RPC",
}

var ContractAddrFlag = &cli.StringFlag{
	Name:     "contract-address",
	Required: true,
	Usage:    "marketplace contract address, hex with or without 0x prefix",
}

var SignerKeyFlag = &cli.StringFlag{
	Name:    "signer-key",
	Usage:   "hex-encoded private key for signing transactions; omit for read-only mode",
	EnvVars: []string{"MARKETPLACE_SIGNER_KEY"},
}

var ChainIDFlag = &cli.Int64Flag{
	Name:  "chain-id",
	Value: 0,
	Usage: "chain id for the transaction signer; 0 queries the RPC node",
}

var RelayerURLFlag = &cli.StringFlag{
	Name:  "relayer-url",
	Usage: "FHE relayer base URL; overrides DNS discovery",
}

var ServiceDomainFlag = &cli.StringFlag{
	Name:  "service-domain",
	Usage: "domain to discover the FHE relayer under via DNS SRV",
}

var DNSResolverFlag = &cli.StringFlag{
	Name:  "dns-resolver",
	Usage: "DNS resolver address for relayer discovery (host:port)",
}

var FHESimFlag = &cli.BoolFlag{
	Name:  "fhe-sim",
	Value: false,
	Usage: "use the in-process FHE simulator instead of a relayer",
}

var FHESimSeedFlag = &cli.StringFlag{
	Name:  "fhe-sim-seed",
	Usage: "hex-encoded 32-byte seed for the FHE simulator",
}

var StorageURIFlag = &cli.StringSliceFlag{
	Name:  "storage-uri",
	Usage: "model-card storage backend URI (repeatable): file://, s3://, ipfs://, vault://",
}

var ListenAddrFlag = &cli.StringFlag{
	Name:  "listen-addr",
	Value: "127.0.0.1:8080",
	Usage: "address to listen on for API",
}

var MetricsAddrFlag = &cli.StringFlag{
	Name:  "metrics-addr",
	Value: "127.0.0.1:8090",
	Usage: "address to listen on for Prometheus metrics",
}

var LogJSONFlag = &cli.BoolFlag{
	Name:  "log-json",
	Value: false,
	Usage: "log in JSON format",
}

var LogDebugFlag = &cli.BoolFlag{
	Name:  "log-debug",
	Value: false,
	Usage: "log debug messages",
}

var LogUIDFlag = &cli.BoolFlag{
	Name:  "log-uid",
	Value: false,
	Usage: "generate a uuid and add to all log messages",
}

var LogServiceFlag = &cli.StringFlag{
	Name:  "log-service",
	Value: "fhe-marketplace",
	Usage: "add 'service' tag to logs",
}

var PprofFlag = &cli.BoolFlag{
	Name:  "pprof",
	Value: false,
	Usage: "enable pprof debug endpoint",
}

var DrainSecondsFlag = &cli.Int64Flag{
	Name:  "drain-seconds",
	Value: 45,
	Usage: "seconds to wait in drain HTTP request",
}

// CommonFlags apply to every binary.
var CommonFlags = []cli.Flag{
	LogJSONFlag,
	LogDebugFlag,
	LogUIDFlag,
	LogServiceFlag,
}

// ServerFlags apply to the daemon.
var ServerFlags = []cli.Flag{
	ListenAddrFlag,
	MetricsAddrFlag,
	PprofFlag,
	DrainSecondsFlag,
}

// ChainFlags apply to everything that talks to the ledger.
var ChainFlags = []cli.Flag{
	RPCAddrFlag,
	ContractAddrFlag,
	SignerKeyFlag,
	ChainIDFlag,
}

// FHEFlags select and locate the encryption service.
var FHEFlags = []cli.Flag{
	RelayerURLFlag,
	ServiceDomainFlag,
	DNSResolverFlag,
	FHESimFlag,
	FHESimSeedFlag,
}
