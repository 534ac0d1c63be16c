package common

// PackageName identifies this module in metrics namespaces and logs.
const PackageName = "fhe_marketplace_client"

// Version is set at build time via -ldflags.
var Version = "dev"
