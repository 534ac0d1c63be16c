// Package storage provides content-addressed storage for model cards with
// pluggable backends.
//
// A model card is the off-chain document published alongside an asset record:
// display name, category, public metrics. Cards are stored and retrieved by
// the SHA-256 hash of their content, so any backend holding the bytes can
// serve them and replicas never diverge.
//
// Backends are specified by URI:
//
//   - file:///var/lib/marketplace/cards/
//   - s3://bucket-name/prefix/?region=us-west-2
//   - ipfs://ipfs.example.com:5001/
//   - vault://vault.example.com:8200/secret/marketplace?token=...
//
// MultiStorageBackend replicates writes across every available backend and
// serves reads from the first one holding the content. The factory builds
// single backends or a multi-backend from a URI list.
//
// Model cards and attachments live in separate namespaces; the ContentType
// argument selects which.
package storage
