// Package gestor is the Composition Root for the gestor persistence bridge.
//
// A class-management UI keeps its whole dataset in a single JSON document.
// gestor connects the core bridge (Domain Layer) with the filesystem adapter
// (Persistence Layer) using the Hexagonal Architecture pattern.
//
// Features:
//
//   - **Best-effort reads**: a missing or corrupted file never fails a read;
//     the last valid document is served instead.
//   - **Validated writes**: non-empty payloads must be JSON, and files are
//     replaced atomically.
//   - **Path resolution**: the data directory follows the packaged executable
//     or the development directory (see ResolveDataDir).
//   - **Host calls**: pkg/host exposes the bridge to an embedding UI.
//
// Usage:
//
//	bridge, err := gestor.New("./data", gestor.WithLogger(logger))
//
//	info, err := bridge.EnsureExists(ctx)
//	err = bridge.Write(ctx, `{"students":[]}`)
//	doc := bridge.Read(ctx)
package gestor
