//go:build !llama

package backend

// This file provides a no-CGO stub for the llama runtime. It is compiled when
// the 'llama' build tag is NOT set, keeping default builds and CI CGO-free.
// The real runtime lives in llama.go (tagged 'llama').

// llamaBuilt indicates this binary was compiled with real llama support.
var llamaBuilt = false

// Open fails fast: the llama runtime is not available in this build. This
// avoids any mocked behavior in binaries built without CGO support.
func Open(cfg Config) (Model, Context, error) {
	return nil, nil, ErrDependencyUnavailable("llama support not built (missing 'llama' build tag)")
}
