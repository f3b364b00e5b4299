// Package middleware provides ports.TreeStore decorators that protect the GitHub token of a
// tree at rest.
package middleware

import "github.com/aretw0/commandbar/pkg/ports"

// Middleware allows wrapping a TreeStore to add behavior.
type Middleware func(ports.TreeStore) ports.TreeStore

// Chain applies mws so that the first one is the outermost.
func Chain(store ports.TreeStore, mws ...Middleware) ports.TreeStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
