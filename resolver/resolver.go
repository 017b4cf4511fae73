// Package resolver answers the lookup tools against a reference data Store.
//
// Every resolver returns a result document, never a Go error: misses come back
// as an "error" entry plus a discovery list the caller can retry with.
package resolver

import (
	"github.com/zhubert/jds-knowledge/refdata"
)

// Resolver binds the lookup operations to one Store snapshot.
type Resolver struct {
	store   *refdata.Store
	aliases map[string]string
}

// New creates a Resolver for store.
func New(store *refdata.Store) *Resolver {
	return &Resolver{
		store:   store,
		aliases: buildAliases(store.ComponentNames()),
	}
}

// Store returns the snapshot the resolver reads from.
func (r *Resolver) Store() *refdata.Store {
	return r.store
}

func errorResult(message string) *refdata.Map {
	m := refdata.NewMap()
	m.Set("error", message)
	return m
}
