package rules

import (
	"fmt"
	"sync/atomic"
)

// cacheGeneration is a process-wide mapping from zone id to already
// constructed Zone values. Clearing the cache atomically swaps this pointer
// for a fresh empty map; readers mid-lookup keep seeing the old generation,
// which is fine because Zones never mutate after construction.
var cacheGeneration atomic.Pointer[map[string]*Zone]

// localZone caches the lazily-resolved Local zone for the current cache
// generation (§5): ResolveLocal is consulted at most once per generation,
// and ClearCache resets this alongside the id-keyed map so the next Local
// call re-resolves instead of serving a stale handle.
var localZone atomic.Pointer[*Zone]

func init() {
	empty := make(map[string]*Zone)
	cacheGeneration.Store(&empty)
}

// cachedZone returns the cached zone for id, if any.
func cachedZone(id string) (*Zone, bool) {
	gen := *cacheGeneration.Load()
	z, ok := gen[id]
	return z, ok
}

// storeZone publishes z under id into a fresh generation built from the
// current one plus the new entry, so concurrent readers never observe a
// torn map.
func storeZone(id string, z *Zone) {
	current := *cacheGeneration.Load()
	next := make(map[string]*Zone, len(current)+1)
	for k, v := range current {
		next[k] = v
	}
	next[id] = z
	cacheGeneration.Store(&next)
}

// ClearCache atomically replaces the zone-id cache with a fresh empty one,
// and drops the cached Local zone so the next Local call re-resolves it.
func ClearCache() {
	empty := make(map[string]*Zone)
	cacheGeneration.Store(&empty)
	localZone.Store(nil)
}

// OpenZone returns the cached *Zone for id if one has already been built;
// otherwise it loads id's raw bytes via loader, builds a *Zone with decode,
// caches the result, and returns it. decode is injected rather than fixed to
// a concrete wire format (tzbin.Decode, a future tzreg-backed loader, ...) so
// this package never has to import one of its own consumers.
func OpenZone(id string, loader ByteLoader, decode DecodeBytesFunc) (*Zone, error) {
	if z, ok := cachedZone(id); ok {
		return z, nil
	}
	b, err := loader.LoadBytes(id)
	if err != nil {
		return nil, err
	}
	z, err := decode(b, id)
	if err != nil {
		return nil, err
	}
	storeZone(id, z)
	return z, nil
}

// Local implements the §5 Local-zone handle: resolver.ResolveLocal is
// consulted at most once per cache generation, decoding whichever of
// bytes/registry fields it returned (bytes take priority, matching
// ResolveLocal's own doc comment on when a collaborator supplies both).
// The resolved Zone is also published into the id-keyed cache under its own
// id, so a later FindZoneById/OpenZone call for that id is free.
func Local(resolver LocalResolver, decodeBytes DecodeBytesFunc, decodeRegistry DecodeRegistryFunc) (*Zone, error) {
	if z := localZone.Load(); z != nil {
		return *z, nil
	}
	id, b, registry, err := resolver.ResolveLocal()
	if err != nil {
		return nil, err
	}
	if z, ok := cachedZone(id); ok {
		localZone.Store(&z)
		return z, nil
	}

	var z *Zone
	switch {
	case b != nil:
		z, err = decodeBytes(b, id)
	case registry != nil:
		z, err = decodeRegistry(*registry, id)
	default:
		return nil, newError(ErrZoneNotFound, fmt.Errorf("resolveLocal returned neither bytes nor registry fields for id %q", id))
	}
	if err != nil {
		return nil, err
	}
	storeZone(id, z)
	localZone.Store(&z)
	return z, nil
}
