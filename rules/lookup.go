package rules

import (
	"fmt"
	"sort"
	"strings"
)

// MaxRegistryIdLength is the id length bound the registry platform enforces
// (§6); FindZoneById applies it to every id regardless of which collaborator
// backs the lookup, since the engine has no portable way to tell which
// platform it's running against.
const MaxRegistryIdLength = 255

// DecodeBytesFunc decodes a loaded byte blob into a Zone, e.g. tzbin.Decode.
type DecodeBytesFunc func(data []byte, id string) (*Zone, error)

// DecodeRegistryFunc decodes loaded registry fields into a Zone, e.g. tzreg.Decode.
type DecodeRegistryFunc func(fields RegistryFields, id string) (*Zone, error)

func validateZoneId(id string) error {
	if id == "" {
		return newError(ErrInvalidZone, fmt.Errorf("zone id must not be empty"))
	}
	if len(id) > MaxRegistryIdLength {
		return newError(ErrInvalidZone, fmt.Errorf("zone id %q exceeds %d characters", id, MaxRegistryIdLength))
	}
	if strings.ContainsRune(id, 0) {
		return newError(ErrInvalidZone, fmt.Errorf("zone id %q must not contain NUL", id))
	}
	return nil
}

// FindZoneById implements §6 findZoneById for a byte-backed collaborator: it
// validates id, then delegates to OpenZone so a second lookup for the same id
// is served from the cache rather than re-decoded.
func FindZoneById(id string, loader ByteLoader, decode DecodeBytesFunc) (*Zone, error) {
	if err := validateZoneId(id); err != nil {
		return nil, err
	}
	return OpenZone(id, loader, decode)
}

// FindZoneByIdFromRegistry implements §6 findZoneById for a registry-backed
// collaborator, the C7 counterpart to FindZoneById.
func FindZoneByIdFromRegistry(id string, loader RegistryLoader, decode DecodeRegistryFunc) (*Zone, error) {
	if err := validateZoneId(id); err != nil {
		return nil, err
	}
	if z, ok := cachedZone(id); ok {
		return z, nil
	}
	fields, err := loader.LoadRegistry(id)
	if err != nil {
		return nil, err
	}
	z, err := decode(fields, id)
	if err != nil {
		return nil, err
	}
	storeZone(id, z)
	return z, nil
}

// ListSystemZones implements §6 listSystemZones: enumerate every zone id the
// collaborator knows about, decode each from bytes, and return them sorted by
// BaseUtcOffset ascending, then DisplayName ascending (ordinal/byte-wise).
// A zone id that fails to decode is skipped rather than failing the whole
// listing, since one malformed entry in a system zone directory shouldn't
// hide every other zone from the caller.
func ListSystemZones(enum ZoneEnumerator, loader ByteLoader, decode DecodeBytesFunc) ([]*Zone, error) {
	ids, err := enum.Enumerate()
	if err != nil {
		return nil, err
	}
	zones := make([]*Zone, 0, len(ids))
	for _, id := range ids {
		b, err := loader.LoadBytes(id)
		if err != nil {
			continue
		}
		z, err := decode(b, id)
		if err != nil {
			continue
		}
		zones = append(zones, z)
	}
	sort.Slice(zones, func(i, j int) bool {
		if zones[i].baseUtcOffset != zones[j].baseUtcOffset {
			return zones[i].baseUtcOffset < zones[j].baseUtcOffset
		}
		return zones[i].displayName < zones[j].displayName
	})
	return zones, nil
}
