package rules

import (
	"fmt"
	"os"
)

// NameKind selects which localized display name a NameLocalizer should return.
type NameKind int

const (
	GenericName NameKind = iota
	StandardNameKind
	DaylightNameKind
)

// ByteLoader is the external collaborator that delivers raw bytes for a
// zone id — typically a compiled tz-database file read from disk.
type ByteLoader interface {
	LoadBytes(id string) ([]byte, error)
}

// RegistryFields is the small fixed set of fields the host OS registry
// exposes for a zone; tzreg.Decode consumes these.
type RegistryFields struct {
	Bias               int32
	DaylightBias       int32
	StandardDate       [8]int16 // SYSTEMTIME: year,month,dayOfWeek,day,hour,minute,second,millisecond
	DaylightDate       [8]int16
	FirstYear, LastYear int
	HasDynamicRecords   bool
}

// RegistryLoader is the external collaborator that delivers registry fields
// for a zone id.
type RegistryLoader interface {
	LoadRegistry(id string) (RegistryFields, error)
}

// ZoneEnumerator lists every zone id the host knows about.
type ZoneEnumerator interface {
	Enumerate() ([]string, error)
}

// LocalResolver determines which zone the host currently considers "local."
// It is called once per cache generation (rules.Local caches the result).
// If both bytes and registry are non-nil, bytes takes priority.
type LocalResolver interface {
	ResolveLocal() (id string, bytes []byte, registry *RegistryFields, err error)
}

// NameLocalizer optionally supplies a locale-specific display name for a
// zone id; when absent, callers fall back to names embedded in the zone bytes.
type NameLocalizer interface {
	GetLocalizedName(id string, kind NameKind) (string, error)
}

// FileByteLoader is a trivial ByteLoader backed by a local directory,
// grounded on the teacher's own os.ReadFile use for reading TZif fixtures.
type FileByteLoader struct {
	Dir string
}

func (l FileByteLoader) LoadBytes(id string) ([]byte, error) {
	data, err := os.ReadFile(l.Dir + string(os.PathSeparator) + id)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, newError(ErrZoneNotFound, fmt.Errorf("zone %q: %w", id, err))
		}
		if os.IsPermission(err) {
			return nil, newError(ErrSecurity, fmt.Errorf("zone %q: %w", id, err))
		}
		return nil, newError(ErrZoneNotFound, err)
	}
	return data, nil
}
