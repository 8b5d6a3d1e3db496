package store

import (
	"encoding/json"
	"fmt"

	"github.com/praetorian-inc/html5lint/pkg/types"
)

// encodeProvenance flattens a provenance into its kind, display path and JSON form.
func encodeProvenance(prov types.Provenance) (kind, path, data string, err error) {
	switch prov.(type) {
	case types.FileProvenance, types.GitProvenance, types.ArchiveProvenance, types.RemoteProvenance:
	default:
		return "", "", "", fmt.Errorf("unknown provenance type: %T", prov)
	}
	raw, err := json.Marshal(prov)
	if err != nil {
		return "", "", "", fmt.Errorf("marshaling provenance: %w", err)
	}
	return prov.Kind(), prov.Path(), string(raw), nil
}

// decodeProvenance is the inverse of encodeProvenance.
func decodeProvenance(kind, data string) (types.Provenance, error) {
	var (
		prov types.Provenance
		err  error
	)
	switch kind {
	case "file":
		var p types.FileProvenance
		err = json.Unmarshal([]byte(data), &p)
		prov = p
	case "git":
		var p types.GitProvenance
		err = json.Unmarshal([]byte(data), &p)
		prov = p
	case "archive":
		var p types.ArchiveProvenance
		err = json.Unmarshal([]byte(data), &p)
		prov = p
	default:
		var p types.RemoteProvenance
		err = json.Unmarshal([]byte(data), &p)
		if p.Provider == "" {
			p.Provider = kind
		}
		prov = p
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s provenance: %w", kind, err)
	}
	return prov, nil
}
