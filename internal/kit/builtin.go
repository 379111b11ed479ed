package kit

import (
	"embed"
	"fmt"
	"sync"
)

//go:embed builtin/*.json
var builtinFS embed.FS

const (
	// DefaultKitID is the built-in kit selection falls back to.
	DefaultKitID = "72tuntia-standard"

	MinimalKitID = "minimal-essentials"
)

// builtinOrder is the display order of the shipped kits.
var builtinOrder = []string{DefaultKitID, MinimalKitID}

var (
	builtinOnce sync.Once
	builtinKits []Kit
	builtinErr  error
)

// LoadBuiltins parses the embedded kits through the same validator used for uploads.
func LoadBuiltins() ([]Kit, error) {
	builtinOnce.Do(func() {
		for _, id := range builtinOrder {
			data, err := builtinFS.ReadFile("builtin/" + id + ".json")
			if err != nil {
				builtinErr = fmt.Errorf("read builtin kit %s: %w", id, err)
				return
			}
			k, _, err := Parse(data)
			if err != nil {
				builtinErr = fmt.Errorf("builtin kit %s: %w", id, err)
				return
			}
			k.ID = id
			k.BuiltIn = true
			builtinKits = append(builtinKits, *k)
		}
	})
	if builtinErr != nil {
		return nil, builtinErr
	}
	out := make([]Kit, len(builtinKits))
	for i, k := range builtinKits {
		out[i] = k.Clone()
	}
	return out, nil
}

func IsBuiltinID(id string) bool {
	for _, b := range builtinOrder {
		if b == id {
			return true
		}
	}
	return false
}
