package record

import (
	"encoding/json"
	"fmt"

	"github.com/hastd/bikedfr/internal/ncw"
)

// Provenance serialises an ncw.Source as Random | {"NearCodeword": {class,
// l, delta}} | Other | Unknown, matching the reference's enum-tagged JSON.
type Provenance ncw.Source

type nearCodewordPayload struct {
	Class string `json:"class"`
	L     int    `json:"l"`
	Delta int    `json:"delta"`
}

func (p Provenance) MarshalJSON() ([]byte, error) {
	switch ncw.Source(p).Kind {
	case ncw.SourceRandom:
		return json.Marshal("Random")
	case ncw.SourceOther:
		return json.Marshal("Other")
	case ncw.SourceUnknown:
		return json.Marshal("Unknown")
	case ncw.SourceNearCodeword:
		set := ncw.Source(p).NCW
		return json.Marshal(map[string]nearCodewordPayload{
			"NearCodeword": {Class: set.Class.String(), L: set.L, Delta: set.Delta},
		})
	default:
		return nil, fmt.Errorf("record: unknown provenance kind %v", ncw.Source(p).Kind)
	}
}

func (p *Provenance) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err == nil {
		switch tag {
		case "Random":
			*p = Provenance{Kind: ncw.SourceRandom}
		case "Other":
			*p = Provenance{Kind: ncw.SourceOther}
		case "Unknown":
			*p = Provenance{Kind: ncw.SourceUnknown}
		default:
			return fmt.Errorf("record: unrecognised provenance tag %q", tag)
		}
		return nil
	}

	var wrapped struct {
		NearCodeword nearCodewordPayload `json:"NearCodeword"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return fmt.Errorf("record: invalid provenance: %w", err)
	}
	class, err := classFromString(wrapped.NearCodeword.Class)
	if err != nil {
		return err
	}
	*p = Provenance{
		Kind: ncw.SourceNearCodeword,
		NCW: ncw.Set{
			Class: class,
			L:     wrapped.NearCodeword.L,
			Delta: wrapped.NearCodeword.Delta,
		},
	}
	return nil
}

func classFromString(s string) (ncw.Class, error) {
	switch s {
	case "C":
		return ncw.ClassC, nil
	case "N":
		return ncw.ClassN, nil
	case "2N":
		return ncw.Class2N, nil
	default:
		return 0, fmt.Errorf("record: unrecognised near-codeword class %q", s)
	}
}
