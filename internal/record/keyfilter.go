package record

import (
	"encoding/json"
	"fmt"

	"github.com/hastd/bikedfr/internal/keys"
)

// KeyFilter serialises a keys.Filter as "Any" | {"NonWeak": threshold} |
// {"Weak": {type, threshold}}.
type KeyFilter keys.Filter

type weakPayload struct {
	Type      keys.WeakType `json:"type"`
	Threshold uint8         `json:"threshold"`
}

func (f KeyFilter) MarshalJSON() ([]byte, error) {
	ff := keys.Filter(f)
	switch ff.Kind {
	case keys.FilterAny:
		return json.Marshal("Any")
	case keys.FilterNonWeak:
		return json.Marshal(map[string]uint8{"NonWeak": ff.Threshold})
	case keys.FilterWeak:
		return json.Marshal(map[string]weakPayload{
			"Weak": {Type: ff.WeakType, Threshold: ff.Threshold},
		})
	default:
		return nil, fmt.Errorf("record: unknown key filter kind %v", ff.Kind)
	}
}

func (f *KeyFilter) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err == nil {
		if tag == "Any" {
			*f = KeyFilter{Kind: keys.FilterAny}
			return nil
		}
		return fmt.Errorf("record: unrecognised key filter tag %q", tag)
	}

	var nonWeak struct {
		NonWeak *uint8 `json:"NonWeak"`
	}
	if err := json.Unmarshal(data, &nonWeak); err == nil && nonWeak.NonWeak != nil {
		*f = KeyFilter{Kind: keys.FilterNonWeak, Threshold: *nonWeak.NonWeak}
		return nil
	}

	var weak struct {
		Weak *weakPayload `json:"Weak"`
	}
	if err := json.Unmarshal(data, &weak); err == nil && weak.Weak != nil {
		*f = KeyFilter{Kind: keys.FilterWeak, WeakType: weak.Weak.Type, Threshold: weak.Weak.Threshold}
		return nil
	}
	return fmt.Errorf("record: invalid key filter payload: %s", string(data))
}
