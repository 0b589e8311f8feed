package chameleon

import (
	"encoding/json"
	"fmt"
	"os"
)

// Weights scores candidate buckets for one selection stage. A bucket's
// score is the weighted sum of its pixel count, its edge weight, its
// distance to the picked first background and foreground, its saturation
// and its contrast against the relevant earlier pick. Terms that do not
// apply to a stage are ignored.
type Weights struct {
	Count               float32 `json:"countWeight"`
	Edge                float32 `json:"edgeWeight"`
	Background1Distance float32 `json:"bg1DistanceWeight"`
	Foreground1Distance float32 `json:"fg1DistanceWeight"`
	Saturation          float32 `json:"saturationWeight"`
	Contrast            float32 `json:"contrastWeight"`
}

// Params holds the weights for the four selection stages, in the order
// they run.
type Params [4]Weights

// Selection stages, used to index Params.
const (
	StageBackground1 = iota
	StageForeground1
	StageBackground2
	StageForeground2
)

var defaultImageParams = Params{
	StageBackground1: {
		Count: 0.300,
		Edge:  1.000,
	},
	StageForeground1: {
		Count:               0.234,
		Edge:                -0.400,
		Background1Distance: 0.568,
		Foreground1Distance: 0.000,
		Saturation:          0.327,
		Contrast:            0.303,
	},
	StageBackground2: {
		Count:               1.000,
		Edge:                0.619,
		Background1Distance: -0.830,
		Foreground1Distance: 0.500,
	},
	StageForeground2: {
		Count:               0.700,
		Edge:                -0.100,
		Background1Distance: 0.410,
		Foreground1Distance: 0.396,
		Saturation:          0.134,
		Contrast:            0.112,
	},
}

var defaultIconParams = Params{
	StageBackground1: {
		Count: 1.0,
	},
	StageForeground1: {
		Count:               2.0,
		Background1Distance: 5.0,
		Saturation:          10.0,
		Contrast:            1.0,
	},
	StageBackground2: {
		Count:               2.0,
		Background1Distance: 100.0,
		Foreground1Distance: 10.0,
		Saturation:          5.0,
		Contrast:            1.0,
	},
	StageForeground2: {
		Count:               2.0,
		Background1Distance: 50.0,
		Foreground1Distance: 200.0,
		Saturation:          10.0,
		Contrast:            0.5,
	},
}

// DefaultImageParams returns the weights tuned for photographs and
// wallpapers: backgrounds are drawn to large, edge-heavy areas and the
// foregrounds to distant, contrasting colors. Use it with forced
// contrast.
func DefaultImageParams() *Params {
	p := defaultImageParams
	return &p
}

// DefaultIconParams returns the weights tuned for icons and logos, which
// favor saturated colors far from each other over edge presence.
func DefaultIconParams() *Params {
	p := defaultIconParams
	return &p
}

// ParseParams decodes a JSON array of four weight records.
func ParseParams(data []byte) (*Params, error) {
	var weights []Weights
	if err := json.Unmarshal(data, &weights); err != nil {
		return nil, fmt.Errorf("error unmarshalling params: %w", err)
	}
	if len(weights) != len(Params{}) {
		return nil, fmt.Errorf("expected %d weight records, got %d",
			len(Params{}), len(weights))
	}

	var p Params
	copy(p[:], weights)
	return &p, nil
}

// LoadParams reads a JSON params file: an array of four weight records
// in stage order, the same shape json.Marshal produces for Params.
func LoadParams(path string) (*Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading params: %w", err)
	}
	return ParseParams(data)
}
