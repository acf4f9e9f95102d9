package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrNoPositions is returned when the position list contains no entries.
var ErrNoPositions = errors.New("export: position list holds no stage positions")

// StagePosition is one labeled XY stage coordinate from a Micro-Manager
// position list.
type StagePosition struct {
	Label string
	X     float64
	Y     float64
}

// Micro-Manager 2 position list JSON shape, reduced to the fields needed.
type positionListFile struct {
	Map struct {
		StagePositions struct {
			Array []struct {
				Label struct {
					Scalar string `json:"scalar"`
				} `json:"Label"`
				DevicePositions struct {
					Array []struct {
						PositionUm struct {
							Array []float64 `json:"array"`
						} `json:"Position_um"`
					} `json:"array"`
				} `json:"DevicePositions"`
			} `json:"array"`
		} `json:"StagePositions"`
	} `json:"map"`
}

// ReadStagePositions parses a Micro-Manager position list file into labeled
// XY coordinates. Positions holding only single-axis devices are skipped.
func ReadStagePositions(path string) ([]StagePosition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	var f positionListFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	var out []StagePosition

	for _, pos := range f.Map.StagePositions.Array {
		for _, dev := range pos.DevicePositions.Array {
			if len(dev.PositionUm.Array) < 2 {
				continue
			}

			out = append(out, StagePosition{
				Label: pos.Label.Scalar,
				X:     dev.PositionUm.Array[0],
				Y:     dev.PositionUm.Array[1],
			})
		}
	}

	if len(out) == 0 {
		return nil, ErrNoPositions
	}

	return out, nil
}
