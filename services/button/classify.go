package button

import (
	"time"

	"buttonled-go/types"
)

// Classifier maps a press duration to a PressKind.
type Classifier struct {
	LongPress time.Duration
}

// Classify returns Long for d >= LongPress, Short otherwise.
func (c Classifier) Classify(d time.Duration) types.PressKind {
	if d >= c.LongPress {
		return types.Long
	}
	return types.Short
}
