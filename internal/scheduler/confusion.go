package scheduler

import "boolevald/pkg/types"

// Confusion tallies classification outcomes. Each resolved task increments
// exactly one counter.
type Confusion struct {
	TP, TN, FP, FN int
}

// Update records one (expected, predicted) pair.
func (c *Confusion) Update(expected, predicted bool) {
	switch {
	case expected && predicted:
		c.TP++
	case expected && !predicted:
		c.FN++
	case !expected && predicted:
		c.FP++
	default:
		c.TN++
	}
}

func (c Confusion) Total() int     { return c.TP + c.TN + c.FP + c.FN }
func (c Confusion) Correct() int   { return c.TP + c.TN }
func (c Confusion) Incorrect() int { return c.FP + c.FN }

func (c Confusion) Accuracy() float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}
	return float64(c.Correct()) / float64(total)
}

// Report projects the counters into the wire-visible report shape.
func (c Confusion) Report() types.Report {
	return types.Report{
		TruePositive:  c.TP,
		TrueNegative:  c.TN,
		FalsePositive: c.FP,
		FalseNegative: c.FN,
		Total:         c.Total(),
		Accuracy:      c.Accuracy(),
	}
}
