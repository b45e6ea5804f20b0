package pyramid

import (
	"fmt"

	"github.com/cocosip/go-superpixel/internal/logx"
)

// EdgePolicy decides what happens to images with an odd width or height.
type EdgePolicy int

const (
	// EdgeReject fails with pixel.ErrOddDimension.
	EdgeReject EdgePolicy = iota
	// EdgeReplicate pads the last column and/or row by replication before
	// transforming. Reconstruction crops the padding away again.
	EdgeReplicate
)

func (p EdgePolicy) String() string {
	switch p {
	case EdgeReject:
		return "reject"
	case EdgeReplicate:
		return "replicate"
	}
	return fmt.Sprintf("EdgePolicy(%d)", int(p))
}

// ParseEdgePolicy parses the names produced by EdgePolicy.String.
func ParseEdgePolicy(s string) (EdgePolicy, error) {
	switch s {
	case "reject", "":
		return EdgeReject, nil
	case "replicate", "pad":
		return EdgeReplicate, nil
	}
	return 0, fmt.Errorf("unknown edge policy %q", s)
}

// Options configures decomposition and reconstruction. The zero value is
// usable: reject odd sizes, decompose down to 1x1, run serially, no logging.
type Options struct {
	// Edge selects the odd dimension policy.
	Edge EdgePolicy

	// MaxLevels caps the number of levels Build produces. 0 means no cap.
	MaxLevels int

	// Workers is the number of goroutines transforming block rows of one
	// level. 0 and 1 run serially.
	Workers int

	// Logger receives per-level debug lines. nil disables logging.
	Logger logx.Logger
}

// Validate checks option ranges.
func (o Options) Validate() error {
	if o.Edge != EdgeReject && o.Edge != EdgeReplicate {
		return fmt.Errorf("invalid edge policy %d", int(o.Edge))
	}
	if o.MaxLevels < 0 {
		return fmt.Errorf("invalid max levels %d", o.MaxLevels)
	}
	if o.Workers < 0 {
		return fmt.Errorf("invalid worker count %d", o.Workers)
	}
	return nil
}

func (o Options) logger() logx.Logger {
	return logx.OrNop(o.Logger)
}
