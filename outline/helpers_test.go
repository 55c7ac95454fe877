package outline_test

import (
	"testing"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/codec"
)

func encode(t *testing.T, pts []ink.StrokePoint) string {
	t.Helper()
	return codec.Encode(pts)
}
