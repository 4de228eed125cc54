package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilebook/tilebook/internal/ir"
)

var (
	dashBase = ir.RGB{R: 200, G: 200, B: 200}
	dashDark = ir.RGB{R: 40, G: 40, B: 40}
)

func darkDashes(instrs []ir.Instruction) []ir.Line {
	var out []ir.Line
	for _, in := range instrs {
		if l, ok := in.(ir.Line); ok && l.Color == dashDark {
			out = append(out, l)
		}
	}
	return out
}

func TestDashedSegmentCounts(t *testing.T) {
	tests := []struct {
		name      string
		length    float64
		dash, gap float64
		wantFull  int
		wantFinal bool
	}{
		{name: "remainder becomes final dash", length: 10, dash: 2, gap: 1, wantFull: 3, wantFinal: true},
		{name: "exact periods end without remainder", length: 9, dash: 2, gap: 1, wantFull: 3, wantFinal: false},
		{name: "segment shorter than one period", length: 2.5, dash: 2, gap: 1, wantFull: 0, wantFinal: true},
		{name: "long run", length: 100, dash: 1.4, gap: 1.0, wantFull: 41, wantFinal: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instrs := DashedSegment(0, 0, tt.length, 0, tt.dash, tt.gap, 0.3, dashBase, dashDark)

			// The base line always comes first and spans the whole segment.
			base, ok := instrs[0].(ir.Line)
			require.True(t, ok)
			assert.Equal(t, dashBase, base.Color)
			assert.Equal(t, tt.length, base.X2)

			dashes := darkDashes(instrs)
			wantFull := int(math.Floor(tt.length / (tt.dash + tt.gap)))
			assert.Equal(t, tt.wantFull, wantFull, "test data sanity")

			if tt.wantFinal {
				require.Len(t, dashes, wantFull+1)
				last := dashes[len(dashes)-1]
				assert.Equal(t, tt.length, last.X2, "final dash must reach the exact segment end")
			} else {
				require.Len(t, dashes, wantFull)
			}
			for i := 0; i < wantFull; i++ {
				assert.InDelta(t, tt.dash, dashes[i].X2-dashes[i].X1, 1e-9, "full dash %d length", i)
				assert.InDelta(t, float64(i)*(tt.dash+tt.gap), dashes[i].X1, 1e-9, "full dash %d offset", i)
			}
		})
	}
}

func TestDashedSegmentDiagonal(t *testing.T) {
	instrs := DashedSegment(0, 0, 6, 8, 2, 1, 0.3, dashBase, dashDark)
	dashes := darkDashes(instrs)
	// Length 10, period 3: three full dashes plus the remainder dash.
	require.Len(t, dashes, 4)
	last := dashes[len(dashes)-1]
	assert.InDelta(t, 6, last.X2, 1e-9)
	assert.InDelta(t, 8, last.Y2, 1e-9)
}

func TestDashedSegmentDegenerate(t *testing.T) {
	instrs := DashedSegment(5, 5, 5, 5, 2, 1, 0.3, dashBase, dashDark)
	assert.Len(t, instrs, 1, "zero-length segment draws only the base line")
}

func TestCenterline(t *testing.T) {
	x1, y1, x2, y2 := Centerline(ir.Rect{X: 0, Y: 10, W: 40, H: 0.6})
	assert.Equal(t, [4]float64{0, 10.3, 40, 10.3}, [4]float64{x1, y1, x2, y2})

	x1, y1, x2, y2 = Centerline(ir.Rect{X: 4, Y: 0, W: 0.5, H: 20})
	assert.Equal(t, [4]float64{4.25, 0, 4.25, 20}, [4]float64{x1, y1, x2, y2})
}
