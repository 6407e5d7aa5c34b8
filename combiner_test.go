package imcombine_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/astropop-go/imcombine"
	"github.com/astropop-go/imcombine/frame"
)

func array2D(data [][]float64) frame.FrameInput {
	return frame.Array2DInput{Data: data, Unit: "adu"}
}

func TestCombine_EmptyStackFails(t *testing.T) {
	c := imcombine.NewCombiner()
	_, err := c.Combine(context.Background(), nil, imcombine.MethodMean)
	require.ErrorIs(t, err, frame.ErrEmptyStack)
}

func TestCombine_InvalidMethodFails(t *testing.T) {
	c := imcombine.NewCombiner()
	inputs := []frame.FrameInput{array2D([][]float64{{1}})}
	_, err := c.Combine(context.Background(), inputs, imcombine.Method("bogus"))
	require.ErrorIs(t, err, imcombine.ErrInvalidMethod)
}

// TestCombine_SingleFrameRoundTrip checks the round-trip invariant for the
// mean method: combining one frame with no clipping reproduces its data and
// mask.
func TestCombine_SingleFrameRoundTrip(t *testing.T) {
	c := imcombine.NewCombiner()
	inputs := []frame.FrameInput{array2D([][]float64{{1, 2}, {3, 4}})}

	out, err := c.Combine(context.Background(), inputs, imcombine.MethodMean)
	require.NoError(t, err)

	rows, err := out.Data.Rows(0, 2)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 2}, {3, 4}}, rows)
	for _, row := range out.Mask {
		for _, m := range row {
			require.False(t, m)
		}
	}
}

// TestCombine_MaskMonotonicity checks invariant 2: a pixel masked in every
// input frame is masked in the output, for every method.
func TestCombine_MaskMonotonicity(t *testing.T) {
	for _, method := range []imcombine.Method{imcombine.MethodMedian, imcombine.MethodMean, imcombine.MethodSum} {
		native1 := &frame.Frame{
			Data: frame.NewInMemory([][]float64{{1, 2}}), Mask: [][]bool{{true, false}},
			Unit: "adu", Meta: frame.NewMeta(), Height: 1, Width: 2,
		}
		native2 := &frame.Frame{
			Data: frame.NewInMemory([][]float64{{3, 4}}), Mask: [][]bool{{true, false}},
			Unit: "adu", Meta: frame.NewMeta(), Height: 1, Width: 2,
		}
		c := imcombine.NewCombiner()
		inputs := []frame.FrameInput{frame.NativeFrameInput{Frame: native1}, frame.NativeFrameInput{Frame: native2}}

		out, err := c.Combine(context.Background(), inputs, method)
		require.NoError(t, err)
		require.True(t, out.Mask[0][0], "method %s: pixel masked in all frames must be masked in output", method)
		require.False(t, out.Mask[0][1])
	}
}

// TestCombine_S6_MedianUncertainty checks the exact testable identity: for
// data = base*k with k in {0.8,1.0,1.2,1.0,1.2} and sigma_i = 0.1*data*k,
// median combine reproduces data==base and uncertainty == std(k)/sqrt(5)*base.
func TestCombine_S6_MedianUncertainty(t *testing.T) {
	base := 100.0
	ks := []float64{0.8, 1.0, 1.2, 1.0, 1.2}

	var inputs []frame.FrameInput
	for _, k := range ks {
		v := base * k
		sigma := 0.1 * v * k
		f := &frame.Frame{
			Data:        frame.NewInMemory([][]float64{{v}}),
			Uncertainty: frame.NewInMemory([][]float64{{sigma}}),
			Mask:        [][]bool{{false}},
			Unit:        "adu",
			Meta:        frame.NewMeta(),
			Height:      1,
			Width:       1,
		}
		inputs = append(inputs, frame.NativeFrameInput{Frame: f})
	}

	c := imcombine.NewCombiner()
	out, err := c.Combine(context.Background(), inputs, imcombine.MethodMedian)
	require.NoError(t, err)

	dataRows, err := out.Data.Rows(0, 1)
	require.NoError(t, err)
	require.InDelta(t, base, dataRows[0][0], 1e-9)

	uRows, err := out.Uncertainty.Rows(0, 1)
	require.NoError(t, err)
	want := 0.06693280212272602 * base
	require.InDelta(t, want, uRows[0][0], 1e-6)

	n, ok := out.Meta.Get("astropop imcombine nimages")
	require.True(t, ok)
	require.Equal(t, 5, n)
	m, ok := out.Meta.Get("astropop imcombine method")
	require.True(t, ok)
	require.Equal(t, "median", m)
}

func TestCombine_SumUncertaintyPropagation(t *testing.T) {
	mk := func(v, sigma float64) frame.FrameInput {
		return frame.NativeFrameInput{Frame: &frame.Frame{
			Data:        frame.NewInMemory([][]float64{{v}}),
			Uncertainty: frame.NewInMemory([][]float64{{sigma}}),
			Mask:        [][]bool{{false}},
			Unit:        "adu",
			Meta:        frame.NewMeta(),
			Height:      1,
			Width:       1,
		}}
	}
	inputs := []frame.FrameInput{mk(1, 3), mk(2, 4)}

	c := imcombine.NewCombiner()
	out, err := c.Combine(context.Background(), inputs, imcombine.MethodSum)
	require.NoError(t, err)

	dataRows, _ := out.Data.Rows(0, 1)
	require.Equal(t, 3.0, dataRows[0][0])

	uRows, _ := out.Uncertainty.Rows(0, 1)
	require.InDelta(t, math.Sqrt(9+16), uRows[0][0], 1e-9)
}

func TestCombine_DegradedUncertaintyDisablesPropagation(t *testing.T) {
	withSigma := &frame.Frame{
		Data: frame.NewInMemory([][]float64{{1}}), Uncertainty: frame.NewInMemory([][]float64{{0.1}}),
		Mask: [][]bool{{false}}, Unit: "adu", Meta: frame.NewMeta(), Height: 1, Width: 1,
	}
	withoutSigma := &frame.Frame{
		Data: frame.NewInMemory([][]float64{{2}}), Mask: [][]bool{{false}},
		Unit: "adu", Meta: frame.NewMeta(), Height: 1, Width: 1,
	}
	inputs := []frame.FrameInput{frame.NativeFrameInput{Frame: withSigma}, frame.NativeFrameInput{Frame: withoutSigma}}

	c := imcombine.NewCombiner()
	out, err := c.Combine(context.Background(), inputs, imcombine.MethodMean)
	require.NoError(t, err)
	require.Nil(t, out.Uncertainty)
}

func TestCombine_ZeroContributorsMasksPixel(t *testing.T) {
	f1 := &frame.Frame{Data: frame.NewInMemory([][]float64{{1}}), Mask: [][]bool{{true}}, Unit: "adu", Meta: frame.NewMeta(), Height: 1, Width: 1}
	f2 := &frame.Frame{Data: frame.NewInMemory([][]float64{{2}}), Mask: [][]bool{{true}}, Unit: "adu", Meta: frame.NewMeta(), Height: 1, Width: 1}

	c := imcombine.NewCombiner()
	out, err := c.Combine(context.Background(), []frame.FrameInput{
		frame.NativeFrameInput{Frame: f1}, frame.NativeFrameInput{Frame: f2},
	}, imcombine.MethodSum)
	require.NoError(t, err)
	require.True(t, out.Mask[0][0])
}

// outlierStack returns 25 single-pixel frames of value 1, except frame 6
// which holds 1000.
func outlierStack() []frame.FrameInput {
	inputs := make([]frame.FrameInput, 0, 25)
	for i := 0; i < 25; i++ {
		v := 1.0
		if i == 6 {
			v = 1000
		}
		inputs = append(inputs, array2D([][]float64{{v}}))
	}
	return inputs
}

func TestSetSigmaClip_DefaultsEstimatorsWhenUnspecified(t *testing.T) {
	c := imcombine.NewCombiner()
	require.NoError(t, c.SetSigmaClip([]float64{3}, "", ""))

	// The median/mad_std defaults reject the outlier, leaving a mean of 1.
	out, err := c.Combine(context.Background(), outlierStack(), imcombine.MethodMean)
	require.NoError(t, err)
	dataRows, _ := out.Data.Rows(0, 1)
	require.InDelta(t, 1.0, dataRows[0][0], 1e-9)
}

func TestSetSigmaClip_UnknownEstimatorFails(t *testing.T) {
	c := imcombine.NewCombiner()
	err := c.SetSigmaClip([]float64{3}, "bogus", "mad_std")
	require.Error(t, err)
	var cfgErr *imcombine.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestSetSigmaClip_NilDisables(t *testing.T) {
	c := imcombine.NewCombiner()
	require.NoError(t, c.SetSigmaClip([]float64{3}, "", ""))
	require.NoError(t, c.SetSigmaClip(nil, "", ""))

	// With clipping disabled the outlier stays in: (24*1 + 1000) / 25.
	out, err := c.Combine(context.Background(), outlierStack(), imcombine.MethodMean)
	require.NoError(t, err)
	dataRows, _ := out.Data.Rows(0, 1)
	require.InDelta(t, 40.96, dataRows[0][0], 1e-9)
}

func TestSetMinMaxClip_SwapsInvertedBounds(t *testing.T) {
	c := imcombine.NewCombiner()
	lo, hi := 10.0, 2.0
	require.NoError(t, c.SetMinMaxClip(&lo, &hi))

	// Swapped to [2, 10]: 1 and 20 are rejected and 5 alone remains.
	inputs := []frame.FrameInput{array2D([][]float64{{1}}), array2D([][]float64{{5}}), array2D([][]float64{{20}})}
	out, err := c.Combine(context.Background(), inputs, imcombine.MethodMean)
	require.NoError(t, err)
	require.False(t, out.Mask[0][0])
	dataRows, _ := out.Data.Rows(0, 1)
	require.InDelta(t, 5.0, dataRows[0][0], 1e-9)
}

func TestSetMergeHeader_SelectedKeysRequiresKeys(t *testing.T) {
	c := imcombine.NewCombiner()
	err := c.SetMergeHeader(imcombine.MergeSelectedKeys, nil)
	require.Error(t, err)
}

// TestCombine_S3_SigmaClipRejectsOutlierFrame checks that sigma clipping
// rejects the single outlier frame's contribution while keeping the rest.
func TestCombine_S3_SigmaClipRejectsOutlierFrame(t *testing.T) {
	mk := func(v float64) frame.FrameInput {
		return array2D([][]float64{{v}})
	}
	inputs := make([]frame.FrameInput, 0, 25)
	for i := 0; i < 25; i++ {
		v := 1.0
		if i == 6 {
			v = 1000
		}
		inputs = append(inputs, mk(v))
	}

	c := imcombine.NewCombiner()
	require.NoError(t, c.SetSigmaClip([]float64{3}, "median", "mad_std"))
	out, err := c.Combine(context.Background(), inputs, imcombine.MethodMean)
	require.NoError(t, err)

	dataRows, _ := out.Data.Rows(0, 1)
	require.InDelta(t, 1.0, dataRows[0][0], 1e-9)
}
