package inputsample

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/flapek/decision-trees-ID3-C4.5/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	requested []string
	rejected  []string
}

func (r *recorder) RequestValueFor(f feature.Feature) error {
	r.requested = append(r.requested, f.Name())
	return nil
}

func (r *recorder) RejectValueFor(f feature.Feature, v string) error {
	r.rejected = append(r.rejected, f.Name()+"="+v)
	return nil
}

func TestValueFor(t *testing.T) {
	ctx := context.Background()
	outlook := feature.NewDiscreteFeature("outlook", 0, []string{"sunny", "rainy"})
	temperature := feature.NewDiscreteFeature("temperature", 1, nil)
	rec := &recorder{}
	s := New(strings.NewReader("foggy\n\nrainy\n  cool \n"), []feature.Feature{outlook, temperature}, rec)

	v, err := s.ValueFor(ctx, outlook)
	require.NoError(t, err)
	assert.Equal(t, "rainy", v)
	v, err = s.ValueFor(ctx, outlook)
	require.NoError(t, err)
	assert.Equal(t, "rainy", v)
	v, err = s.ValueFor(ctx, temperature)
	require.NoError(t, err)
	assert.Equal(t, "cool", v)

	assert.Equal(t, []string{"outlook", "temperature"}, rec.requested)
	assert.Equal(t, []string{"outlook=foggy", "outlook="}, rec.rejected)

	_, err = s.ValueFor(ctx, feature.NewDiscreteFeature("windy", 2, nil))
	assert.Error(t, err)
}

func TestValueForEOF(t *testing.T) {
	f := feature.NewDiscreteFeature("outlook", 0, []string{"sunny"})
	s := New(strings.NewReader("rainy\n"), []feature.Feature{f}, &recorder{})
	_, err := s.ValueFor(context.Background(), f)
	assert.Equal(t, io.ErrUnexpectedEOF, err)
}
