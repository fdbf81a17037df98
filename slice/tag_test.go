package slice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/descent/parse"
	"github.com/dhamidi/descent/slice"
)

func TestTag(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		lit      string
		wantKind slice.TagErrorKind
		wantErr  bool
		wantPos  int
	}{
		{name: "match", input: "class Foo", lit: "class", wantPos: 5},
		{name: "whole input", input: "void", lit: "void", wantPos: 4},
		{name: "mismatch", input: "clasS", lit: "class", wantErr: true, wantKind: slice.TagMismatch},
		{name: "short input", input: "cl", lit: "class", wantErr: true, wantKind: slice.TagNotEnoughData},
		{name: "empty literal", input: "class", lit: "", wantErr: true, wantKind: slice.TagNotEnoughData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := slice.String[struct{}](tt.lit)(parse.NewDriver(), slice.New([]byte(tt.input)))
			pos, got, err, ok := r.Finish()
			assert.Equal(t, tt.wantPos, pos.Offset())
			if tt.wantErr {
				require.False(t, ok)
				assert.Equal(t, tt.wantKind, err.Kind)
				assert.True(t, err.Recoverable())
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.lit, string(got))
		})
	}
}

func TestTagAlternatives(t *testing.T) {
	keyword := parse.OneOf(
		slice.String[struct{}]("int"),
		slice.String[struct{}]("interface"),
		slice.String[struct{}]("long"),
	)
	pos, got := keyword(parse.NewDriver(), slice.New([]byte("long x"))).Unwrap()
	assert.Equal(t, "long", string(got))
	assert.Equal(t, 4, pos.Offset())

	pos, err := keyword(parse.NewDriver(), slice.New([]byte("x"))).UnwrapErr()
	assert.Equal(t, 0, pos.Offset())
	assert.EqualError(t, err, "not enough data for tag at offset 0x0")
}

func TestTagError(t *testing.T) {
	err := &slice.TagError{Kind: slice.TagMismatch, Offset: 16}
	assert.EqualError(t, err, "tag mismatch at offset 0x10")
}
