package classfile

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldDescriptor(t *testing.T) {
	tests := []struct {
		desc string
		want FieldType
		str  string
	}{
		{"I", FieldType{BaseType: "int"}, "int"},
		{"Z", FieldType{BaseType: "boolean"}, "boolean"},
		{"Ljava/lang/String;", FieldType{ClassName: "java/lang/String"}, "java.lang.String"},
		{"[[J", FieldType{BaseType: "long", ArrayDepth: 2}, "[][]long"},
		{"[Ljava/util/List;", FieldType{ClassName: "java/util/List", ArrayDepth: 1}, "[]java.util.List"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, err := ParseFieldDescriptor(tt.desc)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, *got); diff != "" {
				t.Errorf("ParseFieldDescriptor(%q) mismatch (-want +got):\n%s", tt.desc, diff)
			}
			assert.Equal(t, tt.str, got.String())
		})
	}
}

func TestParseFieldDescriptorErrors(t *testing.T) {
	tests := []struct {
		desc     string
		offset   int
		expected []string
		fatal    bool
	}{
		{"", 0, []string{"base type", `"L"`, `"["`}, false},
		{"Q", 0, []string{"base type", `"L"`, `"["`}, false},
		{"[Q", 1, []string{"base type", `"L"`, `"["`}, false},
		{"Ljava/lang/String", 1, []string{"class name terminated by ';'"}, true},
		{"L;", 1, []string{"class name terminated by ';'"}, true},
		{"II", 1, []string{"end of descriptor"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			_, err := ParseFieldDescriptor(tt.desc)
			require.Error(t, err)
			var derr *DescriptorError
			require.True(t, errors.As(err, &derr))
			assert.Equal(t, tt.offset, derr.Offset)
			assert.Equal(t, tt.expected, derr.Expected)
			assert.Equal(t, tt.fatal, derr.Fatal)
		})
	}
}

func TestParseMethodDescriptor(t *testing.T) {
	t.Run("void with parameters", func(t *testing.T) {
		md, err := ParseMethodDescriptor("(IJ[Ljava/lang/Object;)V")
		require.NoError(t, err)
		assert.Len(t, md.Parameters, 3)
		assert.Nil(t, md.ReturnType)
		assert.Equal(t, "(int, long, []java.lang.Object) void", md.String())
	})

	t.Run("no parameters", func(t *testing.T) {
		md, err := ParseMethodDescriptor("()Ljava/lang/String;")
		require.NoError(t, err)
		assert.Empty(t, md.Parameters)
		require.NotNil(t, md.ReturnType)
		assert.Equal(t, "java/lang/String", md.ReturnType.ClassName)
	})

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			desc   string
			offset int
		}{
			{"I)V", 0},
			{"(I", 2},
			{"(Q)V", 1},
			{"()", 2},
			{"()VV", 3},
			{"(Ljava/lang/String)V", 2},
		}
		for _, tt := range tests {
			_, err := ParseMethodDescriptor(tt.desc)
			require.Error(t, err, tt.desc)
			var derr *DescriptorError
			require.True(t, errors.As(err, &derr))
			assert.Equal(t, tt.offset, derr.Offset, tt.desc)
		}
	})
}
