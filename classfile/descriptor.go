package classfile

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/dhamidi/descent/parse"
	"github.com/dhamidi/descent/slice"
)

type FieldType struct {
	BaseType   string
	ClassName  string
	ArrayDepth int
}

func (ft *FieldType) String() string {
	var sb strings.Builder
	for i := 0; i < ft.ArrayDepth; i++ {
		sb.WriteString("[]")
	}
	if ft.BaseType != "" {
		sb.WriteString(ft.BaseType)
	} else {
		sb.WriteString(InternalToSourceName(ft.ClassName))
	}
	return sb.String()
}

type MethodDescriptor struct {
	Parameters []FieldType
	// ReturnType is nil for void.
	ReturnType *FieldType
}

func (md *MethodDescriptor) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	for i, p := range md.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(")")
	if md.ReturnType != nil {
		sb.WriteString(" ")
		sb.WriteString(md.ReturnType.String())
	} else {
		sb.WriteString(" void")
	}
	return sb.String()
}

// DescriptorError reports where a descriptor stopped making sense and what
// would have been accepted there.
type DescriptorError struct {
	Offset   int
	Expected []string
	// Fatal is set for errors that no other alternative could fix, such as
	// a class name without its terminating semicolon.
	Fatal bool
}

func (e *DescriptorError) Error() string {
	return fmt.Sprintf("invalid descriptor at offset %d: expected %s", e.Offset, strings.Join(e.Expected, " or "))
}

func (e *DescriptorError) Recoverable() bool { return !e.Fatal }

func expected(pos slice.BytePos, what ...string) *DescriptorError {
	return &DescriptorError{Offset: pos.Offset(), Expected: what}
}

// merge folds the errors kept by a FurthestErrors accumulator, which all
// share one offset, into a single error.
func merge(errs []*DescriptorError) *DescriptorError {
	merged := &DescriptorError{Offset: errs[0].Offset}
	for _, err := range errs {
		merged.Expected = append(merged.Expected, err.Expected...)
		merged.Fatal = merged.Fatal || err.Fatal
	}
	return merged
}

type descDriver = parse.Driver[struct{}]

// ParseFieldDescriptor parses a field descriptor such as "[Ljava/lang/String;".
func ParseFieldDescriptor(desc string) (*FieldType, error) {
	r := whole(fieldType)(parse.NewDriver(), slice.New([]byte(desc)))
	_, ft, err, ok := r.Finish()
	if !ok {
		return nil, err
	}
	return &ft, nil
}

// ParseMethodDescriptor parses a method descriptor such as "(IJ)V".
func ParseMethodDescriptor(desc string) (*MethodDescriptor, error) {
	r := whole(methodDescriptor)(parse.NewDriver(), slice.New([]byte(desc)))
	_, md, err, ok := r.Finish()
	if !ok {
		return nil, err
	}
	return md, nil
}

func whole[T any](p parse.Parser[struct{}, slice.BytePos, T, *DescriptorError]) parse.Parser[struct{}, slice.BytePos, T, *DescriptorError] {
	return func(d *descDriver, pos slice.BytePos) parse.Progress[slice.BytePos, T, *DescriptorError] {
		return parse.AndThenWithPos(p(d, pos), pos, func(v T, end slice.BytePos) (T, *DescriptorError, bool) {
			if !end.IsEmpty() {
				return v, expected(end, "end of descriptor"), false
			}
			return v, nil, true
		})
	}
}

func literal(lit string) parse.Parser[struct{}, slice.BytePos, []byte, *DescriptorError] {
	tag := slice.String[struct{}](lit)
	return func(d *descDriver, pos slice.BytePos) parse.Progress[slice.BytePos, []byte, *DescriptorError] {
		return parse.MapErr(tag(d, pos), func(*slice.TagError) *DescriptorError {
			return expected(pos, strconv.Quote(lit))
		})
	}
}

// fieldType is
//
//	FieldType = BaseType | "L" ClassName ";" | "[" FieldType
//
// When every alternative fails, the error of the one that got furthest is
// reported, so "[Q" complains about the Q rather than the bracket.
func fieldType(d *descDriver, pos slice.BytePos) parse.Progress[slice.BytePos, FieldType, *DescriptorError] {
	acc := &parse.FurthestErrors[slice.BytePos, *DescriptorError]{}
	r := parse.AlternateWith[FieldType, *DescriptorError](d, pos, parse.ErrorAccumulator[slice.BytePos, *DescriptorError, []*DescriptorError](acc)).
		One(baseType).
		One(objectType).
		One(arrayType).
		Finish()
	return parse.MapErr(r, merge)
}

var baseTypes = map[byte]string{
	'B': "byte",
	'C': "char",
	'D': "double",
	'F': "float",
	'I': "int",
	'J': "long",
	'S': "short",
	'Z': "boolean",
}

func baseType(_ *descDriver, pos slice.BytePos) parse.Progress[slice.BytePos, FieldType, *DescriptorError] {
	r := parse.MapErr(pos.Take1(), func(slice.NotEnoughDataError) *DescriptorError {
		return expected(pos, "base type")
	})
	return parse.AndThen(r, pos, func(b byte) (FieldType, *DescriptorError, bool) {
		name, ok := baseTypes[b]
		if !ok {
			return FieldType{}, expected(pos, "base type"), false
		}
		return FieldType{BaseType: name}, nil, true
	})
}

func objectType(d *descDriver, pos slice.BytePos) parse.Progress[slice.BytePos, FieldType, *DescriptorError] {
	return parse.Sequence3(literal("L"), className, literal(";"), func(_ []byte, name string, _ []byte) FieldType {
		return FieldType{ClassName: name}
	})(d, pos)
}

// className reads up to the next ';'. Once an "L" has been seen nothing else
// can match, so a missing name or terminator is fatal.
func className(_ *descDriver, pos slice.BytePos) parse.Progress[slice.BytePos, string, *DescriptorError] {
	end := bytes.IndexByte(pos.Rest(), ';')
	if end <= 0 {
		err := expected(pos, "class name terminated by ';'")
		err.Fatal = true
		return parse.Failure[string](pos, err)
	}
	next, name := pos.Take(end).Unwrap()
	return parse.Success[*DescriptorError](next, string(name))
}

func arrayType(d *descDriver, pos slice.BytePos) parse.Progress[slice.BytePos, FieldType, *DescriptorError] {
	return parse.Sequence2(literal("["), fieldType, func(_ []byte, elem FieldType) FieldType {
		elem.ArrayDepth++
		return elem
	})(d, pos)
}

// methodDescriptor is
//
//	MethodDescriptor = "(" { FieldType } ")" ( "V" | FieldType )
func methodDescriptor(d *descDriver, pos slice.BytePos) parse.Progress[slice.BytePos, *MethodDescriptor, *DescriptorError] {
	s := parse.Begin[*DescriptorError](d, pos)
	parse.Step(s, literal("("))
	params := parse.Step(s, parse.ZeroOrMore(fieldType))
	parse.Step(s, literal(")"))
	ret := parse.Step(s, returnType)
	return parse.Yield(s, &MethodDescriptor{Parameters: params, ReturnType: ret})
}

func returnType(d *descDriver, pos slice.BytePos) parse.Progress[slice.BytePos, *FieldType, *DescriptorError] {
	void := func(d *descDriver, pos slice.BytePos) parse.Progress[slice.BytePos, *FieldType, *DescriptorError] {
		return parse.Map(literal("V")(d, pos), func([]byte) *FieldType { return nil })
	}
	value := func(d *descDriver, pos slice.BytePos) parse.Progress[slice.BytePos, *FieldType, *DescriptorError] {
		return parse.Map(fieldType(d, pos), func(ft FieldType) *FieldType { return &ft })
	}
	return parse.Alternate[*FieldType, *DescriptorError](d, pos).
		One(void).
		One(value).
		Finish()
}

func InternalToSourceName(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}
