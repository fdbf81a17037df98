package classfile

import (
	"fmt"
	"io"
	"math"
	"os"
	"unicode"
	"unicode/utf16"

	"github.com/dhamidi/descent/errctx"
	"github.com/dhamidi/descent/parse"
	"github.com/dhamidi/descent/slice"
	"github.com/dhamidi/descent/slice/num"
)

type config struct {
	decodeAttributes bool
}

// Option configures Parse.
type Option func(*config)

// WithAttributes controls whether known attributes are decoded into
// AttributeInfo.Parsed. It is on by default. Undecoded attributes keep only
// their raw bytes, which also means malformed attribute bodies go unnoticed.
func WithAttributes(decode bool) Option {
	return func(c *config) {
		c.decodeAttributes = decode
	}
}

// state is shared by every parser of one class file. The constant pool is
// filled in as soon as it has been read so that attribute names can be
// resolved.
type state struct {
	config
	pool ConstantPool
}

type driver = parse.Driver[state]

func ParseFile(path string, opts ...Option) (*ClassFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open class file: %w", err)
	}
	defer f.Close()
	return Parse(f, opts...)
}

func Parse(rd io.Reader, opts ...Option) (*ClassFile, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("failed to read class file: %w", err)
	}
	return ParseBytes(data, opts...)
}

// ParseBytes parses a class file held in memory. Code and attribute bodies
// in the result share memory with data.
func ParseBytes(data []byte, opts ...Option) (*ClassFile, error) {
	c := config{decodeAttributes: true}
	for _, opt := range opts {
		opt(&c)
	}
	d := parse.WithState(state{config: c})
	return errctx.Result(exactly(classFile)(d, slice.New(data)))
}

func classFile(d *driver, pos slice.BytePos) parse.Progress[slice.BytePos, *ClassFile, *errctx.Error] {
	s := parse.Begin[*errctx.Error](d, pos)
	parse.Step(s, magic)
	minor := parse.Step(s, within(u2, "failed to read version"))
	major := parse.Step(s, within(u2, "failed to read version"))
	pool := parse.Step(s, constantPool)
	d.State.pool = pool
	flags := parse.Step(s, within(u2, "failed to read class info"))
	this := parse.Step(s, within(u2, "failed to read class info"))
	super := parse.Step(s, within(u2, "failed to read class info"))
	interfaces := parse.Step(s, table("interface", u2))
	fields := parse.Step(s, table("field", member))
	methods := parse.Step(s, table("method", member))
	attrs := parse.Step(s, attributes)
	return parse.Yield(s, &ClassFile{
		MinorVersion: minor,
		MajorVersion: major,
		ConstantPool: pool,
		AccessFlags:  AccessFlags(flags),
		ThisClass:    this,
		SuperClass:   super,
		Interfaces:   interfaces,
		Fields:       fields,
		Methods:      methods,
		Attributes:   attrs,
	})
}

func magic(d *driver, pos slice.BytePos) parse.Progress[slice.BytePos, uint32, *errctx.Error] {
	r := within(u4, "failed to read magic")(d, pos)
	return parse.AndThen(r, pos, func(m uint32) (uint32, *errctx.Error, bool) {
		if m != Magic {
			return 0, errctx.Errorf(pos, "invalid magic number: 0x%X (expected 0xCAFEBABE)", m), false
		}
		return m, nil, true
	})
}

func truncated(pos slice.BytePos) string {
	return fmt.Sprintf("unexpected end of class file at offset 0x%X", pos.Offset())
}

func u1(d *driver, pos slice.BytePos) parse.Progress[slice.BytePos, uint8, *errctx.Error] {
	return errctx.Replace(num.Uint8(d, pos), truncated)
}

func u2(d *driver, pos slice.BytePos) parse.Progress[slice.BytePos, uint16, *errctx.Error] {
	return errctx.Replace(num.Uint16BE(d, pos), truncated)
}

func u4(d *driver, pos slice.BytePos) parse.Progress[slice.BytePos, uint32, *errctx.Error] {
	return errctx.Replace(num.Uint32BE(d, pos), truncated)
}

// bytesN takes n bytes; unlike Take it allows n to be zero.
func bytesN(n int) parse.Parser[state, slice.BytePos, []byte, *errctx.Error] {
	return func(_ *driver, pos slice.BytePos) parse.Progress[slice.BytePos, []byte, *errctx.Error] {
		if n == 0 {
			return parse.Success[*errctx.Error](pos, []byte{})
		}
		return errctx.Replace(pos.Take(n), truncated)
	}
}

// within gives the failures of p a context message.
func within[T any](p parse.Parser[state, slice.BytePos, T, *errctx.Error], format string, args ...any) parse.Parser[state, slice.BytePos, T, *errctx.Error] {
	return func(d *driver, pos slice.BytePos) parse.Progress[slice.BytePos, T, *errctx.Error] {
		return errctx.Wrap(p(d, pos), func(slice.BytePos) string {
			return fmt.Sprintf(format, args...)
		})
	}
}

// table reads a u2 count followed by that many items. what names an item in
// error messages.
func table[T any](what string, item parse.Parser[state, slice.BytePos, T, *errctx.Error]) parse.Parser[state, slice.BytePos, []T, *errctx.Error] {
	return func(d *driver, pos slice.BytePos) parse.Progress[slice.BytePos, []T, *errctx.Error] {
		r := within(u2, "failed to read %s count", what)(d, pos)
		if r.IsErr() {
			return parse.Propagate[[]T](r)
		}
		next, n := r.Unwrap()
		i := 0
		indexed := func(d *driver, pos slice.BytePos) parse.Progress[slice.BytePos, T, *errctx.Error] {
			r := within(item, "failed to read %s %d", what, i)(d, pos)
			i++
			return r
		}
		return parse.Count(int(n), indexed)(d, next)
	}
}

// exactly runs p and fails if it does not consume all of its input.
func exactly[T any](p parse.Parser[state, slice.BytePos, T, *errctx.Error]) parse.Parser[state, slice.BytePos, T, *errctx.Error] {
	return func(d *driver, pos slice.BytePos) parse.Progress[slice.BytePos, T, *errctx.Error] {
		r := p(d, pos)
		return parse.AndThenWithPos(r, pos, func(v T, end slice.BytePos) (T, *errctx.Error, bool) {
			if !end.IsEmpty() {
				return v, errctx.Errorf(end, "%d unexpected trailing bytes at offset 0x%X", end.Len(), end.Offset()), false
			}
			return v, nil, true
		})
	}
}

func constantPool(d *driver, pos slice.BytePos) parse.Progress[slice.BytePos, ConstantPool, *errctx.Error] {
	r := within(u2, "failed to read constant pool count")(d, pos)
	if r.IsErr() {
		return parse.Propagate[ConstantPool](r)
	}
	next, count := r.Unwrap()
	if count == 0 {
		return parse.Failure[ConstantPool](pos, errctx.Errorf(pos, "invalid constant pool count 0"))
	}

	pool := make(ConstantPool, count-1)
	for i := 1; i < int(count); i++ {
		at := next
		r := within(constant, "failed to read constant pool entry %d", i)(d, next)
		if r.IsErr() {
			return parse.Propagate[ConstantPool](r)
		}
		var entry ConstantPoolEntry
		next, entry = r.Unwrap()
		pool[i-1] = entry
		if entry.Tag().wide() {
			if i+1 >= int(count) {
				return parse.Failure[ConstantPool](at, errctx.Errorf(at, "constant pool entry %d (%s) needs two slots but is the last entry", i, entry.Tag()))
			}
			i++
		}
	}
	return parse.Success[*errctx.Error](next, pool)
}

func constant(d *driver, pos slice.BytePos) parse.Progress[slice.BytePos, ConstantPoolEntry, *errctx.Error] {
	r := u1(d, pos)
	if r.IsErr() {
		return parse.Propagate[ConstantPoolEntry](r)
	}
	next, b := r.Unwrap()
	tag := ConstantTag(b)

	s := parse.Begin[*errctx.Error](d, next)
	var e ConstantPoolEntry
	switch tag {
	case ConstantUtf8:
		n := parse.Step(s, u2)
		raw := parse.Step(s, bytesN(int(n)))
		e = &ConstantUtf8Info{Value: decodeModifiedUTF8(raw)}
	case ConstantInteger:
		e = &ConstantIntegerInfo{Value: int32(parse.Step(s, u4))}
	case ConstantFloat:
		e = &ConstantFloatInfo{Value: math.Float32frombits(parse.Step(s, u4))}
	case ConstantLong:
		e = &ConstantLongInfo{Value: int64(parse.Step(s, u8))}
	case ConstantDouble:
		e = &ConstantDoubleInfo{Value: math.Float64frombits(parse.Step(s, u8))}
	case ConstantClass, ConstantModule, ConstantPackage:
		e = &ConstantNamedInfo{Kind: tag, NameIndex: parse.Step(s, u2)}
	case ConstantString:
		e = &ConstantStringInfo{StringIndex: parse.Step(s, u2)}
	case ConstantFieldref, ConstantMethodref, ConstantInterfaceMethodref:
		class := parse.Step(s, u2)
		e = &ConstantRefInfo{Kind: tag, ClassIndex: class, NameAndTypeIndex: parse.Step(s, u2)}
	case ConstantNameAndType:
		name := parse.Step(s, u2)
		e = &ConstantNameAndTypeInfo{NameIndex: name, DescriptorIndex: parse.Step(s, u2)}
	case ConstantMethodHandle:
		kind := parse.Step(s, u1)
		e = &ConstantMethodHandleInfo{ReferenceKind: MethodHandleKind(kind), ReferenceIndex: parse.Step(s, u2)}
	case ConstantMethodType:
		e = &ConstantMethodTypeInfo{DescriptorIndex: parse.Step(s, u2)}
	case ConstantDynamic, ConstantInvokeDynamic:
		bootstrap := parse.Step(s, u2)
		e = &ConstantDynamicInfo{Kind: tag, BootstrapMethodAttrIndex: bootstrap, NameAndTypeIndex: parse.Step(s, u2)}
	default:
		return parse.Failure[ConstantPoolEntry](pos, errctx.Errorf(pos, "unknown constant pool tag: %d", tag))
	}
	return parse.Yield(s, e)
}

func u8(d *driver, pos slice.BytePos) parse.Progress[slice.BytePos, uint64, *errctx.Error] {
	return errctx.Replace(num.Uint64BE(d, pos), truncated)
}

func member(d *driver, pos slice.BytePos) parse.Progress[slice.BytePos, Member, *errctx.Error] {
	s := parse.Begin[*errctx.Error](d, pos)
	flags := parse.Step(s, u2)
	name := parse.Step(s, u2)
	desc := parse.Step(s, u2)
	attrs := parse.Step(s, attributes)
	return parse.Build(s, func(d *driver, _ slice.BytePos) Member {
		return Member{
			AccessFlags:     AccessFlags(flags),
			NameIndex:       name,
			DescriptorIndex: desc,
			Name:            d.State.pool.Utf8(name),
			Descriptor:      d.State.pool.Utf8(desc),
			Attributes:      attrs,
		}
	})
}

func attributes(d *driver, pos slice.BytePos) parse.Progress[slice.BytePos, []AttributeInfo, *errctx.Error] {
	return table("attribute", attribute)(d, pos)
}

func attribute(d *driver, pos slice.BytePos) parse.Progress[slice.BytePos, AttributeInfo, *errctx.Error] {
	s := parse.Begin[*errctx.Error](d, pos)
	nameIndex := parse.Step(s, u2)
	length := parse.Step(s, u4)
	body := s.Pos()
	info := parse.Step(s, bytesN(int(length)))
	if s.Failed() {
		return parse.Yield(s, AttributeInfo{})
	}

	attr := AttributeInfo{NameIndex: nameIndex, Name: d.State.pool.Utf8(nameIndex), Info: info}
	decode, ok := attributeDecoder(attr.Name)
	if !d.State.decodeAttributes || !ok {
		return parse.Yield(s, attr)
	}

	// The body is decoded in place so that errors report absolute offsets.
	r := within(exactly(decode), "failed to decode %s attribute", attr.Name)(d, body.Limit(len(info)))
	_, parsed, err, ok := r.Finish()
	if !ok {
		return parse.Failure[AttributeInfo](r.Pos(), err)
	}
	attr.Parsed = parsed
	return parse.Yield(s, attr)
}

// attributeDecoder returns the decoder for the body of the named attribute.
func attributeDecoder(name string) (parse.Parser[state, slice.BytePos, any, *errctx.Error], bool) {
	switch name {
	case "Code":
		return boxed(codeAttribute), true
	case "ConstantValue":
		return boxed(func(d *driver, pos slice.BytePos) parse.Progress[slice.BytePos, *ConstantValueAttribute, *errctx.Error] {
			return parse.Map(u2(d, pos), func(i uint16) *ConstantValueAttribute { return &ConstantValueAttribute{ConstantValueIndex: i} })
		}), true
	case "SourceFile":
		return boxed(func(d *driver, pos slice.BytePos) parse.Progress[slice.BytePos, *SourceFileAttribute, *errctx.Error] {
			return parse.Map(u2(d, pos), func(i uint16) *SourceFileAttribute { return &SourceFileAttribute{SourceFileIndex: i} })
		}), true
	case "Signature":
		return boxed(func(d *driver, pos slice.BytePos) parse.Progress[slice.BytePos, *SignatureAttribute, *errctx.Error] {
			return parse.Map(u2(d, pos), func(i uint16) *SignatureAttribute { return &SignatureAttribute{SignatureIndex: i} })
		}), true
	case "NestHost":
		return boxed(func(d *driver, pos slice.BytePos) parse.Progress[slice.BytePos, *NestHostAttribute, *errctx.Error] {
			return parse.Map(u2(d, pos), func(i uint16) *NestHostAttribute { return &NestHostAttribute{HostClassIndex: i} })
		}), true
	case "Exceptions":
		return boxed(func(d *driver, pos slice.BytePos) parse.Progress[slice.BytePos, *ExceptionsAttribute, *errctx.Error] {
			return parse.Map(table("exception", u2)(d, pos), func(idx []uint16) *ExceptionsAttribute {
				return &ExceptionsAttribute{ExceptionIndexTable: idx}
			})
		}), true
	case "NestMembers", "PermittedSubclasses":
		return boxed(func(d *driver, pos slice.BytePos) parse.Progress[slice.BytePos, *ClassListAttribute, *errctx.Error] {
			return parse.Map(table("class", u2)(d, pos), func(idx []uint16) *ClassListAttribute {
				return &ClassListAttribute{Classes: idx}
			})
		}), true
	case "LineNumberTable":
		return boxed(lineNumberTable), true
	case "LocalVariableTable":
		return boxed(localVariableTable), true
	case "InnerClasses":
		return boxed(innerClasses), true
	case "Deprecated", "Synthetic":
		return boxed(func(_ *driver, pos slice.BytePos) parse.Progress[slice.BytePos, MarkerAttribute, *errctx.Error] {
			return parse.Success[*errctx.Error](pos, MarkerAttribute{})
		}), true
	}
	return nil, false
}

func boxed[T any](p parse.Parser[state, slice.BytePos, T, *errctx.Error]) parse.Parser[state, slice.BytePos, any, *errctx.Error] {
	return func(d *driver, pos slice.BytePos) parse.Progress[slice.BytePos, any, *errctx.Error] {
		return parse.Map(p(d, pos), func(v T) any { return v })
	}
}

func codeAttribute(d *driver, pos slice.BytePos) parse.Progress[slice.BytePos, *CodeAttribute, *errctx.Error] {
	s := parse.Begin[*errctx.Error](d, pos)
	maxStack := parse.Step(s, u2)
	maxLocals := parse.Step(s, u2)
	n := parse.Step(s, u4)
	code := parse.Step(s, bytesN(int(n)))
	handlers := parse.Step(s, table("exception handler", exceptionHandler))
	attrs := parse.Step(s, attributes)
	return parse.Yield(s, &CodeAttribute{
		MaxStack:       maxStack,
		MaxLocals:      maxLocals,
		Code:           code,
		ExceptionTable: handlers,
		Attributes:     attrs,
	})
}

func exceptionHandler(d *driver, pos slice.BytePos) parse.Progress[slice.BytePos, ExceptionTableEntry, *errctx.Error] {
	s := parse.Begin[*errctx.Error](d, pos)
	e := ExceptionTableEntry{
		StartPC:   parse.Step(s, u2),
		EndPC:     parse.Step(s, u2),
		HandlerPC: parse.Step(s, u2),
		CatchType: parse.Step(s, u2),
	}
	return parse.Yield(s, e)
}

func lineNumberTable(d *driver, pos slice.BytePos) parse.Progress[slice.BytePos, *LineNumberTableAttribute, *errctx.Error] {
	entry := parse.Sequence2(u2, u2, func(pc, line uint16) LineNumberEntry {
		return LineNumberEntry{StartPC: pc, LineNumber: line}
	})
	return parse.Map(table("line number", entry)(d, pos), func(entries []LineNumberEntry) *LineNumberTableAttribute {
		return &LineNumberTableAttribute{LineNumberTable: entries}
	})
}

func localVariableTable(d *driver, pos slice.BytePos) parse.Progress[slice.BytePos, *LocalVariableTableAttribute, *errctx.Error] {
	entry := func(d *driver, pos slice.BytePos) parse.Progress[slice.BytePos, LocalVariableEntry, *errctx.Error] {
		s := parse.Begin[*errctx.Error](d, pos)
		e := LocalVariableEntry{
			StartPC:         parse.Step(s, u2),
			Length:          parse.Step(s, u2),
			NameIndex:       parse.Step(s, u2),
			DescriptorIndex: parse.Step(s, u2),
			Index:           parse.Step(s, u2),
		}
		return parse.Yield(s, e)
	}
	return parse.Map(table("local variable", entry)(d, pos), func(entries []LocalVariableEntry) *LocalVariableTableAttribute {
		return &LocalVariableTableAttribute{LocalVariableTable: entries}
	})
}

func innerClasses(d *driver, pos slice.BytePos) parse.Progress[slice.BytePos, *InnerClassesAttribute, *errctx.Error] {
	entry := func(d *driver, pos slice.BytePos) parse.Progress[slice.BytePos, InnerClassEntry, *errctx.Error] {
		s := parse.Begin[*errctx.Error](d, pos)
		e := InnerClassEntry{
			InnerClassInfoIndex:   parse.Step(s, u2),
			OuterClassInfoIndex:   parse.Step(s, u2),
			InnerNameIndex:        parse.Step(s, u2),
			InnerClassAccessFlags: AccessFlags(parse.Step(s, u2)),
		}
		return parse.Yield(s, e)
	}
	return parse.Map(table("inner class", entry)(d, pos), func(entries []InnerClassEntry) *InnerClassesAttribute {
		return &InnerClassesAttribute{Classes: entries}
	})
}

// decodeModifiedUTF8 decodes the JVM's modified UTF-8: NUL is encoded in two
// bytes and supplementary characters as surrogate pairs of three bytes each.
func decodeModifiedUTF8(b []byte) string {
	units := make([]uint16, 0, len(b))
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c&0x80 == 0:
			units = append(units, uint16(c))
			i++
		case c&0xE0 == 0xC0 && i+1 < len(b):
			units = append(units, uint16(c&0x1F)<<6|uint16(b[i+1]&0x3F))
			i += 2
		case c&0xF0 == 0xE0 && i+2 < len(b):
			units = append(units, uint16(c&0x0F)<<12|uint16(b[i+1]&0x3F)<<6|uint16(b[i+2]&0x3F))
			i += 3
		default:
			units = append(units, unicode.ReplacementChar)
			i++
		}
	}
	return string(utf16.Decode(units))
}
