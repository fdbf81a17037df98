package classfile

// AttributeInfo is an attribute as stored in the class file. Parsed holds the
// decoded form for the attributes listed in attributeDecoder, and is nil for
// all others or when decoding is disabled with WithAttributes.
type AttributeInfo struct {
	NameIndex uint16
	Name      string
	Info      []byte
	Parsed    any
}

type CodeAttribute struct {
	MaxStack       uint16
	MaxLocals      uint16
	Code           []byte
	ExceptionTable []ExceptionTableEntry
	Attributes     []AttributeInfo
}

// LineNumbers returns the LineNumberTable nested in the Code attribute.
func (c *CodeAttribute) LineNumbers() []LineNumberEntry {
	if a := findAttribute(c.Attributes, "LineNumberTable"); a != nil {
		if lnt, ok := a.Parsed.(*LineNumberTableAttribute); ok {
			return lnt.LineNumberTable
		}
	}
	return nil
}

type ExceptionTableEntry struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType uint16
}

type LineNumberTableAttribute struct {
	LineNumberTable []LineNumberEntry
}

type LineNumberEntry struct {
	StartPC    uint16
	LineNumber uint16
}

type LocalVariableTableAttribute struct {
	LocalVariableTable []LocalVariableEntry
}

type LocalVariableEntry struct {
	StartPC         uint16
	Length          uint16
	NameIndex       uint16
	DescriptorIndex uint16
	Index           uint16
}

type SourceFileAttribute struct {
	SourceFileIndex uint16
}

type ConstantValueAttribute struct {
	ConstantValueIndex uint16
}

type ExceptionsAttribute struct {
	ExceptionIndexTable []uint16
}

type InnerClassesAttribute struct {
	Classes []InnerClassEntry
}

type InnerClassEntry struct {
	InnerClassInfoIndex   uint16
	OuterClassInfoIndex   uint16
	InnerNameIndex        uint16
	InnerClassAccessFlags AccessFlags
}

type SignatureAttribute struct {
	SignatureIndex uint16
}

type NestHostAttribute struct {
	HostClassIndex uint16
}

// ClassListAttribute is a NestMembers or PermittedSubclasses attribute.
type ClassListAttribute struct {
	Classes []uint16
}

// MarkerAttribute is an attribute without a body, such as Deprecated or
// Synthetic.
type MarkerAttribute struct{}
