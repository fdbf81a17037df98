package classfile

type ConstantPoolEntry interface {
	Tag() ConstantTag
}

type ConstantUtf8Info struct {
	Value string
}

func (c *ConstantUtf8Info) Tag() ConstantTag { return ConstantUtf8 }

type ConstantIntegerInfo struct {
	Value int32
}

func (c *ConstantIntegerInfo) Tag() ConstantTag { return ConstantInteger }

type ConstantFloatInfo struct {
	Value float32
}

func (c *ConstantFloatInfo) Tag() ConstantTag { return ConstantFloat }

type ConstantLongInfo struct {
	Value int64
}

func (c *ConstantLongInfo) Tag() ConstantTag { return ConstantLong }

type ConstantDoubleInfo struct {
	Value float64
}

func (c *ConstantDoubleInfo) Tag() ConstantTag { return ConstantDouble }

// ConstantNamedInfo is a Class, Module or Package entry: a reference to the
// Utf8 entry holding the name.
type ConstantNamedInfo struct {
	Kind      ConstantTag
	NameIndex uint16
}

func (c *ConstantNamedInfo) Tag() ConstantTag { return c.Kind }

type ConstantStringInfo struct {
	StringIndex uint16
}

func (c *ConstantStringInfo) Tag() ConstantTag { return ConstantString }

// ConstantRefInfo is a Fieldref, Methodref or InterfaceMethodref entry.
type ConstantRefInfo struct {
	Kind             ConstantTag
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantRefInfo) Tag() ConstantTag { return c.Kind }

type ConstantNameAndTypeInfo struct {
	NameIndex       uint16
	DescriptorIndex uint16
}

func (c *ConstantNameAndTypeInfo) Tag() ConstantTag { return ConstantNameAndType }

type ConstantMethodHandleInfo struct {
	ReferenceKind  MethodHandleKind
	ReferenceIndex uint16
}

func (c *ConstantMethodHandleInfo) Tag() ConstantTag { return ConstantMethodHandle }

type ConstantMethodTypeInfo struct {
	DescriptorIndex uint16
}

func (c *ConstantMethodTypeInfo) Tag() ConstantTag { return ConstantMethodType }

// ConstantDynamicInfo is a Dynamic or InvokeDynamic entry.
type ConstantDynamicInfo struct {
	Kind                     ConstantTag
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (c *ConstantDynamicInfo) Tag() ConstantTag { return c.Kind }

// ConstantPool holds the entries of a class file's constant pool. Entry i of
// the class file is element i-1; the second slot of a Long or Double is nil.
type ConstantPool []ConstantPoolEntry

func entryAt[T ConstantPoolEntry](cp ConstantPool, index uint16) (T, bool) {
	var zero T
	if index == 0 || int(index) > len(cp) {
		return zero, false
	}
	e, ok := cp[index-1].(T)
	return e, ok
}

// Entry returns the entry at index, or nil.
func (cp ConstantPool) Entry(index uint16) ConstantPoolEntry {
	if index == 0 || int(index) > len(cp) {
		return nil
	}
	return cp[index-1]
}

func (cp ConstantPool) Utf8(index uint16) string {
	if e, ok := entryAt[*ConstantUtf8Info](cp, index); ok {
		return e.Value
	}
	return ""
}

// ClassName returns the internal name of the Class entry at index.
func (cp ConstantPool) ClassName(index uint16) string {
	if e, ok := entryAt[*ConstantNamedInfo](cp, index); ok && e.Kind == ConstantClass {
		return cp.Utf8(e.NameIndex)
	}
	return ""
}

func (cp ConstantPool) NameAndType(index uint16) (name, descriptor string) {
	if e, ok := entryAt[*ConstantNameAndTypeInfo](cp, index); ok {
		return cp.Utf8(e.NameIndex), cp.Utf8(e.DescriptorIndex)
	}
	return "", ""
}

// StringValue returns the text of the String entry at index.
func (cp ConstantPool) StringValue(index uint16) string {
	if e, ok := entryAt[*ConstantStringInfo](cp, index); ok {
		return cp.Utf8(e.StringIndex)
	}
	return ""
}

// Ref resolves the Fieldref, Methodref or InterfaceMethodref at index.
func (cp ConstantPool) Ref(index uint16) (className, name, descriptor string) {
	if e, ok := entryAt[*ConstantRefInfo](cp, index); ok {
		name, descriptor = cp.NameAndType(e.NameAndTypeIndex)
		return cp.ClassName(e.ClassIndex), name, descriptor
	}
	return "", "", ""
}

// Long returns the value of the Long entry at index.
func (cp ConstantPool) Long(index uint16) (int64, bool) {
	e, ok := entryAt[*ConstantLongInfo](cp, index)
	if !ok {
		return 0, false
	}
	return e.Value, true
}

// Literal returns the value of a numeric or String entry as a Go value, as
// used by the ConstantValue attribute.
func (cp ConstantPool) Literal(index uint16) (any, bool) {
	switch e := cp.Entry(index).(type) {
	case *ConstantIntegerInfo:
		return e.Value, true
	case *ConstantFloatInfo:
		return e.Value, true
	case *ConstantLongInfo:
		return e.Value, true
	case *ConstantDoubleInfo:
		return e.Value, true
	case *ConstantStringInfo:
		return cp.Utf8(e.StringIndex), true
	}
	return nil, false
}
