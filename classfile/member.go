package classfile

// Member is a field or a method. Name and Descriptor are resolved from the
// constant pool while parsing.
type Member struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Name            string
	Descriptor      string
	Attributes      []AttributeInfo
}

func (m *Member) Attribute(name string) *AttributeInfo {
	return findAttribute(m.Attributes, name)
}

// Code returns the decoded Code attribute of a method, or nil for abstract
// and native methods and when attributes were not decoded.
func (m *Member) Code() *CodeAttribute {
	if a := m.Attribute("Code"); a != nil {
		code, _ := a.Parsed.(*CodeAttribute)
		return code
	}
	return nil
}

func (m *Member) IsConstructor() bool {
	return m.Name == "<init>"
}

// FieldType parses the descriptor of a field.
func (m *Member) FieldType() (*FieldType, error) {
	return ParseFieldDescriptor(m.Descriptor)
}

// MethodType parses the descriptor of a method.
func (m *Member) MethodType() (*MethodDescriptor, error) {
	return ParseMethodDescriptor(m.Descriptor)
}
