package classfile

import "fmt"

// Summary is the readable form of a class file used by the dump command and
// the output encoders.
type Summary struct {
	Name       string          `json:"name" yaml:"name"`
	Version    string          `json:"version" yaml:"version"`
	Access     []string        `json:"access" yaml:"access"`
	SuperClass string          `json:"superClass,omitempty" yaml:"superClass,omitempty"`
	Interfaces []string        `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
	SourceFile string          `json:"sourceFile,omitempty" yaml:"sourceFile,omitempty"`
	Fields     []MemberSummary `json:"fields,omitempty" yaml:"fields,omitempty"`
	Methods    []MemberSummary `json:"methods,omitempty" yaml:"methods,omitempty"`
	// References lists the fields and methods the class refers to, as
	// class.name:descriptor.
	References []string        `json:"references,omitempty" yaml:"references,omitempty"`
	Strings    []string        `json:"strings,omitempty" yaml:"strings,omitempty"`
}

type MemberSummary struct {
	Name        string   `json:"name" yaml:"name"`
	Descriptor  string   `json:"descriptor" yaml:"descriptor"`
	Type        string   `json:"type,omitempty" yaml:"type,omitempty"`
	Access      []string `json:"access" yaml:"access"`
	Constructor bool     `json:"constructor,omitempty" yaml:"constructor,omitempty"`
	Value       any      `json:"value,omitempty" yaml:"value,omitempty"`
	CodeLength  int      `json:"codeLength,omitempty" yaml:"codeLength,omitempty"`
	Lines       []uint16 `json:"lines,omitempty" yaml:"lines,omitempty"`
}

func (cf *ClassFile) Summary() *Summary {
	s := &Summary{
		Name:       InternalToSourceName(cf.ClassName()),
		Version:    cf.Version(),
		Access:     cf.AccessFlags.ClassNames(),
		SuperClass: InternalToSourceName(cf.SuperClassName()),
		SourceFile: cf.SourceFile(),
	}
	for _, name := range cf.InterfaceNames() {
		s.Interfaces = append(s.Interfaces, InternalToSourceName(name))
	}

	for i := range cf.Fields {
		f := &cf.Fields[i]
		m := MemberSummary{Name: f.Name, Descriptor: f.Descriptor, Access: f.AccessFlags.FieldNames()}
		if ft, err := f.FieldType(); err == nil {
			m.Type = ft.String()
		}
		if a := f.Attribute("ConstantValue"); a != nil {
			if cv, ok := a.Parsed.(*ConstantValueAttribute); ok {
				m.Value, _ = cf.ConstantPool.Literal(cv.ConstantValueIndex)
			}
		}
		s.Fields = append(s.Fields, m)
	}

	for i := range cf.Methods {
		meth := &cf.Methods[i]
		m := MemberSummary{
			Name:        meth.Name,
			Descriptor:  meth.Descriptor,
			Access:      meth.AccessFlags.MethodNames(),
			Constructor: meth.IsConstructor(),
		}
		if md, err := meth.MethodType(); err == nil {
			m.Type = md.String()
		}
		if code := meth.Code(); code != nil {
			m.CodeLength = len(code.Code)
			for _, ln := range code.LineNumbers() {
				m.Lines = append(m.Lines, ln.LineNumber)
			}
		}
		s.Methods = append(s.Methods, m)
	}

	for i, e := range cf.ConstantPool {
		index := uint16(i + 1)
		switch e.(type) {
		case *ConstantRefInfo:
			class, name, desc := cf.ConstantPool.Ref(index)
			s.References = append(s.References, fmt.Sprintf("%s.%s:%s", InternalToSourceName(class), name, desc))
		case *ConstantStringInfo:
			s.Strings = append(s.Strings, cf.ConstantPool.StringValue(index))
		}
	}
	return s
}
