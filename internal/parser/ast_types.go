// Additional AST node definitions for complete type coverage
// This file extends the existing AST with additional node types
// needed for a complete Orizon language implementation.

package parser

import (
	"fmt"
	"strings"
)

// ====== Additional Type Nodes ======

// ArrayType represents an array type [T; size] or [T]
type ArrayType struct {
	Span        Span
	ElementType Type
	Size        Expression // nil for dynamic arrays
	IsDynamic   bool       // true for [T], false for [T; size]
}

func (at *ArrayType) GetSpan() Span { return at.Span }
func (at *ArrayType) String() string {
	if at.IsDynamic {
		return fmt.Sprintf("[%s]", at.ElementType.String())
	}
	return fmt.Sprintf("[%s; %s]", at.ElementType.String(), at.Size.String())
}
func (at *ArrayType) Accept(visitor Visitor) interface{} { return visitor.VisitArrayType(at) }
func (at *ArrayType) typeNode()                          {}

// FunctionType represents a function type (param1: Type1, param2: Type2) -> ReturnType
type FunctionType struct {
	Span       Span
	Parameters []*FunctionTypeParameter
	ReturnType Type
	IsAsync    bool
}

type FunctionTypeParameter struct {
	Span Span
	Name string // Optional parameter name
	Type Type
}

func (ft *FunctionType) GetSpan() Span { return ft.Span }
func (ft *FunctionType) String() string {
	var params []string
	for _, p := range ft.Parameters {
		if p.Name != "" {
			params = append(params, fmt.Sprintf("%s: %s", p.Name, p.Type.String()))
		} else {
			params = append(params, p.Type.String())
		}
	}
	prefix := ""
	if ft.IsAsync {
		prefix = "async "
	}
	return fmt.Sprintf("%s(%s) -> %s", prefix, strings.Join(params, ", "), ft.ReturnType.String())
}
func (ft *FunctionType) Accept(visitor Visitor) interface{} { return visitor.VisitFunctionType(ft) }
func (ft *FunctionType) typeNode()                          {}

// StructType represents a struct type
type StructType struct {
	Span   Span
	Name   *Identifier
	Fields []*StructField
}

type StructField struct {
	Span     Span
	Name     *Identifier
	Type     Type
	IsPublic bool
	Tags     map[string]string // Optional field tags
}

func (st *StructType) GetSpan() Span { return st.Span }
func (st *StructType) String() string {
	if st.Name != nil {
		return fmt.Sprintf("struct %s", st.Name.Value)
	}
	return "struct { ... }"
}
func (st *StructType) Accept(visitor Visitor) interface{} { return visitor.VisitStructType(st) }
func (st *StructType) typeNode()                          {}

// EnumType represents an enum type
type EnumType struct {
	Span     Span
	Name     *Identifier
	Variants []*EnumVariant
}

type EnumVariant struct {
	Span   Span
	Name   *Identifier
	Fields []*StructField // Optional associated data
	Value  Expression     // Optional explicit value
}

func (et *EnumType) GetSpan() Span { return et.Span }
func (et *EnumType) String() string {
	if et.Name != nil {
		return fmt.Sprintf("enum %s", et.Name.Value)
	}
	return "enum { ... }"
}
func (et *EnumType) Accept(visitor Visitor) interface{} { return visitor.VisitEnumType(et) }
func (et *EnumType) typeNode()                          {}

// TraitType represents a trait type
type TraitType struct {
	Span    Span
	Name    *Identifier
	Methods []*TraitMethod
}

type TraitMethod struct {
	Span       Span
	Name       *Identifier
	Parameters []*Parameter
	ReturnType Type
	IsAsync    bool
	Generics   []*GenericParameter
}

func (tt *TraitType) GetSpan() Span { return tt.Span }
func (tt *TraitType) String() string {
	if tt.Name != nil {
		return fmt.Sprintf("trait %s", tt.Name.Value)
	}
	return "trait { ... }"
}
func (tt *TraitType) Accept(visitor Visitor) interface{} { return visitor.VisitTraitType(tt) }
func (tt *TraitType) typeNode()                          {}

// GenericType represents a generic type with type parameters
type GenericType struct {
	Span           Span
	BaseType       Type
	TypeParameters []Type
}

// ReferenceType represents a reference type like &T or &mut T
type ReferenceType struct {
	Span      Span
	Inner     Type
	IsMutable bool
	Lifetime  string // optional, empty if elided
}

// PointerType represents a raw pointer type like *T or *mut T
type PointerType struct {
	Span      Span
	Inner     Type
	IsMutable bool
}

func (pt *PointerType) GetSpan() Span { return pt.Span }
func (pt *PointerType) String() string {
	if pt.IsMutable {
		return "*mut " + pt.Inner.String()
	}
	return "*" + pt.Inner.String()
}
func (pt *PointerType) Accept(visitor Visitor) interface{} { return visitor.VisitPointerType(pt) }
func (pt *PointerType) typeNode()                          {}

func (rt *ReferenceType) GetSpan() Span { return rt.Span }
func (rt *ReferenceType) String() string {
	if rt.IsMutable {
		return "&mut " + rt.Inner.String()
	}
	return "&" + rt.Inner.String()
}
func (rt *ReferenceType) Accept(visitor Visitor) interface{} { return visitor.VisitReferenceType(rt) }
func (rt *ReferenceType) typeNode()                          {}

func (gt *GenericType) GetSpan() Span { return gt.Span }
func (gt *GenericType) String() string {
	var params []string
	for _, param := range gt.TypeParameters {
		params = append(params, param.String())
	}
	return fmt.Sprintf("%s<%s>", gt.BaseType.String(), strings.Join(params, ", "))
}
func (gt *GenericType) Accept(visitor Visitor) interface{} { return visitor.VisitGenericType(gt) }
func (gt *GenericType) typeNode()                          {}
