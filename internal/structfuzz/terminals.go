package structfuzz

import "strconv"

// IdentKind selects which family of names a Terminal-kind identifier
// sub-item draws from: a user-defined name, a builtin name, or an arbitrary
// variable-style name.
type IdentKind int

const (
	IdentType IdentKind = iota
	IdentUserType
	IdentFunction
	IdentUserFunction
	IdentVariable
	IdentOther
)

// KeywordList selects which fixed word list a Terminal-kind keyword
// sub-item draws from.
type KeywordList int

const (
	KeywordDiagnosticSeverity KeywordList = iota
	KeywordRequiresExtensions
	KeywordAddressSpace
)

var diagnosticSeverityWords = [...]string{"off", "error", "warning", "info"}
var requiresExtensionWords = [...]string{"packed_4x8_integer_dot_product", "pointer_composite_access"}
var addressSpaceWords = [...]string{"function", "private", "workgroup", "uniform", "storage"}

func emitKeyword(list KeywordList, value byte, sink *TextSink) {
	switch list {
	case KeywordDiagnosticSeverity:
		sink.Raw(diagnosticSeverityWords[int(value)%len(diagnosticSeverityWords)])
	case KeywordRequiresExtensions:
		sink.Raw(requiresExtensionWords[int(value)%len(requiresExtensionWords)])
	case KeywordAddressSpace:
		sink.Raw(addressSpaceWords[int(value)%len(addressSpaceWords)])
	}
}

// builtinFuncNames lists WGSL builtin function names reused once a
// synthetic identifier's byte value is large enough to index into it
// instead of minting a fresh "f<n>" name.
var builtinFuncNames = [...]string{
	"abs", "acos", "acosh", "asin", "asinh", "atan", "atanh", "atan2",
	"ceil", "clamp", "cos", "cosh", "countLeadingZeros", "countOneBits",
	"countTrailingZeros", "cross", "degrees", "determinant", "distance",
	"dot", "dot4U8Packed", "dot4I8Packed", "exp", "exp2", "extractBits",
	"faceForward", "firstLeadingBit", "firstTrailingBit", "floor", "fma",
	"fract", "frexp", "insertBits", "inverseSqrt", "ldexp", "length",
	"log", "log2", "max", "min", "mix", "modf", "normalize", "pow",
	"radians", "reflect", "refract", "reverseBits", "round", "saturate",
	"sign", "sin", "sinh", "smoothstep", "sqrt", "step", "tan", "tanh",
	"transpose", "trunc", "dpdx", "dpdxCoarse", "dpdxFine", "dpdy",
	"dpdyCoarse", "dpdyFine", "fwidth", "fwidthCoarse", "fwidthFine",
	"textureDimensions", "textureGather", "textureGatherCompare",
	"textureLoad", "textureNumLayers", "textureNumLevels",
	"textureNumSamples", "textureSample", "textureSampleBias",
	"textureSampleCompare", "textureSampleCompareLevel", "textureSampleGrad",
	"textureSampleLevel", "textureSampleBaseClampToEdge", "textureStore",
	"atomicLoad", "atomicStore", "atomicAdd", "atomicSub", "atomicMax",
	"atomicMin", "atomicAnd", "atomicOr", "atomicXor", "atomicExchange",
	"atomicCompareExchangeWeak", "pack4x8snorm", "pack4x8unorm", "pack4xI8",
	"pack4xU8", "pack4xI8Clamp", "pack4xU8Clamp", "pack2x16snorm",
	"pack2x16unorm", "pack2x16float", "unpack4x8snorm", "unpack4x8unorm",
	"unpack4xI8", "unpack4xU8", "unpack2x16snorm", "unpack2x16unorm",
	"unpack2x16float", "storageBarrier", "textureBarrier",
	"workgroupBarrier", "workgroupUniformLoad",
}

// builtinTypeNames lists WGSL builtin type names, reused the same way as
// builtinFuncNames.
var builtinTypeNames = [...]string{
	"bool", "vec2<bool>", "vec3<bool>", "vec4<bool>",
	"u32", "vec2<u32>", "vec3<u32>", "vec4<u32>",
	"i32", "vec2<i32>", "vec3<i32>", "vec4<i32>",
	"f32", "vec2<f32>", "vec3<f32>", "vec4<f32>",
	"mat2x2<f32>", "mat2x3<f32>", "mat2x4<f32>",
	"mat3x2<f32>", "mat3x3<f32>", "mat3x4<f32>",
	"mat4x2<f32>", "mat4x3<f32>", "mat4x4<f32>",
	"array<bool, 1>", "array<bool, 16>",
	"array<u32, 1>", "array<u32, 16>",
	"array<i32, 1>", "array<i32, 16>",
	"array<f32, 1>", "array<f32, 16>",
}

// identLowThreshold is the sub-item byte value below which a synthetic name
// is always minted, regardless of kind; at or above it, Type/Function draw
// a builtin name from the matching table.
const identLowThreshold = 12

func emitIdent(kind IdentKind, value byte, sink *TextSink) {
	switch kind {
	case IdentType, IdentUserType:
		if kind == IdentUserType || int(value) < identLowThreshold {
			sink.Ident(int(value), "t")
		} else {
			sink.Raw(builtinTypeNames[int(value)%len(builtinTypeNames)])
		}
	case IdentFunction, IdentUserFunction:
		if kind == IdentUserFunction || int(value) < identLowThreshold {
			sink.Ident(int(value), "f")
		} else {
			sink.Raw(builtinFuncNames[int(value)%len(builtinFuncNames)])
		}
	default:
		sink.Ident(int(value), "x")
	}
}

// synthFloatLiteral either reuses an in-scope f32 variable or emits a
// canonical float constant and records a fresh variable holding it.
func synthFloatLiteral(sink *TextSink, ctx *Context) {
	if ctx.ShouldUseVariable() {
		sink.Raw(ctx.GetRandomVariable())
		return
	}
	sink.Raw("3.1416")
	v := ctx.CreateVariable("f32")
	sink.Raw(" /* stored in " + v + " */")
}

func synthFloatHexLiteral(sink *TextSink, ctx *Context) {
	if ctx.ShouldUseVariable() {
		sink.Raw(ctx.GetRandomVariable())
		return
	}
	sink.Raw("0x1.Fp4")
	v := ctx.CreateVariable("f32")
	sink.Raw(" /* stored in " + v + " */")
}

func synthDecimalLiteral(sink *TextSink, ctx *Context) {
	if ctx.ShouldUseVariable() {
		sink.Raw(ctx.GetRandomVariable())
		return
	}
	sink.Raw(strconv.Itoa(int(ctx.rng.UInt32(1000))))
	v := ctx.CreateVariable("i32")
	sink.Raw(" /* stored in " + v + " */")
}

func synthHexLiteral(sink *TextSink, ctx *Context) {
	if ctx.ShouldUseVariable() {
		sink.Raw(ctx.GetRandomVariable())
		return
	}
	sink.Raw("0x" + strconv.Itoa(int(ctx.rng.UInt32(0xFFFF))))
	v := ctx.CreateVariable("i32")
	sink.Raw(" /* stored in " + v + " */")
}

func emitZero(item SubItem, sink *TextSink, ctx *Context) {
	switch item.emit0 {
	case emit0Literal:
		sink.Raw(item.text)
	case emit0FloatLiteral:
		synthFloatLiteral(sink, ctx)
	case emit0FloatHexLiteral:
		synthFloatHexLiteral(sink, ctx)
	case emit0DecimalLiteral:
		synthDecimalLiteral(sink, ctx)
	case emit0HexLiteral:
		synthHexLiteral(sink, ctx)
	}
}

func emitTerminal(item SubItem, value byte, sink *TextSink) {
	switch item.terminal {
	case terminalIdent:
		emitIdent(item.identKind, value, sink)
	case terminalKeyword:
		emitKeyword(item.keywordList, value, sink)
	}
}
