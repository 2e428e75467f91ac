package structfuzz

// RuleID enumerates the WGSL grammar's non-terminals. Order matters: the
// stat-counting, rendering and mutating traversals all index the same array
// by RuleID, and SubtreeTransfer's compatibility closure is keyed off these
// values.
type RuleID int

const (
	TranslationUnit RuleID = iota
	AdditiveOperator
	ExpressionList
	ArgumentExpressionList
	AssignmentStatement
	Attribute
	BitwiseExprPostUnary1
	BitwiseExprPostUnary2
	BitwiseExprPostUnary3
	BitwiseExprPostUnary
	BoolLiteral
	CaseSelector
	ComponentOrSwizzleSpecifier
	CompoundAssignmentOperator
	CompoundStatement
	CoreLhsExpression
	DecimalFloatLiteral
	DecimalIntLiteral
	DiagnosticControl
	Expression1
	Expression2
	Expression
	FloatLiteral
	ForInit
	ForUpdate
	AssignExpression
	CommaParam
	GlobalDecl1
	ReturnType
	CommaStructField
	GlobalDecl
	CommaIdentPatternToken1
	CommaIdentPatternToken2
	GlobalDirective
	GlobalValueDecl
	HexFloatLiteral
	IntLiteral
	LhsExpression
	Literal
	MemberIdent
	MultiplicativeOperator
	OptionallyTypedIdent1
	OptionallyTypedIdent
	Param
	PrimaryExpression
	RelationalExprPostUnary
	MultiplicativeOperatorUnaryExpression
	ShiftExprPostUnary1
	ShiftExprPostUnary
	ElseifStatement
	ElseStatement
	BreakifStatement
	ContinuingStatement
	Statement
	SwitchClause1
	SwitchClause
	SwizzleName
	TemplateArgExpression
	CommaExpression
	UnaryExpression
	ExpressionListAngle
	VariableDecl
	VariableOrValueStatement
	VariableUpdatingStatement

	numRules = int(VariableUpdatingStatement) + 1
)

// Modifier annotates a SubItem with its optionality/repetition behavior.
type Modifier int

const (
	ModNone Modifier = iota
	ModOptional      // '?': consumes one "0 or 1" input byte
	ModMany          // '*': consumes one "0..=MaxRepeats" input byte
)

type contentKind int

const (
	contentEmit0 contentKind = iota // zero bytes consumed: literal text or a context-driven synthesizer
	contentTerminal                 // one byte consumed, dispatched to an emit_fn
	contentRef                      // recursive expansion of another rule
)

type emit0Kind int

const (
	emit0Literal emit0Kind = iota
	emit0FloatLiteral
	emit0FloatHexLiteral
	emit0DecimalLiteral
	emit0HexLiteral
)

type terminalKind int

const (
	terminalIdent terminalKind = iota
	terminalKeyword
)

// SubItem is one element of an Alternative: fixed text, a one-byte terminal,
// or a reference to another rule, each optionally modified by '?' or '*'.
// Terminal behavior is modeled as data (a kind tag plus a small lookup
// table in terminals.go) rather than as a first-class closure, so the
// grammar table stays a plain data literal.
type SubItem struct {
	kind contentKind
	mod  Modifier

	emit0 emit0Kind
	text  string // valid when emit0 == emit0Literal

	terminal    terminalKind
	identKind   IdentKind
	keywordList KeywordList

	ref RuleID
}

// Alternative is one production right-hand side.
type Alternative []SubItem

// Rule is a non-terminal: a non-empty ordered list of alternatives.
type Rule []Alternative

func lit(s string) SubItem { return SubItem{kind: contentEmit0, emit0: emit0Literal, text: s} }

func floatLit() SubItem    { return SubItem{kind: contentEmit0, emit0: emit0FloatLiteral} }
func floatHexLit() SubItem { return SubItem{kind: contentEmit0, emit0: emit0FloatHexLiteral} }
func decimalLit() SubItem  { return SubItem{kind: contentEmit0, emit0: emit0DecimalLiteral} }
func hexLit() SubItem      { return SubItem{kind: contentEmit0, emit0: emit0HexLiteral} }

func ident(k IdentKind) SubItem {
	return SubItem{kind: contentTerminal, terminal: terminalIdent, identKind: k}
}

func keyword(l KeywordList) SubItem {
	return SubItem{kind: contentTerminal, terminal: terminalKeyword, keywordList: l}
}

func ref(r RuleID) SubItem { return SubItem{kind: contentRef, ref: r} }

func opt(s SubItem) SubItem { s.mod = ModOptional; return s }
func many(s SubItem) SubItem { s.mod = ModMany; return s }

// MaxDepth caps recursion depth during any traversal; beyond it, expansion
// returns immediately and emits nothing for that position.
const MaxDepth = 16

// MaxRepeats is the inclusive upper bound for a '*' sub-item's repeat count.
const MaxRepeats = 5

// grammarTable holds the static WGSL grammar, one Rule per RuleID, built
// once at package init. It is never mutated after construction.
var grammarTable = buildGrammar()

func buildGrammar() [numRules]Rule {
	var g [numRules]Rule

	g[TranslationUnit] = Rule{
		{many(ref(GlobalDecl))},
	}
	g[AdditiveOperator] = Rule{
		{lit("+")},
		{lit("-")},
	}
	g[ExpressionList] = Rule{
		{ref(Expression), many(ref(CommaExpression)), opt(lit(","))},
	}
	g[ArgumentExpressionList] = Rule{
		{lit("("), opt(ref(ExpressionList)), lit(")")},
	}
	g[AssignmentStatement] = Rule{
		{ref(CompoundAssignmentOperator)},
		{lit("=")},
	}
	g[Attribute] = Rule{
		{lit("@"), lit("compute")},
		{lit("@"), lit("const")},
		{lit("@"), lit("fragment")},
		{lit("@"), lit("interpolate"), lit("("), ident(IdentOther), opt(lit(",")), lit(")")},
		{lit("@"), lit("interpolate"), lit("("), ident(IdentOther), lit(","), ident(IdentOther), opt(lit(",")), lit(")")},
		{lit("@"), lit("invariant")},
		{lit("@"), lit("must_use")},
		{lit("@"), lit("vertex")},
		{lit("@"), lit("workgroup_size"), lit("("), ref(Expression), opt(lit(",")), lit(")")},
		{lit("@"), lit("workgroup_size"), lit("("), ref(Expression), lit(","), ref(Expression), opt(lit(",")), lit(")")},
		{lit("@"), lit("workgroup_size"), lit("("), ref(Expression), lit(","), ref(Expression), lit(","), ref(Expression), opt(lit(",")), lit(")")},
		{lit("@"), lit("align"), lit("("), ref(Expression), opt(lit(",")), lit(")")},
		{lit("@"), lit("binding"), lit("("), ref(Expression), opt(lit(",")), lit(")")},
		{lit("@"), lit("blend_src"), lit("("), ref(Expression), opt(lit(",")), lit(")")},
		{lit("@"), lit("builtin"), lit("("), ident(IdentOther), opt(lit(",")), lit(")")},
		{lit("@"), lit("diagnostic"), ref(DiagnosticControl)},
		{lit("@"), lit("group"), lit("("), ref(Expression), opt(lit(",")), lit(")")},
		{lit("@"), lit("id"), lit("("), ref(Expression), opt(lit(",")), lit(")")},
		{lit("@"), lit("location"), lit("("), ref(Expression), opt(lit(",")), lit(")")},
		{lit("@"), lit("size"), lit("("), ref(Expression), opt(lit(",")), lit(")")},
	}
	g[BitwiseExprPostUnary1] = Rule{
		{lit("&"), ref(UnaryExpression)},
	}
	g[BitwiseExprPostUnary2] = Rule{
		{lit("^"), ref(UnaryExpression)},
	}
	g[BitwiseExprPostUnary3] = Rule{
		{lit("|"), ref(UnaryExpression)},
	}
	g[BitwiseExprPostUnary] = Rule{
		{lit("&"), ref(UnaryExpression), many(ref(BitwiseExprPostUnary1))},
		{lit("^"), ref(UnaryExpression), many(ref(BitwiseExprPostUnary2))},
		{lit("|"), ref(UnaryExpression), many(ref(BitwiseExprPostUnary3))},
	}
	g[BoolLiteral] = Rule{
		{lit("false")},
		{lit("true")},
	}
	g[CaseSelector] = Rule{
		{ref(Expression)},
		{lit("default")},
	}
	g[ComponentOrSwizzleSpecifier] = Rule{
		{lit("."), ref(MemberIdent), opt(ref(ComponentOrSwizzleSpecifier))},
		{lit("."), ref(SwizzleName), opt(ref(ComponentOrSwizzleSpecifier))},
		{lit("["), ref(Expression), lit("]"), opt(ref(ComponentOrSwizzleSpecifier))},
	}
	g[CompoundAssignmentOperator] = Rule{
		{lit("<<=")},
		{lit(">>=")},
		{lit("%=")},
		{lit("&=")},
		{lit("*=")},
		{lit("+=")},
		{lit("-=")},
		{lit("/=")},
		{lit("^=")},
		{lit("|=")},
	}
	g[CompoundStatement] = Rule{
		{many(ref(Attribute)), lit("{"), many(ref(Statement)), lit("}")},
	}
	g[CoreLhsExpression] = Rule{
		{ident(IdentOther)},
		{lit("("), ref(LhsExpression), lit(")")},
	}
	g[DecimalFloatLiteral] = Rule{
		{floatLit()},
	}
	g[DecimalIntLiteral] = Rule{
		{decimalLit()},
	}
	g[DiagnosticControl] = Rule{
		{lit("("), keyword(KeywordDiagnosticSeverity), lit(","), lit("derivative_uniformity"), opt(lit(",")), lit(")")},
	}
	g[Expression1] = Rule{
		{lit("&&"), ref(UnaryExpression), ref(RelationalExprPostUnary)},
	}
	g[Expression2] = Rule{
		{lit("||"), ref(UnaryExpression), ref(RelationalExprPostUnary)},
	}
	g[Expression] = Rule{
		{ref(UnaryExpression), ref(BitwiseExprPostUnary)},
		{ref(UnaryExpression), ref(RelationalExprPostUnary)},
		{ref(UnaryExpression), ref(RelationalExprPostUnary), lit("&&"), ref(UnaryExpression), ref(RelationalExprPostUnary), many(ref(Expression1))},
		{ref(UnaryExpression), ref(RelationalExprPostUnary), lit("||"), ref(UnaryExpression), ref(RelationalExprPostUnary), many(ref(Expression2))},
	}
	g[FloatLiteral] = Rule{
		{floatLit()},
		{floatHexLit()},
	}
	g[ForInit] = Rule{
		{ident(IdentVariable), ref(ArgumentExpressionList)},
		{ref(VariableOrValueStatement)},
		{ref(VariableUpdatingStatement)},
	}
	g[ForUpdate] = Rule{
		{ident(IdentVariable), ref(ArgumentExpressionList)},
		{ref(VariableUpdatingStatement)},
	}
	g[AssignExpression] = Rule{
		{lit("="), ref(Expression)},
	}
	g[CommaParam] = Rule{
		{lit(","), ref(Param)},
	}
	g[GlobalDecl1] = Rule{
		{many(ref(Attribute)), ident(IdentVariable), lit(":"), ident(IdentType), many(ref(CommaParam)), opt(lit(","))},
	}
	g[ReturnType] = Rule{
		{lit("->"), many(ref(Attribute)), ident(IdentType)},
	}
	g[CommaStructField] = Rule{
		{lit(","), many(ref(Attribute)), ref(MemberIdent), lit(":"), ident(IdentType)},
	}
	g[GlobalDecl] = Rule{
		{many(ref(Attribute)), lit("fn"), ident(IdentUserFunction), lit("("), opt(ref(GlobalDecl1)), lit(")"), opt(ref(ReturnType)), many(ref(Attribute)), lit("{"), many(ref(Statement)), lit("}")},
		{many(ref(Attribute)), lit("var"), opt(ref(ExpressionListAngle)), ref(OptionallyTypedIdent), opt(ref(AssignExpression)), lit(";")},
		{ref(GlobalValueDecl), lit(";")},
		{lit(";")},
		{lit("struct"), ident(IdentUserType), lit("{"), many(ref(Attribute)), ref(MemberIdent), lit(":"), ident(IdentType), many(ref(CommaStructField)), opt(lit(",")), lit("}")},
		{lit("const_assert"), ref(Expression), lit(";")},
		{lit("alias"), ident(IdentUserType), lit("="), ident(IdentType), lit(";")},
	}
	g[CommaIdentPatternToken1] = Rule{
		{lit(","), lit("f16")},
	}
	g[CommaIdentPatternToken2] = Rule{
		{lit(","), keyword(KeywordRequiresExtensions)},
	}
	g[GlobalDirective] = Rule{
		{lit("diagnostic"), lit("("), keyword(KeywordDiagnosticSeverity), lit(","), lit("derivative_uniformity"), opt(lit(",")), lit(")"), lit(";")},
		{lit("enable"), lit("f16"), many(ref(CommaIdentPatternToken1)), opt(lit(",")), lit(";")},
		{lit("requires"), keyword(KeywordRequiresExtensions), many(ref(CommaIdentPatternToken2)), opt(lit(",")), lit(";")},
	}
	g[GlobalValueDecl] = Rule{
		{many(ref(Attribute)), lit("override"), ref(OptionallyTypedIdent), opt(ref(AssignExpression))},
		{lit("const"), ref(OptionallyTypedIdent), ref(AssignExpression)},
	}
	g[HexFloatLiteral] = Rule{
		{floatHexLit()},
	}
	g[IntLiteral] = Rule{
		{decimalLit()},
		{hexLit()},
	}
	g[LhsExpression] = Rule{
		{ref(CoreLhsExpression), opt(ref(ComponentOrSwizzleSpecifier))},
		{lit("&"), ref(LhsExpression)},
		{lit("*"), ref(LhsExpression)},
	}
	g[Literal] = Rule{
		{ref(IntLiteral)},
		{ref(FloatLiteral)},
		{ref(BoolLiteral)},
	}
	g[MemberIdent] = Rule{
		{ident(IdentVariable)},
	}
	g[MultiplicativeOperator] = Rule{
		{lit("*")},
		{lit("/")},
		{lit("%")},
	}
	g[OptionallyTypedIdent1] = Rule{
		{lit(":"), ident(IdentType)},
	}
	g[OptionallyTypedIdent] = Rule{
		{ident(IdentVariable), opt(ref(OptionallyTypedIdent1))},
	}
	g[Param] = Rule{
		{many(ref(Attribute)), ident(IdentVariable), lit(":"), ident(IdentType)},
	}
	g[PrimaryExpression] = Rule{
		{ref(Literal)},
		{ident(IdentVariable)},
		{ident(IdentFunction), ref(ArgumentExpressionList)},
		{lit("("), ref(Expression), lit(")")},
		{ident(IdentType), ref(ArgumentExpressionList)},
	}
	g[RelationalExprPostUnary] = Rule{
		{ref(ShiftExprPostUnary), lit("=="), ref(UnaryExpression), ref(ShiftExprPostUnary)},
		{ref(ShiftExprPostUnary), lit("!="), ref(UnaryExpression), ref(ShiftExprPostUnary)},
		{ref(ShiftExprPostUnary)},
		{ref(ShiftExprPostUnary), lit(">"), ref(UnaryExpression), ref(ShiftExprPostUnary)},
		{ref(ShiftExprPostUnary), lit(">="), ref(UnaryExpression), ref(ShiftExprPostUnary)},
		{ref(ShiftExprPostUnary), lit("<"), ref(UnaryExpression), ref(ShiftExprPostUnary)},
		{ref(ShiftExprPostUnary), lit("<="), ref(UnaryExpression), ref(ShiftExprPostUnary)},
	}
	g[MultiplicativeOperatorUnaryExpression] = Rule{
		{ref(MultiplicativeOperator), ref(UnaryExpression)},
	}
	g[ShiftExprPostUnary1] = Rule{
		{ref(AdditiveOperator), ref(UnaryExpression), many(ref(MultiplicativeOperatorUnaryExpression))},
	}
	g[ShiftExprPostUnary] = Rule{
		{many(ref(MultiplicativeOperatorUnaryExpression)), many(ref(ShiftExprPostUnary1))},
		{lit("<<"), ref(UnaryExpression)},
		{lit(">>"), ref(UnaryExpression)},
	}
	g[ElseifStatement] = Rule{
		{lit("else"), lit("if"), ref(Expression), ref(CompoundStatement)},
	}
	g[ElseStatement] = Rule{
		{lit("else"), ref(CompoundStatement)},
	}
	g[BreakifStatement] = Rule{
		{lit("break"), lit("if"), ref(Expression), lit(";")},
	}
	g[ContinuingStatement] = Rule{
		{lit("continuing"), many(ref(Attribute)), lit("{"), many(ref(Statement)), opt(ref(BreakifStatement)), lit("}")},
	}
	g[Statement] = Rule{
		{lit("return"), ref(Expression), lit(";")},
		{ref(VariableOrValueStatement), lit(";")},
		{ref(VariableUpdatingStatement), lit(";")},
		{many(ref(Attribute)), lit("if"), ref(Expression), ref(CompoundStatement), many(ref(ElseifStatement)), opt(ref(ElseStatement))},
		{many(ref(Attribute)), lit("for"), lit("("), opt(ref(ForInit)), lit(";"), opt(ref(Expression)), lit(";"), opt(ref(ForUpdate)), lit(")"), ref(CompoundStatement)},
		{lit("return"), lit(";")},
		{many(ref(Attribute)), lit("loop"), many(ref(Attribute)), lit("{"), many(ref(Statement)), opt(ref(ContinuingStatement)), lit("}")},
		{many(ref(Attribute)), lit("switch"), ref(Expression), many(ref(Attribute)), lit("{"), many(ref(SwitchClause)), lit("}")},
		{many(ref(Attribute)), lit("while"), ref(Expression), ref(CompoundStatement)},
		{ref(CompoundStatement)},
		{ident(IdentType), ref(ArgumentExpressionList), lit(";")},
		{lit("break"), lit(";")},
		{lit("continue"), lit(";")},
		{lit("const_assert"), ref(Expression), lit(";")},
		{lit("discard"), lit(";")},
		{lit(";")},
	}
	g[SwitchClause1] = Rule{
		{lit(","), ref(CaseSelector)},
	}
	g[SwitchClause] = Rule{
		{lit("case"), ref(CaseSelector), many(ref(SwitchClause1)), opt(lit(",")), opt(lit(":")), ref(CompoundStatement)},
		{lit("default"), opt(lit(":")), ref(CompoundStatement)},
	}
	// swizzle_name intentionally lists x/xy/xyz/xyzw twice, biasing sampling
	// toward the xyzw-channel swizzles over the rgba-channel ones.
	g[SwizzleName] = Rule{
		{lit("x")},
		{lit("xy")},
		{lit("xyz")},
		{lit("xyzw")},
		{lit("r")},
		{lit("rg")},
		{lit("rgb")},
		{lit("rgba")},
		{lit("x")},
		{lit("xx")},
		{lit("xxx")},
		{lit("xxxx")},
	}
	g[TemplateArgExpression] = Rule{
		{ref(Expression)},
	}
	g[CommaExpression] = Rule{
		{lit(","), ref(Expression)},
	}
	g[UnaryExpression] = Rule{
		{ref(PrimaryExpression), opt(ref(ComponentOrSwizzleSpecifier))},
		{lit("!"), ref(UnaryExpression)},
		{lit("&"), ref(UnaryExpression)},
		{lit("*"), ref(UnaryExpression)},
		{lit("-"), ref(UnaryExpression)},
		{lit("~"), ref(UnaryExpression)},
	}
	g[ExpressionListAngle] = Rule{
		{lit("<"), keyword(KeywordAddressSpace), lit(">")},
	}
	g[VariableDecl] = Rule{
		{lit("var"), opt(ref(ExpressionListAngle)), ref(OptionallyTypedIdent)},
	}
	g[VariableOrValueStatement] = Rule{
		{ref(VariableDecl), ref(AssignExpression)},
		{lit("const"), ref(OptionallyTypedIdent), ref(AssignExpression)},
		{lit("let"), ref(OptionallyTypedIdent), ref(AssignExpression)},
	}
	g[VariableUpdatingStatement] = Rule{
		{ref(LhsExpression), ref(AssignExpression)},
		{ref(LhsExpression), ref(CompoundAssignmentOperator), ref(Expression)},
		{ref(LhsExpression), lit("++")},
		{ref(LhsExpression), lit("--")},
		{lit("_"), ref(AssignExpression)},
	}

	for i := range g {
		if len(g[i]) == 0 {
			panic("structfuzz: grammar table missing rule")
		}
	}

	return g
}
