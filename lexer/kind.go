package lexer

import "fmt"

// TokenKind classifies a token. The set is closed: every span the lexer
// produces carries exactly one of the kinds below.
type TokenKind int

const (
	InvalidToken TokenKind = iota // any character no other rule accepts

	// trivia, consumed for position bookkeeping only
	LineTerminator
	Whitespace

	Identifier
	NumericLiteral
	FalseKeyword
	TrueKeyword
	NullKeyword

	// punctuators
	Arrow        // =>
	LeftParen    // (
	RightParen   // )
	LeftBrace    // {
	RightBrace   // }
	LeftBracket  // [
	RightBracket // ]
	Period       // .
	Ellipsis     // ...
	Semicolon    // ;
	Comma        // ,
	Colon        // :
	QuestionMark // ?
	SingleQuote  // ' (also the kind of a single-quoted string)
	DoubleQuote  // " (also the kind of a double-quoted string)
	JSXClose     // </
	JSXAutoClose // />

	// update operators
	Increment // ++
	Decrement // --

	// assignment operators
	Assign                  // =
	ShiftLeftAssign         // <<=
	ShiftRightAssign        // >>=
	LogicalShiftRightAssign // >>>=
	ExponentiateAssign      // **=
	AddAssign               // +=
	SubtractAssign          // -=
	MultiplyAssign          // *=
	DivideAssign            // /=
	ModuloAssign            // %=
	BitwiseXorAssign        // ^=
	BitwiseOrAssign         // |=
	BitwiseAndAssign        // &=
	LogicalOrAssign         // ||=
	LogicalAndAssign        // &&=
	CoalesceAssign          // ??=

	// unary and binary operators
	TypeofKeyword
	DeleteKeyword
	VoidKeyword
	Negate      // !
	Complement  // ~
	Add         // +
	Subtract    // -
	InKeyword   // in
	InstanceofKeyword
	Multiply           // *
	Modulo             // %
	Divide             // /
	Exponentiate       // **
	LogicalAnd         // &&
	LogicalOr          // ||
	StrictEqual        // ===
	StrictNotEqual     // !==
	LooseEqual         // ==
	LooseNotEqual      // !=
	LessThanOrEqual    // <=
	GreaterThanOrEqual // >=
	LessThan           // <
	GreaterThan        // >
	ShiftLeft          // <<
	ShiftRight         // >>
	LogicalShiftRight  // >>>
	BitwiseAnd         // &
	BitwiseOr          // |
	BitwiseXor         // ^

	// variable declarations
	VarKeyword
	LetKeyword
	ConstKeyword

	// reserved words
	BreakKeyword
	CaseKeyword
	CatchKeyword
	ClassKeyword
	ContinueKeyword
	DebuggerKeyword
	DefaultKeyword
	DoKeyword
	ElseKeyword
	ExportKeyword
	ExtendsKeyword
	FinallyKeyword
	ForKeyword
	FunctionKeyword
	IfKeyword
	ImportKeyword
	NewKeyword
	ReturnKeyword
	SuperKeyword
	SwitchKeyword
	ThisKeyword
	ThrowKeyword
	TryKeyword
	WhileKeyword
	WithKeyword

	// strict mode reserved words
	ImplementsKeyword
	InterfaceKeyword
	PackageKeyword
	PrivateKeyword
	ProtectedKeyword
	PublicKeyword
	StaticKeyword
	YieldKeyword

	// contextual keywords
	AsKeyword
	AsyncKeyword
	AwaitKeyword
	ConstructorKeyword
	GetKeyword
	SetKeyword
	FromKeyword
	OfKeyword
	EnumKeyword
	Eval
	Arguments

	PrivateIdentifier  // #
	Coalesce           // ??
	QuestionMarkPeriod // ?.
	Decorator          // @
	Target
	Meta

	// Comment is never produced by classification; line and block comments
	// are rewritten to it after a leading '/'.
	Comment

	numKinds
)

var kindNames = [numKinds]string{
	InvalidToken:            "InvalidToken",
	LineTerminator:          "LineTerminator",
	Whitespace:              "Whitespace",
	Identifier:              "Identifier",
	NumericLiteral:          "NumericLiteral",
	FalseKeyword:            "FalseKeyword",
	TrueKeyword:             "TrueKeyword",
	NullKeyword:             "NullKeyword",
	Arrow:                   "Arrow",
	LeftParen:               "LeftParen",
	RightParen:              "RightParen",
	LeftBrace:               "LeftBrace",
	RightBrace:              "RightBrace",
	LeftBracket:             "LeftBracket",
	RightBracket:            "RightBracket",
	Period:                  "Period",
	Ellipsis:                "Ellipsis",
	Semicolon:               "Semicolon",
	Comma:                   "Comma",
	Colon:                   "Colon",
	QuestionMark:            "QuestionMark",
	SingleQuote:             "SingleQuote",
	DoubleQuote:             "DoubleQuote",
	JSXClose:                "JSXClose",
	JSXAutoClose:            "JSXAutoClose",
	Increment:               "Increment",
	Decrement:               "Decrement",
	Assign:                  "Assign",
	ShiftLeftAssign:         "ShiftLeftAssign",
	ShiftRightAssign:        "ShiftRightAssign",
	LogicalShiftRightAssign: "LogicalShiftRightAssign",
	ExponentiateAssign:      "ExponentiateAssign",
	AddAssign:               "AddAssign",
	SubtractAssign:          "SubtractAssign",
	MultiplyAssign:          "MultiplyAssign",
	DivideAssign:            "DivideAssign",
	ModuloAssign:            "ModuloAssign",
	BitwiseXorAssign:        "BitwiseXorAssign",
	BitwiseOrAssign:         "BitwiseOrAssign",
	BitwiseAndAssign:        "BitwiseAndAssign",
	LogicalOrAssign:         "LogicalOrAssign",
	LogicalAndAssign:        "LogicalAndAssign",
	CoalesceAssign:          "CoalesceAssign",
	TypeofKeyword:           "TypeofKeyword",
	DeleteKeyword:           "DeleteKeyword",
	VoidKeyword:             "VoidKeyword",
	Negate:                  "Negate",
	Complement:              "Complement",
	Add:                     "Add",
	Subtract:                "Subtract",
	InKeyword:               "InKeyword",
	InstanceofKeyword:       "InstanceofKeyword",
	Multiply:                "Multiply",
	Modulo:                  "Modulo",
	Divide:                  "Divide",
	Exponentiate:            "Exponentiate",
	LogicalAnd:              "LogicalAnd",
	LogicalOr:               "LogicalOr",
	StrictEqual:             "StrictEqual",
	StrictNotEqual:          "StrictNotEqual",
	LooseEqual:              "LooseEqual",
	LooseNotEqual:           "LooseNotEqual",
	LessThanOrEqual:         "LessThanOrEqual",
	GreaterThanOrEqual:      "GreaterThanOrEqual",
	LessThan:                "LessThan",
	GreaterThan:             "GreaterThan",
	ShiftLeft:               "ShiftLeft",
	ShiftRight:              "ShiftRight",
	LogicalShiftRight:       "LogicalShiftRight",
	BitwiseAnd:              "BitwiseAnd",
	BitwiseOr:               "BitwiseOr",
	BitwiseXor:              "BitwiseXor",
	VarKeyword:              "VarKeyword",
	LetKeyword:              "LetKeyword",
	ConstKeyword:            "ConstKeyword",
	BreakKeyword:            "BreakKeyword",
	CaseKeyword:             "CaseKeyword",
	CatchKeyword:            "CatchKeyword",
	ClassKeyword:            "ClassKeyword",
	ContinueKeyword:         "ContinueKeyword",
	DebuggerKeyword:         "DebuggerKeyword",
	DefaultKeyword:          "DefaultKeyword",
	DoKeyword:               "DoKeyword",
	ElseKeyword:             "ElseKeyword",
	ExportKeyword:           "ExportKeyword",
	ExtendsKeyword:          "ExtendsKeyword",
	FinallyKeyword:          "FinallyKeyword",
	ForKeyword:              "ForKeyword",
	FunctionKeyword:         "FunctionKeyword",
	IfKeyword:               "IfKeyword",
	ImportKeyword:           "ImportKeyword",
	NewKeyword:              "NewKeyword",
	ReturnKeyword:           "ReturnKeyword",
	SuperKeyword:            "SuperKeyword",
	SwitchKeyword:           "SwitchKeyword",
	ThisKeyword:             "ThisKeyword",
	ThrowKeyword:            "ThrowKeyword",
	TryKeyword:              "TryKeyword",
	WhileKeyword:            "WhileKeyword",
	WithKeyword:             "WithKeyword",
	ImplementsKeyword:       "ImplementsKeyword",
	InterfaceKeyword:        "InterfaceKeyword",
	PackageKeyword:          "PackageKeyword",
	PrivateKeyword:          "PrivateKeyword",
	ProtectedKeyword:        "ProtectedKeyword",
	PublicKeyword:           "PublicKeyword",
	StaticKeyword:           "StaticKeyword",
	YieldKeyword:            "YieldKeyword",
	AsKeyword:               "AsKeyword",
	AsyncKeyword:            "AsyncKeyword",
	AwaitKeyword:            "AwaitKeyword",
	ConstructorKeyword:      "ConstructorKeyword",
	GetKeyword:              "GetKeyword",
	SetKeyword:              "SetKeyword",
	FromKeyword:             "FromKeyword",
	OfKeyword:               "OfKeyword",
	EnumKeyword:             "EnumKeyword",
	Eval:                    "Eval",
	Arguments:               "Arguments",
	PrivateIdentifier:       "PrivateIdentifier",
	Coalesce:                "Coalesce",
	QuestionMarkPeriod:      "QuestionMarkPeriod",
	Decorator:               "Decorator",
	Target:                  "Target",
	Meta:                    "Meta",
	Comment:                 "Comment",
}

// literals maps every fixed spelling to its kind. Identifier, NumericLiteral
// and the trivia kinds are character classes and live in lexer.go instead.
var literals = map[string]TokenKind{
	"false": FalseKeyword,
	"true":  TrueKeyword,
	"null":  NullKeyword,

	"=>":  Arrow,
	"(":   LeftParen,
	")":   RightParen,
	"{":   LeftBrace,
	"}":   RightBrace,
	"[":   LeftBracket,
	"]":   RightBracket,
	".":   Period,
	"...": Ellipsis,
	";":   Semicolon,
	",":   Comma,
	":":   Colon,
	"?":   QuestionMark,
	"'":   SingleQuote,
	"\"":  DoubleQuote,
	"</":  JSXClose,
	"/>":  JSXAutoClose,

	"++": Increment,
	"--": Decrement,

	"=":    Assign,
	"<<=":  ShiftLeftAssign,
	">>=":  ShiftRightAssign,
	">>>=": LogicalShiftRightAssign,
	"**=":  ExponentiateAssign,
	"+=":   AddAssign,
	"-=":   SubtractAssign,
	"*=":   MultiplyAssign,
	"/=":   DivideAssign,
	"%=":   ModuloAssign,
	"^=":   BitwiseXorAssign,
	"|=":   BitwiseOrAssign,
	"&=":   BitwiseAndAssign,
	"||=":  LogicalOrAssign,
	"&&=":  LogicalAndAssign,
	"??=":  CoalesceAssign,

	"typeof":     TypeofKeyword,
	"delete":     DeleteKeyword,
	"void":       VoidKeyword,
	"!":          Negate,
	"~":          Complement,
	"+":          Add,
	"-":          Subtract,
	"in":         InKeyword,
	"instanceof": InstanceofKeyword,
	"*":          Multiply,
	"%":          Modulo,
	"/":          Divide,
	"**":         Exponentiate,
	"&&":         LogicalAnd,
	"||":         LogicalOr,
	"===":        StrictEqual,
	"!==":        StrictNotEqual,
	"==":         LooseEqual,
	"!=":         LooseNotEqual,
	"<=":         LessThanOrEqual,
	">=":         GreaterThanOrEqual,
	"<":          LessThan,
	">":          GreaterThan,
	"<<":         ShiftLeft,
	">>":         ShiftRight,
	">>>":        LogicalShiftRight,
	"&":          BitwiseAnd,
	"|":          BitwiseOr,
	"^":          BitwiseXor,

	"var":   VarKeyword,
	"let":   LetKeyword,
	"const": ConstKeyword,

	"break":    BreakKeyword,
	"case":     CaseKeyword,
	"catch":    CatchKeyword,
	"class":    ClassKeyword,
	"continue": ContinueKeyword,
	"debugger": DebuggerKeyword,
	"default":  DefaultKeyword,
	"do":       DoKeyword,
	"else":     ElseKeyword,
	"export":   ExportKeyword,
	"extends":  ExtendsKeyword,
	"finally":  FinallyKeyword,
	"for":      ForKeyword,
	"function": FunctionKeyword,
	"if":       IfKeyword,
	"import":   ImportKeyword,
	"new":      NewKeyword,
	"return":   ReturnKeyword,
	"super":    SuperKeyword,
	"switch":   SwitchKeyword,
	"this":     ThisKeyword,
	"throw":    ThrowKeyword,
	"try":      TryKeyword,
	"while":    WhileKeyword,
	"with":     WithKeyword,

	"implements": ImplementsKeyword,
	"interface":  InterfaceKeyword,
	"package":    PackageKeyword,
	"private":    PrivateKeyword,
	"protected":  ProtectedKeyword,
	"public":     PublicKeyword,
	"static":     StaticKeyword,
	"yield":      YieldKeyword,

	"as":          AsKeyword,
	"async":       AsyncKeyword,
	"await":       AwaitKeyword,
	"constructor": ConstructorKeyword,
	"get":         GetKeyword,
	"set":         SetKeyword,
	"from":        FromKeyword,
	"of":          OfKeyword,
	"enum":        EnumKeyword,
	"eval":        Eval,
	"arguments":   Arguments,

	"#":      PrivateIdentifier,
	"??":     Coalesce,
	"?.":     QuestionMarkPeriod,
	"@":      Decorator,
	"target": Target,
	"meta":   Meta,
}

var kindsByName map[string]TokenKind

func init() {
	kindsByName = make(map[string]TokenKind, numKinds)
	for k, name := range kindNames {
		kindsByName[name] = TokenKind(k)
	}
}

// String returns the wire name of the kind, e.g. "ConstKeyword".
func (k TokenKind) String() string {
	if k < 0 || k >= numKinds {
		return "Unknown"
	}
	return kindNames[k]
}

// KindFromString is the inverse of TokenKind.String.
func KindFromString(name string) (TokenKind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}

// Family names the bracket family of a bracket kind ("Paren", "Brace" or
// "Bracket") and whether it opens. Non-bracket kinds return "".
func (k TokenKind) Family() (family string, open bool) {
	switch k {
	case LeftParen:
		return "Paren", true
	case RightParen:
		return "Paren", false
	case LeftBrace:
		return "Brace", true
	case RightBrace:
		return "Brace", false
	case LeftBracket:
		return "Bracket", true
	case RightBracket:
		return "Bracket", false
	}
	return "", false
}

// MarshalText encodes the kind by name, so JSON output carries "LeftParen"
// rather than an ordinal.
func (k TokenKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *TokenKind) UnmarshalText(b []byte) error {
	v, ok := KindFromString(string(b))
	if !ok {
		return &UnknownKindError{Name: string(b)}
	}
	*k = v
	return nil
}

// UnknownKindError is returned when decoding a kind name the lexer does not define.
type UnknownKindError struct {
	Name string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("lexer: unknown token kind %q", e.Name)
}
