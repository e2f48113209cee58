package highlight

// Category is a semantic token class used to select a display color.
type Category uint8

// Highlight categories. CategoryNone renders with the default text color.
const (
	CategoryNone Category = iota
	CategoryConstant
	CategoryConstantBuiltin
	CategoryTag
	CategoryType
	CategoryTypeBuiltin
	CategoryConstructor
	CategoryFunction
	CategoryFunctionBuiltin
	CategoryFunctionMethod
	CategoryFunctionMacro
	CategoryProperty
	CategoryComment
	CategoryPunctuationBracket
	CategoryPunctuationDelimiter
	CategoryPunctuationSpecial
	CategoryVariable
	CategoryVariableParameter
	CategoryVariableBuiltin
	CategoryLabel
	CategoryKeyword
	CategoryString
	CategoryStringSpecial
	CategoryEscape
	CategoryAttribute
	CategoryOperator
	CategoryEmbedded
	CategoryNumber
	CategoryInjectionLanguage
	CategoryInjectionContent
	CategoryLocalScope
	CategoryLocalDefinition
	CategoryLocalReference

	categoryCount
)

var categoryNames = [categoryCount]string{
	CategoryNone:                 "",
	CategoryConstant:             "constant",
	CategoryConstantBuiltin:      "constant.builtin",
	CategoryTag:                  "tag",
	CategoryType:                 "type",
	CategoryTypeBuiltin:          "type.builtin",
	CategoryConstructor:          "constructor",
	CategoryFunction:             "function",
	CategoryFunctionBuiltin:      "function.builtin",
	CategoryFunctionMethod:       "function.method",
	CategoryFunctionMacro:        "function.macro",
	CategoryProperty:             "property",
	CategoryComment:              "comment",
	CategoryPunctuationBracket:   "punctuation.bracket",
	CategoryPunctuationDelimiter: "punctuation.delimiter",
	CategoryPunctuationSpecial:   "punctuation.special",
	CategoryVariable:             "variable",
	CategoryVariableParameter:    "variable.parameter",
	CategoryVariableBuiltin:      "variable.builtin",
	CategoryLabel:                "label",
	CategoryKeyword:              "keyword",
	CategoryString:               "string",
	CategoryStringSpecial:        "string.special",
	CategoryEscape:               "escape",
	CategoryAttribute:            "attribute",
	CategoryOperator:             "operator",
	CategoryEmbedded:             "embedded",
	CategoryNumber:               "number",
	CategoryInjectionLanguage:    "injection.language",
	CategoryInjectionContent:     "injection.content",
	CategoryLocalScope:           "local.scope",
	CategoryLocalDefinition:      "local.definition",
	CategoryLocalReference:       "local.reference",
}

var categoryByName = func() map[string]Category {
	m := make(map[string]Category, categoryCount)
	for c := CategoryConstant; c < categoryCount; c++ {
		m[categoryNames[c]] = c
	}
	return m
}()

// String returns the capture name of the category, or "none".
func (c Category) String() string {
	if c == CategoryNone || c >= categoryCount {
		return "none"
	}
	return categoryNames[c]
}

// CategoryFromName returns the category for a capture name such as
// "string.special". Unknown names report false.
func CategoryFromName(name string) (Category, bool) {
	c, ok := categoryByName[name]
	return c, ok
}

// Categories returns every category except CategoryNone, in palette order.
func Categories() []Category {
	out := make([]Category, 0, categoryCount-1)
	for c := CategoryConstant; c < categoryCount; c++ {
		out = append(out, c)
	}
	return out
}
