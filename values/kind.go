package values

type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt
	KindReal
	KindBool
	KindText
	KindList
	KindMap
	KindMacro
	KindSeries
	KindVector
	KindMatrix
	KindFunction
)

var kindNames = [...]string{
	KindInvalid:  "INVALID",
	KindInt:      "LONG",
	KindReal:     "DOUBLE",
	KindBool:     "BOOLEAN",
	KindText:     "STRING",
	KindList:     "LIST",
	KindMap:      "MAP",
	KindMacro:    "MACRO",
	KindSeries:   "GTS",
	KindVector:   "VECTOR",
	KindMatrix:   "MATRIX",
	KindFunction: "FUNCTION",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindInvalid]
}

// IsScalar reports whether values of the kind can be stored in a series reading.
func (k Kind) IsScalar() bool {
	switch k {
	case KindInt, KindReal, KindBool, KindText:
		return true
	}
	return false
}

func (k Kind) IsNumber() bool {
	return k == KindInt || k == KindReal
}
