package artifacts

// UnknownCategory is the sentinel code for tokens the encoder was never
// fitted on. The demand model was trained to tolerate it.
const UnknownCategory = -1

// LabelEncoder is a fitted categorical-to-integer lookup table. The code
// of a class is its position in the fitted class list.
type LabelEncoder struct {
	classes []string
	index   map[string]int
}

func NewLabelEncoder(classes []string) *LabelEncoder {
	enc := &LabelEncoder{
		classes: classes,
		index:   make(map[string]int, len(classes)),
	}
	for i, class := range classes {
		enc.index[class] = i
	}
	return enc
}

// Transform maps a token to its fitted code, or UnknownCategory when the
// token was not seen at fit time. It never fails.
func (e *LabelEncoder) Transform(token string) int {
	if code, ok := e.index[token]; ok {
		return code
	}
	return UnknownCategory
}

func (e *LabelEncoder) Len() int {
	return len(e.classes)
}
