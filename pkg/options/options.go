package options

// Telugu Unicode block, the default candidate alphabet.
const (
	TeluguBlockLo = rune(0x0C00)
	TeluguBlockHi = rune(0x0C7E)
)

var DefaultOptions = CheckerOptions{
	MaxEditDistance:     2,
	MaxCandidates:       5,
	TwoEditCandidateCap: 50,
	AlphabetLo:          TeluguBlockLo,
	AlphabetHi:          TeluguBlockHi,
	MinWordLength:       1,
}

type CheckerOptions struct {
	MaxEditDistance     int  // candidate search depth, two-tier: 1 then 2
	MaxCandidates       int  // ranked candidates returned per word
	TwoEditCandidateCap int  // stop collecting 2-edit candidates past this many
	AlphabetLo          rune // inclusive lower bound of the candidate alphabet
	AlphabetHi          rune // inclusive upper bound of the candidate alphabet
	MinWordLength       int  // tokens shorter than this are not checked
}

type Options interface {
	Apply(options *CheckerOptions)
}

type FuncConfig struct {
	ops func(options *CheckerOptions)
}

func (w FuncConfig) Apply(conf *CheckerOptions) {
	w.ops(conf)
}

func NewFuncOption(f func(options *CheckerOptions)) *FuncConfig {
	return &FuncConfig{ops: f}
}

func WithMaxEditDistance(maxEditDistance int) Options {
	return NewFuncOption(func(options *CheckerOptions) {
		options.MaxEditDistance = maxEditDistance
	})
}

func WithMaxCandidates(maxCandidates int) Options {
	return NewFuncOption(func(options *CheckerOptions) {
		options.MaxCandidates = maxCandidates
	})
}

func WithTwoEditCandidateCap(limit int) Options {
	return NewFuncOption(func(options *CheckerOptions) {
		options.TwoEditCandidateCap = limit
	})
}

// WithAlphabetRange restricts candidate generation and tokenization to the
// given inclusive rune range, e.g. a curated subset of the Telugu block.
func WithAlphabetRange(lo, hi rune) Options {
	return NewFuncOption(func(options *CheckerOptions) {
		options.AlphabetLo = lo
		options.AlphabetHi = hi
	})
}

func WithMinWordLength(minLength int) Options {
	return NewFuncOption(func(options *CheckerOptions) {
		options.MinWordLength = minLength
	})
}
