package rain

import "strings"

const (
	katakana  = "アァカサタナハマヤャラワガザダバパイィキシチニヒミリヰギジヂビピウゥクスツヌフムユュルグズブヅプエェケセテネヘメレヱゲゼデベペオォコソトノホモヨョロヲゴゾドボポヴッン"
	halfwidth = "ｱｧｶｻﾀﾅﾊﾏﾔｬﾗﾜｲｨｷｼﾁﾆﾋﾐﾘｳｩｸｽﾂﾇﾌﾑﾕｭﾙｴｪｹｾﾃﾈﾍﾒﾚｵｫｺｿﾄﾉﾎﾓﾖｮﾛｦｯﾝ"
	digits    = "0123456789"
	latin     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Alphabet is the fixed glyph set a cell draws from.
type Alphabet []rune

var (
	// Katakana is the full-width kana set plus digits and uppercase Latin.
	Katakana = NewAlphabet(katakana + digits + latin)

	// Halfwidth replaces the kana with their narrow forms so every glyph
	// occupies one terminal column.
	Halfwidth = NewAlphabet(halfwidth + digits + latin)

	// Latin is digits and uppercase Latin only.
	Latin = NewAlphabet(digits + latin)
)

// NewAlphabet builds an alphabet from the runes of s.
func NewAlphabet(s string) Alphabet {
	return Alphabet([]rune(s))
}

// Pick returns a glyph chosen uniformly at random.
func (a Alphabet) Pick(src Source) rune {
	return a[src.Intn(len(a))]
}

func (a Alphabet) String() string { return string(a) }

// AlphabetByName resolves "kana", "halfwidth" or "latin". Any other name is
// treated as a literal glyph set.
func AlphabetByName(name string) Alphabet {
	switch strings.ToLower(name) {
	case "", "kana", "katakana":
		return Katakana
	case "halfwidth", "narrow":
		return Halfwidth
	case "latin":
		return Latin
	default:
		return NewAlphabet(name)
	}
}
