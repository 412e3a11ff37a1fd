package ui

import (
	"github.com/charmbracelet/bubbles/runeutil"
)

// textBuf pairs stored text with what an input widget shows for it. The
// widgets expand tabs and drop control runes, so edits are spliced back
// into the stored text and runes the user never touched stay verbatim.
type textBuf struct {
	san   runeutil.Sanitizer
	text  []rune
	shown []rune
	src   []int // src[i] is the index in text that produced shown[i]
}

func newTextBuf(text string, san runeutil.Sanitizer) textBuf {
	b := textBuf{san: san}
	b.reset([]rune(text))
	return b
}

func (b *textBuf) reset(text []rune) {
	b.text = text
	b.shown, b.src = nil, nil
	for i, r := range text {
		for _, out := range b.san.Sanitize([]rune{r}) {
			b.shown = append(b.shown, out)
			b.src = append(b.src, i)
		}
	}
}

// Shown is the value to hand to the widget.
func (b textBuf) Shown() string { return string(b.shown) }

func (b textBuf) Text() string { return string(b.text) }

// Apply folds the widget's current value into the stored text and reports
// whether anything changed.
func (b *textBuf) Apply(value string) bool {
	next := []rune(value)
	if string(next) == string(b.shown) {
		return false
	}

	p := 0
	for p < len(next) && p < len(b.shown) && next[p] == b.shown[p] {
		p++
	}
	s := 0
	for s < len(next)-p && s < len(b.shown)-p && next[len(next)-1-s] == b.shown[len(b.shown)-1-s] {
		s++
	}
	// an expanded rune is kept or replaced whole
	for p > 0 && p < len(b.shown) && b.src[p-1] == b.src[p] {
		p--
	}
	for s > 0 {
		e := len(b.shown) - s
		if e == 0 || b.src[e-1] != b.src[e] {
			break
		}
		s--
	}

	e := len(b.shown) - s
	lo := len(b.text)
	if p < len(b.shown) {
		lo = b.src[p]
	}
	hi := lo
	if e > p {
		hi = b.src[e-1] + 1
	}

	out := make([]rune, 0, lo+len(next)-p-s+len(b.text)-hi)
	out = append(out, b.text[:lo]...)
	out = append(out, next[p:len(next)-s]...)
	out = append(out, b.text[hi:]...)
	b.reset(out)
	return true
}
