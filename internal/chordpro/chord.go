package chordpro

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/five82/lectern/internal/music"
)

// chordSymbol is the participle grammar for a chord without its bass note.
// Examples: "C", "F#m7", "Bbmaj7", "Dsus4", "C6/9".
type chordSymbol struct {
	Root    string   `parser:"@Note"`
	Quality []string `parser:"@(Note | Slash | Other)*"`
}

var chordLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Note", Pattern: `[A-G][#b]?`},
	{Name: "Slash", Pattern: `/`},
	{Name: "Other", Pattern: `[^A-G/]+`},
})

var chordParser = participle.MustBuild[chordSymbol](
	participle.Lexer(chordLexer),
)

// ParseChord decomposes a chord token into root, quality, and optional bass.
// Spelling keeps the token exactly as written, surrounding spaces included.
// Tokens that do not start with a note are returned with Known=false so
// they survive rendering and transposition untouched.
func ParseChord(token string) Chord {
	chord := Chord{Spelling: token}
	trimmed := strings.TrimSpace(token)

	head := trimmed
	if i := strings.LastIndexByte(trimmed, '/'); i > 0 {
		if bass, ok := music.ParseNote(trimmed[i+1:]); ok {
			chord.Bass = bass
			chord.HasBass = true
			head = trimmed[:i]
		}
	}

	sym, err := chordParser.ParseString("", head)
	if err != nil {
		return Chord{Spelling: token}
	}
	root, ok := music.ParseNote(sym.Root)
	if !ok {
		return Chord{Spelling: token}
	}
	chord.Root = root
	chord.Quality = strings.Join(sym.Quality, "")
	chord.Known = true
	return chord
}
