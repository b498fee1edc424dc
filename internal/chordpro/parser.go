package chordpro

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// ParseError reports a document that cannot be tokenized.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("chordpro: line %d: %s", e.Line, e.Msg)
}

// lineLexer splits a lyric line into chord tokens and text. Stray brackets get
// their own token types so the parser can report them.
var lineLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Chord", Pattern: `\[[^\[\]]*\]`},
	{Name: "Open", Pattern: `\[`},
	{Name: "Close", Pattern: `\]`},
	{Name: "Text", Pattern: `[^\[\]]+`},
})

var (
	tokChord = lineLexer.Symbols()["Chord"]
	tokOpen  = lineLexer.Symbols()["Open"]
	tokClose = lineLexer.Symbols()["Close"]
	tokText  = lineLexer.Symbols()["Text"]
)

var directiveAliases = map[string]string{
	"t":   MetaTitle,
	"st":  MetaSubtitle,
	"c":   "comment",
	"ci":  "comment_italic",
	"cb":  "comment_box",
	"soc": "start_of_chorus",
	"eoc": "end_of_chorus",
	"sov": "start_of_verse",
	"eov": "end_of_verse",
	"sob": "start_of_bridge",
	"eob": "end_of_bridge",
	"sot": "start_of_tab",
	"eot": "end_of_tab",
}

// Parse converts ChordPro text into a Song.
//
// Directive lines ({name: value}) populate metadata, except comment and
// section directives which become lines of their own. Lines starting with '#'
// are dropped. Blank lines are kept. A malformed chord token never fails the
// parse; only unterminated brackets and braces do.
func Parse(text string) (*Song, error) {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")

	song := &Song{Metadata: make(map[string]string)}
	if text != "" {
		for i, raw := range strings.Split(text, "\n") {
			lineNo := i + 1
			line, keep, err := parseLine(song, raw, lineNo)
			if err != nil {
				return nil, err
			}
			if keep {
				song.Lines = append(song.Lines, line)
			}
		}
	}

	if strings.TrimSpace(song.Metadata[MetaTitle]) == "" {
		song.Metadata[MetaTitle] = DefaultTitle
	}
	return song, nil
}

func parseLine(song *Song, raw string, lineNo int) (Line, bool, error) {
	trimmed := strings.TrimSpace(raw)
	switch {
	case trimmed == "":
		return Line{Kind: LineBlank}, true, nil
	case strings.HasPrefix(raw, "#"):
		return Line{}, false, nil
	case strings.HasPrefix(trimmed, "{"):
		return parseDirective(song, trimmed, lineNo)
	}

	segments, err := parseLyrics(raw, lineNo)
	if err != nil {
		return Line{}, false, err
	}
	return Line{Kind: LineLyrics, Segments: segments}, true, nil
}

func parseDirective(song *Song, trimmed string, lineNo int) (Line, bool, error) {
	if !strings.HasSuffix(trimmed, "}") {
		return Line{}, false, &ParseError{Line: lineNo, Msg: "unterminated directive"}
	}
	body := strings.TrimSpace(trimmed[1 : len(trimmed)-1])

	name, value := body, ""
	if i := strings.IndexByte(body, ':'); i >= 0 {
		name, value = body[:i], strings.TrimSpace(body[i+1:])
	}
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Line{}, false, &ParseError{Line: lineNo, Msg: "directive has no name"}
	}
	if alias, ok := directiveAliases[name]; ok {
		name = alias
	}

	switch {
	case strings.HasPrefix(name, "comment"):
		return Line{Kind: LineComment, Text: value}, true, nil
	case strings.HasPrefix(name, "start_of_"):
		return Line{Kind: LineSectionStart, Text: strings.TrimPrefix(name, "start_of_"), Label: value}, true, nil
	case strings.HasPrefix(name, "end_of_"):
		return Line{Kind: LineSectionEnd, Text: strings.TrimPrefix(name, "end_of_")}, true, nil
	}

	song.Metadata[name] = value
	return Line{}, false, nil
}

func parseLyrics(raw string, lineNo int) ([]Segment, error) {
	lex, err := lineLexer.LexString("", raw)
	if err != nil {
		return nil, &ParseError{Line: lineNo, Msg: err.Error()}
	}
	tokens, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, &ParseError{Line: lineNo, Msg: err.Error()}
	}

	var segments []Segment
	current := Segment{}
	started := false
	flush := func() {
		if started {
			segments = append(segments, current)
		}
		current = Segment{}
		started = false
	}

	for _, tok := range tokens {
		switch tok.Type {
		case tokChord:
			flush()
			started = true
			inner := tok.Value[1 : len(tok.Value)-1]
			if strings.TrimSpace(inner) != "" {
				chord := ParseChord(inner)
				current.Chord = &chord
			}
		case tokOpen:
			return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("unterminated chord at column %d", tok.Pos.Column)}
		case tokText, tokClose:
			started = true
			current.Lyrics += tok.Value
		}
	}
	flush()
	return segments, nil
}
