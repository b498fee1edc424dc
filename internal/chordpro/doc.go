// Package chordpro parses ChordPro chord charts into a structured Song.
//
// # Format
//
// ChordPro is plain text. Directive lines carry metadata and structure,
// lyric lines carry chords inline in square brackets immediately before the
// syllable they sit over:
//
//	{title: Amazing Grace}
//	{key: C}
//
//	{start_of_verse: Verse 1}
//	[C]Amazing [F]grace, how [C]sweet the sound
//	{end_of_verse}
//
// # Model
//
// A Song is metadata plus an ordered list of Lines. A lyric Line is a list
// of Segments; each Segment is lyric text with an optional Chord anchored
// before it. "[C]Amazing [F]grace" becomes two segments:
//
//	{Chord: C, Lyrics: "Amazing "}
//	{Chord: F, Lyrics: "grace"}
//
// Blank lines are kept as LineBlank because they separate verses and
// choruses. Comment and section directives become LineComment,
// LineSectionStart and LineSectionEnd lines. Every other directive is stored
// in Song.Metadata under its lower-cased name; "t" and "st" are accepted for
// title and subtitle. A song without a title gets "Untitled".
//
// # Chords
//
// ParseChord splits a token into a root (A–G with optional '#' or 'b'), an
// opaque quality suffix, and an optional bass note after the last '/'. The
// quality is not validated: "m7b5", "sus4", "6/9" and "(add9)" are carried
// through as written. A token that does not start with a note, such as
// "N.C.", is kept with Known set to false and is never re-spelled.
//
// # Errors
//
// Parse returns a *ParseError only when the document itself cannot be
// tokenized: an unterminated '[' on a lyric line, a directive missing its
// closing '}', or a directive without a name. A bad chord never fails the
// parse.
//
// # Round trip
//
// Format writes a Song back out as ChordPro using each chord's source
// spelling. Transposed songs carry freshly spelled chords, so formatting a
// transposed song yields the transposed chart.
package chordpro
