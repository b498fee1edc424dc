// Package render lays out a chordpro.Song as a chord/lyric grid.
//
// Build produces a Grid, a surface-independent layout where each lyric row
// is a list of cells and each cell pairs a chord with the lyrics it
// precedes. The grid is then written out by Text for terminals or by HTML
// for a host page. The focus overlay in the UI renders the same grid a
// second time at its own width.
//
// Text and HTML both treat chart text as untrusted: Text strips escape
// sequences and control characters, HTML escapes markup.
package render
