// Package catalog loads the releases and tracks the viewer browses.
//
// A catalog is a YAML file:
//
//	releases:
//	  - id: morning-light
//	    title: Morning Light
//	    type: ep            # single (default) or ep
//	    songs:
//	      - id: amazing-grace
//	        title: Amazing Grace
//	        chordpro_url: amazing-grace.cho
//	        lyrics: |
//	          Amazing grace how sweet the sound
//	        copyright: Public domain
//
// Each song names at most one chart: chordpro_url (fetched, resolved against
// base_url), chordpro_file (read by Load, relative to the catalog) or inline
// chordpro text. Decode alone does not read chordpro_file entries.
package catalog
