// Package score defines the music symbol model and parses Audiveris output.
//
// Audiveris exports a project as an .omr file, which is a ZIP archive
// containing one XML document per sheet (sheet#1/sheet#1.xml, ...). Each
// sheet document carries a symbol interpretation graph under sig/inters,
// where every interpretation element has a shape attribute and a bounds
// child giving its pixel-space bounding box.
//
// This package extracts the interpretations this tool cares about
// (noteheads, sharps, flats, naturals) into an ordered Detection sequence.
// Interpretations with unrecognized shapes are skipped rather than failing
// the run; a missing or structurally broken output file is an error, since
// it means the recognizer ran but produced nothing usable.
package score
