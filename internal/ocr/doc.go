// Package ocr locates text regions on a sheet-music image using the
// Tesseract engine (via gosseract).
//
// Sheet music carries text the music recognizer does not report as
// symbols: the title, tempo markings, and lyric lines. This package finds
// those regions so the annotator can box them alongside the detected
// musical symbols. It is an optional pass; the pipeline only calls it
// when text-region annotation is requested.
//
// Tesseract must be installed on the system (e.g. apt-get install
// tesseract-ocr tesseract-ocr-eng). Recognition quality of the text
// content itself is secondary here; only the region geometry is used.
package ocr
