// Package imaging provides the image processing half of the pipeline:
// loading and caching, the minimum-resolution guard with its upscaler,
// optional recognizer-oriented enhancement, and the bounding-box
// annotator.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left
// corner: X increases rightward, Y increases downward. Detection boxes
// are expressed in the coordinate space of the image that was fed to the
// recognizer, which is the upscaled copy whenever the guard fired.
//
// # Thread Safety
//
// The Cache type is safe for concurrent use. The remaining operations are
// stateless functions over image.Image values and never mutate their
// input; each returns a freshly allocated result.
package imaging
