// Package watermark overlays text or another image onto an image file and
// writes the result back to disk.
//
// # Quick Start
//
//	w, err := watermark.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	bg := watermark.ARGB(0x80000000)
//	path, err := w.AddText(ctx, watermark.TextRequest{
//	    FilePath:        "photo.jpg",
//	    Text:            "© 2026 Example Photography",
//	    X:               16,
//	    Y:               48,
//	    TextSize:        32,
//	    Color:           0xFFFFFFFF,
//	    BackgroundColor: &bg,
//	    Padding:         watermark.Padding{Top: 4, Right: 8, Bottom: 4, Left: 8},
//	    Quality:         90,
//	    ImageFormat:     "jpeg",
//	})
//
// # Pipeline
//
// Both operations are a single synchronous pipeline:
//
//  1. Validate every argument before any file is touched.
//  2. Decode the source (and overlay). Text watermarks can first rotate the
//     source upright using its EXIF orientation.
//  3. Draw onto a mutable RGBA copy through a Canvas.
//  4. Encode as JPEG or PNG at the requested quality.
//  5. Write atomically to a path whose extension matches the format.
//
// Text is broken into lines with greedy word wrapping (see text.Wrap) so
// that it fits between the anchor and the right edge of the image.
//
// # Colors
//
// Colors are packed 32-bit ARGB values (0xAARRGGBB). Use RGB to build an
// opaque color from 0xRRGGBB.
//
// # Errors
//
// Every failure is an *Error whose Code tells the caller which stage failed:
// CodeArgument, CodeRead, CodeProcessing, CodeWrite or CodeUnknown. Nothing
// is retried.
package watermark

// Version is the current version of the library.
const Version = "0.1.0"
