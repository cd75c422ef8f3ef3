// Package channel exposes the watermarker through a method-call interface.
//
// A Call names a method and carries loosely typed arguments, the shape a
// host application sends over a platform channel or as JSON:
//
//	{"method": "addTextWatermark", "arguments": {"filePath": "/tmp/a.jpg", ...}}
//
// Handler validates the arguments, runs the operation and returns the path
// of the written file. Failures are *Error values carrying one of the wire
// codes ARGUMENT_ERROR, READ_ERROR, PROCESSING_ERROR, WRITE_ERROR or
// UNKNOWN_ERROR.
package channel
