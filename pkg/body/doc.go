// Package body classifies and decodes buffered HTTP bodies for display.
// It undoes content encodings, resolves charsets, detects binary payloads
// and enforces a size ceiling, producing a Plan that tells the printer what
// to render. Classification never fails: every fault degrades to an Omitted
// plan with a reason.
package body
