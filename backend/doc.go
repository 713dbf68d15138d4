// Package backend bridges hardware and terminal event sources into
// native key events. Sources are polled once per frame; translators
// convert backend-specific key representations to native codes and
// back.
package backend
