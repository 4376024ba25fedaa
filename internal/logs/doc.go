// Package logs reads the backlog log file for the CLI "logs" command.
//
// Last returns the final lines with bounded memory and the offset where
// reading stopped; Follow polls from an offset and hands new lines to a
// callback until the context ends. Rotated files are not followed: when the
// file shrinks below the offset, reading restarts at the top of the new file.
package logs
