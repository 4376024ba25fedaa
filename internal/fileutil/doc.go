// Package fileutil holds small filesystem helpers shared by persistence code.
package fileutil
