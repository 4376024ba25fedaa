// Package heroic imports library exports written by the Heroic Games Launcher.
//
// An export is a JSON object with a "library" or "games" array. Each entry
// becomes one game with a Windows source, plus Mac and Linux sources when the
// entry declares native support. Documents are checked against an embedded
// JSON schema before they are mapped.
package heroic
