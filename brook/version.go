// Copyright © 2024 The Brook authors

package brook

// BrookVersion is the version of the interpreter.  It is written to profiles
// and reported by the command line tool.
const BrookVersion = "0.3.1"
