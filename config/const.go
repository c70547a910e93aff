package config

import "strings"

// AppVersion is the version of the tool, set with -ldflags "-X" at build time.
var AppVersion = "dev"

// AppName is the name of the tool.
const AppName = "Polish"

// LogWinSubDir is the sub directory for the log files on windows.
var LogWinSubDir = AppName

// LogSubDir is the sub directory for the log files.
var LogSubDir = "." + strings.ToLower(AppName)

// LogExt is the extension for the log files.
var LogExt = ".log"

// DefaultOutputDir is where enhanced images are written unless --output-dir says otherwise.
// The directory is expected to exist already.
const DefaultOutputDir = "output"

// TimestampLayout prefixes every output file name (YYYYMMDDHHMMSS).
const TimestampLayout = "20060102150405"

// OutputExt is the extension of every output file; outputs are always JPEG.
const OutputExt = ".jpg"

// MinQuality and MaxQuality bound the JPEG quality argument.
const (
	MinQuality = 1
	MaxQuality = 100
)
