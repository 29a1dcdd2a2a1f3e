package config

// Version is the toolchain version reported by the CLI.
const Version = "0.1.0"

const SourceFileExt = ".gox"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".gox"}

// BytecodeFileExt is the extension of serialized compiled programs.
const BytecodeFileExt = ".goxb"

// ConfigFileName is the per-project configuration file.
const ConfigFileName = "gox.yaml"
