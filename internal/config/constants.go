package config

// ConfigFileNames are searched for, in order, by FindConfig.
var ConfigFileNames = []string{"kiss.yaml", "kiss.yml"}

// DefaultEnvFile is read by ApplyEnv when no file is named.
const DefaultEnvFile = ".env"

// Environment variables that override the config file.
const (
	EnvLogLevel  = "KISS_LOG_LEVEL"
	EnvLogFormat = "KISS_LOG_FORMAT"
	EnvOptimise  = "KISS_OPTIMISE"
	EnvMaxPasses = "KISS_MAX_PASSES"
	EnvColor     = "KISS_COLOR"
	EnvTarget    = "KISS_TARGET"
)

// Defaults
const (
	DefaultMaxPasses = 8
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Built-in function names
const (
	AddFuncName   = "+"
	SubFuncName   = "-"
	MulFuncName   = "*"
	DivFuncName   = "/"
	EqFuncName    = "="
	LessFuncName  = "<"
	NotFuncName   = "not"
	StrFuncName   = "str"
	PrintFuncName = "print"
)
