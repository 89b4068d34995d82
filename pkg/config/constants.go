package config

// Version is the current version of cspscan
const Version = "v1.0.0"

// InfoURI is published in SARIF output as the tool's information URI
const InfoURI = "https://github.com/google/CSP-Validator"

// Default Values
const (
	DefaultConcurrency = 8
	DefaultFormat      = "plain"
)
