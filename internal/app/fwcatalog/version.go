package fwcatalog

// The version of fwcatalog. Overwritten by the build with -ldflags.
var Version = "0.1.0"
