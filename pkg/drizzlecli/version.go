package drizzlecli

// Version is the build version, normally overridden at link time with
// -ldflags "-X github.com/kestrel-imaging/drizzle/pkg/drizzlecli.Version=...".
var Version = "0.0.0-dev"
