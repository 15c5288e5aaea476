package buildinfo

// Version is the CLI version, set at build time via ldflags.
// Example: go build -ldflags "-X github.com/romnn/go-bumpversion/internal/buildinfo.Version=1.0.0"
var Version = "dev"
